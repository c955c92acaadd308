package server

import (
	"context"
	nethttp "net/http"
	"strings"
	"time"

	"echourl/internal/conf"
	"echourl/internal/service"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/logging"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"
)

// NewHTTPServer new an HTTP server.
func NewHTTPServer(c *conf.Server, svc *service.ShortenerService, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
			logging.Server(logger),
		),
	}
	if c.HTTP.Network != "" {
		opts = append(opts, http.Network(c.HTTP.Network))
	}
	if c.HTTP.Addr != "" {
		opts = append(opts, http.Address(c.HTTP.Addr))
	}
	if c.HTTP.Timeout != "" {
		if d, err := time.ParseDuration(c.HTTP.Timeout); err == nil {
			opts = append(opts, http.Timeout(d))
		}
	}
	srv := http.NewServer(opts...)

	registerRoutes(srv, svc)

	return srv
}

func registerRoutes(srv *http.Server, svc *service.ShortenerService) {
	r := srv.Route("/")

	r.POST("/api/links", func(ctx http.Context) error {
		var req service.CreateLinkRequest
		if err := ctx.Bind(&req); err != nil {
			return err
		}
		h := ctx.Middleware(func(c context.Context, v interface{}) (interface{}, error) {
			return svc.CreateLink(c, v.(*service.CreateLinkRequest))
		})
		out, err := h(ctx, &req)
		if err != nil {
			return err
		}
		return ctx.Result(nethttp.StatusCreated, out)
	})

	r.DELETE("/api/links", func(ctx http.Context) error {
		var req service.DeleteLinkRequest
		if err := ctx.Bind(&req); err != nil {
			return err
		}
		h := ctx.Middleware(func(c context.Context, v interface{}) (interface{}, error) {
			return svc.DeleteLink(c, v.(*service.DeleteLinkRequest))
		})
		out, err := h(ctx, &req)
		if err != nil {
			return err
		}
		return ctx.Result(nethttp.StatusOK, out)
	})

	r.GET("/api/links", func(ctx http.Context) error {
		var req service.ListLinksRequest
		if err := ctx.BindQuery(&req); err != nil {
			return err
		}
		h := ctx.Middleware(func(c context.Context, v interface{}) (interface{}, error) {
			return svc.ListLinks(c, v.(*service.ListLinksRequest))
		})
		out, err := h(ctx, &req)
		if err != nil {
			return err
		}
		return ctx.Result(nethttp.StatusOK, out)
	})

	r.GET("/api/links/{code}", func(ctx http.Context) error {
		code := ctx.Vars().Get("code")
		h := ctx.Middleware(func(c context.Context, v interface{}) (interface{}, error) {
			return svc.GetLinkStats(c, v.(string))
		})
		out, err := h(ctx, code)
		if err != nil {
			return err
		}
		return ctx.Result(nethttp.StatusOK, out)
	})

	// Redirect endpoint. Cache hits answer with a permanent redirect, store
	// fallbacks with a temporary one; browsers cache 308s aggressively so the
	// two must not be conflated. Only Not-Found is surfaced distinctly, every
	// other failure collapses to a generic 500.
	srv.HandleFunc("/{slug}", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		slug := strings.TrimPrefix(r.URL.Path, "/")

		target, err := svc.Resolve(r.Context(), slug)
		if err != nil {
			if errors.Code(err) == nethttp.StatusNotFound {
				nethttp.Error(w, "slug not found", nethttp.StatusNotFound)
				return
			}
			nethttp.Error(w, "internal server error", nethttp.StatusInternalServerError)
			return
		}

		status := nethttp.StatusTemporaryRedirect
		if target.Permanent {
			status = nethttp.StatusPermanentRedirect
		}
		nethttp.Redirect(w, r, target.URL, status)
	})
}
