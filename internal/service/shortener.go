package service

import (
	"context"
	"time"

	"echourl/internal/biz"

	"github.com/google/wire"
	"github.com/samber/lo"
)

// ProviderSet is service providers.
var ProviderSet = wire.NewSet(NewShortenerService)

// ShortenerService translates transport requests into registry and resolver
// operations. It carries no logic of its own beyond shaping replies.
type ShortenerService struct {
	registry *biz.RegistryUsecase
	resolver *biz.ResolveUsecase
}

func NewShortenerService(registry *biz.RegistryUsecase, resolver *biz.ResolveUsecase) *ShortenerService {
	return &ShortenerService{
		registry: registry,
		resolver: resolver,
	}
}

type CreateLinkRequest struct {
	OriginalURL string `json:"original_url"`
}

type LinkInfo struct {
	ID          int64     `json:"id"`
	OriginalURL string    `json:"original_url"`
	ShortCode   string    `json:"short_code"`
	ClickCount  int64     `json:"click_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type DeleteLinkRequest struct {
	OriginalURL string `json:"original_url"`
}

type DeleteLinkReply struct {
	Success bool `json:"success"`
}

type ListLinksRequest struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

type ListLinksReply struct {
	Links []*LinkInfo `json:"links"`
	Total int         `json:"total"`
}

func (s *ShortenerService) CreateLink(ctx context.Context, req *CreateLinkRequest) (*LinkInfo, error) {
	link, err := s.registry.Create(ctx, req.OriginalURL)
	if err != nil {
		return nil, err
	}
	return toLinkInfo(link), nil
}

func (s *ShortenerService) DeleteLink(ctx context.Context, req *DeleteLinkRequest) (*DeleteLinkReply, error) {
	if err := s.registry.Delete(ctx, req.OriginalURL); err != nil {
		return nil, err
	}
	return &DeleteLinkReply{Success: true}, nil
}

// Resolve maps a slug to its redirect target. The HTTP server turns the
// result into a 308 (cache hit) or 307 (store fallback) response.
func (s *ShortenerService) Resolve(ctx context.Context, slug string) (*biz.Redirect, error) {
	return s.resolver.Resolve(ctx, slug)
}

func (s *ShortenerService) GetLinkStats(ctx context.Context, shortCode string) (*LinkInfo, error) {
	link, err := s.registry.Stats(ctx, shortCode)
	if err != nil {
		return nil, err
	}
	return toLinkInfo(link), nil
}

func (s *ShortenerService) ListLinks(ctx context.Context, req *ListLinksRequest) (*ListLinksReply, error) {
	links, total, err := s.registry.List(ctx, req.Page, req.PageSize)
	if err != nil {
		return nil, err
	}
	return &ListLinksReply{
		Links: lo.Map(links, func(l *biz.Link, _ int) *LinkInfo {
			return toLinkInfo(l)
		}),
		Total: total,
	}, nil
}

func toLinkInfo(l *biz.Link) *LinkInfo {
	return &LinkInfo{
		ID:          l.ID,
		OriginalURL: l.OriginalURL,
		ShortCode:   l.ShortCode,
		ClickCount:  l.ClickCount,
		CreatedAt:   l.CreatedAt,
	}
}
