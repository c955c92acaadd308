package main

import (
	"flag"
	"os"

	"echourl/internal/biz"
	"echourl/internal/conf"
	"echourl/internal/data"
	"echourl/internal/server"

	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/file"
	"github.com/go-kratos/kratos/v2/log"

	_ "go.uber.org/automaxprocs"
)

var (
	// Name is the name of the compiled software.
	Name = "echourl-analytics"
	// Version is the version of the compiled software.
	Version string
	// flagconf is the config flag.
	flagconf string

	id, _ = os.Hostname()
)

func init() {
	flag.StringVar(&flagconf, "conf", "../../configs/analytics.yaml", "config path, eg: -conf analytics.yaml")
}

// The aggregator is a small, single-purpose process; it is assembled by hand
// rather than through wire.
func main() {
	flag.Parse()
	logger := log.With(log.NewStdLogger(os.Stdout),
		"ts", log.DefaultTimestamp,
		"caller", log.DefaultCaller,
		"service.id", id,
		"service.name", Name,
		"service.version", Version,
	)
	c := config.New(
		config.WithSource(
			file.NewSource(flagconf),
		),
	)
	defer c.Close()

	if err := c.Load(); err != nil {
		panic(err)
	}

	var bc conf.Bootstrap
	if err := c.Scan(&bc); err != nil {
		panic(err)
	}

	d, cleanup, err := data.NewData(bc.Data, logger)
	if err != nil {
		panic(err)
	}
	defer cleanup()

	sub, cleanupSub, err := data.NewKafkaSubscriber(bc.Data, logger)
	if err != nil {
		panic(err)
	}
	defer cleanupSub()

	repo := data.NewLinkRepo(d, logger)
	aggregator := biz.NewClickAggregator(repo, logger)
	consumer := server.NewConsumerServer(bc.Data, sub, aggregator, logger)

	app := kratos.New(
		kratos.ID(id),
		kratos.Name(Name),
		kratos.Version(Version),
		kratos.Logger(logger),
		kratos.Server(consumer),
	)

	if err := app.Run(); err != nil {
		panic(err)
	}
}
