package data

import (
	"context"
	"database/sql"
	"time"

	"echourl/internal/conf"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"

	_ "github.com/lib/pq"
)

// ProviderSet is data providers.
var ProviderSet = wire.NewSet(
	NewData,
	NewLinkRepo,
	NewSlugCache,
	NewKafkaPublisher,
	NewClickProducer,
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS urls (
	id BIGSERIAL PRIMARY KEY,
	original_url TEXT NOT NULL,
	short_code TEXT NOT NULL,
	click_count BIGINT NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_urls_short_code ON urls (short_code);
`

// Data holds the shared store and cache clients. Both are safe for concurrent
// use and live for the process lifetime; all write serialization is delegated
// to the store's own atomic primitives.
type Data struct {
	db  *sql.DB
	rdb *redis.Client
}

// NewData opens the Postgres connection, applies the schema and, when
// configured, connects the Redis client. Redis is not pinged here: the cache
// is a disposable accelerator and a cold cache at startup is recovered by the
// read path's store fallback.
func NewData(c *conf.Data, logger log.Logger) (*Data, func(), error) {
	lg := log.NewHelper(logger)

	db, err := sql.Open(c.Database.Driver, c.Database.Source)
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		db.Close()
		return nil, nil, err
	}

	var rdb *redis.Client
	if c.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     c.Redis.Addr,
			Password: c.Redis.Password,
			DB:       c.Redis.DB,
		})
	}

	d := &Data{
		db:  db,
		rdb: rdb,
	}

	cleanup := func() {
		lg.Info("closing the data resources")
		if d.rdb != nil {
			if err := d.rdb.Close(); err != nil {
				lg.Error(err)
			}
		}
		if err := d.db.Close(); err != nil {
			lg.Error(err)
		}
	}

	return d, cleanup, nil
}
