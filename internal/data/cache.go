package data

import (
	"context"
	"errors"
	"time"

	"echourl/internal/biz"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/redis/go-redis/v9"
	"github.com/samber/lo"
)

const (
	slugKeyPrefix = "slug:"
	slugCacheTTL  = 24 * time.Hour
)

// Compile-time interface checks
var (
	_ biz.LinkCache = (*slugCache)(nil)
	_ biz.LinkCache = (*noopSlugCache)(nil)
)

// slugCache stores short_code → original_url projections in Redis with a
// fixed TTL. Entries are derived, disposable state; a missing key is a miss,
// never an error.
type slugCache struct {
	rdb *redis.Client
	log *log.Helper
}

// NewSlugCache creates the Redis-backed slug cache, or a no-op cache when
// Redis is not configured so every read falls through to the store.
func NewSlugCache(data *Data, logger log.Logger) biz.LinkCache {
	if data.rdb == nil {
		return &noopSlugCache{}
	}
	return &slugCache{
		rdb: data.rdb,
		log: log.NewHelper(logger),
	}
}

func slugKey(shortCode string) string {
	return slugKeyPrefix + shortCode
}

func (c *slugCache) Get(ctx context.Context, shortCode string) (string, error) {
	val, err := c.rdb.Get(ctx, slugKey(shortCode)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return val, nil
}

func (c *slugCache) Set(ctx context.Context, shortCode, originalURL string) error {
	return c.rdb.Set(ctx, slugKey(shortCode), originalURL, slugCacheTTL).Err()
}

func (c *slugCache) Del(ctx context.Context, shortCodes ...string) error {
	if len(shortCodes) == 0 {
		return nil
	}
	keys := lo.Map(shortCodes, func(code string, _ int) string {
		return slugKey(code)
	})
	return c.rdb.Del(ctx, keys...).Err()
}

// noopSlugCache is used when Redis is not available; every lookup is a miss.
type noopSlugCache struct{}

func (c *noopSlugCache) Get(context.Context, string) (string, error) {
	return "", nil
}

func (c *noopSlugCache) Set(context.Context, string, string) error {
	return nil
}

func (c *noopSlugCache) Del(context.Context, ...string) error {
	return nil
}
