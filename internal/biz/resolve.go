package biz

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"
)

// Redirect is the outcome of a resolution. Permanent is true only when the
// answer came from the cache: browsers cache permanent redirects aggressively,
// so a store-fallback answer is served as temporary instead. Both point at the
// same underlying link, but the distinction is part of the contract.
type Redirect struct {
	URL       string
	Permanent bool
}

// ResolveUsecase implements the cache-aside read path.
type ResolveUsecase struct {
	repo     LinkRepo
	cache    LinkCache
	producer ClickPublisher
	log      *log.Helper
}

func NewResolveUsecase(repo LinkRepo, cache LinkCache, producer ClickPublisher, logger log.Logger) *ResolveUsecase {
	return &ResolveUsecase{
		repo:     repo,
		cache:    cache,
		producer: producer,
		log:      log.NewHelper(logger),
	}
}

// Resolve maps a slug to its redirect target.
//
// Cache hit: emit a click event and answer permanently. Cache miss, or any
// cache read error (treated as a miss): fall back to the store, repopulate
// the cache, emit a click event and answer temporarily. The fallback cache
// write is fatal on failure, unlike creation's. Concurrent resolutions of a
// cold slug all hit the store independently; no coalescing is attempted.
func (uc *ResolveUsecase) Resolve(ctx context.Context, slug string) (*Redirect, error) {
	target, err := uc.cache.Get(ctx, slug)
	if err != nil {
		uc.log.WithContext(ctx).Warnf("cache read for %q failed, falling back to store: %v", slug, err)
	} else if target != "" {
		uc.log.WithContext(ctx).Debugf("cache hit for %q", slug)
		uc.producer.PublishClick(slug)
		return &Redirect{URL: target, Permanent: true}, nil
	}

	link, err := uc.repo.FindByShortCode(ctx, slug)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, ErrLinkNotFound
	}

	if err := uc.cache.Set(ctx, slug, link.OriginalURL); err != nil {
		return nil, ErrCache.WithCause(err)
	}

	uc.producer.PublishClick(slug)

	return &Redirect{URL: link.OriginalURL, Permanent: false}, nil
}
