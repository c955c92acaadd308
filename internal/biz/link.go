package biz

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// Short codes are fixed-length random tokens drawn from the
	// alphanumeric alphabet, case-sensitive.
	shortCodeAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	shortCodeLength   = 5

	maxURLLength = 2048
)

// Link is a short-link record. The store is the source of truth; the cache
// holds a disposable short_code → original_url projection of it.
type Link struct {
	ID          int64
	OriginalURL string
	ShortCode   string
	ClickCount  int64
	CreatedAt   time.Time
}

// LinkRepo is the durable store port, implemented in the data layer.
type LinkRepo interface {
	// Create inserts a new row with a zero click count and returns it with
	// the store-assigned id and creation timestamp.
	Create(ctx context.Context, originalURL, shortCode string) (*Link, error)

	// FindByShortCode returns nil, nil when no row matches.
	FindByShortCode(ctx context.Context, shortCode string) (*Link, error)

	// DeleteByOriginalURL removes every row matching the original URL and
	// returns the short codes of the removed rows.
	DeleteByOriginalURL(ctx context.Context, originalURL string) ([]string, error)

	// IncrementClickCount applies an atomic click_count = click_count + 1.
	IncrementClickCount(ctx context.Context, shortCode string) error

	// List returns a page of links ordered by creation time descending,
	// plus the total row count.
	List(ctx context.Context, page, pageSize int) ([]*Link, int, error)
}

// LinkCache is the cache port. Get returns "", nil on a miss; absence is
// never an error condition.
type LinkCache interface {
	Get(ctx context.Context, shortCode string) (string, error)
	Set(ctx context.Context, shortCode, originalURL string) error
	Del(ctx context.Context, shortCodes ...string) error
}

// ClickPublisher is the producer side of the event channel. PublishClick is
// fire-and-forget: it must never block on broker I/O and never report
// failures to the caller.
type ClickPublisher interface {
	PublishClick(slug string)
}

// RegistryUsecase issues and deletes short links.
type RegistryUsecase struct {
	repo  LinkRepo
	cache LinkCache
	log   *log.Helper
}

func NewRegistryUsecase(repo LinkRepo, cache LinkCache, logger log.Logger) *RegistryUsecase {
	return &RegistryUsecase{
		repo:  repo,
		cache: cache,
		log:   log.NewHelper(logger),
	}
}

// Create validates the original URL, generates a short code and persists the
// link. The cache entry is written best-effort after the insert: a cache
// failure here leaves a committed row that cannot be cache-resolved until the
// next store fallback repopulates it, and is logged rather than surfaced.
func (uc *RegistryUsecase) Create(ctx context.Context, originalURL string) (*Link, error) {
	if err := validateOriginalURL(originalURL); err != nil {
		return nil, err
	}

	code, err := gonanoid.Generate(shortCodeAlphabet, shortCodeLength)
	if err != nil {
		return nil, ErrCodeGeneration.WithCause(err)
	}
	// Structurally impossible for length > 0, defended against anyway: an
	// empty code would alias the redirect root.
	if code == "" {
		return nil, ErrCodeGeneration
	}

	link, err := uc.repo.Create(ctx, originalURL, code)
	if err != nil {
		return nil, err
	}

	uc.log.WithContext(ctx).Infof("created link %s -> %s", link.ShortCode, link.OriginalURL)

	if err := uc.cache.Set(ctx, link.ShortCode, link.OriginalURL); err != nil {
		uc.log.WithContext(ctx).Warnf("failed to cache new link %s: %v", link.ShortCode, err)
	}

	return link, nil
}

// Delete removes every link backing the given original URL. Cache entries for
// the removed short codes are dropped afterwards; unlike creation, a cache
// failure here is fatal to the operation even though the rows are already
// gone. The two policies are intentionally distinct.
func (uc *RegistryUsecase) Delete(ctx context.Context, originalURL string) error {
	codes, err := uc.repo.DeleteByOriginalURL(ctx, originalURL)
	if err != nil {
		return err
	}
	if len(codes) == 0 {
		return ErrLinkNotFound
	}

	uc.log.WithContext(ctx).Infof("deleted %d link(s) for %s", len(codes), originalURL)

	if err := uc.cache.Del(ctx, codes...); err != nil {
		return ErrCache.WithCause(err)
	}

	return nil
}

// Stats returns the link for a short code, including its persisted click
// count. Reads the store directly so the count is not a stale cached view.
func (uc *RegistryUsecase) Stats(ctx context.Context, shortCode string) (*Link, error) {
	link, err := uc.repo.FindByShortCode(ctx, shortCode)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, ErrLinkNotFound
	}
	return link, nil
}

// List returns a page of links and the total count.
func (uc *RegistryUsecase) List(ctx context.Context, page, pageSize int) ([]*Link, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return uc.repo.List(ctx, page, pageSize)
}

func validateOriginalURL(rawURL string) error {
	if err := validation.Validate(rawURL,
		validation.Required,
		validation.Length(1, maxURLLength),
		is.URL,
	); err != nil {
		return ErrInvalidURL.WithCause(err)
	}

	parsed, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return ErrInvalidURL.WithCause(err)
	}

	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return ErrInvalidURL
	}
	if parsed.Host == "" {
		return ErrInvalidURL
	}

	return nil
}
