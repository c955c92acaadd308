package biz

import (
	"context"
	"sync"
	"time"
)

// mockLinkRepo is a test mock for LinkRepo with overridable Func fields.
// Unset funcs fall back to an in-memory map keyed by short code.
type mockLinkRepo struct {
	mu    sync.Mutex
	links map[string]*Link
	next  int64

	CreateFunc              func(ctx context.Context, originalURL, shortCode string) (*Link, error)
	FindByShortCodeFunc     func(ctx context.Context, shortCode string) (*Link, error)
	DeleteByOriginalURLFunc func(ctx context.Context, originalURL string) ([]string, error)
	IncrementClickCountFunc func(ctx context.Context, shortCode string) error
	ListFunc                func(ctx context.Context, page, pageSize int) ([]*Link, int, error)

	increments []string
}

func newMockRepo() *mockLinkRepo {
	return &mockLinkRepo{links: make(map[string]*Link)}
}

func (m *mockLinkRepo) Create(ctx context.Context, originalURL, shortCode string) (*Link, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, originalURL, shortCode)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.links[shortCode]; exists {
		return nil, ErrCodeCollision
	}
	m.next++
	link := &Link{
		ID:          m.next,
		OriginalURL: originalURL,
		ShortCode:   shortCode,
		CreatedAt:   time.Now().UTC(),
	}
	m.links[shortCode] = link
	return link, nil
}

func (m *mockLinkRepo) FindByShortCode(ctx context.Context, shortCode string) (*Link, error) {
	if m.FindByShortCodeFunc != nil {
		return m.FindByShortCodeFunc(ctx, shortCode)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.links[shortCode], nil
}

func (m *mockLinkRepo) DeleteByOriginalURL(ctx context.Context, originalURL string) ([]string, error) {
	if m.DeleteByOriginalURLFunc != nil {
		return m.DeleteByOriginalURLFunc(ctx, originalURL)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var codes []string
	for code, link := range m.links {
		if link.OriginalURL == originalURL {
			codes = append(codes, code)
			delete(m.links, code)
		}
	}
	return codes, nil
}

func (m *mockLinkRepo) IncrementClickCount(ctx context.Context, shortCode string) error {
	if m.IncrementClickCountFunc != nil {
		return m.IncrementClickCountFunc(ctx, shortCode)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.increments = append(m.increments, shortCode)
	if link, ok := m.links[shortCode]; ok {
		link.ClickCount++
	}
	return nil
}

func (m *mockLinkRepo) List(ctx context.Context, page, pageSize int) ([]*Link, int, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, page, pageSize)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	links := make([]*Link, 0, len(m.links))
	for _, l := range m.links {
		links = append(links, l)
	}
	return links, len(links), nil
}

func (m *mockLinkRepo) incrementsFor(shortCode string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, code := range m.increments {
		if code == shortCode {
			n++
		}
	}
	return n
}

// mockLinkCache is a test mock for LinkCache backed by a map.
type mockLinkCache struct {
	mu      sync.Mutex
	entries map[string]string

	GetFunc func(ctx context.Context, shortCode string) (string, error)
	SetFunc func(ctx context.Context, shortCode, originalURL string) error
	DelFunc func(ctx context.Context, shortCodes ...string) error
}

func newMockCache() *mockLinkCache {
	return &mockLinkCache{entries: make(map[string]string)}
}

func (m *mockLinkCache) Get(ctx context.Context, shortCode string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, shortCode)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[shortCode], nil
}

func (m *mockLinkCache) Set(ctx context.Context, shortCode, originalURL string) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, shortCode, originalURL)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[shortCode] = originalURL
	return nil
}

func (m *mockLinkCache) Del(ctx context.Context, shortCodes ...string) error {
	if m.DelFunc != nil {
		return m.DelFunc(ctx, shortCodes...)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, code := range shortCodes {
		delete(m.entries, code)
	}
	return nil
}

func (m *mockLinkCache) get(shortCode string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[shortCode]
}

// mockClickPublisher records published slugs.
type mockClickPublisher struct {
	mu    sync.Mutex
	slugs []string
}

func (m *mockClickPublisher) PublishClick(slug string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slugs = append(m.slugs, slug)
}

func (m *mockClickPublisher) published() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.slugs...)
}
