package biz

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"echourl/internal/events"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clickPayload(t *testing.T, slug string) []byte {
	t.Helper()
	payload, err := json.Marshal(events.ClickEvent{
		Slug:      slug,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	})
	require.NoError(t, err)
	return payload
}

func TestClickAggregator_Apply(t *testing.T) {
	repo := newMockRepo()
	_, err := repo.Create(context.Background(), "https://example.com/a", "ab3F9")
	require.NoError(t, err)

	agg := NewClickAggregator(repo, log.DefaultLogger)

	require.NoError(t, agg.Apply(context.Background(), clickPayload(t, "ab3F9")))
	require.NoError(t, agg.Apply(context.Background(), clickPayload(t, "ab3F9")))

	assert.Equal(t, 2, repo.incrementsFor("ab3F9"))

	link, err := repo.FindByShortCode(context.Background(), "ab3F9")
	require.NoError(t, err)
	assert.EqualValues(t, 2, link.ClickCount)
}

func TestClickAggregator_DropsMalformedPayload(t *testing.T) {
	repo := newMockRepo()
	repo.IncrementClickCountFunc = func(context.Context, string) error {
		t.Fatal("increment must not be called for malformed payloads")
		return nil
	}
	agg := NewClickAggregator(repo, log.DefaultLogger)

	// Malformed messages are dropped, not retried and not dead-lettered.
	err := agg.Apply(context.Background(), []byte("{not json"))

	assert.NoError(t, err, "malformed payloads are consumed, not redelivered")
}

func TestClickAggregator_DropsPayloadWithoutSlug(t *testing.T) {
	repo := newMockRepo()
	repo.IncrementClickCountFunc = func(context.Context, string) error {
		t.Fatal("increment must not be called without a slug")
		return nil
	}
	agg := NewClickAggregator(repo, log.DefaultLogger)

	err := agg.Apply(context.Background(), []byte(`{"timestamp":"2026-08-29T00:00:00Z"}`))

	assert.NoError(t, err)
}

func TestClickAggregator_IncrementFailureStillConsumes(t *testing.T) {
	repo := newMockRepo()
	repo.IncrementClickCountFunc = func(context.Context, string) error {
		return ErrStore
	}
	agg := NewClickAggregator(repo, log.DefaultLogger)

	// A store outage at increment time undercounts; the message is still
	// considered consumed and no redelivery is requested.
	err := agg.Apply(context.Background(), clickPayload(t, "ab3F9"))

	assert.NoError(t, err)
}
