package biz

import (
	"context"
	"encoding/json"

	"echourl/internal/events"

	"github.com/go-kratos/kratos/v2/log"
)

// ClickAggregator applies click events to the store. It always reports the
// message as consumed: malformed payloads are dropped, and an increment
// failure is logged without requesting redelivery, so a store outage at
// increment time undercounts. Counting is at-least-once, never exact.
type ClickAggregator struct {
	repo LinkRepo
	log  *log.Helper
}

func NewClickAggregator(repo LinkRepo, logger log.Logger) *ClickAggregator {
	return &ClickAggregator{
		repo: repo,
		log:  log.NewHelper(logger),
	}
}

// Apply decodes one click event payload and increments the matching row's
// click count. The returned error is always nil; the signature exists so the
// consumer loop can stay oblivious to the drop policy.
func (a *ClickAggregator) Apply(ctx context.Context, payload []byte) error {
	var ev events.ClickEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		a.log.WithContext(ctx).Warnf("dropping malformed click event: %v", err)
		return nil
	}
	if ev.Slug == "" {
		a.log.WithContext(ctx).Warn("dropping click event without slug")
		return nil
	}

	if err := a.repo.IncrementClickCount(ctx, ev.Slug); err != nil {
		a.log.WithContext(ctx).Errorf("failed to increment click count for %q: %v", ev.Slug, err)
		return nil
	}

	a.log.WithContext(ctx).Debugf("incremented click count for %q", ev.Slug)
	return nil
}
