package events

// ClickEvent is the record published for every successful resolution.
// Produced by the resolver, consumed by the analytics aggregator. It only
// exists in transit on the event channel and is never persisted.
type ClickEvent struct {
	Slug      string `json:"slug"`
	Timestamp string `json:"timestamp"`
}
