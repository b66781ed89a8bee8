package domain

import "context"

// Event is a fire-and-forget interaction record, e.g. one chart computation.
type Event struct {
	Type    string
	Payload map[string]any
}

// EventBus delivers events off the request path. Publish must never block
// the caller on a slow sink.
type EventBus interface {
	Publish(ctx context.Context, e Event)
}
