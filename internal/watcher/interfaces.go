package watcher

import (
	"context"

	"github.com/samvad-hq/pkgnews/pkg/publishers"
)

// EventPublisher delivers an event and reports how many sinks accepted it.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}

// SeenStore remembers entries that were already delivered.
type SeenStore interface {
	SeenEntry(id string) (bool, error)
	MarkEntries(ids []string) error
}

// Logger is the structured logger used by the watcher.
type Logger interface {
	InfoObj(msg, key string, obj interface{})
	DebugObj(msg, key string, obj interface{})
	WarnObj(msg, key string, obj interface{})
	ErrorObj(msg, key string, obj interface{})
}
