// Package storage remembers which feed entries have already been handled.
package storage

import (
	"fmt"
	"strings"
	"time"
)

// Store tracks seen entry IDs.
type Store interface {
	Close() error
	SeenEntry(id string) (bool, error)
	MarkEntry(id string) error
	MarkEntries(ids []string) error
}

// Options controls retention for concrete store implementations.
type Options struct {
	EntryTTL        time.Duration
	CleanupInterval time.Duration
}

const (
	defaultEntryTTL        = 90 * 24 * time.Hour
	defaultCleanupInterval = 24 * time.Hour
)

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "noop", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.EntryTTL <= 0 {
		opts.EntryTTL = defaultEntryTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error                   { return nil }
func (noopStore) SeenEntry(string) (bool, error) { return false, nil }
func (noopStore) MarkEntry(string) error         { return nil }
func (noopStore) MarkEntries([]string) error     { return nil }
