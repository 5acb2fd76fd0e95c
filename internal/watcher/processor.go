package watcher

import (
	"context"
	"errors"
	"fmt"

	"github.com/samvad-hq/pkgnews/internal/logger"
	"github.com/samvad-hq/pkgnews/pkg/news"
	"github.com/samvad-hq/pkgnews/pkg/publishers"
	"github.com/samvad-hq/pkgnews/pkg/sources"
)

// SourceProcessor fetches one source and publishes the entries not seen before.
type SourceProcessor struct {
	registry  sources.FetcherRegistry
	publisher EventPublisher
	store     SeenStore
	log       Logger
}

// NewSourceProcessor wires a processor. A nil store publishes every entry on
// every pass.
func NewSourceProcessor(reg sources.FetcherRegistry, pub EventPublisher, store SeenStore, log Logger) *SourceProcessor {
	if log == nil {
		log = &logger.NopLogger{}
	}
	return &SourceProcessor{
		registry:  reg,
		publisher: pub,
		store:     store,
		log:       log,
	}
}

// Process runs a fetch, filter, publish and mark cycle for src. Entries are
// marked seen only after at least one publisher accepted them, so a failed
// delivery is retried on the next pass.
func (p *SourceProcessor) Process(ctx context.Context, src sources.Source) error {
	fetcher, err := p.registry.FetcherFor(src)
	if err != nil {
		return fmt.Errorf("resolve fetcher for source %s: %w", src.ID, err)
	}

	entries, err := fetcher.Fetch(ctx, src)
	if err != nil {
		return err
	}

	fresh := p.filterNewEntries(src, entries)

	var (
		errs      []error
		delivered []string
	)
	for _, entry := range fresh {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		evt := publishers.NewEvent(src.ID, src.Name, entry)
		if p.publisher == nil {
			continue
		}
		n, err := p.publisher.Publish(ctx, evt)
		if err != nil {
			errs = append(errs, fmt.Errorf("publish entry %s: %w", evt.Entry.ID, err))
		}
		if n > 0 {
			delivered = append(delivered, evt.Entry.ID)
		}
	}

	if p.store != nil && len(delivered) > 0 {
		if err := p.store.MarkEntries(delivered); err != nil {
			errs = append(errs, fmt.Errorf("mark entries for source %s: %w", src.ID, err))
		}
	}

	p.log.InfoObj("source processed", "source_result", map[string]any{
		"source_id":         src.ID,
		"entries_fetched":   len(entries),
		"entries_new":       len(fresh),
		"entries_published": len(delivered),
	})
	return errors.Join(errs...)
}

// filterNewEntries drops entries the store has seen and duplicates within
// the batch. A store lookup error keeps the entry.
func (p *SourceProcessor) filterNewEntries(src sources.Source, entries []news.Entry) []news.Entry {
	out := make([]news.Entry, 0, len(entries))
	batch := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		id := entry.ID()
		if _, dup := batch[id]; dup {
			continue
		}
		batch[id] = struct{}{}

		if p.store != nil {
			seen, err := p.store.SeenEntry(id)
			if err != nil {
				p.log.WarnObj("seen lookup failed", "storage_error", map[string]any{
					"source_id": src.ID,
					"entry_id":  id,
					"error":     err.Error(),
				})
			} else if seen {
				continue
			}
		}
		out = append(out, entry)
	}
	return out
}
