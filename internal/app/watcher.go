package app

import (
	"context"
	"fmt"
	"time"

	"github.com/samvad-hq/pkgnews/internal/config"
	"github.com/samvad-hq/pkgnews/internal/logger"
	"github.com/samvad-hq/pkgnews/internal/storage"
	"github.com/samvad-hq/pkgnews/internal/watcher"
	"github.com/samvad-hq/pkgnews/pkg/publishers"
	"github.com/samvad-hq/pkgnews/pkg/sources"
)

// Watcher is the polling runtime: it loads sources and publishers from the
// config files, opens the seen-entry store and runs a watch pass per tick.
type Watcher struct {
	cfg          *config.Config
	sources      []sources.Source
	fanout       *publishers.Fanout
	service      *watcher.Service
	pollInterval time.Duration
	log          logger.Logger
	store        storage.Store
}

// NewWatcher builds a watcher runtime from config files.
func NewWatcher(ctx context.Context, cfg *config.Config, log logger.Logger) (*Watcher, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	sourceReg, err := sources.LoadRegistry(cfg.SourcesFile)
	if err != nil {
		return nil, fmt.Errorf("load sources registry: %w", err)
	}
	srcs := sourceReg.All()
	sourceIDs := make([]string, 0, len(srcs))
	for _, s := range srcs {
		sourceIDs = append(sourceIDs, s.ID)
	}
	log.InfoObj("sources registry loaded", "sources_meta", map[string]any{
		"count": len(sourceIDs),
		"ids":   sourceIDs,
	})

	publisherReg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}
	enabledPublishers := publisherReg.Enabled()
	if len(enabledPublishers) == 0 {
		return nil, fmt.Errorf("no publishers configured")
	}

	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabledPublishers, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	fanout := publishers.NewFanout(pubClients)
	publisherSummaries := make([]map[string]string, 0, len(enabledPublishers))
	for _, pubCfg := range enabledPublishers {
		publisherSummaries = append(publisherSummaries, map[string]string{
			"id":   pubCfg.ID,
			"type": pubCfg.Type,
		})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(publisherSummaries),
		"publishers": publisherSummaries,
	})

	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storage.Options{
		EntryTTL:        cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.BBoltPath,
		"entry_ttl_seconds":        int(cfg.StorageTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.StorageCleanupInterval.Seconds()),
	})

	fetchers := sources.DefaultFetcherRegistry(sources.DefaultHTTPClient(cfg.HTTPTimeout))
	processor := watcher.NewSourceProcessor(fetchers, fanout, store, log)

	return &Watcher{
		cfg:          cfg,
		sources:      srcs,
		fanout:       fanout,
		service:      watcher.NewService(processor, log),
		pollInterval: cfg.PollInterval,
		log:          log,
		store:        store,
	}, nil
}

// Run polls until the context is cancelled. The first pass runs immediately.
func (w *Watcher) Run(ctx context.Context) error {
	if w == nil || w.service == nil {
		return fmt.Errorf("watcher is not initialized")
	}
	defer w.shutdown()

	if len(w.sources) == 0 {
		w.log.WarnObj("no sources configured; watcher idle", "sources_file", w.cfg.SourcesFile)
		<-ctx.Done()
		return ctx.Err()
	}

	w.log.InfoObj("watcher loop starting", "watcher_state", map[string]any{
		"sources_count":    len(w.sources),
		"publishers_count": w.fanout.Size(),
		"poll_interval":    w.pollInterval.String(),
	})

	if err := w.runOnce(ctx); err != nil {
		w.log.ErrorObj("initial poll failed", "error", err.Error())
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.InfoObj("watcher loop exiting", "reason", ctx.Err().Error())
			return nil
		case <-ticker.C:
			if err := w.runOnce(ctx); err != nil {
				w.log.ErrorObj("scheduled poll failed", "error", err.Error())
			}
		}
	}
}

// RunOnce performs a single pass, then releases publishers and the store.
func (w *Watcher) RunOnce(ctx context.Context) error {
	if w == nil || w.service == nil {
		return fmt.Errorf("watcher is not initialized")
	}
	defer w.shutdown()
	return w.runOnce(ctx)
}

func (w *Watcher) runOnce(ctx context.Context) error {
	start := time.Now()
	w.log.InfoObj("poll started", "poll_meta", map[string]any{
		"sources_count": len(w.sources),
		"started_at":    start.UTC(),
	})
	if err := w.service.Run(ctx, w.sources); err != nil {
		return err
	}
	w.log.InfoObj("poll completed", "poll_meta", map[string]any{
		"sources_count": len(w.sources),
		"elapsed_ms":    time.Since(start).Milliseconds(),
	})
	return nil
}

func (w *Watcher) shutdown() {
	if w == nil {
		return
	}
	if err := w.fanout.Close(); err != nil {
		w.log.ErrorObj("publisher close failed", "error", err.Error())
	}
	if w.store == nil {
		return
	}
	if err := w.store.Close(); err != nil {
		w.log.ErrorObj("storage close failed", "error", err.Error())
	}
}
