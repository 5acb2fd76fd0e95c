package main

import (
	"context"
	"fmt"

	"github.com/samvad-hq/pkgnews/internal/storage"
	"github.com/samvad-hq/pkgnews/internal/terminal"
	"github.com/samvad-hq/pkgnews/pkg/httpclient"
	"github.com/samvad-hq/pkgnews/pkg/news"
)

func runNews(ctx context.Context, e *env, args []string) error {
	var (
		url       string
		unread    bool
		mark      bool
		colorFlag string
		width     int
		limit     int
	)
	flags := newFlagSet("news", e.stderr)
	flags.StringVarP(&url, "url", "u", e.cfg.NewsURL, "Feed URL")
	flags.BoolVar(&unread, "unread", false, "Only show entries not marked as read")
	flags.BoolVar(&mark, "mark", false, "Mark the shown entries as read")
	flags.StringVar(&colorFlag, "color", "auto", "Color output: auto|always|never")
	flags.IntVarP(&width, "width", "w", 0, "Wrap width (0 uses terminal width if available)")
	flags.IntVarP(&limit, "limit", "n", 0, "Show at most this many entries (0 for all)")
	if err := flags.Parse(args); err != nil {
		return err
	}

	mode, err := terminal.ParseColorMode(colorFlag)
	if err != nil {
		return err
	}

	client := httpclient.NewRestyClient(e.cfg.HTTPTimeout)
	entries, err := news.Fetch(ctx, client, url, nil)
	if err != nil {
		return err
	}
	e.log.DebugObj("news feed fetched", "news_meta", map[string]any{
		"url":     url,
		"entries": len(entries),
	})

	var store storage.Store
	if unread || mark {
		store, err = storage.NewStore(e.cfg.StorageType, e.cfg.BBoltPath, storage.Options{
			EntryTTL:        e.cfg.StorageTTL,
			CleanupInterval: e.cfg.StorageCleanupInterval,
		})
		if err != nil {
			return fmt.Errorf("init storage: %w", err)
		}
		defer store.Close()
	}

	if unread {
		entries, err = filterUnread(store, entries)
		if err != nil {
			return err
		}
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	if err := terminal.NewPrinter(e.stdout, mode, width).Entries(entries); err != nil {
		return fmt.Errorf("write entries: %w", err)
	}

	if mark && len(entries) > 0 {
		ids := make([]string, len(entries))
		for i, entry := range entries {
			ids[i] = entry.ID()
		}
		if err := store.MarkEntries(ids); err != nil {
			return fmt.Errorf("mark entries: %w", err)
		}
	}
	return nil
}

func filterUnread(store storage.Store, entries []news.Entry) ([]news.Entry, error) {
	out := entries[:0:0]
	for _, entry := range entries {
		seen, err := store.SeenEntry(entry.ID())
		if err != nil {
			return nil, fmt.Errorf("check entry %s: %w", entry.ID(), err)
		}
		if !seen {
			out = append(out, entry)
		}
	}
	return out, nil
}
