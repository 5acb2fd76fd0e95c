package news

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/samvad-hq/pkgnews/pkg/httpclient"
)

// DefaultURL is the Arch Linux news feed.
const DefaultURL = "https://archlinux.org/feeds/news/"

// Fetch downloads the feed at url and returns its entries in feed order.
func Fetch(ctx context.Context, client httpclient.Client, url string, headers map[string]string) ([]Entry, error) {
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("news feed url is empty")
	}

	body, err := httpclient.Fetch(ctx, client, url, headers)
	if err != nil {
		return nil, err
	}

	entries, err := ParseFeed(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse news feed %s: %w", url, err)
	}
	return entries, nil
}

// ParseFeed decodes an RSS or Atom document into entries.
func ParseFeed(r io.Reader) ([]Entry, error) {
	feed, err := gofeed.NewParser().Parse(r)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		entries = append(entries, entryFromItem(item))
	}
	return entries, nil
}

func entryFromItem(item *gofeed.Item) Entry {
	description := item.Description
	if strings.TrimSpace(description) == "" {
		description = item.Content
	}
	date := item.Published
	if strings.TrimSpace(date) == "" {
		date = item.Updated
	}
	return NewEntry(item.Title, date, item.Link, description)
}
