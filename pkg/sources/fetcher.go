package sources

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/samvad-hq/pkgnews/pkg/httpclient"
	"github.com/samvad-hq/pkgnews/pkg/news"
)

// TypeNews is an announcement feed whose item descriptions carry markup.
const TypeNews = "news"

// Fetcher retrieves the current entries of a source.
type Fetcher interface {
	ID() string
	Fetch(ctx context.Context, src Source) ([]news.Entry, error)
}

// FetcherRegistry resolves the fetcher for a source.
type FetcherRegistry interface {
	FetcherFor(src Source) (Fetcher, error)
}

type fetcherRegistry struct {
	mu             sync.RWMutex
	fetchersByID   map[string]Fetcher
	fetchersByType map[string]Fetcher
}

// NewFetcherRegistry builds a registry from type-keyed fetchers plus
// source-specific fetchers keyed by their ID(). Source IDs win over types.
func NewFetcherRegistry(typeFetchers map[string]Fetcher, fetchers ...Fetcher) FetcherRegistry {
	reg := &fetcherRegistry{
		fetchersByID:   make(map[string]Fetcher),
		fetchersByType: make(map[string]Fetcher),
	}
	for _, f := range fetchers {
		if f == nil {
			continue
		}
		if key := normalizeKey(f.ID()); key != "" {
			reg.fetchersByID[key] = f
		}
	}
	for typ, f := range typeFetchers {
		if key := normalizeKey(typ); key != "" && f != nil {
			reg.fetchersByType[key] = f
		}
	}
	return reg
}

func (r *fetcherRegistry) FetcherFor(src Source) (Fetcher, error) {
	if r == nil {
		return nil, fmt.Errorf("fetcher registry is nil")
	}
	idKey := normalizeKey(src.ID)
	if idKey == "" {
		return nil, fmt.Errorf("source id is empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if f, ok := r.fetchersByID[idKey]; ok {
		return f, nil
	}
	if typeKey := normalizeKey(src.Type); typeKey != "" {
		if f, ok := r.fetchersByType[typeKey]; ok {
			return f, nil
		}
	}
	return nil, fmt.Errorf("no fetcher registered for source %q (type %q)", src.ID, src.Type)
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// DefaultHTTPClient returns the shared HTTP client for source fetchers.
func DefaultHTTPClient(timeout time.Duration) httpclient.Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return httpclient.NewRestyClient(timeout)
}

// DefaultFetcherRegistry wires the known source types.
func DefaultFetcherRegistry(client httpclient.Client) FetcherRegistry {
	if client == nil {
		client = DefaultHTTPClient(0)
	}
	return NewFetcherRegistry(map[string]Fetcher{
		TypeNews: NewNewsFetcher(client),
	})
}

type newsFetcher struct {
	client httpclient.Client
}

// NewNewsFetcher reads RSS/Atom announcement feeds.
func NewNewsFetcher(client httpclient.Client) Fetcher {
	if client == nil {
		client = DefaultHTTPClient(0)
	}
	return &newsFetcher{client: client}
}

func (f *newsFetcher) ID() string { return TypeNews }

func (f *newsFetcher) Fetch(ctx context.Context, src Source) ([]news.Entry, error) {
	if !strings.EqualFold(src.Type, TypeNews) {
		return nil, fmt.Errorf("news fetcher received incompatible source type %q", src.Type)
	}
	if strings.TrimSpace(src.URL) == "" {
		return nil, fmt.Errorf("source %q url is empty", src.ID)
	}

	entries, err := news.Fetch(ctx, f.client, src.URL, Headers(src))
	if err != nil {
		return nil, fmt.Errorf("fetch source %s: %w", src.ID, err)
	}
	return entries, nil
}
