// Package sources holds the registry of feeds to watch (YAML/JSON) and the
// fetchers that read them.
package sources

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Source describes one feed.
type Source struct {
	ID             string         `json:"id" yaml:"id"`
	Name           string         `json:"name" yaml:"name"`
	Type           string         `json:"type" yaml:"type"`
	URL            string         `json:"url" yaml:"url"`
	RequestDelayMs int            `json:"request_delay_ms" yaml:"request_delay_ms"`
	Config         map[string]any `json:"config" yaml:"config"`
}

type sourcesFile struct {
	Sources []Source `json:"sources" yaml:"sources"`
}

const defaultRequestDelayMs = 500

// Registry is a validated, immutable set of sources.
type Registry struct {
	mu      sync.RWMutex
	sources []Source
	idx     map[string]Source
}

// NewRegistry validates srcs and indexes them by ID.
func NewRegistry(srcs []Source) (*Registry, error) {
	reg := &Registry{
		sources: make([]Source, 0, len(srcs)),
		idx:     make(map[string]Source, len(srcs)),
	}
	for i := range srcs {
		s := sanitizeSource(srcs[i])
		if err := validateSource(s); err != nil {
			return nil, fmt.Errorf("sources[%d]: %w", i, err)
		}
		if _, exists := reg.idx[s.ID]; exists {
			return nil, fmt.Errorf("duplicate source id %q", s.ID)
		}
		reg.sources = append(reg.sources, s)
		reg.idx[s.ID] = s
	}
	return reg, nil
}

// LoadRegistry loads sources from a YAML or JSON file.
func LoadRegistry(path string) (*Registry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("sources file path is empty")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sources file: %w", err)
	}

	file, err := parseSourcesFile(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if len(file.Sources) == 0 {
		return nil, errors.New("sources file contains no sources entries")
	}
	return NewRegistry(file.Sources)
}

// All returns a copy of the registered sources in file order.
func (r *Registry) All() []Source {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Source, len(r.sources))
	copy(out, r.sources)
	return out
}

// ByID returns the source with the given id.
func (r *Registry) ByID(id string) (Source, bool) {
	if r == nil {
		return Source{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.idx[strings.TrimSpace(id)]
	return s, ok
}

type unmarshalFn func([]byte, any) error

func parseSourcesFile(data []byte, ext string) (sourcesFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   unmarshalFn
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var file sourcesFile
		if err := d.fn(data, &file); err == nil {
			return file, nil
		}
	}

	return sourcesFile{}, errors.New("sources file format not recognized (expected YAML or JSON)")
}

func sanitizeSource(s Source) Source {
	s.ID = strings.TrimSpace(s.ID)
	s.Name = strings.TrimSpace(s.Name)
	s.Type = strings.ToLower(strings.TrimSpace(s.Type))
	s.URL = strings.TrimSpace(s.URL)

	if s.Name == "" {
		s.Name = s.ID
	}
	if s.Type == "" {
		s.Type = TypeNews
	}
	if s.Config == nil {
		s.Config = map[string]any{}
	}
	if s.RequestDelayMs <= 0 {
		s.RequestDelayMs = defaultRequestDelayMs
	}
	return s
}

func validateSource(s Source) error {
	if s.ID == "" {
		return errors.New("id is required")
	}
	if s.URL == "" {
		return fmt.Errorf("url is required for source %q", s.ID)
	}
	return nil
}

// RequestDelay returns the pause between requests to this source.
func (s Source) RequestDelay() time.Duration {
	if s.RequestDelayMs <= 0 {
		return time.Duration(defaultRequestDelayMs) * time.Millisecond
	}
	return time.Duration(s.RequestDelayMs) * time.Millisecond
}
