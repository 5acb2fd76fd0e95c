package publishers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/samvad-hq/pkgnews/pkg/news"
)

// writerPublisher prints events to a writer, either as the rendered
// "date -- title" block or as one JSON document per line.
type writerPublisher struct {
	id     string
	format string

	mu sync.Mutex
	w  io.Writer
}

func newStdoutPublisher(_ context.Context, cfg PublisherConfig, _ Logger) (Publisher, error) {
	format := "text"
	if cfg.Stdout != nil && cfg.Stdout.Format != "" {
		format = cfg.Stdout.Format
	}
	return NewWriterPublisher(cfg.ID, format, os.Stdout), nil
}

// NewWriterPublisher returns a publisher writing events to w.
func NewWriterPublisher(id, format string, w io.Writer) Publisher {
	return &writerPublisher{id: id, format: format, w: w}
}

func (p *writerPublisher) ID() string   { return p.id }
func (p *writerPublisher) Type() string { return TypeStdout }

func (p *writerPublisher) Publish(_ context.Context, evt Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.format == "json" {
		if err := json.NewEncoder(p.w).Encode(evt); err != nil {
			return fmt.Errorf("encode event: %w", err)
		}
		return nil
	}

	header := news.NewEntry(evt.Entry.Title, evt.Entry.Date, "", "").Header()
	if _, err := fmt.Fprintf(p.w, "%s\n\n%s\n", header, evt.Entry.Text); err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	return nil
}
