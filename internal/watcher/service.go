// Package watcher polls configured sources and forwards new entries to the
// publishers.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samvad-hq/pkgnews/internal/logger"
	"github.com/samvad-hq/pkgnews/pkg/sources"
)

// Processor handles a single source.
type Processor interface {
	Process(ctx context.Context, src sources.Source) error
}

// Service runs the processor over every source in order.
type Service struct {
	processor Processor
	log       Logger
	sleep     func(ctx context.Context, d time.Duration) error
}

// NewService builds a Service around processor.
func NewService(processor Processor, log Logger) *Service {
	if log == nil {
		log = &logger.NopLogger{}
	}
	return &Service{processor: processor, log: log, sleep: sleepCtx}
}

// Run executes one pass over srcs. A failing source does not stop the pass;
// the errors are joined.
func (s *Service) Run(ctx context.Context, srcs []sources.Source) error {
	if s == nil || s.processor == nil {
		return fmt.Errorf("watcher service is not initialized")
	}
	if len(srcs) == 0 {
		return fmt.Errorf("no sources configured for watching")
	}
	return errors.Join(s.runAll(ctx, srcs)...)
}

func (s *Service) runAll(ctx context.Context, srcs []sources.Source) []error {
	var errs []error
	for i, src := range srcs {
		if ctx.Err() != nil {
			return errs
		}
		if i > 0 {
			if err := s.sleep(ctx, src.RequestDelay()); err != nil {
				return errs
			}
		}
		if err := s.processor.Process(ctx, src); err != nil {
			errs = append(errs, err)
			s.log.ErrorObj("source watch failed", "source_error", map[string]any{
				"source_id": src.ID,
				"error":     err.Error(),
			})
		}
	}
	return errs
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
