// Package lifecycle exposes scribe event streams as lifecycle sources so
// that a supervising process can consume store and watcher events through
// the same interface as its other event producers.
package lifecycle

import (
	"context"
	"slices"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/scribe/pkg/core"
)

type eventSource struct {
	events <-chan core.Event
	types  []core.EventType
	out    chan lifecycle.Event
}

// SourceOption configures a Source.
type SourceOption func(*eventSource)

// WithTypes forwards only events of the given types.
func WithTypes(types ...core.EventType) SourceOption {
	return func(s *eventSource) {
		s.types = append(s.types, types...)
	}
}

// NewSource wraps a core.Event channel (from notes.Store.Subscribe or a
// Watchable KV) as a lifecycle.Source. The output channel closes when the
// input closes or the Start context ends.
func NewSource(events <-chan core.Event, opts ...SourceOption) lifecycle.Source {
	s := &eventSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *eventSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *eventSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				if len(s.types) > 0 && !slices.Contains(s.types, e.Type) {
					continue
				}
				// core.Event satisfies lifecycle.Event through String().
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
