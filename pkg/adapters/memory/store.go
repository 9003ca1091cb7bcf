// Package memory provides an in-memory core.KV, used for ephemeral
// sessions and tests. Nothing survives the process.
package memory

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/scribe/pkg/core"
)

// ErrInjected is returned by writes while FailWrites is enabled.
var ErrInjected = errors.New("memory store: injected write failure")

// Store is a map-backed key-value store.
type Store struct {
	mu         sync.RWMutex
	data       map[string][]byte
	failWrites bool
}

// New creates an empty store.
func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

// FailWrites makes Set and Delete fail until disabled again.
func (s *Store) FailWrites(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWrites = fail
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return nil, core.ErrKeyNotFound
	}
	return slices.Clone(v), nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWrites {
		return ErrInjected
	}
	s.data[key] = slices.Clone(value)
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWrites {
		return ErrInjected
	}
	delete(s.data, key)
	return nil
}

func (s *Store) Keys(ctx context.Context, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = "**"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, doublestar.ErrBadPattern
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		if ok, _ := doublestar.Match(pattern, k); ok {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys, nil
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "kv:memory"
}

var _ core.KV = (*Store)(nil)
