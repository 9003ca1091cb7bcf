package notes_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aretw0/scribe/pkg/core"
	"github.com/aretw0/scribe/pkg/notes"
)

var baseTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// tickingClock advances one second per reading.
type tickingClock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock() *tickingClock { return &tickingClock{t: baseTime} }

func (c *tickingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

func sequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("note-%d", n)
	}
}

// memPersister is an in-memory notes.Persister with failure injection.
type memPersister struct {
	mu      sync.Mutex
	snap    *core.Snapshot
	saves   int
	loadErr error
	saveErr error
}

func (p *memPersister) Load(ctx context.Context) (*core.Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.loadErr != nil {
		return nil, p.loadErr
	}
	if p.snap == nil {
		return nil, nil
	}
	snap := p.snap.Clone()
	return &snap, nil
}

func (p *memPersister) Save(ctx context.Context, snap core.Snapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.saveErr != nil {
		return p.saveErr
	}
	p.saves++
	s := snap.Clone()
	p.snap = &s
	return nil
}

func (p *memPersister) setSaveErr(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.saveErr = err
}

func (p *memPersister) stored() (*core.Snapshot, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snap, p.saves
}

var errDiskFull = errors.New("disk full")

func newTestStore(opts ...notes.Option) *notes.Store {
	base := []notes.Option{
		notes.WithClock(newClock().Now),
		notes.WithIDGenerator(sequentialIDs()),
	}
	return notes.NewStore(append(base, opts...)...)
}

func titles(list []core.Note) []string {
	out := make([]string, len(list))
	for i, n := range list {
		out[i] = n.Title
	}
	return out
}

func ids(list []core.Note) []string {
	out := make([]string, len(list))
	for i, n := range list {
		out[i] = n.ID
	}
	return out
}
