package notes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/google/uuid"

	"github.com/aretw0/scribe/pkg/core"
)

// Persister loads and saves the persisted subset of the state.
// Load returns nil, nil when nothing has been saved yet.
type Persister interface {
	Load(ctx context.Context) (*core.Snapshot, error)
	Save(ctx context.Context, snap core.Snapshot) error
}

// Store is the single owner of a notes State.
// Every operation is one atomic transition; readers receive copies.
type Store struct {
	mu    sync.RWMutex
	state State

	persister Persister
	logger    *slog.Logger
	now       func() time.Time
	newID     func() string
	welcome   bool

	subMu   sync.Mutex
	subs    map[int]chan core.Event
	nextSub int

	// gen counts persisted transitions (guarded by mu); saved is the
	// newest generation written to the persister (guarded by saveMu).
	gen     uint64
	saveMu  sync.Mutex
	saved   uint64
	pending sync.WaitGroup
	closed  bool

	bgCtx  context.Context
	cancel context.CancelFunc
}

// Option configures a Store.
type Option func(*Store)

// WithPersister enables durable persistence of the snapshot.
func WithPersister(p Persister) Option {
	return func(s *Store) {
		s.persister = p
	}
}

// WithLogger sets the logger for the store.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock replaces the time source (useful for testing).
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator replaces the note id generator.
// Generated ids must be unique within the session.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithWelcomeNotes seeds a store with introductory notes when nothing
// has been persisted yet.
func WithWelcomeNotes(enabled bool) Option {
	return func(s *Store) {
		s.welcome = enabled
	}
}

// NewStore creates a store holding InitialState.
func NewStore(opts ...Option) *Store {
	s := &Store{
		state:  InitialState(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
		subs:   make(map[int]chan core.Event),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.bgCtx, s.cancel = context.WithCancel(context.Background())
	return s
}

// --- Operations ---

// CreateNote adds a note with default fields at the top of the collection
// and makes it the active note.
func (s *Store) CreateNote() core.Note {
	n := core.NewNote(s.newID(), s.now())
	s.Dispatch(CreateNote{Note: n})
	return n
}

// UpdateNote merges p into the note with the given id and refreshes its
// modification time. Unknown ids are ignored.
func (s *Store) UpdateNote(id string, p Patch) {
	s.Dispatch(UpdateNote{ID: id, Patch: p, At: s.now()})
}

// DeleteNote removes a note. When it was active, the first remaining note
// becomes active. Unknown ids are ignored.
func (s *Store) DeleteNote(id string) {
	s.Dispatch(DeleteNote{ID: id})
}

// SetActiveNote selects a note. The id is not validated; "" clears the selection.
func (s *Store) SetActiveNote(id string) {
	s.Dispatch(SetActiveNote{ID: id})
}

// SearchNotes sets the filter applied by VisibleNotes. "" shows everything.
func (s *Store) SearchNotes(query string) {
	s.Dispatch(SearchNotes{Query: query})
}

// SortNotes sets the ordering applied by VisibleNotes.
// The collection order itself is left untouched.
func (s *Store) SortNotes(by core.SortField, dir core.SortDirection) {
	s.Dispatch(SortNotes{By: by, Direction: dir})
}

// ClearError resets the recorded operational error.
func (s *Store) ClearError() {
	s.Dispatch(SetError{Err: nil})
}

// --- Queries ---

// Current returns a copy of the state.
func (s *Store) Current() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// VisibleNotes returns the filtered and sorted view of the current state.
func (s *Store) VisibleNotes() []core.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return VisibleNotes(s.state)
}

// ActiveNote returns the selected note, if the selection resolves.
func (s *Store) ActiveNote() (core.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.ActiveNote()
}

// Note looks a note up by id.
func (s *Store) Note(id string) (core.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Find(id)
}

// --- Dispatch ---

// Dispatch applies cmd as a single transition, notifies subscribers and,
// when the persisted fields changed, schedules a background save.
func (s *Store) Dispatch(cmd Command) {
	s.mu.Lock()
	prev := s.state
	next := Reduce(prev, cmd)
	s.state = next

	var (
		snap    core.Snapshot
		gen     uint64
		persist bool
	)
	if s.persister != nil && !s.closed && triggersSave(cmd) && snapshotChanged(prev, next) {
		s.gen++
		gen = s.gen
		snap = next.Snapshot()
		persist = true
	}
	s.mu.Unlock()

	if e, ok := eventFor(cmd, prev, next, time.Now()); ok {
		s.publish(e)
	}
	if persist {
		s.scheduleSave(snap, gen)
	}
}

func triggersSave(cmd Command) bool {
	switch cmd.(type) {
	case CreateNote, UpdateNote, DeleteNote, SortNotes:
		return true
	}
	return false
}

func eventFor(cmd Command, prev, next State, at time.Time) (core.Event, bool) {
	e := core.Event{Timestamp: at.Unix()}
	changed := snapshotChanged(prev, next)

	switch c := cmd.(type) {
	case CreateNote:
		if !changed {
			return e, false
		}
		e.Type, e.ID = core.EventCreate, c.Note.ID
	case UpdateNote:
		if !changed {
			return e, false
		}
		e.Type, e.ID = core.EventModify, c.ID
	case DeleteNote:
		if !changed {
			return e, false
		}
		e.Type, e.ID = core.EventDelete, c.ID
	case SetActiveNote:
		e.Type, e.ID = core.EventSelect, c.ID
	case SearchNotes:
		e.Type = core.EventSearch
	case SortNotes:
		if !changed {
			return e, false
		}
		e.Type = core.EventSort
	case Hydrate:
		e.Type = core.EventLoad
	case SetError:
		if c.Err == nil {
			return e, false
		}
		e.Type = core.EventError
	default:
		return e, false
	}
	return e, true
}

// --- Persistence ---

// Load reads the persisted snapshot into the store.
//
// A missing snapshot leaves the store empty (or seeded with welcome notes).
// A failing one is recorded in State.Err and the store falls back to an
// empty collection; the returned error wraps core.ErrLoadFailure.
func (s *Store) Load(ctx context.Context) error {
	s.Dispatch(SetLoading{Loading: true})
	defer s.Dispatch(SetLoading{Loading: false})

	if s.persister == nil {
		s.seed()
		return nil
	}

	snap, err := s.persister.Load(ctx)
	if err != nil {
		if !errors.Is(err, core.ErrLoadFailure) {
			err = fmt.Errorf("%w: %w", core.ErrLoadFailure, err)
		}
		s.logger.Warn("could not load notes, starting empty", "error", err)
		s.Dispatch(Hydrate{})
		s.Dispatch(SetError{Err: err})
		return err
	}

	if snap == nil {
		s.logger.Debug("no persisted notes found")
		s.seed()
		return nil
	}

	s.Dispatch(Hydrate{Snapshot: *snap})
	s.logger.Debug("notes loaded", "count", len(snap.Notes))
	return nil
}

func (s *Store) seed() {
	if !s.welcome {
		return
	}
	s.Dispatch(Hydrate{Snapshot: core.Snapshot{Notes: WelcomeNotes()}})
}

func (s *Store) scheduleSave(snap core.Snapshot, gen uint64) {
	s.pending.Add(1)
	lifecycle.Go(s.bgCtx, func(ctx context.Context) error {
		defer s.pending.Done()
		return s.save(ctx, snap, gen)
	}, lifecycle.WithErrorHandler(func(err error) {
		s.logger.Error("background save aborted", "error", err)
	}))
}

// save writes snap unless a newer generation is already on disk.
func (s *Store) save(ctx context.Context, snap core.Snapshot, gen uint64) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	if gen <= s.saved {
		s.logger.Debug("skipping stale save", "generation", gen, "saved", s.saved)
		return nil
	}

	if err := s.persister.Save(ctx, snap); err != nil {
		if !errors.Is(err, core.ErrSaveFailure) {
			err = fmt.Errorf("%w: %w", core.ErrSaveFailure, err)
		}
		s.logger.Error("failed to persist notes", "generation", gen, "error", err)
		s.Dispatch(SetError{Err: err})
		return err
	}

	s.saved = gen
	s.logger.Debug("notes persisted", "generation", gen, "count", len(snap.Notes))

	s.mu.RLock()
	lastErr := s.state.Err
	s.mu.RUnlock()
	if errors.Is(lastErr, core.ErrSaveFailure) {
		s.Dispatch(SetError{Err: nil})
	}
	return nil
}

// Flush waits until every scheduled save has finished.
func (s *Store) Flush(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close flushes pending saves, retries the latest snapshot if it never
// reached the persister, and releases subscribers. The store keeps
// answering queries afterwards but no longer persists.
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	gen := s.gen
	snap := s.state.Snapshot()
	s.mu.Unlock()

	err := s.Flush(ctx)
	if err == nil && s.persister != nil {
		err = s.save(ctx, snap, gen)
	}

	s.cancel()
	s.closeSubscribers()
	return err
}

// --- Subscriptions ---

// Subscribe returns a channel receiving an event for every visible change.
// Delivery is best effort: events are dropped when the buffer is full.
// The channel is closed when ctx ends or the store is closed.
func (s *Store) Subscribe(ctx context.Context, buffer int) <-chan core.Event {
	ch := make(chan core.Event, buffer)

	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.subMu.Unlock()

	lifecycle.Go(ctx, func(ctx context.Context) error {
		select {
		case <-ctx.Done():
		case <-s.bgCtx.Done():
		}
		s.unsubscribe(id)
		return nil
	})

	return ch
}

func (s *Store) publish(e core.Event) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for _, ch := range s.subs {
		select {
		case ch <- e:
		default:
			s.logger.Debug("subscriber buffer full, dropping event", "event", e.String())
		}
	}
}

func (s *Store) unsubscribe(id int) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	if ch, ok := s.subs[id]; ok {
		delete(s.subs, id)
		close(ch)
	}
}

func (s *Store) closeSubscribers() {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}
