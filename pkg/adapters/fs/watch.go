package fs

import (
	"context"
	"fmt"
	iofs "io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/scribe/pkg/core"
)

// debounceWindow coalesces the bursts produced by a single atomic write.
const debounceWindow = 50 * time.Millisecond

// Watch emits an event whenever a key matching pattern is created, changed
// or removed on disk, including by other processes. Overwrites performed
// with an atomic rename are reported as EventCreate.
func (s *Store) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if pattern == "" {
		pattern = "**"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, doublestar.ErrBadPattern
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := s.recursiveAdd(watcher, s.Path); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	w := &watchWorker{
		store:     s,
		pattern:   pattern,
		watcher:   watcher,
		events:    make(chan core.Event, 100),
		debouncer: newDebouncer(debounceWindow),
	}

	s.setWatcherActive(true)
	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		s.reportError(fmt.Errorf("watcher stopped: %w", err))
	}))

	return w.events, nil
}

type watchWorker struct {
	store     *Store
	pattern   string
	watcher   *fsnotify.Watcher
	events    chan core.Event
	debouncer *debouncer
}

// run is the main event loop for the watcher.
func (w *watchWorker) run(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("watcher panic: %v", recovered)
			if w.store.logger.Enabled(ctx, slog.LevelDebug) {
				w.store.logger.Error("watcher panic", "error", err, "stack", string(debug.Stack()))
			} else {
				w.store.logger.Error("watcher panic", "error", err)
			}
		}
		// Wait for in-flight timers before closing the channel they send on.
		w.debouncer.stopAndWait()
		close(w.events)
	}()
	defer w.store.setWatcherActive(false)
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			w.process(ctx, event)

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.store.logger.Error("fsnotify error", "error", wErr)
			w.store.reportError(wErr)
		}
	}
}

// process filters, maps and debounces a single filesystem event.
func (w *watchWorker) process(ctx context.Context, event fsnotify.Event) {
	w.store.logger.Debug("event received", "name", event.Name, "op", event.Op.String())

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.store.recursiveAdd(w.watcher, event.Name); err != nil {
				w.store.reportError(err)
			}
			return
		}
	}

	key, ok := w.store.keyFor(event.Name)
	if !ok {
		return
	}
	if match, _ := doublestar.Match(w.pattern, key); !match {
		return
	}

	var eType core.EventType
	switch {
	case event.Has(fsnotify.Create):
		eType = core.EventCreate
	case event.Has(fsnotify.Write):
		eType = core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		eType = core.EventDelete
	default:
		return
	}

	w.debouncer.add(core.Event{Type: eType, ID: key, Timestamp: time.Now().Unix()}, func(e core.Event) {
		select {
		case w.events <- e:
		case <-ctx.Done():
		}
	})
}

func (s *Store) recursiveAdd(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != s.Path && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

func (s *Store) reportError(err error) {
	if s.config.ErrorHandler != nil {
		s.config.ErrorHandler(err)
		return
	}
	s.logger.Error("watcher error", "error", err)
}

// debouncer delivers at most one event per key per window; the most
// recent event type seen during the window wins.
type debouncer struct {
	mu      sync.Mutex
	wait    time.Duration
	pending map[string]core.Event
	timers  map[string]*time.Timer
	wg      sync.WaitGroup
	stopped bool
}

func newDebouncer(wait time.Duration) *debouncer {
	return &debouncer{
		wait:    wait,
		pending: make(map[string]core.Event),
		timers:  make(map[string]*time.Timer),
	}
}

func (d *debouncer) add(e core.Event, fire func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.pending[e.ID] = e
	if _, scheduled := d.timers[e.ID]; scheduled {
		return
	}

	d.wg.Add(1)
	d.timers[e.ID] = time.AfterFunc(d.wait, func() {
		defer d.wg.Done()

		d.mu.Lock()
		latest, ok := d.pending[e.ID]
		delete(d.pending, e.ID)
		delete(d.timers, e.ID)
		stopped := d.stopped
		d.mu.Unlock()

		if ok && !stopped {
			fire(latest)
		}
	})
}

// stopAndWait drops pending events and waits for running callbacks.
func (d *debouncer) stopAndWait() {
	d.mu.Lock()
	d.stopped = true
	for id, t := range d.timers {
		if t.Stop() {
			d.wg.Done()
		}
		delete(d.timers, id)
		delete(d.pending, id)
	}
	d.mu.Unlock()

	d.wg.Wait()
}
