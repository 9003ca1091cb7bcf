package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/scribe/pkg/core"
)

// Backend names accepted by WithBackend.
const (
	BackendFS     = "fs"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// options holds the internal configuration for opening a notes store.
type options struct {
	kv             core.KV
	logger         *slog.Logger
	backend        string
	key            string
	codec          string
	welcome        bool
	readOnly       bool
	mustExist      bool
	forceTemp      bool
	devSafety      bool
	staleLockAfter time.Duration
	errorHandler   func(error)
	clock          func() time.Time
	idGenerator    func() string
}

// Option defines a functional option for configuring Scribe.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		backend:        BackendFS,
		codec:          "json",
		devSafety:      true,
		staleLockAfter: 30 * time.Second,
	}
}

// WithLogger sets the logger shared by the store and its adapters.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithBackend selects the key-value backend by name ("fs", "sqlite", "memory").
// Defaults to "fs".
func WithBackend(name string) Option {
	return func(o *options) {
		o.backend = name
	}
}

// WithKV injects a custom key-value store. When set, the backend name and
// the data path are ignored.
func WithKV(kv core.KV) Option {
	return func(o *options) {
		o.kv = kv
	}
}

// WithKey overrides the key the snapshot is stored under.
func WithKey(key string) Option {
	return func(o *options) {
		o.key = key
	}
}

// WithCodec selects the snapshot encoding ("json" or "yaml").
func WithCodec(name string) Option {
	return func(o *options) {
		o.codec = name
	}
}

// WithWelcomeNotes seeds the sample notes when nothing was persisted yet.
func WithWelcomeNotes(enabled bool) Option {
	return func(o *options) {
		o.welcome = enabled
	}
}

// WithReadOnly enables read-only mode.
// In this mode:
// 1. Every save fails with ErrReadOnly and is reported through State.Err.
// 2. The data directory is never created.
// 3. Dev Safety (go run temp dir) is BYPASSED (uses real path).
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.readOnly = enabled
	}
}

// WithMustExist ensures the data directory must already exist.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.mustExist = must
	}
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.forceTemp = force
	}
}

// WithDevSafety controls the sandbox used when running via `go run` or `go test`.
// By default (true), the data directory is re-rooted into a temporary directory
// to prevent accidental data loss.
//
// CAUTION: Only disable this if you are sure your code is safe.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.devSafety = enabled
	}
}

// WithStaleLockAfter sets the age after which an abandoned fs lock file is
// broken. Zero waits forever.
func WithStaleLockAfter(d time.Duration) Option {
	return func(o *options) {
		o.staleLockAfter = d
	}
}

// WithWatcherErrorHandler registers a callback for errors raised by the fs watcher.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}

// WithClock overrides the store clock.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.clock = now
	}
}

// WithIDGenerator overrides note id generation.
func WithIDGenerator(gen func() string) Option {
	return func(o *options) {
		o.idGenerator = gen
	}
}
