package scribe

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/scribe/internal/platform"
	"github.com/aretw0/scribe/pkg/core"
)

// --- Types ---

// Notebook is an opened store bound to its backend.
type Notebook = platform.Session

// Config mirrors the scribe.yaml file.
type Config = platform.Config

// LogConfig is the log section of scribe.yaml.
type LogConfig = platform.LogConfig

// --- Configuration ---

// Option defines a functional option for configuring Scribe.
type Option = platform.Option

// Backend names.
const (
	BackendFS     = platform.BackendFS
	BackendSQLite = platform.BackendSQLite
	BackendMemory = platform.BackendMemory
)

// ConfigFileName is the per-directory configuration file.
const ConfigFileName = platform.ConfigFileName

// WithLogger sets the logger for the store and its adapters.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithBackend selects the storage backend by name.
func WithBackend(name string) Option {
	return platform.WithBackend(name)
}

// WithKV injects a custom key-value store.
func WithKV(kv core.KV) Option {
	return platform.WithKV(kv)
}

// WithKey overrides the key the notebook is stored under.
func WithKey(key string) Option {
	return platform.WithKey(key)
}

// WithCodec selects the snapshot encoding ("json" or "yaml").
func WithCodec(name string) Option {
	return platform.WithCodec(name)
}

// WithWelcomeNotes seeds sample notes into an empty notebook.
func WithWelcomeNotes(enabled bool) Option {
	return platform.WithWelcomeNotes(enabled)
}

// WithReadOnly opens the notebook without write access.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithMustExist ensures the data directory must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithDevSafety controls the `go run` sandbox.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithStaleLockAfter sets when an abandoned fs lock is broken.
func WithStaleLockAfter(d time.Duration) Option {
	return platform.WithStaleLockAfter(d)
}

// WithWatcherErrorHandler registers a callback for fs watcher errors.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// WithClock overrides the clock used for note timestamps.
func WithClock(now func() time.Time) Option {
	return platform.WithClock(now)
}

// WithIDGenerator overrides note id generation.
func WithIDGenerator(gen func() string) Option {
	return platform.WithIDGenerator(gen)
}

// --- Factory ---

// Open opens the notebook stored at path and loads its notes.
func Open(ctx context.Context, path string, opts ...Option) (*Notebook, error) {
	return platform.Open(ctx, path, opts...)
}

// --- Config ---

// LoadConfig reads a scribe.yaml file. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	return platform.LoadConfig(path)
}

// DefaultConfig returns the configuration written by `scribe init`.
func DefaultConfig() Config {
	return platform.DefaultConfig()
}

// WriteConfig creates a scribe.yaml file; it never overwrites.
func WriteConfig(path string, cfg Config) error {
	return platform.WriteConfig(path, cfg)
}

// --- Safety & Utils ---

// ResolveDataPath determines the actual data directory based on safety rules.
func ResolveDataPath(userPath string, forceTemp bool) string {
	return platform.ResolveDataPath(userPath, forceTemp)
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}

// FindRoot looks upwards for a scribe.yaml file or .scribe directory.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}
