// Package fs implements core.KV on the local filesystem: one file per key
// inside a data directory, written atomically and guarded by a lock file.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/scribe/pkg/core"
)

// Config holds the configuration for the filesystem store.
type Config struct {
	Path           string
	Extension      string // appended to every key on disk, e.g. ".json"
	MustExist      bool
	ReadOnly       bool
	StaleLockAfter time.Duration // zero disables stale lock recovery
	Logger         *slog.Logger
	ErrorHandler   func(error) // receives watcher runtime errors
}

// Store implements core.KV using plain files.
type Store struct {
	Path     string
	config   Config
	logger   *slog.Logger
	lockPath string

	mu            sync.RWMutex
	watcherActive bool
	lastWrite     *time.Time
	writes        int
}

// NewStore creates a new filesystem-backed store. Call Initialize before use.
func NewStore(config Config) *Store {
	if config.Extension == "" {
		config.Extension = ".json"
	}
	if !strings.HasPrefix(config.Extension, ".") {
		config.Extension = "." + config.Extension
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{
		Path:     config.Path,
		config:   config,
		logger:   logger,
		lockPath: filepath.Join(config.Path, LockFileName),
	}
}

// Initialize ensures the data directory exists.
func (s *Store) Initialize(ctx context.Context) error {
	if s.config.MustExist || s.config.ReadOnly {
		info, err := os.Stat(s.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("data path does not exist: %s", s.Path)
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("data path is not a directory: %s", s.Path)
		}
		return nil
	}

	if err := os.MkdirAll(s.Path, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

// filename maps a key to its file, refusing keys that escape the directory.
func (s *Store) filename(key string) (string, error) {
	if key == "" {
		return "", errors.New("empty key")
	}
	clean := filepath.Clean(filepath.FromSlash(key))
	if filepath.IsAbs(clean) || clean == "." || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(s.Path, clean+s.config.Extension), nil
}

// Get reads the value stored at key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	name, err := s.filename(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(name)
	if os.IsNotExist(err) {
		return nil, core.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// Set writes value at key atomically (temp file + rename).
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}
	name, err := s.filename(key)
	if err != nil {
		return err
	}

	unlock, err := s.acquireLock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", key, err)
	}
	if err := writeFileAtomic(name, value, 0644); err != nil {
		return err
	}

	s.recordWrite()
	s.logger.Debug("kv write", "key", key, "bytes", len(value))
	return nil
}

// Delete removes key. Missing keys are ignored.
func (s *Store) Delete(ctx context.Context, key string) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}
	name, err := s.filename(key)
	if err != nil {
		return err
	}

	unlock, err := s.acquireLock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	if err := os.Remove(name); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	s.recordWrite()
	return nil
}

// Keys walks the data directory and returns the keys matching pattern.
func (s *Store) Keys(ctx context.Context, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = "**"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, doublestar.ErrBadPattern
	}

	var keys []string
	err := filepath.WalkDir(s.Path, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			if path != s.Path && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		key, ok := s.keyFor(path)
		if !ok {
			return nil
		}
		if match, _ := doublestar.Match(pattern, key); match {
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}

	slices.Sort(keys)
	return keys, nil
}

// keyFor maps a file path back to its key. Temp, lock and foreign files
// report false.
func (s *Store) keyFor(path string) (string, bool) {
	base := filepath.Base(path)
	if strings.HasPrefix(base, TempFilePrefix) || base == LockFileName {
		return "", false
	}
	if filepath.Ext(base) != s.config.Extension {
		return "", false
	}
	rel, err := filepath.Rel(s.Path, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return filepath.ToSlash(strings.TrimSuffix(rel, s.config.Extension)), true
}

var _ core.KV = (*Store)(nil)
var _ core.Watchable = (*Store)(nil)
