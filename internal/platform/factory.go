package platform

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/scribe/pkg/adapters/fs"
	"github.com/aretw0/scribe/pkg/adapters/memory"
	"github.com/aretw0/scribe/pkg/adapters/sqlite"
	"github.com/aretw0/scribe/pkg/core"
	"github.com/aretw0/scribe/pkg/notes"
	"github.com/aretw0/scribe/pkg/persist"
)

// SQLiteFileName is the database file created inside the data directory.
const SQLiteFileName = "scribe.db"

// Session is an opened notes store together with the backend it persists to.
type Session struct {
	Store   *notes.Store
	KV      core.KV
	Path    string // resolved data directory; empty for memory and injected backends
	Backend string
}

// Close flushes and closes the store, then releases the backend.
func (s *Session) Close(ctx context.Context) error {
	err := s.Store.Close(ctx)
	if c, ok := s.KV.(core.Closer); ok {
		err = errors.Join(err, c.Close())
	}
	return err
}

// Open builds the backend selected by opts, wires the persistence adapter
// and the store, and loads the persisted notes.
//
// The uri is the data directory for the fs and sqlite backends and is
// ignored by the memory backend.
//
// A snapshot that cannot be read does not fail Open: the store starts empty,
// State.Err records the failure and the error is logged.
func Open(ctx context.Context, uri string, opts ...Option) (*Session, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	kv, path, err := openKV(ctx, uri, o)
	if err != nil {
		return nil, err
	}

	codec, err := persist.CodecFor(o.codec)
	if err != nil {
		closeKV(kv)
		return nil, err
	}

	adapterOpts := []persist.Option{persist.WithCodec(codec), persist.WithLogger(o.logger)}
	if o.key != "" {
		adapterOpts = append(adapterOpts, persist.WithKey(o.key))
	}
	adapter := persist.NewAdapter(kv, adapterOpts...)

	storeOpts := []notes.Option{
		notes.WithPersister(adapter),
		notes.WithLogger(o.logger),
		notes.WithWelcomeNotes(o.welcome),
	}
	if o.clock != nil {
		storeOpts = append(storeOpts, notes.WithClock(o.clock))
	}
	if o.idGenerator != nil {
		storeOpts = append(storeOpts, notes.WithIDGenerator(o.idGenerator))
	}
	store := notes.NewStore(storeOpts...)

	if err := store.Load(ctx); err != nil {
		o.logger.Error("starting with an empty notebook", "error", err)
	}

	o.logger.Debug("store opened", "backend", o.backend, "path", path, "key", adapter.Key())
	return &Session{Store: store, KV: kv, Path: path, Backend: o.backend}, nil
}

func openKV(ctx context.Context, uri string, o *options) (core.KV, string, error) {
	if o.kv != nil {
		return o.kv, "", nil
	}

	switch o.backend {
	case BackendMemory:
		return memory.New(), "", nil
	case BackendFS, BackendSQLite:
	default:
		return nil, "", fmt.Errorf("%w: %s", core.ErrUnknownBackend, o.backend)
	}

	path := resolvePath(uri, o)

	if o.backend == BackendSQLite {
		dir := fs.NewStore(fs.Config{Path: path, MustExist: o.mustExist || o.readOnly, Logger: o.logger})
		if err := dir.Initialize(ctx); err != nil {
			return nil, "", err
		}
		kv, err := sqlite.Open(ctx, filepath.Join(path, SQLiteFileName), sqlite.WithReadOnly(o.readOnly))
		if err != nil {
			return nil, "", err
		}
		return kv, path, nil
	}

	kv := fs.NewStore(fs.Config{
		Path:           path,
		MustExist:      o.mustExist,
		ReadOnly:       o.readOnly,
		StaleLockAfter: o.staleLockAfter,
		Logger:         o.logger,
		ErrorHandler:   o.errorHandler,
	})
	if err := kv.Initialize(ctx); err != nil {
		return nil, "", err
	}
	return kv, path, nil
}

// resolvePath applies the dev sandbox rules. Read-only access is inherently
// safe and bypasses the sandbox.
func resolvePath(uri string, o *options) string {
	bypass := o.readOnly || !o.devSafety
	useTemp := o.forceTemp || (IsDevRun() && !bypass)
	path := ResolveDataPath(uri, useTemp)

	if IsDevRun() {
		switch {
		case !bypass:
			o.logger.Debug("running in SAFE mode (dev sandbox enabled)", "path", path)
		case o.readOnly:
			o.logger.Debug("running in READ-ONLY mode (bypassing dev sandbox)", "path", path)
		default:
			o.logger.Warn("running in UNSAFE mode (bypassing dev sandbox)", "path", path)
		}
	}
	if useTemp && path != uri {
		o.logger.Warn("data directory re-rooted", "original_path", uri, "resolved_path", path)
	}
	return path
}

func closeKV(kv core.KV) {
	if c, ok := kv.(core.Closer); ok {
		_ = c.Close()
	}
}
