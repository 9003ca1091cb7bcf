package persist

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/introspection"

	"github.com/aretw0/scribe/pkg/core"
)

// DefaultKey is the fixed key the snapshot is stored under.
const DefaultKey = "notes-app-state"

// timeLayout keeps full precision so instants survive a round trip.
const timeLayout = time.RFC3339Nano

// Adapter loads and saves notes snapshots in a core.KV.
type Adapter struct {
	kv     core.KV
	key    string
	codec  Codec
	logger *slog.Logger
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithKey overrides DefaultKey.
func WithKey(key string) Option {
	return func(a *Adapter) {
		if key != "" {
			a.key = key
		}
	}
}

// WithCodec selects the byte format (JSON by default).
func WithCodec(c Codec) Option {
	return func(a *Adapter) {
		if c != nil {
			a.codec = c
		}
	}
}

// WithLogger sets the logger for the adapter.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Adapter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAdapter creates a persistence adapter over kv.
func NewAdapter(kv core.KV, opts ...Option) *Adapter {
	a := &Adapter{
		kv:     kv,
		key:    DefaultKey,
		codec:  JSONCodec{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Key returns the key the snapshot lives under.
func (a *Adapter) Key() string {
	return a.key
}

// Load reads the snapshot. It returns nil, nil when nothing was saved yet,
// and an error wrapping core.ErrLoadFailure when the stored bytes cannot be
// read or decoded.
func (a *Adapter) Load(ctx context.Context) (*core.Snapshot, error) {
	data, err := a.kv.Get(ctx, a.key)
	if errors.Is(err, core.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", core.ErrLoadFailure, a.key, err)
	}

	var doc Document
	if err := a.codec.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", core.ErrLoadFailure, a.key, err)
	}

	snap, err := a.fromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", core.ErrLoadFailure, a.key, err)
	}
	return &snap, nil
}

// Save encodes snap and writes it under the fixed key. Failures wrap
// core.ErrSaveFailure.
func (a *Adapter) Save(ctx context.Context, snap core.Snapshot) error {
	data, err := a.codec.Marshal(toDocument(snap))
	if err != nil {
		return fmt.Errorf("%w: encode: %w", core.ErrSaveFailure, err)
	}
	if err := a.kv.Set(ctx, a.key, data); err != nil {
		return fmt.Errorf("%w: write %s: %w", core.ErrSaveFailure, a.key, err)
	}
	return nil
}

func toDocument(snap core.Snapshot) Document {
	doc := Document{
		Notes:         make([]NoteDocument, 0, len(snap.Notes)),
		SortBy:        string(snap.SortBy),
		SortDirection: string(snap.SortDirection),
	}
	for _, n := range snap.Notes {
		doc.Notes = append(doc.Notes, NoteDocument{
			ID:        n.ID,
			Title:     n.Title,
			Content:   n.Content,
			CreatedAt: n.CreatedAt.UTC().Format(timeLayout),
			UpdatedAt: n.UpdatedAt.UTC().Format(timeLayout),
			Tags:      n.Tags,
		})
	}
	return doc
}

// fromDocument converts and normalises a decoded document: notes without
// an id or with a repeated id are dropped, modification times earlier than
// creation are clamped and unknown sort settings fall back to defaults.
func (a *Adapter) fromDocument(doc Document) (core.Snapshot, error) {
	snap := core.Snapshot{
		Notes:         make([]core.Note, 0, len(doc.Notes)),
		SortBy:        core.SortField(doc.SortBy),
		SortDirection: core.SortDirection(doc.SortDirection),
	}
	if !snap.SortBy.Valid() {
		snap.SortBy = core.DefaultSortField
	}
	if !snap.SortDirection.Valid() {
		snap.SortDirection = core.DefaultSortDirection
	}

	seen := make(map[string]bool, len(doc.Notes))
	for i, nd := range doc.Notes {
		if nd.ID == "" {
			a.logger.Warn("dropping persisted note without id", "index", i)
			continue
		}
		if seen[nd.ID] {
			a.logger.Warn("dropping persisted note with duplicate id", "id", nd.ID)
			continue
		}
		seen[nd.ID] = true

		created, err := time.Parse(timeLayout, nd.CreatedAt)
		if err != nil {
			return core.Snapshot{}, fmt.Errorf("note %s: invalid createdAt: %w", nd.ID, err)
		}
		updated, err := time.Parse(timeLayout, nd.UpdatedAt)
		if err != nil {
			return core.Snapshot{}, fmt.Errorf("note %s: invalid updatedAt: %w", nd.ID, err)
		}
		if updated.Before(created) {
			a.logger.Warn("clamping updatedAt to createdAt", "id", nd.ID)
			updated = created
		}

		snap.Notes = append(snap.Notes, core.Note{
			ID:        nd.ID,
			Title:     nd.Title,
			Content:   nd.Content,
			CreatedAt: created.UTC(),
			UpdatedAt: updated.UTC(),
			Tags:      nd.Tags,
		})
	}
	return snap, nil
}

// ComponentType implements introspection.Component.
func (a *Adapter) ComponentType() string {
	return "persist:" + a.codec.Name()
}

var _ introspection.Component = (*Adapter)(nil)
