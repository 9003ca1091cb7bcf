package core

import "context"

// KV defines the contract for a durable, byte-oriented key-value store.
// Adhering to this interface keeps the notes store independent of the
// underlying storage mechanism (files, SQLite, memory).
type KV interface {
	// Get returns the value stored at key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value at key, replacing any previous value atomically.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists the stored keys matching a glob pattern ("" or "**" for all).
	Keys(ctx context.Context, pattern string) ([]string, error)
}

// Watchable defines an interface for stores that report external changes.
type Watchable interface {
	// Watch emits an event whenever a key matching pattern changes.
	// The channel is closed when ctx is cancelled.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}

// Closer is implemented by stores holding resources (files, database handles).
type Closer interface {
	Close() error
}
