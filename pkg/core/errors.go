package core

import "errors"

// Common errors.
var (
	// ErrLoadFailure marks a persisted snapshot that could not be read or parsed.
	ErrLoadFailure = errors.New("failed to load notes")
	// ErrSaveFailure marks a snapshot that could not be written to durable storage.
	ErrSaveFailure = errors.New("failed to save notes")
	// ErrKeyNotFound is returned by KV.Get when the key holds no value.
	ErrKeyNotFound = errors.New("key not found")
	// ErrReadOnly is returned by write operations of a read-only store.
	ErrReadOnly = errors.New("store is in read-only mode")
	// ErrUnknownBackend is returned when no KV backend matches the requested name.
	ErrUnknownBackend = errors.New("unknown backend")
)
