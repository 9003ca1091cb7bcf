// Package scribe is the composition root for the Scribe notes store.
//
// It wires the notes state machine (pkg/notes) to a persistence adapter
// (pkg/persist) and a pluggable key-value backend (pkg/adapters/...).
//
// Model:
//
// A notebook is a single snapshot (notes plus sort settings) stored under one
// key. Every change goes through a pure transition function; the store then
// saves the new snapshot in the background, last write wins. Transient view
// state (active note, search query, errors) is never persisted.
//
// Backends:
//
//   - fs: one file per key, atomic writes, cross-process lock, fsnotify watch.
//   - sqlite: a single kv table through the pure-Go modernc.org/sqlite driver.
//   - memory: ephemeral, for tests and throwaway sessions.
//
// Usage:
//
//	nb, err := scribe.Open(ctx, "./notes", scribe.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	defer nb.Close(ctx)
//
//	note := nb.Store.CreateNote()
//	nb.Store.UpdateNote(note.ID, notes.Patch{}.WithTitle("Groceries"))
package scribe
