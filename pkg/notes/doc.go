// Package notes owns the authoritative in-memory model of all notes.
//
// State changes flow through a single pure transition function, Reduce,
// which takes the prior State and a Command and returns the next State.
// Store wraps that function with a mutex, id generation, a clock, change
// notifications and best-effort background persistence.
//
//	store := notes.NewStore(notes.WithPersister(adapter))
//	_ = store.Load(ctx)
//	n := store.CreateNote()
//	store.UpdateNote(n.ID, notes.Patch{}.WithTitle("Groceries"))
//	for _, v := range store.VisibleNotes() { ... }
package notes
