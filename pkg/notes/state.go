package notes

import (
	"slices"

	"github.com/aretw0/scribe/pkg/core"
)

// State is the full notes model for one application session.
// Only Notes, SortBy and SortDirection are persisted.
type State struct {
	// Notes is ordered by creation recency: the newest note comes first.
	Notes []core.Note
	// ActiveNoteID is a weak reference into Notes; "" means no selection.
	ActiveNoteID  string
	SearchQuery   string
	SortBy        core.SortField
	SortDirection core.SortDirection
	IsLoading     bool
	Err           error
}

// InitialState returns an empty state with the default sort settings.
func InitialState() State {
	return State{
		SortBy:        core.DefaultSortField,
		SortDirection: core.DefaultSortDirection,
	}
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	notes := make([]core.Note, len(s.Notes))
	for i, n := range s.Notes {
		notes[i] = n.Clone()
	}
	s.Notes = notes
	return s
}

// Snapshot extracts the persisted subset of the state.
func (s State) Snapshot() core.Snapshot {
	return core.Snapshot{
		Notes:         s.Notes,
		SortBy:        s.SortBy,
		SortDirection: s.SortDirection,
	}.Clone()
}

// Find looks a note up by id.
func (s State) Find(id string) (core.Note, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return core.Note{}, false
	}
	return s.Notes[i].Clone(), true
}

// ActiveNote resolves ActiveNoteID. It reports false when nothing is
// selected or the pointer does not match any note.
func (s State) ActiveNote() (core.Note, bool) {
	if s.ActiveNoteID == "" {
		return core.Note{}, false
	}
	return s.Find(s.ActiveNoteID)
}

func (s State) indexOf(id string) int {
	return slices.IndexFunc(s.Notes, func(n core.Note) bool { return n.ID == id })
}
