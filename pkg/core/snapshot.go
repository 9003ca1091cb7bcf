package core

// Snapshot is the persisted subset of the notes state.
// Active selection, search query and operational flags are session-only
// and never part of it.
type Snapshot struct {
	Notes         []Note
	SortBy        SortField
	SortDirection SortDirection
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	notes := make([]Note, len(s.Notes))
	for i, n := range s.Notes {
		notes[i] = n.Clone()
	}
	s.Notes = notes
	return s
}
