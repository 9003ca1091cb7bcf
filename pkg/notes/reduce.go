package notes

import (
	"slices"
	"time"

	"github.com/aretw0/scribe/pkg/core"
)

// Reduce applies cmd to s and returns the resulting state.
//
// It is pure: s is never modified, and notes are copied on write. When a
// command does not touch the collection (unknown id, selection, search)
// the returned state shares the notes backing array with s.
func Reduce(s State, cmd Command) State {
	switch c := cmd.(type) {
	case CreateNote:
		if s.indexOf(c.Note.ID) >= 0 {
			return s
		}
		notes := make([]core.Note, 0, len(s.Notes)+1)
		notes = append(notes, c.Note.Clone())
		s.Notes = append(notes, s.Notes...)
		s.ActiveNoteID = c.Note.ID

	case UpdateNote:
		i := s.indexOf(c.ID)
		if i < 0 {
			return s
		}
		notes := slices.Clone(s.Notes)
		n := c.Patch.apply(notes[i].Clone())
		n.UpdatedAt = nextUpdatedAt(n.UpdatedAt, c.At)
		notes[i] = n
		s.Notes = notes

	case DeleteNote:
		i := s.indexOf(c.ID)
		if i < 0 {
			return s
		}
		s.Notes = slices.Delete(slices.Clone(s.Notes), i, i+1)
		if s.ActiveNoteID == c.ID {
			s.ActiveNoteID = firstID(s.Notes)
		}

	case SetActiveNote:
		s.ActiveNoteID = c.ID

	case SearchNotes:
		s.SearchQuery = c.Query

	case SortNotes:
		if !c.By.Valid() || !c.Direction.Valid() {
			return s
		}
		s.SortBy = c.By
		s.SortDirection = c.Direction

	case SetLoading:
		s.IsLoading = c.Loading

	case SetError:
		s.Err = c.Err

	case Hydrate:
		snap := c.Snapshot.Clone()
		s.Notes = snap.Notes
		if snap.SortBy.Valid() {
			s.SortBy = snap.SortBy
		}
		if snap.SortDirection.Valid() {
			s.SortDirection = snap.SortDirection
		}
		if s.indexOf(s.ActiveNoteID) < 0 {
			s.ActiveNoteID = firstID(s.Notes)
		}
	}
	return s
}

// nextUpdatedAt keeps modification times strictly increasing even when
// the clock has not advanced since the previous update.
func nextUpdatedAt(prev, at time.Time) time.Time {
	if at.After(prev) {
		return at
	}
	return prev.Add(time.Nanosecond)
}

func firstID(notes []core.Note) string {
	if len(notes) == 0 {
		return ""
	}
	return notes[0].ID
}

// snapshotChanged reports whether a transition touched the persisted fields.
func snapshotChanged(prev, next State) bool {
	if prev.SortBy != next.SortBy || prev.SortDirection != next.SortDirection {
		return true
	}
	if len(prev.Notes) != len(next.Notes) {
		return true
	}
	if len(next.Notes) == 0 {
		return false
	}
	return &prev.Notes[0] != &next.Notes[0]
}
