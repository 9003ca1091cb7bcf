package notes_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/scribe/pkg/core"
	"github.com/aretw0/scribe/pkg/notes"
)

func stateWith(list ...core.Note) notes.State {
	s := notes.InitialState()
	s.Notes = list
	if len(list) > 0 {
		s.ActiveNoteID = list[0].ID
	}
	return s
}

func note(id, title string, created time.Time) core.Note {
	n := core.NewNote(id, created)
	n.Title = title
	return n
}

func TestReduce_CreateNote(t *testing.T) {
	t.Run("Prepends And Selects", func(t *testing.T) {
		s := stateWith(note("a", "A", baseTime))
		next := notes.Reduce(s, notes.CreateNote{Note: note("b", "B", baseTime.Add(time.Minute))})

		assert.Equal(t, []string{"b", "a"}, ids(next.Notes))
		assert.Equal(t, "b", next.ActiveNoteID)
	})

	t.Run("Works On Empty Collection", func(t *testing.T) {
		next := notes.Reduce(notes.InitialState(), notes.CreateNote{Note: note("a", core.DefaultTitle, baseTime)})
		require.Len(t, next.Notes, 1)
		assert.Equal(t, "a", next.ActiveNoteID)
	})

	t.Run("Ignores Duplicate ID", func(t *testing.T) {
		s := stateWith(note("a", "A", baseTime))
		next := notes.Reduce(s, notes.CreateNote{Note: note("a", "Other", baseTime)})
		assert.Equal(t, []string{"A"}, titles(next.Notes))
	})
}

func TestReduce_UpdateNote(t *testing.T) {
	original := note("a", "Old", baseTime)
	original.Content = "body"
	original.Tags = []string{"x"}
	s := stateWith(original)

	t.Run("Changes Only Title And UpdatedAt", func(t *testing.T) {
		at := baseTime.Add(time.Hour)
		next := notes.Reduce(s, notes.UpdateNote{ID: "a", Patch: notes.Patch{}.WithTitle("X"), At: at})

		got := next.Notes[0]
		assert.Equal(t, "X", got.Title)
		assert.Equal(t, "body", got.Content)
		assert.Equal(t, []string{"x"}, got.Tags)
		assert.True(t, got.CreatedAt.Equal(original.CreatedAt))
		assert.True(t, got.UpdatedAt.Equal(at))
	})

	t.Run("UpdatedAt Strictly Increases On Clock Tie", func(t *testing.T) {
		next := notes.Reduce(s, notes.UpdateNote{ID: "a", Patch: notes.Patch{}.WithContent("new"), At: original.UpdatedAt})
		assert.True(t, next.Notes[0].UpdatedAt.After(original.UpdatedAt))
	})

	t.Run("UpdatedAt Never Goes Backwards", func(t *testing.T) {
		next := notes.Reduce(s, notes.UpdateNote{ID: "a", Patch: notes.Patch{}.WithContent("new"), At: baseTime.Add(-time.Hour)})
		assert.True(t, next.Notes[0].UpdatedAt.After(original.UpdatedAt))
		assert.False(t, next.Notes[0].UpdatedAt.Before(next.Notes[0].CreatedAt))
	})

	t.Run("Replaces Tags", func(t *testing.T) {
		next := notes.Reduce(s, notes.UpdateNote{ID: "a", Patch: notes.Patch{}.WithTags("y", "z"), At: baseTime.Add(time.Second)})
		assert.Equal(t, []string{"y", "z"}, next.Notes[0].Tags)
	})

	t.Run("Unknown ID Is No-op", func(t *testing.T) {
		next := notes.Reduce(s, notes.UpdateNote{ID: "missing", Patch: notes.Patch{}.WithTitle("X"), At: baseTime.Add(time.Hour)})
		assert.Equal(t, s, next)
	})

	t.Run("Does Not Mutate Prior State", func(t *testing.T) {
		_ = notes.Reduce(s, notes.UpdateNote{ID: "a", Patch: notes.Patch{}.WithTitle("X").WithTags("q"), At: baseTime.Add(time.Hour)})
		assert.Equal(t, "Old", s.Notes[0].Title)
		assert.Equal(t, []string{"x"}, s.Notes[0].Tags)
		assert.True(t, s.Notes[0].UpdatedAt.Equal(baseTime))
	})
}

func TestReduce_DeleteNote(t *testing.T) {
	s := stateWith(note("a", "A", baseTime), note("b", "B", baseTime), note("c", "C", baseTime))

	t.Run("Deleting Active Selects First Remaining", func(t *testing.T) {
		next := notes.Reduce(s, notes.DeleteNote{ID: "a"})
		assert.Equal(t, []string{"b", "c"}, ids(next.Notes))
		assert.Equal(t, "b", next.ActiveNoteID)
	})

	t.Run("Deleting Middle Active Selects First Remaining", func(t *testing.T) {
		mid := s
		mid.ActiveNoteID = "b"
		next := notes.Reduce(mid, notes.DeleteNote{ID: "b"})
		assert.Equal(t, "a", next.ActiveNoteID)
	})

	t.Run("Deleting Inactive Keeps Selection", func(t *testing.T) {
		sel := s
		sel.ActiveNoteID = "c"
		next := notes.Reduce(sel, notes.DeleteNote{ID: "a"})
		assert.Equal(t, "c", next.ActiveNoteID)
	})

	t.Run("Deleting Last Note Clears Selection", func(t *testing.T) {
		single := stateWith(note("a", "A", baseTime))
		next := notes.Reduce(single, notes.DeleteNote{ID: "a"})
		assert.Empty(t, next.Notes)
		assert.Equal(t, "", next.ActiveNoteID)
	})

	t.Run("Unknown ID Is No-op", func(t *testing.T) {
		next := notes.Reduce(s, notes.DeleteNote{ID: "zzz"})
		assert.Equal(t, s, next)
	})

	t.Run("Does Not Mutate Prior State", func(t *testing.T) {
		_ = notes.Reduce(s, notes.DeleteNote{ID: "b"})
		assert.Equal(t, []string{"a", "b", "c"}, ids(s.Notes))
	})
}

func TestReduce_SelectionSearchSort(t *testing.T) {
	s := stateWith(note("a", "A", baseTime), note("b", "B", baseTime))

	t.Run("SetActiveNote Is Not Validated", func(t *testing.T) {
		next := notes.Reduce(s, notes.SetActiveNote{ID: "ghost"})
		assert.Equal(t, "ghost", next.ActiveNoteID)
		_, ok := next.ActiveNote()
		assert.False(t, ok)
	})

	t.Run("SetActiveNote Empty Clears", func(t *testing.T) {
		next := notes.Reduce(s, notes.SetActiveNote{ID: ""})
		_, ok := next.ActiveNote()
		assert.False(t, ok)
	})

	t.Run("SearchNotes Stores Query Verbatim", func(t *testing.T) {
		next := notes.Reduce(s, notes.SearchNotes{Query: "  MiXed "})
		assert.Equal(t, "  MiXed ", next.SearchQuery)
		next = notes.Reduce(next, notes.SearchNotes{Query: ""})
		assert.Equal(t, "", next.SearchQuery)
	})

	t.Run("SortNotes Does Not Reorder Collection", func(t *testing.T) {
		next := notes.Reduce(s, notes.SortNotes{By: core.SortByTitle, Direction: core.Descending})
		assert.Equal(t, core.SortByTitle, next.SortBy)
		assert.Equal(t, core.Descending, next.SortDirection)
		assert.Equal(t, []string{"a", "b"}, ids(next.Notes))
	})

	t.Run("SortNotes Ignores Invalid Values", func(t *testing.T) {
		next := notes.Reduce(s, notes.SortNotes{By: "size", Direction: core.Ascending})
		assert.Equal(t, s.SortBy, next.SortBy)
		assert.Equal(t, s.SortDirection, next.SortDirection)
	})
}

func TestReduce_FlagsAndHydrate(t *testing.T) {
	s := notes.InitialState()

	next := notes.Reduce(s, notes.SetLoading{Loading: true})
	assert.True(t, next.IsLoading)

	boom := errors.New("boom")
	next = notes.Reduce(next, notes.SetError{Err: boom})
	assert.ErrorIs(t, next.Err, boom)

	snap := core.Snapshot{
		Notes:         []core.Note{note("x", "X", baseTime), note("y", "Y", baseTime)},
		SortBy:        core.SortByTitle,
		SortDirection: core.Ascending,
	}
	next = notes.Reduce(next, notes.Hydrate{Snapshot: snap})
	assert.Equal(t, []string{"x", "y"}, ids(next.Notes))
	assert.Equal(t, "x", next.ActiveNoteID)
	assert.Equal(t, core.SortByTitle, next.SortBy)
	assert.Equal(t, core.Ascending, next.SortDirection)

	t.Run("Hydrate Keeps Defaults For Unknown Sort", func(t *testing.T) {
		got := notes.Reduce(notes.InitialState(), notes.Hydrate{Snapshot: core.Snapshot{SortBy: "weird"}})
		assert.Equal(t, core.DefaultSortField, got.SortBy)
		assert.Equal(t, core.DefaultSortDirection, got.SortDirection)
		assert.Equal(t, "", got.ActiveNoteID)
	})
}
