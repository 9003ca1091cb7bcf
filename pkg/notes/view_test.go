package notes_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/scribe/pkg/core"
	"github.com/aretw0/scribe/pkg/notes"
)

func TestVisibleNotes_Filter(t *testing.T) {
	xyz := note("1", "xyz", baseTime)
	xyz.Content = "xyz"
	abc := note("2", "ABC", baseTime.Add(time.Minute))
	inBody := note("3", "other", baseTime.Add(2*time.Minute))
	inBody.Content = "something with aBc inside"
	tagged := note("4", "tagged", baseTime.Add(3*time.Minute))
	tagged.Tags = []string{"abc"}

	s := stateWith(xyz, abc, inBody, tagged)

	t.Run("Empty Query Returns Everything", func(t *testing.T) {
		got := notes.VisibleNotes(s)
		assert.Len(t, got, 4)
	})

	t.Run("Case Insensitive Title And Content", func(t *testing.T) {
		s := s
		s.SearchQuery = "abc"
		got := ids(notes.VisibleNotes(s))
		assert.ElementsMatch(t, []string{"2", "3"}, got)
		assert.NotContains(t, got, "1")
	})

	t.Run("Tags Are Not Searched", func(t *testing.T) {
		s := s
		s.SearchQuery = "abc"
		assert.NotContains(t, ids(notes.VisibleNotes(s)), "4")
	})

	t.Run("No Match Returns Empty", func(t *testing.T) {
		s := s
		s.SearchQuery = "nothing-like-this"
		assert.Empty(t, notes.VisibleNotes(s))
	})
}

func TestVisibleNotes_SortByTitle(t *testing.T) {
	s := stateWith(
		note("1", "Banana", baseTime),
		note("2", "apple", baseTime),
		note("3", "Cherry", baseTime),
	)
	s.SortBy = core.SortByTitle

	s.SortDirection = core.Ascending
	assert.Equal(t, []string{"apple", "Banana", "Cherry"}, titles(notes.VisibleNotes(s)))

	s.SortDirection = core.Descending
	assert.Equal(t, []string{"Cherry", "Banana", "apple"}, titles(notes.VisibleNotes(s)))
}

func TestVisibleNotes_SortByTimestamps(t *testing.T) {
	old := note("old", "Old", baseTime)
	mid := note("mid", "Mid", baseTime.Add(time.Hour))
	recent := note("new", "New", baseTime.Add(2*time.Hour))
	// Update order differs from creation order.
	old.UpdatedAt = baseTime.Add(5 * time.Hour)
	mid.UpdatedAt = baseTime.Add(3 * time.Hour)
	recent.UpdatedAt = baseTime.Add(4 * time.Hour)

	s := stateWith(mid, recent, old)

	s.SortBy, s.SortDirection = core.SortByCreatedAt, core.Ascending
	assert.Equal(t, []string{"old", "mid", "new"}, ids(notes.VisibleNotes(s)))

	s.SortDirection = core.Descending
	assert.Equal(t, []string{"new", "mid", "old"}, ids(notes.VisibleNotes(s)))

	s.SortBy, s.SortDirection = core.SortByUpdatedAt, core.Descending
	assert.Equal(t, []string{"old", "new", "mid"}, ids(notes.VisibleNotes(s)))

	s.SortDirection = core.Ascending
	assert.Equal(t, []string{"mid", "new", "old"}, ids(notes.VisibleNotes(s)))
}

func TestVisibleNotes_StableOnTies(t *testing.T) {
	s := stateWith(
		note("1", "same", baseTime),
		note("2", "Same", baseTime),
		note("3", "same", baseTime),
	)

	for _, by := range []core.SortField{core.SortByTitle, core.SortByCreatedAt, core.SortByUpdatedAt} {
		for _, dir := range []core.SortDirection{core.Ascending, core.Descending} {
			s.SortBy, s.SortDirection = by, dir
			assert.Equal(t, []string{"1", "2", "3"}, ids(notes.VisibleNotes(s)), "%s %s", by, dir)
		}
	}
}

func TestVisibleNotes_DoesNotMutateState(t *testing.T) {
	s := stateWith(note("1", "b", baseTime), note("2", "a", baseTime))
	s.SortBy, s.SortDirection = core.SortByTitle, core.Ascending

	got := notes.VisibleNotes(s)
	got[0].Title = "changed"

	assert.Equal(t, []string{"1", "2"}, ids(s.Notes))
	assert.Equal(t, []string{"b", "a"}, titles(s.Notes))
}
