package core_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/scribe/pkg/core"
)

func TestNewNote_Defaults(t *testing.T) {
	at := time.Date(2023, 5, 15, 10, 0, 0, 0, time.UTC)
	n := core.NewNote("n1", at)

	assert.Equal(t, "n1", n.ID)
	assert.Equal(t, core.DefaultTitle, n.Title)
	assert.Empty(t, n.Content)
	assert.Nil(t, n.Tags)
	assert.True(t, n.CreatedAt.Equal(at))
	assert.True(t, n.UpdatedAt.Equal(at))
}

func TestNote_Preview(t *testing.T) {
	t.Run("Short Content Verbatim", func(t *testing.T) {
		n := core.Note{Content: "hello"}
		assert.Equal(t, "hello", n.Preview())
	})

	t.Run("Exactly Limit", func(t *testing.T) {
		n := core.Note{Content: strings.Repeat("a", core.PreviewLength)}
		assert.Equal(t, n.Content, n.Preview())
	})

	t.Run("Long Content Truncated", func(t *testing.T) {
		n := core.Note{Content: strings.Repeat("b", core.PreviewLength+10)}
		assert.Equal(t, strings.Repeat("b", core.PreviewLength)+"...", n.Preview())
	})

	t.Run("Counts Runes Not Bytes", func(t *testing.T) {
		n := core.Note{Content: strings.Repeat("é", core.PreviewLength+1)}
		got := n.Preview()
		assert.True(t, strings.HasSuffix(got, "..."))
		assert.Equal(t, strings.Repeat("é", core.PreviewLength), strings.TrimSuffix(got, "..."))
	})
}

func TestNote_DisplayDate(t *testing.T) {
	at := time.Date(2023, 5, 16, 15, 45, 0, 0, time.Local)
	n := core.Note{UpdatedAt: at}
	assert.Equal(t, "May 16, 2023", n.DisplayDate())
}

func TestNote_DisplayTags(t *testing.T) {
	n := core.Note{Tags: []string{"welcome", "tutorial", "tips"}}
	assert.Equal(t, []string{"welcome", "tutorial", "+1"}, n.DisplayTags(2))
	assert.Equal(t, []string{"welcome", "tutorial", "tips"}, n.DisplayTags(3))
	assert.Equal(t, []string{"+3"}, n.DisplayTags(0))
}

func TestNote_CloneIsDeep(t *testing.T) {
	n := core.Note{ID: "a", Tags: []string{"x"}}
	c := n.Clone()
	c.Tags[0] = "y"
	assert.Equal(t, "x", n.Tags[0])
	assert.True(t, n.HasTag("x"))
	assert.False(t, n.HasTag("y"))
}

func TestParseSort(t *testing.T) {
	f, err := core.ParseSortField("createdAt")
	require.NoError(t, err)
	assert.Equal(t, core.SortByCreatedAt, f)

	_, err = core.ParseSortField("size")
	assert.Error(t, err)

	d, err := core.ParseSortDirection("asc")
	require.NoError(t, err)
	assert.Equal(t, core.Ascending, d)

	_, err = core.ParseSortDirection("up")
	assert.Error(t, err)
}

func TestEvent_String(t *testing.T) {
	assert.Equal(t, "CREATE n1", core.Event{Type: core.EventCreate, ID: "n1"}.String())
	assert.Equal(t, "SEARCH", core.Event{Type: core.EventSearch}.String())
}
