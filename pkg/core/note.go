package core

import (
	"fmt"
	"slices"
	"time"
)

const (
	// DefaultTitle is the title given to freshly created notes.
	DefaultTitle = "Untitled Note"

	// PreviewLength is the number of runes of content shown in a preview.
	PreviewLength = 60

	// DisplayDateLayout renders dates like "May 15, 2023".
	DisplayDateLayout = "Jan 2, 2006"
)

// Note is the central entity of the domain.
// It is a titled text record with timestamps and optional tags.
// ID and CreatedAt never change once the note exists.
type Note struct {
	ID        string
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
	Tags      []string
}

// NewNote builds a note with default fields, stamped at the given instant.
func NewNote(id string, at time.Time) Note {
	return Note{
		ID:        id,
		Title:     DefaultTitle,
		CreatedAt: at,
		UpdatedAt: at,
	}
}

// Clone returns a deep copy of the note.
func (n Note) Clone() Note {
	n.Tags = slices.Clone(n.Tags)
	return n
}

// Preview returns a plain text excerpt of the content.
func (n Note) Preview() string {
	runes := []rune(n.Content)
	if len(runes) <= PreviewLength {
		return n.Content
	}
	return string(runes[:PreviewLength]) + "..."
}

// DisplayDate formats the last modification date for humans.
func (n Note) DisplayDate() string {
	return n.UpdatedAt.Local().Format(DisplayDateLayout)
}

// DisplayTags returns at most max tags, followed by a "+N" marker
// when some were left out.
func (n Note) DisplayTags(max int) []string {
	if max < 0 {
		max = 0
	}
	if len(n.Tags) <= max {
		return slices.Clone(n.Tags)
	}
	out := slices.Clone(n.Tags[:max])
	return append(out, fmt.Sprintf("+%d", len(n.Tags)-max))
}

// HasTag reports whether the note carries the given tag.
func (n Note) HasTag(tag string) bool {
	return slices.Contains(n.Tags, tag)
}
