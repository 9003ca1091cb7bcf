package notes

import (
	"slices"
	"time"

	"github.com/aretw0/scribe/pkg/core"
)

// Command is a state transition request understood by Reduce.
// The set of commands is closed: only the types in this file implement it.
type Command interface {
	command()
}

// CreateNote prepends Note to the collection and selects it.
type CreateNote struct {
	Note core.Note
}

// UpdateNote merges Patch into the note with the given ID and stamps it
// as modified at At.
type UpdateNote struct {
	ID    string
	Patch Patch
	At    time.Time
}

// DeleteNote removes the note with the given ID.
type DeleteNote struct {
	ID string
}

// SetActiveNote points the selection at ID ("" clears it).
type SetActiveNote struct {
	ID string
}

// SearchNotes replaces the search query.
type SearchNotes struct {
	Query string
}

// SortNotes replaces the view ordering.
type SortNotes struct {
	By        core.SortField
	Direction core.SortDirection
}

// SetLoading toggles the loading flag.
type SetLoading struct {
	Loading bool
}

// SetError records (or clears, with nil) the last operational error.
type SetError struct {
	Err error
}

// Hydrate replaces the persisted part of the state with a loaded snapshot.
type Hydrate struct {
	Snapshot core.Snapshot
}

func (CreateNote) command()    {}
func (UpdateNote) command()    {}
func (DeleteNote) command()    {}
func (SetActiveNote) command() {}
func (SearchNotes) command()   {}
func (SortNotes) command()     {}
func (SetLoading) command()    {}
func (SetError) command()      {}
func (Hydrate) command()       {}

// Patch lists the fields an update may change. Nil fields are left alone.
// Identity and creation time are not part of it and cannot be updated.
type Patch struct {
	Title   *string
	Content *string
	Tags    *[]string
}

// WithTitle returns a copy of p that sets the title.
func (p Patch) WithTitle(title string) Patch {
	p.Title = &title
	return p
}

// WithContent returns a copy of p that sets the content.
func (p Patch) WithContent(content string) Patch {
	p.Content = &content
	return p
}

// WithTags returns a copy of p that replaces the tags.
func (p Patch) WithTags(tags ...string) Patch {
	tags = slices.Clone(tags)
	p.Tags = &tags
	return p
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.Tags == nil
}

func (p Patch) apply(n core.Note) core.Note {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.Tags != nil {
		n.Tags = slices.Clone(*p.Tags)
	}
	return n
}
