package core

import "fmt"

// SortField names the note attribute used to order the view.
type SortField string

const (
	SortByTitle     SortField = "title"
	SortByCreatedAt SortField = "createdAt"
	SortByUpdatedAt SortField = "updatedAt"
)

// SortDirection is either ascending or descending.
type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// Defaults applied to a fresh store.
const (
	DefaultSortField     = SortByUpdatedAt
	DefaultSortDirection = Descending
)

// Valid reports whether f is a known sort field.
func (f SortField) Valid() bool {
	switch f {
	case SortByTitle, SortByCreatedAt, SortByUpdatedAt:
		return true
	}
	return false
}

// Valid reports whether d is a known direction.
func (d SortDirection) Valid() bool {
	return d == Ascending || d == Descending
}

// ParseSortField converts user input into a SortField.
func ParseSortField(s string) (SortField, error) {
	f := SortField(s)
	if !f.Valid() {
		return "", fmt.Errorf("invalid sort field %q (want title, createdAt or updatedAt)", s)
	}
	return f, nil
}

// ParseSortDirection converts user input into a SortDirection.
func ParseSortDirection(s string) (SortDirection, error) {
	d := SortDirection(s)
	if !d.Valid() {
		return "", fmt.Errorf("invalid sort direction %q (want asc or desc)", s)
	}
	return d, nil
}
