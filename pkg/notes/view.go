package notes

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/aretw0/scribe/pkg/core"
)

// VisibleNotes derives the list shown to the user: notes matching the
// search query, ordered by the sort settings. Equal keys keep their
// collection order. The state is not modified.
func VisibleNotes(s State) []core.Note {
	query := strings.ToLower(s.SearchQuery)

	out := make([]core.Note, 0, len(s.Notes))
	for _, n := range s.Notes {
		if matches(n, query) {
			out = append(out, n.Clone())
		}
	}

	slices.SortStableFunc(out, comparator(s.SortBy, s.SortDirection))
	return out
}

// matches checks title and content only; tags are not searched.
func matches(n core.Note, lowerQuery string) bool {
	if lowerQuery == "" {
		return true
	}
	return strings.Contains(strings.ToLower(n.Title), lowerQuery) ||
		strings.Contains(strings.ToLower(n.Content), lowerQuery)
}

func comparator(by core.SortField, dir core.SortDirection) func(a, b core.Note) int {
	var compare func(a, b core.Note) int

	switch by {
	case core.SortByTitle:
		// A collator is not safe for concurrent use; build one per call.
		col := collate.New(language.English, collate.IgnoreCase)
		compare = func(a, b core.Note) int {
			return col.CompareString(a.Title, b.Title)
		}
	case core.SortByCreatedAt:
		compare = func(a, b core.Note) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		}
	default:
		compare = func(a, b core.Note) int {
			return a.UpdatedAt.Compare(b.UpdatedAt)
		}
	}

	if dir == core.Descending {
		return func(a, b core.Note) int {
			return -compare(a, b)
		}
	}
	return compare
}
