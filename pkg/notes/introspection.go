package notes

import (
	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	NoteCount     int    `json:"note_count"`
	ActiveNoteID  string `json:"active_note_id,omitempty"`
	SearchQuery   string `json:"search_query,omitempty"`
	SortBy        string `json:"sort_by"`
	SortDirection string `json:"sort_direction"`
	Loading       bool   `json:"loading"`
	LastError     string `json:"last_error,omitempty"`
	Subscribers   int    `json:"subscribers"`
	Generation    uint64 `json:"generation"`
	PersisterType string `json:"persister_type"`
	Closed        bool   `json:"closed"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	st := StoreState{
		NoteCount:     len(s.state.Notes),
		ActiveNoteID:  s.state.ActiveNoteID,
		SearchQuery:   s.state.SearchQuery,
		SortBy:        string(s.state.SortBy),
		SortDirection: string(s.state.SortDirection),
		Loading:       s.state.IsLoading,
		Generation:    s.gen,
		Closed:        s.closed,
		PersisterType: "none",
	}
	if s.state.Err != nil {
		st.LastError = s.state.Err.Error()
	}
	if s.persister != nil {
		st.PersisterType = "persister"
		if comp, ok := s.persister.(introspection.Component); ok {
			st.PersisterType = comp.ComponentType()
		}
	}
	s.mu.RUnlock()

	s.subMu.Lock()
	st.Subscribers = len(s.subs)
	s.subMu.Unlock()

	return st
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
