package notes

import (
	"time"

	"github.com/aretw0/scribe/pkg/core"
)

// WelcomeNotes returns the introductory notes seeded into a fresh store.
func WelcomeNotes() []core.Note {
	at := func(s string) time.Time {
		t, _ := time.Parse(time.RFC3339, s)
		return t
	}
	return []core.Note{
		{
			ID:        "welcome-getting-started",
			Title:     "Getting Started with Scribe",
			Content:   "Welcome to Scribe! It is a simple place to organize your thoughts and ideas. You can create, edit and delete notes, search them, and sort them by title, creation date or last update.",
			CreatedAt: at("2023-05-15T10:00:00Z"),
			UpdatedAt: at("2023-05-15T10:00:00Z"),
			Tags:      []string{"welcome", "tutorial"},
		},
		{
			ID:        "welcome-features",
			Title:     "Features of Scribe",
			Content:   "Scribe comes with a handful of features:\n\n- Create, edit and delete notes\n- Search notes by title or content\n- Sort notes by title, creation date or last update\n- Tag notes for better organization",
			CreatedAt: at("2023-05-15T11:00:00Z"),
			UpdatedAt: at("2023-05-15T12:30:00Z"),
			Tags:      []string{"features", "tutorial"},
		},
		{
			ID:        "welcome-storage",
			Title:     "Where Notes Live",
			Content:   "Notes are saved locally after every change. Pick a file, SQLite or in-memory backend with --backend.",
			CreatedAt: at("2023-05-16T09:00:00Z"),
			UpdatedAt: at("2023-05-16T15:45:00Z"),
			Tags:      []string{"storage", "tips"},
		},
	}
}
