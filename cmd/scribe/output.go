package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/aretw0/scribe/pkg/core"
)

var (
	activeMark = color.New(color.FgGreen, color.Bold).SprintFunc()
	titleStyle = color.New(color.Bold).SprintFunc()
	dimStyle   = color.New(color.Faint).SprintFunc()
	tagStyle   = color.New(color.FgCyan).SprintFunc()
)

// maxListTags is the number of tags printed per note before "+N".
const maxListTags = 2

// noteJSON is the --json representation of a note.
type noteJSON struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Tags      []string  `json:"tags,omitempty"`
	Active    bool      `json:"active,omitempty"`
}

func toJSON(n core.Note, active bool) noteJSON {
	return noteJSON{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
		Tags:      n.Tags,
		Active:    active,
	}
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// printCard renders a note the way the list shows it: marker, title,
// date and tags on one line, preview on the next.
func printCard(w io.Writer, n core.Note, active bool) {
	mark := " "
	if active {
		mark = activeMark("*")
	}
	line := fmt.Sprintf("%s %s  %s  %s", mark, titleStyle(n.Title), dimStyle(n.DisplayDate()), dimStyle(n.ID))
	if tags := n.DisplayTags(maxListTags); len(tags) > 0 {
		line += "  " + tagStyle(strings.Join(tags, " "))
	}
	fmt.Fprintln(w, line)
	if preview := n.Preview(); preview != "" {
		fmt.Fprintf(w, "    %s\n", strings.ReplaceAll(preview, "\n", " "))
	}
}

// printNote renders the full note.
func printNote(w io.Writer, n core.Note) {
	fmt.Fprintln(w, titleStyle(n.Title))
	fmt.Fprintf(w, "%s  %s\n", dimStyle(n.ID), dimStyle(n.DisplayDate()))
	if len(n.Tags) > 0 {
		fmt.Fprintln(w, tagStyle(strings.Join(n.Tags, " ")))
	}
	if n.Content != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, n.Content)
	}
}
