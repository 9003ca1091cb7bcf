package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/scribe/pkg/notes"
)

var (
	newTitle   string
	newContent string
	newTags    []string
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a note",
	Long:  `Create a note and print its id. Without flags the note gets the default title and no content.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		nb, err := openNotebook(ctx)
		if err != nil {
			return err
		}

		note := nb.Store.CreateNote()
		if patch := patchFromFlags(cmd, newTitle, newContent, newTags); !patch.IsEmpty() {
			nb.Store.UpdateNote(note.ID, patch)
		}

		if err := closeNotebook(ctx, nb); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), note.ID)
		return nil
	},
}

// patchFromFlags keeps only the flags the user actually set, so an empty
// --content clears the content while an absent one leaves it alone.
func patchFromFlags(cmd *cobra.Command, title, content string, tags []string) notes.Patch {
	var p notes.Patch
	if cmd.Flags().Changed("title") {
		p = p.WithTitle(title)
	}
	if cmd.Flags().Changed("content") {
		p = p.WithContent(content)
	}
	if cmd.Flags().Changed("tag") {
		p = p.WithTags(tags...)
	}
	return p
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().StringVar(&newTitle, "title", "", "Note title")
	newCmd.Flags().StringVar(&newContent, "content", "", "Note content")
	newCmd.Flags().StringSliceVar(&newTags, "tag", nil, "Tag (repeatable)")
}
