package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	editTitle   string
	editContent string
	editTags    []string
)

var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit a note",
	Long:  `Change the title, content or tags of a note. Only the given flags are applied.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		patch := patchFromFlags(cmd, editTitle, editContent, editTags)
		if patch.IsEmpty() {
			return errors.New("nothing to change: pass --title, --content or --tag")
		}

		ctx := cmd.Context()
		nb, err := openNotebook(ctx)
		if err != nil {
			return err
		}
		if _, ok := nb.Store.Note(id); !ok {
			_ = nb.Close(ctx)
			return fmt.Errorf("note %s not found", id)
		}

		nb.Store.UpdateNote(id, patch)
		return closeNotebook(ctx, nb)
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVar(&editTitle, "title", "", "New title")
	editCmd.Flags().StringVar(&editContent, "content", "", "New content")
	editCmd.Flags().StringSliceVar(&editTags, "tag", nil, "Replace tags (repeatable)")
}
