package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:     "rm [id]",
	Aliases: []string{"delete"},
	Short:   "Delete a note",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		ctx := cmd.Context()
		nb, err := openNotebook(ctx)
		if err != nil {
			return err
		}
		if _, ok := nb.Store.Note(id); !ok {
			_ = nb.Close(ctx)
			return fmt.Errorf("note %s not found", id)
		}

		nb.Store.DeleteNote(id)
		if err := closeNotebook(ctx, nb); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Note '%s' deleted.\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
}
