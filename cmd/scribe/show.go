package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/scribe"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		nb, err := openNotebook(ctx, scribe.WithReadOnly(true))
		if err != nil {
			return err
		}
		defer nb.Close(ctx)

		note, ok := nb.Store.Note(args[0])
		if !ok {
			return fmt.Errorf("note %s not found", args[0])
		}

		if showJSON {
			return writeJSON(cmd.OutOrStdout(), toJSON(note, false))
		}
		printNote(cmd.OutOrStdout(), note)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output in JSON format")
}
