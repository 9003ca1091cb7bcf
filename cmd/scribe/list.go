package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/scribe/pkg/core"
)

var (
	listJSON   bool
	listSearch string
	listSort   string
	listDir    string
	listTag    string
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List notes",
	Long: `List the notes matching --search, ordered by the saved sort settings.
Passing --sort or --dir changes the saved settings.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		nb, err := openNotebook(ctx)
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("sort") || cmd.Flags().Changed("dir") {
			by, dir, err := sortFromFlags(nb.Store.Current().SortBy, nb.Store.Current().SortDirection)
			if err != nil {
				_ = nb.Close(ctx)
				return err
			}
			nb.Store.SortNotes(by, dir)
		}
		nb.Store.SearchNotes(listSearch)

		visible := nb.Store.VisibleNotes()
		activeID := nb.Store.Current().ActiveNoteID
		if err := closeNotebook(ctx, nb); err != nil {
			return err
		}

		var filtered []core.Note
		for _, n := range visible {
			if listTag == "" || n.HasTag(listTag) {
				filtered = append(filtered, n)
			}
		}

		out := cmd.OutOrStdout()
		if listJSON {
			docs := make([]noteJSON, 0, len(filtered))
			for _, n := range filtered {
				docs = append(docs, toJSON(n, n.ID == activeID))
			}
			return writeJSON(out, docs)
		}

		if len(filtered) == 0 {
			if listSearch != "" {
				fmt.Fprintf(out, "No notes match %q.\n", listSearch)
			} else {
				fmt.Fprintln(out, "No notes yet. Create one with `scribe new`.")
			}
			return nil
		}
		for _, n := range filtered {
			printCard(out, n, n.ID == activeID)
		}
		return nil
	},
}

// sortFromFlags overlays --sort and --dir on the current settings.
func sortFromFlags(by core.SortField, dir core.SortDirection) (core.SortField, core.SortDirection, error) {
	var err error
	if listSort != "" {
		if by, err = core.ParseSortField(listSort); err != nil {
			return "", "", err
		}
	}
	if listDir != "" {
		if dir, err = core.ParseSortDirection(listDir); err != nil {
			return "", "", err
		}
	}
	return by, dir, nil
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Only notes whose title or content contains this text")
	listCmd.Flags().StringVar(&listSort, "sort", "", "Sort by title, createdAt or updatedAt (saved)")
	listCmd.Flags().StringVar(&listDir, "dir", "", "Sort direction asc or desc (saved)")
	listCmd.Flags().StringVar(&listTag, "tag", "", "Only notes carrying this tag")
}
