package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/scribe"
	"github.com/aretw0/scribe/pkg/core"
	"github.com/aretw0/scribe/pkg/notes"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive session with an active note",
	Long: `Start an interactive session. Unlike the one-shot commands, the shell keeps
an active note, a search query and the sort settings between commands.
Type "help" for the list of commands.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		nb, err := openNotebook(ctx)
		if err != nil {
			return err
		}

		sh := newShell(ctx, nb, cmd.OutOrStdout())
		runErr := sh.run(ctx, cmd.InOrStdin())
		return errors.Join(runErr, closeNotebook(ctx, nb))
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

const shellHelp = `Commands:
  new [title]          create a note and select it
  select [id]          select a note (no id clears the selection)
  title <text>         retitle the selected note
  write <text>         replace the selected note's content
  tag [tags...]        replace the selected note's tags
  rm [id]              delete a note (default: the selected one)
  show                 print the selected note
  ls                   list the visible notes
  search [query]       filter by title or content (no query clears)
  sort <field> [dir]   order by title, createdAt or updatedAt; asc or desc
  help                 show this help
  quit                 leave the shell`

type shell struct {
	nb     *scribe.Notebook
	out    io.Writer
	events <-chan core.Event
}

func newShell(ctx context.Context, nb *scribe.Notebook, out io.Writer) *shell {
	return &shell{
		nb:     nb,
		out:    out,
		events: nb.Store.Subscribe(ctx, 64),
	}
}

func (sh *shell) run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(sh.out, "> ")
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		quit, err := sh.exec(ctx, scanner.Text())
		if err != nil {
			fmt.Fprintf(sh.out, "error: %v\n", err)
		}
		sh.drainEvents()
		if quit {
			return nil
		}
		fmt.Fprint(sh.out, "> ")
	}
	return scanner.Err()
}

// exec runs a single shell line and reports a failed save before returning.
func (sh *shell) exec(ctx context.Context, line string) (bool, error) {
	verb, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)
	store := sh.nb.Store

	switch verb {
	case "":
	case "quit", "exit":
		return true, nil
	case "help":
		fmt.Fprintln(sh.out, shellHelp)
	case "new":
		n := store.CreateNote()
		if rest != "" {
			store.UpdateNote(n.ID, notes.Patch{}.WithTitle(rest))
		}
		fmt.Fprintln(sh.out, n.ID)
	case "select":
		store.SetActiveNote(rest)
		if rest != "" {
			if _, ok := store.ActiveNote(); !ok {
				return false, fmt.Errorf("note %s not found", rest)
			}
		}
	case "title", "write", "tag":
		active, ok := store.ActiveNote()
		if !ok {
			return false, errors.New("no note selected")
		}
		var p notes.Patch
		switch verb {
		case "title":
			p = p.WithTitle(rest)
		case "write":
			p = p.WithContent(rest)
		default:
			p = p.WithTags(strings.Fields(rest)...)
		}
		store.UpdateNote(active.ID, p)
	case "rm":
		id := rest
		if id == "" {
			active, ok := store.ActiveNote()
			if !ok {
				return false, errors.New("no note selected")
			}
			id = active.ID
		}
		if _, ok := store.Note(id); !ok {
			return false, fmt.Errorf("note %s not found", id)
		}
		store.DeleteNote(id)
	case "show":
		active, ok := store.ActiveNote()
		if !ok {
			fmt.Fprintln(sh.out, "No note selected.")
			return false, nil
		}
		printNote(sh.out, active)
	case "ls":
		visible := store.VisibleNotes()
		if len(visible) == 0 {
			fmt.Fprintln(sh.out, "No notes.")
		}
		activeID := store.Current().ActiveNoteID
		for _, n := range visible {
			printCard(sh.out, n, n.ID == activeID)
		}
	case "search":
		store.SearchNotes(rest)
	case "sort":
		fields := strings.Fields(rest)
		if len(fields) == 0 || len(fields) > 2 {
			return false, errors.New("usage: sort <field> [asc|desc]")
		}
		by, err := core.ParseSortField(fields[0])
		if err != nil {
			return false, err
		}
		dir := store.Current().SortDirection
		if len(fields) == 2 {
			if dir, err = core.ParseSortDirection(fields[1]); err != nil {
				return false, err
			}
		}
		store.SortNotes(by, dir)
	default:
		return false, fmt.Errorf("unknown command %q (try help)", verb)
	}

	if err := store.Flush(ctx); err != nil {
		return false, err
	}
	if err := store.Current().Err; err != nil && errors.Is(err, core.ErrSaveFailure) {
		fmt.Fprintf(sh.out, "warning: %v\n", err)
	}
	return false, nil
}

// drainEvents prints the events produced by the last command in verbose mode.
func (sh *shell) drainEvents() {
	for {
		select {
		case e, ok := <-sh.events:
			if !ok {
				return
			}
			if verbose {
				fmt.Fprintln(sh.out, dimStyle("event: "+e.String()))
			}
		default:
			return
		}
	}
}
