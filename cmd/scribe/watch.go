package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	scribelc "github.com/aretw0/scribe/pkg/adapters/lifecycle"
	"github.com/aretw0/scribe/pkg/core"
)

var watchPattern string

var eventColors = map[core.EventType]*color.Color{
	core.EventCreate: color.New(color.FgGreen),
	core.EventModify: color.New(color.FgYellow),
	core.EventDelete: color.New(color.FgRed),
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print changes made to the data directory",
	Long: `Watch the data directory and print an event whenever a stored key is
created, modified or deleted, including by other scribe processes.
Only the fs backend supports watching. Stop with Ctrl-C.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		nb, err := openNotebook(ctx)
		if err != nil {
			return err
		}
		defer nb.Close(ctx)

		w, ok := nb.KV.(core.Watchable)
		if !ok {
			return errors.New("the " + nb.Backend + " backend does not support watch")
		}
		events, err := w.Watch(ctx, watchPattern)
		if err != nil {
			return err
		}

		src := scribelc.NewSource(events)
		if err := src.Start(ctx); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Watching %s\n", nb.Path)
		for e := range src.Events() {
			ev, ok := e.(core.Event)
			if !ok {
				continue
			}
			c, ok := eventColors[ev.Type]
			if !ok {
				c = color.New(color.Reset)
			}
			stamp := time.Unix(ev.Timestamp, 0).Format(time.TimeOnly)
			fmt.Fprintf(out, "%s %s\n", dimStyle(stamp), c.Sprint(ev.String()))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchPattern, "pattern", "", "Only keys matching this glob (default: all)")
}
