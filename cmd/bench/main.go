package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/scribe"
	"github.com/aretw0/scribe/pkg/core"
	"github.com/aretw0/scribe/pkg/notes"
)

func main() {
	count := flag.Int("count", 1000, "Number of notes to generate")
	backends := flag.String("backends", "fs,sqlite,memory", "Comma separated backends to measure")
	keep := flag.Bool("keep", false, "Keep the benchmark data after running")
	flag.Parse()

	benchDir, err := os.MkdirTemp("", "scribe_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	for _, backend := range strings.Split(*backends, ",") {
		r, err := bench(context.Background(), backend, benchDir, *count, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", backend, err)
			os.Exit(1)
		}
		fmt.Printf("--------------------------------------------------\n")
		fmt.Printf("Backend %s (%d notes):\n", backend, *count)
		fmt.Printf("  Create+edit: %v\n", r.write)
		fmt.Printf("  Flush:       %v\n", r.flush)
		fmt.Printf("  Reopen:      %v (loaded %d)\n", r.load, r.loaded)
		fmt.Printf("  View:        %v (%d visible)\n", r.view, r.visible)
	}
	fmt.Printf("--------------------------------------------------\n")
}

type result struct {
	write, flush, load, view time.Duration
	loaded, visible          int
}

func bench(ctx context.Context, backend, root string, count int, logger *slog.Logger) (result, error) {
	var r result
	dir := filepath.Join(root, backend)
	opts := []scribe.Option{scribe.WithBackend(backend), scribe.WithLogger(logger)}

	nb, err := scribe.Open(ctx, dir, opts...)
	if err != nil {
		return r, err
	}

	start := time.Now()
	for i := 0; i < count; i++ {
		n := nb.Store.CreateNote()
		nb.Store.UpdateNote(n.ID, notes.Patch{}.
			WithTitle(fmt.Sprintf("Note %d", i)).
			WithContent("This is a benchmark note.").
			WithTags("benchmark", "test"))
	}
	r.write = time.Since(start)

	start = time.Now()
	if err := nb.Close(ctx); err != nil {
		return r, err
	}
	r.flush = time.Since(start)

	// The memory backend does not survive a reopen.
	if backend == scribe.BackendMemory {
		opts = append(opts, scribe.WithKV(nb.KV))
	}

	start = time.Now()
	nb, err = scribe.Open(ctx, dir, opts...)
	if err != nil {
		return r, err
	}
	defer nb.Close(ctx)
	r.load = time.Since(start)
	r.loaded = len(nb.Store.Current().Notes)

	start = time.Now()
	nb.Store.SortNotes(core.SortByTitle, core.Ascending)
	nb.Store.SearchNotes("note 9")
	r.visible = len(nb.Store.VisibleNotes())
	r.view = time.Since(start)

	return r, nil
}
