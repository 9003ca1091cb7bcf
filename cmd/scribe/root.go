package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/scribe"
)

var (
	verbose    bool
	dataDir    string
	backend    string
	configPath string

	// cfg is the loaded scribe.yaml (zero when none was found).
	cfg scribe.Config
	// rootDir is the directory holding scribe.yaml, or the working directory.
	rootDir string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "scribe",
	Short: "A local-first notes store",
	Long: `Scribe keeps short text notes in a local data directory.
Notes can be created, edited, searched and sorted from the command line,
and are saved atomically after every change.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}
		logger, err := newLogger(cmd.ErrOrStderr(), verbose, cfg.Log)
		if err != nil {
			return err
		}
		slog.SetDefault(logger)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "Data directory (default: <root>/data)")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "Storage backend: fs, sqlite or memory")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to scribe.yaml (default: searched upwards)")
}

// loadConfig locates scribe.yaml (explicit flag first, then upwards from
// the working directory) and remembers where it lives.
func loadConfig() error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	rootDir = cwd
	path := configPath
	if path == "" {
		if root, err := scribe.FindRoot(cwd); err == nil {
			rootDir = root
			path = filepath.Join(root, scribe.ConfigFileName)
		}
	} else {
		rootDir = filepath.Dir(path)
	}

	cfg = scribe.Config{}
	if path == "" {
		return nil
	}
	cfg, err = scribe.LoadConfig(path)
	return err
}

// openNotebook opens the notebook selected by flags and config. Flags win.
func openNotebook(ctx context.Context, extra ...scribe.Option) (*scribe.Notebook, error) {
	opts := append(cfg.Options(), scribe.WithLogger(slog.Default()))

	if backend != "" {
		opts = append(opts, scribe.WithBackend(backend))
	}

	path := dataDir
	if path == "" {
		path = cfg.Data
	}
	if path == "" {
		path = filepath.Join(rootDir, "data")
	}

	opts = append(opts, extra...)
	return scribe.Open(ctx, path, opts...)
}

// closeNotebook flushes pending saves and reports a failure to persist.
func closeNotebook(ctx context.Context, nb *scribe.Notebook) error {
	if err := nb.Close(ctx); err != nil {
		return fmt.Errorf("failed to save notes: %w", err)
	}
	return nil
}
