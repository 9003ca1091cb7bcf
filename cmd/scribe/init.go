package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/scribe"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a notebook in the current directory",
	Long: `Write a scribe.yaml in the current directory and create the data directory.
Commands run below this directory will find the notebook automatically.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}

		conf := scribe.DefaultConfig()
		if backend != "" {
			conf.Backend = backend
		}
		if dataDir != "" {
			conf.Data = dataDir
		}
		path := filepath.Join(cwd, scribe.ConfigFileName)
		if err := scribe.WriteConfig(path, conf); err != nil {
			return err
		}

		// Re-read so relative paths resolve against the new file.
		configPath = path
		if err := loadConfig(); err != nil {
			return err
		}
		ctx := cmd.Context()
		nb, err := openNotebook(ctx)
		if err != nil {
			return err
		}
		if err := closeNotebook(ctx, nb); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Initialized empty notebook in %s\n", cwd)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
