package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"wikitree/internal/db"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Create a wiki database (default ./.wikitree.db)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := dbFileName
		if len(args) == 1 {
			path = args[0]
		} else if dbPath != "" {
			path = dbPath
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("creating %s: %w", dir, err)
			}
		}

		d, err := db.OpenDB(path)
		if err != nil {
			return err
		}
		defer d.Close()

		fmt.Fprintf(cmd.OutOrStdout(), "Initialized wiki database at %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
