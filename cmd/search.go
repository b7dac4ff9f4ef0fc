package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"wikitree/internal/hierarchy"
	"wikitree/internal/render"
)

var (
	searchJSON  bool
	searchLimit int
)

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Full-text search over titles, descriptions and content",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, d, err := OpenService()
		if err != nil {
			return err
		}
		defer d.Close()

		hits, err := s.Search(strings.Join(args, " "))
		if err != nil {
			return fmt.Errorf("search: %w", err)
		}
		if searchLimit > 0 && len(hits) > searchLimit {
			hits = hits[:searchLimit]
		}

		out := cmd.OutOrStdout()
		if searchJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(hits)
		}
		if len(hits) == 0 {
			fmt.Fprintln(out, "No matches.")
			return nil
		}
		for _, p := range hits {
			fmt.Fprintf(out, "  %s %s %s  (%s)\n",
				truncID(p.ID), render.Icon(p), render.TruncTitle(p.Title, 60), hierarchy.Classify(p))
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output as JSON")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 20, "Maximum number of results")
	rootCmd.AddCommand(searchCmd)
}
