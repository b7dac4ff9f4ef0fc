package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"wikitree/internal/hierarchy"
)

var checkJSON bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the page hierarchy for dangling parents, cycles and duplicates",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, d, err := OpenService()
		if err != nil {
			return err
		}
		defer d.Close()

		reports := make(map[string]*hierarchy.Report, 2)
		for _, mode := range []hierarchy.Visibility{hierarchy.Published, hierarchy.Private} {
			r, err := s.Check(mode)
			if err != nil {
				return fmt.Errorf("checking %s pages: %w", mode, err)
			}
			reports[mode.String()] = r
		}

		out := cmd.OutOrStdout()
		if checkJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(reports)
		}
		printReport(out, "PUBLISHED", reports["published"])
		printReport(out, "PRIVATE", reports["private"])
		return nil
	},
}

func printReport(out io.Writer, label string, r *hierarchy.Report) {
	barLen := int(r.HealthScore * 20)
	if barLen > 20 {
		barLen = 20
	}
	bar := strings.Repeat("█", barLen) + strings.Repeat("░", 20-barLen)
	fmt.Fprintf(out, "\n  %s  Health: %.0f%%  [%s]\n", label, r.HealthScore*100, bar)
	fmt.Fprintln(out, "  ────────────────────────────────────────")
	fmt.Fprintf(out, "  Pages: %d  Roots: %d  Max depth: %d\n", r.TotalPages, r.Roots, r.MaxDepth)

	if len(r.Dangling) > 0 {
		fmt.Fprintf(out, "  %d pages with a missing parent (shown as roots):\n", len(r.Dangling))
		for i, dp := range r.Dangling {
			if i >= 10 {
				fmt.Fprintf(out, "    ... and %d more\n", len(r.Dangling)-10)
				break
			}
			fmt.Fprintf(out, "    - %s (%s) -> %s\n", truncID(dp.PageID), dp.Title, truncID(dp.ParentID))
		}
	}
	if len(r.Cycles) > 0 {
		fmt.Fprintf(out, "  %d parent cycles (pages hidden from the tree):\n", len(r.Cycles))
		for _, c := range r.Cycles {
			ids := make([]string, len(c))
			for i, id := range c {
				ids[i] = truncID(id)
			}
			fmt.Fprintf(out, "    - %s\n", strings.Join(ids, " -> "))
		}
	}
	if len(r.DuplicateIDs) > 0 {
		fmt.Fprintf(out, "  %d duplicate ids: %s\n", len(r.DuplicateIDs), strings.Join(r.DuplicateIDs, ", "))
	}
	if len(r.Dangling) == 0 && len(r.Cycles) == 0 && len(r.DuplicateIDs) == 0 {
		fmt.Fprintln(out, "  No problems found.")
	}
	fmt.Fprintln(out)
}

func init() {
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(checkCmd)
}
