package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"wikitree/internal/hierarchy"
	"wikitree/internal/render"
)

var (
	treeMode   string
	treeExpand []string
	treeAll    bool
	treeReveal string
	treeJSON   bool
	treeIDs    bool
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Show the page tree of one visibility",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, d, err := OpenService()
		if err != nil {
			return err
		}
		defer d.Close()

		mode, err := parseMode(treeMode)
		if err != nil {
			return err
		}

		expanded := hierarchy.NewExpansionSet()
		for _, ref := range treeExpand {
			p, err := ResolvePage(s, d, ref)
			if err != nil {
				return err
			}
			expanded.Expand(p.ID)
		}

		var selected string
		if treeReveal != "" {
			p, err := ResolvePage(s, d, treeReveal)
			if err != nil {
				return err
			}
			r, err := s.Reveal(p.ID)
			if err != nil {
				return err
			}
			mode = r.Mode
			expanded.Expand(r.ExpandIDs...)
			selected = p.ID
		}

		if treeAll {
			pages, err := s.Pages(mode)
			if err != nil {
				return err
			}
			for _, p := range pages {
				expanded.Expand(p.ID)
			}
		}

		view, err := s.Tree(mode, expanded)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if treeJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(view)
		}

		if len(view.Forest) == 0 {
			fmt.Fprintf(out, "No %s pages.\n", mode)
			return nil
		}
		return render.NewTreePrinter(out).Print(view.Forest, render.TreeOptions{
			Selected: selected,
			ShowIDs:  treeIDs,
		})
	},
}

func init() {
	treeCmd.Flags().StringVar(&treeMode, "mode", "", "Visibility to show: public or private (default from config)")
	treeCmd.Flags().StringSliceVar(&treeExpand, "expand", nil, "Pages to expand (ids or references)")
	treeCmd.Flags().BoolVar(&treeAll, "all", false, "Expand every page")
	treeCmd.Flags().StringVar(&treeReveal, "reveal", "", "Expand the path to this page and highlight it")
	treeCmd.Flags().BoolVar(&treeJSON, "json", false, "Output as JSON")
	treeCmd.Flags().BoolVar(&treeIDs, "ids", false, "Show short page ids")
	rootCmd.AddCommand(treeCmd)
}
