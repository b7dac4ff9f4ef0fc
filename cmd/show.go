package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"wikitree/internal/hierarchy"
	"wikitree/internal/render"
	"wikitree/internal/wiki"
)

var (
	showHTML bool
	showRaw  bool
	showJSON bool
)

type pageDetail struct {
	Page       hierarchy.Page     `json:"page"`
	Visibility string             `json:"visibility"`
	Breadcrumb []hierarchy.Page   `json:"breadcrumb"`
	Children   []hierarchy.Page   `json:"children,omitempty"`
	Comments   []wiki.CommentView `json:"comments"`
	HTML       string             `json:"html,omitempty"`
}

var showCmd = &cobra.Command{
	Use:   "show <page>",
	Short: "Show a page with its breadcrumb, content and comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, d, err := OpenService()
		if err != nil {
			return err
		}
		defer d.Close()

		p, err := ResolvePage(s, d, args[0])
		if err != nil {
			return err
		}

		detail := pageDetail{Page: p, Visibility: hierarchy.Classify(p).String()}
		if detail.Breadcrumb, err = s.Breadcrumb(p.ID); err != nil {
			return err
		}
		if p.ShowChildren {
			if detail.Children, err = s.Children(p.ID); err != nil {
				return err
			}
		}
		if detail.Comments, err = s.Comments(p.ID); err != nil {
			return err
		}

		content := ""
		if p.Content != nil {
			content = *p.Content
		}
		if showHTML || showJSON {
			md, err := Markdown()
			if err != nil {
				return err
			}
			if detail.HTML, err = md.HTML(render.CacheKey(p.ID, p.UpdatedAt), content); err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		switch {
		case showJSON:
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(detail)
		case showHTML:
			_, err := io.WriteString(out, detail.HTML)
			return err
		}

		body := content
		if !showRaw {
			term, err := render.NewTerminal(cfg.Render)
			if err != nil {
				return err
			}
			if body, err = term.Render(content); err != nil {
				return err
			}
		}
		printPage(out, detail, body)
		return nil
	},
}

func printPage(out io.Writer, detail pageDetail, body string) {
	p := detail.Page
	fmt.Fprintf(out, "\n  %s\n", render.Breadcrumb(detail.Breadcrumb))
	fmt.Fprintf(out, "  %s %s\n", render.Icon(p), p.Title)
	if p.Description != nil && *p.Description != "" {
		fmt.Fprintf(out, "  %s\n", *p.Description)
	}
	fmt.Fprintf(out, "  %s · %s · updated %s · %s\n",
		truncID(p.ID), detail.Visibility, render.Ago(p.UpdatedAt), p.OwnerID)
	if p.ActionLabel != nil && *p.ActionLabel != "" {
		fmt.Fprintf(out, "  [%s]\n", *p.ActionLabel)
	}
	fmt.Fprintln(out, "  ────────────────────────────────────────")

	if strings.TrimSpace(body) != "" {
		fmt.Fprintln(out, body)
	}

	if len(detail.Children) > 0 {
		fmt.Fprintln(out, "  SUBPAGES")
		for _, c := range detail.Children {
			desc := ""
			if c.Description != nil {
				desc = "  " + render.TruncTitle(*c.Description, 50)
			}
			fmt.Fprintf(out, "    %s %s%s\n", render.Icon(c), c.Title, desc)
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "  COMMENTS (%d)\n", len(detail.Comments))
	for _, c := range detail.Comments {
		fmt.Fprintf(out, "    %s · %s · %s\n", c.OwnerID, render.Ago(c.CreatedAt), truncID(c.ID))
		for _, line := range strings.Split(c.Content, "\n") {
			fmt.Fprintf(out, "      %s\n", line)
		}
		if len(c.Reactions) > 0 {
			fmt.Fprintf(out, "      %s\n", formatReactions(c))
		}
	}
	fmt.Fprintln(out)
}

func formatReactions(c wiki.CommentView) string {
	parts := make([]string, len(c.Reactions))
	for i, g := range c.Reactions {
		mark := ""
		if g.HasOwn {
			mark = "*"
		}
		parts[i] = fmt.Sprintf("%s %d%s", g.Emoji, g.Count, mark)
	}
	return strings.Join(parts, "  ")
}

func init() {
	showCmd.Flags().BoolVar(&showHTML, "html", false, "Print the content as HTML")
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "Print the content as plain markdown")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(showCmd)
}
