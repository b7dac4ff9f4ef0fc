package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"wikitree/internal/db"
	"wikitree/internal/hierarchy"
	"wikitree/internal/wiki"
)

var (
	pageParent       string
	pageMode         string
	pageIcon         string
	pageDescription  string
	pageContent      string
	pageFile         string
	pageSort         int
	pageShowChildren bool
	pageActionLabel  string
	pageTitle        string

	moveTo   string
	moveRoot bool
)

// readContent returns --content, or the contents of --file ("-" is stdin).
func readContent(cmd *cobra.Command) (string, bool, error) {
	if pageFile != "" {
		var data []byte
		var err error
		if pageFile == "-" {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(pageFile)
		}
		if err != nil {
			return "", false, fmt.Errorf("reading content: %w", err)
		}
		return string(data), true, nil
	}
	return pageContent, cmd.Flags().Changed("content"), nil
}

var newCmd = &cobra.Command{
	Use:   "new <title>",
	Short: "Create a page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, d, err := OpenService()
		if err != nil {
			return err
		}
		defer d.Close()

		mode, err := parseMode(pageMode)
		if err != nil {
			return err
		}
		draft := wiki.Draft{
			Title:        args[0],
			Description:  pageDescription,
			Icon:         pageIcon,
			SortOrder:    pageSort,
			ShowChildren: pageShowChildren,
			ActionLabel:  pageActionLabel,
		}
		if draft.Content, _, err = readContent(cmd); err != nil {
			return err
		}
		if pageParent != "" {
			parent, err := ResolvePage(s, d, pageParent)
			if err != nil {
				return err
			}
			draft.ParentID = &parent.ID
			if !cmd.Flags().Changed("mode") {
				mode = hierarchy.Classify(parent)
			}
		}

		p, err := s.Create(mode, draft)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s page %s (%s)\n", mode, p.ID, p.Title)
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <page>",
	Short: "Update page fields; only flags given are changed",
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

		var upd db.PageUpdate
		flags := cmd.Flags()
		if flags.Changed("title") {
			upd.Title = &pageTitle
		}
		if flags.Changed("description") {
			upd.Description = &pageDescription
		}
		if flags.Changed("icon") {
			upd.Icon = &pageIcon
		}
		if flags.Changed("sort") {
			upd.SortOrder = &pageSort
		}
		if flags.Changed("show-children") {
			upd.ShowChildren = &pageShowChildren
		}
		if flags.Changed("action-label") {
			upd.ActionLabel = &pageActionLabel
		}
		content, changed, err := readContent(cmd)
		if err != nil {
			return err
		}
		if changed {
			upd.Content = &content
		}
		if upd.Empty() {
			return fmt.Errorf("nothing to change (see wikitree edit --help)")
		}

		if err := s.Edit(p.ID, upd); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", truncID(p.ID))
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <page>",
	Short: "Delete a page; its subpages become roots",
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
		if err := s.Delete(p.ID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s (%s)\n", truncID(p.ID), p.Title)
		return nil
	},
}

var mvCmd = &cobra.Command{
	Use:   "mv <page>",
	Short: "Move a page under another page or to the root",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if (moveTo == "") == !moveRoot {
			return fmt.Errorf("give exactly one of --to or --root")
		}
		s, d, err := OpenService()
		if err != nil {
			return err
		}
		defer d.Close()

		p, err := ResolvePage(s, d, args[0])
		if err != nil {
			return err
		}

		var parent *string
		dest := "root"
		if moveTo != "" {
			target, err := ResolvePage(s, d, moveTo)
			if err != nil {
				return err
			}
			parent = &target.ID
			dest = target.Title
		}
		if err := s.Move(p.ID, parent); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Moved %s under %s\n", p.Title, dest)
		return nil
	},
}

var publishCmd = &cobra.Command{
	Use:   "publish <page>",
	Short: "Toggle a page between published and private",
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
		v, err := s.TogglePublish(p.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", p.Title, v)
		return nil
	},
}

func addPageFlags(c *cobra.Command) {
	c.Flags().StringVar(&pageIcon, "icon", "", "Page icon (emoji)")
	c.Flags().StringVar(&pageDescription, "description", "", "Short description")
	c.Flags().StringVar(&pageContent, "content", "", "Markdown content")
	c.Flags().StringVar(&pageFile, "file", "", "Read markdown content from file (- for stdin)")
	c.Flags().IntVar(&pageSort, "sort", 0, "Sort order among siblings")
	c.Flags().BoolVar(&pageShowChildren, "show-children", false, "List subpages below the content")
	c.Flags().StringVar(&pageActionLabel, "action-label", "", "Label for the page's action trigger")
}

func init() {
	addPageFlags(newCmd)
	newCmd.Flags().StringVar(&pageParent, "parent", "", "Parent page")
	newCmd.Flags().StringVar(&pageMode, "mode", "", "public or private (default: parent's, then config)")

	addPageFlags(editCmd)
	editCmd.Flags().StringVar(&pageTitle, "title", "", "New title")

	mvCmd.Flags().StringVar(&moveTo, "to", "", "New parent page")
	mvCmd.Flags().BoolVar(&moveRoot, "root", false, "Move to the top level")

	rootCmd.AddCommand(newCmd, editCmd, rmCmd, mvCmd, publishCmd)
}
