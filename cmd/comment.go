package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"wikitree/internal/discussion"
	"wikitree/internal/render"
)

var commentJSON bool

var commentCmd = &cobra.Command{
	Use:   "comment",
	Short: "Add, list and delete page comments",
}

var commentAddCmd = &cobra.Command{
	Use:   "add <page> <text...>",
	Short: "Comment on a page",
	Args:  cobra.MinimumNArgs(2),
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
		c, err := s.Comment(p.ID, strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added comment %s on %s\n", c.ID, p.Title)
		return nil
	},
}

var commentLsCmd = &cobra.Command{
	Use:   "ls <page>",
	Short: "List the comments of a page",
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
		views, err := s.Comments(p.ID)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if commentJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(views)
		}
		if len(views) == 0 {
			fmt.Fprintf(out, "No comments on %s.\n", p.Title)
			return nil
		}
		for _, c := range views {
			fmt.Fprintf(out, "%s  %s · %s\n", c.ID, c.OwnerID, render.Ago(c.CreatedAt))
			fmt.Fprintf(out, "  %s\n", strings.ReplaceAll(c.Content, "\n", "\n  "))
			if len(c.Reactions) > 0 {
				fmt.Fprintf(out, "  %s\n", formatReactions(c))
			}
		}
		return nil
	},
}

var commentRmCmd = &cobra.Command{
	Use:   "rm <comment-id>",
	Short: "Delete one of your comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, d, err := OpenService()
		if err != nil {
			return err
		}
		defer d.Close()

		if err := s.DeleteComment(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted comment %s\n", truncID(args[0]))
		return nil
	},
}

var reactCmd = &cobra.Command{
	Use:   "react <comment-id> <emoji>",
	Short: "Toggle your reaction on a comment (" + strings.Join(discussion.Palette, " ") + ")",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, d, err := OpenService()
		if err != nil {
			return err
		}
		defer d.Close()

		res, err := s.React(args[0], args[1])
		if err != nil {
			return err
		}
		verb := "Removed"
		if res.Added {
			verb = "Added"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s on %s\n", verb, args[1], truncID(args[0]))
		return nil
	},
}

func init() {
	commentLsCmd.Flags().BoolVar(&commentJSON, "json", false, "Output as JSON")
	commentCmd.AddCommand(commentAddCmd, commentLsCmd, commentRmCmd)
	rootCmd.AddCommand(commentCmd, reactCmd)
}
