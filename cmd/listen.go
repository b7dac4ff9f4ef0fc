package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"wikitree/internal/render"
	"wikitree/internal/wiki"
)

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Handle action events, one JSON object per line on stdin",
	Long: `Reads {"page_id": "...", "achievement_topic": "..."} events from stdin and
writes one JSON result per line to stdout. A revealed page carries its content
rendered as HTML. Malformed lines produce an error result.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, d, err := OpenService()
		if err != nil {
			return err
		}
		defer d.Close()

		md, err := Markdown()
		if err != nil {
			return err
		}
		return listen(s, md, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

type listenResult struct {
	*wiki.ActionResult
	HTML  string `json:"html,omitempty"`
	Error string `json:"error,omitempty"`
}

// listen answers each event line with one result line until in is exhausted.
func listen(s *wiki.Service, md *render.Markdown, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	enc := json.NewEncoder(out)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var ev wiki.ActionEvent
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			logger.Warn("skipping malformed event", "err", err)
			if err := enc.Encode(listenResult{Error: fmt.Sprintf("malformed event: %v", err)}); err != nil {
				return err
			}
			continue
		}

		res, err := s.HandleAction(ev)
		if err != nil {
			logger.Warn("action failed", "page", ev.PageID, "err", err)
			if err := enc.Encode(listenResult{Error: err.Error()}); err != nil {
				return err
			}
			continue
		}
		result := listenResult{ActionResult: res}
		if res.Reveal != nil {
			if result.HTML, err = revealedHTML(md, res.Reveal); err != nil {
				logger.Warn("rendering revealed page", "page", ev.PageID, "err", err)
			}
		}
		if err := enc.Encode(result); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// revealedHTML renders the content of the page a reveal points at.
func revealedHTML(md *render.Markdown, r *wiki.Reveal) (string, error) {
	if len(r.Breadcrumb) == 0 {
		return "", nil
	}
	p := r.Breadcrumb[len(r.Breadcrumb)-1]
	if p.Content == nil {
		return "", nil
	}
	return md.HTML(render.CacheKey(p.ID, p.UpdatedAt), *p.Content)
}

func init() {
	rootCmd.AddCommand(listenCmd)
}
