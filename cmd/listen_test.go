package cmd

import (
	"bytes"
	"encoding/json"
	"slices"
	"strings"
	"testing"

	"wikitree/internal/config"
	"wikitree/internal/hierarchy"
	"wikitree/internal/render"
	"wikitree/internal/wiki"
)

func newTestMarkdown(t *testing.T) *render.Markdown {
	t.Helper()
	md, err := render.NewMarkdown(config.DefaultConfig().Markdown)
	if err != nil {
		t.Fatalf("NewMarkdown: %v", err)
	}
	return md
}

type listenLine struct {
	Reveal struct {
		PageID   string   `json:"page_id"`
		Mode     string   `json:"mode"`
		Expanded []string `json:"expanded"`
	} `json:"reveal"`
	Accomplishment struct {
		Type    string `json:"type"`
		Keyword string `json:"accomplishment_keyword"`
	} `json:"accomplishment"`
	HTML  string `json:"html"`
	Error string `json:"error"`
}

func TestListen(t *testing.T) {
	s, _ := newTestService(t, "alice", "")
	root := mustCreate(t, s, hierarchy.Published, wiki.Draft{Title: "Root"})
	leaf := mustCreate(t, s, hierarchy.Published, wiki.Draft{Title: "Leaf", ParentID: &root.ID})

	in := strings.Join([]string{
		`{"page_id": "` + leaf.ID + `", "achievement_topic": "verbs"}`,
		``,
		`not json`,
		`{"page_id": "missing"}`,
	}, "\n")

	var out bytes.Buffer
	if err := listen(s, newTestMarkdown(t), strings.NewReader(in), &out); err != nil {
		t.Fatalf("listen: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 result lines, got %d:\n%s", len(lines), out.String())
	}

	var first listenLine
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("decoding first result: %v", err)
	}
	if first.Error != "" {
		t.Errorf("unexpected error: %s", first.Error)
	}
	if first.Reveal.PageID != leaf.ID || first.Reveal.Mode != "published" {
		t.Errorf("reveal = %+v, want page %s in published", first.Reveal, leaf.ID)
	}
	if !slices.Equal(first.Reveal.Expanded, []string{root.ID}) {
		t.Errorf("expanded = %v, want [%s]", first.Reveal.Expanded, root.ID)
	}
	if first.Accomplishment.Type != "macro" || first.Accomplishment.Keyword != "verbs" {
		t.Errorf("accomplishment = %+v", first.Accomplishment)
	}

	if !strings.Contains(lines[1], "malformed event") {
		t.Errorf("line 2 should report a malformed event: %s", lines[1])
	}
	if !strings.Contains(lines[2], "not found") {
		t.Errorf("line 3 should report a missing page: %s", lines[2])
	}
}

func TestListen_RendersRevealedPageOnce(t *testing.T) {
	s, _ := newTestService(t, "alice", "")
	p := mustCreate(t, s, hierarchy.Published, wiki.Draft{Title: "Verbs", Content: "# Irregular verbs"})
	md := newTestMarkdown(t)

	event := `{"page_id": "` + p.ID + `"}`
	var out bytes.Buffer
	if err := listen(s, md, strings.NewReader(event+"\n"+event+"\n"), &out); err != nil {
		t.Fatalf("listen: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 result lines, got %d:\n%s", len(lines), out.String())
	}
	for i, line := range lines {
		var res listenLine
		if err := json.Unmarshal([]byte(line), &res); err != nil {
			t.Fatalf("decoding result %d: %v", i, err)
		}
		if !strings.Contains(res.HTML, "Irregular verbs</h1>") {
			t.Errorf("result %d html = %q, want the rendered heading", i, res.HTML)
		}
	}
	if n := md.Cached(); n != 1 {
		t.Errorf("cache holds %d entries, want 1 for the same unchanged page", n)
	}
}
