package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wikitree/internal/config"
	"wikitree/internal/hierarchy"
)

func strPtr(s string) *string { return &s }

func TestMarkdownHTML(t *testing.T) {
	m, err := NewMarkdown(config.DefaultConfig().Markdown)
	require.NoError(t, err)

	html, err := m.HTML("", "# Title\n\n~~old~~ text")
	require.NoError(t, err)
	assert.Contains(t, html, `<h1 id="title">Title</h1>`)
	assert.Contains(t, html, "<del>old</del>")
	assert.Equal(t, 0, m.Cached())
}

func TestMarkdownHTML_Cache(t *testing.T) {
	m, err := NewMarkdown(config.ConfigMarkdown{CacheSize: 2})
	require.NoError(t, err)

	key := CacheKey("p1", 100)
	first, err := m.HTML(key, "*one*")
	require.NoError(t, err)

	// Same key is served from the cache even if the source differs.
	second, err := m.HTML(key, "*two*")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	third, err := m.HTML(CacheKey("p1", 101), "*two*")
	require.NoError(t, err)
	assert.Contains(t, third, "<em>two</em>")
	assert.Equal(t, 2, m.Cached())
}

func TestMarkdownHTML_HardWraps(t *testing.T) {
	m, err := NewMarkdown(config.ConfigMarkdown{HardWraps: true, XHTML: true})
	require.NoError(t, err)
	html, err := m.HTML("", "a\nb")
	require.NoError(t, err)
	assert.Contains(t, html, "<br />")
}

func TestMarkdownHTML_NoExtensions(t *testing.T) {
	m, err := NewMarkdown(config.ConfigMarkdown{})
	require.NoError(t, err)
	html, err := m.HTML("", "~~old~~")
	require.NoError(t, err)
	assert.NotContains(t, html, "<del>")
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "abc@42", CacheKey("abc", 42))
}

func TestTerminalRender(t *testing.T) {
	term, err := NewTerminal(config.ConfigRender{Style: "notty", WordWrap: 40})
	require.NoError(t, err)

	out, err := term.Render("# Heading\n\nbody")
	require.NoError(t, err)
	assert.Contains(t, out, "Heading")
	assert.Contains(t, out, "body")

	out, err = term.Render("")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestAgoFrom(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	ms := now.Add(-3 * time.Hour).UnixMilli()
	assert.Equal(t, "3 hours ago", AgoFrom(ms, now))
}

func TestTreePrinter_Plain(t *testing.T) {
	pages := []hierarchy.Page{
		{ID: "1", Title: "Root"},
		{ID: "2", Title: "Child B", ParentID: strPtr("1"), SortOrder: 1, ScopeID: strPtr("team")},
		{ID: "3", Title: "Child A", ParentID: strPtr("1"), SortOrder: 0, Icon: strPtr("📘")},
		{ID: "4", Title: "Other"},
		{ID: "5", Title: "Hidden", ParentID: strPtr("4")},
	}
	forest := hierarchy.Project(pages, hierarchy.NewExpansionSet("1"))

	var buf bytes.Buffer
	p := NewTreePrinter(&buf)
	require.NoError(t, p.Print(forest, TreeOptions{Selected: "3"}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, []string{
		"  ▾ 📄 Root",
		">     📘 Child A",
		"      📄 Child B 🔒",
		"  ▸ 📄 Other",
	}, lines)
}

func TestTreePrinter_ShowIDs(t *testing.T) {
	forest := hierarchy.Project([]hierarchy.Page{{ID: "0123456789abcdef", Title: "Root"}}, nil)
	var buf bytes.Buffer
	require.NoError(t, NewTreePrinter(&buf).Print(forest, TreeOptions{ShowIDs: true}))
	assert.Equal(t, "    📄 Root  [01234567]\n", buf.String())
}

func TestIconAndMarker(t *testing.T) {
	assert.Equal(t, "📄", Icon(hierarchy.Page{Icon: strPtr("  ")}))
	assert.Equal(t, "🚀", Icon(hierarchy.Page{Icon: strPtr("🚀")}))
	assert.Equal(t, " ", Marker(hierarchy.TreeNode{}))
}

func TestTruncTitle(t *testing.T) {
	assert.Equal(t, "short", TruncTitle("short", 10))
	assert.Equal(t, "a long ...", TruncTitle("a long title here", 10))
	assert.Equal(t, "ab", TruncTitle("abcdef", 2))
}

func TestBreadcrumb(t *testing.T) {
	path := []hierarchy.Page{{Title: "Root"}, {Title: "Child A"}}
	assert.Equal(t, "Root › Child A", Breadcrumb(path))
	assert.Equal(t, "", Breadcrumb(nil))
}
