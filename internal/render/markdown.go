// Package render turns pages into HTML, styled terminal text and tree views.
package render

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	gm "github.com/yuin/goldmark"
	gmext "github.com/yuin/goldmark/extension"
	gmparse "github.com/yuin/goldmark/parser"
	gmrenderer "github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"wikitree/internal/config"
)

// Markdown converts page content to HTML. Results are cached by key, which
// callers derive from the page id and its update time so an edit invalidates
// the entry.
type Markdown struct {
	md    gm.Markdown
	cache *lru.Cache[string, string]
}

// NewMarkdown builds a converter from the markdown section of the config.
func NewMarkdown(cfg config.ConfigMarkdown) (*Markdown, error) {
	size := cfg.CacheSize
	if size <= 0 {
		size = 128
	}
	cache, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("creating markdown cache: %w", err)
	}
	return &Markdown{md: buildGoldmark(cfg), cache: cache}, nil
}

// CacheKey identifies one revision of a page's content.
func CacheKey(pageID string, updatedAt int64) string {
	return pageID + "@" + strconv.FormatInt(updatedAt, 10)
}

// HTML renders src, serving repeated keys from the cache. An empty key
// bypasses the cache.
func (m *Markdown) HTML(key, src string) (string, error) {
	if key != "" {
		if cached, ok := m.cache.Get(key); ok {
			return cached, nil
		}
	}

	var buf bytes.Buffer
	if err := m.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	html := buf.String()
	if key != "" {
		m.cache.Add(key, html)
	}
	return html, nil
}

// Cached reports how many rendered revisions are held.
func (m *Markdown) Cached() int { return m.cache.Len() }

func buildGoldmark(cfg config.ConfigMarkdown) gm.Markdown {
	var (
		exts     []gm.Extender
		htmlOpts []gmrenderer.Option
	)

	for _, name := range cfg.Extensions {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "gfm":
			exts = append(exts, gmext.GFM)
		case "table", "tables":
			exts = append(exts, gmext.Table)
		case "strikethrough":
			exts = append(exts, gmext.Strikethrough)
		case "tasklist", "task-list":
			exts = append(exts, gmext.TaskList)
		case "deflist", "definition-list":
			exts = append(exts, gmext.DefinitionList)
		case "footnote", "footnotes":
			exts = append(exts, gmext.Footnote)
		case "linkify":
			exts = append(exts, gmext.Linkify)
		case "typographer", "smartypants":
			exts = append(exts, gmext.Typographer)
		default:
		}
	}

	if cfg.HardWraps {
		htmlOpts = append(htmlOpts, gmhtml.WithHardWraps())
	}
	if cfg.XHTML {
		htmlOpts = append(htmlOpts, gmhtml.WithXHTML())
	}

	opts := []gm.Option{
		gm.WithParserOptions(gmparse.WithAutoHeadingID()),
	}
	if len(exts) > 0 {
		opts = append(opts, gm.WithExtensions(exts...))
	}
	if len(htmlOpts) > 0 {
		opts = append(opts, gm.WithRendererOptions(htmlOpts...))
	}
	return gm.New(opts...)
}
