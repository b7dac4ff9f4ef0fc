package render

import (
	"fmt"

	"github.com/charmbracelet/glamour"

	"wikitree/internal/config"
)

// Terminal renders markdown to styled terminal output.
type Terminal struct {
	renderer *glamour.TermRenderer
}

// NewTerminal creates a glamour renderer using the configured style and
// word wrap width.
func NewTerminal(cfg config.ConfigRender) (*Terminal, error) {
	style := glamour.WithStandardStyle(cfg.Style)
	if cfg.Style == "" || cfg.Style == "auto" {
		style = glamour.WithAutoStyle()
	}
	r, err := glamour.NewTermRenderer(
		style,
		glamour.WithWordWrap(cfg.WordWrap),
	)
	if err != nil {
		return nil, fmt.Errorf("creating glamour renderer: %w", err)
	}
	return &Terminal{renderer: r}, nil
}

// Render processes markdown text into styled terminal output.
func (t *Terminal) Render(md string) (string, error) {
	if md == "" {
		return "", nil
	}
	if t == nil || t.renderer == nil {
		return md, nil
	}
	return t.renderer.Render(md)
}
