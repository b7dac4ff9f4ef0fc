package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"wikitree/internal/hierarchy"
)

const defaultIcon = "📄"

// TreeOptions controls how a projected forest is drawn.
type TreeOptions struct {
	Selected string // page id to highlight
	ShowIDs  bool
}

// TreePrinter draws the visible rows of a projected forest. Styling is only
// applied when the output is a terminal.
type TreePrinter struct {
	out io.Writer

	styled        bool
	titleStyle    lipgloss.Style
	selectedStyle lipgloss.Style
	mutedStyle    lipgloss.Style
}

// NewTreePrinter returns a printer writing to out.
func NewTreePrinter(out io.Writer) *TreePrinter {
	p := &TreePrinter{out: out}

	if f, ok := out.(*os.File); ok {
		p.styled = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	if !p.styled {
		return p
	}

	p.titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#cdd6f4"))
	p.selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89b4fa"))
	p.mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6c7086"))
	return p
}

// Print writes one line per visible row.
func (p *TreePrinter) Print(forest []hierarchy.TreeNode, opts TreeOptions) error {
	for _, row := range hierarchy.Visible(forest) {
		if _, err := fmt.Fprintln(p.out, p.line(row, opts)); err != nil {
			return err
		}
	}
	return nil
}

func (p *TreePrinter) line(row hierarchy.Row, opts TreeOptions) string {
	n := row.Node
	selected := opts.Selected != "" && n.Page.ID == opts.Selected

	var b strings.Builder
	if selected {
		b.WriteString("> ")
	} else {
		b.WriteString("  ")
	}
	b.WriteString(strings.Repeat("  ", row.Depth))
	b.WriteString(Marker(n))
	b.WriteString(" ")
	b.WriteString(Icon(n.Page))
	b.WriteString(" ")

	title := n.Page.Title
	switch {
	case !p.styled:
	case selected:
		title = p.selectedStyle.Render(title)
	default:
		title = p.titleStyle.Render(title)
	}
	b.WriteString(title)

	if hierarchy.IsPrivate(n.Page) {
		b.WriteString(" 🔒")
	}
	if opts.ShowIDs {
		id := "[" + ShortID(n.Page.ID) + "]"
		if p.styled {
			id = p.mutedStyle.Render(id)
		}
		b.WriteString("  ")
		b.WriteString(id)
	}
	return b.String()
}

// Marker is the expand indicator for a node: ▾ expanded, ▸ collapsed, blank
// for leaves.
func Marker(n hierarchy.TreeNode) string {
	switch {
	case !n.HasChildren():
		return " "
	case n.Expanded:
		return "▾"
	default:
		return "▸"
	}
}

// Icon returns the page icon or the default document icon.
func Icon(p hierarchy.Page) string {
	if p.Icon != nil && strings.TrimSpace(*p.Icon) != "" {
		return *p.Icon
	}
	return defaultIcon
}

// ShortID truncates an id for display.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// TruncTitle shortens a title to max runes with a trailing ellipsis.
func TruncTitle(title string, max int) string {
	r := []rune(title)
	if len(r) <= max {
		return title
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

// Breadcrumb joins a path of titles for display.
func Breadcrumb(path []hierarchy.Page) string {
	titles := make([]string, len(path))
	for i, p := range path {
		titles[i] = p.Title
	}
	return strings.Join(titles, " › ")
}
