package style

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"

	"github.com/arthur-debert/dirx/pkg/resolve"
	"github.com/arthur-debert/dirx/pkg/tree"
)

// Renderer draws dirx data for the terminal. A plain renderer emits no
// escape sequences.
type Renderer struct {
	plain bool
}

// NewRenderer returns a renderer for a resolved format.
func NewRenderer(f Format) *Renderer {
	return &Renderer{plain: f != FormatTerminal}
}

// Plain reports whether the renderer skips styling.
func (r *Renderer) Plain() bool { return r.plain }

func (r *Renderer) paint(s lipgloss.Style, text string) string {
	if r.plain {
		return text
	}
	return s.Render(text)
}

// Title renders a heading line.
func (r *Renderer) Title(text string) string { return r.paint(TitleStyle, text) }

// Muted renders secondary text.
func (r *Renderer) Muted(text string) string { return r.paint(MutedStyle, text) }

// Success renders a confirmation line.
func (r *Renderer) Success(text string) string {
	return r.paint(SuccessStyle, SelectedGlyph) + " " + text
}

// Warning renders a warning line.
func (r *Renderer) Warning(text string) string {
	return r.paint(WarningStyle, WarningGlyph) + " " + text
}

// Error renders an error line.
func (r *Renderer) Error(text string) string {
	return r.paint(ErrorStyle, ExcludedGlyph) + " " + text
}

// Tree draws t with box connectors. Selected files carry a check mark and
// per-file overrides are listed after the name.
func (r *Renderer) Tree(t *tree.Tree) string {
	var b strings.Builder
	var draw func(id tree.NodeID, prefix string, last bool)
	draw = func(id tree.NodeID, prefix string, last bool) {
		n, _ := t.Get(id)
		connector, childPrefix := "├── ", prefix+"│   "
		if last {
			connector, childPrefix = "└── ", prefix+"    "
		}
		b.WriteString(prefix + connector + r.nodeLabel(n) + "\n")

		children := t.Children(id)
		for i, c := range children {
			draw(c, childPrefix, i == len(children)-1)
		}
	}

	roots := t.Roots()
	for i, id := range roots {
		draw(id, "", i == len(roots)-1)
	}
	return b.String()
}

func (r *Renderer) nodeLabel(n tree.Node) string {
	if n.IsDir() {
		return r.paint(DirStyle, n.Name+"/")
	}

	label := r.paint(FileStyle, n.Name)
	if n.Selected {
		label = r.paint(SelectedStyle, n.Name+" "+SelectedGlyph)
	}

	var notes []string
	if n.LineLimitOverride != nil {
		notes = append(notes, n.LineLimitOverride.Summary())
	}
	if n.CompressionOverride != nil && !n.CompressionOverride.IsZero() {
		notes = append(notes, "compression override")
	}
	if n.DescriptionOverride != "" {
		notes = append(notes, fmt.Sprintf("%q", n.DescriptionOverride))
	}
	if len(notes) > 0 {
		label += " " + r.Muted("["+strings.Join(notes, ", ")+"]")
	}
	return label
}

// Decisions renders the import report as a table. With excludedOnly only
// pruned nodes are listed.
func (r *Renderer) Decisions(decisions map[tree.NodeID]resolve.Decision, excludedOnly bool) (string, error) {
	ids := make([]string, 0, len(decisions))
	for id, d := range decisions {
		if excludedOnly && d.Included {
			continue
		}
		ids = append(ids, string(id))
	}
	sort.Strings(ids)

	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		d := decisions[tree.NodeID(id)]
		verdict := "include"
		if !d.Included {
			verdict = "exclude"
		}
		rows = append(rows, []string{id, verdict, string(d.Source), d.RuleID, d.Reason})
	}
	return r.Table([]string{"PATH", "DECISION", "SOURCE", "RULE", "REASON"}, rows)
}

// Table renders rows under headers.
func (r *Renderer) Table(headers []string, rows [][]string) (string, error) {
	data := pterm.TableData{headers}
	data = append(data, rows...)

	table := pterm.DefaultTable.
		WithHasHeader(true).
		WithBoxed(false).
		WithData(data)
	if r.plain {
		table = table.WithHeaderStyle(pterm.NewStyle()).WithSeparatorStyle(pterm.NewStyle())
	}
	return table.Srender()
}
