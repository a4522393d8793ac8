package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fwbo-viewer/fwbo/internal/handler"
	"github.com/fwbo-viewer/fwbo/internal/model"
	"github.com/fwbo-viewer/fwbo/internal/scene"
	"github.com/fwbo-viewer/fwbo/internal/tooltip"
	"github.com/fwbo-viewer/fwbo/internal/viewport"
)

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("24")).Padding(0, 1)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

const helpHint = "wheel zoom · drag pan · +/- zoom · 0 reset · / search · n/N next/prev · y copy · q quit"

// View draws the diagram, the hover panel and the status lines.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "loading…"
	}
	c := newCanvas(m.cols(), m.rows())
	view := m.view.View()
	screen := m.screen()
	toCell := func(p model.Point) (int, int) {
		s := viewport.ToScreen(view, p, screen)
		return clampCell(s.X / cellWidth), clampCell(s.Y / cellHeight)
	}

	for _, e := range m.scene.Edges {
		for i := 0; i+1 < len(e.Points); i++ {
			x1, y1 := toCell(e.Points[i])
			x2, y2 := toCell(e.Points[i+1])
			c.line(x1, y1, x2, y2, '·')
		}
		for _, l := range e.Labels {
			x, y := toCell(l.At)
			if l.Anchor == scene.AnchorMiddle {
				x -= len(l.Text) / 2
			}
			c.text(x, y, l.Text, len(l.Text))
		}
	}

	highlight := m.search.Highlighted()
	for _, n := range m.scene.Nodes {
		x1, y1 := toCell(model.Point{X: n.Rect.X, Y: n.Rect.Y})
		x2, y2 := toCell(model.Point{X: n.Rect.X + n.Rect.Width, Y: n.Rect.Y + n.Rect.Height})
		drawNode(c, n, x1, y1, x2, y2, n.ShapeID == highlight && highlight != "")
	}

	if p, ok := m.tip.Panel(); ok {
		c.overlay(clampCell(p.At.X/cellWidth), clampCell(p.At.Y/cellHeight), panelStyle.Render(panelText(p)))
	}

	return c.String() + "\n" + m.statusLine() + "\n" + m.promptLine()
}

func drawNode(c *canvas, n scene.Node, x1, y1, x2, y2 int, highlight bool) {
	if x2 < 0 || y2 < 0 || x1 >= c.w || y1 >= c.h {
		return
	}
	if x2-x1 < 2 || y2-y1 < 1 {
		c.text(x1, y1, n.Header, max(x2-x1+1, 1))
		return
	}
	c.fill(x1, y1, x2, y2)
	c.box(x1, y1, x2, y2, highlight)
	inner := x2 - x1 - 1
	for i, ln := range nodeLines(n, inner) {
		y := y1 + 1 + i
		if y >= y2 {
			break
		}
		c.text(x1+1, y, ln, inner)
	}
}

// nodeLines is the text content of a node, one entry per row.
func nodeLines(n scene.Node, width int) []string {
	lines := []string{n.Header}
	if n.Reference {
		return append(lines, handler.AliasMarker)
	}
	for _, it := range n.Items {
		if it.Type != "" {
			lines = append(lines, it.Name+": "+it.Type)
			continue
		}
		lines = append(lines, it.Name)
	}
	if n.Separator {
		lines = append(lines, strings.Repeat("╌", max(width, 0)))
	}
	for _, nav := range n.NavItems {
		lines = append(lines, "→ "+nav)
	}
	return lines
}

func panelText(p *tooltip.Panel) string {
	var b strings.Builder
	b.WriteString(p.Entity)
	for _, prop := range p.Properties {
		fmt.Fprintf(&b, "\n%s: %s", prop.Name, prop.Type)
	}
	if len(p.NavigationProperties) > 0 {
		b.WriteString("\n──")
		for _, nav := range p.NavigationProperties {
			b.WriteString("\n→ " + nav)
		}
	}
	return b.String()
}

func (m *Model) statusLine() string {
	zoom := 100.0
	if w := m.view.View().Width; w > 0 {
		zoom = m.view.Initial().Width / w * 100
	}
	parts := []string{m.title, fmt.Sprintf("%.0f%%", zoom)}
	if s := m.search.Summary(); s != "" {
		parts = append(parts, fmt.Sprintf("%q %s", m.search.Query(), s))
	}
	if m.status != "" && m.status != m.search.Summary() {
		parts = append(parts, m.status)
	}
	return statusStyle.Width(m.width).MaxWidth(m.width).Render(strings.Join(parts, " │ "))
}

func (m *Model) promptLine() string {
	if m.searching {
		return promptStyle.Render("search: ") + m.input + "█"
	}
	return hintStyle.MaxWidth(m.width).Render(helpHint)
}

func clampCell(v float64) int {
	const limit = 1 << 20
	switch {
	case math.IsNaN(v):
		return 0
	case v > limit:
		return limit
	case v < -limit:
		return -limit
	}
	return int(math.Floor(v))
}
