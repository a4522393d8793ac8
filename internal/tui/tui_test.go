package tui

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fwbo-viewer/fwbo/internal/model"
	"github.com/fwbo-viewer/fwbo/internal/reload"
	"github.com/fwbo-viewer/fwbo/internal/render"
	"github.com/fwbo-viewer/fwbo/internal/result"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sample() *model.Data {
	d := &model.Data{
		Entities: []model.Entity{{ID: "e1", Name: "Customer", Properties: []model.Property{{Name: "Id", Type: "Guid"}}}},
		Aliases:  []model.Alias{{ID: "a1", DcName: "Customer", DcID: "e1"}},
		Diagram: model.Diagram{
			Shapes: []model.Shape{
				{ID: "sh1", ModelID: "e1", X: 1, Y: 1, Width: 2, Height: 1, Type: model.KindEntity},
				{ID: "sh2", ModelID: "a1", X: 4, Y: 1, Width: 1, Height: 0.5, Type: model.KindAlias},
			},
		},
	}
	d.Normalize()
	return d
}

func newTestModel(t *testing.T) (*Model, *[]string) {
	t.Helper()
	r := render.New(render.DefaultOptions(), quietLogger())
	m := New(sample(), "orders.fwbo", r, quietLogger())
	var copied []string
	m.copy = func(s string) error {
		copied = append(copied, s)
		return nil
	}
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m, &copied
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestWindowSize(t *testing.T) {
	m, _ := newTestModel(t)
	if m.cols() != 80 || m.rows() != 22 {
		t.Errorf("cols, rows = %d, %d", m.cols(), m.rows())
	}
	if s := m.screen(); s.Width != 640 || s.Height != 352 {
		t.Errorf("screen() = %+v", s)
	}
}

func TestKeyZoomAndReset(t *testing.T) {
	m, _ := newTestModel(t)
	initial := m.view.Initial()

	m.Update(key("+"))
	if got, want := m.view.View().Width, initial.Width*zoomInKey; got != want {
		t.Errorf("width after + = %v, want %v", got, want)
	}
	m.Update(key("0"))
	if m.view.View() != initial {
		t.Errorf("view after reset = %+v", m.view.View())
	}
}

func TestMouseWheelZoomsAtPointer(t *testing.T) {
	m, _ := newTestModel(t)
	initial := m.view.Initial()
	m.Update(tea.MouseMsg{X: 10, Y: 5, Type: tea.MouseWheelUp})
	if got, want := m.view.View().Width, initial.Width*zoomInWheel; got != want {
		t.Errorf("width after wheel up = %v, want %v", got, want)
	}
}

func TestDragPans(t *testing.T) {
	m, _ := newTestModel(t)
	initial := m.view.Initial()
	m.Update(tea.MouseMsg{X: 10, Y: 5, Type: tea.MouseLeft})
	m.Update(tea.MouseMsg{X: 20, Y: 5, Type: tea.MouseMotion})
	m.Update(tea.MouseMsg{X: 20, Y: 5, Type: tea.MouseRelease})
	v := m.view.View()
	if v.X >= initial.X || v.Y != initial.Y || v.Width != initial.Width {
		t.Errorf("view after drag right = %+v, initial %+v", v, initial)
	}
	if m.view.Dragging() {
		t.Error("drag still active after release")
	}
}

func TestSearchFlowAndCopy(t *testing.T) {
	m, copied := newTestModel(t)

	m.Update(key("/"))
	if !m.searching {
		t.Fatal("/ did not open the prompt")
	}
	m.Update(key("custom"))
	m.Update(key("er"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if m.searching {
		t.Error("prompt still open after enter")
	}
	if m.search.Count() != 1 || m.search.Highlighted() != "sh1" {
		t.Errorf("matches = %d, highlighted = %q", m.search.Count(), m.search.Highlighted())
	}
	if m.status != "1 found" {
		t.Errorf("status = %q", m.status)
	}

	m.Update(key("y"))
	if len(*copied) != 1 || (*copied)[0] != "Customer" {
		t.Errorf("copied = %v", *copied)
	}
}

func TestCopyWithoutHighlight(t *testing.T) {
	m, copied := newTestModel(t)
	m.Update(key("y"))
	if len(*copied) != 0 || m.status != "nothing highlighted" {
		t.Errorf("copied = %v, status = %q", *copied, m.status)
	}

	m.copy = func(string) error { return errors.New("no clipboard") }
	m.search.Search("customer")
	m.Update(key("y"))
	if !strings.HasPrefix(m.status, "copy failed") {
		t.Errorf("status = %q", m.status)
	}
}

func TestHoverAliasShowsPanel(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(tea.MouseMsg{X: 64, Y: 8, Type: tea.MouseMotion})
	p, ok := m.tip.Panel()
	if !ok {
		t.Fatal("no panel over the alias")
	}
	if p.Entity != "Customer" || p.At != (model.Point{X: 516 + 15, Y: 136 + 15}) {
		t.Errorf("panel = %+v", p)
	}
	if !strings.Contains(m.View(), "╭") {
		t.Error("panel border not drawn")
	}

	m.Update(tea.MouseMsg{X: 0, Y: 0, Type: tea.MouseMotion})
	if _, ok := m.tip.Panel(); ok {
		t.Error("panel still shown over empty space")
	}
	if strings.Contains(m.View(), "╭") {
		t.Error("panel border drawn after leaving")
	}
}

func TestReloadMessages(t *testing.T) {
	m, _ := newTestModel(t)

	next := sample()
	next.Entities[0].Name = "Client"
	m.Update(reloadMsg(reload.Update{Version: 2, Result: &result.ParseResult{Success: true, Data: next}}))
	if m.scene.Nodes[0].Header != "Client" {
		t.Errorf("header after reload = %q", m.scene.Nodes[0].Header)
	}

	m.Update(reloadMsg(reload.Update{Version: 3, Result: &result.ParseResult{Success: true, Data: next}, Err: errors.New("bad xml")}))
	if m.scene.Nodes[0].Header != "Client" || !strings.Contains(m.status, "bad xml") {
		t.Errorf("failed reload: header %q, status %q", m.scene.Nodes[0].Header, m.status)
	}
}

func TestViewDrawsDiagramAndStatus(t *testing.T) {
	m, _ := newTestModel(t)
	out := m.View()
	for _, want := range []string{"Customer", "(Alias)", "orders.fwbo", "100%", "/ search"} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q", want)
		}
	}
	if n := strings.Count(out, "\n"); n != 23 {
		t.Errorf("View() has %d line breaks, want 23", n)
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}
