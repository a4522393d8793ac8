// Package tui is the interactive terminal diagram viewer.
package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fwbo-viewer/fwbo/internal/model"
	"github.com/fwbo-viewer/fwbo/internal/reload"
	"github.com/fwbo-viewer/fwbo/internal/render"
	"github.com/fwbo-viewer/fwbo/internal/scene"
	"github.com/fwbo-viewer/fwbo/internal/search"
	"github.com/fwbo-viewer/fwbo/internal/tooltip"
	"github.com/fwbo-viewer/fwbo/internal/viewport"
)

// Zoom factors for keys and the mouse wheel.
const (
	zoomInKey    = 0.8
	zoomOutKey   = 1.25
	zoomInWheel  = 0.9
	zoomOutWheel = 1.1
)

// Terminal cells are treated as fixed-size pixel blocks so pointer math and the
// tooltip offset use the same units as a graphical surface.
const (
	cellWidth  = 8.0
	cellHeight = 16.0
)

// statusLines are reserved below the diagram.
const statusLines = 2

type reloadMsg reload.Update

// Model is the bubbletea model of the viewer.
type Model struct {
	title    string
	renderer *render.Renderer
	log      *slog.Logger

	data   *model.Data
	scene  *scene.Scene
	view   *viewport.Controller
	search *search.Controller
	tip    *tooltip.Controller

	width, height int
	searching     bool
	input         string
	status        string

	updates <-chan reload.Update
	copy    func(string) error
}

// New builds a viewer over d.
func New(d *model.Data, title string, r *render.Renderer, log *slog.Logger) *Model {
	if log == nil {
		log = slog.Default()
	}
	m := &Model{title: title, renderer: r, log: log, copy: clipboard.WriteAll}
	m.setModel(d)
	return m
}

// WithUpdates makes the viewer follow reload results from ch.
func (m *Model) WithUpdates(ch <-chan reload.Update) *Model {
	m.updates = ch
	return m
}

func (m *Model) setModel(d *model.Data) {
	m.data = d
	m.scene = m.renderer.Render(d)
	m.view = viewport.NewController(m.scene.Space, m.renderer.Options().Viewport)
	if m.search == nil {
		m.search = search.New(m.scene, m.view)
	} else {
		m.search.SetScene(m.scene, m.view)
	}
	if m.tip == nil {
		m.tip = tooltip.New(d)
	} else {
		m.tip.SetModel(d)
	}
}

func (m *Model) waitForUpdate() tea.Cmd {
	if m.updates == nil {
		return nil
	}
	ch := m.updates
	return func() tea.Msg {
		u, ok := <-ch
		if !ok {
			return nil
		}
		return reloadMsg(u)
	}
}

// Init starts listening for reloads.
func (m *Model) Init() tea.Cmd {
	return m.waitForUpdate()
}

// screen is the diagram surface in pixels.
func (m *Model) screen() viewport.Size {
	return viewport.Size{Width: float64(m.cols()) * cellWidth, Height: float64(m.rows()) * cellHeight}
}

func (m *Model) cols() int { return max(m.width, 0) }

func (m *Model) rows() int { return max(m.height-statusLines, 0) }

// cursor maps a cell to the pixel at its center.
func (m *Model) cursor(x, y int) model.Point {
	return model.Point{X: (float64(x) + 0.5) * cellWidth, Y: (float64(y) + 0.5) * cellHeight}
}

// Update handles terminal events.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case reloadMsg:
		if msg.Err != nil {
			m.status = "reload failed: " + msg.Err.Error()
		} else if msg.Result != nil && msg.Result.Data != nil {
			m.setModel(msg.Result.Data)
			m.status = fmt.Sprintf("reloaded (version %d)", msg.Version)
		}
		return m, m.waitForUpdate()

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.handleSearchKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	at := m.cursor(msg.X, msg.Y)
	screen := m.screen()
	switch msg.Type {
	case tea.MouseWheelUp:
		m.view.PointerZoom(at, screen, zoomInWheel)
	case tea.MouseWheelDown:
		m.view.PointerZoom(at, screen, zoomOutWheel)
	case tea.MouseLeft:
		m.tip.Leave()
		m.view.BeginDrag(at)
	case tea.MouseMotion:
		if m.view.Dragging() {
			m.view.DragTo(at, screen)
			return
		}
		m.hover(at, screen)
	case tea.MouseRelease:
		if m.view.Dragging() {
			m.view.EndDrag(at, screen)
		}
	}
}

func (m *Model) hover(at model.Point, screen viewport.Size) {
	if at.Y >= float64(m.rows())*cellHeight {
		m.tip.Leave()
		return
	}
	n, ok := m.scene.NodeAt(viewport.ToSpace(m.view.View(), at, screen))
	if !ok {
		m.tip.Leave()
		return
	}
	m.tip.Enter(*n, at)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	screen := m.screen()
	step := 4 * cellWidth
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "+", "=":
		m.view.ManualZoom(zoomInKey)
	case "-", "_":
		m.view.ManualZoom(zoomOutKey)
	case "0":
		m.view.Reset()
	case "/":
		m.searching = true
		m.input = ""
	case "n":
		m.search.Next()
	case "N":
		m.search.Prev()
	case "y":
		m.copyHighlighted()
	case "left", "h":
		m.view.DragPan(model.Point{X: step}, screen)
	case "right", "l":
		m.view.DragPan(model.Point{X: -step}, screen)
	case "up", "k":
		m.view.DragPan(model.Point{Y: step}, screen)
	case "down", "j":
		m.view.DragPan(model.Point{Y: -step}, screen)
	case "esc":
		m.tip.Leave()
		m.status = ""
	}
	return m, nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.search.Search(m.input)
		m.status = m.search.Summary()
	case tea.KeyEsc:
		m.searching = false
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	case tea.KeyCtrlC:
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) copyHighlighted() {
	n, ok := m.search.Current()
	if !ok {
		m.status = "nothing highlighted"
		return
	}
	if err := m.copy(n.Header); err != nil {
		m.log.Warn("clipboard write failed", "error", err)
		m.status = "copy failed: " + err.Error()
		return
	}
	m.status = "copied " + strings.TrimSpace(n.Header)
}
