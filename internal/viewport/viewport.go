package viewport

import (
	"math"

	"github.com/fwbo-viewer/fwbo/internal/model"
)

// Size is a screen surface size in pixels (or terminal cells).
type Size struct {
	Width  float64
	Height float64
}

func (s Size) valid() bool {
	return s.Width > 0 && s.Height > 0
}

// ValidFactor reports whether a zoom factor is usable: finite and positive.
// Zoom operations given any other factor return the view unchanged.
func ValidFactor(f float64) bool {
	return f > 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}

// ZoomToTarget returns target grown by pad on every side.
func ZoomToTarget(target model.Rect, pad float64) model.Rect {
	return model.Rect{
		X:      target.X - pad,
		Y:      target.Y - pad,
		Width:  target.Width + 2*pad,
		Height: target.Height + 2*pad,
	}
}

// ManualZoom scales view about its center. f < 1 zooms in, f > 1 zooms out.
func ManualZoom(view model.Rect, f, minExtent float64) model.Rect {
	if !ValidFactor(f) {
		return view
	}
	w := math.Max(view.Width*f, minExtent)
	h := math.Max(view.Height*f, minExtent)
	c := view.Center()
	return model.Rect{X: c.X - w/2, Y: c.Y - h/2, Width: w, Height: h}
}

// PointerZoom scales view while keeping the coordinate under cursor fixed.
// cursor is relative to the top-left corner of a surface of the given size.
func PointerZoom(view model.Rect, cursor model.Point, screen Size, f, minExtent float64) model.Rect {
	if !ValidFactor(f) || !screen.valid() {
		return view
	}
	rx := cursor.X / screen.Width
	ry := cursor.Y / screen.Height
	px := view.X + rx*view.Width
	py := view.Y + ry*view.Height

	w := math.Max(view.Width*f, minExtent)
	h := math.Max(view.Height*f, minExtent)
	return model.Rect{X: px - rx*w, Y: py - ry*h, Width: w, Height: h}
}

// DragPan moves view opposite to a screen-space pointer delta, so the content follows the pointer.
func DragPan(view model.Rect, delta model.Point, screen Size) model.Rect {
	if !screen.valid() {
		return view
	}
	sx := view.Width / screen.Width
	sy := view.Height / screen.Height
	return model.Rect{X: view.X - delta.X*sx, Y: view.Y - delta.Y*sy, Width: view.Width, Height: view.Height}
}

// ToSpace maps a surface position to coordinate space under view.
func ToSpace(view model.Rect, p model.Point, screen Size) model.Point {
	if !screen.valid() {
		return model.Point{X: view.X, Y: view.Y}
	}
	return model.Point{
		X: view.X + p.X/screen.Width*view.Width,
		Y: view.Y + p.Y/screen.Height*view.Height,
	}
}

// ToScreen maps a coordinate-space position to the surface under view.
func ToScreen(view model.Rect, p model.Point, screen Size) model.Point {
	if view.Width == 0 || view.Height == 0 {
		return model.Point{}
	}
	return model.Point{
		X: (p.X - view.X) / view.Width * screen.Width,
		Y: (p.Y - view.Y) / view.Height * screen.Height,
	}
}

// Controller owns the current view rectangle over a fixed coordinate space.
type Controller struct {
	opts    Options
	initial model.Rect
	view    model.Rect

	dragging  bool
	dragStart model.Point
	dragView  model.Rect
}

// NewController starts with view equal to initial.
func NewController(initial model.Rect, opts Options) *Controller {
	return &Controller{opts: opts, initial: initial, view: initial}
}

// ForDiagram builds the coordinate space of d and returns a controller over it.
func ForDiagram(d model.Diagram, opts Options) *Controller {
	return NewController(CoordinateSpace(d, opts), opts)
}

// Initial returns the coordinate space rectangle.
func (c *Controller) Initial() model.Rect { return c.initial }

// View returns the current view rectangle.
func (c *Controller) View() model.Rect { return c.view }

// Options returns the constants the controller was built with.
func (c *Controller) Options() Options { return c.opts }

// Reset restores the initial rectangle.
func (c *Controller) Reset() model.Rect {
	c.view = c.initial
	return c.view
}

// ZoomToTarget frames target, given in display units, with TargetPadding around it.
func (c *Controller) ZoomToTarget(target model.Rect) model.Rect {
	c.view = ZoomToTarget(target, c.opts.TargetPadding)
	return c.view
}

// ManualZoom scales the view about its center.
func (c *Controller) ManualZoom(f float64) model.Rect {
	c.view = ManualZoom(c.view, f, c.opts.MinExtent)
	return c.view
}

// PointerZoom scales the view around the cursor.
func (c *Controller) PointerZoom(cursor model.Point, screen Size, f float64) model.Rect {
	c.view = PointerZoom(c.view, cursor, screen, f, c.opts.MinExtent)
	return c.view
}

// DragPan applies one pointer delta.
func (c *Controller) DragPan(delta model.Point, screen Size) model.Rect {
	c.view = DragPan(c.view, delta, screen)
	return c.view
}

// BeginDrag starts a drag session at a surface position.
func (c *Controller) BeginDrag(at model.Point) {
	c.dragging = true
	c.dragStart = at
	c.dragView = c.view
}

// Dragging reports whether a drag session is active.
func (c *Controller) Dragging() bool { return c.dragging }

// DragTo recomputes the view from the drag start and the total pointer delta.
func (c *Controller) DragTo(at model.Point, screen Size) model.Rect {
	if !c.dragging {
		return c.view
	}
	delta := model.Point{X: at.X - c.dragStart.X, Y: at.Y - c.dragStart.Y}
	c.view = DragPan(c.dragView, delta, screen)
	return c.view
}

// EndDrag commits the final drag position and ends the session.
func (c *Controller) EndDrag(at model.Point, screen Size) model.Rect {
	v := c.DragTo(at, screen)
	c.dragging = false
	return v
}
