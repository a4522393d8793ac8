// Package viewport derives the diagram coordinate space and owns the view rectangle.
package viewport

import (
	"math"

	"github.com/fwbo-viewer/fwbo/internal/model"
)

const (
	// DefaultScale converts model units to display units.
	DefaultScale = 96.0
	// DefaultPadding surrounds the coordinate space.
	DefaultPadding = 40.0
	// DefaultTargetPadding surrounds a zoom-to-target rectangle.
	DefaultTargetPadding = 50.0
	// DefaultMinExtent is the smallest view width or height a zoom can produce.
	DefaultMinExtent = 1.0
)

// Options holds the viewport constants.
type Options struct {
	Scale         float64
	Padding       float64
	TargetPadding float64
	MinExtent     float64
}

// DefaultOptions returns the stock constants.
func DefaultOptions() Options {
	return Options{
		Scale:         DefaultScale,
		Padding:       DefaultPadding,
		TargetPadding: DefaultTargetPadding,
		MinExtent:     DefaultMinExtent,
	}
}

type bounds struct {
	minX, maxX, minY, maxY float64
	isSet                  bool
}

// updatePoint ignores non-finite coordinates so one bad value cannot poison the space.
func (b *bounds) updatePoint(x, y float64) {
	if !finite(x) || !finite(y) {
		return
	}
	if !b.isSet {
		b.minX, b.maxX = x, x
		b.minY, b.maxY = y, y
		b.isSet = true
		return
	}
	b.minX = math.Min(b.minX, x)
	b.maxX = math.Max(b.maxX, x)
	b.minY = math.Min(b.minY, y)
	b.maxY = math.Max(b.maxY, y)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// updateRect skips a rectangle with any non-finite component.
func (b *bounds) updateRect(r model.Rect) {
	if !finite(r.X) || !finite(r.Y) || !finite(r.Width) || !finite(r.Height) {
		return
	}
	b.updatePoint(r.X, r.Y)
	b.updatePoint(r.X+r.Width, r.Y+r.Height)
}

// CoordinateSpace returns the bounding rectangle of every shape and connector
// point, scaled to display units and padded. An empty diagram yields a square
// of side 2*Padding centered on the origin.
func CoordinateSpace(d model.Diagram, opts Options) model.Rect {
	var b bounds
	for _, s := range d.Shapes {
		b.updateRect(s.Bounds().Scale(opts.Scale))
	}
	for _, c := range d.Connectors {
		for _, p := range c.Points {
			b.updatePoint(p.X*opts.Scale, p.Y*opts.Scale)
		}
	}
	if !b.isSet {
		b.updatePoint(0, 0)
	}
	return model.Rect{
		X:      b.minX - opts.Padding,
		Y:      b.minY - opts.Padding,
		Width:  b.maxX - b.minX + 2*opts.Padding,
		Height: b.maxY - b.minY + 2*opts.Padding,
	}
}
