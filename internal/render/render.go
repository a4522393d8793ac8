// Package render turns a canonical model into a scene and encodes scenes as SVG or PNG.
package render

import (
	"log/slog"
	"math"

	_ "github.com/fwbo-viewer/fwbo/internal/handler" // register node builders
	"github.com/fwbo-viewer/fwbo/internal/model"
	"github.com/fwbo-viewer/fwbo/internal/registry"
	"github.com/fwbo-viewer/fwbo/internal/scene"
	"github.com/fwbo-viewer/fwbo/internal/viewport"
)

const (
	// DefaultMaxProperties caps the property rows of an entity node.
	DefaultMaxProperties = 15
	// DefaultMaxOperations caps the operation rows of a service node.
	DefaultMaxOperations = 10
)

// Options configures scene construction.
type Options struct {
	Viewport      viewport.Options
	MaxProperties int
	MaxOperations int
}

// DefaultOptions returns the stock render options.
func DefaultOptions() Options {
	return Options{
		Viewport:      viewport.DefaultOptions(),
		MaxProperties: DefaultMaxProperties,
		MaxOperations: DefaultMaxOperations,
	}
}

// Renderer builds scenes using the node builders of a registry.
type Renderer struct {
	opts Options
	reg  *registry.Registry
	log  *slog.Logger
}

// New returns a renderer over registry.Default.
func New(opts Options, log *slog.Logger) *Renderer {
	if log == nil {
		log = slog.Default()
	}
	return &Renderer{opts: opts, reg: registry.Default, log: log}
}

// Options returns the renderer options.
func (r *Renderer) Options() Options { return r.opts }

// Render builds the scene for d. Connectors are listed before nodes are drawn over them.
func (r *Renderer) Render(d *model.Data) *scene.Scene {
	idx := model.NewIndex(d)
	scale := r.opts.Viewport.Scale
	ctx := registry.Context{
		Index:         idx,
		Scale:         scale,
		MaxProperties: r.opts.MaxProperties,
		MaxOperations: r.opts.MaxOperations,
	}

	sc := &scene.Scene{
		Space: viewport.CoordinateSpace(d.Diagram, r.opts.Viewport),
		Nodes: make([]scene.Node, 0, len(d.Diagram.Shapes)),
		Edges: make([]scene.Edge, 0, len(d.Diagram.Connectors)),
	}

	for _, c := range d.Diagram.Connectors {
		e := scene.Edge{
			ConnectorID:   c.ID,
			AssociationID: c.AssociationID,
			Points:        make([]model.Point, len(c.Points)),
		}
		for i, p := range c.Points {
			e.Points[i] = model.Point{X: p.X * scale, Y: p.Y * scale}
		}
		if a, ok := idx.Association(c.AssociationID); ok {
			e.Labels = MultiplicityLabels(a, e.Points)
		}
		sc.Edges = append(sc.Edges, e)
	}

	for _, s := range d.Diagram.Shapes {
		b, ok := r.reg.Get(s.Type)
		if !ok {
			r.log.Warn("no node builder for shape", "shape", s.ID, "kind", s.Type.String())
			continue
		}
		sc.Nodes = append(sc.Nodes, b.Build(s, ctx))
	}

	r.log.Debug("scene built", "nodes", len(sc.Nodes), "edges", len(sc.Edges))
	return sc
}

// MultiplicityLabels places the source and target multiplicities of a near the ends of pts.
// Fewer than two points yields no labels.
func MultiplicityLabels(a *model.Association, pts []model.Point) []scene.Label {
	if len(pts) < 2 {
		return nil
	}
	var labels []scene.Label
	if a.SourceMultiplicity != "" {
		start := pts[0]
		off := SourceLabelOffset(start, pts[1])
		labels = append(labels, scene.Label{
			Text:   a.SourceMultiplicity,
			At:     model.Point{X: start.X + off.X, Y: start.Y + off.Y},
			Anchor: scene.AnchorStart,
		})
	}
	if a.TargetMultiplicity != "" {
		end := pts[len(pts)-1]
		off := TargetLabelOffset(pts[len(pts)-2], end)
		labels = append(labels, scene.Label{
			Text:   a.TargetMultiplicity,
			At:     model.Point{X: end.X + off.X, Y: end.Y + off.Y},
			Anchor: scene.AnchorMiddle,
		})
	}
	return labels
}

// SourceLabelOffset is the label offset at start for a first segment start->next.
func SourceLabelOffset(start, next model.Point) model.Point {
	if math.Abs(next.X-start.X) < math.Abs(next.Y-start.Y) {
		if next.Y > start.Y {
			return model.Point{X: 5, Y: 15}
		}
		return model.Point{X: 5, Y: -5}
	}
	if next.X > start.X {
		return model.Point{X: 10, Y: -5}
	}
	return model.Point{X: -10, Y: -5}
}

// TargetLabelOffset is the label offset at end for a last segment prev->end.
func TargetLabelOffset(prev, end model.Point) model.Point {
	if math.Abs(end.X-prev.X) < math.Abs(end.Y-prev.Y) {
		if end.Y > prev.Y {
			return model.Point{X: 5, Y: -5}
		}
		return model.Point{X: 5, Y: 15}
	}
	if end.X > prev.X {
		return model.Point{X: -10, Y: -5}
	}
	return model.Point{X: 10, Y: -5}
}
