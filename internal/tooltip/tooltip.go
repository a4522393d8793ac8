// Package tooltip resolves alias nodes to their entity and tracks the hover panel.
package tooltip

import (
	"github.com/fwbo-viewer/fwbo/internal/model"
	"github.com/fwbo-viewer/fwbo/internal/scene"
)

// Offset is added to both pointer coordinates to place the panel.
const Offset = 15.0

// Panel is the detail view for the entity behind an alias.
type Panel struct {
	ShapeID              string
	Entity               string
	Properties           []model.Property
	NavigationProperties []string
	At                   model.Point
}

// Resolve finds the entity behind an alias node: the node header is matched
// against alias names (first wins), then the alias's entity id is looked up.
func Resolve(d *model.Data, idx *model.Index, n scene.Node) (*model.Entity, bool) {
	if n.Kind != model.KindAlias || n.Placeholder {
		return nil, false
	}
	a := d.AliasByName(n.Header)
	if a == nil {
		return nil, false
	}
	return idx.Entity(a.DcID)
}

// Controller tracks the hovered node and the visible panel.
type Controller struct {
	data  *model.Data
	idx   *model.Index
	hover string
	panel *Panel
}

// New returns a controller over d.
func New(d *model.Data) *Controller {
	return &Controller{data: d, idx: model.NewIndex(d)}
}

// SetModel switches to a re-parsed model and hides any panel.
func (c *Controller) SetModel(d *model.Data) {
	c.data = d
	c.idx = model.NewIndex(d)
	c.Leave()
}

// Enter starts hovering n at pos. It replaces any panel shown for another node.
// Only alias nodes that resolve to an entity produce a panel.
func (c *Controller) Enter(n scene.Node, pos model.Point) (*Panel, bool) {
	if n.ShapeID == c.hover && c.hover != "" {
		return c.Move(pos)
	}
	c.Leave()
	c.hover = n.ShapeID
	e, ok := Resolve(c.data, c.idx, n)
	if !ok {
		return nil, false
	}
	c.panel = &Panel{
		ShapeID:              n.ShapeID,
		Entity:               e.Name,
		Properties:           e.Properties,
		NavigationProperties: e.NavigationProperties,
	}
	return c.Move(pos)
}

// Move repositions the panel while the same node stays hovered.
func (c *Controller) Move(pos model.Point) (*Panel, bool) {
	if c.panel == nil {
		return nil, false
	}
	c.panel.At = model.Point{X: pos.X + Offset, Y: pos.Y + Offset}
	return c.panel, true
}

// Leave ends hovering and removes the panel.
func (c *Controller) Leave() {
	c.hover = ""
	c.panel = nil
}

// Hovered returns the shape id under the pointer, or "".
func (c *Controller) Hovered() string { return c.hover }

// Panel returns the visible panel.
func (c *Controller) Panel() (*Panel, bool) {
	return c.panel, c.panel != nil
}
