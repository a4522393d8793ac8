// Package scene holds the visual tree the renderer derives from a canonical model.
package scene

import "github.com/fwbo-viewer/fwbo/internal/model"

// Item is one row inside a node body. Type is empty for operation rows.
type Item struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// Node is the rendered form of one shape. Rect is in display units.
type Node struct {
	ShapeID      string          `json:"shapeId"`
	ModelID      string          `json:"modelId,omitempty"`
	Kind         model.ShapeKind `json:"kind"`
	Rect         model.Rect      `json:"rect"`
	Header       string          `json:"header"`
	Items        []Item          `json:"items,omitempty"`
	NavItems     []string        `json:"navItems,omitempty"`
	Separator    bool            `json:"separator,omitempty"`
	Reference    bool            `json:"reference,omitempty"`
	Placeholder  bool            `json:"placeholder,omitempty"`
	OutlineColor string          `json:"outlineColor,omitempty"`
}

// Anchor values for Label.
const (
	AnchorStart  = "start"
	AnchorMiddle = "middle"
)

// Label is a multiplicity annotation near a connector end.
type Label struct {
	Text   string      `json:"text"`
	At     model.Point `json:"at"`
	Anchor string      `json:"anchor"`
}

// Edge is the rendered form of one connector.
type Edge struct {
	ConnectorID   string        `json:"connectorId"`
	AssociationID string        `json:"associationId,omitempty"`
	Points        []model.Point `json:"points"`
	Labels        []Label       `json:"labels,omitempty"`
}

// Scene is the full visual tree for one model. Nodes keep shape order.
type Scene struct {
	Space model.Rect `json:"space"`
	Nodes []Node     `json:"nodes"`
	Edges []Edge     `json:"edges"`
}

// NodeAt returns the topmost node containing p, if any. Later nodes draw over earlier ones.
func (s *Scene) NodeAt(p model.Point) (*Node, bool) {
	for i := len(s.Nodes) - 1; i >= 0; i-- {
		if s.Nodes[i].Rect.Contains(p) {
			return &s.Nodes[i], true
		}
	}
	return nil, false
}

// Node returns the node rendered for a shape id.
func (s *Scene) Node(shapeID string) (*Node, bool) {
	for i := range s.Nodes {
		if s.Nodes[i].ShapeID == shapeID {
			return &s.Nodes[i], true
		}
	}
	return nil, false
}
