package model

import (
	"fmt"
	"strings"
)

// Data is the canonical model every input format converges to.
type Data struct {
	Entities     []Entity      `json:"entities" yaml:"entities"`
	Services     []Service     `json:"services" yaml:"services"`
	Associations []Association `json:"associations" yaml:"associations"`
	Aliases      []Alias       `json:"aliases" yaml:"aliases"`
	Diagram      Diagram       `json:"diagram" yaml:"diagram"`

	// Issues are findings from decoding, such as shapes dropped for an unknown type tag.
	Issues []Issue `json:"-" yaml:"-"`
}

// Entity is a logical type or a database-schema type.
type Entity struct {
	ID                   string     `json:"id" yaml:"id"`
	Name                 string     `json:"name" yaml:"name"`
	Properties           []Property `json:"properties" yaml:"properties"`
	NavigationProperties []string   `json:"navigationProperties" yaml:"navigationProperties"`
}

// Property is a named, typed field of an entity.
type Property struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// Service groups operations.
type Service struct {
	ID         string      `json:"id" yaml:"id"`
	Name       string      `json:"name" yaml:"name"`
	Operations []Operation `json:"operations" yaml:"operations"`
}

// Operation is a service operation; the type refs are weak entity ids.
type Operation struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	ReturnDcID  string `json:"returnDcId" yaml:"returnDcId"`
	RequestDcID string `json:"requestDcId" yaml:"requestDcId"`
}

// Association is a relationship; multiplicities are display strings such as "1" or "0..*".
type Association struct {
	ID                 string `json:"id" yaml:"id"`
	Name               string `json:"name" yaml:"name"`
	SourceMultiplicity string `json:"sourceMultiplicity,omitempty" yaml:"sourceMultiplicity,omitempty"`
	TargetMultiplicity string `json:"targetMultiplicity,omitempty" yaml:"targetMultiplicity,omitempty"`
}

// Alias points at an entity by id (DcID). The target may not exist.
type Alias struct {
	ID     string `json:"id" yaml:"id"`
	DcName string `json:"dcName" yaml:"dcName"`
	DcID   string `json:"dcId" yaml:"dcId"`
}

// Diagram holds the layout for one document pair.
type Diagram struct {
	Shapes     []Shape     `json:"shapes" yaml:"shapes"`
	Connectors []Connector `json:"connectors" yaml:"connectors"`
}

// Shape places an entity, service or alias on the diagram. Coordinates are model units.
type Shape struct {
	ID           string    `json:"id" yaml:"id"`
	ModelID      string    `json:"modelId" yaml:"modelId"`
	X            float64   `json:"x" yaml:"x"`
	Y            float64   `json:"y" yaml:"y"`
	Width        float64   `json:"width" yaml:"width"`
	Height       float64   `json:"height" yaml:"height"`
	Type         ShapeKind `json:"type" yaml:"type"`
	OutlineColor string    `json:"outlineColor,omitempty" yaml:"outlineColor,omitempty"`
}

// Bounds returns the shape rectangle in model units.
func (s Shape) Bounds() Rect {
	return Rect{X: s.X, Y: s.Y, Width: s.Width, Height: s.Height}
}

// Connector draws an association as a polyline.
type Connector struct {
	ID            string  `json:"id" yaml:"id"`
	AssociationID string  `json:"associationId" yaml:"associationId"`
	Points        []Point `json:"points" yaml:"points"`
}

// Point is a 2D coordinate.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Center returns the rectangle center.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Scale multiplies every component by f.
func (r Rect) Scale(f float64) Rect {
	return Rect{X: r.X * f, Y: r.Y * f, Width: r.Width * f, Height: r.Height * f}
}

// Contains reports whether p lies inside r (edges included).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// ShapeKind is the closed set of shape variants.
type ShapeKind int

const (
	KindEntity ShapeKind = iota
	KindService
	KindAlias
)

var kindNames = [...]string{
	KindEntity:  "entity",
	KindService: "service",
	KindAlias:   "alias",
}

// ShapeKinds lists every variant. Code that dispatches on ShapeKind is tested against this list.
func ShapeKinds() []ShapeKind {
	return []ShapeKind{KindEntity, KindService, KindAlias}
}

func (k ShapeKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("ShapeKind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseShapeKind maps a type tag to its kind, case-insensitively.
func ParseShapeKind(s string) (ShapeKind, error) {
	for i, name := range kindNames {
		if strings.EqualFold(s, name) {
			return ShapeKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown shape type %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k ShapeKind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(kindNames) {
		return nil, fmt.Errorf("invalid shape kind %d", int(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ShapeKind) UnmarshalText(b []byte) error {
	v, err := ParseShapeKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Empty returns a model with every collection allocated, so it encodes as [] rather than null.
func Empty() *Data {
	d := &Data{}
	d.Normalize()
	return d
}

// Normalize replaces nil slices with empty ones throughout the model.
func (d *Data) Normalize() {
	if d.Entities == nil {
		d.Entities = []Entity{}
	}
	for i := range d.Entities {
		if d.Entities[i].Properties == nil {
			d.Entities[i].Properties = []Property{}
		}
		if d.Entities[i].NavigationProperties == nil {
			d.Entities[i].NavigationProperties = []string{}
		}
	}
	if d.Services == nil {
		d.Services = []Service{}
	}
	for i := range d.Services {
		if d.Services[i].Operations == nil {
			d.Services[i].Operations = []Operation{}
		}
	}
	if d.Associations == nil {
		d.Associations = []Association{}
	}
	if d.Aliases == nil {
		d.Aliases = []Alias{}
	}
	d.Diagram.Normalize()
}

// Normalize replaces nil slices with empty ones.
func (d *Diagram) Normalize() {
	if d.Shapes == nil {
		d.Shapes = []Shape{}
	}
	if d.Connectors == nil {
		d.Connectors = []Connector{}
	}
	for i := range d.Connectors {
		if d.Connectors[i].Points == nil {
			d.Connectors[i].Points = []Point{}
		}
	}
}
