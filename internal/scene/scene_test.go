package scene

import (
	"testing"

	"github.com/fwbo-viewer/fwbo/internal/model"
)

func TestNodeAtPrefersTopmost(t *testing.T) {
	sc := &Scene{Nodes: []Node{
		{ShapeID: "below", Rect: model.Rect{X: 0, Y: 0, Width: 100, Height: 100}},
		{ShapeID: "above", Rect: model.Rect{X: 50, Y: 50, Width: 100, Height: 100}},
	}}
	tests := []struct {
		p    model.Point
		want string
	}{
		{model.Point{X: 10, Y: 10}, "below"},
		{model.Point{X: 75, Y: 75}, "above"},
		{model.Point{X: 140, Y: 140}, "above"},
		{model.Point{X: 500, Y: 5}, ""},
	}
	for _, tt := range tests {
		n, ok := sc.NodeAt(tt.p)
		got := ""
		if ok {
			got = n.ShapeID
		}
		if got != tt.want {
			t.Errorf("NodeAt(%+v) = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestNodeByShapeID(t *testing.T) {
	sc := &Scene{Nodes: []Node{{ShapeID: "s1", Header: "Customer"}}}
	if n, ok := sc.Node("s1"); !ok || n.Header != "Customer" {
		t.Errorf("Node(s1) = %+v, %v", n, ok)
	}
	if _, ok := sc.Node("s2"); ok {
		t.Error("Node(s2) found a node")
	}
}
