// Package handler registers one node builder per shape kind.
package handler

import (
	"github.com/fwbo-viewer/fwbo/internal/model"
	"github.com/fwbo-viewer/fwbo/internal/registry"
	"github.com/fwbo-viewer/fwbo/internal/scene"
)

// Headers shown when a shape's model reference does not resolve.
const (
	UnknownEntity  = "Unknown Entity"
	UnknownService = "Unknown Service"
	UnknownAlias   = "Unknown Alias"
)

// baseNode fills the fields every kind shares.
func baseNode(shape model.Shape, ctx registry.Context) scene.Node {
	return scene.Node{
		ShapeID:      shape.ID,
		ModelID:      shape.ModelID,
		Kind:         shape.Type,
		Rect:         shape.Bounds().Scale(ctx.Scale),
		OutlineColor: shape.OutlineColor,
	}
}

func placeholder(n scene.Node, header string) scene.Node {
	n.Header = header
	n.Placeholder = true
	return n
}

// limit caps n at max; a non-positive max means no cap.
func limit(n, max int) int {
	if max > 0 && n > max {
		return max
	}
	return n
}
