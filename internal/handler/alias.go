package handler

import (
	"github.com/fwbo-viewer/fwbo/internal/model"
	"github.com/fwbo-viewer/fwbo/internal/registry"
	"github.com/fwbo-viewer/fwbo/internal/scene"
)

// AliasMarker is drawn under an alias header.
const AliasMarker = "(Alias)"

type aliasBuilder struct{}

func init() {
	registry.Default.Register(aliasBuilder{})
}

func (aliasBuilder) Kind() model.ShapeKind { return model.KindAlias }

// Build shows only the alias name; entity details come from the hover panel.
func (aliasBuilder) Build(shape model.Shape, ctx registry.Context) scene.Node {
	n := baseNode(shape, ctx)
	a, ok := ctx.Index.Alias(shape.ModelID)
	if !ok {
		return placeholder(n, UnknownAlias)
	}
	n.Header = a.DcName
	n.Reference = true
	return n
}
