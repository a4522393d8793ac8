package handler

import (
	"github.com/fwbo-viewer/fwbo/internal/model"
	"github.com/fwbo-viewer/fwbo/internal/registry"
	"github.com/fwbo-viewer/fwbo/internal/scene"
)

type entityBuilder struct{}

func init() {
	registry.Default.Register(entityBuilder{})
}

func (entityBuilder) Kind() model.ShapeKind { return model.KindEntity }

func (entityBuilder) Build(shape model.Shape, ctx registry.Context) scene.Node {
	n := baseNode(shape, ctx)
	e, ok := ctx.Index.Entity(shape.ModelID)
	if !ok {
		return placeholder(n, UnknownEntity)
	}
	n.Header = e.Name

	count := limit(len(e.Properties), ctx.MaxProperties)
	for _, p := range e.Properties[:count] {
		n.Items = append(n.Items, scene.Item{Name: p.Name, Type: p.Type})
	}
	if len(e.NavigationProperties) > 0 {
		n.Separator = len(e.Properties) > 0
		n.NavItems = append([]string(nil), e.NavigationProperties...)
	}
	return n
}
