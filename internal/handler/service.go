package handler

import (
	"github.com/fwbo-viewer/fwbo/internal/model"
	"github.com/fwbo-viewer/fwbo/internal/registry"
	"github.com/fwbo-viewer/fwbo/internal/scene"
)

type serviceBuilder struct{}

func init() {
	registry.Default.Register(serviceBuilder{})
}

func (serviceBuilder) Kind() model.ShapeKind { return model.KindService }

func (serviceBuilder) Build(shape model.Shape, ctx registry.Context) scene.Node {
	n := baseNode(shape, ctx)
	s, ok := ctx.Index.Service(shape.ModelID)
	if !ok {
		return placeholder(n, UnknownService)
	}
	n.Header = s.Name
	count := limit(len(s.Operations), ctx.MaxOperations)
	for _, op := range s.Operations[:count] {
		n.Items = append(n.Items, scene.Item{Name: op.Name})
	}
	return n
}
