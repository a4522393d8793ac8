// Package export writes the canonical model as an HCL document.
package export

import (
	"bytes"
	"fmt"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/fwbo-viewer/fwbo/internal/model"
)

// Section file names, in document order.
const (
	FileModel        = "model.hcl"
	FileEntities     = "entities.hcl"
	FileServices     = "services.hcl"
	FileAssociations = "associations.hcl"
	FileAliases      = "aliases.hcl"
	FileDiagram      = "diagram.hcl"
)

var sectionOrder = []string{FileModel, FileEntities, FileServices, FileAssociations, FileAliases, FileDiagram}

// Builder collects blocks per section file.
type Builder struct {
	sections map[string][][]byte
	names    map[string]map[string]string // kind -> id -> identifier
	used     map[string]map[string]bool
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		sections: make(map[string][][]byte),
		names:    make(map[string]map[string]string),
		used:     make(map[string]map[string]bool),
	}
}

// AddBlock appends a block to a section.
func (b *Builder) AddBlock(section string, block *hclwrite.Block) {
	b.sections[section] = append(b.sections[section], BlockToBytes(block))
}

// Name returns the identifier bound to id within kind, declaring one on first use.
func (b *Builder) Name(kind, id string) string {
	if n, ok := b.names[kind][id]; ok {
		return n
	}
	return b.Declare(kind, id)
}

// Declare allocates a fresh unique identifier for one element and binds id to it.
// A later element with the same id takes over the binding, matching model.Index.
func (b *Builder) Declare(kind, id string) string {
	if b.names[kind] == nil {
		b.names[kind] = make(map[string]string)
		b.used[kind] = make(map[string]bool)
	}
	base := SanitizeName(id)
	n := base
	for i := 2; b.used[kind][n]; i++ {
		n = fmt.Sprintf("%s_%d", base, i)
	}
	b.names[kind][id] = n
	b.used[kind][n] = true
	return n
}

// Build returns a map of file name to content for every non-empty section.
func (b *Builder) Build() map[string][]byte {
	out := make(map[string][]byte)
	for _, name := range sectionOrder {
		if blocks := b.sections[name]; len(blocks) > 0 {
			out[name] = bytes.Join(blocks, []byte("\n"))
		}
	}
	return out
}

// Bytes returns every section concatenated in document order.
func (b *Builder) Bytes() []byte {
	files := b.Build()
	var parts [][]byte
	for _, name := range sectionOrder {
		if content, ok := files[name]; ok {
			parts = append(parts, content)
		}
	}
	return bytes.Join(parts, []byte("\n"))
}

// Model fills a builder with d. format is recorded in the model block when set.
// Every element gets its own identifier before references are written, so a
// reference names the element model.Index resolves the id to.
func Model(d *model.Data, format string) *Builder {
	b := NewBuilder()
	idx := model.NewIndex(d)

	entityNames := declare(b, "entity", len(d.Entities), func(i int) string { return d.Entities[i].ID })
	serviceNames := declare(b, "service", len(d.Services), func(i int) string { return d.Services[i].ID })
	associationNames := declare(b, "association", len(d.Associations), func(i int) string { return d.Associations[i].ID })
	aliasNames := declare(b, "alias", len(d.Aliases), func(i int) string { return d.Aliases[i].ID })

	mb := hclwrite.NewBlock("model", nil)
	SetAttributeStr(mb.Body(), "format", format)
	mb.Body().SetAttributeValue("entities", cty.NumberIntVal(int64(len(d.Entities))))
	mb.Body().SetAttributeValue("services", cty.NumberIntVal(int64(len(d.Services))))
	mb.Body().SetAttributeValue("shapes", cty.NumberIntVal(int64(len(d.Diagram.Shapes))))
	b.AddBlock(FileModel, mb)

	for i, e := range d.Entities {
		b.AddBlock(FileEntities, entityBlock(entityNames[i], e))
	}
	for i, s := range d.Services {
		b.AddBlock(FileServices, serviceBlock(b, idx, serviceNames[i], s))
	}
	for i, a := range d.Associations {
		b.AddBlock(FileAssociations, associationBlock(associationNames[i], a))
	}
	for i, a := range d.Aliases {
		b.AddBlock(FileAliases, aliasBlock(b, idx, aliasNames[i], a))
	}
	for _, s := range d.Diagram.Shapes {
		b.AddBlock(FileDiagram, shapeBlock(b, idx, b.Declare("shape", s.ID), s))
	}
	for _, c := range d.Diagram.Connectors {
		b.AddBlock(FileDiagram, connectorBlock(b, idx, b.Declare("connector", c.ID), c))
	}
	return b
}

func declare(b *Builder, kind string, n int, id func(int) string) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = b.Declare(kind, id(i))
	}
	return names
}

func entityBlock(name string, e model.Entity) *hclwrite.Block {
	block := hclwrite.NewBlock("entity", []string{name})
	body := block.Body()
	SetAttributeStr(body, "id", e.ID)
	SetAttributeStr(body, "name", e.Name)
	SetAttributeList(body, "navigation_properties", e.NavigationProperties)
	for _, p := range e.Properties {
		pb := body.AppendNewBlock("property", []string{p.Name})
		SetAttributeStr(pb.Body(), "type", p.Type)
	}
	return block
}

func serviceBlock(b *Builder, idx *model.Index, name string, s model.Service) *hclwrite.Block {
	block := hclwrite.NewBlock("service", []string{name})
	body := block.Body()
	SetAttributeStr(body, "id", s.ID)
	SetAttributeStr(body, "name", s.Name)
	for _, op := range s.Operations {
		ob := body.AppendNewBlock("operation", []string{op.Name})
		SetAttributeStr(ob.Body(), "id", op.ID)
		entityRef(b, idx, ob.Body(), "returns", op.ReturnDcID)
		entityRef(b, idx, ob.Body(), "request", op.RequestDcID)
	}
	return block
}

func associationBlock(name string, a model.Association) *hclwrite.Block {
	block := hclwrite.NewBlock("association", []string{name})
	body := block.Body()
	SetAttributeStr(body, "id", a.ID)
	SetAttributeStr(body, "name", a.Name)
	SetAttributeStr(body, "source_multiplicity", a.SourceMultiplicity)
	SetAttributeStr(body, "target_multiplicity", a.TargetMultiplicity)
	return block
}

func aliasBlock(b *Builder, idx *model.Index, name string, a model.Alias) *hclwrite.Block {
	block := hclwrite.NewBlock("alias", []string{name})
	body := block.Body()
	SetAttributeStr(body, "id", a.ID)
	SetAttributeStr(body, "name", a.DcName)
	entityRef(b, idx, body, "entity", a.DcID)
	return block
}

func shapeBlock(b *Builder, idx *model.Index, name string, s model.Shape) *hclwrite.Block {
	block := hclwrite.NewBlock("shape", []string{name})
	body := block.Body()
	SetAttributeStr(body, "id", s.ID)
	body.SetAttributeValue("kind", cty.StringVal(s.Type.String()))
	kind := s.Type.String()
	if idx.Resolves(s) {
		SetAttributeRef(body, "model", kind, b.Name(kind, s.ModelID))
	} else {
		SetAttributeStr(body, "model_id", s.ModelID)
	}
	body.SetAttributeValue("bounds", cty.TupleVal([]cty.Value{
		cty.NumberFloatVal(s.X), cty.NumberFloatVal(s.Y),
		cty.NumberFloatVal(s.Width), cty.NumberFloatVal(s.Height),
	}))
	SetAttributeStr(body, "outline_color", s.OutlineColor)
	return block
}

func connectorBlock(b *Builder, idx *model.Index, name string, c model.Connector) *hclwrite.Block {
	block := hclwrite.NewBlock("connector", []string{name})
	body := block.Body()
	SetAttributeStr(body, "id", c.ID)
	if _, ok := idx.Association(c.AssociationID); ok {
		SetAttributeRef(body, "association", "association", b.Name("association", c.AssociationID))
	} else {
		SetAttributeStr(body, "association_id", c.AssociationID)
	}
	pts := make([]cty.Value, len(c.Points))
	for i, p := range c.Points {
		pts[i] = cty.TupleVal([]cty.Value{cty.NumberFloatVal(p.X), cty.NumberFloatVal(p.Y)})
	}
	if len(pts) > 0 {
		body.SetAttributeValue("points", cty.TupleVal(pts))
	}
	return block
}

// entityRef writes a reference when id resolves and the raw id otherwise.
func entityRef(b *Builder, idx *model.Index, body *hclwrite.Body, name, id string) {
	if _, ok := idx.Entity(id); ok {
		SetAttributeRef(body, name, "entity", b.Name("entity", id))
		return
	}
	SetAttributeStr(body, name+"_id", id)
}
