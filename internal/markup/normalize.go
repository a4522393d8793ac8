// Package markup normalizes the XML model and diagram documents into the canonical model.
package markup

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/fwbo-viewer/fwbo/internal/model"
	"github.com/fwbo-viewer/fwbo/internal/provider"
	"github.com/fwbo-viewer/fwbo/internal/result"
)

const (
	diagramRootName = "Frameworks2022Diagram"
	defaultPropType = "String"
	bom             = "\uFEFF"
)

// Provider is the structured-markup provider.
type Provider struct{}

func init() {
	provider.Register(provider.FormatXML, Provider{})
}

// Format returns "xml".
func (Provider) Format() string { return provider.FormatXML }

// Parse decodes the model document and the optional diagram document.
// A blank diagram document yields an empty diagram.
func (Provider) Parse(modelContent, diagramContent string) (*model.Data, error) {
	return Parse(modelContent, diagramContent)
}

// Parse decodes the model document and the optional diagram document.
func Parse(modelXML, diagramXML string) (*model.Data, error) {
	var root modelRoot
	if err := xml.Unmarshal([]byte(strings.TrimPrefix(modelXML, bom)), &root); err != nil {
		return nil, fmt.Errorf("%w: model document: %v", result.ErrParse, err)
	}

	d := &model.Data{}
	for _, tl := range root.TypeLists {
		collectTypeList(d, tl)
	}

	if strings.TrimSpace(diagramXML) != "" {
		diag, err := ParseDiagram(diagramXML)
		if err != nil {
			return nil, err
		}
		d.Diagram = diag
	}

	d.Normalize()
	return d, nil
}

// ParseDiagram decodes a diagram document. A root other than the expected
// diagram element yields an empty diagram.
func ParseDiagram(diagramXML string) (model.Diagram, error) {
	var root diagramRoot
	if err := xml.Unmarshal([]byte(strings.TrimPrefix(diagramXML, bom)), &root); err != nil {
		return model.Diagram{}, fmt.Errorf("%w: diagram document: %v", result.ErrParse, err)
	}
	diag := model.Diagram{}
	if root.XMLName.Local != diagramRootName {
		diag.Normalize()
		return diag, nil
	}
	for _, n := range root.Nested {
		for _, s := range n.EntityDcShapes {
			diag.Shapes = append(diag.Shapes, toShape(s, model.KindEntity, s.DcMoniker))
		}
		for _, s := range n.ServiceShapes {
			diag.Shapes = append(diag.Shapes, toShape(s, model.KindService, s.ServiceMoniker))
		}
		for _, s := range n.AliasShapes {
			diag.Shapes = append(diag.Shapes, toShape(s, model.KindAlias, s.AliasMoniker))
		}
		for _, s := range n.EntityShapes {
			diag.Shapes = append(diag.Shapes, toShape(s, model.KindEntity, s.EntityMoniker))
		}
		for _, c := range n.Connectors {
			ref := c.AssociationDcMoniker
			if ref == nil {
				ref = c.AssociationMoniker
			}
			diag.Connectors = append(diag.Connectors, model.Connector{
				ID:            c.ID,
				AssociationID: ref.ref(),
				Points:        ParseEdgePoints(c.EdgePoints),
			})
		}
	}
	diag.Normalize()
	return diag, nil
}

// NavigationLabel strips the owning entity's name from an association or
// navigation name: "Order" + "OrderLine" gives "Line".
func NavigationLabel(entityName, name string) string {
	if strings.HasPrefix(name, entityName) {
		return name[len(entityName):]
	}
	return name
}

func collectTypeList(d *model.Data, tl modelTypeList) {
	for _, a := range tl.Aliases {
		d.Aliases = append(d.Aliases, model.Alias{ID: a.ID, DcName: a.DcName, DcID: a.DcID})
	}

	for _, s := range tl.Services {
		ops := []model.Operation{}
		for _, g := range s.Operations {
			for _, op := range g.Items {
				ops = append(ops, model.Operation{
					ID:          op.ID,
					Name:        op.Name,
					ReturnDcID:  op.ReturnDcID,
					RequestDcID: op.RequestDcID,
				})
			}
		}
		d.Services = append(d.Services, model.Service{ID: s.ID, Name: s.Name, Operations: ops})
	}

	for _, dc := range tl.DCs {
		props := []model.Property{}
		for _, g := range dc.Properties {
			props = appendProperties(props, g.Items)
		}
		nav := []string{}
		for _, a := range dc.Associations {
			nav = append(nav, NavigationLabel(dc.Name, a.Name))
			d.Associations = append(d.Associations, toAssociation(a))
		}
		d.Entities = append(d.Entities, model.Entity{ID: dc.ID, Name: dc.Name, Properties: props, NavigationProperties: nav})
	}

	for _, e := range tl.Entities {
		props := []model.Property{}
		for _, g := range e.Properties {
			props = appendProperties(props, g.Items)
		}
		nav := []string{}
		for _, g := range e.Navigation {
			for _, n := range g.Items {
				nav = append(nav, NavigationLabel(e.Name, n.Name))
			}
		}
		for _, a := range e.Associations {
			d.Associations = append(d.Associations, toAssociation(a))
		}
		d.Entities = append(d.Entities, model.Entity{ID: e.ID, Name: e.Name, Properties: props, NavigationProperties: nav})
	}
}

func appendProperties(props []model.Property, items []propertyElem) []model.Property {
	for _, p := range items {
		typ := p.Type
		if typ == "" {
			typ = defaultPropType
		}
		props = append(props, model.Property{Name: p.Name, Type: typ})
	}
	return props
}

func toAssociation(a associationElem) model.Association {
	return model.Association{
		ID:                 a.ID,
		Name:               a.Name,
		SourceMultiplicity: a.SourceMultiplicity,
		TargetMultiplicity: a.TargetMultiplicity,
	}
}

func toShape(s shapeElem, kind model.ShapeKind, ref *moniker) model.Shape {
	b := ParseBounds(s.AbsoluteBounds)
	return model.Shape{
		ID:           s.ID,
		ModelID:      ref.ref(),
		X:            b.X,
		Y:            b.Y,
		Width:        b.Width,
		Height:       b.Height,
		Type:         kind,
		OutlineColor: s.OutlineColor,
	}
}
