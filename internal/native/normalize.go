// Package native normalizes JSON documents into the canonical model.
package native

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwbo-viewer/fwbo/internal/model"
	"github.com/fwbo-viewer/fwbo/internal/provider"
	"github.com/fwbo-viewer/fwbo/internal/result"
)

// Provider is the native-object provider.
type Provider struct{}

func init() {
	provider.Register(provider.FormatJSON, Provider{})
}

// Format returns "json".
func (Provider) Format() string { return provider.FormatJSON }

// Parse decodes the model document; the diagram comes from diagramContent when
// it is not blank, otherwise from the embedded "diagram" field.
func (Provider) Parse(modelContent, diagramContent string) (*model.Data, error) {
	return Parse(modelContent, diagramContent)
}

// IsCanonical reports whether the top level already carries all five canonical
// fields with the expected shapes.
func IsCanonical(fields map[string]json.RawMessage) bool {
	for _, key := range []string{"entities", "services", "associations", "aliases"} {
		if !isArray(fields[key]) {
			return false
		}
	}
	raw, ok := fields["diagram"]
	if !ok {
		return false
	}
	var diagram map[string]json.RawMessage
	if err := json.Unmarshal(raw, &diagram); err != nil || diagram == nil {
		return false
	}
	return isArray(diagram["shapes"]) && isArray(diagram["connectors"])
}

// Parse decodes the native-object model document. Shapes whose type tag is
// missing or unknown are dropped and reported in Data.Issues.
func Parse(modelJSON, diagramJSON string) (*model.Data, error) {
	modelJSON = strings.TrimPrefix(modelJSON, "\uFEFF")
	diagramJSON = strings.TrimPrefix(diagramJSON, "\uFEFF")
	if err := syntaxCheck(modelJSON); err != nil {
		return nil, fmt.Errorf("%w: model document: %v", result.ErrParse, err)
	}
	// A top-level value that is not an object carries no recognized fields.
	var fields map[string]json.RawMessage
	_ = json.Unmarshal([]byte(modelJSON), &fields)

	if IsCanonical(fields) {
		var doc struct {
			Entities     []model.Entity      `json:"entities"`
			Services     []model.Service     `json:"services"`
			Associations []model.Association `json:"associations"`
			Aliases      []model.Alias       `json:"aliases"`
			Diagram      wireDiagram         `json:"diagram"`
		}
		if err := json.Unmarshal([]byte(modelJSON), &doc); err != nil {
			return nil, fmt.Errorf("%w: model document: %v", result.ErrParse, err)
		}
		d := &model.Data{
			Entities:     doc.Entities,
			Services:     doc.Services,
			Associations: doc.Associations,
			Aliases:      doc.Aliases,
		}
		d.Diagram, d.Issues = doc.Diagram.toModel()
		d.Normalize()
		return d, nil
	}

	d := &model.Data{}
	if err := decodeArray(fields, "entities", &d.Entities); err != nil {
		return nil, err
	}
	if err := decodeArray(fields, "services", &d.Services); err != nil {
		return nil, err
	}
	if err := decodeArray(fields, "associations", &d.Associations); err != nil {
		return nil, err
	}
	if err := decodeArray(fields, "aliases", &d.Aliases); err != nil {
		return nil, err
	}

	var wd wireDiagram
	switch {
	case strings.TrimSpace(diagramJSON) != "":
		if err := json.Unmarshal([]byte(diagramJSON), &wd); err != nil {
			return nil, fmt.Errorf("%w: diagram document: %v", result.ErrParse, err)
		}
	case !isNull(fields["diagram"]):
		if err := json.Unmarshal(fields["diagram"], &wd); err != nil {
			return nil, fmt.Errorf("%w: embedded diagram: %v", result.ErrParse, err)
		}
	}
	d.Diagram, d.Issues = wd.toModel()

	d.Normalize()
	return d, nil
}

// wireShape is model.Shape with the type tag kept as text.
type wireShape struct {
	ID           string  `json:"id"`
	ModelID      string  `json:"modelId"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	Type         *string `json:"type"`
	OutlineColor string  `json:"outlineColor"`
}

type wireDiagram struct {
	Shapes     []wireShape       `json:"shapes"`
	Connectors []model.Connector `json:"connectors"`
}

func (w wireDiagram) toModel() (model.Diagram, []model.Issue) {
	out := model.Diagram{Connectors: w.Connectors}
	var issues []model.Issue
	for _, ws := range w.Shapes {
		tag := ""
		if ws.Type != nil {
			tag = *ws.Type
		}
		kind, err := model.ParseShapeKind(tag)
		if ws.Type == nil || err != nil {
			issues = append(issues, model.Issue{
				Type: "unknown_shape_type", Severity: "warning", ID: ws.ID,
				Message:    fmt.Sprintf("shape has unknown type %q", tag),
				Suggestion: "Shape is not drawn; use entity, service or alias",
			})
			continue
		}
		out.Shapes = append(out.Shapes, model.Shape{
			ID: ws.ID, ModelID: ws.ModelID,
			X: ws.X, Y: ws.Y, Width: ws.Width, Height: ws.Height,
			Type: kind, OutlineColor: ws.OutlineColor,
		})
	}
	return out, issues
}

// decodeArray fills dst from fields[key] when it holds an array; any other value is ignored.
func decodeArray(fields map[string]json.RawMessage, key string, dst any) error {
	raw := fields[key]
	if !isArray(raw) {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %s: %v", result.ErrParse, key, err)
	}
	return nil
}

func syntaxCheck(s string) error {
	var v any
	return json.Unmarshal([]byte(s), &v)
}

func isArray(raw json.RawMessage) bool {
	return bytes.HasPrefix(bytes.TrimSpace(raw), []byte("["))
}

func isNull(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}
