package model

import (
	"fmt"
)

// Issue is a non-fatal finding about the model, such as a reference that does not resolve.
type Issue struct {
	Type       string `json:"type"`
	Severity   string `json:"severity"` // warning
	ID         string `json:"id,omitempty"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Validate reports dangling weak references and duplicate ids.
// None of these stop rendering: shapes fall back to placeholders and connectors lose their labels.
func Validate(d *Data) []Issue {
	if d == nil {
		return nil
	}
	var issues []Issue
	idx := NewIndex(d)

	issues = append(issues, duplicates("entity", len(d.Entities), func(i int) string { return d.Entities[i].ID })...)
	issues = append(issues, duplicates("service", len(d.Services), func(i int) string { return d.Services[i].ID })...)
	issues = append(issues, duplicates("alias", len(d.Aliases), func(i int) string { return d.Aliases[i].ID })...)
	issues = append(issues, duplicates("shape", len(d.Diagram.Shapes), func(i int) string { return d.Diagram.Shapes[i].ID })...)

	for _, a := range d.Aliases {
		if _, ok := idx.Entity(a.DcID); !ok {
			issues = append(issues, Issue{
				Type: "dangling_reference", Severity: "warning", ID: a.ID,
				Message:    fmt.Sprintf("alias %q references unknown entity %q", a.DcName, a.DcID),
				Suggestion: "Hover details will be unavailable for this alias",
			})
		}
	}

	for _, s := range d.Diagram.Shapes {
		if s.ModelID == "" {
			issues = append(issues, Issue{
				Type: "dangling_reference", Severity: "warning", ID: s.ID,
				Message:    fmt.Sprintf("%s shape has no model reference", s.Type),
				Suggestion: "Shape renders as a placeholder",
			})
			continue
		}
		if !idx.Resolves(s) {
			issues = append(issues, Issue{
				Type: "dangling_reference", Severity: "warning", ID: s.ID,
				Message:    fmt.Sprintf("%s shape references unknown %s %q", s.Type, s.Type, s.ModelID),
				Suggestion: "Shape renders as a placeholder",
			})
		}
	}

	for _, c := range d.Diagram.Connectors {
		if _, ok := idx.Association(c.AssociationID); !ok && c.AssociationID != "" {
			issues = append(issues, Issue{
				Type: "dangling_reference", Severity: "warning", ID: c.ID,
				Message:    "connector references unknown association " + c.AssociationID,
				Suggestion: "Connector is drawn without multiplicity labels",
			})
		}
	}

	return issues
}

func duplicates(kind string, n int, id func(int) string) []Issue {
	var out []Issue
	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		v := id(i)
		if v == "" {
			continue
		}
		if seen[v] {
			out = append(out, Issue{
				Type: "duplicate_id", Severity: "warning", ID: v,
				Message:    fmt.Sprintf("duplicate %s id: %s", kind, v),
				Suggestion: "Only the last " + kind + " with this id is reachable by reference",
			})
			continue
		}
		seen[v] = true
	}
	return out
}

// EntityByName returns the first entity with the given name, or nil.
func (d *Data) EntityByName(name string) *Entity {
	for i := range d.Entities {
		if d.Entities[i].Name == name {
			return &d.Entities[i]
		}
	}
	return nil
}

// AliasByName returns the first alias whose display name matches, or nil.
func (d *Data) AliasByName(name string) *Alias {
	for i := range d.Aliases {
		if d.Aliases[i].DcName == name {
			return &d.Aliases[i]
		}
	}
	return nil
}

// ConnectorsFor returns connectors drawing the given association.
func (d *Data) ConnectorsFor(associationID string) []Connector {
	var out []Connector
	for _, c := range d.Diagram.Connectors {
		if c.AssociationID == associationID {
			out = append(out, c)
		}
	}
	return out
}
