package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestShapeKindText(t *testing.T) {
	for _, k := range ShapeKinds() {
		b, err := k.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%d) error: %v", int(k), err)
		}
		var got ShapeKind
		if err := got.UnmarshalText(b); err != nil {
			t.Fatalf("UnmarshalText(%q) error: %v", b, err)
		}
		if got != k {
			t.Errorf("round trip of %v = %v", k, got)
		}
	}

	var k ShapeKind
	if err := k.UnmarshalText([]byte("ALIAS")); err != nil || k != KindAlias {
		t.Errorf("UnmarshalText(ALIAS) = %v, %v; want alias", k, err)
	}
	if err := k.UnmarshalText([]byte("diamond")); err == nil {
		t.Error("UnmarshalText(diamond) expected error")
	}
	if _, err := ShapeKind(42).MarshalText(); err == nil {
		t.Error("MarshalText(42) expected error")
	}
}

func TestEmptyEncodesArrays(t *testing.T) {
	b, err := json.Marshal(Empty())
	if err != nil {
		t.Fatal(err)
	}
	got := string(b)
	want := `{"entities":[],"services":[],"associations":[],"aliases":[],"diagram":{"shapes":[],"connectors":[]}}`
	if got != want {
		t.Errorf("Empty() JSON = %s, want %s", got, want)
	}
}

func TestIndexFirstWins(t *testing.T) {
	d := &Data{Entities: []Entity{{ID: "e1", Name: "First"}, {ID: "e1", Name: "Second"}}}
	idx := NewIndex(d)
	e, ok := idx.Entity("e1")
	if !ok || e.Name != "First" {
		t.Errorf("Entity(e1) = %v, %v; want First", e, ok)
	}
	if _, ok := idx.Entity(""); ok {
		t.Error("Entity(\"\") should not resolve")
	}
}

func TestValidate(t *testing.T) {
	d := &Data{
		Entities:     []Entity{{ID: "e1", Name: "Order"}},
		Services:     []Service{{ID: "s1", Name: "Orders"}},
		Associations: []Association{{ID: "a1", Name: "OrderLine"}},
		Aliases:      []Alias{{ID: "al1", DcName: "Order", DcID: "e1"}, {ID: "al2", DcName: "Ghost", DcID: "missing"}},
		Diagram: Diagram{
			Shapes: []Shape{
				{ID: "sh1", ModelID: "e1", Type: KindEntity},
				{ID: "sh2", ModelID: "s1", Type: KindEntity},
				{ID: "sh3", ModelID: "", Type: KindAlias},
				{ID: "sh4", ModelID: "s1", Type: KindService},
			},
			Connectors: []Connector{
				{ID: "c1", AssociationID: "a1"},
				{ID: "c2", AssociationID: "nope"},
				{ID: "c3"},
			},
		},
	}

	issues := Validate(d)
	got := map[string]string{}
	for _, is := range issues {
		got[is.ID] = is.Message
		if is.Severity != "warning" {
			t.Errorf("issue %s severity = %s, want warning", is.ID, is.Severity)
		}
	}
	for _, id := range []string{"al2", "sh2", "sh3", "c2"} {
		if _, ok := got[id]; !ok {
			t.Errorf("expected an issue for %s, got %v", id, got)
		}
	}
	for _, id := range []string{"al1", "sh1", "sh4", "c1", "c3"} {
		if msg, ok := got[id]; ok {
			t.Errorf("unexpected issue for %s: %s", id, msg)
		}
	}
	if !strings.Contains(got["sh2"], "unknown entity") {
		t.Errorf("sh2 message = %q", got["sh2"])
	}
}

func TestIndexLastDuplicateWins(t *testing.T) {
	d := &Data{
		Entities: []Entity{{ID: "e1", Name: "Order"}, {ID: "e1", Name: "OrderV2"}},
		Aliases:  []Alias{{ID: "a1", DcName: "First"}, {ID: "a1", DcName: "Second"}},
	}
	idx := NewIndex(d)
	if e, ok := idx.Entity("e1"); !ok || e.Name != "OrderV2" {
		t.Errorf("Entity(e1) = %+v, %v, want OrderV2", e, ok)
	}
	if a, ok := idx.Alias("a1"); !ok || a.DcName != "Second" {
		t.Errorf("Alias(a1) = %+v, %v, want Second", a, ok)
	}
}

func TestValidateDuplicates(t *testing.T) {
	d := &Data{Entities: []Entity{{ID: "e1"}, {ID: "e1"}}}
	issues := Validate(d)
	if len(issues) != 1 || issues[0].Type != "duplicate_id" {
		t.Errorf("Validate() = %+v, want one duplicate_id", issues)
	}
}

func TestRectHelpers(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 30, Height: 40}
	if c := r.Center(); c != (Point{X: 25, Y: 40}) {
		t.Errorf("Center() = %v", c)
	}
	if s := r.Scale(2); s != (Rect{X: 20, Y: 40, Width: 60, Height: 80}) {
		t.Errorf("Scale(2) = %v", s)
	}
	if !r.Contains(Point{X: 10, Y: 60}) || r.Contains(Point{X: 41, Y: 30}) {
		t.Error("Contains() mismatch")
	}
}
