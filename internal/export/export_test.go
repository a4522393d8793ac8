package export

import (
	"regexp"
	"testing"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"

	"github.com/fwbo-viewer/fwbo/internal/model"
)

func sample() *model.Data {
	d := &model.Data{
		Entities: []model.Entity{
			{ID: "3f-a1", Name: "Customer", Properties: []model.Property{{Name: "Id", Type: "Guid"}}, NavigationProperties: []string{"Orders"}},
			{ID: "3f_a1", Name: "Clash"},
		},
		Services: []model.Service{{ID: "s1", Name: "Orders", Operations: []model.Operation{
			{ID: "o1", Name: "Get", ReturnDcID: "3f-a1", RequestDcID: "nope"},
		}}},
		Associations: []model.Association{{ID: "as1", Name: "CustomerOrders", SourceMultiplicity: "1", TargetMultiplicity: "0..*"}},
		Aliases:      []model.Alias{{ID: "a1", DcName: "CustomerRef", DcID: "3f-a1"}},
		Diagram: model.Diagram{
			Shapes: []model.Shape{
				{ID: "sh1", ModelID: "3f-a1", X: 1, Y: 2, Width: 3, Height: 1.5, Type: model.KindEntity, OutlineColor: "#336699"},
				{ID: "sh2", ModelID: "ghost", Type: model.KindAlias},
			},
			Connectors: []model.Connector{{ID: "c1", AssociationID: "as1", Points: []model.Point{{X: 1, Y: 1}, {X: 2, Y: 2}}}},
		},
	}
	d.Normalize()
	return d
}

func TestSanitizeName(t *testing.T) {
	tests := map[string]string{
		"node-1":   "node_1",
		"3f-a1":    "id_3f_a1",
		"":         "id_",
		"Kunde.ÄÖ": "Kunde___",
	}
	for in, want := range tests {
		if got := SanitizeName(in); got != want {
			t.Errorf("SanitizeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBuilderNamesAreUnique(t *testing.T) {
	b := NewBuilder()
	if got := b.Name("entity", "3f-a1"); got != "id_3f_a1" {
		t.Errorf("first = %q", got)
	}
	if got := b.Name("entity", "3f_a1"); got != "id_3f_a1_2" {
		t.Errorf("colliding = %q", got)
	}
	if got := b.Name("entity", "3f-a1"); got != "id_3f_a1" {
		t.Errorf("repeat = %q", got)
	}
	if got := b.Name("shape", "3f_a1"); got != "id_3f_a1" {
		t.Errorf("other kind = %q", got)
	}
}

func TestExportParses(t *testing.T) {
	src := Model(sample(), "xml").Bytes()

	f, diags := hclparse.NewParser().ParseHCL(src, "model.hcl")
	if diags.HasErrors() {
		t.Fatalf("exported HCL does not parse: %s\n%s", diags.Error(), src)
	}
	body := f.Body.(*hclsyntax.Body)

	counts := map[string]int{}
	for _, blk := range body.Blocks {
		counts[blk.Type]++
	}
	want := map[string]int{"model": 1, "entity": 2, "service": 1, "association": 1, "alias": 1, "shape": 2, "connector": 1}
	for typ, n := range want {
		if counts[typ] != n {
			t.Errorf("%s blocks = %d, want %d", typ, counts[typ], n)
		}
	}

	text := string(src)
	for _, pattern := range []string{
		`entity "id_3f_a1_2"`,
		`returns\s+= entity\.id_3f_a1\n`,
		`request_id\s+= "nope"`,
		`entity\s+= entity\.id_3f_a1\n`,
		`association\s+= association\.as1\n`,
		`model_id\s+= "ghost"`,
		`property "Id"`,
	} {
		if !regexp.MustCompile(pattern).MatchString(text) {
			t.Errorf("export does not match %q\n%s", pattern, text)
		}
	}
}

func TestExportDuplicateIDsReferenceLast(t *testing.T) {
	d := &model.Data{
		Entities: []model.Entity{{ID: "e1", Name: "Order"}, {ID: "e1", Name: "OrderV2"}},
		Aliases:  []model.Alias{{ID: "a1", DcName: "Order", DcID: "e1"}},
	}
	d.Normalize()
	text := string(Model(d, "").Bytes())
	for _, pattern := range []string{
		`entity "e1" \{\n\s+id\s+= "e1"\n\s+name\s+= "Order"\n`,
		`entity "e1_2" \{\n\s+id\s+= "e1"\n\s+name\s+= "OrderV2"\n`,
		`entity\s+= entity\.e1_2\n`,
	} {
		if !regexp.MustCompile(pattern).MatchString(text) {
			t.Errorf("export does not match %q\n%s", pattern, text)
		}
	}
}

func TestBuildSplitsFiles(t *testing.T) {
	d := model.Empty()
	files := Model(d, "").Build()
	if len(files) != 1 {
		t.Errorf("empty model files = %v, want only %s", len(files), FileModel)
	}
	if _, ok := files[FileModel]; !ok {
		t.Errorf("missing %s", FileModel)
	}

	files = Model(sample(), "json").Build()
	for _, name := range sectionOrder {
		if _, ok := files[name]; !ok {
			t.Errorf("missing %s", name)
		}
	}
}
