package parser

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwbo-viewer/fwbo/internal/provider"
)

const xmlModel = `<modelRoot><modelTypeList>
<dc Id="dc1" name="Customer"/>
<dcAlias Id="al1" dcName="Ghost" dcId="missing"/>
</modelTypeList></modelRoot>`

const xmlDiagram = `<Frameworks2022Diagram><nestedChildShapes>
<entityDcShape Id="sh1" absoluteBounds="0,0,1,1"><dcMoniker Id="dc1"/></entityDcShape>
</nestedChildShapes></Frameworks2022Diagram>`

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParseDetectsFormat(t *testing.T) {
	tests := []struct {
		name       string
		model      string
		diagram    string
		wantFormat string
		wantShapes int
	}{
		{name: "xml", model: xmlModel, diagram: xmlDiagram, wantFormat: provider.FormatXML, wantShapes: 1},
		{name: "json", model: `  {"entities":[{"id":"e1","name":"A"}]}`, wantFormat: provider.FormatJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(DefaultOptions(), quietLogger())
			res, err := p.Parse(tt.model, tt.diagram)
			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}
			if !res.Success {
				t.Fatalf("Parse() failed: %+v", res.Errors)
			}
			if res.Format != tt.wantFormat {
				t.Errorf("Format = %s, want %s", res.Format, tt.wantFormat)
			}
			if len(res.Data.Diagram.Shapes) != tt.wantShapes {
				t.Errorf("shapes = %d, want %d", len(res.Data.Diagram.Shapes), tt.wantShapes)
			}
		})
	}
}

func TestParseWarnings(t *testing.T) {
	res, err := New(DefaultOptions(), quietLogger()).Parse(xmlModel, xmlDiagram)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Warnings) != 1 || res.Warnings[0].ID != "al1" {
		t.Errorf("Warnings = %+v, want one for al1", res.Warnings)
	}

	opts := DefaultOptions()
	opts.SkipValidation = true
	res, err = New(opts, quietLogger()).Parse(xmlModel, xmlDiagram)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("Warnings with SkipValidation = %+v", res.Warnings)
	}
}

func TestParseReportsDroppedShapes(t *testing.T) {
	doc := `{"entities":[{"id":"e1","name":"A"}],"services":[],"associations":[],"aliases":[],` +
		`"diagram":{"shapes":[{"id":"s1","modelId":"e1","type":"entity"},{"id":"s2","modelId":"e1","type":"table"}],"connectors":[]}}`
	opts := DefaultOptions()
	opts.SkipValidation = true
	res, err := New(opts, quietLogger()).Parse(doc, "")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if !res.Success || len(res.Data.Diagram.Shapes) != 1 {
		t.Fatalf("Parse() = %+v", res)
	}
	if len(res.Warnings) != 1 || res.Warnings[0].Type != "unknown_shape_type" || res.Warnings[0].ID != "s2" {
		t.Errorf("Warnings = %+v, want one unknown_shape_type for s2", res.Warnings)
	}
}

func TestParseFailureKeepsNoModel(t *testing.T) {
	res, err := New(DefaultOptions(), quietLogger()).Parse(`{"entities": [`, "")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if res.Success || res.Data != nil {
		t.Errorf("Parse() = %+v, want failure without data", res)
	}
	if len(res.Errors) != 1 || res.Errors[0].Type != "parse_error" {
		t.Errorf("Errors = %+v", res.Errors)
	}
}

func TestParseExplicitFormat(t *testing.T) {
	opts := DefaultOptions()
	opts.Format = "YAML"
	_, err := New(opts, quietLogger()).Parse(xmlModel, "")
	if !errors.Is(err, provider.ErrUnsupportedFormat) {
		t.Errorf("Parse() error = %v, want ErrUnsupportedFormat", err)
	}

	opts.Format = "XML"
	res, err := New(opts, quietLogger()).Parse(xmlModel, "")
	if err != nil || !res.Success {
		t.Errorf("Parse() with XML = %+v, %v", res, err)
	}
}

func TestReadDocuments(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "orders.fwbo")
	if err := os.WriteFile(modelPath, []byte(xmlModel), 0o644); err != nil {
		t.Fatal(err)
	}

	docs, err := ReadDocuments(modelPath, "")
	if err != nil {
		t.Fatalf("ReadDocuments() error: %v", err)
	}
	if docs.Diagram != "" || docs.DiagramPath != "" {
		t.Errorf("expected no diagram, got %q", docs.DiagramPath)
	}

	if err := os.WriteFile(modelPath+DiagramSuffix, []byte(xmlDiagram), 0o644); err != nil {
		t.Fatal(err)
	}
	docs, err = ReadDocuments(modelPath, "")
	if err != nil {
		t.Fatal(err)
	}
	if docs.Diagram != xmlDiagram {
		t.Errorf("default diagram not picked up")
	}

	if _, err := ReadDocuments(modelPath, filepath.Join(dir, "absent.diagram")); err == nil {
		t.Error("explicit missing diagram should fail")
	}
	if _, err := ReadDocuments(filepath.Join(dir, "absent.fwbo"), ""); err == nil {
		t.Error("missing model should fail")
	}
}
