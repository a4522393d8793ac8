package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwbo-viewer/fwbo/internal/model"
	"github.com/fwbo-viewer/fwbo/internal/scene"
	"github.com/fwbo-viewer/fwbo/internal/viewport"
)

const testModel = `<modelRoot><modelTypeList>
<dc Id="dc1" name="Customer"/>
</modelTypeList></modelRoot>`

const testDiagram = `<Frameworks2022Diagram><nestedChildShapes>
<entityDcShape Id="sh1" absoluteBounds="1,1,2,1"><dcMoniker Id="dc1"/></entityDcShape>
</nestedChildShapes></Frameworks2022Diagram>`

func TestEncode(t *testing.T) {
	v := map[string]string{"name": "Customer"}
	tests := []struct {
		format  string
		want    string
		wantErr bool
	}{
		{format: "json", want: "\"name\": \"Customer\""},
		{format: "yaml", want: "name: Customer"},
		{format: "toml", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			err := encode(&buf, tt.format, v)
			if (err != nil) != tt.wantErr {
				t.Fatalf("encode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("encode() = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestFrame(t *testing.T) {
	sc := &scene.Scene{
		Space: model.Rect{X: -40, Y: -40, Width: 500, Height: 300},
		Nodes: []scene.Node{{ShapeID: "s1", Kind: model.KindEntity, Header: "Customer", Rect: model.Rect{X: 100, Y: 50, Width: 20, Height: 10}}},
	}
	view, hl := frame(sc, "customer", viewport.DefaultOptions())
	if hl != "s1" || view != (model.Rect{X: 50, Y: 0, Width: 120, Height: 110}) {
		t.Errorf("frame() = %+v, %q", view, hl)
	}
	view, hl = frame(sc, "nobody", viewport.DefaultOptions())
	if hl != "" || view != sc.Space {
		t.Errorf("frame() without match = %+v, %q", view, hl)
	}
}

func TestExportAndRenderCommands(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "orders.fwbo")
	if err := os.WriteFile(modelPath, []byte(testModel), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(modelPath+".diagram", []byte(testDiagram), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	rootCmd.SetArgs([]string{"export", modelPath})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(out.String(), `entity "dc1"`) || !strings.Contains(out.String(), `"Customer"`) {
		t.Errorf("export output:\n%s", out.String())
	}

	out.Reset()
	svgPath := filepath.Join(dir, "orders.svg")
	rootCmd.SetArgs([]string{"render", modelPath, "--svg", svgPath, "--search", "Customer"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("render: %v", err)
	}
	svg, err := os.ReadFile(svgPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(svg), `class="node-container entity-node highlight" data-shape-id="sh1"`) {
		t.Error("rendered SVG has no highlighted node")
	}
}
