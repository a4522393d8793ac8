package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	src := []byte(`
render {
  max_properties = 5
}
viewport {
  scale      = 48
  min_extent = 2
}
reload {
  window = "200ms"
}
backend {
  url = "http://modeler:5458"
}
log {
  level = "debug"
}
`)
	cfg, err := Parse("fwbo.hcl", src)
	if err != nil {
		t.Fatal(err)
	}
	want := Default()
	want.Render.MaxProperties = 5
	want.Viewport.Scale = 48
	want.Viewport.MinExtent = 2
	want.Reload.Window = 200 * time.Millisecond
	want.Backend.URL = "http://modeler:5458"
	want.Log.Level = "debug"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config (-want +got):\n%s", diff)
	}
	if got := cfg.RenderOptions(); got.Viewport.Scale != 48 || got.MaxOperations != 10 {
		t.Errorf("RenderOptions() = %+v", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", `render {`},
		{"unknown block", `colors { }`},
		{"bad duration", `reload { window = "soon" }`},
		{"zero scale", `viewport { scale = 0 }`},
		{"wrong type", `render { max_properties = "many" }`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse("fwbo.hcl", []byte(tt.src)); err == nil {
				t.Error("Parse() should fail")
			}
		})
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fwbo.hcl")
	if err := os.WriteFile(path, []byte("server {\n  addr = \":9000\"\n}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FWBO_LOG_LEVEL", "warn")
	t.Setenv("FWBO_MAX_OPERATIONS", "3")
	t.Setenv("FWBO_RELOAD_WINDOW", "1s")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != ":9000" || cfg.Log.Level != "warn" || cfg.Render.MaxOperations != 3 || cfg.Reload.Window != time.Second {
		t.Errorf("Load() = %+v", cfg)
	}

	t.Setenv("FWBO_SCALE", "big")
	if _, err := Load(path); err == nil {
		t.Error("invalid FWBO_SCALE accepted")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.hcl")); err == nil {
		t.Error("missing config file accepted")
	}
}
