// Package config loads settings from defaults, an optional HCL file, .env and FWBO_* variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/joho/godotenv"

	"github.com/fwbo-viewer/fwbo/internal/edit"
	"github.com/fwbo-viewer/fwbo/internal/reload"
	"github.com/fwbo-viewer/fwbo/internal/render"
	"github.com/fwbo-viewer/fwbo/internal/viewport"
)

// Config holds every runtime setting.
type Config struct {
	Render   RenderConfig
	Viewport ViewportConfig
	Reload   ReloadConfig
	Backend  BackendConfig
	Server   ServerConfig
	Log      LogConfig
}

type RenderConfig struct {
	MaxProperties int
	MaxOperations int
}

type ViewportConfig struct {
	Scale         float64
	Padding       float64
	TargetPadding float64
	MinExtent     float64
}

type ReloadConfig struct {
	Window time.Duration
}

type BackendConfig struct {
	URL string
}

type ServerConfig struct {
	Addr string
}

type LogConfig struct {
	Level string
}

// Default returns the built-in settings.
func Default() *Config {
	vp := viewport.DefaultOptions()
	return &Config{
		Render: RenderConfig{
			MaxProperties: render.DefaultMaxProperties,
			MaxOperations: render.DefaultMaxOperations,
		},
		Viewport: ViewportConfig{
			Scale:         vp.Scale,
			Padding:       vp.Padding,
			TargetPadding: vp.TargetPadding,
			MinExtent:     vp.MinExtent,
		},
		Reload:  ReloadConfig{Window: reload.DefaultWindow},
		Backend: BackendConfig{URL: edit.DefaultBaseURL},
		Server:  ServerConfig{Addr: ":8080"},
		Log:     LogConfig{Level: "info"},
	}
}

// HCL file layout. Every block and attribute is optional.
type fileConfig struct {
	Render   *renderBlock   `hcl:"render,block"`
	Viewport *viewportBlock `hcl:"viewport,block"`
	Reload   *reloadBlock   `hcl:"reload,block"`
	Backend  *backendBlock  `hcl:"backend,block"`
	Server   *serverBlock   `hcl:"server,block"`
	Log      *logBlock      `hcl:"log,block"`
}

type renderBlock struct {
	MaxProperties *int `hcl:"max_properties,optional"`
	MaxOperations *int `hcl:"max_operations,optional"`
}

type viewportBlock struct {
	Scale         *float64 `hcl:"scale,optional"`
	Padding       *float64 `hcl:"padding,optional"`
	TargetPadding *float64 `hcl:"target_padding,optional"`
	MinExtent     *float64 `hcl:"min_extent,optional"`
}

type reloadBlock struct {
	Window *string `hcl:"window,optional"`
}

type backendBlock struct {
	URL *string `hcl:"url,optional"`
}

type serverBlock struct {
	Addr *string `hcl:"addr,optional"`
}

type logBlock struct {
	Level *string `hcl:"level,optional"`
}

// Load builds the configuration. path names an HCL file; when empty, FWBO_CONFIG is used
// if set. A .env file in the working directory is loaded if present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path == "" {
		path = os.Getenv("FWBO_CONFIG")
	}
	if path != "" {
		var fc fileConfig
		if err := hclsimple.DecodeFile(path, nil, &fc); err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
		if err := cfg.apply(&fc); err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes HCL source over the defaults. filename must end in .hcl.
func Parse(filename string, src []byte) (*Config, error) {
	var fc fileConfig
	if err := hclsimple.Decode(filename, src, nil, &fc); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg := Default()
	if err := cfg.apply(&fc); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) apply(fc *fileConfig) error {
	if b := fc.Render; b != nil {
		setInt(&c.Render.MaxProperties, b.MaxProperties)
		setInt(&c.Render.MaxOperations, b.MaxOperations)
	}
	if b := fc.Viewport; b != nil {
		setFloat(&c.Viewport.Scale, b.Scale)
		setFloat(&c.Viewport.Padding, b.Padding)
		setFloat(&c.Viewport.TargetPadding, b.TargetPadding)
		setFloat(&c.Viewport.MinExtent, b.MinExtent)
	}
	if b := fc.Reload; b != nil && b.Window != nil {
		d, err := time.ParseDuration(*b.Window)
		if err != nil {
			return fmt.Errorf("reload.window: %w", err)
		}
		c.Reload.Window = d
	}
	if b := fc.Backend; b != nil {
		setString(&c.Backend.URL, b.URL)
	}
	if b := fc.Server; b != nil {
		setString(&c.Server.Addr, b.Addr)
	}
	if b := fc.Log; b != nil {
		setString(&c.Log.Level, b.Level)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Log.Level = getEnv("FWBO_LOG_LEVEL", c.Log.Level)
	c.Backend.URL = getEnv("FWBO_BACKEND_URL", c.Backend.URL)
	c.Server.Addr = getEnv("FWBO_SERVER_ADDR", c.Server.Addr)

	var err error
	if c.Render.MaxProperties, err = getEnvInt("FWBO_MAX_PROPERTIES", c.Render.MaxProperties); err != nil {
		return err
	}
	if c.Render.MaxOperations, err = getEnvInt("FWBO_MAX_OPERATIONS", c.Render.MaxOperations); err != nil {
		return err
	}
	if c.Viewport.Scale, err = getEnvFloat("FWBO_SCALE", c.Viewport.Scale); err != nil {
		return err
	}
	if v := os.Getenv("FWBO_RELOAD_WINDOW"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("FWBO_RELOAD_WINDOW: %w", err)
		}
		c.Reload.Window = d
	}
	return nil
}

// Validate rejects settings the viewer cannot work with.
func (c *Config) Validate() error {
	switch {
	case c.Viewport.Scale <= 0:
		return fmt.Errorf("viewport.scale must be positive, got %v", c.Viewport.Scale)
	case c.Viewport.MinExtent <= 0:
		return fmt.Errorf("viewport.min_extent must be positive, got %v", c.Viewport.MinExtent)
	case c.Viewport.Padding < 0 || c.Viewport.TargetPadding < 0:
		return fmt.Errorf("viewport padding must not be negative")
	case c.Render.MaxProperties < 0 || c.Render.MaxOperations < 0:
		return fmt.Errorf("render limits must not be negative")
	case c.Reload.Window <= 0:
		return fmt.Errorf("reload.window must be positive, got %v", c.Reload.Window)
	}
	return nil
}

// ViewportOptions converts to viewport.Options.
func (c *Config) ViewportOptions() viewport.Options {
	return viewport.Options{
		Scale:         c.Viewport.Scale,
		Padding:       c.Viewport.Padding,
		TargetPadding: c.Viewport.TargetPadding,
		MinExtent:     c.Viewport.MinExtent,
	}
}

// RenderOptions converts to render.Options.
func (c *Config) RenderOptions() render.Options {
	return render.Options{
		Viewport:      c.ViewportOptions(),
		MaxProperties: c.Render.MaxProperties,
		MaxOperations: c.Render.MaxOperations,
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v *string) {
	if v != nil && *v != "" {
		*dst = *v
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}
