package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vango-dev/appstore/internal/errors"
	"github.com/vango-dev/appstore/pkg/breakpoint"
	"github.com/vango-dev/appstore/pkg/i18n"
	"github.com/vango-dev/appstore/pkg/kv"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Storage.Driver != kv.DriverMemory {
		t.Errorf("Storage.Driver = %q, want memory", cfg.Storage.Driver)
	}
	if cfg.Locale.Default != "zh-CN" {
		t.Errorf("Locale.Default = %q, want zh-CN", cfg.Locale.Default)
	}
	if cfg.Locale.Key != "lang" {
		t.Errorf("Locale.Key = %q, want lang", cfg.Locale.Key)
	}
	if cfg.Viewport.Width != DefaultViewportWidth {
		t.Errorf("Viewport.Width = %d, want %d", cfg.Viewport.Width, DefaultViewportWidth)
	}
	if cfg.Inspect.Addr != DefaultInspectAddr {
		t.Errorf("Inspect.Addr = %q", cfg.Inspect.Addr)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	content := `{
  "storage": {
    "driver": "sqlite",
    "path": "data/prefs.db",
    "table": "prefs"
  },
  "locale": {
    "default": "en"
  },
  "viewport": {
    "width": 375
  },
  "breakpoints": {
    "sm": 600,
    "lg": 1000
  },
  "reload": {
    "delay": "150ms"
  }
}`

	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Storage.Driver != kv.DriverSQLite {
		t.Errorf("Storage.Driver = %q, want sqlite", cfg.Storage.Driver)
	}
	if cfg.DefaultLocale() != i18n.En {
		t.Errorf("DefaultLocale() = %q, want en", cfg.DefaultLocale())
	}
	// Unset fields keep their defaults.
	if cfg.Locale.Key != DefaultLocaleKey {
		t.Errorf("Locale.Key = %q, want default", cfg.Locale.Key)
	}
	if cfg.Viewport.Width != 375 {
		t.Errorf("Viewport.Width = %d, want 375", cfg.Viewport.Width)
	}

	d, err := cfg.ReloadDelay()
	if err != nil || d != 150*time.Millisecond {
		t.Errorf("ReloadDelay() = %v, %v; want 150ms", d, err)
	}

	table := cfg.BreakpointTable()
	if w, ok := table.Lookup("sm"); !ok || w != 600 {
		t.Errorf("sm = %d, %v; want 600", w, ok)
	}

	opts := cfg.StorageOptions()
	if opts.Path != filepath.Join(dir, "data/prefs.db") {
		t.Errorf("StorageOptions().Path = %q", opts.Path)
	}
	if opts.Table != "prefs" {
		t.Errorf("StorageOptions().Table = %q", opts.Table)
	}
	if cfg.Path() != filepath.Join(dir, ConfigFileName) {
		t.Errorf("Path() = %q", cfg.Path())
	}
	if cfg.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", cfg.Dir(), dir)
	}
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(t.TempDir())
	if !errors.HasCode(err, "E122") {
		t.Errorf("Load() error = %v, want E122", err)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("{invalid json}"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	_, err := Load(dir)
	if !errors.HasCode(err, "E120") {
		t.Errorf("Load() error = %v, want E120", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(`{"storage": {"driver": "memory"}}`), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("APPSTORE_STORAGE_DRIVER", "file")
	t.Setenv("APPSTORE_STORAGE_PATH", "/tmp/prefs.json")
	t.Setenv("APPSTORE_LOCALE_DEFAULT", "en")
	t.Setenv("APPSTORE_VIEWPORT_WIDTH", "414")
	t.Setenv("APPSTORE_BREAKPOINTS", "sm:500,md:800")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Storage.Driver != kv.DriverFile || cfg.Storage.Path != "/tmp/prefs.json" {
		t.Errorf("Storage = %+v", cfg.Storage)
	}
	if cfg.Locale.Default != "en" {
		t.Errorf("Locale.Default = %q, want en", cfg.Locale.Default)
	}
	if cfg.Viewport.Width != 414 {
		t.Errorf("Viewport.Width = %d, want 414", cfg.Viewport.Width)
	}
	if cfg.Breakpoints["sm"] != 500 || cfg.Breakpoints["md"] != 800 {
		t.Errorf("Breakpoints = %v", cfg.Breakpoints)
	}
}

func TestEnvOverrideInvalid(t *testing.T) {
	t.Setenv("APPSTORE_VIEWPORT_WIDTH", "wide")

	_, err := FromEnv()
	if !errors.HasCode(err, "E121") {
		t.Errorf("FromEnv() error = %v, want E121", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"file without path", func(c *Config) { c.Storage.Driver = kv.DriverFile }, true},
		{"file with path", func(c *Config) {
			c.Storage.Driver = kv.DriverFile
			c.Storage.Path = "prefs.json"
		}, false},
		{"sqlite without path", func(c *Config) { c.Storage.Driver = kv.DriverSQLite }, true},
		{"s3 without bucket", func(c *Config) { c.Storage.Driver = kv.DriverS3 }, true},
		{"s3 with bucket", func(c *Config) {
			c.Storage.Driver = kv.DriverS3
			c.Storage.Bucket = "prefs"
		}, false},
		{"unknown driver", func(c *Config) { c.Storage.Driver = "floppy" }, true},
		{"unsupported locale", func(c *Config) { c.Locale.Default = "fr" }, true},
		{"negative width", func(c *Config) { c.Viewport.Width = -1 }, true},
		{"zero breakpoint", func(c *Config) { c.Breakpoints = map[string]int{"sm": 0} }, true},
		{"breakpoints without sm", func(c *Config) { c.Breakpoints = map[string]int{"md": 768} }, true},
		{"bad delay", func(c *Config) { c.Reload.Delay = "soon" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.modify(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.HasCode(err, "E121") {
				t.Errorf("Validate() error = %v, want E121", err)
			}
		})
	}
}

func TestBreakpointTableDefault(t *testing.T) {
	cfg := New()
	table := cfg.BreakpointTable()
	if len(table) != len(breakpoint.Tailwind) {
		t.Errorf("BreakpointTable() = %v, want Tailwind", table)
	}
}

func TestSaveTo(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)

	cfg := New()
	cfg.Storage.Driver = kv.DriverFile
	cfg.Storage.Path = "prefs.json"

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error: %v", err)
	}
	if !Exists(dir) {
		t.Fatal("Exists() = false after SaveTo")
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if loaded.Storage.Driver != kv.DriverFile || loaded.Storage.Path != "prefs.json" {
		t.Errorf("loaded Storage = %+v", loaded.Storage)
	}
}

func TestSaveWithoutPath(t *testing.T) {
	if err := New().Save(); err == nil {
		t.Error("Save() without a path should fail")
	}
}
