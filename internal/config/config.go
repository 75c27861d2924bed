package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/vango-dev/appstore/internal/errors"
	"github.com/vango-dev/appstore/pkg/breakpoint"
	"github.com/vango-dev/appstore/pkg/i18n"
	"github.com/vango-dev/appstore/pkg/kv"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "appstore.json"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "APPSTORE_"

	// DefaultLocaleKey is the storage key holding the persisted locale.
	DefaultLocaleKey = "lang"

	// DefaultViewportWidth is a desktop-sized viewport.
	DefaultViewportWidth = 1280

	// DefaultReloadDelay matches the delay the admin shell uses for its reload button.
	DefaultReloadDelay = "300ms"

	// DefaultInspectAddr is the default inspector listen address.
	DefaultInspectAddr = "127.0.0.1:7070"

	// DefaultNamespace is the default metrics namespace.
	DefaultNamespace = "appstore"
)

// Config represents the complete appstore.json configuration.
type Config struct {
	// Storage selects the key-value backend preferences persist to.
	Storage StorageConfig `json:"storage,omitempty" envPrefix:"STORAGE_"`

	// Locale contains locale defaults.
	Locale LocaleConfig `json:"locale,omitempty" envPrefix:"LOCALE_"`

	// Viewport contains the initial viewport.
	Viewport ViewportConfig `json:"viewport,omitempty" envPrefix:"VIEWPORT_"`

	// Breakpoints overrides the breakpoint table (name → min width in px).
	Breakpoints map[string]int `json:"breakpoints,omitempty" env:"BREAKPOINTS"`

	// Reload contains reload pulse settings.
	Reload ReloadConfig `json:"reload,omitempty" envPrefix:"RELOAD_"`

	// Inspect contains inspector server settings.
	Inspect InspectConfig `json:"inspect,omitempty" envPrefix:"INSPECT_"`

	// Telemetry contains metrics settings.
	Telemetry TelemetryConfig `json:"telemetry,omitempty" envPrefix:"TELEMETRY_"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// StorageConfig contains key-value backend settings.
type StorageConfig struct {
	// Driver is one of memory, file, sqlite, s3.
	Driver string `json:"driver,omitempty" env:"DRIVER"`

	// Path is the JSON file (file) or database file (sqlite).
	Path string `json:"path,omitempty" env:"PATH"`

	// Table is the SQL table name (sqlite).
	Table string `json:"table,omitempty" env:"TABLE"`

	// Bucket is the S3 bucket (s3).
	Bucket string `json:"bucket,omitempty" env:"BUCKET"`

	// Prefix is the S3 key prefix (s3).
	Prefix string `json:"prefix,omitempty" env:"PREFIX"`

	// Region is the S3 region (s3).
	Region string `json:"region,omitempty" env:"REGION"`

	// Endpoint points at an S3-compatible service (s3).
	Endpoint string `json:"endpoint,omitempty" env:"ENDPOINT"`
}

// LocaleConfig contains locale settings.
type LocaleConfig struct {
	// Default is used when nothing valid is persisted.
	Default string `json:"default,omitempty" env:"DEFAULT"`

	// Key is the storage key the locale persists under.
	Key string `json:"key,omitempty" env:"KEY"`
}

// ViewportConfig contains the initial viewport.
type ViewportConfig struct {
	// Width is the initial viewport width in CSS pixels.
	Width int `json:"width,omitempty" env:"WIDTH"`
}

// ReloadConfig contains reload pulse settings.
type ReloadConfig struct {
	// Delay is the default reload delay (e.g., "300ms").
	Delay string `json:"delay,omitempty" env:"DELAY"`
}

// InspectConfig contains inspector server settings.
type InspectConfig struct {
	// Addr is the listen address.
	Addr string `json:"addr,omitempty" env:"ADDR"`
}

// TelemetryConfig contains metrics settings.
type TelemetryConfig struct {
	// Namespace is the Prometheus metrics namespace.
	Namespace string `json:"namespace,omitempty" env:"NAMESPACE"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Storage: StorageConfig{
			Driver: kv.DriverMemory,
		},
		Locale: LocaleConfig{
			Default: string(i18n.Default),
			Key:     DefaultLocaleKey,
		},
		Viewport: ViewportConfig{
			Width: DefaultViewportWidth,
		},
		Reload: ReloadConfig{
			Delay: DefaultReloadDelay,
		},
		Inspect: InspectConfig{
			Addr: DefaultInspectAddr,
		},
		Telemetry: TelemetryConfig{
			Namespace: DefaultNamespace,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for appstore.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path, then applies
// environment overrides.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E122").
				WithDetail("No appstore.json found in " + filepath.Dir(path)).
				WithSuggestion("Create appstore.json or run without --config to use defaults")
		}
		return nil, errors.New("E120").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E120").
			WithDetail("Failed to parse appstore.json: " + err.Error()).
			WithSuggestion("Check that appstore.json is valid JSON")
	}

	cfg.configPath = path
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return cfg, nil
}

// FromEnv returns the defaults with environment overrides applied. It is
// used when no configuration file is given.
func FromEnv() (*Config, error) {
	cfg := New()
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// ApplyEnv overrides fields from APPSTORE_* environment variables.
func (c *Config) ApplyEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return errors.New("E121").
			WithDetail("Invalid environment override").
			Wrap(err)
	}
	return nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E120").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E120").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Storage.Driver == "" {
		c.Storage.Driver = kv.DriverMemory
	}
	if c.Locale.Default == "" {
		c.Locale.Default = string(i18n.Default)
	}
	if c.Locale.Key == "" {
		c.Locale.Key = DefaultLocaleKey
	}
	if c.Viewport.Width == 0 {
		c.Viewport.Width = DefaultViewportWidth
	}
	if c.Reload.Delay == "" {
		c.Reload.Delay = DefaultReloadDelay
	}
	if c.Inspect.Addr == "" {
		c.Inspect.Addr = DefaultInspectAddr
	}
	if c.Telemetry.Namespace == "" {
		c.Telemetry.Namespace = DefaultNamespace
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case kv.DriverMemory:
	case kv.DriverFile, kv.DriverSQLite:
		if c.Storage.Path == "" {
			return errors.New("E121").
				WithDetail("storage.path is required for the " + c.Storage.Driver + " driver")
		}
	case kv.DriverS3:
		if c.Storage.Bucket == "" {
			return errors.New("E121").
				WithDetail("storage.bucket is required for the s3 driver")
		}
	default:
		return errors.New("E121").
			WithDetail("Unknown storage.driver " + strconv.Quote(c.Storage.Driver)).
			WithSuggestion("Use one of memory, file, sqlite, s3").
			SuggestClosest(c.Storage.Driver, []string{kv.DriverMemory, kv.DriverFile, kv.DriverSQLite, kv.DriverS3})
	}

	if _, ok := i18n.Parse(c.Locale.Default); !ok {
		return errors.New("E121").
			WithDetail("locale.default must be zh-CN or en, got " + strconv.Quote(c.Locale.Default))
	}

	if c.Viewport.Width < 0 {
		return errors.New("E121").
			WithDetail("viewport.width must not be negative")
	}

	for name, width := range c.Breakpoints {
		if width <= 0 {
			return errors.New("E121").
				WithDetail("breakpoint " + strconv.Quote(name) + " must have a positive width")
		}
	}
	if len(c.Breakpoints) > 0 {
		if _, ok := c.Breakpoints["sm"]; !ok {
			return errors.New("E121").
				WithDetail(`breakpoints must define "sm"; the mobile flag is derived from it`)
		}
	}

	if _, err := c.ReloadDelay(); err != nil {
		return err
	}
	return nil
}

// ReloadDelay parses Reload.Delay.
func (c *Config) ReloadDelay() (time.Duration, error) {
	d, err := time.ParseDuration(c.Reload.Delay)
	if err != nil {
		return 0, errors.New("E121").
			WithDetail("reload.delay must be a duration like \"300ms\"").
			Wrap(err)
	}
	return d, nil
}

// DefaultLocale returns the configured default locale, falling back to
// i18n.Default when the value is unsupported.
func (c *Config) DefaultLocale() i18n.Locale {
	if l, ok := i18n.Parse(c.Locale.Default); ok {
		return l
	}
	return i18n.Default
}

// BreakpointTable returns the configured table, or Tailwind if none is set.
func (c *Config) BreakpointTable() breakpoint.Table {
	if len(c.Breakpoints) == 0 {
		return breakpoint.Tailwind
	}
	return breakpoint.TableFromMap(c.Breakpoints)
}

// StorageOptions converts the storage section into kv.Open options.
// Relative paths resolve against the config file's directory.
func (c *Config) StorageOptions() kv.Options {
	path := c.Storage.Path
	if path != "" && !filepath.IsAbs(path) && c.Dir() != "" {
		path = filepath.Join(c.Dir(), path)
	}
	return kv.Options{
		Driver:   c.Storage.Driver,
		Path:     path,
		Table:    c.Storage.Table,
		Bucket:   c.Storage.Bucket,
		Prefix:   c.Storage.Prefix,
		Region:   c.Storage.Region,
		Endpoint: c.Storage.Endpoint,
	}
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}
