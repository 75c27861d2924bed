package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/vango-dev/appstore/internal/config"
	"github.com/vango-dev/appstore/internal/errors"
	"github.com/vango-dev/appstore/internal/telemetry"
	"github.com/vango-dev/appstore/pkg/appstore"
	"github.com/vango-dev/appstore/pkg/breakpoint"
	"github.com/vango-dev/appstore/pkg/i18n"
	"github.com/vango-dev/appstore/pkg/kv"
)

// env is everything a command needs to drive a store.
type env struct {
	cfg     *config.Config
	logger  *slog.Logger
	storage kv.Store
	catalog *i18n.Catalog
	bp      *breakpoint.Breakpoints
	tel     *telemetry.Telemetry
	store   *appstore.Store
}

// loadConfig resolves the configuration: an explicit --config path, then
// ./appstore.json, then defaults. Environment overrides apply in every case.
func loadConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)

	switch {
	case path != "":
		if fi, statErr := os.Stat(path); statErr == nil && fi.IsDir() {
			cfg, err = config.Load(path)
		} else {
			cfg, err = config.LoadFile(path)
		}
	case config.Exists("."):
		cfg, err = config.Load(".")
	default:
		cfg, err = config.FromEnv()
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// setup loads configuration, opens storage, and builds a store.
func setup(ctx context.Context, flags *globalFlags) (*env, error) {
	cfg, err := loadConfig(flags.configPath)
	if err != nil {
		return nil, err
	}

	e := &env{
		cfg:     cfg,
		logger:  newLogger(flags.verbose),
		catalog: i18n.NewCatalog(),
		bp:      breakpoint.New(cfg.BreakpointTable(), cfg.Viewport.Width),
		tel:     telemetry.New(telemetry.WithNamespace(cfg.Telemetry.Namespace)),
	}

	e.storage, err = kv.Open(ctx, cfg.StorageOptions())
	if err != nil {
		e.bp.Close()
		return nil, errors.FromError(err, "E130").
			WithSuggestion("Check storage.driver and storage.path in " + config.ConfigFileName)
	}

	e.store, err = appstore.New(ctx,
		appstore.WithStorage(e.storage),
		appstore.WithActivator(e.catalog),
		appstore.WithBreakpoints(e.bp),
		appstore.WithLogger(e.logger),
		appstore.WithTelemetry(e.tel),
		appstore.WithStorageKey(cfg.Locale.Key),
		appstore.WithDefaultLocale(cfg.DefaultLocale()),
	)
	if err != nil {
		_ = e.storage.Close()
		e.bp.Close()
		return nil, err
	}

	e.logger.Debug("store ready",
		"driver", cfg.Storage.Driver,
		"locale", e.store.Locale().Get(),
		"width", cfg.Viewport.Width)
	return e, nil
}

// Close releases the store, then the collaborators it was built on.
func (e *env) Close() error {
	_ = e.store.Close()
	e.bp.Close()
	return e.storage.Close()
}
