package appstore

import (
	"log/slog"

	"github.com/vango-dev/appstore/internal/telemetry"
	"github.com/vango-dev/appstore/pkg/breakpoint"
	"github.com/vango-dev/appstore/pkg/i18n"
	"github.com/vango-dev/appstore/pkg/kv"
)

// DefaultStorageKey is the key the locale persists under.
const DefaultStorageKey = "lang"

// DefaultViewportWidth is the width used when no breakpoints are supplied.
const DefaultViewportWidth = 1280

// Option configures a Store.
type Option func(*options)

type options struct {
	storage       kv.Store
	activator     i18n.Activator
	breakpoints   *breakpoint.Breakpoints
	logger        *slog.Logger
	telemetry     *telemetry.Telemetry
	storageKey    string
	defaultLocale i18n.Locale
}

// WithStorage sets the key-value store the locale persists to.
// The caller keeps ownership; Close does not close it.
func WithStorage(s kv.Store) Option {
	return func(o *options) {
		o.storage = s
	}
}

// WithActivator sets the collaborator that switches the active catalog.
func WithActivator(a i18n.Activator) Option {
	return func(o *options) {
		o.activator = a
	}
}

// WithBreakpoints sets the breakpoint provider the mobile flag derives from.
// The caller keeps ownership; Close does not close it.
func WithBreakpoints(b *breakpoint.Breakpoints) Option {
	return func(o *options) {
		o.breakpoints = b
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithTelemetry sets the metrics and tracing sink.
func WithTelemetry(t *telemetry.Telemetry) Option {
	return func(o *options) {
		o.telemetry = t
	}
}

// WithStorageKey overrides the storage key for the locale.
func WithStorageKey(key string) Option {
	return func(o *options) {
		if key != "" {
			o.storageKey = key
		}
	}
}

// WithDefaultLocale sets the locale used when nothing valid is persisted.
// Unsupported values are ignored.
func WithDefaultLocale(l i18n.Locale) Option {
	return func(o *options) {
		if l.Valid() {
			o.defaultLocale = l
		}
	}
}
