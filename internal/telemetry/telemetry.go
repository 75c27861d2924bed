// Package telemetry holds the Prometheus metrics and OpenTelemetry tracer
// used by the app store.
//
// Metrics collected:
//   - appstore_reloads_total: Counter of reload pulses started
//   - appstore_reloads_in_flight: Gauge of reloads waiting out their delay
//   - appstore_locale_changes_total: Counter of committed locale changes by locale
//   - appstore_locale_errors_total: Counter of failed locale changes by stage
//   - appstore_sider_forced_collapses_total: Counter of collapses forced by the mobile breakpoint
package telemetry

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name for app store spans.
const defaultTracerName = "github.com/vango-dev/appstore"

// Config configures a Telemetry.
type Config struct {
	// Namespace is the metrics namespace (default: "appstore").
	Namespace string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: a fresh registry per Telemetry, so several stores can coexist.
	Registry *prometheus.Registry

	// TracerName is the name of the tracer.
	TracerName string
}

// Option configures a Telemetry.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

// WithTracerName sets the tracer name.
func WithTracerName(name string) Option {
	return func(c *Config) {
		c.TracerName = name
	}
}

// Telemetry records app store metrics and spans.
type Telemetry struct {
	registry *prometheus.Registry
	tracer   trace.Tracer

	reloads         prometheus.Counter
	reloadsInFlight prometheus.Gauge
	localeChanges   *prometheus.CounterVec
	localeErrors    *prometheus.CounterVec
	forcedCollapses prometheus.Counter
}

// New creates a Telemetry and registers its metrics.
func New(opts ...Option) *Telemetry {
	cfg := Config{
		Namespace:  "appstore",
		TracerName: defaultTracerName,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.NewRegistry()
	}

	factory := promauto.With(cfg.Registry)

	return &Telemetry{
		registry: cfg.Registry,
		tracer:   otel.Tracer(cfg.TracerName),

		reloads: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Name:        "reloads_total",
			Help:        "Total number of reload pulses started",
			ConstLabels: cfg.ConstLabels,
		}),

		reloadsInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   cfg.Namespace,
			Name:        "reloads_in_flight",
			Help:        "Number of reloads waiting out their delay",
			ConstLabels: cfg.ConstLabels,
		}),

		localeChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Name:        "locale_changes_total",
			Help:        "Total number of committed locale changes",
			ConstLabels: cfg.ConstLabels,
		}, []string{"locale"}),

		localeErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Name:        "locale_errors_total",
			Help:        "Total number of failed locale changes by stage",
			ConstLabels: cfg.ConstLabels,
		}, []string{"stage"}),

		forcedCollapses: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Name:        "sider_forced_collapses_total",
			Help:        "Total number of sider collapses forced by the mobile breakpoint",
			ConstLabels: cfg.ConstLabels,
		}),
	}
}

// Registry returns the registry the metrics are registered with.
func (t *Telemetry) Registry() *prometheus.Registry {
	return t.registry
}

// StartSpan starts a span named name.
func (t *Telemetry) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// RecordError marks span as failed with err.
func RecordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// ReloadStarted records the start of a reload pulse.
func (t *Telemetry) ReloadStarted() {
	t.reloads.Inc()
	t.reloadsInFlight.Inc()
}

// ReloadFinished records the end of a reload pulse, successful or not.
func (t *Telemetry) ReloadFinished() {
	t.reloadsInFlight.Dec()
}

// LocaleChanged records a committed locale change.
func (t *Telemetry) LocaleChanged(locale string) {
	t.localeChanges.WithLabelValues(locale).Inc()
}

// LocaleFailed records a locale change that failed at stage
// ("activate" or "persist").
func (t *Telemetry) LocaleFailed(stage string) {
	t.localeErrors.WithLabelValues(stage).Inc()
}

// SiderForcedCollapse records a collapse forced by the mobile breakpoint.
func (t *Telemetry) SiderForcedCollapse() {
	t.forcedCollapses.Inc()
}
