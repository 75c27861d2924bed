package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCounters(t *testing.T) {
	tel := New()

	tel.ReloadStarted()
	tel.ReloadStarted()
	tel.ReloadFinished()
	tel.LocaleChanged("en")
	tel.LocaleChanged("en")
	tel.LocaleFailed("persist")
	tel.SiderForcedCollapse()

	if got := testutil.ToFloat64(tel.reloads); got != 2 {
		t.Errorf("reloads = %v, want 2", got)
	}
	if got := testutil.ToFloat64(tel.reloadsInFlight); got != 1 {
		t.Errorf("reloadsInFlight = %v, want 1", got)
	}
	if got := testutil.ToFloat64(tel.localeChanges.WithLabelValues("en")); got != 2 {
		t.Errorf("localeChanges{en} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(tel.localeErrors.WithLabelValues("persist")); got != 1 {
		t.Errorf("localeErrors{persist} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(tel.forcedCollapses); got != 1 {
		t.Errorf("forcedCollapses = %v, want 1", got)
	}
}

func TestNamespaceAndRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	tel := New(WithRegistry(reg), WithNamespace("ui"), WithConstLabels(prometheus.Labels{"app": "admin"}))
	tel.ReloadStarted()

	if tel.Registry() != reg {
		t.Fatal("Registry() should return the configured registry")
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "ui_reloads_total" {
			found = true
		}
	}
	if !found {
		t.Error("ui_reloads_total not registered")
	}
}

func TestIndependentRegistries(t *testing.T) {
	// Two instances must not collide on registration.
	New()
	New()
}

func TestStartSpan(t *testing.T) {
	tel := New(WithTracerName("test"))
	ctx, span := tel.StartSpan(context.Background(), "op")
	if ctx == nil || span == nil {
		t.Fatal("StartSpan returned nil")
	}
	RecordError(span, errors.New("boom"))
	span.End()
}
