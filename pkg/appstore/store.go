package appstore

import (
	"context"
	"log/slog"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/vango-dev/appstore/internal/errors"
	"github.com/vango-dev/appstore/internal/telemetry"
	"github.com/vango-dev/appstore/pkg/breakpoint"
	"github.com/vango-dev/appstore/pkg/i18n"
	"github.com/vango-dev/appstore/pkg/kv"
	"github.com/vango-dev/appstore/pkg/reactive"
)

// MobileBreakpoint is the breakpoint below which the viewport counts as mobile.
const MobileBreakpoint = "sm"

// Store is the application shell's UI state container.
// Construct one per application with New and release it with Close.
type Store struct {
	id         string
	log        *slog.Logger
	tel        *telemetry.Telemetry
	storage    kv.Store
	activator  i18n.Activator
	bp         *breakpoint.Breakpoints
	storageKey string

	// scope owns every subscription the store installs.
	scope *reactive.Scope

	themeDrawerVisible *reactive.BoolSignal
	reloadFlag         *reactive.BoolSignal
	fullContent        *reactive.BoolSignal
	contentXScrollable *reactive.BoolSignal
	siderCollapsed     *reactive.BoolSignal
	mixSiderFixed      *reactive.BoolSignal

	locale *reactive.Signal[i18n.Locale]
	// committed follows locale, but only after activation and persistence succeed.
	committed *reactive.Signal[i18n.Locale]

	isMobile reactive.ReadOnly[bool]

	closeOnce sync.Once
}

// New creates a store. The locale is read from storage (falling back to the
// default locale when absent or invalid) and activated once. A watcher on
// the mobile flag is installed in the store scope.
func New(ctx context.Context, opts ...Option) (*Store, error) {
	o := options{
		storageKey:    DefaultStorageKey,
		defaultLocale: i18n.Default,
	}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Store{
		id:         uuid.NewString(),
		log:        o.logger,
		tel:        o.telemetry,
		storage:    o.storage,
		activator:  o.activator,
		bp:         o.breakpoints,
		storageKey: o.storageKey,
		scope:      reactive.NewScope(nil),

		themeDrawerVisible: reactive.NewBoolSignal(false),
		reloadFlag:         reactive.NewBoolSignal(true),
		fullContent:        reactive.NewBoolSignal(false),
		contentXScrollable: reactive.NewBoolSignal(false),
		siderCollapsed:     reactive.NewBoolSignal(false),
		mixSiderFixed:      reactive.NewBoolSignal(false),
	}

	if s.log == nil {
		s.log = slog.Default()
	}
	s.log = s.log.With("store_id", s.id)

	if s.tel == nil {
		s.tel = telemetry.New()
	}

	// Collaborators the store creates itself are released with it.
	if s.storage == nil {
		mem := kv.NewMemoryStore()
		s.storage = mem
		s.scope.OnCleanup(func() { _ = mem.Close() })
	}
	if s.activator == nil {
		s.activator = i18n.NewCatalog()
	}
	if s.bp == nil {
		bp := breakpoint.New(breakpoint.Tailwind, DefaultViewportWidth)
		s.bp = bp
		s.scope.OnCleanup(bp.Close)
	}

	initial := s.loadLocale(ctx, o.defaultLocale)
	s.locale = reactive.NewSignal(initial)
	s.committed = reactive.NewSignal(initial)

	if err := s.activator.Activate(initial); err != nil {
		s.scope.Dispose()
		return nil, errors.New("E101").
			WithDetail("initial locale " + initial.String()).
			Wrap(err)
	}

	isMobile, err := s.bp.Smaller(MobileBreakpoint)
	if err != nil {
		s.scope.Dispose()
		return nil, err
	}
	s.scope.OnCleanup(isMobile.Dispose)
	s.isMobile = isMobile

	reactive.Watch(s.scope, s.isMobile, s.collapseOnMobile, reactive.Immediate())

	s.log.Debug("app store created", "locale", initial, "mobile", isMobile.Get())
	return s, nil
}

// loadLocale reads the persisted locale. Storage errors are logged and
// treated as absent.
func (s *Store) loadLocale(ctx context.Context, fallback i18n.Locale) i18n.Locale {
	raw, ok, err := s.storage.Get(ctx, s.storageKey)
	if err != nil {
		s.log.Warn("failed to load persisted locale",
			"key", s.storageKey,
			"error", errors.New("E103").Wrap(err),
			"fallback", fallback)
		return fallback
	}
	if !ok {
		return fallback
	}
	l, valid := i18n.Parse(raw)
	if !valid {
		s.log.Warn("ignoring invalid persisted locale",
			"key", s.storageKey,
			"value", raw,
			"fallback", fallback)
		return fallback
	}
	return l
}

func (s *Store) collapseOnMobile(mobile bool) {
	if !mobile {
		return
	}
	if !s.siderCollapsed.Get() {
		s.tel.SiderForcedCollapse()
		s.log.Debug("sider collapsed for mobile viewport")
	}
	s.siderCollapsed.SetTrue()
}

// ID returns the store's unique identifier.
func (s *Store) ID() string {
	return s.id
}

// Scope returns the store scope. Child scopes created under it are
// disposed by Close.
func (s *Store) Scope() *reactive.Scope {
	return s.scope
}

// Breakpoints returns the breakpoint provider the store observes.
func (s *Store) Breakpoints() *breakpoint.Breakpoints {
	return s.bp
}

// ThemeDrawerVisible reports whether the theme drawer is open.
func (s *Store) ThemeDrawerVisible() reactive.ReadOnly[bool] { return s.themeDrawerVisible }

// ReloadFlag is false while a reload is in flight.
func (s *Store) ReloadFlag() reactive.ReadOnly[bool] { return s.reloadFlag }

// FullContent reports whether the content area fills the window.
func (s *Store) FullContent() reactive.ReadOnly[bool] { return s.fullContent }

// ContentXScrollable reports whether the content area scrolls horizontally.
func (s *Store) ContentXScrollable() reactive.ReadOnly[bool] { return s.contentXScrollable }

// SiderCollapsed reports whether the sider is collapsed.
func (s *Store) SiderCollapsed() reactive.ReadOnly[bool] { return s.siderCollapsed }

// MixSiderFixed reports whether the mixed-layout sider is pinned.
func (s *Store) MixSiderFixed() reactive.ReadOnly[bool] { return s.mixSiderFixed }

// Locale returns the in-memory locale.
func (s *Store) Locale() reactive.ReadOnly[i18n.Locale] { return s.locale }

// IsMobile reports whether the viewport is smaller than MobileBreakpoint.
func (s *Store) IsMobile() reactive.ReadOnly[bool] { return s.isMobile }

// OpenThemeDrawer shows the theme drawer.
func (s *Store) OpenThemeDrawer() {
	s.themeDrawerVisible.SetTrue()
}

// CloseThemeDrawer hides the theme drawer.
func (s *Store) CloseThemeDrawer() {
	s.themeDrawerVisible.SetFalse()
}

// ToggleFullContent flips full-content mode.
func (s *Store) ToggleFullContent() {
	s.fullContent.Toggle()
}

// SetContentXScrollable sets horizontal scrolling of the content area.
func (s *Store) SetContentXScrollable(v bool) {
	s.contentXScrollable.Set(v)
}

// SetSiderCollapsed sets the sider collapse state. On a mobile viewport the
// watcher may not let an expand stick.
func (s *Store) SetSiderCollapsed(v bool) {
	s.siderCollapsed.Set(v)
}

// ToggleSiderCollapsed flips the sider collapse state.
func (s *Store) ToggleSiderCollapsed() {
	s.siderCollapsed.Toggle()
}

// SetMixSiderFixed pins or unpins the mixed-layout sider.
func (s *Store) SetMixSiderFixed(v bool) {
	s.mixSiderFixed.Set(v)
}

// ToggleMixSiderFixed flips the mixed-layout sider pin.
func (s *Store) ToggleMixSiderFixed() {
	s.mixSiderFixed.Toggle()
}

// ChangeLocale switches the locale: the in-memory cell is updated first, then
// the activator, then storage. A failing step does not undo earlier ones.
func (s *Store) ChangeLocale(ctx context.Context, lang i18n.Locale) (err error) {
	ctx, span := s.tel.StartSpan(ctx, "appstore.ChangeLocale",
		attribute.String("locale", string(lang)))
	defer func() {
		if err != nil {
			telemetry.RecordError(span, err)
		}
		span.End()
	}()

	if !lang.Valid() {
		supported := make([]string, 0, 2)
		for _, l := range i18n.Supported() {
			supported = append(supported, string(l))
		}
		return errors.New("E100").
			WithDetail("got " + strconv.Quote(string(lang))).
			SuggestClosest(string(lang), supported)
	}

	s.locale.Set(lang)

	if err := s.activator.Activate(lang); err != nil {
		s.tel.LocaleFailed("activate")
		return errors.New("E101").
			WithDetail("locale " + lang.String()).
			Wrap(err)
	}

	if err := s.storage.Set(ctx, s.storageKey, string(lang)); err != nil {
		s.tel.LocaleFailed("persist")
		return errors.New("E102").
			WithDetail("key " + s.storageKey).
			Wrap(err)
	}

	s.tel.LocaleChanged(string(lang))
	s.log.Info("locale changed", "locale", lang)
	s.committed.Set(lang)
	return nil
}

// LocaleOptions returns the selectable locales.
func (s *Store) LocaleOptions() []i18n.Option {
	return i18n.Options()
}

// OnLocaleChange calls fn after each locale change that was both activated
// and persisted. The returned function stops delivery; Close stops it as well.
func (s *Store) OnLocaleChange(fn func(i18n.Locale)) func() {
	return reactive.Watch[i18n.Locale](s.scope, s.committed, fn)
}

// ReloadPage pulses the reload flag: false now, true after delay. A zero or
// negative delay still yields once before raising the flag. If ctx ends
// first, the flag stays false and a coded error wrapping ctx.Err() is
// returned.
func (s *Store) ReloadPage(ctx context.Context, delay time.Duration) (err error) {
	if delay < 0 {
		delay = 0
	}

	ctx, span := s.tel.StartSpan(ctx, "appstore.ReloadPage",
		attribute.Int64("delay_ms", delay.Milliseconds()))
	defer func() {
		if err != nil {
			telemetry.RecordError(span, err)
		}
		span.End()
	}()

	s.tel.ReloadStarted()
	defer s.tel.ReloadFinished()

	s.reloadFlag.SetFalse()
	s.log.Debug("reload started", "delay", delay)

	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-ctx.Done():
			return errors.New("E110").
				WithDetail("waited less than " + delay.String()).
				Wrap(ctx.Err())
		}
	} else {
		runtime.Gosched()
	}

	s.reloadFlag.SetTrue()
	s.log.Debug("reload finished")
	return nil
}

// Close releases every subscription the store installed and the
// collaborators it created itself. It is safe to call more than once.
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		s.scope.Dispose()
		s.log.Debug("app store closed")
	})
	return nil
}

// watchAny calls fn on every change of src within scope, ignoring the value.
func watchAny[T any](scope *reactive.Scope, src reactive.ReadOnly[T], fn func()) {
	reactive.Watch(scope, src, func(T) { fn() })
}
