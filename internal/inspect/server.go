package inspect

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/appstore/internal/errors"
	"github.com/vango-dev/appstore/pkg/appstore"
	"github.com/vango-dev/appstore/pkg/i18n"
)

// Config configures a Server.
type Config struct {
	// Registry is exposed at /metrics. Nil disables the route.
	Registry *prometheus.Registry

	// Catalog resolves the document title sent on locale changes. Optional.
	Catalog *i18n.Catalog

	// ReloadDelay is used when POST /reload has no delay parameter.
	ReloadDelay time.Duration

	// CheckOrigin filters WebSocket upgrades. Nil allows every origin.
	CheckOrigin func(*http.Request) bool

	// WriteTimeout bounds each WebSocket write. Zero means DefaultWriteTimeout.
	WriteTimeout time.Duration

	Logger *slog.Logger
}

// Server is the inspector HTTP handler for one store.
type Server struct {
	store  *appstore.Store
	config Config
	logger *slog.Logger
	hub    *Hub
	router chi.Router
}

// New creates an inspector for store. Store changes are pushed to WebSocket
// clients until the store is closed.
func New(store *appstore.Store, cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		store:  store,
		config: cfg,
		logger: logger.With("component", "inspect"),
		hub:    NewHub(cfg.CheckOrigin, cfg.WriteTimeout),
	}

	store.OnChange(func(snap appstore.Snapshot) {
		s.hub.Broadcast(Message{Type: MessageSnapshot, State: &snap})
	})
	store.OnLocaleChange(func(l i18n.Locale) {
		s.hub.Broadcast(Message{Type: MessageLocale, Title: s.title()})
	})
	store.Scope().OnCleanup(s.hub.Close)

	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/state", s.handleState)
	r.Put("/viewport", s.handleViewport)
	r.Get("/locale", s.handleGetLocale)
	r.Put("/locale", s.handleSetLocale)
	r.Post("/reload", s.handleReload)

	r.Post("/drawer/open", s.mutate(s.store.OpenThemeDrawer))
	r.Post("/drawer/close", s.mutate(s.store.CloseThemeDrawer))
	r.Post("/sider/toggle", s.mutate(s.store.ToggleSiderCollapsed))
	r.Post("/full-content/toggle", s.mutate(s.store.ToggleFullContent))

	r.Get("/ws", s.handleWebSocket)

	if s.config.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.config.Registry, promhttp.HandlerOpts{}))
	}
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Hub returns the WebSocket hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

func (s *Server) title() string {
	if s.config.Catalog == nil {
		return ""
	}
	return s.config.Catalog.Sprintf(i18n.KeyTitle)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

type viewportRequest struct {
	Width int `json:"width"`
}

func (s *Server) handleViewport(w http.ResponseWriter, r *http.Request) {
	var req viewportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.Newf(errors.CategoryCLI, "invalid viewport body: %v", err))
		return
	}
	s.store.Breakpoints().SetWidth(req.Width)
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

type localeResponse struct {
	Locale  i18n.Locale   `json:"locale"`
	Title   string        `json:"title,omitempty"`
	Options []i18n.Option `json:"options"`
}

func (s *Server) handleGetLocale(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, localeResponse{
		Locale:  s.store.Locale().Get(),
		Title:   s.title(),
		Options: s.store.LocaleOptions(),
	})
}

type localeRequest struct {
	Locale string `json:"locale"`
}

func (s *Server) handleSetLocale(w http.ResponseWriter, r *http.Request) {
	var req localeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.Newf(errors.CategoryCLI, "invalid locale body: %v", err))
		return
	}

	if err := s.store.ChangeLocale(r.Context(), i18n.Locale(req.Locale)); err != nil {
		status := http.StatusInternalServerError
		if errors.HasCode(err, "E100") {
			status = http.StatusBadRequest
		}
		s.logger.Warn("locale change failed", "locale", req.Locale, "error", err)
		writeError(w, status, err)
		return
	}
	s.handleGetLocale(w, r)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	delay := s.config.ReloadDelay
	if raw := r.URL.Query().Get("delay"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, errors.New("E121").
				WithDetail("delay must be a duration like \"300ms\"").
				Wrap(err))
			return
		}
		delay = d
	}

	if err := s.store.ReloadPage(r.Context(), delay); err != nil {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

func (s *Server) mutate(fn func()) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fn()
		writeJSON(w, http.StatusOK, s.store.Snapshot())
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Snapshot()
	s.hub.Serve(w, r, Message{Type: MessageSnapshot, State: &snap})
}

type errorResponse struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	e := errors.FromError(err, "")
	resp := errorResponse{Code: e.Code, Message: e.Message, Detail: e.Detail}
	if e.Wrapped != nil {
		resp.Message += ": " + e.Wrapped.Error()
	}
	writeJSON(w, status, resp)
}
