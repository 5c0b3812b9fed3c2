// Package web provides the HTTP server and handlers for the admin console.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/JonMunkholm/console/internal/config"
	"github.com/JonMunkholm/console/internal/console"
	"github.com/JonMunkholm/console/internal/core"
	"github.com/JonMunkholm/console/internal/web/middleware"
)

// Server is the HTTP server for the admin console.
type Server struct {
	service *console.Service
	session *console.Session
	exports *core.ExportLimiter
	cfg     *config.Config
	router  *chi.Mux
	server  *http.Server

	limiters []*rateLimiter

	closing   chan struct{} // closed by Shutdown to end notification streams
	closeOnce sync.Once
}

// NewServer creates a Server over service with a single shared session.
func NewServer(service *console.Service, cfg *config.Config) *Server {
	s := &Server{
		service: service,
		session: service.NewSession(),
		exports: core.NewExportLimiter(cfg.Export.MaxConcurrent, cfg.Export.MaxWaitTime),
		cfg:     cfg,
		router:  chi.NewRouter(),
		closing: make(chan struct{}),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(chimw.RequestID)
	s.router.Use(middleware.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(middleware.Logger)
	s.router.Use(chimw.Recoverer)
	s.router.Use(chimw.Compress(5))

	s.router.Use(securityHeaders(s.cfg.Security.EnableCSP))

	if s.cfg.Rate.Enabled {
		s.router.Use(s.newRateLimiter(s.cfg.Rate.RequestsPerMinute, time.Minute).middleware)
	}
}

// setupRoutes configures all HTTP routes. Everything except the notification
// stream runs under the request timeout.
func (s *Server) setupRoutes() {
	timeout := chimw.Timeout(s.cfg.Server.RequestTimeout)

	// Pages
	s.router.Group(func(r chi.Router) {
		r.Use(timeout)
		r.Get("/", s.handleDashboard)
		r.Get("/audit-log", s.handleAuditLogPage)
		r.Get("/{tableKey}", s.handleTablePage)
	})

	s.router.Route("/api", func(api chi.Router) {
		api.Get("/notifications/stream", s.handleNotificationStream)

		api.Group(func(r chi.Router) {
			r.Use(timeout)

			r.Get("/tables", s.handleListTables)
			r.Get("/tables/{tableKey}", s.handleTableData)

			exportRoutes := r.With()
			if s.cfg.Rate.Enabled {
				exportRoutes = r.With(s.newRateLimiter(s.cfg.Rate.ExportLimit, time.Minute).middleware)
			}
			exportRoutes.Get("/export/{tableKey}", s.handleExport)

			r.Post("/products", s.handleCreateProduct)
			r.Put("/products/{id}", s.handleUpdateProduct)
			r.Delete("/products/{id}", s.handleDeleteProduct)

			r.Get("/orders/{id}", s.handleOrderDetails)
			r.Post("/orders/{id}/status", s.handleOrderStatus)

			r.Get("/customers/stats", s.handleCustomerStats)
			r.Get("/customers/{id}", s.handleCustomerDetails)
			r.Post("/customers/{id}/status", s.handleCustomerStatus)

			r.Get("/notifications", s.handleListNotifications)
			r.Delete("/notifications/{id}", s.handleDismissNotification)

			r.Get("/audit-log", s.handleAuditLog)
		})
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	slog.Info("starting server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown ends notification streams, stops accepting requests, waits for
// in-flight exports and stops the rate limiter sweepers.
func (s *Server) Shutdown(ctx context.Context) error {
	s.closeOnce.Do(func() { close(s.closing) })
	for _, rl := range s.limiters {
		rl.stop()
	}
	if s.server == nil {
		return nil
	}
	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	if err := s.exports.WaitForDrain(ctx); err != nil {
		slog.Warn("exports still running at shutdown", "tables", s.exports.Active(), "error", err)
		return err
	}
	return nil
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Session returns the session driven by the HTTP handlers.
func (s *Server) Session() *console.Session {
	return s.session
}

// securityHeaders adds security headers to all responses.
func securityHeaders(enableCSP bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Prevent MIME type sniffing
			w.Header().Set("X-Content-Type-Options", "nosniff")

			// Prevent clickjacking
			w.Header().Set("X-Frame-Options", "DENY")

			// Restrict resource loading; HTMX is loaded from unpkg
			if enableCSP {
				w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self' https://unpkg.com; style-src 'self' 'unsafe-inline'; img-src 'self' data:")
			}

			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

			next.ServeHTTP(w, r)
		})
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	slog.Warn("http error", "status", status, "message", message)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, `{"error":%q}`, message)
}

// writeJSON encodes v as JSON with the given status.
// Logs encoding errors since headers are already sent.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
