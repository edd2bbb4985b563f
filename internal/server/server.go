// Package server provides the HTTP server and routing for tickerdeck. It is
// the presentation boundary: every endpoint serves or mutates pure-data view
// models; rendering happens entirely on the client.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"tickerdeck/internal/dashboard"
	"tickerdeck/internal/events"
)

// Config holds server configuration
type Config struct {
	Log     zerolog.Logger
	Port    int
	DevMode bool
	Session *dashboard.Session
	Bus     *events.Bus
}

// Server represents the HTTP server
type Server struct {
	router  *chi.Mux
	server  *http.Server
	log     zerolog.Logger
	session *dashboard.Session
	bus     *events.Bus
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		log:     cfg.Log.With().Str("component", "server").Logger(),
		session: cfg.Session,
		bus:     cfg.Bus,
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // streaming endpoints manage their own deadlines
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if devMode {
		s.log.Info().Msg("Dev mode enabled")
	}
}

// loggingMiddleware logs each request with method, path, status, and timing
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("Request")
	})
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	dashboardHandlers := NewHandlers(s.session, s.log)
	systemHandlers := NewSystemHandlers(s.log)
	eventsStream := NewEventsStreamHandler(s.bus, s.log)
	wsStream := NewWSHandler(s.bus, s.log)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/health", systemHandlers.HandleHealth)
		r.Get("/system/info", systemHandlers.HandleSystemInfo)

		r.Get("/dashboard", dashboardHandlers.HandleGetDashboard)
		r.Get("/series", dashboardHandlers.HandleGetSeries)
		r.Get("/portfolio", dashboardHandlers.HandleGetPortfolio)

		r.Route("/orders", func(r chi.Router) {
			r.Put("/draft", dashboardHandlers.HandleUpdateDraft)
			r.Post("/confirm", dashboardHandlers.HandleOpenConfirmation)
			r.Post("/commit", dashboardHandlers.HandleCommit)
			r.Post("/cancel", dashboardHandlers.HandleCancel)
			r.Get("/trades", dashboardHandlers.HandleGetTrades)
		})

		r.Post("/layout/move", dashboardHandlers.HandleMoveWidget)

		r.Get("/news", dashboardHandlers.HandleGetNews)
		r.Post("/news/more", dashboardHandlers.HandleLoadMoreNews)

		r.Get("/events/stream", eventsStream.ServeHTTP)
		r.Get("/ws", wsStream.ServeHTTP)
	})
}

// Router exposes the configured router, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start begins listening for HTTP requests
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("HTTP server starting")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("HTTP server shutting down")
	return s.server.Shutdown(ctx)
}
