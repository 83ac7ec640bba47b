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

	"github.com/ziadkadry99/annoview/internal/logging"
)

// Config holds server configuration.
type Config struct {
	Port     int
	AllowAll bool // allow all CORS origins (dev mode)
}

// Server is the annoview HTTP server. Feature packages mount their routes
// on Router.
type Server struct {
	cfg        Config
	log        zerolog.Logger
	router     chi.Router
	httpServer *http.Server
}

// New creates a server with the shared middleware stack and /healthz.
func New(cfg Config, log zerolog.Logger) *Server {
	s := &Server{
		cfg: cfg,
		log: log.With().Str("component", "server").Logger(),
	}

	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(s.log))
	r.Use(middleware.Recoverer)

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
		corsOpts.AllowCredentials = false
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	return r
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// API returns a sub-router whose handlers are bounded by a request timeout.
// The websocket route must not be mounted here.
func (s *Server) API() chi.Router {
	return s.router.With(middleware.Timeout(60 * time.Second))
}

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.log.Info().Str("addr", addr).Msg("annoview server listening")
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
