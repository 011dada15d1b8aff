// Package api provides the HTTP API server and handlers for the catalog
// normalization service.
package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/normkit/normalize-server/internal/config"
	"github.com/normkit/normalize-server/internal/logger"
	"github.com/normkit/normalize-server/internal/ratelimit"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	services      *Services
	router        *chi.Mux
	api           huma.API
	logger        *logger.Logger
	ingestLimiter *ratelimit.KeyedRateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(cfg *config.Config, services *Services, log *logger.Logger) *Server {
	s := &Server{
		services:      services,
		router:        chi.NewRouter(),
		logger:        log,
		ingestLimiter: ratelimit.New(cfg.Ingest.RateLimitRPS, cfg.Ingest.RateLimitBurst),
	}

	s.setupMiddleware()

	s.api = humachi.New(s.router, huma.DefaultConfig("Catalog Normalization API", "1.0.0"))
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerIngestRoutes()
	s.registerReviewRoutes()
	s.registerModelRoutes()
	s.registerVocabularyRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	s.router.Use(s.ingestRateLimit)
}
