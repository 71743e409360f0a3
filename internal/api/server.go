// Package api exposes the recommendation pipeline over HTTP: a JSON API
// documented through huma and a small HTML form.
package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/listenupapp/bookrec/internal/config"
	"github.com/listenupapp/bookrec/internal/logger"
	"github.com/listenupapp/bookrec/internal/ratelimit"
	"github.com/listenupapp/bookrec/internal/service"
)

// limiterIdleTTL is how long a client's bucket survives without traffic.
const limiterIdleTTL = 10 * time.Minute

// Server holds dependencies for HTTP handlers.
type Server struct {
	router  *chi.Mux
	api     huma.API
	cfg     config.ServerConfig
	service *service.RecommendationService
	limiter *ratelimit.KeyedRateLimiter
	logger  *logger.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(cfg config.ServerConfig, svc *service.RecommendationService, log *logger.Logger) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		cfg:     cfg,
		service: svc,
		limiter: ratelimit.PerMinute(cfg.RateLimit, cfg.RateBurst, limiterIdleTTL),
		logger:  log.WithComponent("api"),
	}

	// Middleware must be registered before humachi mounts its routes.
	s.setupMiddleware()

	humaConfig := huma.DefaultConfig("Book Recommendation API", "1.0.0")
	humaConfig.Info.Description = "Recommends books by title match, genre overlap and review sentiment."
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API returns the huma API, used to export the OpenAPI document.
func (s *Server) API() huma.API {
	return s.api
}

// Close releases background resources held by the server.
func (s *Server) Close() {
	s.limiter.Stop()
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.instrument)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
	s.router.Use(s.rateLimit)
}

// rateLimit applies the per-client limiter to everything except probes.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	limited := RateLimitMiddleware(s.limiter, s.logger)(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/health", "/metrics":
			next.ServeHTTP(w, r)
		default:
			limited.ServeHTTP(w, r)
		}
	})
}

func (s *Server) setupRoutes() {
	s.registerHealthRoutes()
	s.registerRecommendationRoutes()
	s.registerWebRoutes()

	s.router.Handle("/metrics", promhttp.Handler())
}
