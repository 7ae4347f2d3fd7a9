// ABOUTME: HTTP server assembling the router, middleware, and handlers
// ABOUTME: Routes are versionless; CORS is open for local client use

package api

import (
	"context"
	"net/http"
	"time"

	"pacereader-api/api/handlers"
	"pacereader-api/api/middleware"
	"pacereader-api/core/feed"
	"pacereader-api/core/interfaces"
	"pacereader-api/core/reading"
	"pacereader-api/pkg/config"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
)

// RouteRegistrar is implemented by every handler group
type RouteRegistrar interface {
	RegisterRoutes(r chi.Router)
}

// Server wraps the HTTP server with its configured router
type Server struct {
	httpServer *http.Server
	logger     interfaces.Logger
}

// NewServer builds the router and wires middleware around the given
// handler groups.
func NewServer(cfg config.ServerConfig, logger interfaces.Logger, registrars ...RouteRegistrar) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestLoggingMiddleware(logger))
	router.Use(middleware.RateLimitMiddleware(middleware.NewRateLimiter(20, 40)))
	router.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	for _, registrar := range registrars {
		registrar.RegisterRoutes(router)
	}

	return &Server{
		httpServer: &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: time.Duration(cfg.FetchTimeout+15) * time.Second,
		},
		logger: logger,
	}
}

// Handler exposes the router, for tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start blocks serving requests until Shutdown is called
func (s *Server) Start() error {
	s.logger.Info("Server listening", map[string]interface{}{
		"addr": s.httpServer.Addr,
	})

	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests and stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handlers builds the standard handler set from application services
func Handlers(
	extractor interfaces.ExtractionService,
	summarizer interfaces.Summarizer,
	deps interfaces.Dependencies,
	sessions *reading.Manager,
	feeds *feed.Service,
) []RouteRegistrar {
	return []RouteRegistrar{
		handlers.NewArticleHandler(extractor, summarizer, deps, sessions),
		handlers.NewSettingsHandler(deps.Storage, deps.Logger),
		handlers.NewProgressHandler(deps.Storage),
		handlers.NewSessionHandler(sessions),
		handlers.NewDiscoverHandler(feeds),
	}
}
