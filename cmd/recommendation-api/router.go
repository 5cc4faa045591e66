// Package main provides the API router setup.
package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/shopsense-ai/recommendation-engine/cmd/recommendation-api/handlers"
	"github.com/shopsense-ai/recommendation-engine/cmd/recommendation-api/middleware"
	"github.com/shopsense-ai/recommendation-engine/internal/catalog"
	"github.com/shopsense-ai/recommendation-engine/internal/observability"
	"github.com/shopsense-ai/recommendation-engine/internal/recommend"
)

// RouterConfig holds router-level settings.
type RouterConfig struct {
	RequestTimeout time.Duration
	AllowedOrigins []string
}

// NewRouter creates the API router with all routes configured.
func NewRouter(logger *observability.Logger, store *catalog.Store, engine *recommend.Engine, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Trace)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(chimiddleware.Timeout(cfg.RequestTimeout))

	// Health check. An empty catalog means the service is degraded, not down.
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		status := "healthy"
		httpStatus := http.StatusOK
		if store.Len() == 0 {
			status = "degraded"
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(httpStatus)
		_, _ = w.Write([]byte(`{"status":"` + status + `","service":"recommendation-engine"}`))
	})

	productsHandler := handlers.NewProductsHandler(logger, store)
	recommendationsHandler := handlers.NewRecommendationsHandler(logger, engine)

	r.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", productsHandler.List)
			r.Get("/search", productsHandler.Search)
			r.Post("/filter", productsHandler.Filter)
			r.Get("/{productID}", productsHandler.Get)
		})

		r.Get("/categories", productsHandler.Categories)
		r.Get("/brands", productsHandler.Brands)

		r.Post("/recommendations", recommendationsHandler.Generate)
	})

	return r
}
