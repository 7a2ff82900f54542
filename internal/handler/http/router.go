package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cartwheel-io/storefront/internal/cart"
	"github.com/cartwheel-io/storefront/internal/catalog"
	"github.com/cartwheel-io/storefront/internal/service"
	"github.com/cartwheel-io/storefront/pkg/health"
	"github.com/cartwheel-io/storefront/pkg/middleware"
)

// RouterConfig carries the router's tunables from the application config.
type RouterConfig struct {
	Environment        string
	CORSAllowedOrigins []string
	PprofAllowedCIDRs  []string
	StreamHeartbeat    time.Duration
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	cartService *service.CartService,
	cat *catalog.Catalog,
	store *cart.Store,
	healthHandler *health.Handler,
	logger *slog.Logger,
	cfg RouterConfig,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware. The request timeout is applied per route group
	// below instead of globally: the stream endpoint holds its connection
	// open until the client goes away.
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Environment:    cfg.Environment,
	}))
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Pprof debug endpoints with IP allowlist.
	middleware.RegisterPprof(r, cfg.PprofAllowedCIDRs, logger)

	cartHandler := NewCartHandler(cartService, logger)
	catalogHandler := NewCatalogHandler(cat, logger)
	streamHandler := NewStreamHandler(store, logger, cfg.StreamHeartbeat)

	r.Route("/api/v1", func(r chi.Router) {
		// Catalog endpoints. The demo data never changes at runtime, so
		// responses are safe to cache briefly.
		r.Group(func(r chi.Router) {
			r.Use(chimw.Timeout(30 * time.Second))
			r.Use(middleware.CacheControl(300))

			r.Get("/products", catalogHandler.ListProducts)
			r.Get("/products/{idOrSlug}", catalogHandler.GetProduct)
			r.Get("/categories", catalogHandler.ListCategories)
		})

		// Cart endpoints.
		r.Group(func(r chi.Router) {
			r.Use(chimw.Timeout(30 * time.Second))
			r.Use(ContentTypeJSON)

			r.Get("/cart", cartHandler.GetCart)
			r.Delete("/cart", cartHandler.ClearCart)

			r.Post("/cart/items", cartHandler.AddItem)
			r.Put("/cart/items/{productID}", cartHandler.UpdateQuantity)
			r.Delete("/cart/items/{productID}", cartHandler.RemoveItem)
		})

		// Live cart feed, outside the timeout group.
		r.Get("/cart/stream", streamHandler.ServeHTTP)
	})

	return r
}
