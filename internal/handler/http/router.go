package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/storefront/internal/session"
	"github.com/utafrali/storefront/pkg/health"
	"github.com/utafrali/storefront/pkg/middleware"
)

// catalogMaxAge is how long clients may cache catalog reads, in seconds.
const catalogMaxAge = 60

// RouterOptions holds the optional parts of the router.
type RouterOptions struct {
	// Metrics instruments every request. Nil disables instrumentation.
	Metrics *middleware.Metrics
	// Gatherer backs /metrics. Defaults to prometheus.DefaultGatherer.
	Gatherer     prometheus.Gatherer
	CORS         middleware.CORSConfig
	PprofEnabled bool
	PprofCIDRs   []string
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	s *session.Session,
	healthHandler *health.Handler,
	logger *slog.Logger,
	opts RouterOptions,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Handler)
	}
	r.Use(middleware.Tracing())
	r.Use(middleware.RequestLogger(logger, s.ID()))
	r.Use(middleware.CORS(opts.CORS))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())

	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	if opts.PprofEnabled {
		middleware.RegisterPprof(r, opts.PprofCIDRs, logger)
	}

	products := NewProductHandler(s, logger)
	browse := NewBrowseHandler(s, logger)
	cart := NewCartHandler(s, logger)
	wishlist := NewWishlistHandler(s, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Group(func(r chi.Router) {
			r.Use(middleware.PublicCache(catalogMaxAge))

			r.Get("/home", products.Home)
			r.Get("/products", products.List)
			r.Get("/products/{id}", products.Get)
			r.Get("/products/{id}/recommended", products.Recommended)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.NoStore())

			r.Get("/browse", browse.Get)
			r.Patch("/browse", browse.Update)
			r.Post("/browse/categories/toggle", browse.ToggleCategory)
			r.Post("/browse/reset", browse.Reset)

			r.Get("/cart", cart.GetCart)
			r.Delete("/cart", cart.ClearCart)
			r.Post("/cart/toggle", cart.ToggleOpen)
			r.Post("/cart/items", cart.AddItem)
			r.Put("/cart/items/{productId}", cart.UpdateItemQuantity)
			r.Delete("/cart/items/{productId}", cart.RemoveItem)

			r.Get("/wishlist", wishlist.Get)
			r.Delete("/wishlist", wishlist.Clear)
			r.Post("/wishlist/items", wishlist.Add)
			r.Get("/wishlist/items/{productId}", wishlist.Contains)
			r.Delete("/wishlist/items/{productId}", wishlist.Remove)
			r.Post("/wishlist/items/{productId}/toggle", wishlist.Toggle)
		})
	})

	return r
}
