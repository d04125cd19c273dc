package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pdadev/trackday-backend/api/controllers"
	addoncontrollers "github.com/pdadev/trackday-backend/api/controllers/addons"
	cartcontrollers "github.com/pdadev/trackday-backend/api/controllers/cart"
	checkoutcontrollers "github.com/pdadev/trackday-backend/api/controllers/checkout"
	ordercontrollers "github.com/pdadev/trackday-backend/api/controllers/orders"
	"github.com/pdadev/trackday-backend/api/middleware"
	"github.com/pdadev/trackday-backend/internal/cart"
	checkoutsvc "github.com/pdadev/trackday-backend/internal/checkout"
	"github.com/pdadev/trackday-backend/internal/orders"
	"github.com/pdadev/trackday-backend/pkg/config"
	"github.com/pdadev/trackday-backend/pkg/db"
	"github.com/pdadev/trackday-backend/pkg/logger"
	"github.com/pdadev/trackday-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	limiter middleware.SyncLimiterStore,
	registry *prometheus.Registry,
	checkoutService checkoutsvc.Service,
	cartService cart.Service,
	ordersRepo orders.Repository,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Every storefront route runs under a checkout session; the
		// middleware mints one when the cookie is absent or invalid.
		r.Use(middleware.CheckoutSession(cfg.Session, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartcontrollers.Fetch(cartService, logg))
			r.Put("/", cartcontrollers.Upsert(cartService, logg))
		})

		syncPolicy := middleware.NewSyncRateLimitPolicy(cfg.Checkout.SyncWindow, cfg.Checkout.SyncLimit)

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", checkoutcontrollers.Enter(checkoutService, logg))
			r.Get("/totals", checkoutcontrollers.Totals(checkoutService, logg))
			r.With(middleware.SyncRateLimit(syncPolicy, limiter, logg)).Post("/addons", addoncontrollers.Sync(checkoutService, logg))
			r.Post("/order", checkoutcontrollers.PlaceOrder(checkoutService, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", ordercontrollers.List(ordersRepo, logg))
			r.Get("/{orderID}", ordercontrollers.Get(ordersRepo, logg))
		})
	})

	return r
}
