package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/minnmarket/storefront-backend/api/controllers"
	webhookcontrollers "github.com/minnmarket/storefront-backend/api/controllers/webhooks"
	"github.com/minnmarket/storefront-backend/api/middleware"
	"github.com/minnmarket/storefront-backend/api/responses"
	"github.com/minnmarket/storefront-backend/internal/gateway"
	"github.com/minnmarket/storefront-backend/internal/storefront"
	"github.com/minnmarket/storefront-backend/pkg/config"
	pkgerrors "github.com/minnmarket/storefront-backend/pkg/errors"
	"github.com/minnmarket/storefront-backend/pkg/logger"
	"github.com/minnmarket/storefront-backend/pkg/metrics"
	"github.com/minnmarket/storefront-backend/pkg/redis"
)

// Dependencies are the collaborators cmd/api builds. Bridge, Redis and
// TelegramWebhook are optional.
type Dependencies struct {
	Gateway         controllers.Submitter
	Bridge          gateway.Bridge
	Catalog         storefront.Catalog
	LinkOpener      storefront.LinkOpener
	QuoteMetrics    *metrics.QuoteMetrics
	MetricsHandler  http.Handler
	Redis           *redis.Client
	TelegramWebhook webhookcontrollers.TelegramWebhookService
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		responses.WriteError(r.Context(), nil, w, pkgerrors.New(pkgerrors.CodeNotFound, "route not found"))
	})

	// A nil pinger reports as disabled.
	readyDeps := map[string]controllers.Pinger{"redis": nil}
	if deps.Redis != nil {
		readyDeps["redis"] = deps.Redis
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg.App.Env))
		r.Get("/ready", controllers.HealthReady(cfg.App.Env, logg, readyDeps))
	})

	if deps.MetricsHandler != nil {
		r.Handle("/metrics", deps.MetricsHandler)
	}

	pricing := cfg.Pricing.Engine()
	submitPolicy := middleware.NewRateLimitPolicy(
		"submit",
		cfg.Submit.RateLimitWindow,
		cfg.Submit.RateLimitIPLimit,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/pricing", controllers.PricingGet(pricing))
		r.Post("/quotes", controllers.QuoteCreate(pricing, deps.QuoteMetrics, logg))
		r.Get("/storefront", controllers.StorefrontGet(deps.Catalog, deps.LinkOpener.Domain()))
		r.Post("/links/open", controllers.LinkOpen(deps.LinkOpener, deps.Catalog, logg))

		r.Route("/submissions", func(r chi.Router) {
			if deps.Redis != nil {
				r.Use(middleware.RateLimit(submitPolicy, deps.Redis, logg))
			}
			r.Post("/calc", controllers.SubmissionCalc(deps.Gateway, pricing, deps.Bridge, logg))
			r.Post("/order", controllers.SubmissionOrder(deps.Gateway, deps.Bridge, logg))
		})

		if deps.TelegramWebhook != nil {
			r.Post("/webhooks/telegram", webhookcontrollers.TelegramWebhook(deps.TelegramWebhook, cfg.Telegram.WebhookSecret, logg))
		}
	})

	return r
}
