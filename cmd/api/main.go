package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/minnmarket/storefront-backend/api/routes"
	"github.com/minnmarket/storefront-backend/internal/gateway"
	"github.com/minnmarket/storefront-backend/internal/storefront"
	"github.com/minnmarket/storefront-backend/internal/submission"
	telegramwebhook "github.com/minnmarket/storefront-backend/internal/webhooks/telegram"
	"github.com/minnmarket/storefront-backend/pkg/config"
	"github.com/minnmarket/storefront-backend/pkg/logger"
	"github.com/minnmarket/storefront-backend/pkg/metrics"
	"github.com/minnmarket/storefront-backend/pkg/redis"
	"github.com/minnmarket/storefront-backend/pkg/telegram"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	links, err := gateway.NewLinkBuilder(cfg.Telegram.LinkDomain, cfg.Telegram.OperatorHandle)
	if err != nil {
		logg.Error(ctx, "failed to build operator link", err)
		os.Exit(1)
	}

	gw, err := gateway.New(gateway.Options{
		Links:                 links,
		FallbackOnBridgeError: cfg.Submit.FallbackOnBridgeError,
		Metrics:               metrics.NewSubmissionMetrics(registry),
		Logger:                logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to create submission gateway", err)
		os.Exit(1)
	}

	deps := routes.Dependencies{
		Gateway:        gw,
		Catalog:        storefront.DefaultCatalog().WithReviewsURL(cfg.Storefront.ReviewsURL),
		LinkOpener:     storefront.NewLinkOpener(cfg.Telegram.LinkDomain),
		QuoteMetrics:   metrics.NewQuoteMetrics(registry),
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
	}

	if cfg.Telegram.BotToken != "" {
		client, err := telegram.NewClient(
			cfg.Telegram.BotToken,
			telegram.WithBaseURL(cfg.Telegram.APIBaseURL),
			telegram.WithTimeout(cfg.Telegram.Timeout),
		)
		if err != nil {
			logg.Error(ctx, "failed to create telegram client", err)
			os.Exit(1)
		}

		var operator *telegram.OperatorBridge
		if cfg.Telegram.BridgeEnabled() {
			operator, err = telegram.NewOperatorBridge(
				client,
				cfg.Telegram.OperatorChatID,
				telegram.WithMessageFormat(submission.OperatorMessage(cfg.Pricing.Engine())),
			)
			if err != nil {
				logg.Error(ctx, "failed to create operator bridge", err)
				os.Exit(1)
			}
			deps.Bridge = operator
		}

		webhookService, err := telegramwebhook.NewService(telegramwebhook.ServiceParams{
			Gateway: gw,
			Bridge:  operator,
			Sender:  client,
			Pricing: cfg.Pricing.Engine(),
			Logger:  logg,
		})
		if err != nil {
			logg.Error(ctx, "failed to create telegram webhook service", err)
			os.Exit(1)
		}
		deps.TelegramWebhook = webhookService
	} else {
		logg.Warn(ctx, "telegram bot token not set, submissions use fallback links only")
	}

	if cfg.Redis.Enabled() {
		redisClient, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		deps.Redis = redisClient
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	logCtx := logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
		"bridge":   deps.Bridge != nil,
	})
	logg.Info(logCtx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(cfg, logg, deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(logCtx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(logCtx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(logCtx, "api server shutdown failed", err)
		}
	}
}
