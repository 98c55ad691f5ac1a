package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/costintel/costintel/internal/app"
	"github.com/costintel/costintel/internal/bi"
	"github.com/costintel/costintel/internal/budgets"
	budgethttp "github.com/costintel/costintel/internal/budgets/http"
	"github.com/costintel/costintel/internal/costapi"
	"github.com/costintel/costintel/internal/dashboard"
	dashboardhttp "github.com/costintel/costintel/internal/dashboard/http"
	"github.com/costintel/costintel/internal/dimensions"
	"github.com/costintel/costintel/internal/observability"
	"github.com/costintel/costintel/internal/platform/cache"
	"github.com/costintel/costintel/internal/shared"
	"github.com/costintel/costintel/internal/simulations"
	simulationhttp "github.com/costintel/costintel/internal/simulations/http"
	"github.com/costintel/costintel/internal/view"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	redisClient, err := cache.New(ctx, cache.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "costintel_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	metrics := observability.NewMetrics()
	api := costapi.New(costapi.Config{
		BaseURL: cfg.CostAPIBaseURL,
		APIKey:  cfg.CostAPIKey,
		Timeout: cfg.CostAPITimeout,
	}, costapi.WithLogger(logger), costapi.WithObserver(metrics))

	embed, ok := bi.ParseEmbed(cfg.SupersetEmbedURL)
	if !ok {
		logger.Warn("ignoring invalid BI embed url", slog.String("env", bi.EmbedEnvVar))
	}

	states := cache.NewJSONStore(redisClient, "costintel:state", cfg.StateTTL)
	dims := dimensions.NewLoader(api, logger)

	dashboardHandler := dashboardhttp.NewHandler(
		logger,
		dashboard.NewController(dashboard.NewLoader(api, logger), logger),
		dims,
		templates,
		csrfManager,
		states,
		shared.NewGenerations(redisClient, cfg.StateTTL),
		cfg.AppPublicURL,
	)

	runner := simulations.NewRunner(api, shared.NewLocker(redisClient), cfg.SimulationLockTTL(), logger).
		WithRecorder(metrics)
	simulationHandler := simulationhttp.NewHandler(logger, runner, dims, templates, csrfManager, states)

	budgetService := budgets.NewService(api, logger)
	budgetHandler := budgethttp.NewHandler(logger, budgetService, dims, templates)

	router := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		Templates:         templates,
		SessionManager:    sessionManager,
		CSRFManager:       csrfManager,
		DashboardHandler:  dashboardHandler,
		SimulationHandler: simulationHandler,
		BudgetHandler:     budgetHandler,
		BIHandler:         bi.NewHandler(logger, embed, templates),
		Embed:             embed,
		Health:            app.RedisHealth(redisClient),
		Metrics:           metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr), slog.String("cost_api", cfg.CostAPIBaseURL))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
