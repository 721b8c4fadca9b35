package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/maresia/maresia/internal/app"
	"github.com/maresia/maresia/internal/auth"
	"github.com/maresia/maresia/internal/dashboard"
	"github.com/maresia/maresia/internal/finance"
	"github.com/maresia/maresia/internal/guests"
	"github.com/maresia/maresia/internal/inventory"
	"github.com/maresia/maresia/internal/lodging"
	"github.com/maresia/maresia/internal/platform/api"
	"github.com/maresia/maresia/internal/platform/cache"
	"github.com/maresia/maresia/internal/query"
	"github.com/maresia/maresia/internal/reservations"
	"github.com/maresia/maresia/internal/settings"
	"github.com/maresia/maresia/internal/shared"
	"github.com/maresia/maresia/internal/view"
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

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "maresia_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	apiClient := api.New(cfg.APIBaseURL, cfg.APITimeout, logger)
	queries := query.New(redisClient, cfg.CacheTTL)

	authService := auth.NewService(apiClient)
	authHandler := auth.NewHandler(logger, authService, templates, sessionManager, csrfManager)

	guestsService := guests.NewService(apiClient, queries)
	guestsHandler := guests.NewHandler(logger, guestsService, templates, csrfManager)

	lodgingService := lodging.NewService(apiClient, queries)
	lodgingHandler := lodging.NewHandler(logger, lodgingService, templates, csrfManager)

	reservationsService := reservations.NewService(apiClient, queries)
	reservationsHandler := reservations.NewHandler(logger, reservationsService, guestsService, lodgingService, templates, csrfManager)

	financeService := finance.NewService(apiClient, queries)
	financeHandler := finance.NewHandler(logger, financeService, templates, csrfManager)

	inventoryService := inventory.NewService(apiClient, queries)
	inventoryHandler := inventory.NewHandler(logger, inventoryService, financeService, templates, csrfManager)

	dashboardService := dashboard.NewService(reservationsService, lodgingService, financeService)
	dashboardHandler := dashboard.NewHandler(logger, dashboardService, templates, csrfManager)

	settingsService := settings.NewService(apiClient, queries)
	settingsHandler := settings.NewHandler(logger, settingsService, templates, csrfManager)

	router := app.NewRouter(app.RouterParams{
		Logger:              logger,
		Config:              cfg,
		Templates:           templates,
		SessionManager:      sessionManager,
		CSRFManager:         csrfManager,
		AuthHandler:         authHandler,
		DashboardHandler:    dashboardHandler,
		GuestsHandler:       guestsHandler,
		LodgingHandler:      lodgingHandler,
		ReservationsHandler: reservationsHandler,
		InventoryHandler:    inventoryHandler,
		FinanceHandler:      financeHandler,
		SettingsHandler:     settingsHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
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
