package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/example/villays/internal/catalog"
	"github.com/example/villays/internal/concierge"
	"github.com/example/villays/internal/config"
	"github.com/example/villays/internal/funnel"
	httptransport "github.com/example/villays/internal/http"
	"github.com/example/villays/internal/identity"
	"github.com/example/villays/internal/persistence"
	"github.com/example/villays/internal/persistence/memory"
	"github.com/example/villays/internal/persistence/sqlite"
	"github.com/example/villays/internal/promo"
	"github.com/example/villays/internal/reservation"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A missing .env file is fine; the environment wins either way.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("failed to load .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	storage, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := storage.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if err := storage.Migrate(context.Background()); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	provider := catalog.NewStaticProvider()
	codes := reservation.NewCodeGenerator(cfg.BookingCodePrefix, nil)
	now := time.Now

	var auth identity.AuthProvider
	switch cfg.AuthMode {
	case config.AuthModeLocal:
		auth = identity.NewLocalProvider(storage, nil)
	default:
		auth = identity.NewMockProvider()
	}

	var liveConcierge concierge.Responder
	if cfg.ConciergeAPIKey != "" {
		liveConcierge = concierge.NewGeminiClient(concierge.GeminiConfig{
			Endpoint: cfg.ConciergeEndpoint,
			Model:    cfg.ConciergeModel,
			APIKey:   cfg.ConciergeAPIKey,
			Logger:   logger,
		})
	}
	conciergeService := concierge.NewService(liveConcierge, concierge.NewCannedResponder(), logger)

	visitors := httptransport.NewVisitorManager(func(ctx context.Context, token string, start time.Time) *httptransport.Visitor {
		gateway := persistence.NewGateway(storage, memory.NewStore(), logger)
		controller := funnel.NewController(funnel.ControllerConfig{
			Catalog:    provider,
			Gateway:    gateway,
			Auth:       auth,
			Codes:      codes,
			ServiceFee: cfg.ServiceFee,
			Now:        now,
			Logger:     logger,
		})
		controller.Rehydrate(ctx)
		planner := promo.NewPlanner(start, now,
			promo.WelcomeOffer(gateway, 3*time.Second),
			promo.Banner(gateway, 10*time.Second),
			promo.RateCard(gateway, 30*time.Second, cfg.RatePopupCooldown, now),
		)
		return &httptransport.Visitor{Token: token, Controller: controller, Planner: planner}
	}, cfg.VisitorTTL, now)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Funnel:    httptransport.NewFunnelHandler(cfg.Currency, now, logger),
		Account:   httptransport.NewAccountHandler(logger),
		Bookings:  httptransport.NewBookingHandler(now, logger),
		Catalog:   httptransport.NewCatalogHandler(provider, logger),
		Concierge: httptransport.NewConciergeHandler(conciergeService, logger),
		Promos:    httptransport.NewPromoHandler(logger),
		Middleware: []func(http.Handler) http.Handler{
			httptransport.RequestLogger(logger),
			httptransport.VisitorSession(visitors),
		},
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("booking API listening", "addr", server.Addr, "auth_mode", string(cfg.AuthMode))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}
