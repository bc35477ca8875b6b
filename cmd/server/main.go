package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RusilKoirala/rusil-stream/config"
	"github.com/RusilKoirala/rusil-stream/internal/auth"
	"github.com/RusilKoirala/rusil-stream/internal/catalog"
	"github.com/RusilKoirala/rusil-stream/internal/email"
	"github.com/RusilKoirala/rusil-stream/internal/health"
	"github.com/RusilKoirala/rusil-stream/internal/infrastructure/postgres"
	"github.com/RusilKoirala/rusil-stream/internal/janitor"
	ctxlog "github.com/RusilKoirala/rusil-stream/internal/log"
	"github.com/RusilKoirala/rusil-stream/internal/metrics"
	httptransport "github.com/RusilKoirala/rusil-stream/internal/transport/http"
	"github.com/RusilKoirala/rusil-stream/internal/transport/http/handler"
	"github.com/RusilKoirala/rusil-stream/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	sessions := auth.NewSessions([]byte(cfg.JWTSecret))
	emailSender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)

	// Accounts
	accountRepo := postgres.NewAccountRepository(pool)
	authUsecase := usecase.NewAuthUsecase(accountRepo, emailSender, sessions, cfg.AppBaseURL)
	profileUsecase := usecase.NewProfileUsecase(accountRepo)

	// Catalog
	catalogClient := catalog.New(cfg.TMDBBaseURL, cfg.TMDBAPIKey, logger)

	// Watch history & saved list
	historyUsecase := usecase.NewHistoryUsecase(postgres.NewHistoryRepository(pool))
	savedUsecase := usecase.NewSavedUsecase(postgres.NewSavedRepository(pool))

	metrics.Register()
	checker := health.NewChecker(map[string]health.Pinger{"postgres": pool}, logger, prometheus.DefaultRegisterer)

	handlers := httptransport.Handlers{
		Auth:    handler.NewAuthHandler(authUsecase, logger, cfg.CookieSecure()),
		Catalog: handler.NewCatalogHandler(catalogClient, logger),
		Profile: handler.NewProfileHandler(profileUsecase, logger),
		History: handler.NewHistoryHandler(historyUsecase, logger),
		Saved:   handler.NewSavedHandler(savedUsecase, logger),
		Stream:  handler.NewStreamHandler(cfg.EmbedBaseURL),
	}

	srv := http.Server{
		Addr:    ":" + cfg.Port,
		Handler: httptransport.NewRouter(logger, sessions, handlers),
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	cleaner := janitor.New(accountRepo, logger)
	if err := cleaner.Start(); err != nil {
		stop()
		log.Fatalf("janitor: %v", err)
	}

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	cleaner.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
