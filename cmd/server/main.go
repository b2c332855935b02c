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

	"github.com/ErlanBelekov/authd/config"
	"github.com/ErlanBelekov/authd/internal/email"
	"github.com/ErlanBelekov/authd/internal/health"
	"github.com/ErlanBelekov/authd/internal/infrastructure/postgres"
	ctxlog "github.com/ErlanBelekov/authd/internal/log"
	"github.com/ErlanBelekov/authd/internal/metrics"
	"github.com/ErlanBelekov/authd/internal/password"
	"github.com/ErlanBelekov/authd/internal/token"
	httptransport "github.com/ErlanBelekov/authd/internal/transport/http"
	"github.com/ErlanBelekov/authd/internal/transport/http/handler"
	"github.com/ErlanBelekov/authd/internal/usecase"
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

	sqlDB := postgres.OpenSQL(pool)
	if cfg.MigrateOnStart {
		if err := postgres.Migrate(sqlDB); err != nil {
			stop()
			log.Fatalf("migrate: %v", err)
		}
	}
	gormDB, err := postgres.NewGorm(sqlDB)
	if err != nil {
		stop()
		log.Fatalf("gorm: %v", err)
	}

	// Auth
	hasher, err := password.NewArgon2(password.Params{
		MemoryKB:    cfg.Argon2MemoryKB,
		Time:        cfg.Argon2Time,
		Parallelism: cfg.Argon2Parallelism,
		SaltLength:  16,
		KeyLength:   32,
	})
	if err != nil {
		stop()
		log.Fatalf("password hasher: %v", err)
	}
	tokens, err := token.NewManager([]byte(cfg.JWTSecret), cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	if err != nil {
		stop()
		log.Fatalf("token manager: %v", err)
	}

	userRepo := postgres.NewUserRepository(gormDB)
	sender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)
	authUsecase := usecase.NewAuthUsecase(userRepo, hasher, tokens, sender, logger)
	authHandler := handler.NewAuthHandler(authUsecase, logger)

	metrics.Register()
	checker := health.NewChecker(pool, logger, prometheus.DefaultRegisterer)

	srv := http.Server{
		Addr: ":" + cfg.Port,
		Handler: httptransport.NewRouter(httptransport.RouterConfig{
			Logger:      logger,
			AuthHandler: authHandler,
			Tokens:      tokens,
			CORSOrigins: cfg.CORSOrigins,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("close sql db", "error", err)
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
