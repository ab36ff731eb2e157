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

	portsrepo "github.com/SscSPs/bank_simulator/internal/core/ports/repositories"
	"github.com/SscSPs/bank_simulator/internal/core/services"
	"github.com/SscSPs/bank_simulator/internal/handlers"
	"github.com/SscSPs/bank_simulator/internal/middleware"
	"github.com/SscSPs/bank_simulator/internal/platform/config"
	"github.com/SscSPs/bank_simulator/internal/repositories/database/pgsql"
	"github.com/SscSPs/bank_simulator/internal/repositories/database/sqlite"
	"github.com/SscSPs/bank_simulator/internal/repositories/memory"
	"github.com/SscSPs/bank_simulator/internal/utils"
	"github.com/SscSPs/bank_simulator/pkg/cache"
	"github.com/SscSPs/bank_simulator/pkg/database"
	"github.com/SscSPs/bank_simulator/pkg/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// @title Bank Simulator API
// @version 1.0
// @description Accounts, Pay Anyone transfers and BPAY bill settlement for the bank simulator.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("Server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// run wires and serves the application until a shutdown signal arrives. Deferred
// cleanups always run before it returns.
func run(logger *slog.Logger) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.InitTracing(ctx, cfg.OTelServiceName, cfg.OTelCollectorEndpoint)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("Failed to shut down tracing", slog.String("error", err.Error()))
		}
	}()

	repos, err := openStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.StoreDriver, err)
	}
	defer repos.Close()

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer redisClient.Close()
	}

	paymentLimiter, err := middleware.NewRateLimiter(cfg.PaymentRateLimit, redisClient)
	if err != nil {
		return fmt.Errorf("failed to create payment rate limiter: %w", err)
	}
	apiLimiter, err := middleware.NewRateLimiter(cfg.APIRateLimit, redisClient)
	if err != nil {
		return fmt.Errorf("failed to create API rate limiter: %w", err)
	}

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()

	serviceContainer := services.NewServiceContainer(repos)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, handlers.Limiters{API: apiLimiter, Payments: paymentLimiter}, posthogClient)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           otelhttp.NewHandler(r, cfg.OTelServiceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed to run: %w", err)
		}
	case <-ctx.Done():
	}
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

// openStore builds the repositories for the configured STORE_DRIVER.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		logger.Warn("Using in-memory store; data is lost on restart")
		return memory.NewRepositoryProvider(memory.NewStore()), nil

	case config.StoreDriverSQLite:
		db, err := database.NewSQLiteDB(cfg.SQLitePath, sqlite.Models()...)
		if err != nil {
			return portsrepo.RepositoryProvider{}, err
		}
		logger.Info("SQLite database ready", slog.String("path", cfg.SQLitePath))
		return sqlite.NewRepositoryProvider(sqlite.NewStore(db, cfg.SQLiteCASRetries)), nil

	default:
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return portsrepo.RepositoryProvider{}, err
		}
		logger.Info("Database connection pool established.")

		logger.Info("Running database migrations...")
		applied, err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath)
		if err != nil {
			dbPool.Close()
			return portsrepo.RepositoryProvider{}, err
		}
		if applied {
			logger.Info("Database migrations applied successfully.")
		} else {
			logger.Info("No new migrations to apply.")
		}
		return pgsql.NewRepositoryProvider(dbPool), nil
	}
}
