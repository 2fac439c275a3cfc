package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"messenger/internal/config"
	"messenger/internal/domain"
	"messenger/internal/handler"
	"messenger/internal/middleware"
	"messenger/internal/observability"
	"messenger/internal/repository"
	"messenger/internal/service"
	"messenger/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := newLogger(cfg)
	defer func() { _ = appLogger.Sync() }()

	dbPool, err := connectDatabase(cfg.Database)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", "error", err)
	}
	defer dbPool.Close()
	appLogger.Info("Database connection established")

	if cfg.Database.AutoMigrate {
		if err := repository.Migrate(context.Background(), dbPool, appLogger); err != nil {
			appLogger.Fatal("Failed to migrate database", "error", err)
		}
	}

	// Redis only backs rate limiting, which fails open, so an unreachable
	// server is not fatal.
	var rdb *redis.Client
	if cfg.RateLimit.Enabled {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(context.Background()).Err(); err != nil {
			appLogger.Warn("Redis is not reachable, requests will not be rate limited until it is", "error", err)
		} else {
			appLogger.Info("Redis connection established")
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(registry)
	tracer := observability.NewTracer()

	repos := repository.NewRepositories(dbPool, rdb, appLogger)
	services := service.NewServices(repos, tracer, metrics, appLogger)
	handlers := handler.NewHandlers(services, dbPool, rdb, appLogger)

	router := setupRouter(handlers, services, metrics, registry, cfg, appLogger)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		appLogger.Info("Starting server", "addr", srv.Addr, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", "error", err)
	}

	appLogger.Info("Server exited")
}

func newLogger(cfg *config.Config) logger.Logger {
	if cfg.IsProduction() {
		return logger.New(cfg.Log.Level)
	}
	return logger.NewDevelopment(cfg.Log.Level)
}

func connectDatabase(cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database DSN: %w", err)
	}
	poolCfg.MaxConns = cfg.MaxConnections
	poolCfg.MinConns = cfg.MinConnections
	poolCfg.MaxConnIdleTime = cfg.MaxIdleTime
	poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}

func setupRouter(
	handlers *handler.Handlers,
	services *service.Services,
	metrics *observability.Metrics,
	registry *prometheus.Registry,
	cfg *config.Config,
	log logger.Logger,
) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Metrics(metrics))
	router.Use(middleware.ErrorHandler(log))

	router.GET("/health", handlers.Health.Check)
	router.GET("/ready", handlers.Health.Ready)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	v1 := router.Group("/api/v1")

	if cfg.RateLimit.Enabled {
		rule := domain.RateLimitRule{
			Scope:    domain.RateLimitScopeIP,
			Requests: cfg.RateLimit.Requests,
			Window:   cfg.RateLimit.Window,
		}
		v1.Use(middleware.NewRateLimitMiddleware(services.RateLimit, rule, metrics, log).Limit())
	}

	if cfg.JWT.Secret != "" {
		v1.Use(middleware.NewAuthMiddleware(cfg.JWT.Secret, cfg.JWT.Issuer, log).RequireAuth())
	} else {
		log.Warn("JWT_SECRET is not set, API authentication is disabled")
	}

	handlers.RegisterRoutes(v1)

	return router
}
