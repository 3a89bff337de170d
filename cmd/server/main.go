// Package main provides the entry point for the HTTP server.
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

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/member_search/internal/config"
	dbConfig "github.com/festy23/member_search/internal/database/config"
	"github.com/festy23/member_search/internal/database/database"
	"github.com/festy23/member_search/internal/health"
	memberRouter "github.com/festy23/member_search/internal/member/router"
	"github.com/festy23/member_search/internal/metrics"
	"github.com/festy23/member_search/internal/middleware"
	"github.com/festy23/member_search/internal/seed"
	"github.com/festy23/member_search/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := config.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		return err
	}

	dbCfg := dbConfig.LoadConfigFromEnv()
	if err := dbCfg.Validate(); err != nil {
		return fmt.Errorf("database config validation failed: %w", err)
	}

	appLog, err := logger.NewWithConfig(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = appLog.Sync() }()

	db, err := database.NewWithConfig(dbCfg, appLog)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			appLog.Errorw("failed to close database", "error", err)
		}
	}()

	if err := database.Prepare(db, dbCfg, appLog); err != nil {
		return err
	}

	if cfg.SeedSampleData {
		if _, err := seed.SampleData(context.Background(), db, appLog); err != nil {
			return fmt.Errorf("failed to seed sample data: %w", err)
		}
	}

	gin.SetMode(cfg.GinMode)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(reg)

	limiter := middleware.NewRateLimiter(cfg.RateLimit, appLog)
	defer limiter.Stop()

	router := newRouter(cfg, db, reg, collector, limiter, appLog)

	srv := &http.Server{
		Addr:         cfg.Server.GetAddress(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		appLog.Infow("server starting", "address", srv.Addr, "db_driver", dbCfg.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case sig := <-quit:
		appLog.Infow("shutting down server", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	appLog.Infow("server exited")
	return nil
}

// newRouter builds the engine with the middleware chain and every route.
func newRouter(
	cfg config.Config,
	db *gorm.DB,
	gatherer prometheus.Gatherer,
	collector *metrics.Collector,
	limiter *middleware.RateLimiter,
	appLog *zap.SugaredLogger,
) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(appLog),
		middleware.Logger(appLog),
		middleware.Metrics(collector),
		middleware.Timeout(cfg.Server.RequestTimeout),
	)

	r.GET("/health", health.New(db, appLog).Check)
	r.GET("/metrics", gin.WrapH(metrics.Handler(gatherer)))

	api := r.Group("")
	api.Use(limiter.Middleware())
	memberRouter.RegisterRoutes(api, db, collector, appLog)

	return r
}
