// Package main provides the main entry point for the Yata no Kagami QR redirect and analytics service
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amirphl/Yata-no-Kagami/app/handlers"
	"github.com/amirphl/Yata-no-Kagami/app/router"
	"github.com/amirphl/Yata-no-Kagami/app/services"
	businessflow "github.com/amirphl/Yata-no-Kagami/business_flow"
	"github.com/amirphl/Yata-no-Kagami/config"
	_ "github.com/amirphl/Yata-no-Kagami/docs"
	"github.com/amirphl/Yata-no-Kagami/models"
	"github.com/amirphl/Yata-no-Kagami/repository"
	"github.com/amirphl/Yata-no-Kagami/utils"
	gormsqlite "github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Application represents the main application structure
type Application struct {
	router    router.Router
	config    *config.ProductionConfig
	db        *gorm.DB
	cache     *redis.Client
	stopFuncs []func()
}

func main() {
	cfg, err := config.LoadProductionConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := utils.NewLogger(utils.LoggerOptions{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		FilePath:   cfg.Logging.FilePath,
		MaxSize:    cfg.Logging.MaxSize,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAge:     cfg.Logging.MaxAge,
		Compress:   cfg.Logging.Compress,
	})
	slog.SetDefault(logger)

	logger.Info("Starting Yata no Kagami",
		"version", cfg.Deployment.Version,
		"commit", cfg.Deployment.CommitHash,
		"environment", cfg.Deployment.Environment,
	)

	app, err := initializeApplication(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}

	app.router.SetupRoutes()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		serverErr <- app.router.Start(address)
	}()

	select {
	case sig := <-sigChan:
		logger.Info("Shutting down gracefully...", "signal", sig.String())
	case err := <-serverErr:
		if err != nil {
			logger.Error("Server stopped unexpectedly", "error", err)
		}
	}

	// Stop taking requests first so no scan is enqueued after the recorder closes
	if err := app.router.Shutdown(cfg.Server.ShutdownTimeout); err != nil {
		logger.Error("Error during shutdown", "error", err)
	}

	app.stop(cfg.Server.ShutdownTimeout, logger)
	app.close(logger)

	logger.Info("Server stopped")
}

// stop runs background stop funcs in reverse order, bounded by timeout
func (a *Application) stop(timeout time.Duration, logger *slog.Logger) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := len(a.stopFuncs) - 1; i >= 0; i-- {
			a.stopFuncs[i]()
		}
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		logger.Warn("Background workers did not stop in time; pending scans may be lost", "timeout", timeout)
	}
}

func (a *Application) close(logger *slog.Logger) {
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			logger.Warn("Failed to close redis client", "error", err)
		}
	}
	if sqlDB, err := a.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Warn("Failed to close database", "error", err)
		}
	}
}

// initializeDatabase opens the configured database and applies connection pooling
func initializeDatabase(cfg config.DatabaseConfig, logger *slog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = gormsqlite.Open(fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", cfg.SQLitePath))
	default:
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
		dialector = postgres.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if cfg.Driver == "sqlite" {
		// sqlite serializes writers; one connection avoids SQLITE_BUSY under the scan workers
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
		sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if cfg.Driver == "sqlite" || cfg.AutoMigrate {
		if err := db.AutoMigrate(&models.QRCode{}, &models.Scan{}); err != nil {
			return nil, fmt.Errorf("failed to migrate schema: %w", err)
		}
	}

	logger.Info("Database connection established",
		"driver", cfg.Driver,
		"max_open_conns", cfg.MaxOpenConns,
		"max_idle_conns", cfg.MaxIdleConns,
	)

	return db, nil
}

// initializeCache initializes the Cache client and verifies connectivity
func initializeCache(cfg config.CacheConfig, logger *slog.Logger) (*redis.Client, error) {
	if !cfg.Enabled || cfg.Provider != "redis" {
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	// Override DB if provided in config
	opt.DB = cfg.RedisDB

	rc := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis connection established", "db", cfg.RedisDB)
	return rc, nil
}

// startCacheHealthMonitor periodically pings Redis to surface connectivity issues.
// Lookups fall back to the database while Redis is down.
func startCacheHealthMonitor(parent context.Context, client *redis.Client, interval time.Duration, logger *slog.Logger) func() {
	monitorCtx, cancel := context.WithCancel(parent)
	if interval <= 0 {
		interval = 30 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-monitorCtx.Done():
				return
			case <-ticker.C:
				ctx, c := context.WithTimeout(context.Background(), 3*time.Second)
				if err := client.Ping(ctx).Err(); err != nil {
					logger.Warn("Redis healthcheck failed", "error", err)
				}
				c()
			}
		}
	}()
	return cancel
}

func initializeApplication(cfg *config.ProductionConfig, logger *slog.Logger) (*Application, error) {
	db, err := initializeDatabase(cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	rc, err := initializeCache(cfg.Cache, logger)
	if err != nil {
		// the cache is an optimization; keep serving from the database
		logger.Warn("Cache disabled", "error", err)
		rc = nil
	}

	app := &Application{config: cfg, db: db, cache: rc}

	if rc != nil {
		app.stopFuncs = append(app.stopFuncs, startCacheHealthMonitor(context.Background(), rc, cfg.Cache.CleanupInterval, logger))
	}

	// Repositories
	qrCodeRepo := repository.NewQRCodeRepository(db)
	scanRepo := repository.NewScanRepository(db)

	// Services
	shortCodeCache := services.NewShortCodeCache(rc, cfg.Cache.RedisPrefix, cfg.Cache.DefaultTTL)
	renderer := services.NewQRRenderer(cfg.QR.Size)
	classifier := services.NewUserAgentClassifier()
	privacy := services.NewPrivacyFilter()

	// Business flows
	registry := businessflow.NewShortCodeRegistry(qrCodeRepo, shortCodeCache, cfg.ShortCode, logger)
	recorder := businessflow.NewScanRecorder(scanRepo, classifier, privacy, cfg.Tracking, logger)
	app.stopFuncs = append(app.stopFuncs, recorder.Start(context.Background()))

	qrFlow := businessflow.NewQRFlow(registry, renderer, cfg.Deployment, logger)
	redirectFlow := businessflow.NewRedirectFlow(registry, recorder)
	analyticsFlow := businessflow.NewAnalyticsFlow(registry, scanRepo)
	exportFlow := businessflow.NewAnalyticsExportFlow(analyticsFlow)

	// Handlers
	app.router = router.NewFiberRouter(cfg, router.Handlers{
		QR:        handlers.NewQRHandler(qrFlow),
		Redirect:  handlers.NewRedirectHandler(redirectFlow, cfg.Tracking),
		Analytics: handlers.NewAnalyticsHandler(analyticsFlow, exportFlow),
		Health:    handlers.NewHealthHandler(db, rc, cfg.Deployment.Version),
	})

	return app, nil
}
