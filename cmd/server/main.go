package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/complyark/dpdpa-portal/internal/system/config"
	"github.com/complyark/dpdpa-portal/internal/system/database"
	"github.com/complyark/dpdpa-portal/internal/system/database/provider"
	"github.com/complyark/dpdpa-portal/internal/system/log"
	"github.com/complyark/dpdpa-portal/internal/system/stores"
)

// Version information (set by build script)
var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	logger := log.GetLogger()
	logger.Info("Starting DPDPA Compliance Portal...",
		log.String("version", version),
		log.String("build_date", buildDate),
	)

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logger.Fatal("Failed to load configuration", log.Error(err))
	}
	log.SetLevel(cfg.Logging.Level)

	db, err := database.Initialize(&cfg.Database.Portal)
	if err != nil {
		logger.Fatal("Failed to initialize database", log.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.HealthCheck(ctx); err != nil {
		logger.Fatal("Database health check failed", log.Error(err))
	}

	dbClient := provider.NewDBClient(db, cfg.Database.Portal.Type)
	registry := stores.NewStoreRegistry(dbClient)

	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())

	services, err := registerServices(engine, registry, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize services", log.Error(err))
	}

	checker := newOverdueChecker(services, cfg)
	checker.Start(context.Background())

	server := &http.Server{
		Addr:           cfg.Server.GetServerAddress(),
		Handler:        engine,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}
	if cfg.Server.ReadTimeout > 0 {
		server.ReadTimeout = cfg.Server.ReadTimeout
	}
	if cfg.Server.WriteTimeout > 0 {
		server.WriteTimeout = cfg.Server.WriteTimeout
	}
	if cfg.Server.IdleTimeout > 0 {
		server.IdleTimeout = cfg.Server.IdleTimeout
	}

	go func() {
		logger.Info("Starting HTTP server...", log.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", log.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	checker.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", log.Error(err))
	}

	logger.Info("Server exited gracefully")
}
