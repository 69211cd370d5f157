package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stwalsh4118/vanprop/internal/config"
	"github.com/stwalsh4118/vanprop/internal/database"
	"github.com/stwalsh4118/vanprop/internal/handlers"
	"github.com/stwalsh4118/vanprop/internal/logger"
	"github.com/stwalsh4118/vanprop/internal/middleware"
	"github.com/stwalsh4118/vanprop/internal/repository"
	"github.com/stwalsh4118/vanprop/internal/services"
)

const (
	shutdownTimeout   = 30 * time.Second
	readHeaderTimeout = 10 * time.Second
	readTimeout       = 15 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	migrateTimeout    = time.Minute
)

func main() {
	// Load configuration from .env files and environment variables
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.NewWithOptions(logger.Options{
		Env:   cfg.Server.Env,
		Level: cfg.Server.LogLevel,
	})
	log.Info("Starting "+handlers.APIName, map[string]interface{}{
		"version":     handlers.APIVersion,
		"environment": cfg.Server.Env,
		"port":        cfg.Server.Port,
		"api_prefix":  cfg.Server.APIPrefix,
	})

	// Create database connection pool
	ctx := context.Background()
	db, err := database.NewPostgresPool(ctx, cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", err, map[string]interface{}{
			"host": cfg.Database.Host,
			"port": cfg.Database.Port,
			"name": cfg.Database.Name,
		})
	}
	defer db.Close()

	log.Info("Database connection established", map[string]interface{}{
		"host":     cfg.Database.Host,
		"port":     cfg.Database.Port,
		"database": cfg.Database.Name,
		"pool_min": cfg.Database.PoolMin,
		"pool_max": cfg.Database.PoolMax,
	})

	// Apply the embedded schema when requested
	if cfg.Database.AutoMigrate {
		migrateCtx, cancel := context.WithTimeout(ctx, migrateTimeout)
		err := db.Migrate(migrateCtx)
		cancel()
		if err != nil {
			log.Fatal("Failed to apply schema", err, nil)
		}
		log.Info("Schema applied", nil)
	}

	// Setup Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Middleware order: RequestID -> Logger -> DebugErrors -> Recovery -> SecurityHeaders -> CORS
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.DebugErrors(!cfg.IsProduction()))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS.Origins))

	// Repositories share the injected pool
	propertyRepo := repository.NewPropertyRepository(db)
	userRepo := repository.NewUserRepository(db)
	watchlistRepo := repository.NewWatchlistRepository(db)
	savedSearchRepo := repository.NewSavedSearchRepository(db)

	// Initialize service and handler layers, then register routes
	handlers.RegisterRoutes(router, cfg.Server.APIPrefix, handlers.Handlers{
		Health:      handlers.NewHealthHandler(db, cfg.Server.Env, cfg.Server.APIPrefix),
		Property:    handlers.NewPropertyHandler(services.NewPropertyService(propertyRepo, log)),
		User:        handlers.NewUserHandler(services.NewUserService(userRepo, log)),
		Watchlist:   handlers.NewWatchlistHandler(services.NewWatchlistService(watchlistRepo, log)),
		SavedSearch: handlers.NewSavedSearchHandler(services.NewSavedSearchService(savedSearchRepo, log)),
	})
	router.NoRoute(middleware.NotFound())

	// Create HTTP server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server listening", map[string]interface{}{
			"port": cfg.Server.Port,
			"addr": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start", err, nil)
		}
	}()

	// Wait for interrupt signal (SIGINT or SIGTERM)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	log.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", err, map[string]interface{}{
			"timeout": shutdownTimeout.String(),
		})
	}

	log.Info("Server exited", nil)
}
