package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/waterwise-labs/greywater-api/internal/cart"
	"github.com/waterwise-labs/greywater-api/internal/config"
	"github.com/waterwise-labs/greywater-api/internal/database"
	"github.com/waterwise-labs/greywater-api/internal/handlers"
	"github.com/waterwise-labs/greywater-api/internal/logger"
	"github.com/waterwise-labs/greywater-api/internal/middleware"
	"github.com/waterwise-labs/greywater-api/internal/repository"
	"github.com/waterwise-labs/greywater-api/internal/services"
)

const (
	shutdownTimeout = 30 * time.Second
)

func main() {
	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.Server.Env)
	log.Info("Starting greywater API", map[string]interface{}{
		"version":     handlers.APIVersion,
		"environment": cfg.Server.Env,
		"port":        cfg.Server.Port,
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

	// Pick the cart store: SQLite when a path is configured, in-memory otherwise
	cartStore, err := newCartStore(cfg, log)
	if err != nil {
		log.Fatal("Failed to open cart store", err, map[string]interface{}{
			"path": cfg.Cart.Path,
		})
	}
	defer cartStore.Close()

	// Setup Gin router
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware in order: RequestID -> Logger -> Recovery -> CORS
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(cfg.CORS.Origins))

	// Register health check routes
	healthHandler := handlers.NewHealthHandler(db, cfg.Server.Env)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/api/v1/info", healthHandler.Info)

	// Initialize repository and service layers
	hierarchyRepo := repository.NewHierarchyRepository(db)
	complianceRepo := repository.NewComplianceRepository(db)
	policyService := services.NewPolicyService(hierarchyRepo, complianceRepo, log)

	// Initialize handlers
	hierarchyHandler := handlers.NewHierarchyHandler(hierarchyRepo)
	complianceHandler := handlers.NewComplianceHandler(policyService)
	incentiveHandler := handlers.NewIncentiveHandler(policyService)
	cartHandler := handlers.NewCartHandler(cartStore)

	// Register API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/hierarchy", hierarchyHandler.List)
		v1.GET("/compliance", complianceHandler.Get)
		v1.GET("/incentives", incentiveHandler.List)

		cartRoutes := v1.Group("/cart")
		{
			cartRoutes.GET("", cartHandler.Get)
			cartRoutes.DELETE("", cartHandler.Clear)
			cartRoutes.POST("/items", cartHandler.AddItem)
			cartRoutes.PATCH("/items/:variantId", cartHandler.UpdateQuantity)
			cartRoutes.DELETE("/items/:variantId", cartHandler.RemoveItem)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server listening", map[string]interface{}{
			"port": cfg.Server.Port,
			"addr": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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

func newCartStore(cfg *config.Config, log *logger.Logger) (cart.Store, error) {
	if cfg.Cart.Path == "" {
		log.Info("Using in-memory cart store", nil)
		return cart.NewMemoryStore(), nil
	}

	store, err := cart.NewSQLiteStore(cfg.Cart.Path)
	if err != nil {
		return nil, err
	}
	log.Info("Using SQLite cart store", map[string]interface{}{
		"path": cfg.Cart.Path,
	})
	return store, nil
}
