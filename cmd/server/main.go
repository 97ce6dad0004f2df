package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/ewei/budgetgroups-server/internal/api"
	"github.com/ewei/budgetgroups-server/internal/config"
	"github.com/ewei/budgetgroups-server/internal/repository"
	"github.com/ewei/budgetgroups-server/internal/service"
	"github.com/ewei/budgetgroups-server/pkg/logging"
)

func main() {
	// Setup structured logging
	logging.Setup()

	// Load configuration
	cfg := config.LoadConfig()

	// Set up database connection
	db, err := config.SetupDatabase(cfg)
	if err != nil {
		slog.Error("failed to set up database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Create repository
	repo := repository.NewPostgresRepository(db)

	// Create service
	svc := service.NewDefaultService(repo, cfg.Auth.JWTSecret)

	// Create API handler
	handler := api.NewHandler(svc)

	// Set up Gin router
	router := gin.Default()

	// Add middleware for JWT secret
	router.Use(func(c *gin.Context) {
		c.Set("jwtSecret", []byte(cfg.Auth.JWTSecret))
		c.Next()
	})

	// Request metrics and scrape endpoint
	router.Use(api.MetricsMiddleware())
	router.GET("/metrics", api.MetricsHandler())

	// Set up routes
	handler.SetupRoutes(router)

	// Start server
	serverAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	slog.Info("starting server", "addr", serverAddr)
	if err := http.ListenAndServe(serverAddr, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
