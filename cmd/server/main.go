package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/taskcamp/taskcamp/internal/config"
	"github.com/taskcamp/taskcamp/internal/models"
	"github.com/taskcamp/taskcamp/internal/services"
	"github.com/taskcamp/taskcamp/internal/utils"
	"github.com/taskcamp/taskcamp/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.Log.Level)

	// Initialize JWT secret
	utils.SetJWTSecret(cfg.JWT.Secret)

	// Initialize database
	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate database
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	// Purge stale refresh tokens nightly
	cleanup := services.NewTokenCleanupService(models.GetDB())
	cleanup.StartScheduler()
	defer cleanup.StopScheduler()

	// Set Gin mode
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	registerRoutes(r, cfg)

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	logger.Infof("Server starting on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
