package main

import (
	"github.com/gin-gonic/gin"
	"github.com/taskcamp/taskcamp/internal/config"
	"github.com/taskcamp/taskcamp/internal/handlers"
	"github.com/taskcamp/taskcamp/internal/middleware"
	"github.com/taskcamp/taskcamp/internal/models"
	"github.com/taskcamp/taskcamp/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, cfg *config.Config) {
	// Middleware
	r.Use(middleware.RequestID())
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())
	if cfg.RateLimit.Enabled {
		r.Use(middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	}

	db := models.GetDB()

	authHandler := handlers.NewAuthHandler(db, &cfg.JWT)
	userHandler := handlers.NewUserHandler(db)
	personalTaskHandler := handlers.NewPersonalTaskHandler(db)
	projectHandler := handlers.NewProjectHandler(db)
	memberHandler := handlers.NewProjectMemberHandler(db)
	taskHandler := handlers.NewProjectTaskHandler(db)
	healthHandler := handlers.NewHealthHandler()

	// Health check
	r.GET("/health", healthHandler.CheckHealth)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired())
		{
			// Auth
			protected.POST("/auth/logout", authHandler.Logout)

			// Current user
			protected.GET("/users/me", userHandler.Me)
			protected.PATCH("/users/me", userHandler.UpdateMe)
			protected.DELETE("/users/me", userHandler.DeleteMe)

			// Personal tasks
			protected.GET("/tasks", personalTaskHandler.List)
			protected.POST("/tasks", personalTaskHandler.Create)
			protected.GET("/tasks/:id", personalTaskHandler.GetByID)
			protected.PATCH("/tasks/:id", personalTaskHandler.Update)
			protected.DELETE("/tasks/:id", personalTaskHandler.Delete)

			// Projects
			protected.GET("/projects", projectHandler.List)
			protected.POST("/projects", projectHandler.Create)
			protected.GET("/projects/:id", projectHandler.GetByID)
			protected.PATCH("/projects/:id", projectHandler.Update)
			protected.DELETE("/projects/:id", projectHandler.Delete)

			// Project members
			protected.GET("/projects/:id/members", memberHandler.List)
			protected.POST("/projects/:id/members", memberHandler.Add)
			protected.PATCH("/projects/:id/members/:userId", memberHandler.Update)
			protected.DELETE("/projects/:id/members/:userId", memberHandler.Delete)

			// Project tasks
			protected.GET("/projects/:id/tasks", taskHandler.List)
			protected.POST("/projects/:id/tasks", taskHandler.Create)
			protected.GET("/projects/:id/tasks/:taskId", taskHandler.GetByID)
			protected.PATCH("/projects/:id/tasks/:taskId", taskHandler.Update)
			protected.DELETE("/projects/:id/tasks/:taskId", taskHandler.Delete)
			protected.POST("/projects/:id/tasks/:taskId/assign", taskHandler.Assign)
			protected.POST("/projects/:id/tasks/:taskId/unassign", taskHandler.Unassign)
		}
	}
}
