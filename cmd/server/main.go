package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yukihira/project-management-api/internal/config"
	"github.com/yukihira/project-management-api/internal/database"
	"github.com/yukihira/project-management-api/internal/handlers"
	"github.com/yukihira/project-management-api/internal/middleware"
	"github.com/yukihira/project-management-api/internal/repository"
	"github.com/yukihira/project-management-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db := database.GetDB()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, cfg.JWTSecret)
	projectService := services.NewProjectService(projectRepo, userRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo)
	dashboardService := services.NewDashboardService(projectRepo, taskRepo)

	var storyService *services.StoryService
	if cfg.AIAPIKey != "" {
		storyService = services.NewStoryService(cfg.AIAPIKey, cfg.AIBaseURL, cfg.AIModel, projectRepo)
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	storyHandler := handlers.NewStoryHandler(storyService)

	// Initialize Gin router
	r := gin.Default()
	r.Use(cors.Default())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Project Management API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Public routes
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)

		// Protected routes
		authed := api.Group("")
		authed.Use(middleware.RequireAuth(authService))
		{
			authed.GET("/users", authHandler.ListUsers)

			authed.GET("/projects", projectHandler.ListProjects)
			authed.POST("/projects", projectHandler.CreateProject)
			authed.GET("/projects/:id", projectHandler.GetProject)
			authed.PUT("/projects/:id", projectHandler.UpdateProject)
			authed.DELETE("/projects/:id", projectHandler.DeleteProject)
			authed.POST("/projects/:id/members", projectHandler.AddMember)
			authed.GET("/projects/:id/members", projectHandler.ListMembers)

			authed.GET("/tasks", taskHandler.ListTasks)
			authed.POST("/tasks", taskHandler.CreateTask)
			authed.GET("/tasks/:id", taskHandler.GetTask)
			authed.PUT("/tasks/:id", taskHandler.UpdateTask)
			authed.DELETE("/tasks/:id", taskHandler.DeleteTask)
			authed.POST("/tasks/:id/comments", taskHandler.AddComment)

			authed.GET("/dashboard", dashboardHandler.Dashboard)

			authed.POST("/ai/generate-user-stories", storyHandler.GenerateStories)
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
