package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/sakurada-dev/team-productivity-api/internal/config"
	"github.com/sakurada-dev/team-productivity-api/internal/constants"
	"github.com/sakurada-dev/team-productivity-api/internal/database"
	"github.com/sakurada-dev/team-productivity-api/internal/handlers"
	"github.com/sakurada-dev/team-productivity-api/internal/middleware"
	"github.com/sakurada-dev/team-productivity-api/internal/repository"
	"github.com/sakurada-dev/team-productivity-api/internal/services"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	db := database.GetDB()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	reminderRepo := repository.NewReminderRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	delegationRepo := repository.NewDelegationRepository(db)

	// Services
	ownership := services.NewOwnershipService(userRepo)
	authService := services.NewAuthService(userRepo, sessionRepo, logger)
	taskService := services.NewTaskService(taskRepo, userRepo, ownership, logger)
	reminderService := services.NewReminderService(reminderRepo, ownership, logger)
	categoryService := services.NewCategoryService(categoryRepo, ownership, logger)
	delegationService := services.NewDelegationService(delegationRepo, auditRepo, logger)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService)
	reminderHandler := handlers.NewReminderHandler(reminderService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	adminHandler := handlers.NewAdminHandler(delegationService)

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery())

	// The cookie only carries the opaque session token; session state lives in
	// the sessions table so revocation is transactional with everything else.
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * constants.SessionMaxAgeDays,
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.PATCH("/:id/status", taskHandler.UpdateTaskStatus)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}

		// Team routes (protected; manager acting for a report)
		team := api.Group("/team")
		team.Use(middleware.RequireAuth())
		{
			team.POST("/tasks", taskHandler.CreateTeamTask)
		}

		// Reminder routes (protected)
		reminders := api.Group("/reminders")
		reminders.Use(middleware.RequireAuth())
		{
			reminders.GET("", reminderHandler.ListReminders)
			reminders.POST("", reminderHandler.CreateReminder)
			reminders.PATCH("/:id", reminderHandler.UpdateReminder)
			reminders.POST("/sweep", reminderHandler.SweepReminders)
		}

		// Category routes (protected)
		categories := api.Group("/categories")
		categories.Use(middleware.RequireAuth())
		{
			categories.GET("", categoryHandler.ListCategories)
			categories.POST("", categoryHandler.CreateCategory)
			categories.DELETE("/:id", categoryHandler.DeleteCategory)
		}

		// Admin routes (protected, admin only)
		admin := api.Group("/admin")
		admin.Use(middleware.RequireAuth(), middleware.RequireAdmin())
		{
			admin.PUT("/users/:id/manager", adminHandler.AssignManager)
			admin.POST("/users/:id/demote", adminHandler.DemoteManager)
			admin.GET("/audit-logs", adminHandler.ListAuditLogs)
		}
	}

	// Start server
	logger.Info("server starting", zap.String("addr", cfg.ListenAddr))
	if err := r.Run(cfg.ListenAddr); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
