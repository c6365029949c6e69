package routes

import (
	"daotrack/internal/adapters/http/handlers"
	"daotrack/internal/adapters/http/middleware"
	"daotrack/internal/adapters/persistence/repositories"
	"daotrack/internal/config"
	"daotrack/internal/core/domain"
	"daotrack/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	daoRepo := repositories.NewDaoRepository(db)
	commentRepo := repositories.NewCommentRepository(db)
	templateRepo := repositories.NewTaskTemplateRepository(db)

	// Initialize services
	notifier := services.NewLogNotifier()
	authService := services.NewAuthService(userRepo, refreshTokenRepo, notifier, cfg)
	userService := services.NewUserService(userRepo)
	daoService := services.NewDaoService(daoRepo, commentRepo, templateRepo)
	commentService := services.NewCommentService(commentRepo, daoRepo, userRepo)
	dashboardService := services.NewDashboardService(daoRepo, userRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	daoHandler := handlers.NewDaoHandler(daoService)
	commentHandler := handlers.NewCommentHandler(commentService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	templateHandler := handlers.NewTemplateHandler(templateRepo)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// API v1 group
	apiV1 := app.Group("/api/v1")

	// Auth routes (public + protected)
	authRoutes := apiV1.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// User management routes (Admin only)
	userRoutes := apiV1.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware(cfg))
	userRoutes.Use(middleware.RequirePermission(domain.PermUserManage))
	setupUserRoutes(userRoutes, userHandler)

	// Profile routes (Authenticated users)
	profileRoutes := apiV1.Group("/profile")
	profileRoutes.Use(middleware.AuthMiddleware(cfg))
	setupProfileRoutes(profileRoutes, userHandler)

	// Dossier routes (Authenticated users; writes gated per operation)
	daoRoutes := apiV1.Group("/daos")
	daoRoutes.Use(middleware.AuthMiddleware(cfg))
	setupDaoRoutes(daoRoutes, daoHandler, commentHandler)

	// Comment edit routes (own-or-admin enforced in the service)
	commentRoutes := apiV1.Group("/comments")
	commentRoutes.Use(middleware.AuthMiddleware(cfg))
	setupCommentRoutes(commentRoutes, commentHandler)

	// Dashboard routes
	dashboardRoutes := apiV1.Group("/dashboard")
	dashboardRoutes.Use(middleware.AuthMiddleware(cfg))
	dashboardRoutes.Get("/", dashboardHandler.GetSummary)

	// Task template routes (Admin only)
	templateRoutes := apiV1.Group("/task-templates")
	templateRoutes.Use(middleware.AuthMiddleware(cfg))
	templateRoutes.Use(middleware.RequirePermission(domain.PermTemplateManage))
	setupTemplateRoutes(templateRoutes, templateHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes, rate limited against brute force
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", middleware.AuthRateLimiter(), handler.RefreshToken)
	router.Post("/logout", handler.Logout)
	router.Post("/forgot-password", middleware.StrictRateLimiter(), handler.ForgotPassword)
	router.Post("/verify-reset", middleware.StrictRateLimiter(), handler.VerifyResetToken)
	router.Post("/reset-password", middleware.StrictRateLimiter(), handler.ResetPassword)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
}

// setupUserRoutes configures user management routes (Admin only)
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/", handler.ListUsers)
	router.Post("/", handler.CreateUser)
	router.Get("/:id", handler.GetUser)
	router.Put("/:id", handler.UpdateUser)
	router.Delete("/:id", handler.DeactivateUser)
}

// setupProfileRoutes configures profile routes (Authenticated)
func setupProfileRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/", handler.GetProfile)
	router.Put("/", handler.UpdateProfile)
	router.Put("/password", handler.ChangePassword)
}

// setupDaoRoutes configures dossier, task and comment routes
func setupDaoRoutes(router fiber.Router, handler *handlers.DaoHandler, commentHandler *handlers.CommentHandler) {
	router.Get("/", middleware.RequirePermission(domain.PermDaoRead), handler.List)
	router.Post("/", middleware.RequirePermission(domain.PermDaoCreate), handler.Create)

	// Static path before the :id parameter
	router.Get("/next-number", middleware.RequirePermission(domain.PermDaoCreate), handler.NextNumber)

	router.Get("/:id", middleware.RequirePermission(domain.PermDaoRead), handler.GetByID)
	router.Put("/:id", middleware.RequirePermission(domain.PermDaoUpdate), handler.Update)
	router.Delete("/:id", middleware.RequirePermission(domain.PermDaoDelete), handler.Delete)

	// Task checklist. Adding and removing tasks changes the dossier
	// structure and stays with admins; progress updates are open to
	// every authenticated user.
	router.Post("/:id/tasks", middleware.RequirePermission(domain.PermTaskStructural), handler.AddTask)
	router.Put("/:id/tasks/:taskId", middleware.RequirePermission(domain.PermTaskUpdate), handler.UpdateTask)
	router.Delete("/:id/tasks/:taskId", middleware.RequirePermission(domain.PermTaskStructural), handler.DeleteTask)
	router.Put("/:id/tasks/:taskId/assign", middleware.RequirePermission(domain.PermTaskUpdate), handler.AssignTask)
	router.Delete("/:id/tasks/:taskId/assign", middleware.RequirePermission(domain.PermTaskUpdate), handler.UnassignTask)

	// Comments scoped to a dossier
	router.Get("/:id/comments", middleware.RequirePermission(domain.PermCommentRead), commentHandler.List)
	router.Post("/:id/comments", middleware.RequirePermission(domain.PermCommentWrite), commentHandler.Create)
}

// setupCommentRoutes configures comment edit routes
func setupCommentRoutes(router fiber.Router, handler *handlers.CommentHandler) {
	router.Put("/:id", middleware.RequirePermission(domain.PermCommentWrite), handler.Update)
	router.Delete("/:id", middleware.RequirePermission(domain.PermCommentWrite), handler.Delete)
}

// setupTemplateRoutes configures task template routes (Admin only)
func setupTemplateRoutes(router fiber.Router, handler *handlers.TemplateHandler) {
	router.Get("/", handler.List)
	router.Post("/", handler.Create)
	router.Put("/:id", handler.Update)
	router.Delete("/:id", handler.Delete)
}
