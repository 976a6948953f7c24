package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/steamtrack/project-tracking-api/internal/auth"
	"github.com/steamtrack/project-tracking-api/internal/config"
	"github.com/steamtrack/project-tracking-api/internal/constants"
	"github.com/steamtrack/project-tracking-api/internal/database"
	"github.com/steamtrack/project-tracking-api/internal/handlers"
	"github.com/steamtrack/project-tracking-api/internal/middleware"
	"github.com/steamtrack/project-tracking-api/internal/repository"
	"github.com/steamtrack/project-tracking-api/internal/services"
)

const loginPath = "/api/auth/login"

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
	if err := database.AddIndexes(database.GetDB()); err != nil {
		log.Fatalf("Failed to add indexes: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	meetingRepo := repository.NewMeetingRepository(db)
	resourceRepo := repository.NewResourceRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	projectService := services.NewProjectService(projectRepo, userRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo)
	meetingService := services.NewMeetingService(meetingRepo, projectRepo)
	resourceService := services.NewResourceService(resourceRepo, projectRepo)
	authorizer := auth.NewAuthorizer(projectRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectService, authorizer)
	taskHandler := handlers.NewTaskHandler(taskService)
	meetingHandler := handlers.NewMeetingHandler(meetingService)
	resourceHandler := handlers.NewResourceHandler(resourceService, authorizer)
	timelineHandler := handlers.NewTimelineHandler(taskService, meetingService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Project tracking API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/signup", authHandler.Signup)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/logout", authHandler.Logout)
			authRoutes.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
			authRoutes.PATCH("/me", middleware.RequireAuth(), authHandler.UpdateProfile)
		}

		// Project routes
		projects := api.Group("/projects")
		{
			// Join-by-key: POST only. GET is rejected with a structured 405
			// before any auth check; unauthenticated POST redirects to login.
			projects.GET("/register", projectHandler.RegisterMethodNotAllowed)
			projects.POST("/register", middleware.RequireAuthRedirect(loginPath), projectHandler.Register)

			authed := projects.Group("", middleware.RequireAuth())
			{
				authed.GET("", projectHandler.ListProjects)
				authed.POST("", middleware.RequireStaff(), projectHandler.CreateProject)

				scoped := authed.Group("/:id", middleware.RequireProjectView(authorizer))
				{
					scoped.GET("", projectHandler.GetProject)
					scoped.PUT("", middleware.RequireProjectManage(authorizer), projectHandler.UpdateProject)
					scoped.DELETE("", middleware.RequireProjectManage(authorizer), projectHandler.DeleteProject)

					scoped.GET("/tasks", taskHandler.ListTasks)
					scoped.POST("/tasks", taskHandler.CreateTask)
					scoped.GET("/meetings", meetingHandler.ListMeetings)
					scoped.POST("/meetings", meetingHandler.CreateMeeting)
					scoped.GET("/timeline", timelineHandler.GetTimeline)

					scoped.GET("/resources", resourceHandler.ListResources)
					scoped.POST("/resources", middleware.RequireResourceManage(authorizer), resourceHandler.CreateResource)
				}
			}
		}

		// Task routes
		tasks := api.Group("/tasks", middleware.RequireAuth())
		{
			tasks.GET("/:id", middleware.RequireTaskAccess(authorizer), taskHandler.GetTask)
			tasks.PATCH("/:id", middleware.RequireTaskAccess(authorizer), taskHandler.UpdateTask)
			tasks.DELETE("/:id", middleware.RequireTaskAccess(authorizer), taskHandler.DeleteTask)
		}

		// Meeting routes
		meetings := api.Group("/meetings", middleware.RequireAuth())
		{
			meetings.GET("/:id", middleware.RequireMeetingAccess(authorizer), meetingHandler.GetMeeting)
			meetings.PATCH("/:id", middleware.RequireMeetingAccess(authorizer), meetingHandler.UpdateMeeting)
			meetings.DELETE("/:id", middleware.RequireMeetingAccess(authorizer), meetingHandler.DeleteMeeting)
		}

		// Resource routes
		resources := api.Group("/resources", middleware.RequireAuth())
		{
			resources.GET("/:id", middleware.RequireResourceView(authorizer), resourceHandler.GetResource)
			resources.PATCH("/:id", middleware.RequireResourceView(authorizer), middleware.RequireResourceManage(authorizer), resourceHandler.UpdateResource)
			resources.DELETE("/:id", middleware.RequireResourceView(authorizer), middleware.RequireResourceManage(authorizer), resourceHandler.DeleteResource)
		}
	}

	// Start server
	log.Printf("Server starting on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
