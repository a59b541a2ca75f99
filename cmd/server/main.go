package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/exeai/exeai/internal/config"
	"github.com/exeai/exeai/internal/constants"
	"github.com/exeai/exeai/internal/database"
	"github.com/exeai/exeai/internal/handlers"
	"github.com/exeai/exeai/internal/logger"
	"github.com/exeai/exeai/internal/middleware"
	"github.com/exeai/exeai/internal/repository"
	"github.com/exeai/exeai/internal/services"
	"github.com/exeai/exeai/internal/whatsapp"
)

func main() {
	// Load configuration
	cfg := config.Load()

	appLog, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer appLog.Sync()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		appLog.Fatalw("failed to connect to database", "error", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		appLog.Fatalw("failed to run migrations", "error", err)
	}

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(appLog))

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,
		"tcp",
		redisAddr,
		"",
		"",
		[]byte(cfg.SessionSecret),
	)
	if err != nil {
		appLog.Fatalw("failed to create redis session store", "error", err)
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions(constants.SessionName, store))

	// Repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	pageRepo := repository.NewPageRepository(db)
	noteRepo := repository.NewDailyNoteRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Services
	authService := services.NewAuthService(userRepo)
	taskService := services.NewTaskService(taskRepo, noteRepo)
	pageService := services.NewPageService(pageRepo)
	noteService := services.NewNoteService(noteRepo)
	settingsService := services.NewSettingsService(settingsRepo)
	gmailService := services.NewGmailService(
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.GoogleRedirectURL,
		userRepo,
		appLog,
	)

	// WhatsApp session manager with its own credential store
	var waManager *whatsapp.Manager
	waStore, err := whatsapp.NewStore(cfg.WhatsAppDBDialect, cfg.WhatsAppDBDSN)
	if err != nil {
		appLog.Warnw("whatsapp integration disabled", "error", err)
	} else {
		waManager = whatsapp.NewManager(waStore, appLog)
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService)
	calendarHandler := handlers.NewCalendarHandler(taskService)
	pageHandler := handlers.NewPageHandler(pageService)
	noteHandler := handlers.NewNoteHandler(noteService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	gmailHandler := handlers.NewGmailHandler(authService, gmailService)
	whatsappHandler := handlers.NewWhatsAppHandler(waManager)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "EXEAI API is running",
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
			tasks.GET("/:id", middleware.RequireOwnedTask(), taskHandler.GetTask)
			tasks.PATCH("/:id", middleware.RequireOwnedTask(), taskHandler.UpdateTask)
			tasks.DELETE("/:id", middleware.RequireOwnedTask(), taskHandler.DeleteTask)
		}

		// Calendar routes (protected, same table as tasks)
		calendar := api.Group("/calendar")
		calendar.Use(middleware.RequireAuth())
		{
			calendar.GET("/events", calendarHandler.ListEvents)
			calendar.POST("/events", calendarHandler.CreateEvent)
		}

		// Page routes (protected)
		pages := api.Group("/pages")
		pages.Use(middleware.RequireAuth())
		{
			pages.GET("", pageHandler.ListPages)
			pages.POST("", pageHandler.CreatePage)
			pages.GET("/:id", middleware.RequireOwnedPage(), pageHandler.GetPage)
			pages.PATCH("/:id", middleware.RequireOwnedPage(), pageHandler.UpdatePage)
			pages.DELETE("/:id", middleware.RequireOwnedPage(), pageHandler.DeletePage)
		}

		// Daily note routes (protected)
		notes := api.Group("/notes")
		notes.Use(middleware.RequireAuth())
		{
			notes.GET("/daily/:date", noteHandler.GetDailyNote)
			notes.PATCH("/daily/:date", noteHandler.UpdateDailyNote)
		}

		// Settings routes (protected)
		settings := api.Group("/settings")
		settings.Use(middleware.RequireAuth())
		{
			settings.GET("", settingsHandler.GetSettings)
			settings.PATCH("", settingsHandler.UpdateSettings)
		}

		// Gmail integration routes (protected)
		gmail := api.Group("/gmail")
		gmail.Use(middleware.RequireAuth())
		{
			gmail.GET("/auth-url", gmailHandler.AuthURL)
			gmail.GET("/callback", gmailHandler.Callback)
			gmail.GET("/status", gmailHandler.Status)
			gmail.POST("/disconnect", gmailHandler.Disconnect)
			gmail.GET("/messages", gmailHandler.ListMessages)
			gmail.POST("/messages/:id/read", gmailHandler.MarkRead)
		}

		// WhatsApp integration routes (protected)
		wa := api.Group("/whatsapp")
		wa.Use(middleware.RequireAuth())
		{
			wa.POST("/connect", whatsappHandler.Connect)
			wa.GET("/status", whatsappHandler.Status)
			wa.POST("/disconnect", whatsappHandler.Disconnect)
			wa.POST("/logout", whatsappHandler.Logout)
			wa.GET("/messages", whatsappHandler.Messages)
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		appLog.Infow("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLog.Infow("shutting down")
	if waManager != nil {
		waManager.Shutdown()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLog.Errorw("forced shutdown", "error", err)
	}
}
