package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/giglegig/portfolio-api/internal/auth"
	"github.com/giglegig/portfolio-api/internal/background"
	"github.com/giglegig/portfolio-api/internal/config"
	"github.com/giglegig/portfolio-api/internal/database"
	"github.com/giglegig/portfolio-api/internal/handlers"
	middlewareCustom "github.com/giglegig/portfolio-api/internal/middleware"
	"github.com/giglegig/portfolio-api/internal/repositories"
	"github.com/giglegig/portfolio-api/internal/routes"
	"github.com/giglegig/portfolio-api/internal/services"
	pkghttp "github.com/giglegig/portfolio-api/pkg/http"
	pkglogger "github.com/giglegig/portfolio-api/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("configuration loaded", slog.String("env", cfg.Server.Env))

	// Initialize database
	db, err := database.NewConnection(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	blogRepo := repositories.NewBlogRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	profileRepo := repositories.NewProfileRepository(db)

	// Initialize cleanup manager for expired verification codes
	cleanupManager := background.NewCleanupManager(userRepo, logger, cfg.Auth.CleanupInterval)

	// Initialize token manager
	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)

	auditLogger := pkglogger.NewAuditLogger(logger)

	// Timing delay keeps code verification latency uniform
	timingDelay := auth.NewTimingDelay(auth.TimingConfig{
		BaseDelayMs:    100,
		RandomDelayMs:  150,
		DelayOnSuccess: true,
	})

	// AWS SES email service for login codes
	emailService, err := services.NewAWSSESEmailService(cfg.Email.AWSRegion, cfg.Email.FromAddress, logger)
	if err != nil {
		logger.Error("failed to initialize email service", slog.Any("error", err))
		os.Exit(1)
	}

	// S3-backed storage for image uploads
	storageService, err := services.NewS3StorageService(
		cfg.Storage.AWSRegion,
		cfg.Storage.Bucket,
		cfg.Storage.KeyPrefix,
		cfg.Storage.PublicBaseURL,
		logger,
	)
	if err != nil {
		logger.Error("failed to initialize storage service", slog.Any("error", err))
		os.Exit(1)
	}

	githubClient := services.NewGitHubClient(cfg.GitHub.BaseURL, cfg.GitHub.Token)

	// Initialize services
	authService := services.NewAuthService(
		userRepo,
		emailService,
		tokenManager,
		timingDelay,
		cfg.Auth.AdminEmail,
		cfg.Auth.CodeExpiry,
		logger,
		auditLogger,
	)
	userService := services.NewUserService(userRepo, logger, auditLogger)
	blogService := services.NewBlogService(blogRepo, logger)
	projectService := services.NewProjectService(projectRepo, githubClient, logger)
	profileService := services.NewProfileService(profileRepo, logger)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(authService, userService)
	blogHandler := handlers.NewBlogHandler(blogService)
	projectHandler := handlers.NewProjectHandler(projectService)
	profileHandler := handlers.NewProfileHandler(profileService, storageService)
	uploadHandler := handlers.NewUploadHandler(storageService)

	// Setup CORS middleware
	corsConfig := middlewareCustom.DefaultCORSConfig(cfg.Server.Env)
	corsConfig.AllowedOrigins = cfg.Server.AllowedOrigins

	// Setup router
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middlewareCustom.SecurityHeaders(middlewareCustom.SecurityHeadersConfig{Env: cfg.Server.Env}))
	router.Use(middlewareCustom.CORS(corsConfig))
	router.Use(middlewareCustom.SecureLogger(logger, &pkghttp.IPConfig{TrustedProxies: cfg.Server.TrustedProxies}))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// Register routes
	routes.RegisterRoutes(router, userHandler, blogHandler, projectHandler, profileHandler, uploadHandler, tokenManager, userRepo)

	// Health check with database
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.HealthCheck(ctx); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unhealthy","database":"down"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy","database":"up"}`))
	})

	// Create server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start cleanup task
	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	defer cleanupCancel()

	go cleanupManager.Start(cleanupCtx)

	// Start server
	go func() {
		logger.Info("starting server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received")

	cleanupCancel()
	cleanupManager.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("server stopped gracefully")
}
