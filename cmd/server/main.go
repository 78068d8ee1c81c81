package main

import (
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/artbranch/admin-api/internal/config"
	"github.com/artbranch/admin-api/internal/database"
	"github.com/artbranch/admin-api/internal/handlers"
	"github.com/artbranch/admin-api/internal/logging"
	"github.com/artbranch/admin-api/internal/middleware"
	"github.com/artbranch/admin-api/internal/models"
	"github.com/artbranch/admin-api/internal/routes"
	"github.com/artbranch/admin-api/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	seedSuperAdmins(cfg)

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		pgLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Services
	statusService := services.NewStatusService(database.DB)
	notificationService := services.NewNotificationService(database.DB)
	emailService := services.NewEmailService(cfg)
	verificationService := services.NewVerificationService(database.DB, statusService, notificationService, emailService)
	noteService := services.NewNoteService(database.DB, notificationService)
	artistService := services.NewArtistService(database.DB, statusService)
	adminService := services.NewAdminService(database.DB, statusService)
	authService := services.NewAuthService(database.DB, cfg)
	overviewService := services.NewOverviewService(database.DB)
	feedbackService := services.NewFeedbackService(database.DB)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	healthHandler := handlers.NewHealthHandler()
	verificationHandler := handlers.NewVerificationHandler(verificationService)
	artistHandler := handlers.NewArtistHandler(artistService, statusService)
	adminHandler := handlers.NewAdminHandler(adminService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	noteHandler := handlers.NewNoteHandler(noteService)
	overviewHandler := handlers.NewOverviewHandler(overviewService)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)
	emailHandler := handlers.NewEmailHandler(emailService)

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, database.DB,
		authHandler, healthHandler, verificationHandler, artistHandler,
		adminHandler, notificationHandler, noteHandler, overviewHandler,
		feedbackHandler, emailHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	// Close database connections
	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

// seedSuperAdmins promotes the configured bootstrap accounts so the first
// deployment has a super admin without manual SQL.
func seedSuperAdmins(cfg *config.Config) {
	if cfg.SuperAdminEmails == "" {
		return
	}
	for _, email := range strings.Split(cfg.SuperAdminEmails, ",") {
		email = strings.TrimSpace(strings.ToLower(email))
		if email == "" {
			continue
		}
		res := database.DB.Model(&models.Profile{}).
			Where("email = ? AND role <> ?", email, models.RoleSuperAdmin).
			Update("role", models.RoleSuperAdmin)
		if res.Error != nil {
			slog.Error("super admin seed failed", "email", email, "error", res.Error)
		} else if res.RowsAffected > 0 {
			slog.Info("super admin promoted", "email", email)
		}
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
