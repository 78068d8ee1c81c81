package routes

import (
	"time"

	"github.com/artbranch/admin-api/internal/config"
	"github.com/artbranch/admin-api/internal/handlers"
	"github.com/artbranch/admin-api/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	verificationHandler *handlers.VerificationHandler,
	artistHandler *handlers.ArtistHandler,
	adminHandler *handlers.AdminHandler,
	notificationHandler *handlers.NotificationHandler,
	noteHandler *handlers.NoteHandler,
	overviewHandler *handlers.OverviewHandler,
	feedbackHandler *handlers.FeedbackHandler,
	emailHandler *handlers.EmailHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Health (no auth)
	api.Get("/health", healthHandler.Check)

	// Auth is public with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	// Verification submit is the one artist-facing endpoint: any
	// authenticated user may file a request for their own profile.
	api.Post("/verification/requests", middleware.JWTProtected(cfg), verificationHandler.Submit)

	// Admin panel (JWT + active staff profile required)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db))

	// Verification workflow
	admin.Get("/verification/requests", verificationHandler.List)
	admin.Get("/verification/requests/user/:id", verificationHandler.GetByUser)
	admin.Put("/verification/requests/:id", verificationHandler.Decide)
	admin.Delete("/verification/requests", verificationHandler.Purge)

	// Artist management
	admin.Get("/artists", artistHandler.List)
	admin.Get("/artists/latest", artistHandler.Latest)
	admin.Get("/artists/categories", artistHandler.Categories)
	admin.Get("/artists/:id", artistHandler.Get)
	admin.Put("/artists/:id", artistHandler.Edit)
	admin.Put("/artists/:id/status", artistHandler.Transition)
	admin.Put("/artists/:id/featured", artistHandler.SetFeatured)
	admin.Delete("/artists", artistHandler.Delete)

	// Activity notifications
	admin.Get("/notifications", notificationHandler.List)
	admin.Delete("/notifications", notificationHandler.Purge)

	// Admin notes
	admin.Get("/artists/:id/notes", noteHandler.ListForProfile)
	admin.Post("/artists/:id/notes", noteHandler.Create)

	// Dashboard overview
	admin.Get("/overview/stats", overviewHandler.Stats)
	admin.Get("/overview/stale-artists", overviewHandler.StaleArtists)

	// Feedback inbox
	admin.Get("/feedbacks", feedbackHandler.List)

	// Ad-hoc email to an artist
	admin.Post("/emails", emailHandler.Send)

	// Staff management (super admin only for mutations that grant or
	// revoke access; note deletion is also restricted)
	admin.Get("/staff", adminHandler.List)
	admin.Get("/staff/:id", adminHandler.Get)
	admin.Put("/staff/:id", adminHandler.Edit)

	super := api.Group("/admin", middleware.JWTProtected(cfg), middleware.SuperAdminRequired(db))
	super.Post("/staff", adminHandler.Create)
	super.Delete("/staff", adminHandler.Delete)
	super.Delete("/notes/:id", noteHandler.Delete)
}
