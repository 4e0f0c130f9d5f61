package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"

	"listinghub/internal/config"
	"listinghub/internal/handlers"
	"listinghub/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	itemHandler *handlers.ItemHandler,
	reviewHandler *handlers.ReviewHandler,
	ratingHandler *handlers.RatingHandler,
	updateHandler *handlers.UpdateHandler,
	userHandler *handlers.UserHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Public catalog browsing
	api.Get("/categories", itemHandler.Categories)
	api.Get("/categories/:slug/items", itemHandler.List)
	api.Get("/categories/:slug/items/:itemSlug", itemHandler.Get)
	api.Get("/search", itemHandler.Search)
	api.Get("/reviews", reviewHandler.List)
	api.Get("/ratings", ratingHandler.Summary)

	// Auth — public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	// Protected routes (JWT required), applied per route so the middleware
	// never touches the public surface.
	jwt := middleware.JWTProtected(cfg)

	api.Post("/auth/logout", jwt, authHandler.Logout)
	api.Get("/me", jwt, authHandler.Me)
	api.Put("/me", jwt, authHandler.UpdateProfile)
	api.Get("/me/activity", jwt, userHandler.Activity)
	api.Get("/me/reviews", jwt, reviewHandler.MyReviews)
	api.Get("/me/ratings", jwt, ratingHandler.MyRatings)
	api.Get("/me/submissions", jwt, itemHandler.Submissions)

	api.Post("/items", jwt, itemHandler.Create)

	api.Post("/reviews", jwt, reviewHandler.Create)
	api.Put("/reviews/:id", jwt, reviewHandler.Update)
	api.Delete("/reviews/:id", jwt, reviewHandler.Delete)
	api.Post("/reviews/:id/report", jwt, reviewHandler.Report)

	api.Post("/ratings", jwt, ratingHandler.Rate)
	api.Get("/ratings/user", jwt, ratingHandler.UserRating)
	api.Delete("/ratings/:id", jwt, ratingHandler.Delete)

	api.Post("/item-updates", jwt, updateHandler.Submit)
	api.Get("/item-updates", jwt, updateHandler.List)

	// Moderation endpoints (JWT + moderator-or-admin)
	moderator := middleware.RequireModerator(db)
	api.Post("/item-updates/:id/approve", jwt, moderator, updateHandler.Approve)
	api.Post("/item-updates/:id/reject", jwt, moderator, updateHandler.Reject)
	api.Delete("/items/:category/:id", jwt, moderator, itemHandler.Delete)

	// Admin panel. Moderation endpoints take moderator-or-admin; user
	// management is admin only.
	admin := api.Group("/admin", jwt, moderator)
	admin.Get("/items", itemHandler.ModerationList)
	admin.Post("/items/:category/:id/approve", itemHandler.Approve)
	admin.Post("/items/:category/:id/reject", itemHandler.Reject)

	admin.Get("/reviews", reviewHandler.ModerationList)
	admin.Post("/reviews/:id/approve", reviewHandler.Approve)
	admin.Post("/reviews/:id/reject", reviewHandler.Reject)

	admin.Get("/reports", reviewHandler.Reports)
	admin.Post("/reports/:id/resolve", reviewHandler.ResolveReport)

	admin.Put("/ratings/moderator", ratingHandler.SetModeratorRating)

	users := admin.Group("/users", middleware.RequireAdmin(db, cfg))
	users.Get("/", userHandler.List)
	users.Get("/stats", userHandler.Stats)
	users.Put("/:id/role", userHandler.UpdateRole)
	users.Delete("/:id", userHandler.Delete)
}
