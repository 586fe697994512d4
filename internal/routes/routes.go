package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/resources"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/resources/dashboard"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	guard fiber.Handler,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	healthHandler *handlers.HealthHandler,
	plugins []resources.Plugin,
	dash *dashboard.DashboardPlugin,
) {
	api := app.Group("/api")

	// General API rate limit per IP
	api.Use(rateLimit(cfg.APIRateLimit))

	api.Get("/health", healthHandler.Check)

	// Registered ahead of the auth limiter so it only counts against the general limit.
	api.Get("/auth/me", guard, authHandler.Me)

	// Auth, public. Stricter limit since these endpoints hash passwords and send mail.
	auth := api.Group("/auth")
	auth.Use(rateLimit(cfg.AuthRateLimit))
	auth.Post("/send-otp", authHandler.SendOTP)
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/google", authHandler.Google)

	// Protected routes. The guard is attached per route or per resource group
	// so it never runs for the public endpoints above.
	user := api.Group("/user", guard)
	user.Post("/set-password", userHandler.SetPassword)
	user.Post("/change-password", userHandler.ChangePassword)
	user.Delete("/data", userHandler.ClearData)

	for _, p := range plugins {
		p.RegisterRoutes(api, guard)
	}
	dash.RegisterRoutes(api, guard)
}

func rateLimit(max int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               max,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Error: true, Message: "Too many requests, please try again later",
			})
		},
	})
}
