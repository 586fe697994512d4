package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/mail"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/resources"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/resources/budgets"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/resources/dashboard"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/resources/investments"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/resources/transactions"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	cfg := config.Load()

	// Structured logging (JSON to stdout)
	logging.Setup(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	st, err := openStores(cfg)
	if err != nil {
		slog.Error("store setup failed", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}

	// Resources
	plugins := []resources.Plugin{
		transactions.New(st.transactions),
		budgets.New(st.budgets),
		investments.New(st.investments),
	}
	dash := dashboard.New(st.transactions, st.budgets, st.investments)

	if err := st.migrate(plugins, cfg); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// Auth components
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry)
	google := auth.NewGoogleVerifier(cfg.GoogleClientID, cfg.GoogleJWKSURL, cfg.GoogleTimeout)
	if cfg.GoogleClientID == "" {
		slog.Warn("GOOGLE_CLIENT_ID not set, google sign-in will be rejected")
	}

	var mailer mail.Mailer
	if cfg.SMTPHost != "" {
		mailer = mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom, cfg.MailTimeout)
	} else {
		slog.Warn("SMTP_HOST not set, verification codes will be written to the log")
		mailer = mail.NewLogMailer(slog.Default())
	}

	clearers := make([]services.DataClearer, 0, len(plugins))
	for _, p := range plugins {
		clearers = append(clearers, p)
	}

	authService := services.NewAuthService(services.AuthDeps{
		Users:    st.users,
		Hasher:   auth.NewPasswordHasher(cfg.BcryptCost),
		Tokens:   tokens,
		OTP:      auth.NewOTPService(cfg.OTPSecret, cfg.OTPTTL),
		Google:   google,
		Mailer:   mailer,
		OTPTTL:   cfg.OTPTTL,
		Clearers: clearers,
	})

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(authService)
	healthHandler := handlers.NewHealthHandler(st.users)

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.RequestContext())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())

	// Routes
	guard := middleware.AccessGuard(tokens, st.users)
	routes.Setup(app, cfg, guard, authHandler, userHandler, healthHandler, plugins, dash)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "store", cfg.StoreDriver)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	google.Close()
	st.close()
	sentry.Flush(2 * time.Second)

	slog.Info("server stopped")
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
		slog.ErrorContext(c.UserContext(), "unhandled server error", "error", err.Error())
		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.ErrorResponse{
		Error:   true,
		Message: message,
	})
}
