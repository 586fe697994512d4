package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

var clientErrors = []error{
	services.ErrValidation,
	services.ErrAlreadyExists,
	services.ErrInvalidOTP,
	services.ErrOTPExpired,
	services.ErrWeakPassword,
	services.ErrPasswordAlreadySet,
	services.ErrNoPasswordSet,
}

// authFailure turns an AuthService error into a response. Anything it does not
// recognise is logged and answered with a bare 500.
func authFailure(c *fiber.Ctx, err error, action string) error {
	for _, target := range clientErrors {
		if errors.Is(err, target) {
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
	}

	switch {
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrProviderRejected):
		return fail(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrProviderUnavailable):
		return fail(c, fiber.StatusServiceUnavailable, err.Error())
	case errors.Is(err, services.ErrDeliveryFailed):
		return fail(c, fiber.StatusInternalServerError, "Failed to send verification code")
	}

	slog.ErrorContext(c.UserContext(), "auth request failed", "action", action, "error", err)
	return fail(c, fiber.StatusInternalServerError, "Internal server error")
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: message})
}
