package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthFailure_StatusMapping(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		message string
	}{
		{fmt.Errorf("%w: email is required", services.ErrValidation), 400, "invalid request: email is required"},
		{services.ErrAlreadyExists, 400, services.ErrAlreadyExists.Error()},
		{services.ErrInvalidOTP, 400, services.ErrInvalidOTP.Error()},
		{services.ErrOTPExpired, 400, services.ErrOTPExpired.Error()},
		{services.ErrWeakPassword, 400, services.ErrWeakPassword.Error()},
		{services.ErrPasswordAlreadySet, 400, services.ErrPasswordAlreadySet.Error()},
		{services.ErrNoPasswordSet, 400, services.ErrNoPasswordSet.Error()},
		{services.ErrInvalidCredentials, 401, services.ErrInvalidCredentials.Error()},
		{services.ErrProviderRejected, 401, services.ErrProviderRejected.Error()},
		{services.ErrProviderUnavailable, 503, services.ErrProviderUnavailable.Error()},
		{services.ErrDeliveryFailed, 500, "Failed to send verification code"},
		{errors.New("pq: connection refused"), 500, "Internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return authFailure(c, tc.err, "test") })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			defer resp.Body.Close()
			raw, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			assert.Equal(t, tc.status, resp.StatusCode)
			assert.JSONEq(t, fmt.Sprintf(`{"error":true,"message":%q}`, tc.message), string(raw))
		})
	}
}
