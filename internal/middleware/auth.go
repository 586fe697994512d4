package middleware

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/repository"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionKeys is the part of the token service the guard needs.
type SessionKeys interface {
	Keyfunc(t *jwt.Token) (interface{}, error)
	Subject(t *jwt.Token) (uuid.UUID, error)
}

type UserFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

const tokenLocal = "session"

// AccessGuard rejects requests without a valid session token and attaches the
// token's user to the request context. A token whose user no longer exists is
// treated like an invalid one.
func AccessGuard(keys SessionKeys, users UserFinder) fiber.Handler {
	return jwtware.New(jwtware.Config{
		KeyFunc:    keys.Keyfunc,
		Claims:     &auth.SessionClaims{},
		ContextKey: tokenLocal,
		SuccessHandler: func(c *fiber.Ctx) error {
			token, _ := c.Locals(tokenLocal).(*jwt.Token)
			userID, err := keys.Subject(token)
			if err != nil {
				return unauthorized(c)
			}

			user, err := users.FindByID(c.UserContext(), userID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return unauthorized(c)
				}
				slog.ErrorContext(c.UserContext(), "failed to load session user",
					"user_id", userID.String(), "error", err)
				return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
					Error: true, Message: "Internal server error",
				})
			}

			c.SetUserContext(identity.WithUser(c.UserContext(), user))
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return unauthorized(c)
		},
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error:   true,
		Message: "Unauthorized: invalid or expired token",
	})
}
