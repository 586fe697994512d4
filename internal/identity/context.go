package identity

import (
	"context"
	"errors"

	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var ErrNoIdentity = errors.New("no authenticated user in context")

type contextKey struct{}

// WithUser returns a copy of ctx carrying the authenticated user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

// FromContext returns the user attached by the access guard.
func FromContext(ctx context.Context) (*models.User, error) {
	user, ok := ctx.Value(contextKey{}).(*models.User)
	if !ok || user == nil {
		return nil, ErrNoIdentity
	}
	return user, nil
}

// User extracts the authenticated user from the fiber request context.
func User(c *fiber.Ctx) (*models.User, error) {
	return FromContext(c.UserContext())
}

// UserID extracts the authenticated user's id from the fiber request context.
func UserID(c *fiber.Ctx) (uuid.UUID, error) {
	user, err := User(c)
	if err != nil {
		return uuid.Nil, err
	}
	return user.ID, nil
}
