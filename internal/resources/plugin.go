// Package resources holds the owner-scoped finance records. Each resource is a
// plugin that mounts its own routes under the protected /api group.
package resources

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/repository"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Plugin defines the interface every resource must implement.
type Plugin interface {
	// ID is the resource name used in logs and in the clear-data summary.
	ID() string

	// Models returns the GORM model pointers to migrate.
	Models() []interface{}

	// RegisterRoutes mounts the resource under the /api group. Every route
	// it adds must run guard first.
	RegisterRoutes(router fiber.Router, guard fiber.Handler)

	// ClearOwner deletes every record owned by the user and reports how many.
	ClearOwner(ctx context.Context, owner uuid.UUID) (int64, error)
}

var ErrInvalidDate = errors.New("dates must be YYYY-MM-DD or RFC 3339")

// StoreFailure maps repository errors: a miss becomes 404, anything else 500.
func StoreFailure(c *fiber.Ctx, err error, notFound, failed string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return Fail(c, fiber.StatusNotFound, notFound)
	}
	slog.ErrorContext(c.UserContext(), failed, "path", c.Path(), "error", err)
	return Fail(c, fiber.StatusInternalServerError, failed)
}

func Fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: message})
}

// ParseDate accepts a calendar date or a full timestamp and returns UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, ErrInvalidDate
}
