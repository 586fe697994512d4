package dashboard

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/resources"
	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service *DashboardService
}

func NewDashboardHandler(service *DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return resources.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	summary, err := h.service.Summary(c.UserContext(), userID, c.Query("month"))
	if err != nil {
		if errors.Is(err, ErrInvalidMonth) {
			return resources.Fail(c, fiber.StatusBadRequest, err.Error())
		}
		return resources.StoreFailure(c, err, "Not found", "Failed to build dashboard")
	}
	return c.JSON(summary)
}
