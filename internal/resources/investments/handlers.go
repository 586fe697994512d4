package investments

import (
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/resources"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type InvestmentHandler struct {
	service *InvestmentService
}

func NewInvestmentHandler(service *InvestmentService) *InvestmentHandler {
	return &InvestmentHandler{service: service}
}

func (h *InvestmentHandler) List(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return resources.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	holdings, err := h.service.List(c.UserContext(), userID)
	if err != nil {
		return resources.StoreFailure(c, err, ErrInvestmentNotFound.Error(), "Failed to fetch investments")
	}
	if holdings == nil {
		holdings = []Investment{}
	}
	return c.JSON(holdings)
}

func (h *InvestmentHandler) Create(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return resources.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req CreateInvestmentRequest
	if err := c.BodyParser(&req); err != nil {
		return resources.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	inv, err := h.service.Create(c.UserContext(), userID, req)
	if err != nil {
		if isValidationError(err) {
			return resources.Fail(c, fiber.StatusBadRequest, err.Error())
		}
		return resources.StoreFailure(c, err, ErrInvestmentNotFound.Error(), "Failed to add investment")
	}
	return c.Status(fiber.StatusCreated).JSON(inv)
}

func (h *InvestmentHandler) Get(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return resources.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return resources.Fail(c, fiber.StatusNotFound, ErrInvestmentNotFound.Error())
	}

	inv, err := h.service.Get(c.UserContext(), userID, id)
	if err != nil {
		return resources.StoreFailure(c, err, ErrInvestmentNotFound.Error(), "Failed to fetch investment")
	}
	return c.JSON(inv)
}

func (h *InvestmentHandler) Update(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return resources.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return resources.Fail(c, fiber.StatusNotFound, ErrInvestmentNotFound.Error())
	}

	var req UpdateInvestmentRequest
	if err := c.BodyParser(&req); err != nil {
		return resources.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	inv, err := h.service.Update(c.UserContext(), userID, id, req)
	if err != nil {
		if isValidationError(err) {
			return resources.Fail(c, fiber.StatusBadRequest, err.Error())
		}
		return resources.StoreFailure(c, err, ErrInvestmentNotFound.Error(), "Failed to update investment")
	}
	return c.JSON(inv)
}

func (h *InvestmentHandler) Delete(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return resources.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return resources.Fail(c, fiber.StatusNotFound, ErrInvestmentNotFound.Error())
	}

	if err := h.service.Delete(c.UserContext(), userID, id); err != nil {
		return resources.StoreFailure(c, err, ErrInvestmentNotFound.Error(), "Failed to delete investment")
	}
	return c.JSON(dto.MessageResponse{Message: "Investment deleted"})
}
