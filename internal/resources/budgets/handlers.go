package budgets

import (
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/resources"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type BudgetHandler struct {
	service *BudgetService
}

func NewBudgetHandler(service *BudgetService) *BudgetHandler {
	return &BudgetHandler{service: service}
}

func (h *BudgetHandler) List(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return resources.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	budgets, err := h.service.List(c.UserContext(), userID)
	if err != nil {
		return resources.StoreFailure(c, err, ErrBudgetNotFound.Error(), "Failed to fetch budgets")
	}
	if budgets == nil {
		budgets = []Budget{}
	}
	return c.JSON(budgets)
}

func (h *BudgetHandler) Create(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return resources.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req CreateBudgetRequest
	if err := c.BodyParser(&req); err != nil {
		return resources.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	budget, err := h.service.Create(c.UserContext(), userID, req)
	if err != nil {
		if isValidationError(err) {
			return resources.Fail(c, fiber.StatusBadRequest, err.Error())
		}
		return resources.StoreFailure(c, err, ErrBudgetNotFound.Error(), "Failed to add budget")
	}
	return c.Status(fiber.StatusCreated).JSON(budget)
}

func (h *BudgetHandler) Get(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return resources.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return resources.Fail(c, fiber.StatusNotFound, ErrBudgetNotFound.Error())
	}

	budget, err := h.service.Get(c.UserContext(), userID, id)
	if err != nil {
		return resources.StoreFailure(c, err, ErrBudgetNotFound.Error(), "Failed to fetch budget")
	}
	return c.JSON(budget)
}

func (h *BudgetHandler) Update(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return resources.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return resources.Fail(c, fiber.StatusNotFound, ErrBudgetNotFound.Error())
	}

	var req UpdateBudgetRequest
	if err := c.BodyParser(&req); err != nil {
		return resources.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	budget, err := h.service.Update(c.UserContext(), userID, id, req)
	if err != nil {
		if isValidationError(err) {
			return resources.Fail(c, fiber.StatusBadRequest, err.Error())
		}
		return resources.StoreFailure(c, err, ErrBudgetNotFound.Error(), "Failed to update budget")
	}
	return c.JSON(budget)
}

func (h *BudgetHandler) Delete(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return resources.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return resources.Fail(c, fiber.StatusNotFound, ErrBudgetNotFound.Error())
	}

	if err := h.service.Delete(c.UserContext(), userID, id); err != nil {
		return resources.StoreFailure(c, err, ErrBudgetNotFound.Error(), "Failed to delete budget")
	}
	return c.JSON(dto.MessageResponse{Message: "Budget deleted"})
}
