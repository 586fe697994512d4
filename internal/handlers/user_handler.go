package handlers

import (
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// UserHandler serves the account settings endpoints. All routes sit behind the access guard.
type UserHandler struct {
	authService *services.AuthService
}

func NewUserHandler(authService *services.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

func (h *UserHandler) SetPassword(c *fiber.Ctx) error {
	user, err := identity.User(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.SetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.authService.SetPassword(c.UserContext(), user, &req); err != nil {
		return authFailure(c, err, "set_password")
	}
	return c.JSON(dto.MessageResponse{Message: "Password set successfully"})
}

func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	user, err := identity.User(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.authService.ChangePassword(c.UserContext(), user, &req); err != nil {
		return authFailure(c, err, "change_password")
	}
	return c.JSON(dto.MessageResponse{Message: "Password changed successfully"})
}

func (h *UserHandler) ClearData(c *fiber.Ctx) error {
	user, err := identity.User(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	deleted, err := h.authService.ClearData(c.UserContext(), user)
	if err != nil {
		return authFailure(c, err, "clear_data")
	}
	return c.JSON(dto.ClearDataResponse{Message: "All data cleared", Deleted: deleted})
}
