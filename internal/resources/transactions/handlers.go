package transactions

import (
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/resources"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type TransactionHandler struct {
	service *TransactionService
}

func NewTransactionHandler(service *TransactionService) *TransactionHandler {
	return &TransactionHandler{service: service}
}

func (h *TransactionHandler) List(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return resources.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	txs, err := h.service.List(c.UserContext(), userID)
	if err != nil {
		return resources.StoreFailure(c, err, ErrTransactionNotFound.Error(), "Failed to fetch transactions")
	}
	if txs == nil {
		txs = []Transaction{}
	}
	return c.JSON(txs)
}

func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return resources.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req CreateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return resources.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	tx, err := h.service.Create(c.UserContext(), userID, req)
	if err != nil {
		if isValidationError(err) {
			return resources.Fail(c, fiber.StatusBadRequest, err.Error())
		}
		return resources.StoreFailure(c, err, ErrTransactionNotFound.Error(), "Failed to add transaction")
	}
	return c.Status(fiber.StatusCreated).JSON(tx)
}

func (h *TransactionHandler) Get(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return resources.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return resources.Fail(c, fiber.StatusNotFound, ErrTransactionNotFound.Error())
	}

	tx, err := h.service.Get(c.UserContext(), userID, id)
	if err != nil {
		return resources.StoreFailure(c, err, ErrTransactionNotFound.Error(), "Failed to fetch transaction")
	}
	return c.JSON(tx)
}

func (h *TransactionHandler) Update(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return resources.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return resources.Fail(c, fiber.StatusNotFound, ErrTransactionNotFound.Error())
	}

	var req UpdateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return resources.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	tx, err := h.service.Update(c.UserContext(), userID, id, req)
	if err != nil {
		if isValidationError(err) {
			return resources.Fail(c, fiber.StatusBadRequest, err.Error())
		}
		return resources.StoreFailure(c, err, ErrTransactionNotFound.Error(), "Failed to update transaction")
	}
	return c.JSON(tx)
}

func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return resources.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return resources.Fail(c, fiber.StatusNotFound, ErrTransactionNotFound.Error())
	}

	if err := h.service.Delete(c.UserContext(), userID, id); err != nil {
		return resources.StoreFailure(c, err, ErrTransactionNotFound.Error(), "Failed to delete transaction")
	}
	return c.JSON(dto.MessageResponse{Message: "Transaction deleted"})
}
