package transactions

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/repository"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type TransactionsPlugin struct {
	service *TransactionService
}

func New(repo repository.OwnedRepository[Transaction]) *TransactionsPlugin {
	return &TransactionsPlugin{service: NewTransactionService(repo)}
}

func (p *TransactionsPlugin) ID() string { return "transactions" }

func (p *TransactionsPlugin) Models() []interface{} {
	return []interface{}{&Transaction{}}
}

func (p *TransactionsPlugin) RegisterRoutes(router fiber.Router, guard fiber.Handler) {
	g := router.Group("/transactions", guard)
	handler := NewTransactionHandler(p.service)

	g.Get("/", handler.List)
	g.Post("/", handler.Create)
	g.Get("/:id", handler.Get)
	g.Put("/:id", handler.Update)
	g.Delete("/:id", handler.Delete)
}

func (p *TransactionsPlugin) ClearOwner(ctx context.Context, owner uuid.UUID) (int64, error) {
	return p.service.Clear(ctx, owner)
}
