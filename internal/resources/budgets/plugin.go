package budgets

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/repository"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type BudgetsPlugin struct {
	service *BudgetService
}

func New(repo repository.OwnedRepository[Budget]) *BudgetsPlugin {
	return &BudgetsPlugin{service: NewBudgetService(repo)}
}

func (p *BudgetsPlugin) ID() string { return "budgets" }

func (p *BudgetsPlugin) Models() []interface{} {
	return []interface{}{&Budget{}}
}

// RegisterRoutes mounts under /budget, the path existing clients call.
func (p *BudgetsPlugin) RegisterRoutes(router fiber.Router, guard fiber.Handler) {
	g := router.Group("/budget", guard)
	handler := NewBudgetHandler(p.service)

	g.Get("/", handler.List)
	g.Post("/", handler.Create)
	g.Get("/:id", handler.Get)
	g.Put("/:id", handler.Update)
	g.Delete("/:id", handler.Delete)
}

func (p *BudgetsPlugin) ClearOwner(ctx context.Context, owner uuid.UUID) (int64, error) {
	return p.service.Clear(ctx, owner)
}
