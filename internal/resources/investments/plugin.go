package investments

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/repository"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type InvestmentsPlugin struct {
	service *InvestmentService
}

func New(repo repository.OwnedRepository[Investment]) *InvestmentsPlugin {
	return &InvestmentsPlugin{service: NewInvestmentService(repo)}
}

func (p *InvestmentsPlugin) ID() string { return "investments" }

func (p *InvestmentsPlugin) Models() []interface{} {
	return []interface{}{&Investment{}}
}

func (p *InvestmentsPlugin) RegisterRoutes(router fiber.Router, guard fiber.Handler) {
	g := router.Group("/investments", guard)
	handler := NewInvestmentHandler(p.service)

	g.Get("/", handler.List)
	g.Post("/", handler.Create)
	g.Get("/:id", handler.Get)
	g.Put("/:id", handler.Update)
	g.Delete("/:id", handler.Delete)
}

func (p *InvestmentsPlugin) ClearOwner(ctx context.Context, owner uuid.UUID) (int64, error) {
	return p.service.Clear(ctx, owner)
}
