package dashboard

import (
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/resources/budgets"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/resources/investments"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/resources/transactions"
	"github.com/gofiber/fiber/v2"
)

// DashboardPlugin owns no tables; it only reads the other resources.
type DashboardPlugin struct {
	service *DashboardService
}

func New(
	txs repository.OwnedRepository[transactions.Transaction],
	bs repository.OwnedRepository[budgets.Budget],
	invs repository.OwnedRepository[investments.Investment],
) *DashboardPlugin {
	return &DashboardPlugin{service: NewDashboardService(txs, bs, invs)}
}

func (p *DashboardPlugin) RegisterRoutes(router fiber.Router, guard fiber.Handler) {
	handler := NewDashboardHandler(p.service)
	router.Get("/dashboard", guard, handler.Get)
}
