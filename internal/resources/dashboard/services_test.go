package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/repository/memory"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/resources/budgets"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/resources/investments"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/resources/transactions"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	txs := memory.NewOwned[transactions.Transaction]()
	bs := memory.NewOwned[budgets.Budget]()
	invs := memory.NewOwned[investments.Investment]()
	svc := NewDashboardService(txs, bs, invs)

	alice, bob := uuid.New(), uuid.New()
	add := func(owner uuid.UUID, typ string, amount float64, category, day string) {
		require.NoError(t, txs.Create(ctx, &transactions.Transaction{
			ID: uuid.New(), UserID: owner, Type: typ, Amount: amount, Category: category, Date: date(day),
		}))
	}
	add(alice, "income", 3000, "Salary", "2025-03-01")
	add(alice, "expense", 120.5, "Groceries", "2025-03-05")
	add(alice, "expense", 79.5, "Groceries", "2025-03-31")
	add(alice, "expense", 50, "Fun", "2025-03-10")
	add(alice, "expense", 200, "Groceries", "2025-02-10")
	add(alice, "income", 100, "Gift", "2024-09-01")
	add(bob, "expense", 999, "Groceries", "2025-03-06")

	require.NoError(t, bs.Create(ctx, &budgets.Budget{
		ID: uuid.New(), UserID: alice, Category: "groceries", Amount: 400, Period: "monthly",
		StartDate: date("2025-03-01"), EndDate: date("2025-03-31"),
	}))
	require.NoError(t, invs.Create(ctx, &investments.Investment{
		ID: uuid.New(), UserID: alice, Symbol: "AAPL", Name: "Apple", Type: "stock",
		Quantity: 10, PurchasePrice: 100, CurrentPrice: 120,
	}))

	sum, err := svc.Summary(ctx, alice, "2025-03")
	require.NoError(t, err)

	assert.Equal(t, "2025-03", sum.Month)
	assert.Equal(t, 3000.0, sum.Income)
	assert.Equal(t, 250.0, sum.Expenses)
	assert.Equal(t, 2750.0, sum.Net)
	assert.Equal(t, map[string]float64{"Groceries": 200, "Fun": 50}, sum.ExpensesByCategory)

	require.Len(t, sum.Trend, 6)
	assert.Equal(t, "2024-10", sum.Trend[0].Month)
	assert.Equal(t, "2025-03", sum.Trend[5].Month)
	assert.Equal(t, 200.0, sum.Trend[4].Expenses)
	assert.Equal(t, 0.0, sum.Trend[0].Income)

	assert.Equal(t, Portfolio{Holdings: 1, Value: 1200, Cost: 1000, ProfitLoss: 200, ProfitLossPct: 20}, sum.Portfolio)

	require.Len(t, sum.Budgets, 1)
	assert.Equal(t, 200.0, sum.Budgets[0].Spent)
	assert.Equal(t, 200.0, sum.Budgets[0].Remaining)
	assert.Equal(t, 50.0, sum.Budgets[0].Percent)
}

func TestSummary_DefaultsToCurrentMonth(t *testing.T) {
	svc := NewDashboardService(memory.NewOwned[transactions.Transaction](),
		memory.NewOwned[budgets.Budget](), memory.NewOwned[investments.Investment]())
	svc.now = func() time.Time { return time.Date(2025, 7, 19, 15, 0, 0, 0, time.UTC) }

	sum, err := svc.Summary(context.Background(), uuid.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "2025-07", sum.Month)
	assert.Empty(t, sum.Budgets)
}

func TestSummary_InvalidMonth(t *testing.T) {
	svc := NewDashboardService(memory.NewOwned[transactions.Transaction](),
		memory.NewOwned[budgets.Budget](), memory.NewOwned[investments.Investment]())

	_, err := svc.Summary(context.Background(), uuid.New(), "March")
	assert.ErrorIs(t, err, ErrInvalidMonth)
}
