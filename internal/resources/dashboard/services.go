package dashboard

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/resources/budgets"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/resources/investments"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/resources/transactions"
	"github.com/google/uuid"
)

const (
	monthLayout = "2006-01"
	trendMonths = 6
)

var ErrInvalidMonth = errors.New("month must be YYYY-MM")

// DashboardService summarises one user's records. It reads through the same
// owner-scoped stores as the resource endpoints.
type DashboardService struct {
	txs         repository.OwnedRepository[transactions.Transaction]
	budgets     repository.OwnedRepository[budgets.Budget]
	investments repository.OwnedRepository[investments.Investment]
	now         func() time.Time
}

func NewDashboardService(
	txs repository.OwnedRepository[transactions.Transaction],
	bs repository.OwnedRepository[budgets.Budget],
	invs repository.OwnedRepository[investments.Investment],
) *DashboardService {
	return &DashboardService{txs: txs, budgets: bs, investments: invs, now: time.Now}
}

// Summary builds the dashboard for month ("YYYY-MM", empty means the current month).
func (s *DashboardService) Summary(ctx context.Context, userID uuid.UUID, month string) (*Summary, error) {
	start, err := s.monthStart(month)
	if err != nil {
		return nil, err
	}

	txs, err := s.txs.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	bs, err := s.budgets.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load budgets: %w", err)
	}
	invs, err := s.investments.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load investments: %w", err)
	}

	sum := &Summary{
		Month:              start.Format(monthLayout),
		ExpensesByCategory: map[string]float64{},
		Trend:              trend(txs, start),
		Portfolio:          portfolio(invs),
		Budgets:            usage(bs, txs),
	}

	end := start.AddDate(0, 1, 0)
	for _, tx := range txs {
		if tx.Date.Before(start) || !tx.Date.Before(end) {
			continue
		}
		switch tx.Type {
		case transactions.TypeIncome:
			sum.Income += tx.Amount
		case transactions.TypeExpense:
			sum.Expenses += tx.Amount
			sum.ExpensesByCategory[tx.Category] += tx.Amount
		}
	}
	for k, v := range sum.ExpensesByCategory {
		sum.ExpensesByCategory[k] = round2(v)
	}
	sum.Income = round2(sum.Income)
	sum.Expenses = round2(sum.Expenses)
	sum.Net = round2(sum.Income - sum.Expenses)

	return sum, nil
}

func (s *DashboardService) monthStart(month string) (time.Time, error) {
	if month == "" {
		now := s.now().UTC()
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(monthLayout, month)
	if err != nil {
		return time.Time{}, ErrInvalidMonth
	}
	return t.UTC(), nil
}

// trend returns income and expense totals for the trendMonths months ending at last, oldest first.
func trend(txs []transactions.Transaction, last time.Time) []MonthTotals {
	first := last.AddDate(0, -(trendMonths - 1), 0)
	out := make([]MonthTotals, trendMonths)
	for i := range out {
		out[i].Month = first.AddDate(0, i, 0).Format(monthLayout)
	}

	for _, tx := range txs {
		i := monthsBetween(first, tx.Date)
		if i < 0 || i >= trendMonths {
			continue
		}
		if tx.Type == transactions.TypeIncome {
			out[i].Income += tx.Amount
		} else {
			out[i].Expenses += tx.Amount
		}
	}
	for i := range out {
		out[i].Income = round2(out[i].Income)
		out[i].Expenses = round2(out[i].Expenses)
	}
	return out
}

func portfolio(invs []investments.Investment) Portfolio {
	p := Portfolio{Holdings: len(invs)}
	for _, inv := range invs {
		p.Value += inv.Value()
		p.Cost += inv.Cost()
	}
	p.ProfitLoss = p.Value - p.Cost
	if p.Cost > 0 {
		p.ProfitLossPct = round2(p.ProfitLoss / p.Cost * 100)
	}
	p.Value = round2(p.Value)
	p.Cost = round2(p.Cost)
	p.ProfitLoss = round2(p.ProfitLoss)
	return p
}

// usage counts expenses in the budget's category from StartDate through the
// whole of EndDate.
func usage(bs []budgets.Budget, txs []transactions.Transaction) []BudgetUsage {
	out := make([]BudgetUsage, 0, len(bs))
	for _, b := range bs {
		until := b.EndDate.AddDate(0, 0, 1)
		u := BudgetUsage{
			ID:        b.ID,
			Category:  b.Category,
			Period:    b.Period,
			StartDate: b.StartDate,
			EndDate:   b.EndDate,
			Amount:    b.Amount,
		}
		for _, tx := range txs {
			if tx.Type != transactions.TypeExpense || !strings.EqualFold(tx.Category, b.Category) {
				continue
			}
			if tx.Date.Before(b.StartDate) || !tx.Date.Before(until) {
				continue
			}
			u.Spent += tx.Amount
		}
		u.Spent = round2(u.Spent)
		u.Remaining = round2(b.Amount - u.Spent)
		if b.Amount > 0 {
			u.Percent = round2(u.Spent / b.Amount * 100)
		}
		out = append(out, u)
	}
	return out
}

func monthsBetween(from, t time.Time) int {
	t = t.UTC()
	return (t.Year()-from.Year())*12 + int(t.Month()) - int(from.Month())
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
