package dashboard

import (
	"time"

	"github.com/google/uuid"
)

type Summary struct {
	Month              string             `json:"month"`
	Income             float64            `json:"income"`
	Expenses           float64            `json:"expenses"`
	Net                float64            `json:"net"`
	ExpensesByCategory map[string]float64 `json:"expensesByCategory"`
	Trend              []MonthTotals      `json:"trend"`
	Portfolio          Portfolio          `json:"portfolio"`
	Budgets            []BudgetUsage      `json:"budgets"`
}

type MonthTotals struct {
	Month    string  `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

type Portfolio struct {
	Holdings      int     `json:"holdings"`
	Value         float64 `json:"value"`
	Cost          float64 `json:"cost"`
	ProfitLoss    float64 `json:"profitLoss"`
	ProfitLossPct float64 `json:"profitLossPct"`
}

type BudgetUsage struct {
	ID        uuid.UUID `json:"id"`
	Category  string    `json:"category"`
	Period    string    `json:"period"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Amount    float64   `json:"amount"`
	Spent     float64   `json:"spent"`
	Remaining float64   `json:"remaining"`
	Percent   float64   `json:"percent"`
}
