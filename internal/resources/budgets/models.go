package budgets

import (
	"time"

	"github.com/google/uuid"
)

const (
	PeriodMonthly = "monthly"
	PeriodWeekly  = "weekly"
	PeriodCustom  = "custom"
)

// Budget caps spending in one category between StartDate and EndDate inclusive.
type Budget struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	Category  string    `gorm:"size:100;not null" json:"category"`
	Amount    float64   `gorm:"not null" json:"amount"`
	Period    string    `gorm:"size:10;not null;default:monthly" json:"period"`
	StartDate time.Time `gorm:"not null" json:"startDate"`
	EndDate   time.Time `gorm:"not null" json:"endDate"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b Budget) Key() uuid.UUID   { return b.ID }
func (b Budget) Owner() uuid.UUID { return b.UserID }

// --- DTOs ---

type CreateBudgetRequest struct {
	Category  string  `json:"category"`
	Amount    float64 `json:"amount"`
	Period    string  `json:"period"`
	StartDate string  `json:"startDate"`
	EndDate   string  `json:"endDate"`
}

type UpdateBudgetRequest struct {
	Category  *string  `json:"category"`
	Amount    *float64 `json:"amount"`
	Period    *string  `json:"period"`
	StartDate *string  `json:"startDate"`
	EndDate   *string  `json:"endDate"`
}
