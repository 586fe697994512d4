package investments

import (
	"time"

	"github.com/google/uuid"
)

var Types = []string{"stock", "crypto", "mutual_fund"}

type Investment struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	Symbol        string    `gorm:"size:20;not null" json:"symbol"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	Type          string    `gorm:"size:20;not null" json:"type"`
	Quantity      float64   `gorm:"not null" json:"quantity"`
	PurchasePrice float64   `gorm:"not null" json:"purchasePrice"`
	CurrentPrice  float64   `gorm:"not null" json:"currentPrice"`
	PurchaseDate  time.Time `gorm:"not null" json:"purchaseDate"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (i Investment) Key() uuid.UUID   { return i.ID }
func (i Investment) Owner() uuid.UUID { return i.UserID }

func (i Investment) Value() float64 { return i.Quantity * i.CurrentPrice }
func (i Investment) Cost() float64  { return i.Quantity * i.PurchasePrice }

// --- DTOs ---

type CreateInvestmentRequest struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	Quantity      float64 `json:"quantity"`
	PurchasePrice float64 `json:"purchasePrice"`
	CurrentPrice  float64 `json:"currentPrice"`
	PurchaseDate  string  `json:"purchaseDate"`
}

type UpdateInvestmentRequest struct {
	Symbol        *string  `json:"symbol"`
	Name          *string  `json:"name"`
	Type          *string  `json:"type"`
	Quantity      *float64 `json:"quantity"`
	PurchasePrice *float64 `json:"purchasePrice"`
	CurrentPrice  *float64 `json:"currentPrice"`
	PurchaseDate  *string  `json:"purchaseDate"`
}
