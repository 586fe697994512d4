package investments

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/resources"
	"github.com/google/uuid"
)

var (
	ErrSymbolRequired       = errors.New("symbol is required")
	ErrNameRequired         = errors.New("name is required")
	ErrInvalidType          = errors.New("type must be stock, crypto or mutual_fund")
	ErrInvalidQuantity      = errors.New("quantity must be greater than zero")
	ErrInvalidPrice         = errors.New("prices must not be negative")
	ErrPurchaseDateRequired = errors.New("purchaseDate is required")
	ErrInvestmentNotFound   = errors.New("investment not found")
)

type InvestmentService struct {
	repo repository.OwnedRepository[Investment]
	now  func() time.Time
}

func NewInvestmentService(repo repository.OwnedRepository[Investment]) *InvestmentService {
	return &InvestmentService{repo: repo, now: time.Now}
}

func (s *InvestmentService) List(ctx context.Context, userID uuid.UUID) ([]Investment, error) {
	return s.repo.List(ctx, userID)
}

func (s *InvestmentService) Get(ctx context.Context, userID, id uuid.UUID) (*Investment, error) {
	return s.repo.Get(ctx, userID, id)
}

func (s *InvestmentService) Create(ctx context.Context, userID uuid.UUID, req CreateInvestmentRequest) (*Investment, error) {
	if strings.TrimSpace(req.PurchaseDate) == "" {
		return nil, ErrPurchaseDateRequired
	}
	purchased, err := resources.ParseDate(req.PurchaseDate)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	inv := Investment{
		ID:            uuid.New(),
		UserID:        userID,
		Symbol:        strings.ToUpper(strings.TrimSpace(req.Symbol)),
		Name:          strings.TrimSpace(req.Name),
		Type:          strings.ToLower(strings.TrimSpace(req.Type)),
		Quantity:      req.Quantity,
		PurchasePrice: req.PurchasePrice,
		CurrentPrice:  req.CurrentPrice,
		PurchaseDate:  purchased,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := validate(&inv); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (s *InvestmentService) Update(ctx context.Context, userID, id uuid.UUID, req UpdateInvestmentRequest) (*Investment, error) {
	var purchased time.Time
	if req.PurchaseDate != nil {
		d, err := resources.ParseDate(*req.PurchaseDate)
		if err != nil {
			return nil, err
		}
		purchased = d
	}

	return s.repo.Update(ctx, userID, id, func(inv *Investment) error {
		if req.Symbol != nil {
			inv.Symbol = strings.ToUpper(strings.TrimSpace(*req.Symbol))
		}
		if req.Name != nil {
			inv.Name = strings.TrimSpace(*req.Name)
		}
		if req.Type != nil {
			inv.Type = strings.ToLower(strings.TrimSpace(*req.Type))
		}
		if req.Quantity != nil {
			inv.Quantity = *req.Quantity
		}
		if req.PurchasePrice != nil {
			inv.PurchasePrice = *req.PurchasePrice
		}
		if req.CurrentPrice != nil {
			inv.CurrentPrice = *req.CurrentPrice
		}
		if req.PurchaseDate != nil {
			inv.PurchaseDate = purchased
		}
		inv.UpdatedAt = s.now().UTC()
		return validate(inv)
	})
}

func (s *InvestmentService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.Delete(ctx, userID, id)
}

func (s *InvestmentService) Clear(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.DeleteAll(ctx, userID)
}

func validate(inv *Investment) error {
	if inv.Symbol == "" {
		return ErrSymbolRequired
	}
	if inv.Name == "" {
		return ErrNameRequired
	}
	if !isValidType(inv.Type) {
		return ErrInvalidType
	}
	if inv.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if inv.PurchasePrice < 0 || inv.CurrentPrice < 0 {
		return ErrInvalidPrice
	}
	return nil
}

func isValidType(t string) bool {
	for _, v := range Types {
		if v == t {
			return true
		}
	}
	return false
}

func isValidationError(err error) bool {
	return errors.Is(err, ErrSymbolRequired) ||
		errors.Is(err, ErrNameRequired) ||
		errors.Is(err, ErrInvalidType) ||
		errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrInvalidPrice) ||
		errors.Is(err, ErrPurchaseDateRequired) ||
		errors.Is(err, resources.ErrInvalidDate)
}
