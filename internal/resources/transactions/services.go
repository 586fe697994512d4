package transactions

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
	ErrInvalidType         = errors.New("type must be income or expense")
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrCategoryRequired    = errors.New("category is required")
	ErrDescriptionRequired = errors.New("description is required")
	ErrDateRequired        = errors.New("date is required")
	ErrTransactionNotFound = errors.New("transaction not found")
)

type TransactionService struct {
	repo repository.OwnedRepository[Transaction]
	now  func() time.Time
}

func NewTransactionService(repo repository.OwnedRepository[Transaction]) *TransactionService {
	return &TransactionService{repo: repo, now: time.Now}
}

func (s *TransactionService) List(ctx context.Context, userID uuid.UUID) ([]Transaction, error) {
	return s.repo.List(ctx, userID)
}

func (s *TransactionService) Get(ctx context.Context, userID, id uuid.UUID) (*Transaction, error) {
	return s.repo.Get(ctx, userID, id)
}

func (s *TransactionService) Create(ctx context.Context, userID uuid.UUID, req CreateTransactionRequest) (*Transaction, error) {
	if strings.TrimSpace(req.Date) == "" {
		return nil, ErrDateRequired
	}
	date, err := resources.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	tx := Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        strings.ToLower(strings.TrimSpace(req.Type)),
		Amount:      req.Amount,
		Category:    strings.TrimSpace(req.Category),
		Description: strings.TrimSpace(req.Description),
		Date:        date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := validate(&tx); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// Update applies only the fields present in req. The owner and id never change.
func (s *TransactionService) Update(ctx context.Context, userID, id uuid.UUID, req UpdateTransactionRequest) (*Transaction, error) {
	var date time.Time
	if req.Date != nil {
		d, err := resources.ParseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		date = d
	}

	return s.repo.Update(ctx, userID, id, func(tx *Transaction) error {
		if req.Type != nil {
			tx.Type = strings.ToLower(strings.TrimSpace(*req.Type))
		}
		if req.Amount != nil {
			tx.Amount = *req.Amount
		}
		if req.Category != nil {
			tx.Category = strings.TrimSpace(*req.Category)
		}
		if req.Description != nil {
			tx.Description = strings.TrimSpace(*req.Description)
		}
		if req.Date != nil {
			tx.Date = date
		}
		tx.UpdatedAt = s.now().UTC()
		return validate(tx)
	})
}

func (s *TransactionService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.Delete(ctx, userID, id)
}

func (s *TransactionService) Clear(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.DeleteAll(ctx, userID)
}

func validate(tx *Transaction) error {
	if tx.Type != TypeIncome && tx.Type != TypeExpense {
		return ErrInvalidType
	}
	if tx.Amount <= 0 {
		return ErrInvalidAmount
	}
	if tx.Category == "" {
		return ErrCategoryRequired
	}
	if tx.Description == "" {
		return ErrDescriptionRequired
	}
	return nil
}

func isValidationError(err error) bool {
	return errors.Is(err, ErrInvalidType) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrCategoryRequired) ||
		errors.Is(err, ErrDescriptionRequired) ||
		errors.Is(err, ErrDateRequired) ||
		errors.Is(err, resources.ErrInvalidDate)
}
