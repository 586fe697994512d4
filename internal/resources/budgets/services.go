package budgets

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
	ErrCategoryRequired = errors.New("category is required")
	ErrInvalidAmount    = errors.New("amount must be greater than zero")
	ErrInvalidPeriod    = errors.New("period must be monthly, weekly or custom")
	ErrDatesRequired    = errors.New("startDate and endDate are required")
	ErrInvalidRange     = errors.New("endDate must not be before startDate")
	ErrBudgetNotFound   = errors.New("budget not found")
)

type BudgetService struct {
	repo repository.OwnedRepository[Budget]
	now  func() time.Time
}

func NewBudgetService(repo repository.OwnedRepository[Budget]) *BudgetService {
	return &BudgetService{repo: repo, now: time.Now}
}

func (s *BudgetService) List(ctx context.Context, userID uuid.UUID) ([]Budget, error) {
	return s.repo.List(ctx, userID)
}

func (s *BudgetService) Get(ctx context.Context, userID, id uuid.UUID) (*Budget, error) {
	return s.repo.Get(ctx, userID, id)
}

func (s *BudgetService) Create(ctx context.Context, userID uuid.UUID, req CreateBudgetRequest) (*Budget, error) {
	if strings.TrimSpace(req.StartDate) == "" || strings.TrimSpace(req.EndDate) == "" {
		return nil, ErrDatesRequired
	}
	start, err := resources.ParseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := resources.ParseDate(req.EndDate)
	if err != nil {
		return nil, err
	}

	period := strings.ToLower(strings.TrimSpace(req.Period))
	if period == "" {
		period = PeriodMonthly
	}

	now := s.now().UTC()
	b := Budget{
		ID:        uuid.New(),
		UserID:    userID,
		Category:  strings.TrimSpace(req.Category),
		Amount:    req.Amount,
		Period:    period,
		StartDate: start,
		EndDate:   end,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := validate(&b); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *BudgetService) Update(ctx context.Context, userID, id uuid.UUID, req UpdateBudgetRequest) (*Budget, error) {
	var start, end time.Time
	var err error
	if req.StartDate != nil {
		if start, err = resources.ParseDate(*req.StartDate); err != nil {
			return nil, err
		}
	}
	if req.EndDate != nil {
		if end, err = resources.ParseDate(*req.EndDate); err != nil {
			return nil, err
		}
	}

	return s.repo.Update(ctx, userID, id, func(b *Budget) error {
		if req.Category != nil {
			b.Category = strings.TrimSpace(*req.Category)
		}
		if req.Amount != nil {
			b.Amount = *req.Amount
		}
		if req.Period != nil {
			b.Period = strings.ToLower(strings.TrimSpace(*req.Period))
		}
		if req.StartDate != nil {
			b.StartDate = start
		}
		if req.EndDate != nil {
			b.EndDate = end
		}
		b.UpdatedAt = s.now().UTC()
		return validate(b)
	})
}

func (s *BudgetService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.Delete(ctx, userID, id)
}

func (s *BudgetService) Clear(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.DeleteAll(ctx, userID)
}

func validate(b *Budget) error {
	if b.Category == "" {
		return ErrCategoryRequired
	}
	if b.Amount <= 0 {
		return ErrInvalidAmount
	}
	switch b.Period {
	case PeriodMonthly, PeriodWeekly, PeriodCustom:
	default:
		return ErrInvalidPeriod
	}
	if b.EndDate.Before(b.StartDate) {
		return ErrInvalidRange
	}
	return nil
}

func isValidationError(err error) bool {
	return errors.Is(err, ErrCategoryRequired) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidPeriod) ||
		errors.Is(err, ErrDatesRequired) ||
		errors.Is(err, ErrInvalidRange) ||
		errors.Is(err, resources.ErrInvalidDate)
}
