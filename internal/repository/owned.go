package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/identity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type gormOwned[T Owned] struct {
	db *gorm.DB
}

// NewOwnedRepository returns a GORM backed store for T. T must be a GORM model
// with id and user_id columns.
func NewOwnedRepository[T Owned](db *gorm.DB) OwnedRepository[T] {
	return &gormOwned[T]{db: db}
}

func (r *gormOwned[T]) List(ctx context.Context, owner uuid.UUID) ([]T, error) {
	var recs []T
	err := r.db.WithContext(ctx).Scopes(identity.ForOwner(owner)).
		Order("created_at DESC").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return recs, nil
}

func (r *gormOwned[T]) Create(ctx context.Context, rec *T) error {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create record: %w", err)
	}
	return nil
}

func (r *gormOwned[T]) Get(ctx context.Context, owner, id uuid.UUID) (*T, error) {
	var rec T
	err := r.db.WithContext(ctx).Scopes(identity.ForOwner(owner)).
		First(&rec, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, "record")
	}
	return &rec, nil
}

func (r *gormOwned[T]) Update(ctx context.Context, owner, id uuid.UUID, apply func(*T) error) (*T, error) {
	rec, err := r.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if err := apply(rec); err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Save(rec).Error; err != nil {
		return nil, fmt.Errorf("failed to update record: %w", err)
	}
	return rec, nil
}

func (r *gormOwned[T]) Delete(ctx context.Context, owner, id uuid.UUID) error {
	rec, err := r.Get(ctx, owner, id)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Scopes(identity.ForOwner(owner)).Delete(rec)
	if result.Error != nil {
		return fmt.Errorf("failed to delete record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormOwned[T]) DeleteAll(ctx context.Context, owner uuid.UUID) (int64, error) {
	var zero T
	result := r.db.WithContext(ctx).Scopes(identity.ForOwner(owner)).Delete(&zero)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to clear records: %w", result.Error)
	}
	return result.RowsAffected, nil
}
