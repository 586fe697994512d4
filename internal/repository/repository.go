package repository

import (
	"context"
	"errors"

	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/models"
	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// UserRepository is the credential store.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByExternalID(ctx context.Context, externalID string) (*models.User, error)
	SetPasswordHash(ctx context.Context, id uuid.UUID, hash string) error
	LinkExternalID(ctx context.Context, id uuid.UUID, externalID string) error
	Ping(ctx context.Context) error
}

// Owned is implemented by every record that belongs to a single user.
type Owned interface {
	Key() uuid.UUID
	Owner() uuid.UUID
}

// OwnedRepository stores records of type T. Every method is scoped to one owner;
// a record belonging to someone else behaves exactly like a missing one.
type OwnedRepository[T Owned] interface {
	List(ctx context.Context, owner uuid.UUID) ([]T, error)
	Create(ctx context.Context, rec *T) error
	Get(ctx context.Context, owner, id uuid.UUID) (*T, error)
	Update(ctx context.Context, owner, id uuid.UUID, apply func(*T) error) (*T, error)
	Delete(ctx context.Context, owner, id uuid.UUID) error
	DeleteAll(ctx context.Context, owner uuid.UUID) (int64, error)
}
