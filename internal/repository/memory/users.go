// Package memory holds process-local stores used by STORE_DRIVER=memory and by tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/repository"
	"github.com/google/uuid"
)

type Users struct {
	mu    sync.RWMutex
	users map[uuid.UUID]models.User
}

var _ repository.UserRepository = (*Users)(nil)

func NewUsers() *Users {
	return &Users{users: make(map[uuid.UUID]models.User)}
}

func (s *Users) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email || (user.IsLinked() && u.IsLinked() && *u.ExternalID == *user.ExternalID) {
			return repository.ErrDuplicate
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now
	s.users[user.ID] = clone(*user)
	return nil
}

func (s *Users) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return ptr(clone(u)), nil
}

func (s *Users) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return s.find(func(u models.User) bool { return u.Email == email })
}

func (s *Users) FindByExternalID(_ context.Context, externalID string) (*models.User, error) {
	return s.find(func(u models.User) bool { return u.IsLinked() && *u.ExternalID == externalID })
}

func (s *Users) SetPasswordHash(_ context.Context, id uuid.UUID, hash string) error {
	return s.update(id, func(u *models.User) error {
		u.PasswordHash = &hash
		return nil
	})
}

func (s *Users) LinkExternalID(_ context.Context, id uuid.UUID, externalID string) error {
	s.mu.RLock()
	for _, u := range s.users {
		if u.ID != id && u.IsLinked() && *u.ExternalID == externalID {
			s.mu.RUnlock()
			return repository.ErrDuplicate
		}
	}
	s.mu.RUnlock()

	return s.update(id, func(u *models.User) error {
		u.ExternalID = &externalID
		return nil
	})
}

func (s *Users) Ping(context.Context) error { return nil }

func (s *Users) find(match func(models.User) bool) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if match(u) {
			return ptr(clone(u)), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *Users) update(id uuid.UUID, apply func(*models.User) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	if err := apply(&u); err != nil {
		return err
	}
	u.UpdatedAt = time.Now().UTC()
	s.users[id] = clone(u)
	return nil
}

// clone copies the pointer fields so callers never share state with the store.
func clone(u models.User) models.User {
	if u.PasswordHash != nil {
		h := *u.PasswordHash
		u.PasswordHash = &h
	}
	if u.ExternalID != nil {
		e := *u.ExternalID
		u.ExternalID = &e
	}
	return u
}

func ptr[T any](v T) *T { return &v }
