package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/repository"
	"github.com/google/uuid"
)

// Owned keeps records in insertion order. Records are stored by value, so T
// must not carry pointers the caller expects to mutate in place.
type Owned[T repository.Owned] struct {
	mu   sync.RWMutex
	seq  int64
	recs map[uuid.UUID]entry[T]
}

type entry[T any] struct {
	seq int64
	rec T
}

func NewOwned[T repository.Owned]() *Owned[T] {
	return &Owned[T]{recs: make(map[uuid.UUID]entry[T])}
}

func (s *Owned[T]) List(_ context.Context, owner uuid.UUID) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]entry[T], 0)
	for _, e := range s.recs {
		if e.rec.Owner() == owner {
			matched = append(matched, e)
		}
	}
	// newest first, like the SQL store
	sort.Slice(matched, func(i, j int) bool { return matched[i].seq > matched[j].seq })

	out := make([]T, len(matched))
	for i, e := range matched {
		out[i] = e.rec
	}
	return out, nil
}

func (s *Owned[T]) Create(_ context.Context, rec *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := (*rec).Key()
	if _, ok := s.recs[key]; ok {
		return repository.ErrDuplicate
	}
	s.seq++
	s.recs[key] = entry[T]{seq: s.seq, rec: *rec}
	return nil
}

func (s *Owned[T]) Get(_ context.Context, owner, id uuid.UUID) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.recs[id]
	if !ok || e.rec.Owner() != owner {
		return nil, repository.ErrNotFound
	}
	rec := e.rec
	return &rec, nil
}

func (s *Owned[T]) Update(_ context.Context, owner, id uuid.UUID, apply func(*T) error) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.recs[id]
	if !ok || e.rec.Owner() != owner {
		return nil, repository.ErrNotFound
	}
	rec := e.rec
	if err := apply(&rec); err != nil {
		return nil, err
	}
	e.rec = rec
	s.recs[id] = e
	return &rec, nil
}

func (s *Owned[T]) Delete(_ context.Context, owner, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.recs[id]
	if !ok || e.rec.Owner() != owner {
		return repository.ErrNotFound
	}
	delete(s.recs, id)
	return nil
}

func (s *Owned[T]) DeleteAll(_ context.Context, owner uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, e := range s.recs {
		if e.rec.Owner() == owner {
			delete(s.recs, id)
			n++
		}
	}
	return n, nil
}
