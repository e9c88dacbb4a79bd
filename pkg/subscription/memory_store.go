package subscription

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// memoryStore is a thread-safe in-memory Store implementation.
// Records are deep-copied on the way in and out so callers can never
// mutate stored state.
type memoryStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*Record
}

// NewMemoryStore returns an empty in-memory Store.
// Suitable for tests and single-process setups; production deployments
// supply their own Store backed by the application database.
func NewMemoryStore() Store {
	return &memoryStore{
		records: make(map[uuid.UUID]*Record),
	}
}

func (s *memoryStore) Get(ctx context.Context, accountID uuid.UUID) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[accountID]
	if !ok {
		return nil, ErrNotFound
	}
	return record.Clone(), nil
}

func (s *memoryStore) Save(ctx context.Context, record *Record) error {
	if record == nil {
		return errors.New("subscription: cannot save nil record")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[record.AccountID] = record.Clone()
	return nil
}
