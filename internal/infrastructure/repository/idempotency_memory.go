// Package repository provides in-memory implementations of the domain
// repository interfaces. Idempotency keys are bounded by TTL, so a process
// restart only loses replay protection for requests already in flight.
package repository

import (
	"context"
	"sync"

	"github.com/dukahub/reception-api/internal/domain/entity"
	"github.com/dukahub/reception-api/internal/domain/repository"
	"github.com/google/uuid"
)

type memoryKey struct {
	key    string
	userID uuid.UUID
}

type memoryIdempotencyRepository struct {
	mu   sync.RWMutex
	keys map[memoryKey]*entity.IdempotencyKey
}

// NewMemoryIdempotencyRepository creates an in-memory idempotency key store
func NewMemoryIdempotencyRepository() repository.IdempotencyRepository {
	return &memoryIdempotencyRepository{
		keys: make(map[memoryKey]*entity.IdempotencyKey),
	}
}

func (r *memoryIdempotencyRepository) GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	r.mu.RLock()
	ikey, exists := r.keys[memoryKey{key: key, userID: userID}]
	r.mu.RUnlock()

	// A miss is (nil, nil) so callers can distinguish "not seen yet"
	// from a store failure.
	if !exists || ikey.IsExpired() {
		return nil, nil
	}
	return ikey, nil
}

func (r *memoryIdempotencyRepository) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys[memoryKey{key: ikey.Key, userID: ikey.UserID}] = ikey
	return nil
}

func (r *memoryIdempotencyRepository) DeleteExpired(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for k, ikey := range r.keys {
		if ikey.IsExpired() {
			delete(r.keys, k)
		}
	}
	return nil
}
