package vaults

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/server/models"
)

// InMemoryRepository keeps vaults in a map guarded by a mutex, so Upsert
// is atomic with respect to concurrent callers.
type InMemoryRepository struct {
	mu     sync.RWMutex
	byUser map[string]*models.Vault
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{byUser: make(map[string]*models.Vault)}
}

func (r *InMemoryRepository) FindByUserID(_ context.Context, userID string) (*models.Vault, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.byUser[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *InMemoryRepository) Upsert(_ context.Context, v *models.Vault) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if existing, ok := r.byUser[v.UserID]; ok {
		existing.EncryptedData = v.EncryptedData
		existing.UpdatedAt = now
		v.ID = existing.ID
		return false, nil
	}

	stored := *v
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.byUser[v.UserID] = &stored
	return true, nil
}

// Count returns the number of stored vaults.
func (r *InMemoryRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byUser)
}
