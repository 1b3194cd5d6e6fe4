package refreshtokens

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/server/models"
)

// InMemoryRepository is a process-local Repository.
type InMemoryRepository struct {
	mu     sync.Mutex
	seq    int64
	tokens map[string]models.RefreshToken
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{tokens: make(map[string]models.RefreshToken)}
}

func (r *InMemoryRepository) Create(_ context.Context, userID string, token string, validity time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	now := time.Now()
	r.tokens[HashToken(token)] = models.RefreshToken{
		ID:        strconv.FormatInt(r.seq, 10),
		UserID:    userID,
		Expires:   now.Add(validity),
		CreatedAt: now,
	}
	return nil
}

func (r *InMemoryRepository) Find(_ context.Context, token string) (*models.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tokens[HashToken(token)]
	if !ok {
		return nil, common.ErrorNotFound
	}
	t.Token = token
	return &t, nil
}

func (r *InMemoryRepository) Delete(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := HashToken(token)
	if _, ok := r.tokens[key]; !ok {
		return common.ErrorNotFound
	}
	delete(r.tokens, key)
	return nil
}

func (r *InMemoryRepository) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for k, t := range r.tokens {
		if t.Expires.Before(before) {
			delete(r.tokens, k)
			n++
		}
	}
	return n, nil
}
