package cart

import (
	"context"
	"sync"

	"github.com/guedes-jr/delizandra-storefront/internal/domain"
)

// memoryRepo keeps carts for the process lifetime. It is the fallback when
// no database is configured.
type memoryRepo struct {
	mu    sync.Mutex
	carts map[string][]domain.CartItem
}

func NewMemory() Repository {
	return &memoryRepo{carts: make(map[string][]domain.CartItem)}
}

func (r *memoryRepo) Load(_ context.Context, sessionID string) ([]domain.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := r.carts[sessionID]
	out := make([]domain.CartItem, len(items))
	copy(out, items)
	return out, nil
}

func (r *memoryRepo) Save(_ context.Context, sessionID string, items []domain.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := make([]domain.CartItem, len(items))
	copy(stored, items)
	r.carts[sessionID] = stored
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, sessionID)
	return nil
}
