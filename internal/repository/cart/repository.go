// Package cart persists session carts so a returning session rehydrates its
// cart without talking to the remote catalog.
package cart

import (
	"context"

	"github.com/guedes-jr/delizandra-storefront/internal/domain"
)

type Repository interface {
	// Load returns the persisted lines for sessionID in insertion order.
	// A session without a persisted cart yields an empty slice, not an error.
	Load(ctx context.Context, sessionID string) ([]domain.CartItem, error)
	// Save replaces the persisted cart for sessionID with items.
	Save(ctx context.Context, sessionID string, items []domain.CartItem) error
	// Delete drops the persisted cart for sessionID if present.
	Delete(ctx context.Context, sessionID string) error
}
