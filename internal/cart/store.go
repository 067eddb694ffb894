// Package cart holds the shopping cart model: an ordered list of line items
// keyed by (product, variant) with derived totals.
package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/guedes-jr/delizandra-storefront/internal/domain"
)

// Store is a mutable cart shared by everything rendering cart state. Totals
// are derived from the current items on every read, never cached. The zero
// value is not usable; call New.
type Store struct {
	mu    sync.Mutex
	items []domain.CartItem
}

func New() *Store {
	return &Store{}
}

// AddItem inserts a line for the item's key or, when one already exists,
// increments its quantity. Quantities below 1 are coerced to 1. The store
// keeps the snapshot (name, image, unit price) of the first insertion.
func (s *Store) AddItem(item domain.CartItem, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].Key == item.Key {
			s.items[i].Quantity += quantity
			return
		}
	}
	item.Quantity = quantity
	s.items = append(s.items, item)
}

// UpdateQuantity sets the line's quantity. A value of zero or below removes
// the line entirely. Unknown keys are a no-op.
func (s *Store) UpdateQuantity(key domain.ItemKey, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].Key != key {
			continue
		}
		if quantity <= 0 {
			s.items = append(s.items[:i], s.items[i+1:]...)
		} else {
			s.items[i].Quantity = quantity
		}
		return
	}
}

// RemoveItem deletes the line for key if present.
func (s *Store) RemoveItem(key domain.ItemKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].Key == key {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// Items returns a copy of the lines in insertion order.
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// Total is the sum of unit price times quantity over all lines.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// ItemCount is the sum of quantities over all lines, not the number of
// distinct lines. It drives the cart badge.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

// Restore replaces the cart content, dropping lines with non-positive
// quantities. Used to rehydrate a persisted cart at session attach.
func (s *Store) Restore(items []domain.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = s.items[:0]
	for _, item := range items {
		if item.Quantity < 1 {
			continue
		}
		s.items = append(s.items, item)
	}
}
