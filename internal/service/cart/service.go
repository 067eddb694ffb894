// Package cart exposes session-scoped cart operations: each browser session
// owns one in-process store, rehydrated from the repository on first touch
// and written through on every mutation.
package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	cartstore "github.com/guedes-jr/delizandra-storefront/internal/cart"
	"github.com/guedes-jr/delizandra-storefront/internal/domain"
	cartrepo "github.com/guedes-jr/delizandra-storefront/internal/repository/cart"
)

// storeIdleTTL bounds how long an untouched session keeps its in-process
// store. The repository holds the durable copy, so eviction loses nothing;
// the next touch rehydrates.
const storeIdleTTL = 30 * time.Minute

type Service struct {
	repo cartrepo.Repository
	now  func() time.Time

	mu        sync.Mutex
	stores    map[string]*cartstore.Store
	touched   map[string]time.Time
	nextSweep time.Time
}

func New(repo cartrepo.Repository) *Service {
	return &Service{
		repo:    repo,
		now:     time.Now,
		stores:  make(map[string]*cartstore.Store),
		touched: make(map[string]time.Time),
	}
}

// View is the cart as rendered by the UI: lines plus derived totals.
type View struct {
	Items     []domain.CartItem `json:"items"`
	Total     decimal.Decimal   `json:"total"`
	ItemCount int               `json:"itemCount"`
}

// AddInput carries the display snapshot captured at add time.
type AddInput struct {
	Key       domain.ItemKey  `json:"key"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
}

// Attach returns the session's store, rehydrating it from the repository the
// first time the session is seen.
func (s *Service) Attach(ctx context.Context, sessionID string) (*cartstore.Store, error) {
	if sessionID == "" {
		return nil, errors.New("session id required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch(sessionID)
	if store, ok := s.stores[sessionID]; ok {
		return store, nil
	}
	items, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("rehydrate cart: %w", err)
	}
	store := cartstore.New()
	store.Restore(items)
	s.stores[sessionID] = store
	return store, nil
}

// touch stamps the session and, at most every half TTL, drops stores whose
// session went idle past the TTL. Callers hold s.mu.
func (s *Service) touch(sessionID string) {
	now := s.now()
	s.touched[sessionID] = now
	if now.Before(s.nextSweep) {
		return
	}
	s.nextSweep = now.Add(storeIdleTTL / 2)
	for id, seen := range s.touched {
		if now.Sub(seen) <= storeIdleTTL {
			continue
		}
		delete(s.stores, id)
		delete(s.touched, id)
	}
}

func (s *Service) Get(ctx context.Context, sessionID string) (*View, error) {
	store, err := s.Attach(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return view(store), nil
}

func (s *Service) AddItem(ctx context.Context, sessionID string, in AddInput) (*View, error) {
	store, err := s.Attach(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	store.AddItem(domain.CartItem{
		Key:       in.Key,
		Name:      in.Name,
		Image:     in.Image,
		UnitPrice: in.UnitPrice,
	}, in.Quantity)
	return s.persist(ctx, sessionID, store)
}

func (s *Service) UpdateQuantity(ctx context.Context, sessionID string, key domain.ItemKey, quantity int) (*View, error) {
	store, err := s.Attach(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	store.UpdateQuantity(key, quantity)
	return s.persist(ctx, sessionID, store)
}

func (s *Service) RemoveItem(ctx context.Context, sessionID string, key domain.ItemKey) (*View, error) {
	store, err := s.Attach(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	store.RemoveItem(key)
	return s.persist(ctx, sessionID, store)
}

// SyncStore persists store as the session's cart and adopts it as the
// session's live store. Used after a flow mutated a store it held directly
// (add-to-cart from the detail view); adopting keeps the write even when
// the session's map entry was evicted in between.
func (s *Service) SyncStore(ctx context.Context, sessionID string, store *cartstore.Store) (*View, error) {
	if sessionID == "" {
		return nil, errors.New("session id required")
	}
	s.mu.Lock()
	s.touch(sessionID)
	s.stores[sessionID] = store
	s.mu.Unlock()
	return s.persist(ctx, sessionID, store)
}

// Clear empties the session's cart, drops its persisted copy and releases
// the in-process store. The next touch rehydrates an empty cart.
func (s *Service) Clear(ctx context.Context, sessionID string) (*View, error) {
	store, err := s.Attach(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	store.Clear()
	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return nil, fmt.Errorf("drop persisted cart: %w", err)
	}
	s.mu.Lock()
	delete(s.stores, sessionID)
	delete(s.touched, sessionID)
	s.mu.Unlock()
	return view(store), nil
}

func (s *Service) persist(ctx context.Context, sessionID string, store *cartstore.Store) (*View, error) {
	if err := s.repo.Save(ctx, sessionID, store.Items()); err != nil {
		return nil, fmt.Errorf("persist cart: %w", err)
	}
	return view(store), nil
}

func view(store *cartstore.Store) *View {
	items := store.Items()
	if items == nil {
		items = []domain.CartItem{}
	}
	return &View{Items: items, Total: store.Total(), ItemCount: store.ItemCount()}
}
