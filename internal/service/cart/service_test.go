package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	cartstore "github.com/guedes-jr/delizandra-storefront/internal/cart"
	"github.com/guedes-jr/delizandra-storefront/internal/domain"
)

type stubRepo struct {
	loaded    []domain.CartItem
	loadErr   error
	loadCalls int

	saved     [][]domain.CartItem
	saveErr   error
	lastSaved []domain.CartItem

	deleteCalls int
	deleteErr   error
}

func (s *stubRepo) Load(_ context.Context, _ string) ([]domain.CartItem, error) {
	s.loadCalls++
	return s.loaded, s.loadErr
}

func (s *stubRepo) Save(_ context.Context, _ string, items []domain.CartItem) error {
	s.saved = append(s.saved, items)
	s.lastSaved = items
	return s.saveErr
}

func (s *stubRepo) Delete(_ context.Context, _ string) error {
	s.deleteCalls++
	return s.deleteErr
}

func addInput(productID int64, price string, qty int) AddInput {
	return AddInput{
		Key:       domain.ItemKey{ProductID: productID},
		Name:      "Produto",
		Image:     "/img.png",
		UnitPrice: decimal.RequireFromString(price),
		Quantity:  qty,
	}
}

func TestAttachRequiresSessionID(t *testing.T) {
	svc := New(&stubRepo{})
	if _, err := svc.Attach(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty session id")
	}
}

func TestAttachRehydratesOnce(t *testing.T) {
	repo := &stubRepo{loaded: []domain.CartItem{
		{Key: domain.ItemKey{ProductID: 1}, UnitPrice: decimal.RequireFromString("10.00"), Quantity: 2},
	}}
	svc := New(repo)

	store, err := svc.Attach(context.Background(), "sess")
	if err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if store.ItemCount() != 2 {
		t.Fatalf("expected rehydrated quantity 2, got %d", store.ItemCount())
	}

	again, err := svc.Attach(context.Background(), "sess")
	if err != nil {
		t.Fatalf("Attach again: %v", err)
	}
	if again != store {
		t.Fatalf("expected the same store instance per session")
	}
	if repo.loadCalls != 1 {
		t.Fatalf("expected one repository load, got %d", repo.loadCalls)
	}
}

func TestAttachLoadError(t *testing.T) {
	repo := &stubRepo{loadErr: errors.New("db down")}
	svc := New(repo)
	if _, err := svc.Attach(context.Background(), "sess"); err == nil {
		t.Fatalf("expected load error")
	}
}

func TestAddItemPersistsAndDerivesTotals(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)

	view, err := svc.AddItem(context.Background(), "sess", addInput(1, "189.90", 2))
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if view.ItemCount != 2 {
		t.Fatalf("expected count 2, got %d", view.ItemCount)
	}
	if !view.Total.Equal(decimal.RequireFromString("379.80")) {
		t.Fatalf("expected total 379.80, got %s", view.Total)
	}
	if len(repo.lastSaved) != 1 || repo.lastSaved[0].Quantity != 2 {
		t.Fatalf("expected write-through, got %+v", repo.lastSaved)
	}
}

func TestUpdateQuantityZeroRemovesAndPersists(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)
	if _, err := svc.AddItem(context.Background(), "sess", addInput(1, "10.00", 1)); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	view, err := svc.UpdateQuantity(context.Background(), "sess", domain.ItemKey{ProductID: 1}, 0)
	if err != nil {
		t.Fatalf("UpdateQuantity: %v", err)
	}
	if len(view.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", view.Items)
	}
	if len(repo.lastSaved) != 0 {
		t.Fatalf("expected empty cart persisted, got %+v", repo.lastSaved)
	}
}

func TestSaveErrorSurfaces(t *testing.T) {
	repo := &stubRepo{saveErr: errors.New("disk full")}
	svc := New(repo)
	if _, err := svc.AddItem(context.Background(), "sess", addInput(1, "10.00", 1)); err == nil {
		t.Fatalf("expected persist error")
	}
}

func TestClearDropsPersistedCart(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)
	if _, err := svc.AddItem(context.Background(), "sess", addInput(1, "10.00", 1)); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	view, err := svc.Clear(context.Background(), "sess")
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if view.ItemCount != 0 || len(view.Items) != 0 {
		t.Fatalf("expected empty view, got %+v", view)
	}
	if repo.deleteCalls != 1 {
		t.Fatalf("expected persisted cart dropped, got %d deletes", repo.deleteCalls)
	}
}

func TestClearReleasesStore(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)
	if _, err := svc.AddItem(context.Background(), "sess", addInput(1, "10.00", 1)); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if _, err := svc.Clear(context.Background(), "sess"); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	loads := repo.loadCalls
	if _, err := svc.Attach(context.Background(), "sess"); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if repo.loadCalls != loads+1 {
		t.Fatalf("expected rehydration after clear, loads went %d -> %d", loads, repo.loadCalls)
	}
}

func TestIdleStoreEvicted(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)
	current := time.Unix(1_700_000_000, 0)
	svc.now = func() time.Time { return current }

	old, err := svc.Attach(context.Background(), "old")
	if err != nil {
		t.Fatalf("Attach: %v", err)
	}

	current = current.Add(storeIdleTTL + time.Minute)
	if _, err := svc.Attach(context.Background(), "fresh"); err != nil {
		t.Fatalf("Attach fresh: %v", err)
	}

	again, err := svc.Attach(context.Background(), "old")
	if err != nil {
		t.Fatalf("Attach old again: %v", err)
	}
	if again == old {
		t.Fatalf("expected idle store evicted and rebuilt")
	}
	if repo.loadCalls != 3 {
		t.Fatalf("expected three repository loads, got %d", repo.loadCalls)
	}
}

func TestSyncStoreAdoptsStore(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)

	store := cartstore.New()
	store.AddItem(domain.CartItem{
		Key:       domain.ItemKey{ProductID: 9},
		UnitPrice: decimal.RequireFromString("59.90"),
	}, 2)

	view, err := svc.SyncStore(context.Background(), "sess", store)
	if err != nil {
		t.Fatalf("SyncStore: %v", err)
	}
	if view.ItemCount != 2 {
		t.Fatalf("expected count 2, got %d", view.ItemCount)
	}
	if len(repo.lastSaved) != 1 || repo.lastSaved[0].Key.ProductID != 9 {
		t.Fatalf("expected store persisted, got %+v", repo.lastSaved)
	}

	adopted, err := svc.Attach(context.Background(), "sess")
	if err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if adopted != store {
		t.Fatalf("expected synced store adopted for the session")
	}
	if repo.loadCalls != 0 {
		t.Fatalf("expected no rehydration after adoption, got %d loads", repo.loadCalls)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	svc := New(&stubRepo{})
	if _, err := svc.AddItem(context.Background(), "a", addInput(1, "10.00", 1)); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	view, err := svc.Get(context.Background(), "b")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if view.ItemCount != 0 {
		t.Fatalf("expected session b empty, got %d", view.ItemCount)
	}
}
