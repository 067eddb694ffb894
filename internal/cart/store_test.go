package cart

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/guedes-jr/delizandra-storefront/internal/domain"
)

func item(productID int64, variant string, price string) domain.CartItem {
	return domain.CartItem{
		Key:       domain.ItemKey{ProductID: productID, VariantKey: variant},
		Name:      "Produto",
		Image:     "/img.png",
		UnitPrice: decimal.RequireFromString(price),
	}
}

func TestAddItemMergesSameIdentity(t *testing.T) {
	s := New()
	s.AddItem(item(1, "", "10.00"), 2)
	s.AddItem(item(1, "", "10.00"), 3)

	items := s.Items()
	if len(items) != 1 {
		t.Fatalf("expected one line, got %d", len(items))
	}
	if items[0].Quantity != 5 {
		t.Fatalf("expected merged quantity 5, got %d", items[0].Quantity)
	}
	if s.ItemCount() != 5 {
		t.Fatalf("expected item count 5, got %d", s.ItemCount())
	}
}

func TestAddItemVariantsAreDistinctLines(t *testing.T) {
	s := New()
	s.AddItem(item(1, "P", "10.00"), 1)
	s.AddItem(item(1, "M", "10.00"), 1)
	s.AddItem(item(1, "", "10.00"), 1)

	if got := len(s.Items()); got != 3 {
		t.Fatalf("expected three lines, got %d", got)
	}
}

func TestAddItemCoercesQuantityBelowOne(t *testing.T) {
	s := New()
	s.AddItem(item(1, "", "10.00"), 0)
	items := s.Items()
	if len(items) != 1 || items[0].Quantity != 1 {
		t.Fatalf("expected single line with quantity 1, got %+v", items)
	}
}

func TestUpdateQuantityDeletesOnZeroOrBelow(t *testing.T) {
	s := New()
	key := domain.ItemKey{ProductID: 1}
	s.AddItem(item(1, "", "10.00"), 2)

	s.UpdateQuantity(key, 0)
	if len(s.Items()) != 0 {
		t.Fatalf("expected line removed on zero quantity")
	}

	s.AddItem(item(1, "", "10.00"), 2)
	s.UpdateQuantity(key, -3)
	if len(s.Items()) != 0 {
		t.Fatalf("expected line removed on negative quantity")
	}
}

func TestUpdateQuantityIsIdempotentSettable(t *testing.T) {
	s := New()
	key := domain.ItemKey{ProductID: 1}
	s.AddItem(item(1, "", "10.00"), 2)

	s.UpdateQuantity(key, 4)
	s.UpdateQuantity(key, 4)

	items := s.Items()
	if len(items) != 1 || items[0].Quantity != 4 {
		t.Fatalf("expected quantity 4, got %+v", items)
	}
}

func TestUpdateQuantityUnknownKeyIsNoOp(t *testing.T) {
	s := New()
	s.AddItem(item(1, "", "10.00"), 2)
	s.UpdateQuantity(domain.ItemKey{ProductID: 99}, 5)
	items := s.Items()
	if len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("expected untouched cart, got %+v", items)
	}
}

func TestRemoveItem(t *testing.T) {
	s := New()
	s.AddItem(item(1, "", "10.00"), 1)
	s.AddItem(item(2, "", "20.00"), 1)

	s.RemoveItem(domain.ItemKey{ProductID: 1})
	items := s.Items()
	if len(items) != 1 || items[0].Key.ProductID != 2 {
		t.Fatalf("expected only product 2 left, got %+v", items)
	}

	// unknown key is a no-op
	s.RemoveItem(domain.ItemKey{ProductID: 42})
	if len(s.Items()) != 1 {
		t.Fatalf("expected cart unchanged after removing unknown key")
	}
}

func TestTotalIsRecomputedAfterEveryMutation(t *testing.T) {
	s := New()
	s.AddItem(item(1, "", "189.90"), 2)
	s.AddItem(item(2, "", "249.90"), 1)

	want := decimal.RequireFromString("629.70")
	if got := s.Total(); !got.Equal(want) {
		t.Fatalf("expected total %s, got %s", want, got)
	}

	s.UpdateQuantity(domain.ItemKey{ProductID: 1}, 1)
	want = decimal.RequireFromString("439.80")
	if got := s.Total(); !got.Equal(want) {
		t.Fatalf("expected total %s after update, got %s", want, got)
	}

	s.RemoveItem(domain.ItemKey{ProductID: 2})
	want = decimal.RequireFromString("189.90")
	if got := s.Total(); !got.Equal(want) {
		t.Fatalf("expected total %s after removal, got %s", want, got)
	}
}

func TestItemCountSumsQuantitiesNotLines(t *testing.T) {
	s := New()
	s.AddItem(item(1, "", "10.00"), 3)
	s.AddItem(item(2, "", "20.00"), 4)
	if got := s.ItemCount(); got != 7 {
		t.Fatalf("expected badge count 7, got %d", got)
	}
}

func TestClear(t *testing.T) {
	s := New()
	s.AddItem(item(1, "", "10.00"), 3)
	s.Clear()
	if len(s.Items()) != 0 || s.ItemCount() != 0 || !s.Total().IsZero() {
		t.Fatalf("expected empty cart after clear")
	}
}

func TestRestoreReplacesContentAndDropsInvalidLines(t *testing.T) {
	s := New()
	s.AddItem(item(9, "", "5.00"), 1)

	restored := []domain.CartItem{
		{Key: domain.ItemKey{ProductID: 1}, UnitPrice: decimal.RequireFromString("10.00"), Quantity: 2},
		{Key: domain.ItemKey{ProductID: 2}, UnitPrice: decimal.RequireFromString("20.00"), Quantity: 0},
	}
	s.Restore(restored)

	items := s.Items()
	if len(items) != 1 || items[0].Key.ProductID != 1 {
		t.Fatalf("expected only the valid restored line, got %+v", items)
	}
}
