package httpserver

import (
	"context"
	"testing"
	"time"

	"github.com/guedes-jr/delizandra-storefront/internal/cart"
	"github.com/guedes-jr/delizandra-storefront/internal/catalog"
	"github.com/guedes-jr/delizandra-storefront/internal/domain"
	"github.com/guedes-jr/delizandra-storefront/internal/storefront"
)

type stubLister struct{}

func (stubLister) ListProducts(_ context.Context, _ catalog.ListQuery) (*catalog.Page, error) {
	return &catalog.Page{}, nil
}

type stubDetailAPI struct{}

func (stubDetailAPI) ListReviews(_ context.Context, _ int64) (*catalog.ReviewPage, error) {
	return &catalog.ReviewPage{}, nil
}

func (stubDetailAPI) CreateReview(_ context.Context, _ int64, _ catalog.ReviewInput) (*domain.Review, error) {
	return &domain.Review{}, nil
}

func (stubDetailAPI) BuyNow(_ context.Context, _ int64, _ int) (*catalog.OrderLink, error) {
	return &catalog.OrderLink{}, nil
}

func TestFlowRegistryEvictsIdleSessions(t *testing.T) {
	reg := newFlowRegistry()
	current := time.Unix(1_700_000_000, 0)
	reg.now = func() time.Time { return current }

	first := reg.listing("idle", stubLister{})
	sess := storefront.Open(context.Background(), stubDetailAPI{}, cart.New(), domain.Product{ID: 7, Name: "Vestido"})
	reg.setDetail("idle", sess)

	current = current.Add(flowIdleTTL + time.Minute)
	reg.listing("active", stubLister{})

	if _, ok := reg.detail("idle"); ok {
		t.Fatalf("expected idle detail session dropped")
	}
	if !sess.Closed() {
		t.Fatalf("expected dropped detail session closed")
	}
	if again := reg.listing("idle", stubLister{}); again == first {
		t.Fatalf("expected idle listing rebuilt")
	}
}

func TestFlowRegistryKeepsActiveSessions(t *testing.T) {
	reg := newFlowRegistry()
	current := time.Unix(1_700_000_000, 0)
	reg.now = func() time.Time { return current }

	first := reg.listing("busy", stubLister{})

	current = current.Add(flowIdleTTL / 2)
	reg.listing("busy", stubLister{})
	current = current.Add(flowIdleTTL / 2)

	if again := reg.listing("busy", stubLister{}); again != first {
		t.Fatalf("expected active listing kept across sweeps")
	}
}
