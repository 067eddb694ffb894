package storefront

import (
	"context"
	"sync"

	"github.com/guedes-jr/delizandra-storefront/internal/catalog"
	"github.com/guedes-jr/delizandra-storefront/internal/domain"
)

// Lister is the slice of the catalog client the listing flow consumes.
type Lister interface {
	ListProducts(ctx context.Context, q catalog.ListQuery) (*catalog.Page, error)
}

// Listing is the paginated fetch-and-append flow behind the product grid.
// A failed page fetch leaves the already loaded products in place.
type Listing struct {
	mu       sync.Mutex
	api      Lister
	query    string
	category string
	products []domain.Product
	next     string
	loading  bool
}

func NewListing(api Lister) *Listing {
	return &Listing{api: api}
}

// Search resets the listing to the first page for the given filters.
func (l *Listing) Search(ctx context.Context, query, category string) error {
	l.mu.Lock()
	if l.loading {
		l.mu.Unlock()
		return ErrRequestInFlight
	}
	l.loading = true
	l.mu.Unlock()

	page, err := l.api.ListProducts(ctx, catalog.ListQuery{Q: query, Category: category})

	l.mu.Lock()
	defer l.mu.Unlock()
	l.loading = false
	if err != nil {
		return err
	}
	l.query, l.category = query, category
	l.products = page.Products
	l.next = page.Next
	return nil
}

// LoadMore follows the next cursor verbatim and appends the page. Without a
// cursor it is a no-op. On error the partial results stay visible.
func (l *Listing) LoadMore(ctx context.Context) error {
	l.mu.Lock()
	if l.loading {
		l.mu.Unlock()
		return ErrRequestInFlight
	}
	if l.next == "" {
		l.mu.Unlock()
		return nil
	}
	l.loading = true
	cursor := l.next
	l.mu.Unlock()

	page, err := l.api.ListProducts(ctx, catalog.ListQuery{Cursor: cursor})

	l.mu.Lock()
	defer l.mu.Unlock()
	l.loading = false
	if err != nil {
		return err
	}
	l.products = append(l.products, page.Products...)
	l.next = page.Next
	return nil
}

func (l *Listing) Products() []domain.Product {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.Product, len(l.products))
	copy(out, l.products)
	return out
}

// HasMore reports whether another page is available.
func (l *Listing) HasMore() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.next != ""
}
