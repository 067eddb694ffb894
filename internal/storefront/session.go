// Package storefront implements the user-facing purchase flows: the product
// detail session (gallery, quantity draft, buy-now, reviews), the paginated
// listing flow, and the cart-to-checkout mapping.
package storefront

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/guedes-jr/delizandra-storefront/internal/cart"
	"github.com/guedes-jr/delizandra-storefront/internal/catalog"
	"github.com/guedes-jr/delizandra-storefront/internal/domain"
)

const placeholderImage = domain.PlaceholderImage

var (
	// ErrNameRequired rejects a review submission with a blank reviewer name
	// before any network call is made.
	ErrNameRequired = errors.New("informe seu nome")
	// ErrInvalidRating rejects ratings outside 1..5.
	ErrInvalidRating = errors.New("nota deve estar entre 1 e 5")
	// ErrRequestInFlight signals that the same operation is already pending;
	// the repeated invocation is a no-op.
	ErrRequestInFlight = errors.New("solicitação já em andamento")
	// ErrSessionClosed rejects operations on a session that already handed
	// off or closed.
	ErrSessionClosed = errors.New("sessão encerrada")
)

// API is the slice of the catalog client the detail session consumes.
type API interface {
	ListReviews(ctx context.Context, productID int64) (*catalog.ReviewPage, error)
	CreateReview(ctx context.Context, productID int64, in catalog.ReviewInput) (*domain.Review, error)
	BuyNow(ctx context.Context, productID int64, qty int) (*catalog.OrderLink, error)
}

// Session is one open product detail view. It owns the gallery cursor, the
// purchase draft and the review state, and writes to the shared cart store
// on add-to-cart. Opening resets the gallery to the first image and the
// quantity to one.
type Session struct {
	mu      sync.Mutex
	api     API
	store   *cart.Store
	product domain.Product

	gallery  *Gallery
	quantity int
	closed   bool

	reviews []domain.Review
	summary domain.RatingSummary

	buying    bool
	reviewing bool
}

// Open starts a detail session for product. The review fetch happens here;
// a failed fetch is swallowed and the session opens with an empty review
// state rather than surfacing an error.
func Open(ctx context.Context, api API, store *cart.Store, product domain.Product) *Session {
	s := &Session{
		api:      api,
		store:    store,
		product:  product,
		gallery:  NewGallery(product.ImageURLs()),
		quantity: domain.MinQuantity,
	}
	if page, err := api.ListReviews(ctx, product.ID); err == nil {
		s.reviews = page.Reviews
		s.summary = page.Summary
	}
	return s
}

func (s *Session) Product() domain.Product { return s.product }

func (s *Session) Gallery() *Gallery { return s.gallery }

// Store is the cart store this session writes to on add-to-cart.
func (s *Session) Store() *cart.Store { return s.store }

func (s *Session) Quantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quantity
}

// SetQuantity clamps q into the purchase bounds and stores it.
func (s *Session) SetQuantity(q int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quantity = domain.ClampQuantity(q)
}

// SetQuantityInput accepts free-form numeric entry; garbage falls back to
// the minimum quantity.
func (s *Session) SetQuantityInput(raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quantity = domain.ParseQuantity(raw)
}

func (s *Session) Increment() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quantity = domain.ClampQuantity(s.quantity + 1)
}

func (s *Session) Decrement() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quantity = domain.ClampQuantity(s.quantity - 1)
}

// UnitPrice is the promotional price when set, else the list price.
func (s *Session) UnitPrice() decimal.Decimal {
	return s.product.UnitPrice()
}

// Subtotal is the draft quantity priced at the effective unit price.
func (s *Session) Subtotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.product.UnitPrice().Mul(decimal.NewFromInt(int64(s.quantity)))
}

// AddToCart snapshots the product into the cart store at the list price
// (the promotional price only affects display and subtotals) with the
// currently displayed gallery image, then closes the session.
func (s *Session) AddToCart() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	s.store.AddItem(domain.CartItem{
		Key:       domain.ItemKey{ProductID: s.product.ID},
		Name:      s.product.Name,
		Image:     s.gallery.Current(),
		UnitPrice: s.product.Price,
	}, s.quantity)
	s.closed = true
	return nil
}

// BuyNow requests a direct-purchase link for the draft. While a request is
// pending, further calls return ErrRequestInFlight instead of issuing a
// second request. On success the session closes; the caller follows the
// link, leaving the application. On failure the session stays open.
func (s *Session) BuyNow(ctx context.Context) (*catalog.OrderLink, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrSessionClosed
	}
	if s.buying {
		s.mu.Unlock()
		return nil, ErrRequestInFlight
	}
	s.buying = true
	productID, qty := s.product.ID, s.quantity
	s.mu.Unlock()

	link, err := s.api.BuyNow(ctx, productID, qty)

	s.mu.Lock()
	s.buying = false
	if err == nil {
		s.closed = true
	}
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return link, nil
}

// SubmitReview validates locally, submits, and on success folds the new
// rating into the displayed aggregate and prepends the created review.
// Validation failures never reach the network. While a submission is
// pending, further calls return ErrRequestInFlight.
func (s *Session) SubmitReview(ctx context.Context, name string, rating int, comment string) (*domain.Review, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	s.mu.Lock()
	if s.reviewing {
		s.mu.Unlock()
		return nil, ErrRequestInFlight
	}
	s.reviewing = true
	productID := s.product.ID
	s.mu.Unlock()

	created, err := s.api.CreateReview(ctx, productID, catalog.ReviewInput{
		Name:    name,
		Rating:  rating,
		Comment: strings.TrimSpace(comment),
	})

	s.mu.Lock()
	s.reviewing = false
	if err == nil {
		// Prepend order reflects completion order: the last submission to
		// finish shows first.
		s.reviews = append([]domain.Review{*created}, s.reviews...)
		s.summary = s.summary.Add(created.Rating)
	}
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *Session) Reviews() []domain.Review {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Review, len(s.reviews))
	copy(out, s.reviews)
	return out
}

func (s *Session) Summary() domain.RatingSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary
}

// Close ends the session without buying.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// UserMessage resolves the text shown to the customer for err: the upstream
// detail when the server supplied one, otherwise fallback. Local validation
// errors carry their own message.
func UserMessage(err error, fallback string) string {
	var cerr *catalog.Error
	if errors.As(err, &cerr) && cerr.Detail != "" {
		return cerr.Detail
	}
	switch {
	case errors.Is(err, ErrNameRequired), errors.Is(err, ErrInvalidRating),
		errors.Is(err, ErrRequestInFlight), errors.Is(err, ErrSessionClosed):
		return err.Error()
	}
	return fallback
}
