package storefront

import (
	"context"
	"errors"

	"github.com/guedes-jr/delizandra-storefront/internal/cart"
	"github.com/guedes-jr/delizandra-storefront/internal/catalog"
)

// ErrEmptyCart rejects a checkout on an empty cart before any network call.
var ErrEmptyCart = errors.New("sacola vazia")

// Checkouter is the slice of the catalog client the checkout flow consumes.
type Checkouter interface {
	Checkout(ctx context.Context, items []catalog.CheckoutItem, customerName, customerPhone string) (*catalog.OrderLink, error)
}

// CheckoutCart maps the cart lines onto a multi-item checkout request and,
// on success, clears the cart and returns the messaging link. On failure the
// cart is left untouched for retry.
func CheckoutCart(ctx context.Context, api Checkouter, store *cart.Store, customerName, customerPhone string) (*catalog.OrderLink, error) {
	items := store.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	payload := make([]catalog.CheckoutItem, 0, len(items))
	for _, item := range items {
		payload = append(payload, catalog.CheckoutItem{
			ProductID: item.Key.ProductID,
			Qty:       item.Quantity,
		})
	}
	link, err := api.Checkout(ctx, payload, customerName, customerPhone)
	if err != nil {
		return nil, err
	}
	store.Clear()
	return link, nil
}
