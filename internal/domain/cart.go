package domain

import "github.com/shopspring/decimal"

// ItemKey identifies a cart line. Products without variants use the zero
// VariantKey; two lines never share a key.
type ItemKey struct {
	ProductID  int64  `json:"productId"`
	VariantKey string `json:"variantKey,omitempty"`
}

// CartItem is one cart line. Name, Image and UnitPrice are display snapshots
// captured when the item was added; they are not re-fetched from the catalog.
type CartItem struct {
	Key       ItemKey         `json:"key"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
}

// LineTotal is UnitPrice multiplied by Quantity.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
