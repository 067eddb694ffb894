package domain

import "github.com/shopspring/decimal"

// PlaceholderImage is shown when a product carries no catalog images.
const PlaceholderImage = "/placeholder.png"

type Product struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Slug        string           `json:"slug"`
	Description string           `json:"description,omitempty"`
	SKU         string           `json:"sku"`
	Price       decimal.Decimal  `json:"price"`
	PromoPrice  *decimal.Decimal `json:"promoPrice,omitempty"`
	IsActive    bool             `json:"isActive"`
	Featured    bool             `json:"featured"`
	Images      []Image          `json:"images,omitempty"`
}

type Image struct {
	URL      string `json:"url"`
	Position int    `json:"position"`
}

// UnitPrice is the price charged to the customer: the promotional price when
// one is set, the list price otherwise.
func (p Product) UnitPrice() decimal.Decimal {
	if p.PromoPrice != nil {
		return *p.PromoPrice
	}
	return p.Price
}

// ImageURLs returns the gallery image list for the product. Products without
// images get a single placeholder so the gallery is never empty.
func (p Product) ImageURLs() []string {
	if len(p.Images) == 0 {
		return []string{PlaceholderImage}
	}
	urls := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		urls = append(urls, img.URL)
	}
	return urls
}
