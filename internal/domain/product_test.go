package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestUnitPricePrefersPromo(t *testing.T) {
	promo := decimal.RequireFromString("80.00")
	p := Product{Price: decimal.RequireFromString("100.00"), PromoPrice: &promo}
	if got := p.UnitPrice(); !got.Equal(promo) {
		t.Fatalf("expected promo price, got %s", got)
	}

	p.PromoPrice = nil
	if got := p.UnitPrice(); !got.Equal(p.Price) {
		t.Fatalf("expected list price, got %s", got)
	}
}

func TestImageURLsFallsBackToPlaceholder(t *testing.T) {
	p := Product{}
	urls := p.ImageURLs()
	if len(urls) != 1 || urls[0] != PlaceholderImage {
		t.Fatalf("expected placeholder fallback, got %v", urls)
	}

	p.Images = []Image{{URL: "/a.png", Position: 0}, {URL: "/b.png", Position: 1}}
	urls = p.ImageURLs()
	if len(urls) != 2 || urls[0] != "/a.png" || urls[1] != "/b.png" {
		t.Fatalf("expected image urls in array order, got %v", urls)
	}
}
