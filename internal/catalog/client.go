// Package catalog implements the client for the remote catalog/order/review
// service. It maps the service's wire shapes onto the domain types and
// carries upstream error details through a typed Error.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guedes-jr/delizandra-storefront/internal/domain"
)

// Client talks to the remote store API under a single base URL.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient builds a Client for baseURL. A nil httpc falls back to a client
// with a conservative timeout; the core itself enforces none.
func NewClient(baseURL string, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpc: httpc}
}

// Error carries a non-2xx upstream response: the status code and the
// server-provided detail message when one was present.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("catalog: status %d", e.Status)
}

// ListQuery filters a product listing request. Cursor, when set, is the
// opaque pagination URL returned by a previous page and is followed verbatim.
type ListQuery struct {
	Q        string
	Category string
	Cursor   string
}

// Page is one page of products plus the pagination cursors.
type Page struct {
	Products []domain.Product
	Next     string
	Previous string
}

// ReviewPage is a product's review list plus the server-side aggregate.
type ReviewPage struct {
	Reviews []domain.Review
	Summary domain.RatingSummary
}

// ReviewInput is a review submission. Comment may be empty.
type ReviewInput struct {
	Name    string `json:"name"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}

// OrderLink is the result of a buy-now or checkout call: an external
// messaging deep link plus the order total.
type OrderLink struct {
	WhatsAppLink string
	Total        decimal.Decimal
}

// CheckoutItem is one cart line mapped onto the checkout request.
type CheckoutItem struct {
	ProductID int64 `json:"product_id"`
	Qty       int   `json:"qty"`
}

type wireProduct struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Slug        string      `json:"slug"`
	Description string      `json:"description"`
	SKU         string      `json:"sku"`
	Price       string      `json:"price"`
	PromoPrice  *string     `json:"promo_price"`
	IsActive    bool        `json:"is_active"`
	Featured    bool        `json:"featured"`
	Images      []wireImage `json:"images"`
}

type wireImage struct {
	URL      string `json:"url"`
	Position int    `json:"position"`
}

type wirePage struct {
	Results  []wireProduct `json:"results"`
	Next     *string       `json:"next"`
	Previous *string       `json:"previous"`
}

type wireReview struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type wireReviewPage struct {
	Results []wireReview `json:"results"`
	Average float64      `json:"average"`
	Count   int          `json:"count"`
}

type wireOrderLink struct {
	WhatsAppLink string `json:"whatsapp_link"`
	Total        string `json:"total"`
}

// ListProducts fetches one listing page. With an empty cursor the request is
// built from the base URL and filters; otherwise the cursor URL is used as-is.
func (c *Client) ListProducts(ctx context.Context, q ListQuery) (*Page, error) {
	endpoint := q.Cursor
	if endpoint == "" {
		u, err := url.Parse(c.baseURL + "/products/")
		if err != nil {
			return nil, fmt.Errorf("build products url: %w", err)
		}
		params := u.Query()
		if q.Q != "" {
			params.Set("q", q.Q)
		}
		if q.Category != "" {
			params.Set("category", q.Category)
		}
		u.RawQuery = params.Encode()
		endpoint = u.String()
	}

	var page wirePage
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &page); err != nil {
		return nil, err
	}

	out := &Page{Products: make([]domain.Product, 0, len(page.Results))}
	for _, wp := range page.Results {
		p, err := wp.toDomain()
		if err != nil {
			return nil, err
		}
		out.Products = append(out.Products, p)
	}
	if page.Next != nil {
		out.Next = *page.Next
	}
	if page.Previous != nil {
		out.Previous = *page.Previous
	}
	return out, nil
}

// GetProduct fetches one product by id.
func (c *Client) GetProduct(ctx context.Context, productID int64) (*domain.Product, error) {
	var wp wireProduct
	endpoint := fmt.Sprintf("%s/products/%d/", c.baseURL, productID)
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &wp); err != nil {
		return nil, err
	}
	p, err := wp.toDomain()
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListReviews fetches a product's reviews and aggregate rating.
func (c *Client) ListReviews(ctx context.Context, productID int64) (*ReviewPage, error) {
	var page wireReviewPage
	endpoint := fmt.Sprintf("%s/products/%d/reviews/", c.baseURL, productID)
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &page); err != nil {
		return nil, err
	}
	out := &ReviewPage{
		Reviews: make([]domain.Review, 0, len(page.Results)),
		Summary: domain.RatingSummary{Average: page.Average, Count: page.Count},
	}
	for _, wr := range page.Results {
		out.Reviews = append(out.Reviews, wr.toDomain())
	}
	return out, nil
}

// CreateReview submits a review and returns the created review as echoed by
// the server.
func (c *Client) CreateReview(ctx context.Context, productID int64, in ReviewInput) (*domain.Review, error) {
	var created wireReview
	endpoint := fmt.Sprintf("%s/products/%d/reviews/", c.baseURL, productID)
	if err := c.do(ctx, http.MethodPost, endpoint, in, &created); err != nil {
		return nil, err
	}
	review := created.toDomain()
	return &review, nil
}

// BuyNow requests a direct-purchase messaging link for one product.
func (c *Client) BuyNow(ctx context.Context, productID int64, qty int) (*OrderLink, error) {
	body := struct {
		ProductID int64 `json:"product_id"`
		Qty       int   `json:"qty"`
	}{ProductID: productID, Qty: qty}
	var link wireOrderLink
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/buynow/whatsapp/", body, &link); err != nil {
		return nil, err
	}
	return link.toDomain()
}

// Checkout requests a messaging link for a multi-item order.
func (c *Client) Checkout(ctx context.Context, items []CheckoutItem, customerName, customerPhone string) (*OrderLink, error) {
	body := struct {
		Items         []CheckoutItem `json:"items"`
		CustomerName  string         `json:"customer_name"`
		CustomerPhone string         `json:"customer_phone"`
	}{Items: items, CustomerName: customerName, CustomerPhone: customerPhone}
	var link wireOrderLink
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/checkout/whatsapp/", body, &link); err != nil {
		return nil, err
	}
	return link.toDomain()
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("call catalog: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		var detail struct {
			Detail string `json:"detail"`
		}
		_ = json.NewDecoder(res.Body).Decode(&detail)
		return &Error{Status: res.StatusCode, Detail: detail.Detail}
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (p wireProduct) toDomain() (domain.Product, error) {
	price, err := decimal.NewFromString(p.Price)
	if err != nil {
		return domain.Product{}, fmt.Errorf("parse price for product %d: %w", p.ID, err)
	}
	out := domain.Product{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		SKU:         p.SKU,
		Price:       price,
		IsActive:    p.IsActive,
		Featured:    p.Featured,
	}
	if p.PromoPrice != nil && *p.PromoPrice != "" {
		promo, err := decimal.NewFromString(*p.PromoPrice)
		if err != nil {
			return domain.Product{}, fmt.Errorf("parse promo price for product %d: %w", p.ID, err)
		}
		out.PromoPrice = &promo
	}
	// Images arrive ordered by position; keep the array order.
	for _, img := range p.Images {
		out.Images = append(out.Images, domain.Image{URL: img.URL, Position: img.Position})
	}
	return out, nil
}

func (r wireReview) toDomain() domain.Review {
	return domain.Review{
		ID:        r.ID,
		Name:      r.Name,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

func (l wireOrderLink) toDomain() (*OrderLink, error) {
	total, err := decimal.NewFromString(l.Total)
	if err != nil {
		return nil, fmt.Errorf("parse order total: %w", err)
	}
	return &OrderLink{WhatsAppLink: l.WhatsAppLink, Total: total}, nil
}
