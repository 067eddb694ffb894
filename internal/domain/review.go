package domain

import "time"

type Review struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// RatingSummary is the aggregate rating displayed for a product.
type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// Add folds one accepted rating into the summary without refetching the full
// review list. The result is an approximation of the server-side aggregate
// and holds only until the next full fetch.
func (s RatingSummary) Add(rating int) RatingSummary {
	return RatingSummary{
		Average: (s.Average*float64(s.Count) + float64(rating)) / float64(s.Count+1),
		Count:   s.Count + 1,
	}
}
