package domain

import "strconv"

// Purchase-draft quantity bounds. The cart itself only enforces the lower
// bound; the upper bound applies to the detail-view quantity selector.
const (
	MinQuantity = 1
	MaxQuantity = 10
)

// ClampQuantity bounds q to [MinQuantity, MaxQuantity].
func ClampQuantity(q int) int {
	if q < MinQuantity {
		return MinQuantity
	}
	if q > MaxQuantity {
		return MaxQuantity
	}
	return q
}

// ParseQuantity interprets free-form quantity input. Non-numeric input falls
// back to MinQuantity; numeric input is clamped.
func ParseQuantity(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return MinQuantity
	}
	return ClampQuantity(n)
}
