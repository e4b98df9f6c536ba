package domain

import "time"

type Product struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Price       int64      `json:"price"`
	Category    Category   `json:"category"`
	Image       string     `json:"image"`
	Description string     `json:"description,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// FilterProducts returns the products passing f, preserving their order.
// The input slice is never returned directly so callers may keep it.
func FilterProducts(products []Product, f CategoryFilter) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if f.Matches(p.Category) {
			out = append(out, p)
		}
	}
	return out
}
