package catalog

import (
	"context"

	"storefront/internal/domain"
)

// SeedProducts is the catalog the shop ships with before any remote load.
func SeedProducts() []domain.Product {
	return domain.DefaultProducts()
}

// StaticLoader serves a fixed product list.
type StaticLoader []domain.Product

func (l StaticLoader) ListProducts(context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, len(l))
	copy(out, l)
	return out, nil
}
