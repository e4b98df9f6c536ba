package product

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	// List returns every product, newest first.
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	// Create inserts p and returns it with id and created_at set. A duplicate
	// name yields domain.ErrAlreadyExists.
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
}
