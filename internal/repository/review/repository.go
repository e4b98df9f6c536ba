package review

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	// List returns reviews newest first, limited to one product when
	// productID is set.
	List(ctx context.Context, productID *int64) ([]domain.Review, error)
	// Create stores rv. An unknown product yields domain.ErrNotFound.
	Create(ctx context.Context, rv domain.Review) (*domain.Review, error)
}
