package admin

import (
	"context"

	"storefront/internal/domain"
)

// Repository persists admin accounts.
type Repository interface {
	GetByUsername(ctx context.Context, username string) (*domain.Admin, error)
	// Upsert creates the admin or replaces its password hash.
	Upsert(ctx context.Context, username, passwordHash string) (*domain.Admin, error)
}
