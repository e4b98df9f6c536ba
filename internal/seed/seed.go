package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"storefront/internal/domain"
	adminrepo "storefront/internal/repository/admin"
	productrepo "storefront/internal/repository/product"
	authsvc "storefront/internal/service/auth"
)

// Options controls what Apply writes.
type Options struct {
	AdminUsername string
	// AdminPassword is required; the admin row is (re)written with its hash.
	AdminPassword string
	// SkipProducts leaves the catalog untouched.
	SkipProducts bool
}

// Apply inserts the default admin and launch catalog. It is idempotent: the
// admin password is reset and products that already exist by name are kept.
func Apply(ctx context.Context, admins adminrepo.Repository, products productrepo.Repository, opts Options, logger *log.Logger) error {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	username := opts.AdminUsername
	if username == "" {
		username = "admin"
	}
	hash, err := authsvc.HashPassword(opts.AdminPassword)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	if _, err := admins.Upsert(ctx, username, hash); err != nil {
		return fmt.Errorf("upsert admin %s: %w", username, err)
	}
	logger.Printf("admin %s ready", username)

	if opts.SkipProducts {
		return nil
	}
	// Oldest first so the listing, newest first, matches the launch order.
	defaults := domain.DefaultProducts()
	for i := len(defaults) - 1; i >= 0; i-- {
		p := defaults[i]
		p.ID = 0
		if _, err := products.Create(ctx, p); err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				continue
			}
			return fmt.Errorf("create product %s: %w", p.Name, err)
		}
		logger.Printf("product %s created", p.Name)
	}
	return nil
}
