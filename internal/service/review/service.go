package review

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/domain"
	reviewrepo "storefront/internal/repository/review"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Service struct {
	repo reviewrepo.Repository
}

func New(repo reviewrepo.Repository) *Service {
	return &Service{repo: repo}
}

// List returns reviews, all of them or for one product.
func (s *Service) List(ctx context.Context, productID *int64) ([]domain.Review, error) {
	return s.repo.List(ctx, productID)
}

type CreateInput struct {
	ProductID  int64  `json:"product_id"`
	AuthorName string `json:"author_name"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

// Create stores a review. An unknown product yields domain.ErrNotFound.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Review, error) {
	author := strings.TrimSpace(in.AuthorName)
	if in.ProductID <= 0 || author == "" {
		return nil, fmt.Errorf("%w: product_id and author_name required", domain.ErrValidation)
	}
	if in.Rating < MinRating || in.Rating > MaxRating {
		return nil, fmt.Errorf("%w: rating must be between %d and %d", domain.ErrValidation, MinRating, MaxRating)
	}
	return s.repo.Create(ctx, domain.Review{
		ProductID:  in.ProductID,
		AuthorName: author,
		Rating:     in.Rating,
		Comment:    strings.TrimSpace(in.Comment),
	})
}
