package product

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"storefront/internal/domain"
	productrepo "storefront/internal/repository/product"
)

// ErrMissingFields mirrors the message the product endpoint answers with.
var ErrMissingFields = fmt.Errorf("%w: Missing required fields", domain.ErrValidation)

type Service struct {
	repo   productrepo.Repository
	logger *log.Logger
}

func New(repo productrepo.Repository, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, logger: logger}
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateInput is the product payload. Price is a pointer so a missing price
// can be told apart from zero.
type CreateInput struct {
	Name        string `json:"name"`
	Price       *int64 `json:"price"`
	Category    string `json:"category"`
	Image       string `json:"image"`
	Description string `json:"description"`
}

// Create validates in and stores the product.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Product, error) {
	p, err := in.validate()
	if err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	s.logger.Printf("product service: created id=%d category=%s", created.ID, created.Category)
	return created, nil
}

func (in CreateInput) validate() (domain.Product, error) {
	name := strings.TrimSpace(in.Name)
	image := strings.TrimSpace(in.Image)
	if name == "" || in.Price == nil || strings.TrimSpace(in.Category) == "" || image == "" {
		return domain.Product{}, ErrMissingFields
	}
	if *in.Price < 0 {
		return domain.Product{}, fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	}
	category, err := domain.ParseCategory(in.Category)
	if err != nil {
		return domain.Product{}, err
	}
	return domain.Product{
		Name:        name,
		Price:       *in.Price,
		Category:    category,
		Image:       image,
		Description: strings.TrimSpace(in.Description),
	}, nil
}
