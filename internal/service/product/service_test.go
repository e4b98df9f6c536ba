package product

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
)

type memoryRepo struct {
	products []domain.Product
}

func (r *memoryRepo) List(context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(r.products))
	for i := len(r.products) - 1; i >= 0; i-- {
		out = append(out, r.products[i])
	}
	return out, nil
}

func (r *memoryRepo) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memoryRepo) Create(_ context.Context, p domain.Product) (*domain.Product, error) {
	for _, existing := range r.products {
		if existing.Name == p.Name {
			return nil, domain.ErrAlreadyExists
		}
	}
	now := time.Now()
	p.ID = int64(len(r.products) + 1)
	p.CreatedAt = &now
	r.products = append(r.products, p)
	return &p, nil
}

func price(v int64) *int64 { return &v }

func TestCreate_Valid(t *testing.T) {
	repo := &memoryRepo{}
	svc := New(repo, nil)

	name := gofakeit.ProductName()
	got, err := svc.Create(context.Background(), CreateInput{
		Name:     "  " + name + " ",
		Price:    price(4990),
		Category: "Women",
		Image:    gofakeit.URL(),
	})
	require.NoError(t, err)
	assert.Equal(t, name, got.Name)
	assert.Equal(t, domain.CategoryWomen, got.Category)
	assert.NotNil(t, got.CreatedAt)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCreate_Invalid(t *testing.T) {
	svc := New(&memoryRepo{}, nil)
	valid := CreateInput{Name: "Hoodie", Price: price(1), Category: "men", Image: "x"}

	tests := []struct {
		name    string
		mutate  func(*CreateInput)
		wantErr error
	}{
		{"no name", func(in *CreateInput) { in.Name = "" }, ErrMissingFields},
		{"no price", func(in *CreateInput) { in.Price = nil }, ErrMissingFields},
		{"no category", func(in *CreateInput) { in.Category = "" }, ErrMissingFields},
		{"no image", func(in *CreateInput) { in.Image = " " }, ErrMissingFields},
		{"negative price", func(in *CreateInput) { in.Price = price(-5) }, domain.ErrValidation},
		{"unknown category", func(in *CreateInput) { in.Category = "pets" }, domain.ErrValidation},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			_, err := svc.Create(context.Background(), in)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	price0 := valid
	price0.Price = price(0)
	_, err := svc.Create(context.Background(), price0)
	assert.NoError(t, err)
}

func TestCreate_Duplicate(t *testing.T) {
	svc := New(&memoryRepo{}, nil)
	in := CreateInput{Name: "Hoodie", Price: price(1), Category: "men", Image: "x"}
	_, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}
