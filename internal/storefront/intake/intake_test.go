package intake

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	"storefront/internal/storefront/client"
	"storefront/internal/storefront/events"
)

type stubCreator struct {
	calls   int
	token   string
	payload client.NewProduct
	product *domain.Product
	err     error

	// bus lets the stub record how many events were out before it returned.
	bus             *stubBus
	publishedBefore int
}

func (s *stubCreator) CreateProduct(_ context.Context, token string, in client.NewProduct) (*domain.Product, error) {
	s.calls++
	s.token = token
	s.payload = in
	if s.bus != nil {
		s.publishedBefore = len(s.bus.events)
	}
	return s.product, s.err
}

type stubTokens struct {
	token string
}

func (s stubTokens) Token() (string, bool) {
	return s.token, s.token != ""
}

type stubBus struct {
	events []events.Event
}

func (s *stubBus) Publish(e events.Event) int {
	s.events = append(s.events, e)
	return 1
}

func validDraft() Draft {
	return Draft{Name: "Hoodie", Price: "4990", Category: domain.CategoryMen, Image: "https://img"}
}

func TestDefaultDraft(t *testing.T) {
	d := DefaultDraft()
	assert.Equal(t, domain.CategoryMen, d.Category)
	assert.Empty(t, d.Name)
	assert.Empty(t, d.Price)
	assert.Empty(t, d.Image)
	assert.Empty(t, d.Description)
}

func TestDraft_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Draft)
		wantErr error
	}{
		{"empty name", func(d *Draft) { d.Name = " " }, domain.ErrMissingFields},
		{"empty price", func(d *Draft) { d.Price = "" }, domain.ErrMissingFields},
		{"empty image", func(d *Draft) { d.Image = "" }, domain.ErrMissingFields},
		{"price not a number", func(d *Draft) { d.Price = "abc" }, domain.ErrValidation},
		{"fractional price", func(d *Draft) { d.Price = "10.5" }, domain.ErrValidation},
		{"negative price", func(d *Draft) { d.Price = "-1" }, domain.ErrValidation},
		{"huge price", func(d *Draft) { d.Price = "99999999999999999999" }, domain.ErrValidation},
		{"bad category", func(d *Draft) { d.Category = "pets" }, domain.ErrValidation},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := validDraft()
			tc.mutate(&d)
			_, err := d.Validate()
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	d := validDraft()
	d.Price = "4990.00"
	d.Description = "  warm "
	got, err := d.Validate()
	require.NoError(t, err)
	assert.Equal(t, client.NewProduct{Name: "Hoodie", Price: 4990, Category: domain.CategoryMen, Image: "https://img", Description: "warm"}, got)
}

func TestDraft_Set(t *testing.T) {
	d := DefaultDraft()
	require.NoError(t, d.Set("name", "Hoodie"))
	require.NoError(t, d.Set("Category", "Kids"))
	assert.Equal(t, "Hoodie", d.Name)
	assert.Equal(t, domain.CategoryKids, d.Category)

	assert.ErrorIs(t, d.Set("category", "pets"), domain.ErrValidation)
	assert.ErrorIs(t, d.Set("colour", "red"), domain.ErrValidation)
	assert.Equal(t, domain.CategoryKids, d.Category)
}

func TestSubmit_InvalidDraftSkipsNetwork(t *testing.T) {
	creator := &stubCreator{}
	bus := &stubBus{}
	in := New(creator, stubTokens{token: "tok"}, bus, nil)
	d := validDraft()
	d.Name = ""
	in.Replace(d)

	_, err := in.Submit(context.Background())
	assert.ErrorIs(t, err, domain.ErrMissingFields)
	assert.Zero(t, creator.calls)
	assert.Empty(t, bus.events)
	assert.Equal(t, d, in.Draft())
}

func TestSubmit_RequiresSession(t *testing.T) {
	creator := &stubCreator{}
	in := New(creator, stubTokens{}, &stubBus{}, nil)
	in.Replace(validDraft())

	_, err := in.Submit(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, creator.calls)
}

func TestSubmit_Success(t *testing.T) {
	bus := &stubBus{}
	creator := &stubCreator{product: &domain.Product{ID: 7, Name: "Hoodie", Price: 4990, Category: domain.CategoryMen}, bus: bus}
	in := New(creator, stubTokens{token: "tok"}, bus, nil)
	in.Replace(validDraft())

	got, err := in.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, "tok", creator.token)
	assert.Equal(t, int64(4990), creator.payload.Price)

	assert.Equal(t, DefaultDraft(), in.Draft())
	assert.Zero(t, creator.publishedBefore)
	require.Len(t, bus.events, 1)
	assert.Equal(t, events.Event{Kind: events.CatalogStale, ProductID: 7}, bus.events[0])
}

func TestSubmit_RemoteRejectionKeepsDraft(t *testing.T) {
	bus := &stubBus{}
	creator := &stubCreator{err: &domain.RemoteError{Status: 400, Message: "Missing required fields"}}
	in := New(creator, stubTokens{token: "tok"}, bus, nil)
	in.Replace(validDraft())

	_, err := in.Submit(context.Background())
	msg, ok := domain.RemoteMessage(err)
	require.True(t, ok)
	assert.Equal(t, "Missing required fields", msg)
	assert.Equal(t, validDraft(), in.Draft())
	assert.Empty(t, bus.events)
}

func TestSetField(t *testing.T) {
	in := New(&stubCreator{}, stubTokens{}, nil, nil)
	require.NoError(t, in.SetField("price", "100"))
	assert.Equal(t, "100", in.Draft().Price)
	assert.Error(t, in.SetField("nope", "x"))

	in.Reset()
	assert.Equal(t, DefaultDraft(), in.Draft())
}
