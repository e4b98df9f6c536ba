package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/text/language"

	"storefront/internal/domain"
	"storefront/internal/storefront/catalog"
	"storefront/internal/storefront/client"
	"storefront/internal/storefront/intake"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type stubRemote struct {
	mu          sync.Mutex
	products    []domain.Product
	listErr     error
	listCalls   int
	loginErr    error
	createErr   error
	validateErr error
	reviews     []domain.Review
	reviewsErr  error
}

func (s *stubRemote) ValidateSession(_ context.Context, token string) (string, error) {
	if s.validateErr != nil {
		return "", s.validateErr
	}
	return "admin", nil
}

func (s *stubRemote) ListReviews(_ context.Context, productID int64) ([]domain.Review, error) {
	if s.reviewsErr != nil {
		return nil, s.reviewsErr
	}
	var out []domain.Review
	for _, r := range s.reviews {
		if productID == 0 || r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubRemote) ListProducts(context.Context) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

func (s *stubRemote) Login(_ context.Context, username, _ string) (*client.LoginResult, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return &client.LoginResult{Token: "tok", Username: username}, nil
}

func (s *stubRemote) CreateProduct(_ context.Context, _ string, in client.NewProduct) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return nil, s.createErr
	}
	p := domain.Product{ID: int64(len(s.products) + 1), Name: in.Name, Price: in.Price, Category: in.Category, Image: in.Image}
	s.products = append([]domain.Product{p}, s.products...)
	return &p, nil
}

func (s *stubRemote) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listCalls
}

func newController(t *testing.T, remote *stubRemote, notices chan Notice) *Controller {
	t.Helper()
	c := New(remote, Options{
		Language: language.English,
		OnNotice: func(n Notice) {
			if notices != nil {
				notices <- n
			}
		},
	})
	c.Start(context.Background())
	t.Cleanup(c.Close)
	return c
}

func TestCartScenario(t *testing.T) {
	c := New(&stubRemote{}, Options{Catalog: catalog.StaticLoader(catalog.SeedProducts()), Language: language.English})
	defer c.Close()
	require.False(t, c.Reload(context.Background()).IsError())

	assert.Equal(t, "Added to cart: Толстовка Premium", c.AddToCart(1).String())
	assert.Equal(t, "Added to cart: Толстовка Premium (x2)", c.AddToCart(1).String())
	c.AddToCart(2)
	assert.Equal(t, int64(13970), c.Cart.TotalPrice())
	assert.Equal(t, "3 items, 13,970 ₽", c.CartSummary())

	n := c.AddToCart(42)
	assert.True(t, n.IsError())

	c.AdjustQuantity(1, -10)
	line, ok := c.Cart.Snapshot().Line(1)
	require.True(t, ok)
	assert.Equal(t, 1, line.Quantity)

	c.RemoveFromCart(2)
	c.RemoveFromCart(2)
	assert.Equal(t, int64(4990), c.Cart.TotalPrice())
}

func TestBrowse(t *testing.T) {
	c := New(&stubRemote{}, Options{Catalog: catalog.StaticLoader(catalog.SeedProducts())})
	defer c.Close()
	c.Reload(context.Background())

	all, n := c.Browse("")
	assert.False(t, n.IsError())
	assert.Len(t, all, 6)

	couples, _ := c.Browse("couples")
	require.Len(t, couples, 1)
	assert.Equal(t, int64(4), couples[0].ID)

	_, n = c.Browse("pets")
	assert.True(t, n.IsError())
}

func TestLogin_RejectedDoesNotLoadCatalog(t *testing.T) {
	remote := &stubRemote{loginErr: domain.ErrInvalidCredentials}
	c := newController(t, remote, nil)

	n := c.Login(context.Background(), "admin", "wrong")
	assert.True(t, n.IsError())
	assert.Equal(t, MsgInvalidCredentials, n.Message)
	assert.Zero(t, remote.calls())
	_, ok := c.Session.Token()
	assert.False(t, ok)
}

func TestLogin_UnreachableIsDistinct(t *testing.T) {
	remote := &stubRemote{loginErr: domain.ErrUnreachable}
	c := newController(t, remote, nil)

	n := c.Login(context.Background(), "admin", "secret")
	assert.Equal(t, MsgUnreachable, n.Message)
}

func TestLogin_SuccessLoadsCatalog(t *testing.T) {
	remote := &stubRemote{products: catalog.SeedProducts()}
	c := newController(t, remote, nil)

	n := c.Login(context.Background(), "admin", "secret")
	assert.False(t, n.IsError())
	assert.Equal(t, 1, remote.calls())
	assert.Len(t, c.Catalog.Products(), 6)

	c.Logout()
	_, ok := c.Session.Token()
	assert.False(t, ok)
}

func TestSubmit_ResetsDraftAndReloads(t *testing.T) {
	remote := &stubRemote{products: catalog.SeedProducts()}
	notices := make(chan Notice, 4)
	c := newController(t, remote, notices)
	require.False(t, c.Login(context.Background(), "admin", "secret").IsError())

	c.Intake.Replace(intake.Draft{Name: "Hoodie", Price: "4990", Category: domain.CategoryMen, Image: "https://img"})
	n := c.Submit(context.Background())
	require.False(t, n.IsError(), n.String())
	assert.Equal(t, intake.DefaultDraft(), c.Intake.Draft())

	select {
	case got := <-notices:
		assert.Equal(t, "Catalog updated", got.Title)
	case <-time.After(2 * time.Second):
		t.Fatal("catalog was not reloaded after submit")
	}
	products := c.Catalog.Products()
	require.Len(t, products, 7)
	assert.Equal(t, "Hoodie", products[0].Name)
}

func TestSubmit_Failures(t *testing.T) {
	t.Run("invalid draft", func(t *testing.T) {
		c := newController(t, &stubRemote{}, nil)
		require.False(t, c.Login(context.Background(), "admin", "secret").IsError())
		c.EditDraft("name", "Hoodie")

		n := c.Submit(context.Background())
		assert.Equal(t, MsgMissingFields, n.Message)
		assert.Equal(t, "Hoodie", c.Intake.Draft().Name)
	})
	t.Run("not signed in", func(t *testing.T) {
		c := newController(t, &stubRemote{}, nil)
		c.Intake.Replace(intake.Draft{Name: "Hoodie", Price: "1", Category: domain.CategoryMen, Image: "x"})

		n := c.Submit(context.Background())
		assert.Equal(t, MsgNotAuthenticated, n.Message)
	})
	t.Run("remote message", func(t *testing.T) {
		remote := &stubRemote{createErr: &domain.RemoteError{Status: 400, Message: "Missing required fields"}}
		c := newController(t, remote, nil)
		require.False(t, c.Login(context.Background(), "admin", "secret").IsError())
		c.Intake.Replace(intake.Draft{Name: "Hoodie", Price: "1", Category: domain.CategoryMen, Image: "x"})

		n := c.Submit(context.Background())
		assert.Equal(t, "Missing required fields", n.Message)
		assert.Equal(t, "Hoodie", c.Intake.Draft().Name)
	})
	t.Run("remote without message", func(t *testing.T) {
		remote := &stubRemote{createErr: &domain.RemoteError{Status: 500}}
		c := newController(t, remote, nil)
		require.False(t, c.Login(context.Background(), "admin", "secret").IsError())
		c.Intake.Replace(intake.Draft{Name: "Hoodie", Price: "1", Category: domain.CategoryMen, Image: "x"})

		n := c.Submit(context.Background())
		assert.Equal(t, MsgAddProductFailed, n.Message)
	})
}

func TestReload_FailureKeepsCatalog(t *testing.T) {
	remote := &stubRemote{products: catalog.SeedProducts()}
	c := newController(t, remote, nil)
	require.False(t, c.Reload(context.Background()).IsError())

	remote.mu.Lock()
	remote.listErr = errors.New("boom")
	remote.mu.Unlock()

	n := c.Reload(context.Background())
	assert.True(t, n.IsError())
	assert.Equal(t, MsgLoadCatalogFailed, n.Message)
	assert.Len(t, c.Catalog.Products(), 6)
}

func TestNoticeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"missing", domain.ErrMissingFields, MsgMissingFields},
		{"credentials", domain.ErrInvalidCredentials, MsgInvalidCredentials},
		{"unreachable", domain.ErrUnreachable, MsgUnreachable},
		{"remote", &domain.RemoteError{Status: 409, Message: "exists"}, "exists"},
		{"other", errors.New("boom"), "fallback"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			n := NoticeFor(tc.err, "fallback")
			assert.Equal(t, LevelError, n.Level)
			assert.Equal(t, tc.want, n.Message)
		})
	}
}

func TestVerifySession(t *testing.T) {
	ctx := context.Background()
	remote := &stubRemote{products: catalog.SeedProducts()}
	c := newController(t, remote, nil)

	assert.Equal(t, MsgNotAuthenticated, c.VerifySession(ctx).Message)

	require.False(t, c.Login(ctx, "admin", "secret").IsError())
	n := c.VerifySession(ctx)
	assert.False(t, n.IsError())
	assert.Equal(t, "Signed in: admin", n.String())

	remote.validateErr = domain.ErrInvalidCredentials
	n = c.VerifySession(ctx)
	assert.Equal(t, MsgSessionExpired, n.Message)
	_, ok := c.Session.Token()
	assert.False(t, ok)
}

func TestReviews(t *testing.T) {
	ctx := context.Background()
	remote := &stubRemote{
		products: catalog.SeedProducts(),
		reviews: []domain.Review{
			{ID: 1, ProductID: 1, AuthorName: "Анна", Rating: 5},
			{ID: 2, ProductID: 2, AuthorName: "Олег", Rating: 4},
		},
	}
	c := newController(t, remote, nil)
	require.False(t, c.Reload(ctx).IsError())

	all, n := c.Reviews(ctx, 0)
	assert.False(t, n.IsError())
	assert.Len(t, all, 2)

	one, _ := c.Reviews(ctx, 2)
	require.Len(t, one, 1)
	assert.Equal(t, "Олег", one[0].AuthorName)

	_, n = c.Reviews(ctx, 99)
	assert.True(t, n.IsError())

	remote.reviewsErr = &domain.RemoteError{Status: 500}
	_, n = c.Reviews(ctx, 1)
	assert.Equal(t, MsgLoadReviewsFailed, n.Message)
}
