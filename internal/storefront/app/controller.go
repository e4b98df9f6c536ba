// Package app wires the storefront's client-side components together and
// turns every outcome into a Notice.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"storefront/internal/domain"
	"storefront/internal/storefront/cart"
	"storefront/internal/storefront/catalog"
	"storefront/internal/storefront/client"
	"storefront/internal/storefront/events"
	"storefront/internal/storefront/intake"
	"storefront/internal/storefront/session"
)

// ReviewLister fetches reviews; productID 0 means every product.
type ReviewLister interface {
	ListReviews(ctx context.Context, productID int64) ([]domain.Review, error)
}

// Remote is everything the controller needs from the backend.
type Remote interface {
	catalog.Loader
	session.Authenticator
	intake.Creator
	ReviewLister
}

type Options struct {
	// Catalog overrides the remote as the product source, e.g. a seeded list.
	Catalog catalog.Loader
	// Language picks the number formatting for prices.
	Language language.Tag
	// OnNotice receives notices raised in the background, such as a failed
	// reload after a submit.
	OnNotice func(Notice)
	Logger   *log.Logger
}

// Controller owns one shopper/admin context: catalog, cart, session and intake.
type Controller struct {
	Catalog *catalog.Store
	Cart    *cart.Engine
	Session *session.Manager
	Intake  *intake.Intake

	reviews  ReviewLister
	bus      *events.Bus
	printer  *message.Printer
	onNotice func(Notice)
	logger   *log.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(remote Remote, opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	loader := opts.Catalog
	if loader == nil {
		loader = remote
	}
	tag := opts.Language
	if tag == language.Und {
		tag = language.Russian
	}
	onNotice := opts.OnNotice
	if onNotice == nil {
		onNotice = func(Notice) {}
	}

	bus := events.NewBus()
	sess := session.New(remote, logger)
	return &Controller{
		Catalog:  catalog.New(loader, logger),
		Cart:     cart.NewEngine(),
		Session:  sess,
		Intake:   intake.New(remote, sess, bus, logger),
		reviews:  remote,
		bus:      bus,
		printer:  message.NewPrinter(tag),
		onNotice: onNotice,
		logger:   logger,
	}
}

// Start runs the catalog reload loop until ctx is done or Close is called.
func (c *Controller) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		return
	}
	ctx, c.cancel = context.WithCancel(ctx)
	stale := c.bus.Subscribe(events.CatalogStale)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.Catalog.Watch(ctx, stale, func(products []domain.Product, err error) {
			if err != nil {
				c.onNotice(NoticeFor(err, MsgLoadCatalogFailed))
				return
			}
			c.onNotice(info("Catalog updated", fmt.Sprintf("%d products", len(products))))
		})
	}()
}

// Close stops the reload loop and waits for it.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.mu.Unlock()
	c.bus.Close()
	c.wg.Wait()
}

// Browse lists the catalog narrowed by a category filter ("" or "all" for
// everything).
func (c *Controller) Browse(filter string) ([]domain.Product, Notice) {
	f, err := domain.ParseCategoryFilter(filter)
	if err != nil {
		return nil, NoticeFor(err, "")
	}
	products := c.Catalog.Filter(f)
	return products, info("Catalog", fmt.Sprintf("%d products", len(products)))
}

// Reload fetches the catalog. On failure the previous catalog stays visible.
func (c *Controller) Reload(ctx context.Context) Notice {
	products, err := c.Catalog.Load(ctx)
	if err != nil {
		return NoticeFor(err, MsgLoadCatalogFailed)
	}
	return info("Catalog loaded", fmt.Sprintf("%d products", len(products)))
}

func (c *Controller) AddToCart(id int64) Notice {
	p, ok := c.Catalog.Get(id)
	if !ok {
		return NoticeFor(fmt.Errorf("%w: unknown product %d", domain.ErrValidation, id), "")
	}
	c.Cart.Add(p)
	if line, ok := c.Cart.Snapshot().Line(id); ok && line.Quantity > 1 {
		return info("Added to cart", fmt.Sprintf("%s (x%d)", p.Name, line.Quantity))
	}
	return info("Added to cart", p.Name)
}

func (c *Controller) RemoveFromCart(id int64) Notice {
	c.Cart.Remove(id)
	return info("Cart updated", c.CartSummary())
}

func (c *Controller) AdjustQuantity(id int64, delta int) Notice {
	c.Cart.Adjust(id, delta)
	return info("Cart updated", c.CartSummary())
}

// CartSummary renders the item count and total, e.g. "3 items, 13 970 ₽".
func (c *Controller) CartSummary() string {
	snap := c.Cart.Snapshot()
	return c.printer.Sprintf("%d items, %s", snap.TotalItemCount(), c.FormatPrice(snap.TotalPrice()))
}

// FormatPrice groups digits for the configured language and appends the
// ruble sign.
func (c *Controller) FormatPrice(amount int64) string {
	return c.printer.Sprintf("%d ₽", amount)
}

// Login authenticates the admin and, on success only, reloads the catalog.
func (c *Controller) Login(ctx context.Context, username, password string) Notice {
	if err := c.Session.Login(ctx, username, password); err != nil {
		return NoticeFor(err, MsgInvalidCredentials)
	}
	n := info("Signed in", c.Session.Session().Username)
	if _, err := c.Catalog.Load(ctx); err != nil {
		c.logger.Printf("app: catalog load after login failed: %v", err)
		c.onNotice(NoticeFor(err, MsgLoadCatalogFailed))
	}
	return n
}

// VerifySession checks the admin token with the authenticator. A revoked or
// expired token signs the admin out.
func (c *Controller) VerifySession(ctx context.Context) Notice {
	err := c.Session.Verify(ctx)
	switch {
	case err == nil:
		return info("Signed in", c.Session.Session().Username)
	case errors.Is(err, domain.ErrInvalidCredentials):
		return Notice{Level: LevelError, Title: "Error", Message: MsgSessionExpired}
	}
	return NoticeFor(err, MsgInvalidCredentials)
}

// Reviews lists reviews for one product, or all of them when productID is 0.
func (c *Controller) Reviews(ctx context.Context, productID int64) ([]domain.Review, Notice) {
	if productID != 0 {
		if _, ok := c.Catalog.Get(productID); !ok {
			return nil, NoticeFor(fmt.Errorf("%w: unknown product %d", domain.ErrValidation, productID), "")
		}
	}
	reviews, err := c.reviews.ListReviews(ctx, productID)
	if err != nil {
		return nil, NoticeFor(err, MsgLoadReviewsFailed)
	}
	return reviews, info("Reviews", fmt.Sprintf("%d reviews", len(reviews)))
}

func (c *Controller) Logout() Notice {
	c.Session.Logout()
	return info("Signed out", "")
}

func (c *Controller) EditDraft(field, value string) Notice {
	if err := c.Intake.SetField(field, value); err != nil {
		return NoticeFor(err, "")
	}
	return info("Draft updated", field)
}

// Submit sends the draft. The catalog reload happens in the background once
// the create has been acknowledged.
func (c *Controller) Submit(ctx context.Context) Notice {
	p, err := c.Intake.Submit(ctx)
	if err != nil {
		return NoticeFor(err, MsgAddProductFailed)
	}
	return info("Product added", p.Name)
}

var _ Remote = (*client.Client)(nil)
