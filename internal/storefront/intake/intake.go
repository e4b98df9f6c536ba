// Package intake submits new products on behalf of an authenticated admin.
package intake

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"

	"storefront/internal/domain"
	"storefront/internal/storefront/client"
	"storefront/internal/storefront/events"
)

// Creator is the remote product service.
type Creator interface {
	CreateProduct(ctx context.Context, token string, in client.NewProduct) (*domain.Product, error)
}

// TokenSource yields the current admin token, if any.
type TokenSource interface {
	Token() (string, bool)
}

// Publisher receives the catalog-stale signal after a successful create.
type Publisher interface {
	Publish(e events.Event) int
}

// Intake holds the draft between edits and submits it.
type Intake struct {
	creator Creator
	tokens  TokenSource
	bus     Publisher
	logger  *log.Logger

	mu    sync.Mutex
	draft Draft
}

func New(creator Creator, tokens TokenSource, bus Publisher, logger *log.Logger) *Intake {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Intake{
		creator: creator,
		tokens:  tokens,
		bus:     bus,
		logger:  logger,
		draft:   DefaultDraft(),
	}
}

// Draft returns a copy of the held draft.
func (in *Intake) Draft() Draft {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.draft
}

// SetField edits one draft field.
func (in *Intake) SetField(field, value string) error {
	in.mu.Lock()
	defer in.mu.Unlock()
	next := in.draft
	if err := next.Set(field, value); err != nil {
		return err
	}
	in.draft = next
	return nil
}

// Replace swaps the whole draft.
func (in *Intake) Replace(d Draft) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.draft = d
}

func (in *Intake) Reset() {
	in.Replace(DefaultDraft())
}

// Submit validates the held draft and sends it with the session token.
// Validation and missing sessions fail before any network call. On success the
// draft is reset and CatalogStale is published; on failure the draft is kept.
func (in *Intake) Submit(ctx context.Context) (*domain.Product, error) {
	draft := in.Draft()
	payload, err := draft.Validate()
	if err != nil {
		return nil, err
	}
	token, ok := in.tokens.Token()
	if !ok {
		return nil, domain.ErrNotAuthenticated
	}

	created, err := in.creator.CreateProduct(ctx, token, payload)
	if err != nil {
		in.logger.Printf("intake: submit failed name=%q: %v", payload.Name, err)
		return nil, fmt.Errorf("submit product: %w", err)
	}

	in.mu.Lock()
	if in.draft == draft {
		in.draft = DefaultDraft()
	}
	in.mu.Unlock()

	if in.bus != nil {
		in.bus.Publish(events.Event{Kind: events.CatalogStale, ProductID: created.ID})
	}
	in.logger.Printf("intake: created product id=%d name=%q", created.ID, created.Name)
	return created, nil
}
