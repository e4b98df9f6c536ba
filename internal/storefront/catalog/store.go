package catalog

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"sync/atomic"

	"storefront/internal/domain"
	"storefront/internal/storefront/events"
)

// Loader fetches the authoritative product list.
type Loader interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// Store holds the last successfully loaded catalog. Loads replace the whole
// snapshot at once; a failed load leaves the previous snapshot in place.
// Overlapping loads are ordered by when they started: a response that arrives
// after a later-started load has been applied is dropped.
type Store struct {
	loader  Loader
	logger  *log.Logger
	current atomic.Pointer[[]domain.Product]

	issued  atomic.Uint64
	mu      sync.Mutex
	applied uint64
}

func New(loader Loader, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &Store{loader: loader, logger: logger}
	empty := []domain.Product{}
	s.current.Store(&empty)
	return s
}

// Load refreshes the catalog from the loader and returns the new set. On
// failure the previous set is kept and the error is returned for the caller
// to report.
func (s *Store) Load(ctx context.Context) ([]domain.Product, error) {
	seq := s.issued.Add(1)
	products, err := s.loader.ListProducts(ctx)
	if err != nil {
		s.logger.Printf("catalog: load failed, keeping %d products: %v", len(s.snapshot()), err)
		return s.Products(), fmt.Errorf("load catalog: %w", err)
	}
	next := make([]domain.Product, len(products))
	copy(next, products)

	s.mu.Lock()
	if seq < s.applied {
		applied := s.applied
		s.mu.Unlock()
		s.logger.Printf("catalog: dropped load #%d, #%d already applied", seq, applied)
		return s.Products(), nil
	}
	s.applied = seq
	s.current.Store(&next)
	s.mu.Unlock()

	s.logger.Printf("catalog: loaded %d products", len(next))
	return s.Products(), nil
}

// Products returns a copy of the current catalog.
func (s *Store) Products() []domain.Product {
	cur := s.snapshot()
	out := make([]domain.Product, len(cur))
	copy(out, cur)
	return out
}

// Filter returns the current catalog narrowed by f, in catalog order.
func (s *Store) Filter(f domain.CategoryFilter) []domain.Product {
	return domain.FilterProducts(s.snapshot(), f)
}

// Get looks a product up by id in the current catalog.
func (s *Store) Get(id int64) (domain.Product, bool) {
	for _, p := range s.snapshot() {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// ReloadFunc observes the outcome of a reload triggered by Watch.
type ReloadFunc func(products []domain.Product, err error)

// Watch reloads the catalog for every event received on stale until ctx is
// done or the channel is closed. It blocks; run it in its own goroutine.
func (s *Store) Watch(ctx context.Context, stale <-chan events.Event, onReload ReloadFunc) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-stale:
			if !ok {
				return
			}
			s.logger.Printf("catalog: %s received product_id=%d, reloading", ev.Kind, ev.ProductID)
			products, err := s.Load(ctx)
			if onReload != nil {
				onReload(products, err)
			}
		}
	}
}

func (s *Store) snapshot() []domain.Product {
	return *s.current.Load()
}
