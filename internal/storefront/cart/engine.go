// Package cart holds the shopper's cart for the lifetime of a session.
package cart

import (
	"sync/atomic"

	"storefront/internal/domain"
)

// Engine owns one cart. Every operation computes a new domain.Cart and swaps
// it in whole, so Snapshot never observes a half-applied change.
type Engine struct {
	current atomic.Pointer[domain.Cart]
}

func NewEngine() *Engine {
	e := &Engine{}
	empty := domain.NewCart()
	e.current.Store(&empty)
	return e
}

// Snapshot returns the cart as it is now.
func (e *Engine) Snapshot() domain.Cart {
	return *e.current.Load()
}

func (e *Engine) Add(p domain.Product) domain.Cart {
	return e.apply(func(c domain.Cart) domain.Cart { return c.AddItem(p) })
}

func (e *Engine) Remove(id int64) domain.Cart {
	return e.apply(func(c domain.Cart) domain.Cart { return c.RemoveItem(id) })
}

func (e *Engine) Adjust(id int64, delta int) domain.Cart {
	return e.apply(func(c domain.Cart) domain.Cart { return c.AdjustQuantity(id, delta) })
}

// Clear empties the cart.
func (e *Engine) Clear() domain.Cart {
	return e.apply(func(domain.Cart) domain.Cart { return domain.NewCart() })
}

func (e *Engine) TotalPrice() int64 {
	return e.Snapshot().TotalPrice()
}

func (e *Engine) TotalItemCount() int {
	return e.Snapshot().TotalItemCount()
}

func (e *Engine) apply(fn func(domain.Cart) domain.Cart) domain.Cart {
	for {
		old := e.current.Load()
		next := fn(*old)
		if e.current.CompareAndSwap(old, &next) {
			return next
		}
	}
}
