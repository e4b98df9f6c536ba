package events

import (
	"sync"
)

// Kind names an application-level signal.
type Kind string

// CatalogStale is published once a catalog mutation has been acknowledged by
// the product service; subscribers reload their view of the catalog.
const CatalogStale Kind = "catalog.stale"

type Event struct {
	Kind Kind
	// ProductID is the product whose creation made the catalog stale, if any.
	ProductID int64
}

// Bus fans events out to subscribers. Each subscription has a small buffer;
// publishing to a full subscription drops the event for that subscriber since
// a pending stale signal already covers the newer one.
type Bus struct {
	mu     sync.Mutex
	subs   map[Kind][]chan Event
	closed bool
}

func NewBus() *Bus {
	return &Bus{subs: make(map[Kind][]chan Event)}
}

// Subscribe returns a channel receiving events of kind k. The channel is
// closed by Close.
func (b *Bus) Subscribe(k Kind) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(chan Event, 1)
	if b.closed {
		close(ch)
		return ch
	}
	b.subs[k] = append(b.subs[k], ch)
	return ch
}

// Publish delivers e without blocking and reports how many subscribers got it.
func (b *Bus) Publish(e Event) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return 0
	}
	delivered := 0
	for _, ch := range b.subs[e.Kind] {
		select {
		case ch <- e:
			delivered++
		default:
		}
	}
	return delivered
}

// Close closes every subscription. Later publishes are ignored.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for _, chans := range b.subs {
		for _, ch := range chans {
			close(ch)
		}
	}
	b.subs = nil
}
