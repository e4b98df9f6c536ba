package domain

import (
	"encoding/json"
	"math"
)

// CartLine is a product snapshot plus how many of it are in the cart.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Total is the line's price times quantity.
func (l CartLine) Total() int64 {
	return l.Product.Price * int64(l.Quantity)
}

// Cart is an immutable, insertion-ordered set of lines keyed by product id.
// Every mutating method returns a new Cart and leaves the receiver untouched,
// so a Cart value can be shared freely between readers.
type Cart struct {
	lines []CartLine
}

// NewCart builds a cart from lines, merging duplicates and dropping lines
// whose quantity is below 1.
func NewCart(lines ...CartLine) Cart {
	var c Cart
	for _, l := range lines {
		if l.Quantity < 1 {
			continue
		}
		if i := c.index(l.Product.ID); i >= 0 {
			c = c.withQuantity(i, addClamped(c.lines[i].Quantity, l.Quantity))
			continue
		}
		c.lines = append(c.cloneLines(1), l)
	}
	return c
}

// AddItem increments the line for p or appends a new line with quantity 1.
func (c Cart) AddItem(p Product) Cart {
	if i := c.index(p.ID); i >= 0 {
		return c.withQuantity(i, addClamped(c.lines[i].Quantity, 1))
	}
	return Cart{lines: append(c.cloneLines(1), CartLine{Product: p, Quantity: 1})}
}

// RemoveItem drops the line for id. Unknown ids leave the cart unchanged.
func (c Cart) RemoveItem(id int64) Cart {
	i := c.index(id)
	if i < 0 {
		return c
	}
	lines := make([]CartLine, 0, len(c.lines)-1)
	lines = append(lines, c.lines[:i]...)
	lines = append(lines, c.lines[i+1:]...)
	return Cart{lines: lines}
}

// AdjustQuantity moves the line's quantity by delta but never below 1.
// Removing a line takes an explicit RemoveItem. Unknown ids are a no-op.
func (c Cart) AdjustQuantity(id int64, delta int) Cart {
	i := c.index(id)
	if i < 0 {
		return c
	}
	q := addClamped(c.lines[i].Quantity, delta)
	if q < 1 {
		q = 1
	}
	return c.withQuantity(i, q)
}

// Line returns the line for id, if present.
func (c Cart) Line(id int64) (CartLine, bool) {
	if i := c.index(id); i >= 0 {
		return c.lines[i], true
	}
	return CartLine{}, false
}

// Lines returns a copy of the lines in insertion order.
func (c Cart) Lines() []CartLine {
	return c.cloneLines(0)
}

func (c Cart) Len() int {
	return len(c.lines)
}

func (c Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// TotalPrice is the sum of price × quantity over all lines.
func (c Cart) TotalPrice() int64 {
	var total int64
	for _, l := range c.lines {
		total += l.Total()
	}
	return total
}

// TotalItemCount is the sum of quantities over all lines.
func (c Cart) TotalItemCount() int {
	var n int
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// MarshalJSON renders the lines with their derived totals.
func (c Cart) MarshalJSON() ([]byte, error) {
	lines := c.Lines()
	if lines == nil {
		lines = []CartLine{}
	}
	return json.Marshal(struct {
		Lines          []CartLine `json:"lines"`
		TotalPrice     int64      `json:"total_price"`
		TotalItemCount int        `json:"total_item_count"`
	}{lines, c.TotalPrice(), c.TotalItemCount()})
}

func (c Cart) index(id int64) int {
	for i, l := range c.lines {
		if l.Product.ID == id {
			return i
		}
	}
	return -1
}

func (c Cart) withQuantity(i, q int) Cart {
	lines := c.cloneLines(0)
	lines[i].Quantity = q
	return Cart{lines: lines}
}

func (c Cart) cloneLines(extra int) []CartLine {
	if len(c.lines) == 0 && extra == 0 {
		return nil
	}
	out := make([]CartLine, len(c.lines), len(c.lines)+extra)
	copy(out, c.lines)
	return out
}

// addClamped adds without wrapping past the int range.
func addClamped(a, b int) int {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return math.MaxInt
	case b < 0 && a < math.MinInt-b:
		return math.MinInt
	}
	return a + b
}
