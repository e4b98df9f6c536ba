package domain

import (
	"math"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomProduct(id int64) Product {
	return Product{
		ID:       id,
		Name:     gofakeit.ProductName(),
		Price:    int64(gofakeit.IntRange(0, 20000)),
		Category: Categories[gofakeit.IntRange(0, len(Categories)-1)],
		Image:    gofakeit.URL(),
	}
}

func TestCart_AddItemTwiceMergesLine(t *testing.T) {
	p := randomProduct(7)

	c := Cart{}.AddItem(p).AddItem(p)

	require.Equal(t, 1, c.Len())
	line, ok := c.Line(p.ID)
	require.True(t, ok)
	assert.Equal(t, 2, line.Quantity)
	assert.Equal(t, p, line.Product)
}

func TestCart_Scenario(t *testing.T) {
	men := Product{ID: 1, Name: "Толстовка Premium", Price: 4990, Category: CategoryMen}
	women := Product{ID: 2, Name: "Худи Comfort", Price: 3990, Category: CategoryWomen}

	c := Cart{}.AddItem(men).AddItem(men).AddItem(women)

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, int64(1), lines[0].Product.ID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, int64(2), lines[1].Product.ID)
	assert.Equal(t, 1, lines[1].Quantity)
	assert.Equal(t, 3, c.TotalItemCount())
	assert.Equal(t, int64(13970), c.TotalPrice())
}

func TestCart_TotalsMatchLines(t *testing.T) {
	var c Cart
	for i := int64(1); i <= 20; i++ {
		p := randomProduct(int64(gofakeit.IntRange(1, 5)))
		c = c.AddItem(p)
		if i%3 == 0 {
			c = c.AdjustQuantity(p.ID, gofakeit.IntRange(-3, 3))
		}
	}

	var wantCount int
	var wantPrice int64
	for _, l := range c.Lines() {
		require.GreaterOrEqual(t, l.Quantity, 1)
		wantCount += l.Quantity
		wantPrice += l.Product.Price * int64(l.Quantity)
	}
	assert.Equal(t, wantCount, c.TotalItemCount())
	assert.Equal(t, wantPrice, c.TotalPrice())

	after := c.RemoveItem(999)
	assert.Equal(t, c.TotalItemCount(), after.TotalItemCount())
	assert.Equal(t, c.TotalPrice(), after.TotalPrice())
}

func TestCart_AddKeepsOtherLinesAndReceiver(t *testing.T) {
	a := randomProduct(1)
	b := randomProduct(2)
	before := Cart{}.AddItem(a).AddItem(b)

	after := before.AddItem(a)

	line, _ := before.Line(a.ID)
	assert.Equal(t, 1, line.Quantity, "receiver must not change")
	line, _ = after.Line(a.ID)
	assert.Equal(t, 2, line.Quantity)
	other, _ := after.Line(b.ID)
	assert.Equal(t, 1, other.Quantity)
}

func TestCart_RemoveItem(t *testing.T) {
	a := randomProduct(1)
	b := randomProduct(2)
	c := Cart{}.AddItem(a).AddItem(b)

	removed := c.RemoveItem(a.ID)
	require.Equal(t, 1, removed.Len())
	_, ok := removed.Line(a.ID)
	assert.False(t, ok)
	assert.Equal(t, 2, c.Len())

	assert.Equal(t, c.Lines(), c.RemoveItem(42).Lines())
}

func TestCart_AdjustQuantityNeverBelowOne(t *testing.T) {
	p := randomProduct(3)
	c := Cart{}.AddItem(p).AddItem(p).AddItem(p)

	for _, delta := range []int{-1, -2, -3, -100, math.MinInt} {
		got, _ := c.AdjustQuantity(p.ID, delta).Line(p.ID)
		assert.GreaterOrEqual(t, got.Quantity, 1, "delta %d", delta)
	}

	got, _ := c.AdjustQuantity(p.ID, -1).Line(p.ID)
	assert.Equal(t, 2, got.Quantity)
	got, _ = c.AdjustQuantity(p.ID, 4).Line(p.ID)
	assert.Equal(t, 7, got.Quantity)
	got, _ = c.AdjustQuantity(p.ID, math.MaxInt).Line(p.ID)
	assert.Equal(t, math.MaxInt, got.Quantity)
}

func TestCart_AdjustQuantityUnknownID(t *testing.T) {
	c := Cart{}.AddItem(randomProduct(1))
	assert.Equal(t, c.Lines(), c.AdjustQuantity(2, 5).Lines())
}

func TestNewCart_MergesAndDropsEmpty(t *testing.T) {
	p := randomProduct(1)
	q := randomProduct(2)
	c := NewCart(
		CartLine{Product: p, Quantity: 2},
		CartLine{Product: q, Quantity: 0},
		CartLine{Product: p, Quantity: 3},
	)
	require.Equal(t, 1, c.Len())
	line, _ := c.Line(p.ID)
	assert.Equal(t, 5, line.Quantity)
}

func TestCart_MarshalJSON(t *testing.T) {
	empty, err := Cart{}.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"lines":[],"total_price":0,"total_item_count":0}`, string(empty))

	c := Cart{}.AddItem(Product{ID: 1, Name: "Hoodie", Price: 100, Category: CategoryKids, Image: "x"})
	raw, err := c.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"lines":[{"product":{"id":1,"name":"Hoodie","price":100,"category":"kids","image":"x"},"quantity":1}],"total_price":100,"total_item_count":1}`, string(raw))
}
