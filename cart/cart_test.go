package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	padThai   = Item{MenuID: 2, Name: "Pad Thai", Price: 150}
	friedRice = Item{MenuID: 1, Name: "Fried Rice", Price: 120}
)

func TestAddItemMergesDuplicates(t *testing.T) {
	c := New()
	c.AddItem(padThai)
	c.AddItem(padThai)

	lines := c.Lines()
	assert.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 300.0, c.Total())
}

func TestRemoveThenAddStartsFresh(t *testing.T) {
	c := New()
	c.AddItem(padThai)
	c.AddItem(padThai)
	c.AddItem(padThai)

	c.RemoveItem(padThai.MenuID)
	assert.True(t, c.IsEmpty())

	// Re-adding must not resurrect the old quantity
	c.AddItem(padThai)
	lines := c.Lines()
	assert.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestUpdateQuantityRemovesAtZero(t *testing.T) {
	c := New()
	c.AddItem(friedRice)
	c.UpdateQuantity(friedRice.MenuID, 2)

	lines := c.Lines()
	assert.Equal(t, 3, lines[0].Quantity)

	c.UpdateQuantity(friedRice.MenuID, -3)
	assert.True(t, c.IsEmpty())

	// Overshooting below zero also removes the line
	c.AddItem(friedRice)
	c.UpdateQuantity(friedRice.MenuID, -5)
	assert.True(t, c.IsEmpty())
}

func TestTotalMatchesLines(t *testing.T) {
	c := New()
	c.AddItem(padThai)
	c.AddItem(padThai)
	c.AddItem(friedRice)
	c.UpdateQuantity(friedRice.MenuID, 1)
	c.RemoveItem(padThai.MenuID)
	c.AddItem(padThai)

	var want float64
	for _, line := range c.Lines() {
		assert.GreaterOrEqual(t, line.Quantity, 1)
		want += line.Price * float64(line.Quantity)
	}
	assert.Equal(t, want, c.Total())
	assert.Equal(t, 150.0+2*120.0, c.Total())
}

func TestCheckoutItemsCarryNoPrice(t *testing.T) {
	c := New()
	c.AddItem(padThai)
	c.AddItem(padThai)
	c.AddItem(friedRice)

	items := c.CheckoutItems()
	assert.Equal(t, []CheckoutItem{
		{MenuID: 2, Quantity: 2},
		{MenuID: 1, Quantity: 1},
	}, items)
}

func TestUnknownIDsAreNoOps(t *testing.T) {
	c := New()
	c.RemoveItem(99)
	c.UpdateQuantity(99, 1)
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0.0, c.Total())
}
