package cart

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreSavesOnEveryMutation(t *testing.T) {
	var saves []struct {
		key   string
		lines []Line
	}
	store := NewStore(func(key string, lines []Line) error {
		saves = append(saves, struct {
			key   string
			lines []Line
		}{key, lines})
		return nil
	})

	_, err := store.AddItem("sess-1", padThai)
	assert.NoError(t, err)
	_, err = store.UpdateQuantity("sess-1", padThai.MenuID, 1)
	assert.NoError(t, err)
	_, err = store.RemoveItem("sess-1", padThai.MenuID)
	assert.NoError(t, err)
	assert.NoError(t, store.Clear("sess-1"))

	assert.Len(t, saves, 4)
	for _, s := range saves {
		assert.Equal(t, "sess-1", s.key)
	}
	assert.Equal(t, 2, saves[1].lines[0].Quantity)
	assert.Empty(t, saves[2].lines)
}

func TestStoreKeepsSessionsSeparate(t *testing.T) {
	store := NewStore(nil)

	store.AddItem("sess-a", padThai)
	store.AddItem("sess-b", friedRice)
	store.AddItem("sess-b", friedRice)

	assert.Equal(t, 150.0, store.Total("sess-a"))
	assert.Equal(t, 240.0, store.Total("sess-b"))
	assert.Len(t, store.Lines("sess-a"), 1)
}

func TestStoreRestore(t *testing.T) {
	store := NewStore(nil)
	store.Restore("sess-1", []Line{
		{MenuID: 2, Name: "Pad Thai", Price: 150, Quantity: 2},
		{MenuID: 1, Name: "Fried Rice", Price: 120, Quantity: 1},
	})

	assert.Equal(t, 420.0, store.Total("sess-1"))
	items := store.CheckoutItems("sess-1")
	assert.Equal(t, []CheckoutItem{
		{MenuID: 2, Quantity: 2},
		{MenuID: 1, Quantity: 1},
	}, items)
}

func TestStoreSurfacesSaverError(t *testing.T) {
	boom := errors.New("disk full")
	store := NewStore(func(string, []Line) error { return boom })

	lines, err := store.AddItem("sess-1", padThai)
	assert.ErrorIs(t, err, boom)
	// State is kept even when the mirror write fails
	assert.Len(t, lines, 1)
	assert.Equal(t, 150.0, store.Total("sess-1"))
}
