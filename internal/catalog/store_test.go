package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplace_SwapsProductsAndNotifies(t *testing.T) {
	sut := NewStore()

	notified := 0
	sut.OnChange(func() { notified++ })

	price := 750.0
	sut.Replace([]Product{
		{ID: "a", Title: "+1 час в сутках", Price: &price},
		{ID: "b", Title: "Мамка-таймер"},
	})

	assert.Equal(t, 2, sut.Len())
	assert.Equal(t, 1, notified)

	p, ok := sut.ByID("a")
	require.True(t, ok)
	assert.True(t, p.Sellable())
	assert.Equal(t, 750.0, p.PriceValue())

	p, ok = sut.ByID("b")
	require.True(t, ok)
	assert.False(t, p.Sellable())
	assert.Equal(t, 0.0, p.PriceValue())

	_, ok = sut.ByID("missing")
	assert.False(t, ok)
}

func TestReplace_SecondLoadDropsOldProducts(t *testing.T) {
	sut := NewStore()
	price := 100.0
	sut.Replace([]Product{{ID: "a", Price: &price}})

	sut.Replace([]Product{{ID: "b", Price: &price}})

	_, ok := sut.ByID("a")
	assert.False(t, ok)
	_, ok = sut.ByID("b")
	assert.True(t, ok)
}

func TestAll_PreservesCatalogOrderAndIsACopy(t *testing.T) {
	sut := NewStore()
	price := 100.0
	sut.Replace([]Product{{ID: "b", Price: &price}, {ID: "a", Price: &price}})

	all := sut.All()
	require.Len(t, all, 2)
	assert.Equal(t, "b", all[0].ID)
	assert.Equal(t, "a", all[1].ID)

	all[0].ID = "mutated"
	fresh := sut.All()
	assert.Equal(t, "b", fresh[0].ID)
}
