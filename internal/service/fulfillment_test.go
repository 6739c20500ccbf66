package service

import (
	"testing"

	"github.com/MuzzammilWits/HoodGoods-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitByStore(t *testing.T) {
	items := []domain.CartItem{
		{ProductID: 1, StoreID: 7, Quantity: 2, UnitPrice: 10},
		{ProductID: 2, StoreID: 3, Quantity: 1, UnitPrice: 5},
		{ProductID: 3, StoreID: 7, Quantity: 4, UnitPrice: 2.50},
	}

	groups := SplitByStore(items)
	require.Len(t, groups, 2)
	assert.Len(t, groups[7], 2)
	assert.Len(t, groups[3], 1)
	assert.Equal(t, int64(1), groups[7][0].ProductID)
	assert.Equal(t, int64(3), groups[7][1].ProductID)
}

func TestSplitByStore_Empty(t *testing.T) {
	assert.Empty(t, SplitByStore(nil))
	assert.Empty(t, SplitByStore([]domain.CartItem{}))
}

func TestDistinctStoreIDs_Sorted(t *testing.T) {
	groups := map[int64][]domain.CartItem{
		9: nil,
		2: nil,
		5: nil,
	}
	assert.Equal(t, []int64{2, 5, 9}, DistinctStoreIDs(groups))
}

func TestDistinctProductIDs_Deduplicates(t *testing.T) {
	items := []domain.CartItem{
		{ProductID: 4},
		{ProductID: 1},
		{ProductID: 4},
	}
	assert.Equal(t, []int64{4, 1}, DistinctProductIDs(items))
}

func TestGroupSubtotal(t *testing.T) {
	items := []domain.CartItem{
		{Quantity: 2, UnitPrice: 25.00},
		{Quantity: 3, UnitPrice: 1.50},
	}
	assert.InDelta(t, 54.50, GroupSubtotal(items), 0.001)
	assert.Zero(t, GroupSubtotal(nil))
}
