package service

import (
	"sort"

	"github.com/MuzzammilWits/HoodGoods-sub000/internal/domain"
)

// SplitByStore groups a flat cart item list into per-store fulfillment groups.
// Pure grouping, no side effects; an empty cart yields an empty map.
func SplitByStore(items []domain.CartItem) map[int64][]domain.CartItem {
	groups := make(map[int64][]domain.CartItem, len(items))
	for _, item := range items {
		groups[item.StoreID] = append(groups[item.StoreID], item)
	}
	return groups
}

// DistinctStoreIDs returns the store ids present in the grouped cart, sorted
// so callers iterate groups in a stable order.
func DistinctStoreIDs(groups map[int64][]domain.CartItem) []int64 {
	ids := make([]int64, 0, len(groups))
	for storeID := range groups {
		ids = append(ids, storeID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// DistinctProductIDs returns each product id in the cart exactly once.
func DistinctProductIDs(items []domain.CartItem) []int64 {
	seen := make(map[int64]struct{}, len(items))
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	return ids
}

// GroupSubtotal sums snapshot price * quantity for one store group.
func GroupSubtotal(items []domain.CartItem) float64 {
	var subtotal float64
	for _, item := range items {
		subtotal += item.UnitPrice * float64(item.Quantity)
	}
	return subtotal
}
