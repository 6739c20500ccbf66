package service

import (
	"fmt"

	"github.com/MuzzammilWits/HoodGoods-sub000/internal/domain"
)

// CheckAvailability verifies a product can cover the requested quantity. It
// does not persist anything; the deduction is written on the surrounding
// transaction so it can never outlive a rolled-back order.
func CheckAvailability(product domain.Product, quantity int) error {
	if quantity > product.QuantityAvailable {
		return fmt.Errorf("%w: product %d has %d available, %d requested",
			ErrInsufficientStock, product.ID, product.QuantityAvailable, quantity)
	}
	return nil
}

// Deduct computes the post-order quantity for a product. Callers must have
// passed CheckAvailability first; a negative result is refused regardless.
func Deduct(current, quantity int) (int, error) {
	if quantity > current {
		return 0, fmt.Errorf("%w: %d available, %d requested", ErrInsufficientStock, current, quantity)
	}
	return current - quantity, nil
}
