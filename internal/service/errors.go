package service

import "errors"

var (
	ErrEmptyCart                = errors.New("cart is empty, nothing to checkout")
	ErrMissingDeliverySelection = errors.New("no delivery method selected for store")
	ErrInvalidDeliveryMethod    = errors.New("invalid delivery method")
	ErrProductNotFound          = errors.New("product not found")
	ErrStoreNotFound            = errors.New("store not found")
	ErrInsufficientStock        = errors.New("insufficient stock")
	ErrSellerOrderNotFound      = errors.New("seller order not found")
	IllegalTransitionError      = errors.New("illegal transition of seller order status")

	// ErrOrderFetchAfterCreate means the checkout transaction committed but the
	// read-back of the order graph failed. The order exists; callers must not
	// treat this as "order not created".
	ErrOrderFetchAfterCreate = errors.New("order was created but could not be fetched")
)
