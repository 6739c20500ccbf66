package domain

import (
	"time"

	"github.com/google/uuid"
)

type SellerOrderStatus string

const (
	SellerOrderStatusProcessing     SellerOrderStatus = "Processing"
	SellerOrderStatusPackaging      SellerOrderStatus = "Packaging"
	SellerOrderStatusShipped        SellerOrderStatus = "Shipped"
	SellerOrderStatusReadyForPickup SellerOrderStatus = "Ready for Pickup"
	SellerOrderStatusDelivered      SellerOrderStatus = "Delivered"
	SellerOrderStatusCancelled      SellerOrderStatus = "Cancelled"
)

func (s SellerOrderStatus) IsTerminal() bool {
	return s == SellerOrderStatusDelivered || s == SellerOrderStatusCancelled
}

func (s SellerOrderStatus) String() string {
	return string(s)
}

var sellerOrderTransitions = map[SellerOrderStatus][]SellerOrderStatus{
	SellerOrderStatusProcessing:     {SellerOrderStatusPackaging, SellerOrderStatusCancelled},
	SellerOrderStatusPackaging:      {SellerOrderStatusShipped, SellerOrderStatusReadyForPickup, SellerOrderStatusCancelled},
	SellerOrderStatusShipped:        {SellerOrderStatusDelivered, SellerOrderStatusCancelled},
	SellerOrderStatusReadyForPickup: {SellerOrderStatusDelivered, SellerOrderStatusCancelled},
}

// CanTransitionTo reports whether a seller order may move from one status to
// another. Terminal statuses have no outgoing transitions.
func CanTransitionTo(from, to SellerOrderStatus) bool {
	for _, next := range sellerOrderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// SellerOrderItem is one product line within a seller order. ProductName and
// UnitPrice are snapshots taken when the order committed; they are never
// re-read from the live product row, which is what makes the order an
// immutable receipt.
type SellerOrderItem struct {
	ID              uuid.UUID
	SellerOrderID   uuid.UUID
	ProductID       int64
	QuantityOrdered int
	UnitPrice       float64
	ProductName     string

	// Product carries the live product summary (name, image) for display.
	// Nil when the product was removed from the catalog after the order.
	Product *Product
}

// Subtotal is the snapshot price times the ordered quantity.
func (i SellerOrderItem) Subtotal() float64 {
	return i.UnitPrice * float64(i.QuantityOrdered)
}

// SellerOrder is the per-seller fulfillment unit split out of one buyer order.
type SellerOrder struct {
	ID              uuid.UUID
	OrderID         uuid.UUID
	StoreID         int64
	SellerUserID    string
	DeliveryMethod  DeliveryMethod
	DeliveryPrice   float64
	DeliveryEtaDays int
	ItemsSubtotal   float64
	SellerTotal     float64
	Status          SellerOrderStatus
	Items           []SellerOrderItem
}

// Order is the buyer-facing root created once per checkout.
type Order struct {
	ID           uuid.UUID
	BuyerID      string
	OrderDate    time.Time
	GrandTotal   float64
	PickupArea   string
	PickupPoint  string
	PaymentRef   string
	SellerOrders []SellerOrder
}
