package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/MuzzammilWits/HoodGoods-sub000/internal/domain"
	"github.com/MuzzammilWits/HoodGoods-sub000/internal/service"
)

// CartReader is the slice of CartService the checkout needs.
type CartReader interface {
	GetCart(ctx context.Context, userID string) (*domain.Cart, error)
}

// OrderCreator is the slice of OrderService the checkout needs.
type OrderCreator interface {
	CreateOrder(ctx context.Context, in service.CreateOrderInput) (*domain.Order, error)
}

type CheckoutHandler struct {
	carts  CartReader
	orders OrderCreator
}

func NewCheckoutHandler(carts CartReader, orders OrderCreator) *CheckoutHandler {
	return &CheckoutHandler{
		carts:  carts,
		orders: orders,
	}
}

type CheckoutRequestDTO struct {
	DeliverySelections map[int64]string `json:"delivery_selections"`
	PickupArea         string           `json:"pickup_area"`
	PickupPoint        string           `json:"pickup_point"`
	PaymentRef         string           `json:"payment_ref"`
	FrontendTotal      float64          `json:"frontend_total"`
}

// POST /api/v1/checkout
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.PaymentRef == "" {
		respondError(w, http.StatusBadRequest, "missing_payment_ref", "payment_ref is required")
		return
	}

	cart, err := h.carts.GetCart(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	selections := make(map[int64]domain.DeliveryMethod, len(req.DeliverySelections))
	for storeID, method := range req.DeliverySelections {
		selections[storeID] = domain.DeliveryMethod(method)
	}

	order, err := h.orders.CreateOrder(r.Context(), service.CreateOrderInput{
		BuyerID:            userID,
		CartItems:          cart.Items,
		DeliverySelections: selections,
		PickupArea:         req.PickupArea,
		PickupPoint:        req.PickupPoint,
		PaymentRef:         req.PaymentRef,
		FrontendGrandTotal: req.FrontendTotal,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, convertOrder(order))
}
