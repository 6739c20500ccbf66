package http

import (
	"context"
	"net/http"

	"github.com/MuzzammilWits/HoodGoods-sub000/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// OrderReader is the slice of OrderService the order history needs.
type OrderReader interface {
	GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListOrders(ctx context.Context, buyerID string) ([]*domain.Order, error)
}

type OrdersHandler struct {
	orders OrderReader
}

func NewOrdersHandler(orders OrderReader) *OrdersHandler {
	return &OrdersHandler{orders: orders}
}

type ProductSummaryDTO struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}

type SellerOrderItemDTO struct {
	ID              string             `json:"id"`
	ProductID       int64              `json:"product_id"`
	QuantityOrdered int                `json:"quantity_ordered"`
	UnitPrice       float64            `json:"unit_price"`
	ProductName     string             `json:"product_name"`
	Product         *ProductSummaryDTO `json:"product,omitempty"`
}

type SellerOrderDTO struct {
	ID              string               `json:"id"`
	StoreID         int64                `json:"store_id"`
	DeliveryMethod  string               `json:"delivery_method"`
	DeliveryPrice   float64              `json:"delivery_price"`
	DeliveryEtaDays int                  `json:"delivery_eta_days"`
	ItemsSubtotal   float64              `json:"items_subtotal"`
	SellerTotal     float64              `json:"seller_total"`
	Status          string               `json:"status"`
	Items           []SellerOrderItemDTO `json:"items"`
}

type OrderResponseDTO struct {
	ID           string           `json:"id"`
	BuyerID      string           `json:"buyer_id"`
	OrderDate    string           `json:"order_date"`
	GrandTotal   float64          `json:"grand_total"`
	PickupArea   string           `json:"pickup_area"`
	PickupPoint  string           `json:"pickup_point"`
	SellerOrders []SellerOrderDTO `json:"seller_orders"`
}

// GET /api/v1/orders
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	orders, err := h.orders.ListOrders(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	dtos := make([]OrderResponseDTO, 0, len(orders))
	for _, o := range orders {
		dtos = append(dtos, convertOrder(o))
	}

	respondJSON(w, http.StatusOK, dtos)
}

// GET /api/v1/orders/{order_id}
func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "order_id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order_id must be a valid uuid")
		return
	}

	order, err := h.orders.GetOrder(r.Context(), orderID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if order.BuyerID != userID {
		respondError(w, http.StatusNotFound, "order_not_found", "order not found")
		return
	}

	respondJSON(w, http.StatusOK, convertOrder(order))
}

func convertOrder(o *domain.Order) OrderResponseDTO {
	dto := OrderResponseDTO{
		ID:           o.ID.String(),
		BuyerID:      o.BuyerID,
		OrderDate:    o.OrderDate.Format("2006-01-02T15:04:05Z07:00"),
		GrandTotal:   o.GrandTotal,
		PickupArea:   o.PickupArea,
		PickupPoint:  o.PickupPoint,
		SellerOrders: make([]SellerOrderDTO, 0, len(o.SellerOrders)),
	}
	for _, so := range o.SellerOrders {
		dto.SellerOrders = append(dto.SellerOrders, convertSellerOrder(&so))
	}
	return dto
}

func convertSellerOrder(so *domain.SellerOrder) SellerOrderDTO {
	dto := SellerOrderDTO{
		ID:              so.ID.String(),
		StoreID:         so.StoreID,
		DeliveryMethod:  string(so.DeliveryMethod),
		DeliveryPrice:   so.DeliveryPrice,
		DeliveryEtaDays: so.DeliveryEtaDays,
		ItemsSubtotal:   so.ItemsSubtotal,
		SellerTotal:     so.SellerTotal,
		Status:          string(so.Status),
		Items:           make([]SellerOrderItemDTO, 0, len(so.Items)),
	}
	for _, item := range so.Items {
		itemDTO := SellerOrderItemDTO{
			ID:              item.ID.String(),
			ProductID:       item.ProductID,
			QuantityOrdered: item.QuantityOrdered,
			UnitPrice:       item.UnitPrice,
			ProductName:     item.ProductName,
		}
		if item.Product != nil {
			itemDTO.Product = &ProductSummaryDTO{
				ID:       item.Product.ID,
				Name:     item.Product.Name,
				ImageURL: item.Product.ImageURL,
			}
		}
		dto.Items = append(dto.Items, itemDTO)
	}
	return dto
}
