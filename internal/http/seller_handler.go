package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/MuzzammilWits/HoodGoods-sub000/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// SellerOrderManager is the slice of SellerService the seller API needs.
type SellerOrderManager interface {
	ListOrders(ctx context.Context, sellerUserID string) ([]*domain.SellerOrder, error)
	UpdateStatus(ctx context.Context, sellerUserID string, id uuid.UUID, status domain.SellerOrderStatus) (*domain.SellerOrder, error)
}

type SellerHandler struct {
	sellers SellerOrderManager
}

func NewSellerHandler(sellers SellerOrderManager) *SellerHandler {
	return &SellerHandler{sellers: sellers}
}

type UpdateStatusRequestDTO struct {
	Status string `json:"status"`
}

// GET /api/v1/seller/orders
func (h *SellerHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	sellerOrders, err := h.sellers.ListOrders(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	dtos := make([]SellerOrderDTO, 0, len(sellerOrders))
	for _, so := range sellerOrders {
		dtos = append(dtos, convertSellerOrder(so))
	}
	respondJSON(w, http.StatusOK, dtos)
}

// PATCH /api/v1/seller/orders/{seller_order_id}/status
func (h *SellerHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	sellerOrderID, err := uuid.Parse(chi.URLParam(r, "seller_order_id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_seller_order_id", "seller_order_id must be a valid uuid")
		return
	}

	var req UpdateStatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Status == "" {
		respondError(w, http.StatusBadRequest, "missing_status", "status is required")
		return
	}

	so, err := h.sellers.UpdateStatus(r.Context(), userID, sellerOrderID, domain.SellerOrderStatus(req.Status))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, convertSellerOrder(so))
}
