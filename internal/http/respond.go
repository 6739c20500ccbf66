package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/MuzzammilWits/HoodGoods-sub000/internal/repository"
	"github.com/MuzzammilWits/HoodGoods-sub000/internal/service"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleServiceError maps domain errors onto HTTP statuses. The error text is
// passed through so the buyer sees which product, store or method failed.
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "empty_cart", err.Error())
	case errors.Is(err, service.ErrMissingDeliverySelection):
		respondError(w, http.StatusBadRequest, "missing_delivery_selection", err.Error())
	case errors.Is(err, service.ErrInvalidDeliveryMethod):
		respondError(w, http.StatusBadRequest, "invalid_delivery_method", err.Error())
	case errors.Is(err, service.ErrProductNotFound), errors.Is(err, repository.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "product_not_found", err.Error())
	case errors.Is(err, service.ErrStoreNotFound):
		respondError(w, http.StatusNotFound, "store_not_found", err.Error())
	case errors.Is(err, service.ErrInsufficientStock):
		respondError(w, http.StatusConflict, "insufficient_stock", err.Error())
	case errors.Is(err, service.ErrOrderFetchAfterCreate):
		// The order committed; this must never read as "order not created".
		respondError(w, http.StatusInternalServerError, "order_fetch_failed", err.Error())
	case errors.Is(err, service.ErrSellerOrderNotFound), errors.Is(err, repository.ErrSellerOrderNotFound):
		respondError(w, http.StatusNotFound, "seller_order_not_found", err.Error())
	case errors.Is(err, service.IllegalTransitionError):
		respondError(w, http.StatusConflict, "illegal_status_transition", err.Error())
	case errors.Is(err, repository.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "order_not_found", err.Error())
	case errors.Is(err, repository.ErrCartItemNotFound):
		respondError(w, http.StatusNotFound, "cart_item_not_found", err.Error())
	default:
		log.Printf("internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func getUserIDFromContext(ctx context.Context) string {
	if userID, ok := ctx.Value(userIDKey{}).(string); ok {
		return userID
	}
	return ""
}

func getRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(requestIDKey{}).(string); ok {
		return requestID
	}
	return ""
}
