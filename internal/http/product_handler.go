package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/MuzzammilWits/HoodGoods-sub000/internal/domain"
	"github.com/go-chi/chi/v5"
)

type ProductReader interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
}

type ProductHandler struct {
	products ProductReader
}

func NewProductHandler(products ProductReader) *ProductHandler {
	return &ProductHandler{products: products}
}

type ProductResponseDTO struct {
	ID                int64   `json:"id"`
	StoreID           int64   `json:"store_id"`
	Name              string  `json:"name"`
	Price             float64 `json:"price"`
	QuantityAvailable int     `json:"quantity_available"`
	ImageURL          string  `json:"image_url"`
}

// GET /api/v1/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.ListProducts(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	dtos := make([]ProductResponseDTO, 0, len(products))
	for _, p := range products {
		dtos = append(dtos, convertProduct(p))
	}
	respondJSON(w, http.StatusOK, dtos)
}

// GET /api/v1/products/{product_id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}

	product, err := h.products.GetProduct(r.Context(), productID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, convertProduct(*product))
}

func convertProduct(p domain.Product) ProductResponseDTO {
	return ProductResponseDTO{
		ID:                p.ID,
		StoreID:           p.StoreID,
		Name:              p.Name,
		Price:             p.Price,
		QuantityAvailable: p.QuantityAvailable,
		ImageURL:          p.ImageURL,
	}
}
