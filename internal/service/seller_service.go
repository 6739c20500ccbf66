package service

import (
	"context"
	"fmt"

	"github.com/MuzzammilWits/HoodGoods-sub000/internal/domain"
	"github.com/MuzzammilWits/HoodGoods-sub000/internal/repository"
	"github.com/google/uuid"
)

// SellerService exposes the per-seller fulfillment side: listing a seller's
// orders and walking their status forward. Order creation never goes through
// here; a seller order is born Processing inside the checkout transaction.
type SellerService struct {
	repo repository.OrderRepository
}

func NewSellerService(repo repository.OrderRepository) *SellerService {
	return &SellerService{repo: repo}
}

func (s *SellerService) ListOrders(ctx context.Context, sellerUserID string) ([]*domain.SellerOrder, error) {
	return s.repo.ListSellerOrdersBySeller(ctx, sellerUserID)
}

func (s *SellerService) UpdateStatus(ctx context.Context, sellerUserID string, id uuid.UUID, status domain.SellerOrderStatus) (*domain.SellerOrder, error) {
	so, err := s.repo.GetSellerOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// A seller only ever sees their own orders; respond as not-found rather
	// than revealing another seller's order id exists.
	if so.SellerUserID != sellerUserID {
		return nil, ErrSellerOrderNotFound
	}

	if !domain.CanTransitionTo(so.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", IllegalTransitionError, so.Status, status)
	}

	if err := s.repo.UpdateSellerOrderStatus(ctx, id, status); err != nil {
		return nil, err
	}
	so.Status = status
	return so, nil
}
