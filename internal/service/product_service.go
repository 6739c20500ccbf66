package service

import (
	"context"

	"github.com/MuzzammilWits/HoodGoods-sub000/internal/domain"
	"github.com/MuzzammilWits/HoodGoods-sub000/internal/repository"
)

// ProductService is pass-through catalog reads for the storefront.
type ProductService struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

func (s *ProductService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListActiveProducts(ctx)
}

func (s *ProductService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetProductByID(ctx, id)
}
