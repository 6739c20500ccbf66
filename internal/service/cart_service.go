package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/MuzzammilWits/HoodGoods-sub000/internal/cache"
	"github.com/MuzzammilWits/HoodGoods-sub000/internal/domain"
	"github.com/MuzzammilWits/HoodGoods-sub000/internal/repository"
	"golang.org/x/sync/singleflight"
)

// CartService fronts cart rows with a read cache. Writes go straight to the
// repository and invalidate the cache; reads collapse concurrent misses for
// the same buyer through singleflight.
type CartService struct {
	repo  repository.CartRepository
	cache cache.CartCache
	sfg   singleflight.Group
}

func NewCartService(repo repository.CartRepository, cache cache.CartCache) *CartService {
	return &CartService{
		repo:  repo,
		cache: cache,
	}
}

func (s *CartService) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	v, err, _ := s.sfg.Do(userID, func() (interface{}, error) {
		cart, err := s.cache.Get(ctx, userID)
		if err == nil {
			return cart, nil
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cache get error: %v", err) // log cache error but continue
		}

		cart, errGet := s.repo.GetCart(ctx, userID)
		if errGet != nil {
			return nil, errGet
		}

		go func() {
			errSet := s.cache.Set(context.Background(), userID, cart)
			if errSet != nil {
				log.Printf("cache set error: %v", errSet)
			}
		}()

		return cart, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Cart), nil
}

func (s *CartService) AddItem(ctx context.Context, userID string, productID int64, quantity int) error {
	if errAdd := s.repo.AddItem(ctx, userID, productID, quantity); errAdd != nil {
		return errAdd
	}

	s.Invalidate(ctx, userID)
	return nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID string, productID int64, quantity int) error {
	if errUpdate := s.repo.UpdateItemQuantity(ctx, userID, productID, quantity); errUpdate != nil {
		return errUpdate
	}

	s.Invalidate(ctx, userID)
	return nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID string, productID int64) error {
	if errRemove := s.repo.RemoveItem(ctx, userID, productID); errRemove != nil {
		return errRemove
	}

	s.Invalidate(ctx, userID)
	return nil
}

func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	if errDelete := s.repo.DeleteCart(ctx, userID); errDelete != nil {
		return errDelete
	}

	s.Invalidate(ctx, userID)
	return nil
}

// Invalidate drops the cached cart. Best effort; a stale entry only survives
// until its TTL.
func (s *CartService) Invalidate(_ context.Context, userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, userID); err != nil {
		log.Printf("cache invalidate error for user %s: %v", userID, err)
	}
}
