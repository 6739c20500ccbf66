package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/MuzzammilWits/HoodGoods-sub000/internal/cache"
	"github.com/MuzzammilWits/HoodGoods-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCartRepository struct {
	m     sync.RWMutex
	carts map[string][]domain.CartItem
	err   error
	gets  int
}

func newMockCartRepository() *mockCartRepository {
	return &mockCartRepository{carts: make(map[string][]domain.CartItem)}
}

func (m *mockCartRepository) GetCart(_ context.Context, userID string) (*domain.Cart, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.gets++
	return &domain.Cart{
		UserID:    userID,
		Items:     append([]domain.CartItem(nil), m.carts[userID]...),
		UpdatedAt: time.Now(),
	}, nil
}

func (m *mockCartRepository) AddItem(_ context.Context, userID string, productID int64, quantity int) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	for i := range m.carts[userID] {
		if m.carts[userID][i].ProductID == productID {
			m.carts[userID][i].Quantity += quantity
			return nil
		}
	}
	m.carts[userID] = append(m.carts[userID], domain.CartItem{ProductID: productID, Quantity: quantity})
	return nil
}

func (m *mockCartRepository) UpdateItemQuantity(_ context.Context, userID string, productID int64, quantity int) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	for i := range m.carts[userID] {
		if m.carts[userID][i].ProductID == productID {
			m.carts[userID][i].Quantity = quantity
			return nil
		}
	}
	return assert.AnError
}

func (m *mockCartRepository) RemoveItem(_ context.Context, userID string, productID int64) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	items := m.carts[userID]
	for i, item := range items {
		if item.ProductID == productID {
			m.carts[userID] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return assert.AnError
}

func (m *mockCartRepository) DeleteCart(_ context.Context, userID string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	delete(m.carts, userID)
	return nil
}

type mockCartCache struct {
	m    sync.RWMutex
	cart *domain.Cart
	err  error
}

func (m *mockCartCache) Get(context.Context, string) (*domain.Cart, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.cart == nil {
		return nil, cache.ErrCacheMiss
	}
	return m.cart, nil
}

func (m *mockCartCache) Set(_ context.Context, _ string, cart *domain.Cart) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.cart = cart
	return m.err
}

func (m *mockCartCache) Delete(context.Context, string) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.cart = nil
	return nil
}

func TestCartServiceGetCart_CacheMissFallsThroughToRepo(t *testing.T) {
	repo := newMockCartRepository()
	repo.carts["user-1"] = []domain.CartItem{{ProductID: 1, Quantity: 2}}
	c := &mockCartCache{}
	svc := NewCartService(repo, c)

	cart, err := svc.GetCart(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(1), cart.Items[0].ProductID)
}

func TestCartServiceGetCart_CacheHitSkipsRepo(t *testing.T) {
	repo := newMockCartRepository()
	cached := &domain.Cart{UserID: "user-1", Items: []domain.CartItem{{ProductID: 9, Quantity: 1}}}
	c := &mockCartCache{cart: cached}
	svc := NewCartService(repo, c)

	cart, err := svc.GetCart(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, cached, cart)
	assert.Zero(t, repo.gets)
}

func TestCartServiceAddItem_InvalidatesCache(t *testing.T) {
	repo := newMockCartRepository()
	c := &mockCartCache{cart: &domain.Cart{UserID: "user-1"}}
	svc := NewCartService(repo, c)

	require.NoError(t, svc.AddItem(context.Background(), "user-1", 5, 2))
	assert.Nil(t, c.cart)
	assert.Len(t, repo.carts["user-1"], 1)
}

func TestCartServiceClearCart(t *testing.T) {
	repo := newMockCartRepository()
	repo.carts["user-1"] = []domain.CartItem{{ProductID: 1, Quantity: 1}}
	c := &mockCartCache{cart: &domain.Cart{UserID: "user-1"}}
	svc := NewCartService(repo, c)

	require.NoError(t, svc.ClearCart(context.Background(), "user-1"))
	assert.Nil(t, c.cart)
	_, exists := repo.carts["user-1"]
	assert.False(t, exists)
}

func TestCartServiceGetCart_RepoError(t *testing.T) {
	repo := newMockCartRepository()
	repo.err = assert.AnError
	svc := NewCartService(repo, &mockCartCache{})

	_, err := svc.GetCart(context.Background(), "user-1")
	assert.Error(t, err)
}
