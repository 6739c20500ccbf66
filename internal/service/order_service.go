package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/MuzzammilWits/HoodGoods-sub000/internal/domain"
	"github.com/MuzzammilWits/HoodGoods-sub000/internal/repository"
	"github.com/google/uuid"
)

// totalMismatchTolerance bounds how far the frontend-supplied grand total may
// drift from the backend-computed one before the divergence is logged. The
// backend total is authoritative either way.
const totalMismatchTolerance = 0.01

type CreateOrderInput struct {
	BuyerID            string
	CartItems          []domain.CartItem
	DeliverySelections map[int64]domain.DeliveryMethod
	PickupArea         string
	PickupPoint        string
	PaymentRef         string
	FrontendGrandTotal float64
}

// CacheInvalidator clears the buyer's cached cart after a checkout commits.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, userID string)
}

type OrderService struct {
	repo  repository.OrderRepository
	cache CacheInvalidator
}

func NewOrderService(repo repository.OrderRepository, cache CacheInvalidator) *OrderService {
	return &OrderService{
		repo:  repo,
		cache: cache,
	}
}

// CreateOrder converts a buyer's cart into a persisted order split per seller,
// deducts stock and clears the cart, all inside one database transaction.
// Either everything commits or nothing does: a failed stock check on the last
// line item leaves no order rows, no deduction and an intact cart.
func (s *OrderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	if len(in.CartItems) == 0 {
		return nil, ErrEmptyCart
	}

	var orderID uuid.UUID
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		id, txErr := s.createOrderTx(txCtx, in)
		orderID = id
		return txErr
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, in.BuyerID)
	}

	// The read-back runs outside the write transaction; its failure is a
	// distinct error because the order itself committed.
	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		log.Printf("order %v committed but fetch failed: %v", orderID, err)
		return nil, fmt.Errorf("%w: %v", ErrOrderFetchAfterCreate, orderID)
	}
	return order, nil
}

func (s *OrderService) createOrderTx(ctx context.Context, in CreateOrderInput) (uuid.UUID, error) {
	groups := SplitByStore(in.CartItems)
	productIDs := DistinctProductIDs(in.CartItems)
	storeIDs := DistinctStoreIDs(groups)

	// Transaction-local lookup tables, built once per checkout. The product
	// rows come back locked so concurrent checkouts on the same product
	// serialize on the stock check.
	products, err := s.repo.GetProductsForUpdate(ctx, productIDs)
	if err != nil {
		return uuid.Nil, err
	}
	for _, id := range productIDs {
		if _, ok := products[id]; !ok {
			return uuid.Nil, fmt.Errorf("%w: %d", ErrProductNotFound, id)
		}
	}

	stores, err := s.repo.GetStoresByIDs(ctx, storeIDs)
	if err != nil {
		return uuid.Nil, err
	}
	for _, id := range storeIDs {
		if _, ok := stores[id]; !ok {
			return uuid.Nil, fmt.Errorf("%w: %d", ErrStoreNotFound, id)
		}
	}

	order := &domain.Order{
		ID:          uuid.New(),
		BuyerID:     in.BuyerID,
		OrderDate:   time.Now().UTC(),
		PickupArea:  in.PickupArea,
		PickupPoint: in.PickupPoint,
		PaymentRef:  in.PaymentRef,
	}

	var grandTotal float64
	sellerOrders := make([]*domain.SellerOrder, 0, len(groups))
	for _, storeID := range storeIDs {
		group := groups[storeID]
		store := stores[storeID]

		method, ok := in.DeliverySelections[storeID]
		if !ok {
			return uuid.Nil, fmt.Errorf("%w %d", ErrMissingDeliverySelection, storeID)
		}
		quote, err := ResolveDelivery(store, method)
		if err != nil {
			return uuid.Nil, err
		}

		so := &domain.SellerOrder{
			ID:              uuid.New(),
			OrderID:         order.ID,
			StoreID:         storeID,
			SellerUserID:    store.OwnerUserID,
			DeliveryMethod:  quote.Method,
			DeliveryPrice:   quote.Price,
			DeliveryEtaDays: quote.EtaDays,
			Status:          domain.SellerOrderStatusProcessing,
		}

		for _, item := range group {
			product := products[item.ProductID]
			if err := CheckAvailability(product, item.Quantity); err != nil {
				return uuid.Nil, err
			}
			// Billing uses the snapshot price carried by the cart item; the
			// live product price only gates availability, never the charge.
			so.ItemsSubtotal += item.UnitPrice * float64(item.Quantity)
			so.Items = append(so.Items, domain.SellerOrderItem{
				ID:              uuid.New(),
				SellerOrderID:   so.ID,
				ProductID:       item.ProductID,
				QuantityOrdered: item.Quantity,
				UnitPrice:       item.UnitPrice,
				ProductName:     product.Name,
			})
		}

		so.SellerTotal = so.ItemsSubtotal + so.DeliveryPrice
		grandTotal += so.SellerTotal
		sellerOrders = append(sellerOrders, so)
	}

	if math.Abs(grandTotal-in.FrontendGrandTotal) > totalMismatchTolerance {
		log.Printf("grand total mismatch for buyer %s: frontend sent %.2f, backend computed %.2f; using backend total",
			in.BuyerID, in.FrontendGrandTotal, grandTotal)
	}
	order.GrandTotal = grandTotal

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return uuid.Nil, err
	}
	for _, so := range sellerOrders {
		if err := s.repo.CreateSellerOrder(ctx, so); err != nil {
			return uuid.Nil, err
		}
		if err := s.repo.CreateSellerOrderItems(ctx, so.Items); err != nil {
			return uuid.Nil, err
		}
	}

	// Deduct per product across all groups. The same product can appear in at
	// most one group (carts key items by product), but deduction still goes
	// through the shared ledger arithmetic so a negative result is impossible.
	for _, so := range sellerOrders {
		for _, item := range so.Items {
			product := products[item.ProductID]
			newQuantity, err := Deduct(product.QuantityAvailable, item.QuantityOrdered)
			if err != nil {
				return uuid.Nil, err
			}
			product.QuantityAvailable = newQuantity
			products[item.ProductID] = product
			if err := s.repo.UpdateProductQuantity(ctx, item.ProductID, newQuantity); err != nil {
				return uuid.Nil, err
			}
		}
	}

	if err := s.repo.DeleteCartItems(ctx, in.BuyerID); err != nil {
		return uuid.Nil, err
	}

	payload, err := json.Marshal(orderPlacedEvent(order, sellerOrders))
	if err != nil {
		return uuid.Nil, fmt.Errorf("marshal order event: %w", err)
	}
	if err := s.repo.InsertOutboxEvent(ctx, order.ID, payload); err != nil {
		return uuid.Nil, err
	}

	return order.ID, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return s.repo.GetOrderByID(ctx, id)
}

func (s *OrderService) ListOrders(ctx context.Context, buyerID string) ([]*domain.Order, error) {
	return s.repo.ListOrdersByBuyerID(ctx, buyerID)
}

type orderEventItem struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

type orderEventSellerOrder struct {
	SellerOrderID string           `json:"seller_order_id"`
	StoreID       int64            `json:"store_id"`
	SellerTotal   float64          `json:"seller_total"`
	Items         []orderEventItem `json:"items"`
}

type orderEvent struct {
	OrderID      string                  `json:"order_id"`
	BuyerID      string                  `json:"buyer_id"`
	GrandTotal   float64                 `json:"grand_total"`
	PaymentRef   string                  `json:"payment_ref"`
	PlacedAt     time.Time               `json:"placed_at"`
	SellerOrders []orderEventSellerOrder `json:"seller_orders"`
}

func orderPlacedEvent(order *domain.Order, sellerOrders []*domain.SellerOrder) orderEvent {
	event := orderEvent{
		OrderID:    order.ID.String(),
		BuyerID:    order.BuyerID,
		GrandTotal: order.GrandTotal,
		PaymentRef: order.PaymentRef,
		PlacedAt:   order.OrderDate,
	}
	for _, so := range sellerOrders {
		eso := orderEventSellerOrder{
			SellerOrderID: so.ID.String(),
			StoreID:       so.StoreID,
			SellerTotal:   so.SellerTotal,
		}
		for _, item := range so.Items {
			eso.Items = append(eso.Items, orderEventItem{
				ProductID:   item.ProductID,
				ProductName: item.ProductName,
				Quantity:    item.QuantityOrdered,
				UnitPrice:   item.UnitPrice,
			})
		}
		event.SellerOrders = append(event.SellerOrders, eso)
	}
	return event
}
