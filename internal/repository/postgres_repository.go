package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MuzzammilWits/HoodGoods-sub000/internal/domain"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// GetProductsForUpdate fetches product rows by id, locking them for the rest
// of the transaction. The row lock is what keeps two concurrent checkouts for
// the same product from both passing the stock check.
func (r *Repository) GetProductsForUpdate(ctx context.Context, ids []int64) (map[int64]domain.Product, error) {
	query := `SELECT id, store_id, name, price, quantity_available, image_url, is_active
	          FROM products WHERE id = ANY($1) FOR UPDATE`

	rows, err := r.queryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("query products for update: %w", err)
	}
	defer rows.Close()

	products := make(map[int64]domain.Product, len(ids))
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.StoreID, &p.Name, &p.Price, &p.QuantityAvailable, &p.ImageURL, &p.IsActive); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return products, nil
}

func (r *Repository) GetStoresByIDs(ctx context.Context, ids []int64) (map[int64]domain.Store, error) {
	query := `SELECT id, owner_user_id, name, standard_price, standard_eta_days, express_price, express_eta_days
	          FROM stores WHERE id = ANY($1)`

	rows, err := r.queryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("query stores: %w", err)
	}
	defer rows.Close()

	stores := make(map[int64]domain.Store, len(ids))
	for rows.Next() {
		var s domain.Store
		if err := rows.Scan(&s.ID, &s.OwnerUserID, &s.Name, &s.StandardPrice, &s.StandardEtaDays, &s.ExpressPrice, &s.ExpressEtaDays); err != nil {
			return nil, fmt.Errorf("scan store row: %w", err)
		}
		stores[s.ID] = s
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return stores, nil
}

func (r *Repository) CreateOrder(ctx context.Context, order *domain.Order) error {
	query := `INSERT INTO orders (id, buyer_id, order_date, grand_total, pickup_area, pickup_point, payment_ref)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.execContext(ctx, query,
		order.ID,
		order.BuyerID,
		order.OrderDate,
		order.GrandTotal,
		order.PickupArea,
		order.PickupPoint,
		order.PaymentRef)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *Repository) CreateSellerOrder(ctx context.Context, so *domain.SellerOrder) error {
	query := `INSERT INTO seller_orders
	          (id, order_id, store_id, seller_user_id, delivery_method, delivery_price, delivery_eta_days, items_subtotal, seller_total, status)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.execContext(ctx, query,
		so.ID,
		so.OrderID,
		so.StoreID,
		so.SellerUserID,
		string(so.DeliveryMethod),
		so.DeliveryPrice,
		so.DeliveryEtaDays,
		so.ItemsSubtotal,
		so.SellerTotal,
		string(so.Status))
	if err != nil {
		return fmt.Errorf("insert seller order: %w", err)
	}
	return nil
}

func (r *Repository) CreateSellerOrderItems(ctx context.Context, items []domain.SellerOrderItem) error {
	query := `INSERT INTO seller_order_items
	          (id, seller_order_id, product_id, quantity_ordered, unit_price, product_name)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	for _, item := range items {
		_, err := r.execContext(ctx, query,
			item.ID,
			item.SellerOrderID,
			item.ProductID,
			item.QuantityOrdered,
			item.UnitPrice,
			item.ProductName)
		if err != nil {
			return fmt.Errorf("insert seller order item for product %d: %w", item.ProductID, err)
		}
	}
	return nil
}

func (r *Repository) UpdateProductQuantity(ctx context.Context, productID int64, newQuantity int) error {
	query := `UPDATE products SET quantity_available = $2 WHERE id = $1`

	res, err := r.execContext(ctx, query, productID, newQuantity)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("product %d quantity would go negative: %w", productID, err)
		}
		return fmt.Errorf("update product quantity: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update product quantity: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %d", ErrProductNotFound, productID)
	}
	return nil
}

func (r *Repository) InsertOutboxEvent(ctx context.Context, orderID uuid.UUID, payload []byte) error {
	query := `INSERT INTO order_outbox (order_id, payload, created_at) VALUES ($1, $2, NOW())`

	if _, err := r.execContext(ctx, query, orderID, payload); err != nil {
		return fmt.Errorf("insert outbox event: %w", err)
	}
	return nil
}

func (r *Repository) GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `SELECT id, buyer_id, order_date, grand_total, pickup_area, pickup_point, payment_ref
	          FROM orders WHERE id = $1`

	var order domain.Order
	err := r.queryRowContext(ctx, query, id).Scan(
		&order.ID,
		&order.BuyerID,
		&order.OrderDate,
		&order.GrandTotal,
		&order.PickupArea,
		&order.PickupPoint,
		&order.PaymentRef,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query order by id: %w", err)
	}

	sellerOrders, err := r.loadSellerOrders(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.SellerOrders = sellerOrders
	return &order, nil
}

func (r *Repository) ListOrdersByBuyerID(ctx context.Context, buyerID string) ([]*domain.Order, error) {
	query := `SELECT id, buyer_id, order_date, grand_total, pickup_area, pickup_point, payment_ref
	          FROM orders WHERE buyer_id = $1 ORDER BY order_date DESC`

	rows, err := r.queryContext(ctx, query, buyerID)
	if err != nil {
		return nil, fmt.Errorf("query orders by buyer id: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(
			&order.ID,
			&order.BuyerID,
			&order.OrderDate,
			&order.GrandTotal,
			&order.PickupArea,
			&order.PickupPoint,
			&order.PaymentRef,
		); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, &order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	for _, order := range orders {
		sellerOrders, err := r.loadSellerOrders(ctx, order.ID)
		if err != nil {
			return nil, err
		}
		order.SellerOrders = sellerOrders
	}
	return orders, nil
}

func (r *Repository) loadSellerOrders(ctx context.Context, orderID uuid.UUID) ([]domain.SellerOrder, error) {
	query := `SELECT id, order_id, store_id, seller_user_id, delivery_method, delivery_price, delivery_eta_days, items_subtotal, seller_total, status
	          FROM seller_orders WHERE order_id = $1 ORDER BY store_id`

	rows, err := r.queryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("query seller orders: %w", err)
	}
	defer rows.Close()

	var sellerOrders []domain.SellerOrder
	for rows.Next() {
		so, err := scanSellerOrder(rows)
		if err != nil {
			return nil, err
		}
		sellerOrders = append(sellerOrders, so)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	for i := range sellerOrders {
		items, err := r.loadSellerOrderItems(ctx, sellerOrders[i].ID)
		if err != nil {
			return nil, err
		}
		sellerOrders[i].Items = items
	}
	return sellerOrders, nil
}

func (r *Repository) loadSellerOrderItems(ctx context.Context, sellerOrderID uuid.UUID) ([]domain.SellerOrderItem, error) {
	// Left join keeps snapshotted lines intact even after the live product is
	// deleted from the catalog.
	query := `SELECT i.id, i.seller_order_id, i.product_id, i.quantity_ordered, i.unit_price, i.product_name,
	                 p.id, p.store_id, p.name, p.price, p.quantity_available, p.image_url, p.is_active
	          FROM seller_order_items i
	          LEFT JOIN products p ON p.id = i.product_id
	          WHERE i.seller_order_id = $1 ORDER BY i.product_id`

	rows, err := r.queryContext(ctx, query, sellerOrderID)
	if err != nil {
		return nil, fmt.Errorf("query seller order items: %w", err)
	}
	defer rows.Close()

	var items []domain.SellerOrderItem
	for rows.Next() {
		var item domain.SellerOrderItem
		var (
			pID       sql.NullInt64
			pStoreID  sql.NullInt64
			pName     sql.NullString
			pPrice    sql.NullFloat64
			pQuantity sql.NullInt64
			pImage    sql.NullString
			pActive   sql.NullBool
		)
		if err := rows.Scan(
			&item.ID,
			&item.SellerOrderID,
			&item.ProductID,
			&item.QuantityOrdered,
			&item.UnitPrice,
			&item.ProductName,
			&pID, &pStoreID, &pName, &pPrice, &pQuantity, &pImage, &pActive,
		); err != nil {
			return nil, fmt.Errorf("scan seller order item row: %w", err)
		}
		if pID.Valid {
			item.Product = &domain.Product{
				ID:                pID.Int64,
				StoreID:           pStoreID.Int64,
				Name:              pName.String,
				Price:             pPrice.Float64,
				QuantityAvailable: int(pQuantity.Int64),
				ImageURL:          pImage.String,
				IsActive:          pActive.Bool,
			}
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return items, nil
}

func (r *Repository) GetSellerOrderByID(ctx context.Context, id uuid.UUID) (*domain.SellerOrder, error) {
	query := `SELECT id, order_id, store_id, seller_user_id, delivery_method, delivery_price, delivery_eta_days, items_subtotal, seller_total, status
	          FROM seller_orders WHERE id = $1`

	rows, err := r.queryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("query seller order: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("query seller order: %w", err)
		}
		return nil, ErrSellerOrderNotFound
	}
	so, err := scanSellerOrder(rows)
	if err != nil {
		return nil, err
	}
	if err := rows.Close(); err != nil {
		return nil, fmt.Errorf("query seller order: %w", err)
	}

	items, err := r.loadSellerOrderItems(ctx, so.ID)
	if err != nil {
		return nil, err
	}
	so.Items = items
	return &so, nil
}

func (r *Repository) ListSellerOrdersBySeller(ctx context.Context, sellerUserID string) ([]*domain.SellerOrder, error) {
	query := `SELECT so.id, so.order_id, so.store_id, so.seller_user_id, so.delivery_method, so.delivery_price, so.delivery_eta_days, so.items_subtotal, so.seller_total, so.status
	          FROM seller_orders so
	          JOIN orders o ON o.id = so.order_id
	          WHERE so.seller_user_id = $1 ORDER BY o.order_date DESC`

	rows, err := r.queryContext(ctx, query, sellerUserID)
	if err != nil {
		return nil, fmt.Errorf("query seller orders by seller: %w", err)
	}
	defer rows.Close()

	var sellerOrders []*domain.SellerOrder
	for rows.Next() {
		so, err := scanSellerOrder(rows)
		if err != nil {
			return nil, err
		}
		sellerOrders = append(sellerOrders, &so)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	for _, so := range sellerOrders {
		items, err := r.loadSellerOrderItems(ctx, so.ID)
		if err != nil {
			return nil, err
		}
		so.Items = items
	}
	return sellerOrders, nil
}

func (r *Repository) UpdateSellerOrderStatus(ctx context.Context, id uuid.UUID, status domain.SellerOrderStatus) error {
	query := `UPDATE seller_orders SET status = $2 WHERE id = $1`

	res, err := r.execContext(ctx, query, id, string(status))
	if err != nil {
		return fmt.Errorf("update seller order status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update seller order status: %w", err)
	}
	if affected == 0 {
		return ErrSellerOrderNotFound
	}
	return nil
}

func scanSellerOrder(rows *sql.Rows) (domain.SellerOrder, error) {
	var so domain.SellerOrder
	var method, status string
	if err := rows.Scan(
		&so.ID,
		&so.OrderID,
		&so.StoreID,
		&so.SellerUserID,
		&method,
		&so.DeliveryPrice,
		&so.DeliveryEtaDays,
		&so.ItemsSubtotal,
		&so.SellerTotal,
		&status,
	); err != nil {
		return domain.SellerOrder{}, fmt.Errorf("scan seller order row: %w", err)
	}
	so.DeliveryMethod = domain.DeliveryMethod(method)
	so.Status = domain.SellerOrderStatus(status)
	return so, nil
}
