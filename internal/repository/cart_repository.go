package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MuzzammilWits/HoodGoods-sub000/internal/domain"
)

func (r *Repository) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	query := `SELECT c.product_id, p.store_id, c.quantity, c.unit_price, c.updated_at
	          FROM cart_items c
	          JOIN products p ON p.id = c.product_id
	          WHERE c.user_id = $1 ORDER BY c.product_id`

	rows, err := r.queryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query cart items: %w", err)
	}
	defer rows.Close()

	cart := &domain.Cart{UserID: userID}
	for rows.Next() {
		var item domain.CartItem
		var updatedAt time.Time
		if err := rows.Scan(&item.ProductID, &item.StoreID, &item.Quantity, &item.UnitPrice, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan cart item row: %w", err)
		}
		if updatedAt.After(cart.UpdatedAt) {
			cart.UpdatedAt = updatedAt
		}
		cart.Items = append(cart.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return cart, nil
}

// AddItem upserts a cart row, snapshotting the product's current price on
// first insert. Re-adding the same product bumps quantity but keeps the
// original snapshot price.
func (r *Repository) AddItem(ctx context.Context, userID string, productID int64, quantity int) error {
	query := `INSERT INTO cart_items (user_id, product_id, quantity, unit_price, updated_at)
	          SELECT $1, p.id, $3, p.price, NOW()
	          FROM products p WHERE p.id = $2 AND p.is_active
	          ON CONFLICT (user_id, product_id)
	          DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = NOW()`

	res, err := r.execContext(ctx, query, userID, productID, quantity)
	if err != nil {
		return fmt.Errorf("insert cart item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert cart item: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %d", ErrProductNotFound, productID)
	}
	return nil
}

func (r *Repository) UpdateItemQuantity(ctx context.Context, userID string, productID int64, quantity int) error {
	query := `UPDATE cart_items SET quantity = $3, updated_at = NOW()
	          WHERE user_id = $1 AND product_id = $2`

	res, err := r.execContext(ctx, query, userID, productID, quantity)
	if err != nil {
		return fmt.Errorf("update cart item quantity: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update cart item quantity: %w", err)
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (r *Repository) RemoveItem(ctx context.Context, userID string, productID int64) error {
	query := `DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`

	res, err := r.execContext(ctx, query, userID, productID)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (r *Repository) DeleteCart(ctx context.Context, userID string) error {
	query := `DELETE FROM cart_items WHERE user_id = $1`

	if _, err := r.execContext(ctx, query, userID); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}

// DeleteCartItems is the transactional cart clear invoked at the end of a
// successful checkout. Same statement as DeleteCart; named separately because
// it runs on the checkout transaction, not as a standalone cart operation.
func (r *Repository) DeleteCartItems(ctx context.Context, userID string) error {
	return r.DeleteCart(ctx, userID)
}

func (r *Repository) ListActiveProducts(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT id, store_id, name, price, quantity_available, image_url, is_active
	          FROM products WHERE is_active ORDER BY id`

	rows, err := r.queryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.StoreID, &p.Name, &p.Price, &p.QuantityAvailable, &p.ImageURL, &p.IsActive); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return products, nil
}

func (r *Repository) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT id, store_id, name, price, quantity_available, image_url, is_active
	          FROM products WHERE id = $1`

	var p domain.Product
	err := r.queryRowContext(ctx, query, id).Scan(
		&p.ID, &p.StoreID, &p.Name, &p.Price, &p.QuantityAvailable, &p.ImageURL, &p.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrProductNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("query product by id: %w", err)
	}
	return &p, nil
}
