package order

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

func Create(ctx context.Context, db sqlx.ExtContext, ord Order) error {
	const q = `
	INSERT INTO orders
		(order_id, user_id, total_amount, shipping_cost, tax, status,
		shipping_address, payment_method, created_at, updated_at)
	VALUES
		(:order_id, :user_id, :total_amount, :shipping_cost, :tax, :status,
		:shipping_address, :payment_method, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, ord); err != nil {
		return fmt.Errorf("inserting order: %w", err)
	}

	return nil
}

func CreateItem(ctx context.Context, db sqlx.ExtContext, item Item) error {
	const q = `
	INSERT INTO order_items (item_id, order_id, artwork_id, price, quantity, created_at)
	VALUES (:item_id, :order_id, :artwork_id, :price, :quantity, :created_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, item); err != nil {
		return fmt.Errorf("inserting order item: %w", err)
	}

	return nil
}

// UpdateStatus moves an order out of pending. Orders already in a terminal
// status are never touched: the guard fails and ErrStatusFinal is returned.
func UpdateStatus(ctx context.Context, db sqlx.ExtContext, id string, status Status) error {
	const q = `
	UPDATE orders SET status = $2, updated_at = NOW()
	WHERE order_id = $1 AND status = 'pending'`

	res, err := db.ExecContext(ctx, q, id, status)
	if err != nil {
		return fmt.Errorf("updating status of order[%s]: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected orders: %w", err)
	}
	if n != 1 {
		return fmt.Errorf("order[%s]: %w", id, ErrStatusFinal)
	}

	return nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, id string) (Order, error) {
	const q = `SELECT * FROM orders WHERE order_id = $1`

	var ord Order
	if err := sqlx.GetContext(ctx, db, &ord, q, id); err != nil {
		return Order{}, fmt.Errorf("selecting order[%s]: %w", id, err)
	}

	return ord, nil
}

func FetchByUser(ctx context.Context, db sqlx.ExtContext, userID string) ([]Order, error) {
	const q = `SELECT * FROM orders WHERE user_id = $1 ORDER BY created_at DESC`

	orders := []Order{}
	if err := sqlx.SelectContext(ctx, db, &orders, q, userID); err != nil {
		return nil, fmt.Errorf("selecting orders of user[%s]: %w", userID, err)
	}

	return orders, nil
}

func FetchItems(ctx context.Context, db sqlx.ExtContext, orderID string) ([]Item, error) {
	const q = `SELECT * FROM order_items WHERE order_id = $1 ORDER BY created_at`

	items := []Item{}
	if err := sqlx.SelectContext(ctx, db, &items, q, orderID); err != nil {
		return nil, fmt.Errorf("selecting items of order[%s]: %w", orderID, err)
	}

	return items, nil
}
