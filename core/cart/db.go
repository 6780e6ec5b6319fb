package cart

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// FetchItems returns the cart joined with the artwork display fields.
func FetchItems(ctx context.Context, db sqlx.ExtContext, userID string) ([]Item, error) {
	const q = `
	SELECT c.user_id, c.artwork_id, c.quantity, c.added_at,
		a.title, a.artist_name, a.price, a.image_url
	FROM cart c
	JOIN artworks a ON c.artwork_id = a.artwork_id
	WHERE c.user_id = $1
	ORDER BY c.added_at`

	items := []Item{}
	if err := sqlx.SelectContext(ctx, db, &items, q, userID); err != nil {
		return nil, fmt.Errorf("selecting cart items of user[%s]: %w", userID, err)
	}

	return items, nil
}

// FetchCheckoutItems takes the cart snapshot used by checkout. It must run
// inside the checkout transaction: the FOR UPDATE clause locks the artwork
// rows so two concurrent checkouts of the same artwork serialize here.
func FetchCheckoutItems(ctx context.Context, tx sqlx.ExtContext, userID string) ([]CheckoutItem, error) {
	const q = `
	SELECT c.artwork_id, c.quantity, a.price, a.status
	FROM cart c
	JOIN artworks a ON c.artwork_id = a.artwork_id
	WHERE c.user_id = $1
	ORDER BY c.added_at
	FOR UPDATE OF a`

	items := []CheckoutItem{}
	if err := sqlx.SelectContext(ctx, tx, &items, q, userID); err != nil {
		return nil, fmt.Errorf("locking cart items of user[%s]: %w", userID, err)
	}

	return items, nil
}

// CreateItem adds an artwork to the cart. A repeated add fails with
// ErrDuplicateItem instead of bumping the quantity.
func CreateItem(ctx context.Context, db sqlx.ExtContext, item Item) error {
	const q = `
	INSERT INTO cart (user_id, artwork_id, quantity, added_at)
	VALUES (:user_id, :artwork_id, :quantity, :added_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, item); err != nil {
		if pqe, ok := err.(*pq.Error); ok && pqe.Code == "23505" {
			return ErrDuplicateItem
		}
		return fmt.Errorf("inserting cart item: %w", err)
	}

	return nil
}

func DeleteItem(ctx context.Context, db sqlx.ExtContext, userID string, artworkID string) error {
	const q = `DELETE FROM cart WHERE user_id = $1 AND artwork_id = $2`

	if _, err := db.ExecContext(ctx, q, userID, artworkID); err != nil {
		return fmt.Errorf("deleting cart item[%s]: %w", artworkID, err)
	}

	return nil
}

// Delete empties the user's cart. Checkout calls it on every outcome: a cart
// is consumed by the attempt, not by its success.
func Delete(ctx context.Context, db sqlx.ExtContext, userID string) error {
	const q = `DELETE FROM cart WHERE user_id = $1`

	if _, err := db.ExecContext(ctx, q, userID); err != nil {
		return fmt.Errorf("flushing cart of user[%s]: %w", userID, err)
	}

	return nil
}

func Count(ctx context.Context, db sqlx.ExtContext, userID string) (int, error) {
	const q = `SELECT COALESCE(SUM(quantity), 0) FROM cart WHERE user_id = $1`

	var n int
	if err := sqlx.GetContext(ctx, db, &n, q, userID); err != nil {
		return 0, fmt.Errorf("counting cart items of user[%s]: %w", userID, err)
	}

	return n, nil
}
