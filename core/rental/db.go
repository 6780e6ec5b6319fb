package rental

import (
	"context"
	"fmt"
	"time"

	"github.com/Karol-96/arts-sell/core/order"
	"github.com/Karol-96/arts-sell/validate"
	"github.com/jmoiron/sqlx"
)

func Create(ctx context.Context, db sqlx.ExtContext, r Rental) error {
	const q = `
	INSERT INTO rented_artworks
		(rental_id, order_id, artwork_id, user_id, rental_start_date,
		rental_end_date, monthly_price, status, created_at)
	VALUES
		(:rental_id, :order_id, :artwork_id, :user_id, :rental_start_date,
		:rental_end_date, :monthly_price, :status, :created_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, r); err != nil {
		return fmt.Errorf("inserting rental: %w", err)
	}

	return nil
}

// Provision creates one active rental per order item, all starting now and
// ending after term. It runs inside the checkout transaction, so either all
// rentals of the order exist or none do.
func Provision(ctx context.Context, tx sqlx.ExtContext, userID string, items []order.Item, now time.Time, term time.Duration) ([]Rental, error) {
	rentals := make([]Rental, 0, len(items))
	for _, item := range items {
		r := Rental{
			ID:           validate.GenerateID(),
			OrderID:      item.OrderID,
			ArtworkID:    item.ArtworkID,
			UserID:       userID,
			Start:        now,
			End:          now.Add(term),
			MonthlyPrice: item.Price,
			Status:       StatusActive,
			CreatedAt:    now,
		}

		if err := Create(ctx, tx, r); err != nil {
			return nil, fmt.Errorf("provisioning rental for artwork[%s]: %w", item.ArtworkID, err)
		}

		rentals = append(rentals, r)
	}

	return rentals, nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, id string) (Rental, error) {
	const q = `SELECT * FROM rented_artworks WHERE rental_id = $1`

	var r Rental
	if err := sqlx.GetContext(ctx, db, &r, q, id); err != nil {
		return Rental{}, fmt.Errorf("selecting rental[%s]: %w", id, err)
	}

	return r, nil
}

func FetchByUser(ctx context.Context, db sqlx.ExtContext, userID string) ([]Rental, error) {
	const q = `SELECT * FROM rented_artworks WHERE user_id = $1 ORDER BY rental_start_date DESC`

	rentals := []Rental{}
	if err := sqlx.SelectContext(ctx, db, &rentals, q, userID); err != nil {
		return nil, fmt.Errorf("selecting rentals of user[%s]: %w", userID, err)
	}

	return rentals, nil
}

// markReturned closes an active or extended rental.
func markReturned(ctx context.Context, db sqlx.ExtContext, id string) error {
	const q = `
	UPDATE rented_artworks SET status = 'returned'
	WHERE rental_id = $1 AND status IN ('active', 'extended')`

	res, err := db.ExecContext(ctx, q, id)
	if err != nil {
		return fmt.Errorf("returning rental[%s]: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rentals: %w", err)
	}
	if n != 1 {
		return fmt.Errorf("rental[%s]: %w", id, ErrNotActive)
	}

	return nil
}

// extend pushes the rental end out by the given number of days and marks the
// rental extended.
func extend(ctx context.Context, db sqlx.ExtContext, id string, days int) error {
	const q = `
	UPDATE rented_artworks
	SET rental_end_date = rental_end_date + make_interval(days => $2), status = 'extended'
	WHERE rental_id = $1 AND status IN ('active', 'extended')`

	res, err := db.ExecContext(ctx, q, id, days)
	if err != nil {
		return fmt.Errorf("extending rental[%s]: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rentals: %w", err)
	}
	if n != 1 {
		return fmt.Errorf("rental[%s]: %w", id, ErrNotActive)
	}

	return nil
}
