package artwork

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

func Create(ctx context.Context, db sqlx.ExtContext, art Artwork) error {
	const q = `
	INSERT INTO artworks
		(artwork_id, owner_id, title, artist_name, description, medium,
		dimensions, image_url, price, status, created_at, updated_at)
	VALUES
		(:artwork_id, :owner_id, :title, :artist_name, :description, :medium,
		:dimensions, :image_url, :price, :status, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, art); err != nil {
		return fmt.Errorf("inserting artwork: %w", err)
	}

	return nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, id string) (Artwork, error) {
	const q = `SELECT * FROM artworks WHERE artwork_id = $1`

	var art Artwork
	if err := sqlx.GetContext(ctx, db, &art, q, id); err != nil {
		return Artwork{}, fmt.Errorf("selecting artwork[%s]: %w", id, err)
	}

	return art, nil
}

// FetchAvailable lists the artworks buyers can browse and add to a cart.
func FetchAvailable(ctx context.Context, db sqlx.ExtContext) ([]Artwork, error) {
	const q = `SELECT * FROM artworks WHERE status = 'available' ORDER BY created_at DESC`

	arts := []Artwork{}
	if err := sqlx.SelectContext(ctx, db, &arts, q); err != nil {
		return nil, fmt.Errorf("selecting available artworks: %w", err)
	}

	return arts, nil
}

func FetchByOwner(ctx context.Context, db sqlx.ExtContext, ownerID string) ([]Artwork, error) {
	const q = `SELECT * FROM artworks WHERE owner_id = $1 ORDER BY created_at DESC`

	arts := []Artwork{}
	if err := sqlx.SelectContext(ctx, db, &arts, q, ownerID); err != nil {
		return nil, fmt.Errorf("selecting artworks of owner[%s]: %w", ownerID, err)
	}

	return arts, nil
}

func Update(ctx context.Context, db sqlx.ExtContext, art Artwork) error {
	const q = `
	UPDATE artworks SET
		title = :title,
		artist_name = :artist_name,
		description = :description,
		medium = :medium,
		dimensions = :dimensions,
		image_url = :image_url,
		price = :price,
		updated_at = :updated_at
	WHERE artwork_id = :artwork_id`

	if _, err := sqlx.NamedExecContext(ctx, db, q, art); err != nil {
		return fmt.Errorf("updating artwork[%s]: %w", art.ID, err)
	}

	return nil
}

// MarkUnavailable flips the given artworks from available to unavailable.
// The status guard in the WHERE clause is what prevents a double sale: if any
// of the rows was already taken the affected count comes up short and the
// whole call fails with ErrUnavailable so the caller can roll back.
func MarkUnavailable(ctx context.Context, db sqlx.ExtContext, ids []string) error {
	const q = `
	UPDATE artworks SET status = 'unavailable', updated_at = NOW()
	WHERE artwork_id = ANY($1) AND status = 'available'`

	res, err := db.ExecContext(ctx, q, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("marking artworks unavailable: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected artworks: %w", err)
	}
	if n != int64(len(ids)) {
		return fmt.Errorf("%d of %d artworks already taken: %w", int64(len(ids))-n, len(ids), ErrUnavailable)
	}

	return nil
}

// MarkAvailable returns an artwork to the catalog, used when a rental ends.
func MarkAvailable(ctx context.Context, db sqlx.ExtContext, id string) error {
	const q = `
	UPDATE artworks SET status = 'available', updated_at = NOW()
	WHERE artwork_id = $1 AND status = 'unavailable'`

	res, err := db.ExecContext(ctx, q, id)
	if err != nil {
		return fmt.Errorf("marking artwork[%s] available: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected artworks: %w", err)
	}
	if n != 1 {
		return fmt.Errorf("artwork[%s] is not rented out: %w", id, ErrUnavailable)
	}

	return nil
}
