package cart

import (
	"errors"
	"time"
)

// ErrDuplicateItem is returned on a repeated add of the same artwork. Each
// artwork is a unique physical item, so a second line never makes sense.
var ErrDuplicateItem = errors.New("artwork is already in the cart")

type Item struct {
	UserID    string    `json:"-" db:"user_id"`
	ArtworkID string    `json:"artworkId" db:"artwork_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	AddedAt   time.Time `json:"addedAt" db:"added_at"`

	// Display fields joined from the artwork.
	Title      string `json:"title" db:"title"`
	ArtistName string `json:"artistName" db:"artist_name"`
	Price      int    `json:"price" db:"price"`
	ImageURL   string `json:"imageUrl" db:"image_url"`
}

type ItemNew struct {
	ArtworkID string `json:"artworkId" validate:"required,uuid4"`
}

// CheckoutItem is the snapshot of one cart row taken at the start of a
// checkout, with the artwork fields the pipeline needs.
type CheckoutItem struct {
	ArtworkID string `db:"artwork_id"`
	Quantity  int    `db:"quantity"`
	Price     int    `db:"price"`
	Status    string `db:"status"`
}
