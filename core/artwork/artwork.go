package artwork

import (
	"errors"
	"time"
)

const (
	StatusAvailable   = "available"
	StatusUnavailable = "unavailable"
)

// ErrUnavailable is returned when an availability transition touches an
// artwork that is no longer available. During checkout it means another
// order won the artwork first.
var ErrUnavailable = errors.New("artwork is not available")

type Artwork struct {
	ID          string    `json:"id" db:"artwork_id"`
	OwnerID     string    `json:"ownerId" db:"owner_id"`
	Title       string    `json:"title" db:"title"`
	ArtistName  string    `json:"artistName" db:"artist_name"`
	Description string    `json:"description" db:"description"`
	Medium      string    `json:"medium" db:"medium"`
	Dimensions  string    `json:"dimensions" db:"dimensions"`
	ImageURL    string    `json:"imageUrl" db:"image_url"`
	Price       int       `json:"price" db:"price"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

type ArtworkNew struct {
	Title       string `json:"title" validate:"required"`
	ArtistName  string `json:"artistName" validate:"required"`
	Description string `json:"description"`
	Medium      string `json:"medium"`
	Dimensions  string `json:"dimensions"`
	ImageURL    string `json:"imageUrl"`
	Price       int    `json:"price" validate:"required,gte=0,lte=10000000"`
}

type ArtworkUp struct {
	Title       *string `json:"title"`
	ArtistName  *string `json:"artistName"`
	Description *string `json:"description"`
	Medium      *string `json:"medium"`
	Dimensions  *string `json:"dimensions"`
	ImageURL    *string `json:"imageUrl"`
	Price       *int    `json:"price" validate:"omitempty,gte=0,lte=10000000"`
}
