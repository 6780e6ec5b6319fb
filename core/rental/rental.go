package rental

import (
	"errors"
	"time"
)

const (
	StatusActive   = "active"
	StatusReturned = "returned"
	StatusExtended = "extended"
)

// DefaultTerm is the fixed rental period applied at provisioning time.
const DefaultTerm = 30 * 24 * time.Hour

// ErrNotActive is returned when a return or extension targets a rental that
// already ended.
var ErrNotActive = errors.New("rental is not active")

type Rental struct {
	ID           string    `json:"id" db:"rental_id"`
	OrderID      string    `json:"orderId" db:"order_id"`
	ArtworkID    string    `json:"artworkId" db:"artwork_id"`
	UserID       string    `json:"userId" db:"user_id"`
	Start        time.Time `json:"rentalStart" db:"rental_start_date"`
	End          time.Time `json:"rentalEnd" db:"rental_end_date"`
	MonthlyPrice int       `json:"monthlyPrice" db:"monthly_price"`
	Status       string    `json:"status" db:"status"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
