package order

import (
	"errors"
	"time"
)

type Status string

const (
	// Pending covers a freshly created order and one whose payment is still
	// awaiting approval.
	Pending Status = "pending"
	// Success means the payment completed and the rentals were provisioned.
	Success Status = "success"
	// Cancelled means the payment failed. The buyer has to start over.
	Cancelled Status = "cancelled"
)

// ErrStatusFinal is returned when an update would move an order out of a
// terminal status. Status only progresses forward, never back to pending.
var ErrStatusFinal = errors.New("order status is final")

type Order struct {
	ID              string    `json:"id" db:"order_id"`
	UserID          string    `json:"userId" db:"user_id"`
	TotalAmount     int       `json:"totalAmount" db:"total_amount"`
	ShippingCost    int       `json:"shippingCost" db:"shipping_cost"`
	Tax             int       `json:"tax" db:"tax"`
	Status          Status    `json:"status" db:"status"`
	ShippingAddress string    `json:"shippingAddress" db:"shipping_address"`
	PaymentMethod   string    `json:"paymentMethod" db:"payment_method"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

// Item is one order line. Price is the artwork price at order creation and
// never changes afterwards.
type Item struct {
	ID        string    `json:"id" db:"item_id"`
	OrderID   string    `json:"orderId" db:"order_id"`
	ArtworkID string    `json:"artworkId" db:"artwork_id"`
	Price     int       `json:"price" db:"price"`
	Quantity  int       `json:"quantity" db:"quantity"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
