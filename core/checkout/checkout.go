// Package checkout converts a cart into an order, decides the payment and
// provisions the rentals, all inside a single database transaction. It is the
// only place in the system where several entities must change together.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Karol-96/arts-sell/core/artwork"
	"github.com/Karol-96/arts-sell/core/cart"
	"github.com/Karol-96/arts-sell/core/order"
	"github.com/Karol-96/arts-sell/core/payment"
	"github.com/Karol-96/arts-sell/core/rental"
	"github.com/Karol-96/arts-sell/database"
	"github.com/Karol-96/arts-sell/validate"
	"github.com/jmoiron/sqlx"
)

// ErrEmptyCart rejects a checkout with nothing in the cart. No state is
// touched in that case.
var ErrEmptyCart = errors.New("cart is empty")

// ErrCheckoutFailed covers infrastructure failures inside the pipeline. The
// transaction has been rolled back: no order, items, payment or rentals were
// kept, and the cart is intact.
var ErrCheckoutFailed = errors.New("checkout failed")

type CheckoutNew struct {
	ShippingAddress string `json:"shippingAddress"`
	PaymentMethod   string `json:"paymentMethod" validate:"required,oneof=credit_card debit_card paypal bank_transfer"`
	AccountName     string `json:"accountName" validate:"required"`
	AccountNumber   string `json:"accountNumber" validate:"required"`
}

type Summary struct {
	OrderID       string          `json:"orderId"`
	OrderStatus   order.Status    `json:"orderStatus"`
	PaymentStatus payment.Status  `json:"paymentStatus"`
	Quote         Quote           `json:"quote"`
	Rentals       []rental.Rental `json:"rentals,omitempty"`
}

// Core orchestrates the checkout pipeline. All collaborators are injected:
// swapping the authorizer is how tests pin the payment outcome.
type Core struct {
	db         *sqlx.DB
	authorizer payment.Authorizer
	policy     Policy
	term       time.Duration
}

func New(db *sqlx.DB, authorizer payment.Authorizer, policy Policy, term time.Duration) *Core {
	return &Core{db: db, authorizer: authorizer, policy: policy, term: term}
}

// Checkout runs the whole pipeline for one user: snapshot and lock the cart,
// price it, persist order and items, decide the payment, then either fulfill
// (mark artworks unavailable, provision rentals, order success) or decline
// (order pending or cancelled, nothing else touched). The cart is cleared on
// both branches: a failed payment still consumes the cart and the buyer must
// re-add items to retry. Any error rolls everything back.
func (c *Core) Checkout(ctx context.Context, userID string, co CheckoutNew) (Summary, error) {
	var sum Summary

	err := database.Transaction(c.db, func(tx sqlx.ExtContext) error {
		items, err := cart.FetchCheckoutItems(ctx, tx, userID)
		if err != nil {
			return fmt.Errorf("snapshotting cart: %w", err)
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		// The rows are locked, but another checkout may already have taken
		// one of the artworks before we got here.
		ids := make([]string, 0, len(items))
		for _, it := range items {
			if it.Status != artwork.StatusAvailable {
				return fmt.Errorf("artwork[%s]: %w", it.ArtworkID, artwork.ErrUnavailable)
			}
			ids = append(ids, it.ArtworkID)
		}

		quote := c.policy.Price(items)
		now := time.Now().UTC()

		ord := order.Order{
			ID:              validate.GenerateID(),
			UserID:          userID,
			TotalAmount:     quote.Total,
			ShippingCost:    quote.Shipping,
			Tax:             quote.Tax,
			Status:          order.Pending,
			ShippingAddress: co.ShippingAddress,
			PaymentMethod:   co.PaymentMethod,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := order.Create(ctx, tx, ord); err != nil {
			return err
		}

		ordItems := make([]order.Item, 0, len(items))
		for _, it := range items {
			item := order.Item{
				ID:        validate.GenerateID(),
				OrderID:   ord.ID,
				ArtworkID: it.ArtworkID,
				Price:     it.Price,
				Quantity:  it.Quantity,
				CreatedAt: now,
			}
			if err := order.CreateItem(ctx, tx, item); err != nil {
				return err
			}
			ordItems = append(ordItems, item)
		}

		auth, err := c.authorizer.Authorize(ctx, co.PaymentMethod, co.AccountName, co.AccountNumber)
		if err != nil {
			return fmt.Errorf("authorizing payment: %w", err)
		}

		info := payment.Info{
			OrderID:       ord.ID,
			Method:        co.PaymentMethod,
			AccountName:   co.AccountName,
			AccountMasked: auth.AccountMasked,
			Status:        auth.Status,
			Date:          now,
		}
		if err := payment.CreateInfo(ctx, tx, info); err != nil {
			return err
		}

		switch auth.Status {
		case payment.Completed:
			// The guard inside MarkUnavailable is the last defense against a
			// double sale: if it trips the whole checkout rolls back.
			if err := artwork.MarkUnavailable(ctx, tx, ids); err != nil {
				return err
			}

			rentals, err := rental.Provision(ctx, tx, userID, ordItems, now, c.term)
			if err != nil {
				return err
			}

			if err := order.UpdateStatus(ctx, tx, ord.ID, order.Success); err != nil {
				return err
			}

			ord.Status = order.Success
			sum.Rentals = rentals

		case payment.Failed:
			if err := order.UpdateStatus(ctx, tx, ord.ID, order.Cancelled); err != nil {
				return err
			}
			ord.Status = order.Cancelled

		case payment.Pending:
			// Stays pending until approved out of band.
		}

		if err := cart.Delete(ctx, tx, userID); err != nil {
			return err
		}

		sum.OrderID = ord.ID
		sum.OrderStatus = ord.Status
		sum.PaymentStatus = auth.Status
		sum.Quote = quote
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrEmptyCart) || errors.Is(err, artwork.ErrUnavailable) {
			return Summary{}, err
		}
		return Summary{}, fmt.Errorf("%w: %v", ErrCheckoutFailed, err)
	}

	return sum, nil
}
