package checkout

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Karol-96/arts-sell/api/web"
	"github.com/Karol-96/arts-sell/api/weberr"
	"github.com/Karol-96/arts-sell/core/artwork"
	"github.com/Karol-96/arts-sell/core/claims"
	"github.com/Karol-96/arts-sell/core/order"
	"github.com/Karol-96/arts-sell/core/user"
	"github.com/Karol-96/arts-sell/validate"
)

type response struct {
	Summary
	Message string `json:"message"`
}

// HandleCheckout drives the pipeline from the HTTP side: decode and validate
// the payload, default the shipping address from the profile, run the
// checkout and translate the outcome into a user-facing message.
func HandleCheckout(core *Core) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		var co CheckoutNew
		if err := web.Decode(w, r, &co); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(co); err != nil {
			return weberr.BadRequest(fmt.Errorf("validating data: %w", err))
		}

		if co.ShippingAddress == "" {
			usr, err := user.Fetch(ctx, core.db, clm.UserID)
			if err != nil {
				return fmt.Errorf("fetching user[%s]: %w", clm.UserID, err)
			}

			co.ShippingAddress = usr.ShippingAddress()
			if co.ShippingAddress == "" {
				err := errors.New("no shipping address given and none on the profile")
				return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
			}
		}

		sum, err := core.Checkout(ctx, clm.UserID, co)
		if err != nil {
			switch {
			case errors.Is(err, ErrEmptyCart):
				return weberr.NewError(err, "no items to checkout", http.StatusUnprocessableEntity)
			case errors.Is(err, artwork.ErrUnavailable):
				return weberr.NewError(err, "an artwork in your cart is no longer available", http.StatusConflict)
			default:
				return fmt.Errorf("checkout of user[%s]: %w", clm.UserID, err)
			}
		}

		out := response{Summary: sum}
		switch sum.OrderStatus {
		case order.Success:
			out.Message = "order confirmed, your rental has started"
		case order.Cancelled:
			out.Message = "payment failed, order cancelled, please try again"
		default:
			out.Message = "order recorded, payment pending approval"
		}

		return web.Respond(ctx, w, out, http.StatusOK)
	}
}
