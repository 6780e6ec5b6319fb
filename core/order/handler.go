package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/Karol-96/arts-sell/api/web"
	"github.com/Karol-96/arts-sell/api/weberr"
	"github.com/Karol-96/arts-sell/core/claims"
	"github.com/Karol-96/arts-sell/core/payment"
	"github.com/Karol-96/arts-sell/validate"
	"github.com/jmoiron/sqlx"
)

func HandleList(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		orders, err := FetchByUser(ctx, db, clm.UserID)
		if err != nil {
			return fmt.Errorf("fetching orders: %w", err)
		}

		return web.Respond(ctx, w, orders, http.StatusOK)
	}
}

// HandleShow returns an order with its line items and payment record. Owners
// see their own orders; admins see everything.
func HandleShow(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.BadRequest(fmt.Errorf("passed id is not valid: %w", err))
		}

		ord, err := Fetch(ctx, db, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching order[%s]: %w", id, err)
		}

		if !claims.IsUser(ctx, ord.UserID) && !claims.IsAdmin(ctx) {
			// Another user's order is reported as missing.
			return weberr.NotFound(errors.New("order belongs to another user"))
		}

		items, err := FetchItems(ctx, db, id)
		if err != nil {
			return fmt.Errorf("fetching items of order[%s]: %w", id, err)
		}

		info, err := payment.FetchInfoByOrder(ctx, db, id)
		if err != nil {
			return fmt.Errorf("fetching payment info of order[%s]: %w", id, err)
		}

		out := struct {
			Order
			Items   []Item       `json:"items"`
			Payment payment.Info `json:"payment"`
		}{ord, items, info}

		return web.Respond(ctx, w, out, http.StatusOK)
	}
}
