package rental

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/Karol-96/arts-sell/api/web"
	"github.com/Karol-96/arts-sell/api/weberr"
	"github.com/Karol-96/arts-sell/core/artwork"
	"github.com/Karol-96/arts-sell/core/claims"
	"github.com/Karol-96/arts-sell/database"
	"github.com/Karol-96/arts-sell/validate"
	"github.com/jmoiron/sqlx"
)

func HandleList(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		rentals, err := FetchByUser(ctx, db, clm.UserID)
		if err != nil {
			return fmt.Errorf("fetching rentals: %w", err)
		}

		return web.Respond(ctx, w, rentals, http.StatusOK)
	}
}

// HandleReturn closes a rental and puts the artwork back in the catalog.
// Both writes happen in one transaction. Admin only.
func HandleReturn(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.BadRequest(fmt.Errorf("passed id is not valid: %w", err))
		}

		rent, err := Fetch(ctx, db, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching rental[%s]: %w", id, err)
		}

		err = database.Transaction(db, func(tx sqlx.ExtContext) error {
			if err := markReturned(ctx, tx, rent.ID); err != nil {
				return err
			}

			if err := artwork.MarkAvailable(ctx, tx, rent.ArtworkID); err != nil {
				return err
			}

			return nil
		})
		if err != nil {
			if errors.Is(err, ErrNotActive) {
				return weberr.NewError(err, err.Error(), http.StatusConflict)
			}
			return fmt.Errorf("returning rental[%s]: %w", id, err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

// HandleExtend lets the renter push the end date out by another term.
func HandleExtend(db *sqlx.DB, termDays int) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.BadRequest(fmt.Errorf("passed id is not valid: %w", err))
		}

		rent, err := Fetch(ctx, db, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching rental[%s]: %w", id, err)
		}

		if !claims.IsUser(ctx, rent.UserID) && !claims.IsAdmin(ctx) {
			return weberr.NotFound(errors.New("rental belongs to another user"))
		}

		if err := extend(ctx, db, rent.ID, termDays); err != nil {
			if errors.Is(err, ErrNotActive) {
				return weberr.NewError(err, err.Error(), http.StatusConflict)
			}
			return fmt.Errorf("extending rental[%s]: %w", id, err)
		}

		rent, err = Fetch(ctx, db, id)
		if err != nil {
			return fmt.Errorf("fetching rental[%s]: %w", id, err)
		}

		return web.Respond(ctx, w, rent, http.StatusOK)
	}
}
