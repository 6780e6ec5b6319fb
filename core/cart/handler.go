package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Karol-96/arts-sell/api/web"
	"github.com/Karol-96/arts-sell/api/weberr"
	"github.com/Karol-96/arts-sell/core/artwork"
	"github.com/Karol-96/arts-sell/core/claims"
	"github.com/Karol-96/arts-sell/validate"
	"github.com/jmoiron/sqlx"
)

func HandleShow(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		items, err := FetchItems(ctx, db, clm.UserID)
		if err != nil {
			return fmt.Errorf("fetching cart items: %w", err)
		}

		return web.Respond(ctx, w, items, http.StatusOK)
	}
}

func HandleCreateItem(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		var in ItemNew
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(in); err != nil {
			return weberr.BadRequest(fmt.Errorf("validating data: %w", err))
		}

		art, err := artwork.Fetch(ctx, db, in.ArtworkID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching artwork[%s]: %w", in.ArtworkID, err)
		}

		if art.Status != artwork.StatusAvailable {
			return weberr.NewError(artwork.ErrUnavailable, artwork.ErrUnavailable.Error(), http.StatusConflict)
		}

		item := Item{
			UserID:    clm.UserID,
			ArtworkID: art.ID,
			Quantity:  1,
			AddedAt:   time.Now().UTC(),
		}

		if err := CreateItem(ctx, db, item); err != nil {
			if errors.Is(err, ErrDuplicateItem) {
				return weberr.NewError(err, err.Error(), http.StatusConflict)
			}
			return fmt.Errorf("adding artwork[%s] to cart: %w", art.ID, err)
		}

		return web.Respond(ctx, w, item, http.StatusCreated)
	}
}

func HandleDeleteItem(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		id := web.Param(r, "artwork_id")
		if err := validate.CheckID(id); err != nil {
			return weberr.BadRequest(fmt.Errorf("passed id is not valid: %w", err))
		}

		if err := DeleteItem(ctx, db, clm.UserID, id); err != nil {
			return fmt.Errorf("removing artwork[%s] from cart: %w", id, err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

func HandleDelete(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		if err := Delete(ctx, db, clm.UserID); err != nil {
			return fmt.Errorf("flushing cart: %w", err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}
