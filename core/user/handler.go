package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Karol-96/arts-sell/api/web"
	"github.com/Karol-96/arts-sell/api/weberr"
	"github.com/Karol-96/arts-sell/core/claims"
	"github.com/Karol-96/arts-sell/validate"
	"github.com/jmoiron/sqlx"
)

func HandleShowCurrent(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		u, err := Fetch(ctx, db, clm.UserID)
		if err != nil {
			return fmt.Errorf("fetching user[%s]: %w", clm.UserID, err)
		}

		return web.Respond(ctx, w, u, http.StatusOK)
	}
}

func HandleShow(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.BadRequest(fmt.Errorf("passed id is not valid: %w", err))
		}

		if !claims.IsUser(ctx, id) && !claims.IsAdmin(ctx) {
			return weberr.NotAuthorized(errors.New("user trying to fetch another user"))
		}

		u, err := Fetch(ctx, db, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching user[%s]: %w", id, err)
		}

		return web.Respond(ctx, w, u, http.StatusOK)
	}
}

// HandleUpdateProfile lets the authenticated user edit the descriptive and
// shipping fields of their own profile.
func HandleUpdateProfile(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		var up UserUp
		if err := web.Decode(w, r, &up); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(up); err != nil {
			return weberr.BadRequest(fmt.Errorf("validating data: %w", err))
		}

		u, err := Fetch(ctx, db, clm.UserID)
		if err != nil {
			return fmt.Errorf("fetching user[%s]: %w", clm.UserID, err)
		}

		if up.Firstname != nil {
			u.Firstname = *up.Firstname
		}
		if up.Lastname != nil {
			u.Lastname = *up.Lastname
		}
		if up.Email != nil {
			u.Email = *up.Email
		}
		if up.Phone != nil {
			u.Phone = *up.Phone
		}
		if up.Bio != nil {
			u.Bio = *up.Bio
		}
		if up.Address != nil {
			u.Address = *up.Address
		}
		if up.City != nil {
			u.City = *up.City
		}
		if up.State != nil {
			u.State = *up.State
		}
		if up.Zip != nil {
			u.Zip = *up.Zip
		}
		if up.Country != nil {
			u.Country = *up.Country
		}
		u.UpdatedAt = time.Now().UTC()

		if err := Update(ctx, db, u); err != nil {
			return fmt.Errorf("updating user[%s]: %w", u.ID, err)
		}

		return web.Respond(ctx, w, u, http.StatusOK)
	}
}
