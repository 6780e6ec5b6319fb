package artwork

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

func HandleList(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		arts, err := FetchAvailable(ctx, db)
		if err != nil {
			return fmt.Errorf("fetching available artworks: %w", err)
		}

		return web.Respond(ctx, w, arts, http.StatusOK)
	}
}

func HandleListOwned(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		arts, err := FetchByOwner(ctx, db, clm.UserID)
		if err != nil {
			return fmt.Errorf("fetching artworks of user[%s]: %w", clm.UserID, err)
		}

		return web.Respond(ctx, w, arts, http.StatusOK)
	}
}

func HandleShow(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.BadRequest(fmt.Errorf("passed id is not valid: %w", err))
		}

		art, err := Fetch(ctx, db, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching artwork[%s]: %w", id, err)
		}

		return web.Respond(ctx, w, art, http.StatusOK)
	}
}

func HandleCreate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		var an ArtworkNew
		if err := web.Decode(w, r, &an); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(an); err != nil {
			return weberr.BadRequest(fmt.Errorf("validating data: %w", err))
		}

		now := time.Now().UTC()
		art := Artwork{
			ID:          validate.GenerateID(),
			OwnerID:     clm.UserID,
			Title:       an.Title,
			ArtistName:  an.ArtistName,
			Description: an.Description,
			Medium:      an.Medium,
			Dimensions:  an.Dimensions,
			ImageURL:    an.ImageURL,
			Price:       an.Price,
			Status:      StatusAvailable,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if err := Create(ctx, db, art); err != nil {
			return fmt.Errorf("creating artwork: %w", err)
		}

		return web.Respond(ctx, w, art, http.StatusCreated)
	}
}

// HandleUpdate edits the descriptive fields of an artwork. Only the owning
// artist or an admin may do it. Price edits never touch orders already made:
// order items keep their snapshot price.
func HandleUpdate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.BadRequest(fmt.Errorf("passed id is not valid: %w", err))
		}

		var up ArtworkUp
		if err := web.Decode(w, r, &up); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(up); err != nil {
			return weberr.BadRequest(fmt.Errorf("validating data: %w", err))
		}

		art, err := Fetch(ctx, db, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching artwork[%s]: %w", id, err)
		}

		if !claims.IsUser(ctx, art.OwnerID) && !claims.IsAdmin(ctx) {
			return weberr.NotAuthorized(errors.New("user is not the owner of the artwork"))
		}

		if up.Title != nil {
			art.Title = *up.Title
		}
		if up.ArtistName != nil {
			art.ArtistName = *up.ArtistName
		}
		if up.Description != nil {
			art.Description = *up.Description
		}
		if up.Medium != nil {
			art.Medium = *up.Medium
		}
		if up.Dimensions != nil {
			art.Dimensions = *up.Dimensions
		}
		if up.ImageURL != nil {
			art.ImageURL = *up.ImageURL
		}
		if up.Price != nil {
			art.Price = *up.Price
		}
		art.UpdatedAt = time.Now().UTC()

		if err := Update(ctx, db, art); err != nil {
			return fmt.Errorf("updating artwork[%s]: %w", id, err)
		}

		return web.Respond(ctx, w, art, http.StatusOK)
	}
}
