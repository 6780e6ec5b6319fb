package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Karol-96/arts-sell/api/web"
	"github.com/Karol-96/arts-sell/api/weberr"
	"github.com/Karol-96/arts-sell/core/user"
	"github.com/Karol-96/arts-sell/validate"
	"github.com/alexedwards/scs/v2"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

// HandleSignup registers a new account with the given role. It is mounted
// twice: customer registration and artist registration.
func HandleSignup(db *sqlx.DB, session *scs.SessionManager, role string) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var un user.UserNew
		if err := web.Decode(w, r, &un); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(un); err != nil {
			return weberr.BadRequest(fmt.Errorf("validating data: %w", err))
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(un.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("generating password hash: %w", err)
		}

		now := time.Now().UTC()
		usr := user.User{
			ID:           validate.GenerateID(),
			Role:         role,
			Username:     un.Username,
			Firstname:    un.Firstname,
			Lastname:     un.Lastname,
			Email:        un.Email,
			PasswordHash: hash,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if err := user.Create(ctx, db, usr); err != nil {
			return weberr.BadRequest(fmt.Errorf("creating user: %w", err))
		}

		return web.Respond(ctx, w, usr, http.StatusCreated)
	}
}

type credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func HandleLogin(db *sqlx.DB, session *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var creds credentials
		if err := web.Decode(w, r, &creds); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(creds); err != nil {
			return weberr.BadRequest(fmt.Errorf("validating data: %w", err))
		}

		usr, err := user.FetchByUsername(ctx, db, creds.Username)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotAuthorized(errors.New("invalid username or password"))
			}
			return fmt.Errorf("fetching user[%s]: %w", creds.Username, err)
		}

		if !usr.CheckPassword(creds.Password) {
			return weberr.NotAuthorized(errors.New("invalid username or password"))
		}

		// Renew the token to prevent session fixation.
		if err := session.RenewToken(ctx); err != nil {
			return fmt.Errorf("renewing session token: %w", err)
		}

		session.Put(ctx, userIDKey, usr.ID)
		session.Put(ctx, roleKey, usr.Role)

		return web.Respond(ctx, w, usr, http.StatusOK)
	}
}

func HandleLogout(session *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		if err := session.Destroy(ctx); err != nil {
			return fmt.Errorf("destroying session: %w", err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

// login is used by the oauth callback to open a session for an already
// verified identity.
func login(ctx context.Context, session *scs.SessionManager, usr user.User) error {
	if err := session.RenewToken(ctx); err != nil {
		return fmt.Errorf("renewing session token: %w", err)
	}

	session.Put(ctx, userIDKey, usr.ID)
	session.Put(ctx, roleKey, usr.Role)
	return nil
}
