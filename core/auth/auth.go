// Package auth holds session handling, login/signup handlers and the
// role-gating middlewares.
package auth

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Karol-96/arts-sell/api/web"
	"github.com/Karol-96/arts-sell/api/weberr"
	"github.com/Karol-96/arts-sell/core/claims"
	"github.com/alexedwards/scs/v2"
)

const (
	userIDKey = "user_id"
	roleKey   = "role"
)

// LoadAndSave adapts the scs session lifecycle to the web.Handler chain. The
// response is buffered so the session cookie can still be written after the
// handler has run.
func LoadAndSave(sm *scs.SessionManager) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			var token string
			if cookie, err := r.Cookie(sm.Cookie.Name); err == nil {
				token = cookie.Value
			}

			ctx, err := sm.Load(ctx, token)
			if err != nil {
				return weberr.InternalError(err)
			}

			bw := &bufferedWriter{ResponseWriter: w}
			if err := handler(ctx, bw, r); err != nil {
				return err
			}

			switch sm.Status(ctx) {
			case scs.Modified:
				token, expiry, err := sm.Commit(ctx)
				if err != nil {
					return weberr.InternalError(err)
				}
				sm.WriteSessionCookie(ctx, w, token, expiry)

			case scs.Destroyed:
				sm.WriteSessionCookie(ctx, w, "", time.Time{})
			}

			w.Header().Add("Vary", "Cookie")
			return bw.flush()
		}
		return h
	}
	return m
}

type bufferedWriter struct {
	http.ResponseWriter
	buf  bytes.Buffer
	code int
}

func (bw *bufferedWriter) Write(b []byte) (int, error) { return bw.buf.Write(b) }

func (bw *bufferedWriter) WriteHeader(code int) { bw.code = code }

func (bw *bufferedWriter) flush() error {
	if bw.code != 0 {
		bw.ResponseWriter.WriteHeader(bw.code)
	}
	_, err := bw.ResponseWriter.Write(bw.buf.Bytes())
	return err
}

// Authenticate rejects requests without a logged-in session and stores the
// session identity as claims in the context.
func Authenticate(sm *scs.SessionManager) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			userID := sm.GetString(ctx, userIDKey)
			if userID == "" {
				return weberr.NotAuthorized(errors.New("user not authenticated"))
			}

			ctx = claims.Set(ctx, claims.Claims{
				UserID: userID,
				Role:   sm.GetString(ctx, roleKey),
			})

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}

// Admin allows only admin sessions through.
func Admin(sm *scs.SessionManager) web.Middleware {
	return role(sm, claims.RoleAdmin)
}

// Artist allows artist and admin sessions through.
func Artist(sm *scs.SessionManager) web.Middleware {
	return role(sm, claims.RoleArtist, claims.RoleAdmin)
}

func role(sm *scs.SessionManager, allowed ...string) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			userID := sm.GetString(ctx, userIDKey)
			if userID == "" {
				return weberr.NotAuthorized(errors.New("user not authenticated"))
			}

			got := sm.GetString(ctx, roleKey)
			ok := false
			for _, want := range allowed {
				if got == want {
					ok = true
					break
				}
			}
			if !ok {
				return weberr.NotAuthorized(errors.New("user role is not allowed on this resource"))
			}

			ctx = claims.Set(ctx, claims.Claims{UserID: userID, Role: got})
			return handler(ctx, w, r)
		}
		return h
	}
	return m
}
