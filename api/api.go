package api

import (
	"context"
	"net/http"
	"time"

	"github.com/Karol-96/arts-sell/api/middleware"
	"github.com/Karol-96/arts-sell/api/web"
	"github.com/Karol-96/arts-sell/config"
	"github.com/Karol-96/arts-sell/core/artwork"
	"github.com/Karol-96/arts-sell/core/auth"
	"github.com/Karol-96/arts-sell/core/cart"
	"github.com/Karol-96/arts-sell/core/checkout"
	"github.com/Karol-96/arts-sell/core/claims"
	"github.com/Karol-96/arts-sell/core/order"
	"github.com/Karol-96/arts-sell/core/payment"
	"github.com/Karol-96/arts-sell/core/rental"
	"github.com/Karol-96/arts-sell/core/user"
	"github.com/Karol-96/arts-sell/rate"
	"github.com/alexedwards/scs/v2"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type APIConfig struct {
	CorsOrigin       string
	Log              logrus.FieldLogger
	DB               *sqlx.DB
	Session          *scs.SessionManager
	Authorizer       payment.Authorizer
	Checkout         config.Checkout
	Providers        map[string]auth.Provider
	LoginRedirectURL string
}

type api struct {
	*mux.Router
	mw  []web.Middleware
	log logrus.FieldLogger
}

func APIMux(cfg APIConfig) http.Handler {
	a := &api{
		Router: mux.NewRouter(),
		log:    cfg.Log,
	}

	a.mw = append(a.mw, auth.LoadAndSave(cfg.Session))
	a.mw = append(a.mw, middleware.RequestID())
	a.mw = append(a.mw, middleware.Logger(cfg.Log))
	a.mw = append(a.mw, middleware.Errors(cfg.Log))
	a.mw = append(a.mw, middleware.Panics())

	if cfg.CorsOrigin != "" {
		a.mw = append(a.mw, middleware.Cors(cfg.CorsOrigin))

		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusNoContent)
			return nil
		}

		a.Handle(http.MethodOptions, "/{path:.*}", h)
	}

	authen := auth.Authenticate(cfg.Session)
	artist := auth.Artist(cfg.Session)
	admin := auth.Admin(cfg.Session)

	// One bucket per client for the abuse-prone endpoints.
	limit := middleware.RateLimit(rate.NewLimiter(10, 30, rate.Every(time.Second)))

	a.Handle(http.MethodPost, "/auth/signup", auth.HandleSignup(cfg.DB, cfg.Session, claims.RoleCustomer))
	a.Handle(http.MethodPost, "/auth/signup/artist", auth.HandleSignup(cfg.DB, cfg.Session, claims.RoleArtist))
	a.Handle(http.MethodPost, "/auth/login", auth.HandleLogin(cfg.DB, cfg.Session), limit)
	a.Handle(http.MethodPost, "/auth/logout", auth.HandleLogout(cfg.Session), authen)
	a.Handle(http.MethodGet, "/auth/oauth-login/{provider}", auth.HandleOauthLogin(cfg.Session, cfg.Providers))
	a.Handle(http.MethodGet, "/auth/oauth-callback/{provider}", auth.HandleOauthCallback(cfg.DB, cfg.Session, cfg.Providers, cfg.LoginRedirectURL))

	a.Handle(http.MethodGet, "/users/current", user.HandleShowCurrent(cfg.DB), authen)
	a.Handle(http.MethodPut, "/users/current", user.HandleUpdateProfile(cfg.DB), authen)
	a.Handle(http.MethodGet, "/users/{id}", user.HandleShow(cfg.DB), authen)

	a.Handle(http.MethodGet, "/artworks/owned", artwork.HandleListOwned(cfg.DB), artist)
	a.Handle(http.MethodGet, "/artworks/{id}", artwork.HandleShow(cfg.DB))
	a.Handle(http.MethodGet, "/artworks", artwork.HandleList(cfg.DB))
	a.Handle(http.MethodPost, "/artworks", artwork.HandleCreate(cfg.DB), artist)
	a.Handle(http.MethodPut, "/artworks/{id}", artwork.HandleUpdate(cfg.DB), artist)

	a.Handle(http.MethodGet, "/cart", cart.HandleShow(cfg.DB), authen)
	a.Handle(http.MethodDelete, "/cart", cart.HandleDelete(cfg.DB), authen)
	a.Handle(http.MethodPut, "/cart/items", cart.HandleCreateItem(cfg.DB), authen)
	a.Handle(http.MethodDelete, "/cart/items/{artwork_id}", cart.HandleDeleteItem(cfg.DB), authen)

	core := checkout.New(
		cfg.DB,
		cfg.Authorizer,
		checkout.Policy{ShippingFee: cfg.Checkout.ShippingFee, TaxPercent: cfg.Checkout.TaxPercent},
		time.Duration(cfg.Checkout.RentalTermDays)*24*time.Hour,
	)
	a.Handle(http.MethodPost, "/orders/checkout", checkout.HandleCheckout(core), authen, limit)

	a.Handle(http.MethodGet, "/orders/{id}", order.HandleShow(cfg.DB), authen)
	a.Handle(http.MethodGet, "/orders", order.HandleList(cfg.DB), authen)

	a.Handle(http.MethodGet, "/rentals", rental.HandleList(cfg.DB), authen)
	a.Handle(http.MethodPut, "/rentals/{id}/extend", rental.HandleExtend(cfg.DB, cfg.Checkout.RentalTermDays), authen)
	a.Handle(http.MethodPut, "/rentals/{id}/return", rental.HandleReturn(cfg.DB), admin)

	return a.Router
}

func (a *api) Handle(method string, path string, handler web.Handler, mw ...web.Middleware) {
	handler = web.WrapMiddleware(mw, handler)
	handler = web.WrapMiddleware(a.mw, handler)

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := handler(ctx, w, r); err != nil {
			a.log.WithFields(logrus.Fields{
				"req_id":  middleware.ContextRequestID(ctx),
				"message": err,
			}).Error("ERROR")
		}
	})

	a.Router.Handle(path, h).Methods(method)
}
