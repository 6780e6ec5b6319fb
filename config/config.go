package config

import (
	"time"

	"github.com/Karol-96/arts-sell/database"
)

type Config struct {
	Web      Web
	DB       database.Config
	Cors     Cors
	Oauth    Oauth
	Checkout Checkout
}

type Web struct {
	Address         string        `conf:"default:0.0.0.0:8000"`
	ReadTimeout     time.Duration `conf:"default:5s"`
	WriteTimeout    time.Duration `conf:"default:10s"`
	IdleTimeout     time.Duration `conf:"default:120s"`
	ShutdownTimeout time.Duration `conf:"default:20s"`
}

type Cors struct {
	Origin string `conf:"default:"`
}

type Oauth struct {
	DiscoveryTimeout time.Duration `conf:"default:30s"`
	LoginRedirectURL string        `conf:"default:http://localhost:3000"`
	Google           OauthProvider
}

type OauthProvider struct {
	Client      string `conf:"default:"`
	Secret      string `conf:"default:,mask"`
	URL         string `conf:"default:https://accounts.google.com"`
	RedirectURL string `conf:"default:http://localhost:8000/auth/oauth-callback/google"`
}

// Checkout holds the pricing and rental policy. Amounts are in cents.
type Checkout struct {
	ShippingFee    int `conf:"default:4500"`
	TaxPercent     int `conf:"default:8"`
	RentalTermDays int `conf:"default:30"`
}
