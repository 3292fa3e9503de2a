package module

import (
	"time"

	"replyguard/internal/platform/config"
)

// Options holds configuration settings for the auth module
type Options struct {
	JWTSecret    string
	JWTTTL       time.Duration
	StateTTL     time.Duration
	CookieSecure bool

	FrontendURL string
	BackendURL  string

	ClientID     string
	ClientSecret string
	AuthURL      string
	TokenURL     string
	Timeout      time.Duration
}

// RedirectURL is where the provider sends the browser after consent
func (o Options) RedirectURL() string { return o.BackendURL + "/api/v1/auth/callback" }

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	a := cfg.Prefix("AUTH_")
	xc := cfg.Prefix("X_")
	api := cfg.Prefix("CORE_API_")
	return Options{
		JWTSecret:    a.MustString("JWT_SECRET"),
		JWTTTL:       a.MayDuration("JWT_TTL", 7*24*time.Hour),
		StateTTL:     a.MayDuration("STATE_TTL", 10*time.Minute),
		CookieSecure: a.MayBool("COOKIE_SECURE", false),

		FrontendURL: api.MayString("FRONTEND_URL", "http://localhost:3000"),
		BackendURL:  api.MayString("BACKEND_URL", "http://localhost:4000"),

		ClientID:     xc.MayString("CLIENT_ID", ""),
		ClientSecret: xc.MayString("CLIENT_SECRET", ""),
		AuthURL:      xc.MayString("AUTH_URL", "https://twitter.com/i/oauth2/authorize"),
		TokenURL:     xc.MayString("TOKEN_URL", "https://api.twitter.com/2/oauth2/token"),
		Timeout:      xc.MayDuration("TIMEOUT", 15*time.Second),
	}
}
