package service

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// Scopes requested at login, moderate.write is what allows hiding replies
var Scopes = []string{"tweet.read", "tweet.moderate.write", "users.read", "offline.access"}

// OAuth is the authorization code flow with pkce
type OAuth interface {
	AuthCodeURL(state, verifier string) string
	Exchange(ctx context.Context, code, verifier string) (*oauth2.Token, error)
	Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error)
}

// OAuthConfig configures the platform oauth client
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	AuthURL      string
	TokenURL     string
	RedirectURL  string
	Timeout      time.Duration
}

type oauthClient struct {
	conf *oauth2.Config
	http *http.Client
}

// NewOAuth builds the pkce client, confidential clients send basic auth
func NewOAuth(c OAuthConfig) OAuth {
	if c.Timeout <= 0 {
		c.Timeout = 15 * time.Second
	}
	return &oauthClient{
		conf: &oauth2.Config{
			ClientID:     c.ClientID,
			ClientSecret: c.ClientSecret,
			RedirectURL:  c.RedirectURL,
			Scopes:       Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   c.AuthURL,
				TokenURL:  c.TokenURL,
				AuthStyle: oauth2.AuthStyleInHeader,
			},
		},
		http: &http.Client{Timeout: c.Timeout},
	}
}

func (o *oauthClient) ctx(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, o.http)
}

func (o *oauthClient) AuthCodeURL(state, verifier string) string {
	return o.conf.AuthCodeURL(state, oauth2.S256ChallengeOption(verifier))
}

func (o *oauthClient) Exchange(ctx context.Context, code, verifier string) (*oauth2.Token, error) {
	return o.conf.Exchange(o.ctx(ctx), code, oauth2.VerifierOption(verifier))
}

func (o *oauthClient) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	return o.conf.TokenSource(o.ctx(ctx), &oauth2.Token{RefreshToken: refreshToken}).Token()
}

// expiryOf falls back to two hours, the platform default, when none is sent
func expiryOf(tok *oauth2.Token, now time.Time) time.Time {
	if tok == nil || tok.Expiry.IsZero() {
		return now.Add(2 * time.Hour)
	}
	return tok.Expiry
}
