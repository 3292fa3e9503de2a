// Package http provides http transport for auth
package http

import (
	stdhttp "net/http"
	"net/url"
	"time"

	"replyguard/internal/modkit/httpkit"
	"replyguard/internal/platform/logger"
	"replyguard/internal/platform/net/middleware"
	"replyguard/internal/services/auth/domain"
	svc "replyguard/internal/services/auth/service"
)

// Config shapes the browser facing side of the login flow
type Config struct {
	FrontendURL  string
	CookieSecure bool
}

// Register mounts auth endpoints on the given router
func Register(r httpkit.Router, s svc.Service, port middleware.AuthPort, c Config) {
	h := &handlers{svc: s, cfg: c}

	// browser redirects, outside the json envelope
	r.Get("/login", h.login)
	r.Get("/callback", h.callback)

	httpkit.Post(r, "/logout", h.logout)

	httpkit.Protected(r, port, func(pr httpkit.Router) {
		httpkit.Get(pr, "/me", h.me)
	})
}

type handlers struct {
	svc svc.Service
	cfg Config
}

// swagger:route GET /auth/login Auth authLogin
// @Summary Start the platform login
// @Tags Auth
// @Success 302 "redirect to the authorization page"
// @Router /auth/login [get]
func (h *handlers) login(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	target, err := h.svc.BeginLogin(r.Context())
	if err != nil {
		logger.C(r.Context()).Error().Err(err).Msg("begin login")
		h.toFrontend(w, r, url.Values{"error": {"auth_failed"}})
		return
	}
	stdhttp.Redirect(w, r, target, stdhttp.StatusFound)
}

// swagger:route GET /auth/callback Auth authCallback
// @Summary Finish the platform login
// @Tags Auth
// @Param code query string false "authorization code"
// @Param state query string false "login state"
// @Param error query string false "provider error"
// @Success 302 "redirect to the frontend with a token or an error"
// @Router /auth/callback [get]
func (h *handlers) callback(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	q := r.URL.Query()
	if e := q.Get("error"); e != "" {
		h.toFrontend(w, r, url.Values{"error": {e}})
		return
	}
	code, state := q.Get("code"), q.Get("state")
	if code == "" || state == "" {
		h.toFrontend(w, r, url.Values{"error": {"missing_params"}})
		return
	}

	token, err := h.svc.CompleteLogin(r.Context(), code, state)
	switch {
	case svc.IsInvalidState(err):
		h.toFrontend(w, r, url.Values{"error": {"invalid_state"}})
		return
	case err != nil:
		logger.C(r.Context()).Warn().Err(err).Msg("login callback failed")
		h.toFrontend(w, r, url.Values{"error": {"auth_failed"}})
		return
	}

	stdhttp.SetCookie(w, h.cookie(token, h.svc.TokenTTL()))
	h.toFrontend(w, r, url.Values{"auth": {"success"}, "token": {token}})
}

// swagger:route GET /auth/me Auth authMe
// @Summary Current user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.User "ok"
// @Failure 401 {object} httpkit.Envelope "unauthorized"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /auth/me [get]
func (h *handlers) me(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	return h.svc.ByID(r.Context(), uid)
}

// swagger:route POST /auth/logout Auth authLogout
// @Summary Clear the session cookie
// @Tags Auth
// @Produce json
// @Success 200 {object} domain.LogoutResult "ok"
// @Router /auth/logout [post]
func (h *handlers) logout(_ *stdhttp.Request) (any, error) {
	hdr := stdhttp.Header{}
	hdr.Add("Set-Cookie", h.cookie("", -1).String())
	return httpkit.Response{
		Status: stdhttp.StatusOK,
		Body:   domain.LogoutResult{Success: true},
		Header: hdr,
	}, nil
}

// cookie builds the session cookie, a negative ttl expires it
func (h *handlers) cookie(value string, ttl time.Duration) *stdhttp.Cookie {
	c := &stdhttp.Cookie{
		Name:     httpkit.SessionCookie,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: stdhttp.SameSiteLaxMode,
	}
	if ttl < 0 {
		c.MaxAge = -1
		c.Expires = time.Unix(0, 0)
		return c
	}
	c.MaxAge = int(ttl.Seconds())
	return c
}

func (h *handlers) toFrontend(w stdhttp.ResponseWriter, r *stdhttp.Request, q url.Values) {
	u, err := url.Parse(h.cfg.FrontendURL)
	if err != nil || h.cfg.FrontendURL == "" {
		u = &url.URL{Path: "/"}
	}
	merged := u.Query()
	for k, vs := range q {
		for _, v := range vs {
			merged.Add(k, v)
		}
	}
	u.RawQuery = merged.Encode()
	stdhttp.Redirect(w, r, u.String(), stdhttp.StatusFound)
}
