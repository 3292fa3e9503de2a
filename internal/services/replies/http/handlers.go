// Package http provides http transport for hidden replies
package http

import (
	stdhttp "net/http"

	"replyguard/internal/modkit/httpkit"
	"replyguard/internal/services/replies/domain"
	svc "replyguard/internal/services/replies/service"
)

// Register mounts reply endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/hidden", h.hidden)
	httpkit.Post(r, "/{id}/unhide", h.unhide)
	httpkit.Get(r, "/stats", h.stats)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /replies/hidden Replies repliesHidden
// @Summary List hidden replies, newest first
// @Tags Replies
// @Produce json
// @Security BearerAuth
// @Param page query int false "page, from 1" default(1)
// @Param limit query int false "page size, at most 100" default(20)
// @Success 200 {object} domain.HiddenPage "ok"
// @Router /replies/hidden [get]
func (h *handlers) hidden(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Hidden(r.Context(), uid, httpkit.QueryInt(r, "page", 1), httpkit.QueryInt(r, "limit", 20))
}

// swagger:route POST /replies/{id}/unhide Replies repliesUnhide
// @Summary Unhide a reply on the platform
// @Tags Replies
// @Produce json
// @Security BearerAuth
// @Param id path string true "hidden reply id"
// @Success 200 {object} domain.UnhideResult "ok"
// @Failure 400 {object} httpkit.Envelope "already unhidden"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /replies/{id}/unhide [post]
func (h *handlers) unhide(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	if err := h.svc.Unhide(r.Context(), uid, httpkit.Param(r, "id")); err != nil {
		return nil, err
	}
	return domain.UnhideResult{Success: true}, nil
}

// swagger:route GET /replies/stats Replies repliesStats
// @Summary Hidden reply and keyword counters
// @Tags Replies
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.Stats "ok"
// @Router /replies/stats [get]
func (h *handlers) stats(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Stats(r.Context(), uid)
}
