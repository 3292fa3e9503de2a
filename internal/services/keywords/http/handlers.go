// Package http provides http transport for keywords
package http

import (
	stdhttp "net/http"

	"replyguard/internal/modkit/httpkit"
	"replyguard/internal/services/keywords/domain"
	svc "replyguard/internal/services/keywords/service"
)

// Register mounts keyword endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/", h.list)
	httpkit.PostJSON[domain.AddInput](r, "/", h.add)
	httpkit.Delete(r, "/{id}", h.remove)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /keywords Keywords keywordsList
// @Summary List keywords, newest first
// @Tags Keywords
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.List "ok"
// @Router /keywords [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	return h.svc.List(r.Context(), uid)
}

// swagger:route POST /keywords Keywords keywordsAdd
// @Summary Add comma separated keywords
// @Tags Keywords
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body domain.AddInput true "Keywords"
// @Success 200 {object} domain.AddResult "ok"
// @Failure 400 {object} httpkit.Envelope "no valid keywords"
// @Router /keywords [post]
func (h *handlers) add(r *stdhttp.Request, in domain.AddInput) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Add(r.Context(), uid, in.Keywords)
}

// swagger:route DELETE /keywords/{id} Keywords keywordsDelete
// @Summary Delete a keyword
// @Tags Keywords
// @Produce json
// @Security BearerAuth
// @Param id path string true "keyword id"
// @Success 200 {object} domain.DeleteResult "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /keywords/{id} [delete]
func (h *handlers) remove(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	if err := h.svc.Delete(r.Context(), uid, httpkit.Param(r, "id")); err != nil {
		return nil, err
	}
	return domain.DeleteResult{Success: true}, nil
}
