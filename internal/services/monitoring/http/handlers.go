// Package http provides http transport for monitoring
package http

import (
	stdhttp "net/http"

	"replyguard/internal/modkit/httpkit"
	"replyguard/internal/services/monitoring/domain"
	svc "replyguard/internal/services/monitoring/service"
)

// Register mounts monitoring endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/status", h.status)
	httpkit.PostJSON[domain.ToggleInput](r, "/toggle", h.toggle)
	httpkit.Post(r, "/scan", h.scan)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /monitoring/status Monitoring monitoringStatus
// @Summary Is monitoring enabled
// @Tags Monitoring
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.Status "ok"
// @Failure 404 {object} httpkit.Envelope "user not found"
// @Router /monitoring/status [get]
func (h *handlers) status(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Status(r.Context(), uid)
}

// swagger:route POST /monitoring/toggle Monitoring monitoringToggle
// @Summary Turn monitoring on or off
// @Tags Monitoring
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body domain.ToggleInput true "Switch"
// @Success 200 {object} domain.Status "ok"
// @Failure 400 {object} httpkit.Envelope "enabled is required"
// @Router /monitoring/toggle [post]
func (h *handlers) toggle(r *stdhttp.Request, in domain.ToggleInput) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Toggle(r.Context(), uid, *in.Enabled)
}

// swagger:route POST /monitoring/scan Monitoring monitoringScan
// @Summary Scan recent mentions and conversations now
// @Tags Monitoring
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.ScanResult "ok"
// @Router /monitoring/scan [post]
func (h *handlers) scan(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Scan(r.Context(), uid)
}
