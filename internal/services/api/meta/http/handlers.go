// Package http serves liveness, readiness and build info
package http

import (
	"context"
	"net/http"
	"time"

	"replyguard/internal/core/version"
	"replyguard/internal/modkit/httpkit"
)

// Pinger is satisfied by the store adapters
type Pinger interface {
	Ping(context.Context) error
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	PG          any
	// CH is optional, a nil value reports skipped without degrading readiness
	CH any
	// Modules lists what the api mounted, nil reports an empty list
	Modules func() []string
}

const readyTimeout = 2 * time.Second

type handlers struct {
	deps Deps
	now  func() time.Time
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d, now: time.Now}
	for path, fn := range map[string]func(*http.Request) (any, error){
		"/health":  h.health,
		"/ready":   h.ready,
		"/version": h.version,
		"/service": h.service,
		"/modules": h.modules,
	} {
		httpkit.Get(r, path, fn)
	}
}

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"replyguard-api"`
	Started string `json:"started" example:"2026-10-18T09:00:00Z"`
	Now     string `json:"now"     example:"2026-10-18T09:05:00Z"`
}

// ReadyCheck is one dependency probe, Status is ok, fail or skipped
type ReadyCheck struct {
	Name   string `json:"name"   example:"pg"`
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"connection refused"`
}

// ReadyResponse rolls the probes up into ok, degraded or fail
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"`
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-10-18T09:05:00Z"`
}

// ServiceResponse carries uptime in seconds
type ServiceResponse struct {
	Name    string `json:"name"    example:"replyguard-api"`
	Started string `json:"started" example:"2026-10-18T09:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// ModulesResponse lists the mounted modules
type ModulesResponse struct {
	Modules []string `json:"modules" example:"auth,keywords,replies"`
}

// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse "ok"
// @Router /meta/health [get]
func (h *handlers) health(*http.Request) (any, error) {
	return HealthResponse{OK: true, Service: h.deps.ServiceName, Started: stamp(h.deps.StartedAt), Now: stamp(h.now())}, nil
}

// @Summary Readiness probe with dependency checks
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse "ok"
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	pg, ch := probe(ctx, "pg", h.deps.PG), probe(ctx, "ch", h.deps.CH)

	// postgres holds the ledger, clickhouse only the decision audit
	status := "ok"
	if pg.Status != "ok" {
		status = "fail"
	} else if ch.Status == "fail" {
		status = "degraded"
	}
	return ReadyResponse{Status: status, Checks: []ReadyCheck{pg, ch}, Now: stamp(h.now())}, nil
}

func probe(ctx context.Context, name string, dep any) ReadyCheck {
	c := ReadyCheck{Name: name, Status: "ok"}
	switch p := dep.(type) {
	case nil:
		c.Status = "skipped"
	case Pinger:
		if err := p.Ping(ctx); err != nil {
			c.Status, c.Error = "fail", err.Error()
		}
	}
	return c
}

// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo "ok"
// @Router /meta/version [get]
func (h *handlers) version(*http.Request) (any, error) { return version.Info(), nil }

// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse "ok"
// @Router /meta/service [get]
func (h *handlers) service(*http.Request) (any, error) {
	up := h.now().Sub(h.deps.StartedAt)
	return ServiceResponse{Name: h.deps.ServiceName, Started: stamp(h.deps.StartedAt), Uptime: int64(up.Seconds())}, nil
}

// @Summary Mounted modules
// @Tags Meta
// @Produce json
// @Success 200 {object} ModulesResponse "ok"
// @Router /meta/modules [get]
func (h *handlers) modules(*http.Request) (any, error) {
	out := ModulesResponse{Modules: []string{}}
	if h.deps.Modules != nil {
		out.Modules = append(out.Modules, h.deps.Modules()...)
	}
	return out, nil
}
