// Package http receives platform webhook deliveries
// responses here are plain json, outside the api envelope
package http

import (
	"context"
	"io"
	stdhttp "net/http"
	"time"

	"replyguard/internal/modkit/httpkit"
	"replyguard/internal/platform/logger"
	pnet "replyguard/internal/platform/net"
	phttp "replyguard/internal/platform/net/http"
	"replyguard/internal/services/webhook/domain"
	svc "replyguard/internal/services/webhook/service"
)

// maxBody caps a delivery
const maxBody = 1 << 20

// SignatureHeader carries the delivery hmac
const SignatureHeader = "x-twitter-webhooks-signature"

// Config controls the receiver
type Config struct {
	// Secret is the consumer secret used for crc and signatures
	Secret          string
	VerifySignature bool
	// ProcessTimeout bounds the detached processing of one delivery
	ProcessTimeout time.Duration
}

// Register mounts the crc and delivery endpoints
func Register(r httpkit.Router, h domain.EventHandler, c Config) {
	mount(r, &handlers{events: h, cfg: c, spawn: func(fn func()) { go fn() }})
}

func mount(r httpkit.Router, h *handlers) {
	r.Get("/", h.crc)
	r.Post("/", h.deliver)
}

type handlers struct {
	events domain.EventHandler
	cfg    Config
	spawn  func(func())
}

type errorBody struct {
	Error string `json:"error"`
}

// swagger:route GET /webhook/twitter Webhook webhookCRC
// @Summary Answer the platform crc challenge
// @Tags Webhook
// @Produce json
// @Param crc_token query string true "challenge token"
// @Success 200 {object} domain.CRCResponse "ok"
// @Router /webhook/twitter [get]
func (h *handlers) crc(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	token := r.URL.Query().Get("crc_token")
	if token == "" {
		phttp.JSON(w, stdhttp.StatusBadRequest, errorBody{Error: "Missing crc_token"})
		return
	}
	logger.C(r.Context()).Debug().Msg("crc challenge answered")
	phttp.JSON(w, stdhttp.StatusOK, domain.CRCResponse{ResponseToken: svc.CRC(h.cfg.Secret, token)})
}

// swagger:route POST /webhook/twitter Webhook webhookDeliver
// @Summary Receive an account activity delivery
// @Tags Webhook
// @Accept json
// @Success 200 "acknowledged before processing"
// @Failure 403 "bad signature"
// @Router /webhook/twitter [post]
func (h *handlers) deliver(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	log := logger.C(r.Context())

	body, err := io.ReadAll(stdhttp.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		log.Warn().Err(err).Msg("webhook body read failed")
		w.WriteHeader(stdhttp.StatusOK)
		return
	}
	if h.cfg.VerifySignature && !svc.ValidSignature(h.cfg.Secret, body, r.Header.Get(SignatureHeader)) {
		log.Warn().Msg("webhook signature rejected")
		w.WriteHeader(stdhttp.StatusForbidden)
		return
	}

	w.WriteHeader(stdhttp.StatusOK)

	// the request context ends with the response, carry only its request id
	bg := logger.WithRequest(context.Background(), pnet.RequestID(r.Context()), "")
	timeout := h.cfg.ProcessTimeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	h.spawn(func() {
		ctx, cancel := context.WithTimeout(bg, timeout)
		defer cancel()
		h.events.HandleEvent(ctx, body)
	})
}
