// Package httpkit gives modules the handler adapters and route helpers they
// need without importing internal/platform/net/http directly
package httpkit

import (
	"net/http"

	phttp "replyguard/internal/platform/net/http"
	"replyguard/internal/platform/net/http/bind"
)

type (
	// Envelope is the body every api response is wrapped in
	Envelope = phttp.Envelope

	// Response is what return-style handlers hand back
	Response = phttp.Response

	// Handler is the platform handler type
	Handler = phttp.Handler

	// Router is the platform router seam
	Router = phttp.Router
)

// JSON binds and validates the body into T before calling fn
func JSON[T any](fn func(*http.Request, T) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return phttp.Error(err)
		}
		return reply(fn(r, in))
	})
}

// Call adapts a handler that reads no body
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) Response { return reply(fn(r)) })
}

// reply wraps out in a 200 unless fn already built its own Response
func reply(out any, err error) Response {
	if err != nil {
		return phttp.Error(err)
	}
	if resp, ok := out.(Response); ok {
		return resp
	}
	return phttp.OK(out)
}
