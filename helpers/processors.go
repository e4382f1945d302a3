package helpers

import (
	"context"
	"net/http"

	"deliverygateway/domain"

	"github.com/gofrs/uuid/v5"
)

// HopByHopProcessor drops connection-scoped headers before forwarding.
type HopByHopProcessor struct{}

func (HopByHopProcessor) Process(_ context.Context, _ domain.ProxyRequest, headers http.Header) (http.Header, error) {
	out := headers.Clone()
	RemoveHopByHop(out)
	return out, nil
}

// ForwardedProcessor appends the client address to X-Forwarded-For and sets X-Forwarded-Host and
// X-Forwarded-Proto unless an earlier proxy already did.
type ForwardedProcessor struct{}

func (ForwardedProcessor) Process(_ context.Context, req domain.ProxyRequest, headers http.Header) (http.Header, error) {
	out := headers.Clone()
	if out == nil {
		out = http.Header{}
	}
	if ip := ClientIP(req.RemoteAddr); ip != "" {
		if prior, ok := GetHeaderValue(out, HeaderForwardedFor); ok {
			ip = prior + ", " + ip
		}
		out.Set(HeaderForwardedFor, ip)
	}
	if _, ok := GetHeaderValue(out, HeaderForwardedHost); !ok && req.Host != "" {
		out.Set(HeaderForwardedHost, req.Host)
	}
	if _, ok := GetHeaderValue(out, HeaderForwardedProto); !ok {
		proto := "http"
		if req.TLS {
			proto = "https"
		}
		out.Set(HeaderForwardedProto, proto)
	}
	return out, nil
}

// RequestIDProcessor keeps an inbound X-Request-Id and generates a UUIDv4 when there is none.
type RequestIDProcessor struct {
	newID func() (uuid.UUID, error)
}

// NewRequestIDProcessor creates the processor. Panics on nil newID.
//
// Parameter newID — id generator, uuid.NewV4 in production.
//
// Called from cmd/gateway when building the header chain.
func NewRequestIDProcessor(newID func() (uuid.UUID, error)) *RequestIDProcessor {
	return &RequestIDProcessor{newID: NilPanic(newID, "helpers.processors.go: newID is required")}
}

// Process returns internal_server_error when the generator fails.
func (p *RequestIDProcessor) Process(_ context.Context, _ domain.ProxyRequest, headers http.Header) (http.Header, error) {
	out := headers.Clone()
	if out == nil {
		out = http.Header{}
	}
	if _, ok := GetHeaderValue(out, HeaderRequestID); ok {
		return out, nil
	}
	id, err := p.newID()
	if err != nil {
		return nil, domain.NewInternalServerError("failed to generate request id", err)
	}
	out.Set(HeaderRequestID, id.String())
	return out, nil
}
