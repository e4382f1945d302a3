package interfaces

import (
	"context"
	"net/http"

	"deliverygateway/domain"
)

// HeaderProcessor rewrites the headers of a request before it is forwarded upstream: hop-by-hop
// stripping, X-Forwarded-* and X-Request-Id. Must not mutate headers; returns a copy with modifications.
// An error aborts the request and is returned to the client as-is.
//
// Implemented by the processors in helpers and composed in helpers.HeaderProcessorChain.
// Called from service.Router.Route once per request, before the first attempt.
//
//go:generate moq -stub -out mock/header_processor.go -pkg mock . HeaderProcessor
type HeaderProcessor interface {
	// Process returns the outgoing headers.
	// Parameters: ctx — request context; req — the inbound request (client address, host, TLS); headers — output
	// of the previous processor, initially a copy of req.Header.
	Process(ctx context.Context, req domain.ProxyRequest, headers http.Header) (http.Header, error)
}
