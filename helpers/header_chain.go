package helpers

import (
	"context"
	"net/http"
	"strconv"

	"deliverygateway/domain"
	"deliverygateway/interfaces"
)

// HeaderProcessorChain is a slice of HeaderProcessors run in sequence; each processor receives
// the output headers of the previous. Composes hop-by-hop stripping, X-Forwarded-* and X-Request-Id.
// Implements interfaces.HeaderProcessor.
type HeaderProcessorChain []interfaces.HeaderProcessor

// NewHeaderProcessorChain creates a chain of header processors from the given list. Panics on nil slice or nil element (fail-fast at startup).
//
// Parameters: processors — ordered list of HeaderProcessor implementations (first gets a copy of the inbound headers, next gets previous result).
//
// Returns: HeaderProcessorChain implementing interfaces.HeaderProcessor.
//
// Called from cmd/gateway when building the router.
func NewHeaderProcessorChain(processors ...interfaces.HeaderProcessor) HeaderProcessorChain {
	for i, p := range processors {
		if p == nil {
			panic("helpers.header_chain.go: processor at index " + strconv.Itoa(i) + " is required")
		}
	}
	return HeaderProcessorChain(NilPanic(processors, "helpers.header_chain.go: processors is required"))
}

// Process runs all processors in order: output of one is input to the next. Input headers are not mutated (work is done on a copy). Returns the first processor error.
//
// Parameters: ctx — request context; req — inbound request; headers — headers to rewrite (nil allowed).
//
// Returns: (outgoing headers, nil) when all processors succeed; (nil, error) on any processor error.
//
// Called from service.Router.Route after Match and before the first attempt.
func (c HeaderProcessorChain) Process(ctx context.Context, req domain.ProxyRequest, headers http.Header) (http.Header, error) {
	out := headers.Clone()
	if out == nil {
		out = http.Header{}
	}
	for _, p := range c {
		next, err := p.Process(ctx, req, out)
		if err != nil {
			return nil, err
		}
		out = next
	}
	return out, nil
}
