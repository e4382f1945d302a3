package domain

import "net/http"

// ProxyRequest is an inbound request as seen by the router. Body is fully buffered so that a failed
// attempt can be replayed against the next candidate.
type ProxyRequest struct {
	Method     string
	Path       string
	RawQuery   string
	Host       string
	RemoteAddr string
	TLS        bool
	Header     http.Header
	Body       []byte
}

// ProxyResponse is the upstream response relayed to the client.
type ProxyResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}
