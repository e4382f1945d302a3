package adapters

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"deliverygateway/domain"
	"deliverygateway/helpers"
)

// HTTPTransport forwards a buffered request to one upstream address over HTTP/1.1.
// Redirects are relayed to the client, never followed.
type HTTPTransport struct {
	client *http.Client
	scheme string
}

// NewHTTPTransport creates an HTTPTransport. Panics on nil client; empty scheme means "http".
//
// Parameters: client — outbound HTTP client, its CheckRedirect is replaced on a copy; scheme — "http" or "https".
//
// Called from cmd/gateway.
func NewHTTPTransport(client *http.Client, scheme string) *HTTPTransport {
	c := *helpers.NilPanic(client, "adapters.transport_http.go: http client is required")
	c.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }
	if scheme == "" {
		scheme = "http"
	}
	return &HTTPTransport{client: &c, scheme: scheme}
}

// RoundTrip sends req to address under ctx and reads the whole response body.
//
// Returns: (response, nil) for any status, hop-by-hop headers removed; (zero, error) when the request could
// not be built, sent or its body read.
func (t *HTTPTransport) RoundTrip(ctx context.Context, address string, req domain.ProxyRequest) (domain.ProxyResponse, error) {
	target := t.scheme + "://" + address + req.Path
	if req.RawQuery != "" {
		target += "?" + req.RawQuery
	}
	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}
	out, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return domain.ProxyResponse{}, err
	}
	if req.Header != nil {
		out.Header = req.Header.Clone()
	}
	out.ContentLength = int64(len(req.Body))

	resp, err := t.client.Do(out)
	if err != nil {
		return domain.ProxyResponse{}, err
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.ProxyResponse{}, err
	}
	header := resp.Header.Clone()
	helpers.RemoveHopByHop(header)
	return domain.ProxyResponse{StatusCode: resp.StatusCode, Header: header, Body: respBody}, nil
}
