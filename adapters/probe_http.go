package adapters

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"deliverygateway/helpers"
)

// HTTPProbe checks liveness with GET <scheme>://<address><path>; any 2xx is alive.
type HTTPProbe struct {
	client *http.Client
	scheme string
	path   string
}

// NewHTTPProbe creates an HTTPProbe. Panics on nil client or empty path.
//
// Parameters: client — HTTP client, the probe deadline comes from the Check context; scheme — empty means
// "http"; path — health path, a leading "/" is added when missing.
//
// Called from cmd/gateway for services with probe type http.
func NewHTTPProbe(client *http.Client, scheme, path string) *HTTPProbe {
	path = helpers.StrPanic(path, "adapters.probe_http.go: path is required")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if scheme == "" {
		scheme = "http"
	}
	return &HTTPProbe{
		client: helpers.NilPanic(client, "adapters.probe_http.go: http client is required"),
		scheme: scheme,
		path:   path,
	}
}

// Check implements interfaces.Probe.
func (p *HTTPProbe) Check(ctx context.Context, address string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.scheme+"://"+address+p.path, nil)
	if err != nil {
		return err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("health check %s%s returned %d", address, p.path, resp.StatusCode)
	}
	return nil
}
