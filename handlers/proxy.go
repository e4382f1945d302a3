// Package handlers binds the gateway and catalog services to echo.
package handlers

import (
	"io"
	"net/http"

	"deliverygateway/domain"
	"deliverygateway/helpers"
	"deliverygateway/interfaces"

	"github.com/go-kit/log"
	"github.com/labstack/echo/v4"
)

// DefaultMaxBodyBytes bounds a buffered inbound body.
const DefaultMaxBodyBytes = 4 << 20

// ProxyHandler turns an echo request into a domain.ProxyRequest, hands it to the router and writes the
// upstream response back unchanged.
type ProxyHandler struct {
	forwarder    interfaces.Forwarder
	maxBodyBytes int64
	logger       log.Logger
}

// NewProxyHandler panics on nil forwarder or logger; maxBodyBytes <= 0 means DefaultMaxBodyBytes.
func NewProxyHandler(forwarder interfaces.Forwarder, maxBodyBytes int64, logger log.Logger) *ProxyHandler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return &ProxyHandler{
		forwarder:    helpers.NilPanic(forwarder, "handlers.proxy.go: forwarder is required"),
		maxBodyBytes: maxBodyBytes,
		logger:       log.WithPrefix(helpers.NilPanic(logger, "handlers.proxy.go: logger is required"), "component", "ProxyHandler"),
	}
}

// RegisterProxy routes every method and path of e to h.
func RegisterProxy(e *echo.Echo, h *ProxyHandler) {
	e.Any("/*", h.Handle)
}

// Handle buffers the body so the router can replay it on retry. Errors are rendered by the echo error handler.
func (h *ProxyHandler) Handle(ectx echo.Context) error {
	r := ectx.Request()
	body, err := io.ReadAll(io.LimitReader(r.Body, h.maxBodyBytes+1))
	if err != nil {
		return domain.NewBadParameterError("failed to read request body", err)
	}
	if int64(len(body)) > h.maxBodyBytes {
		return domain.NewBadParameterError("request body too large", nil)
	}

	resp, err := h.forwarder.Route(r.Context(), domain.ProxyRequest{
		Method:     r.Method,
		Path:       r.URL.Path,
		RawQuery:   r.URL.RawQuery,
		Host:       r.Host,
		RemoteAddr: r.RemoteAddr,
		TLS:        r.TLS != nil,
		Header:     r.Header,
		Body:       body,
	})
	if err != nil {
		return err
	}

	out := ectx.Response()
	for name, values := range resp.Header {
		for _, v := range values {
			out.Header().Add(name, v)
		}
	}
	out.WriteHeader(resp.StatusCode)
	if r.Method != http.MethodHead && len(resp.Body) > 0 {
		_, err = out.Write(resp.Body)
	}
	return err
}
