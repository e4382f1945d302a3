package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"deliverygateway/domain"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/go-kit/log"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveError(t *testing.T, h *HTTPErrorHandler, method string, err error) (*httptest.ResponseRecorder, ErrResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "/", nil)
	rec := httptest.NewRecorder()
	h.Handler(err, e.NewContext(req, rec))
	var body ErrResponse
	if rec.Body.Len() > 0 {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	}
	return rec, body
}

func TestNewErrorCodeToStatusCodeMaps(t *testing.T) {
	m := NewErrorCodeToStatusCodeMaps()
	require.NotNil(t, m)
	assert.Equal(t, http.StatusBadRequest, m[domain.ErrBadParameter])
	assert.Equal(t, http.StatusNotFound, m[domain.ErrEntityNotFound])
	assert.Equal(t, http.StatusNotFound, m[domain.ErrNoRoute])
	assert.Equal(t, http.StatusServiceUnavailable, m[domain.ErrCircuitOpen])
	assert.Equal(t, http.StatusGatewayTimeout, m[domain.ErrUpstreamTimeout])
	assert.Equal(t, http.StatusBadGateway, m[domain.ErrLoaderFailure])
	assert.Equal(t, http.StatusInternalServerError, m[domain.ErrInternalServerError])
}

func TestHTTPErrorHandler_Handler_GatewayErrors(t *testing.T) {
	key := domain.UpstreamKey{Service: "orders", Address: "a:1"}
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"no_route", domain.NewNoRouteError("/orders/123"), http.StatusNotFound, domain.ErrNoRoute},
		{"unknown_service", domain.NewUnknownServiceError("orders"), http.StatusServiceUnavailable, domain.ErrUnknownService},
		{"upstream_unavailable", domain.NewUpstreamUnavailableError("orders", errConnRefused), http.StatusServiceUnavailable, domain.ErrUpstreamUnavailable},
		{"upstream_timeout", domain.NewUpstreamTimeoutError(key, context.DeadlineExceeded), http.StatusGatewayTimeout, domain.ErrUpstreamTimeout},
		{"bad_parameter", domain.NewBadParameterError("invalid body", nil), http.StatusBadRequest, domain.ErrBadParameter},
		{"wrapped_gateway_error", fmt.Errorf("handler: %w", domain.NewEntityNotFoundError("order not found", nil)), http.StatusNotFound, domain.ErrEntityNotFound},
		{"loader_failure_plain", domain.NewLoaderFailureError("restaurants", errors.New("db down")), http.StatusBadGateway, domain.ErrLoaderFailure},
		{"loader_failure_not_found", domain.NewLoaderFailureError("order:1", domain.NewEntityNotFoundError("order not found", nil)), http.StatusNotFound, domain.ErrEntityNotFound},
		{"plain_error", assert.AnError, http.StatusInternalServerError, domain.ErrInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHTTPErrorHandler(NewErrorCodeToStatusCodeMaps(), log.NewNopLogger())
			rec, body := serveError(t, h, http.MethodGet, tt.err)
			assert.Equal(t, tt.wantStatus, rec.Code)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.Empty(t, rec.Header().Get("Retry-After"))
		})
	}
}

func TestHTTPErrorHandler_Handler_CircuitOpenRetryAfter(t *testing.T) {
	h := NewHTTPErrorHandler(NewErrorCodeToStatusCodeMaps(), log.NewNopLogger())
	h.retryAfter = 1500 * time.Millisecond
	rec, body := serveError(t, h, http.MethodGet, domain.NewCircuitOpenError(domain.UpstreamKey{Service: "orders", Address: "a:1"}, nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("Retry-After"))
	require.NotNil(t, body.Error)
	assert.Equal(t, domain.ErrCircuitOpen, body.Error.Code)
}

func TestHTTPErrorHandler_Handler_ClientCancelled(t *testing.T) {
	h := NewHTTPErrorHandler(NewErrorCodeToStatusCodeMaps(), log.NewNopLogger())
	rec, _ := serveError(t, h, http.MethodGet, context.Canceled)
	assert.Equal(t, StatusClientClosedRequest, rec.Code)
}

func TestHTTPErrorHandler_Handler_EchoHTTPError_WithRequestError_ReturnsBadParameter(t *testing.T) {
	h := NewHTTPErrorHandler(NewErrorCodeToStatusCodeMaps(), log.NewNopLogger())
	reqErr := &openapi3filter.RequestError{Err: assert.AnError}
	he := echo.NewHTTPError(http.StatusBadRequest, "request body has an error")
	he.Internal = reqErr

	rec, body := serveError(t, h, http.MethodPost, he)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, domain.ErrBadParameter, body.Error.Code)
	assert.Equal(t, "request body has an error", body.Error.Message)
}

func TestHTTPErrorHandler_Handler_EchoNotFound(t *testing.T) {
	h := NewHTTPErrorHandler(NewErrorCodeToStatusCodeMaps(), log.NewNopLogger())
	rec, body := serveError(t, h, http.MethodGet, echo.ErrNotFound)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, domain.ErrEntityNotFound, body.Error.Code)
}

func TestHTTPErrorHandler_Handler_Head(t *testing.T) {
	h := NewHTTPErrorHandler(NewErrorCodeToStatusCodeMaps(), log.NewNopLogger())
	rec, _ := serveError(t, h, http.MethodHead, domain.NewNoRouteError("/x"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Zero(t, rec.Body.Len())
}

func TestRegisterErrorHandler(t *testing.T) {
	e := echo.New()
	RegisterErrorHandler(e, log.NewNopLogger(), time.Second)
	require.NotNil(t, e.HTTPErrorHandler)
}
