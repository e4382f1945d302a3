package service

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"deliverygateway/domain"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

// StatusClientClosedRequest is written when the client went away before the upstream answered.
const StatusClientClosedRequest = 499

// RegisterErrorHandler registers the gateway error handler on e. retryAfter is advertised on circuit_open
// responses, normally the breaker cool-down.
func RegisterErrorHandler(e *echo.Echo, logger log.Logger, retryAfter time.Duration) {
	h := NewHTTPErrorHandler(NewErrorCodeToStatusCodeMaps(), logger)
	h.retryAfter = retryAfter
	e.HTTPErrorHandler = h.Handler
}

// NewErrorCodeToStatusCodeMaps creates an error code to http status mapping.
func NewErrorCodeToStatusCodeMaps() map[string]int {
	var errorCodeToStatusCodeMaps = make(map[string]int)
	errorCodeToStatusCodeMaps[domain.ErrBadParameter] = http.StatusBadRequest
	errorCodeToStatusCodeMaps[domain.ErrEntityNotFound] = http.StatusNotFound
	errorCodeToStatusCodeMaps[domain.ErrNoRoute] = http.StatusNotFound
	errorCodeToStatusCodeMaps[domain.ErrUnknownService] = http.StatusServiceUnavailable
	errorCodeToStatusCodeMaps[domain.ErrUpstreamUnavailable] = http.StatusServiceUnavailable
	errorCodeToStatusCodeMaps[domain.ErrCircuitOpen] = http.StatusServiceUnavailable
	errorCodeToStatusCodeMaps[domain.ErrUpstreamTimeout] = http.StatusGatewayTimeout
	errorCodeToStatusCodeMaps[domain.ErrLoaderFailure] = http.StatusBadGateway
	errorCodeToStatusCodeMaps[domain.ErrInternalServerError] = http.StatusInternalServerError

	return errorCodeToStatusCodeMaps
}

// HTTPErrorHandler is an error handler.
type HTTPErrorHandler struct {
	errorCodeToHTTPStatusCodeMap map[string]int
	logger                       log.Logger
	retryAfter                   time.Duration
}

// NewHTTPErrorHandler creates a new instance of the HTTPErrorHandler.
func NewHTTPErrorHandler(errorCodeToStatusCodeMaps map[string]int, logger log.Logger) *HTTPErrorHandler {
	return &HTTPErrorHandler{
		errorCodeToHTTPStatusCodeMap: errorCodeToStatusCodeMaps,
		logger:                       logger,
		retryAfter:                   domain.DefaultCoolDown,
	}
}

func (h *HTTPErrorHandler) getStatusCode(errorCode string) int {
	status, ok := h.errorCodeToHTTPStatusCodeMap[errorCode]
	if ok {
		return status
	}

	return http.StatusInternalServerError
}

// Handler handles error returned by echo Handlers.
func (h *HTTPErrorHandler) Handler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	gwErr := ToResponseError(err)

	var statusCode int
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		codeStr := domain.ErrInternalServerError
		if he.Internal != nil {
			if herr, ok := he.Internal.(*echo.HTTPError); ok {
				he = herr
			}
			var requestError *openapi3filter.RequestError
			if errors.As(he.Internal, &requestError) {
				codeStr = domain.ErrBadParameter
			}
		}
		if he.Code == http.StatusNotFound && codeStr == domain.ErrInternalServerError {
			codeStr = domain.ErrEntityNotFound
		}
		m, ok := he.Message.(string)
		if !ok {
			m = http.StatusText(he.Code)
		}
		gwErr = domain.NewGatewayError(codeStr, m, err)
		statusCode = he.Code
	case domain.ToGatewayError(err) == nil && errors.Is(err, context.Canceled):
		statusCode = StatusClientClosedRequest
		gwErr = domain.NewGatewayError(domain.ErrInternalServerError, "client closed request", err)
	default:
		statusCode = h.getStatusCode(gwErr.Code)
	}

	if statusCode >= http.StatusInternalServerError {
		level.Error(h.logger).Log("msg", "HTTP request error", "status", statusCode, "err", err)
	} else {
		level.Info(h.logger).Log("msg", "HTTP request error", "status", statusCode, "err", err)
	}

	if gwErr.Code == domain.ErrCircuitOpen && h.retryAfter > 0 {
		c.Response().Header().Set("Retry-After", strconv.Itoa(int((h.retryAfter+time.Second-1)/time.Second)))
	}

	// Send response
	if !c.Response().Committed {
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(statusCode)
		} else {
			_ = c.JSON(statusCode, ErrResponse{Error: gwErr})
		}
	}
}

// ToResponseError picks the error shown to the client: loader_failure is unwrapped to the GatewayError of the
// loader when there is one, so a missing row stays a 404; anything that is not a GatewayError becomes
// internal_server_error.
func ToResponseError(err error) *domain.GatewayError {
	gwErr := domain.ToGatewayError(err)
	if gwErr == nil {
		return domain.NewGatewayError(domain.ErrInternalServerError, "an internal server error has occurred", err)
	}
	if gwErr.Code == domain.ErrLoaderFailure {
		if inner := domain.ToGatewayError(gwErr.Inner); inner != nil {
			return inner
		}
	}
	return gwErr
}

// ErrResponse from server.
type ErrResponse struct {
	Error *domain.GatewayError `json:"error,omitempty"`
}
