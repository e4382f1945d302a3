package domain

import (
	"errors"
	"fmt"
)

const (
	// ErrUnknownService means that no address has ever been registered under the service name.
	ErrUnknownService = "unknown_service"
	// ErrNoRoute means that no route prefix matches the request path.
	ErrNoRoute = "no_route"
	// ErrCircuitOpen means that the breaker of the selected address rejected the call without a network attempt.
	ErrCircuitOpen = "circuit_open"
	// ErrUpstreamTimeout means that forwarding exceeded the per-service deadline.
	ErrUpstreamTimeout = "upstream_timeout"
	// ErrUpstreamUnavailable means that every attempted candidate failed or none was healthy.
	ErrUpstreamUnavailable = "upstream_unavailable"
	// ErrLoaderFailure wraps an error returned by a cache-aside loader.
	ErrLoaderFailure = "loader_failure"
	// ErrInternalServerError means that an internal server error has occurred.
	ErrInternalServerError = "internal_server_error"
	// ErrEntityNotFound means that record or row is absent in repository or storage.
	ErrEntityNotFound = "entity_not_found"
	// ErrBadParameter means that provided parameter does not match declared.
	ErrBadParameter = "bad_parameter"
)

// GatewayError is the typed error of the gateway and catalog services. Code is machine-readable and drives
// the HTTP status mapping; Message is shown to API consumers; Inner is never shown.
type GatewayError struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Inner   error  `json:"-"`
}

// NewGatewayError creates a new GatewayError.
func NewGatewayError(code string, message string, inner error) *GatewayError {
	return &GatewayError{
		Code:    code,
		Message: message,
		Inner:   inner,
	}
}

func NewUnknownServiceError(service ServiceName) *GatewayError {
	return NewGatewayError(ErrUnknownService, fmt.Sprintf("service %q has no registered upstreams", service), nil)
}

func NewNoRouteError(path string) *GatewayError {
	return NewGatewayError(ErrNoRoute, fmt.Sprintf("no route for path %q", path), nil)
}

func NewCircuitOpenError(key UpstreamKey, inner error) *GatewayError {
	return NewGatewayError(ErrCircuitOpen, fmt.Sprintf("circuit open for %s", key), inner)
}

func NewUpstreamTimeoutError(key UpstreamKey, inner error) *GatewayError {
	return NewGatewayError(ErrUpstreamTimeout, fmt.Sprintf("upstream %s timed out", key), inner)
}

func NewUpstreamUnavailableError(service ServiceName, inner error) *GatewayError {
	return NewGatewayError(ErrUpstreamUnavailable, fmt.Sprintf("service %q is unavailable", service), inner)
}

// NewLoaderFailureError always wraps, even when inner is already a GatewayError; the HTTP layer looks
// through it to the inner code.
func NewLoaderFailureError(key string, inner error) *GatewayError {
	return NewGatewayError(ErrLoaderFailure, fmt.Sprintf("loading %q failed", key), inner)
}

func NewInternalServerError(message string, inner error) *GatewayError {
	if e := ToGatewayError(inner); e != nil {
		return e
	}
	return NewGatewayError(ErrInternalServerError, message, inner)
}

func NewEntityNotFoundError(message string, inner error) *GatewayError {
	if e := ToGatewayError(inner); e != nil {
		return e
	}
	return NewGatewayError(ErrEntityNotFound, message, inner)
}

func NewBadParameterError(message string, inner error) *GatewayError {
	if e := ToGatewayError(inner); e != nil {
		return e
	}
	return NewGatewayError(ErrBadParameter, message, inner)
}

func (e GatewayError) Error() string {
	if e.Inner != nil {
		return fmt.Sprintf("%s %s: %v", e.Code, e.Message, e.Inner)
	}
	return fmt.Sprintf("%s %s", e.Code, e.Message)
}

// Unwrap the error returning the error's reason.
func (e GatewayError) Unwrap() error {
	return e.Inner
}

// ToGatewayError returns the outermost GatewayError in the chain, or nil.
func ToGatewayError(err error) *GatewayError {
	var e *GatewayError
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// ToGatewayErrorCode returns the code of the outermost GatewayError, if available.
func ToGatewayErrorCode(err error) string {
	if e := ToGatewayError(err); e != nil {
		return e.Code
	}
	return ""
}

func IsGatewayError(err error, code string) bool {
	if e := ToGatewayError(err); e != nil {
		return e.Code == code
	}
	return false
}

func IsUnknownService(err error) bool      { return IsGatewayError(err, ErrUnknownService) }
func IsNoRoute(err error) bool             { return IsGatewayError(err, ErrNoRoute) }
func IsCircuitOpen(err error) bool         { return IsGatewayError(err, ErrCircuitOpen) }
func IsUpstreamTimeout(err error) bool     { return IsGatewayError(err, ErrUpstreamTimeout) }
func IsUpstreamUnavailable(err error) bool { return IsGatewayError(err, ErrUpstreamUnavailable) }
func IsLoaderFailure(err error) bool       { return IsGatewayError(err, ErrLoaderFailure) }
func IsEntityNotFoundError(err error) bool { return IsGatewayError(err, ErrEntityNotFound) }
func IsBadParameterError(err error) bool   { return IsGatewayError(err, ErrBadParameter) }
