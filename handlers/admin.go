package handlers

import (
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"deliverygateway/domain"
	"deliverygateway/helpers"
	"deliverygateway/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

// AdminServer serves the upstream admin API of the gateway.
type AdminServer struct {
	membership interfaces.UpstreamMembership
	logger     log.Logger
}

// NewAdminServer creates a new AdminServer. Panics on nil membership or logger.
func NewAdminServer(membership interfaces.UpstreamMembership, logger log.Logger) *AdminServer {
	return &AdminServer{
		membership: helpers.NilPanic(membership, "handlers.admin.go: membership is required"),
		logger:     log.WithPrefix(helpers.NilPanic(logger, "handlers.admin.go: logger is required"), "component", "AdminServer"),
	}
}

// RegisterAdminHandlers mounts the admin API, /healthz and /metrics on e. validator may be nil.
func RegisterAdminHandlers(e *echo.Echo, s *AdminServer, metricsHandler http.Handler, validator echo.MiddlewareFunc) {
	var mw []echo.MiddlewareFunc
	if validator != nil {
		mw = append(mw, validator)
	}
	e.GET("/admin/v1/upstreams", s.GetUpstreams, mw...)
	e.POST("/admin/v1/upstreams", s.CreateUpstream, mw...)
	e.DELETE("/admin/v1/upstreams/:service/:address", s.DeleteUpstream, mw...)
	e.GET("/healthz", Healthz)
	if metricsHandler != nil {
		e.GET("/metrics", echo.WrapHandler(metricsHandler))
	}
}

// UpstreamRequest is the body of POST /admin/v1/upstreams.
type UpstreamRequest struct {
	Service string `json:"service"`
	Address string `json:"address"`
}

// UpstreamsResponse is the body of GET /admin/v1/upstreams.
type UpstreamsResponse struct {
	Upstreams []Upstream `json:"upstreams"`
}

type Upstream struct {
	Service             string     `json:"service"`
	Address             string     `json:"address"`
	Health              string     `json:"health"`
	ConsecutiveFailures int        `json:"consecutive_failures"`
	LastProbe           *time.Time `json:"last_probe,omitempty"`
	DownSince           *time.Time `json:"down_since,omitempty"`
	Breaker             Breaker    `json:"breaker"`
}

type Breaker struct {
	State               string     `json:"state"`
	ConsecutiveFailures int        `json:"consecutive_failures"`
	FailureThreshold    int        `json:"failure_threshold"`
	CoolDownMs          int64      `json:"cool_down_ms"`
	LastTransition      *time.Time `json:"last_transition,omitempty"`
}

// GetUpstreams (GET /admin/v1/upstreams) returns every registered address with health and breaker state.
func (s *AdminServer) GetUpstreams(ectx echo.Context) error {
	return ectx.JSON(http.StatusOK, toUpstreamsResponse(s.membership.Snapshot()))
}

// CreateUpstream (POST /admin/v1/upstreams) registers an address. 201 when added, 200 when it already was.
func (s *AdminServer) CreateUpstream(ectx echo.Context) error {
	var req UpstreamRequest
	if err := ectx.Bind(&req); err != nil {
		return domain.NewBadParameterError("invalid request body", err)
	}
	if req.Service == "" {
		return domain.NewBadParameterError("service is required", nil)
	}
	if err := validateAddress(req.Address); err != nil {
		return err
	}
	status := http.StatusOK
	if s.membership.Add(domain.ServiceName(req.Service), req.Address) {
		status = http.StatusCreated
		level.Info(s.logger).Log("msg", "upstream added", "service", req.Service, "address", req.Address)
	}
	return ectx.NoContent(status)
}

// DeleteUpstream (DELETE /admin/v1/upstreams/{service}/{address}) deregisters an address.
func (s *AdminServer) DeleteUpstream(ectx echo.Context) error {
	service, err := url.PathUnescape(ectx.Param("service"))
	if err != nil {
		return domain.NewBadParameterError("invalid service", err)
	}
	address, err := url.PathUnescape(ectx.Param("address"))
	if err != nil {
		return domain.NewBadParameterError("invalid address", err)
	}
	if !s.membership.Remove(domain.ServiceName(service), address) {
		return domain.NewEntityNotFoundError(fmt.Sprintf("upstream %s/%s is not registered", service, address), nil)
	}
	level.Info(s.logger).Log("msg", "upstream removed", "service", service, "address", address)
	return ectx.NoContent(http.StatusNoContent)
}

// Healthz (GET /healthz) reports that the process is serving.
func Healthz(ectx echo.Context) error {
	return ectx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func validateAddress(address string) error {
	host, port, err := net.SplitHostPort(address)
	if err != nil {
		return domain.NewBadParameterError("address must be host:port", err)
	}
	if host == "" || port == "" {
		return domain.NewBadParameterError("address must be host:port", nil)
	}
	return nil
}

func toUpstreamsResponse(in []domain.UpstreamAddress) UpstreamsResponse {
	out := make([]Upstream, 0, len(in))
	for _, a := range in {
		out = append(out, Upstream{
			Service:             string(a.Service),
			Address:             a.Address,
			Health:              string(a.Health),
			ConsecutiveFailures: a.ConsecutiveFailures,
			LastProbe:           timeOrNil(a.LastProbe),
			DownSince:           timeOrNil(a.DownSince),
			Breaker: Breaker{
				State:               string(a.Breaker.State),
				ConsecutiveFailures: a.Breaker.ConsecutiveFailures,
				FailureThreshold:    a.Breaker.FailureThreshold,
				CoolDownMs:          a.Breaker.CoolDown.Milliseconds(),
				LastTransition:      timeOrNil(a.Breaker.LastTransition),
			},
		})
	}
	return UpstreamsResponse{Upstreams: out}
}

func timeOrNil(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
