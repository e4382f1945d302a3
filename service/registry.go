package service

import (
	"sort"
	"sync"

	"deliverygateway/domain"
	"deliverygateway/helpers"
	"deliverygateway/interfaces"
	"deliverygateway/metrics"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// upstreamRegistry implements interfaces.Registry. The top-level map is guarded by mu and only written when a
// service name is seen for the first time; each service has its own lock for its address list and round-robin
// cursor, so traffic to different services never contends.
type upstreamRegistry struct {
	breakers interfaces.Breakers
	logger   log.Logger
	metrics  *metrics.Metrics

	mu       sync.RWMutex
	services map[domain.ServiceName]*serviceUpstreams
}

type serviceUpstreams struct {
	mu        sync.Mutex
	addresses []*domain.UpstreamAddress
	rr        int
}

// NewRegistry creates an empty registry. Panics on nil breakers or logger; m may be nil.
//
// Parameters: breakers — consulted by ListHealthy and Snapshot, cleared on Deregister; logger — membership
// changes are logged; m — optional metrics (per-address series are dropped on Deregister).
//
// Returns: *upstreamRegistry implementing interfaces.Registry.
//
// Called from cmd/gateway.
func NewRegistry(breakers interfaces.Breakers, logger log.Logger, m *metrics.Metrics) *upstreamRegistry {
	return &upstreamRegistry{
		breakers: helpers.NilPanic(breakers, "service.registry.go: breakers is required"),
		logger:   log.With(helpers.NilPanic(logger, "service.registry.go: logger is required"), "component", "registry"),
		metrics:  m,
		services: make(map[domain.ServiceName]*serviceUpstreams),
	}
}

func (r *upstreamRegistry) lookup(service domain.ServiceName) *serviceUpstreams {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.services[service]
}

func (r *upstreamRegistry) lookupOrCreate(service domain.ServiceName) *serviceUpstreams {
	if s := r.lookup(service); s != nil {
		return s
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.services[service]
	if !ok {
		s = &serviceUpstreams{}
		r.services[service] = s
	}
	return s
}

func (r *upstreamRegistry) Register(service domain.ServiceName, address string) bool {
	s := r.lookupOrCreate(service)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index(address) >= 0 {
		return false
	}
	s.addresses = append(s.addresses, &domain.UpstreamAddress{
		Service:      service,
		Address:      address,
		HealthStatus: domain.HealthStatus{Health: domain.HealthHealthy},
	})
	level.Info(r.logger).Log("msg", "upstream registered", "service", service, "address", address)
	return true
}

func (r *upstreamRegistry) Deregister(service domain.ServiceName, address string) bool {
	s := r.lookup(service)
	if s == nil {
		return false
	}
	s.mu.Lock()
	i := s.index(address)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.addresses = append(s.addresses[:i], s.addresses[i+1:]...)
	if s.rr >= len(s.addresses) {
		s.rr = 0
	}
	s.mu.Unlock()

	key := domain.UpstreamKey{Service: service, Address: address}
	r.breakers.Remove(key)
	r.metrics.ForgetUpstream(key)
	level.Info(r.logger).Log("msg", "upstream deregistered", "service", service, "address", address)
	return true
}

// ListHealthy implements interfaces.Registry. The rotation cursor advances by one per call so that
// consecutive requests start on different addresses.
func (r *upstreamRegistry) ListHealthy(service domain.ServiceName) ([]domain.UpstreamAddress, error) {
	s := r.lookup(service)
	if s == nil {
		return nil, domain.NewUnknownServiceError(service)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.addresses)
	out := make([]domain.UpstreamAddress, 0, n)
	for i := 0; i < n; i++ {
		a := s.addresses[(s.rr+i)%n]
		if a.Health == domain.HealthDown {
			continue
		}
		if r.breakers.State(a.Key()) == domain.BreakerOpen {
			continue
		}
		out = append(out, *a)
	}
	if n > 0 {
		s.rr = (s.rr + 1) % n
	}
	return out, nil
}

func (r *upstreamRegistry) MarkProbe(key domain.UpstreamKey, status domain.HealthStatus) bool {
	s := r.lookup(key.Service)
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(key.Address)
	if i < 0 {
		return false
	}
	s.addresses[i].HealthStatus = status
	return true
}

func (r *upstreamRegistry) Addresses(service domain.ServiceName) []string {
	s := r.lookup(service)
	if s == nil {
		return nil
	}
	s.mu.Lock()
	out := make([]string, 0, len(s.addresses))
	for _, a := range s.addresses {
		out = append(out, a.Address)
	}
	s.mu.Unlock()
	sort.Strings(out)
	return out
}

func (r *upstreamRegistry) Snapshot() []domain.UpstreamAddress {
	r.mu.RLock()
	services := make(map[domain.ServiceName]*serviceUpstreams, len(r.services))
	for name, s := range r.services {
		services[name] = s
	}
	r.mu.RUnlock()

	var out []domain.UpstreamAddress
	for _, s := range services {
		s.mu.Lock()
		for _, a := range s.addresses {
			out = append(out, *a)
		}
		s.mu.Unlock()
	}
	for i := range out {
		out[i].Breaker = r.breakers.Snapshot(out[i].Key())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Service != out[j].Service {
			return out[i].Service < out[j].Service
		}
		return out[i].Address < out[j].Address
	})
	return out
}

func (s *serviceUpstreams) index(address string) int {
	for i, a := range s.addresses {
		if a.Address == address {
			return i
		}
	}
	return -1
}
