package adapters

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// GRPCProbe checks liveness with grpc.health.v1.Health/Check. One client connection is kept per address and
// reused across checks; Close releases them all.
type GRPCProbe struct {
	service string

	mu    sync.Mutex
	conns map[string]*grpc.ClientConn
}

// NewGRPCProbe creates a GRPCProbe. service is the health service name sent in the request, empty asks about
// the server as a whole.
//
// Called from cmd/gateway for services with probe type grpc.
func NewGRPCProbe(service string) *GRPCProbe {
	return &GRPCProbe{service: service, conns: make(map[string]*grpc.ClientConn)}
}

// Check implements interfaces.Probe. Any status other than SERVING is a failure.
func (p *GRPCProbe) Check(ctx context.Context, address string) error {
	conn, err := p.conn(address)
	if err != nil {
		return err
	}
	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: p.service})
	if err != nil {
		return err
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return fmt.Errorf("grpc health of %s is %s", address, resp.GetStatus())
	}
	return nil
}

// Forget closes the connection of address, if any.
func (p *GRPCProbe) Forget(address string) {
	p.mu.Lock()
	conn, ok := p.conns[address]
	delete(p.conns, address)
	p.mu.Unlock()
	if ok {
		_ = conn.Close()
	}
}

// Close closes every connection.
func (p *GRPCProbe) Close() {
	p.mu.Lock()
	conns := p.conns
	p.conns = make(map[string]*grpc.ClientConn)
	p.mu.Unlock()
	for _, conn := range conns {
		_ = conn.Close()
	}
}

func (p *GRPCProbe) conn(address string) (*grpc.ClientConn, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if conn, ok := p.conns[address]; ok {
		return conn, nil
	}
	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	p.conns[address] = conn
	return conn, nil
}
