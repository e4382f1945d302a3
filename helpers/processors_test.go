package helpers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"deliverygateway/domain"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHopByHopProcessor(t *testing.T) {
	in := http.Header{"Connection": {"close"}, "Te": {"trailers"}, "Accept": {"application/json"}}
	out, err := HopByHopProcessor{}.Process(context.Background(), domain.ProxyRequest{}, in)
	require.NoError(t, err)
	assert.Empty(t, out.Get("Connection"))
	assert.Empty(t, out.Get("Te"))
	assert.Equal(t, "application/json", out.Get("Accept"))
	assert.Equal(t, "close", in.Get("Connection"), "input is not mutated")
}

func TestForwardedProcessor(t *testing.T) {
	tests := []struct {
		name      string
		req       domain.ProxyRequest
		headers   http.Header
		wantFor   string
		wantHost  string
		wantProto string
	}{
		{
			name:      "first_hop",
			req:       domain.ProxyRequest{RemoteAddr: "203.0.113.9:41000", Host: "api.example.com"},
			headers:   http.Header{},
			wantFor:   "203.0.113.9",
			wantHost:  "api.example.com",
			wantProto: "http",
		},
		{
			name:      "appends_to_existing_chain",
			req:       domain.ProxyRequest{RemoteAddr: "10.0.0.2:41000", Host: "gw", TLS: true},
			headers:   http.Header{"X-Forwarded-For": {"203.0.113.9"}, "X-Forwarded-Host": {"api.example.com"}, "X-Forwarded-Proto": {"https"}},
			wantFor:   "203.0.113.9, 10.0.0.2",
			wantHost:  "api.example.com",
			wantProto: "https",
		},
		{
			name:      "tls",
			req:       domain.ProxyRequest{RemoteAddr: "[2001:db8::1]:443", Host: "gw", TLS: true},
			headers:   nil,
			wantFor:   "2001:db8::1",
			wantHost:  "gw",
			wantProto: "https",
		},
		{
			name:      "no_remote_addr",
			req:       domain.ProxyRequest{},
			headers:   http.Header{},
			wantFor:   "",
			wantHost:  "",
			wantProto: "http",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ForwardedProcessor{}.Process(context.Background(), tt.req, tt.headers)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFor, out.Get(HeaderForwardedFor))
			assert.Equal(t, tt.wantHost, out.Get(HeaderForwardedHost))
			assert.Equal(t, tt.wantProto, out.Get(HeaderForwardedProto))
		})
	}
}

func TestNewRequestIDProcessor_Panics(t *testing.T) {
	assert.PanicsWithValue(t, "helpers.processors.go: newID is required", func() {
		NewRequestIDProcessor(nil)
	})
}

func TestRequestIDProcessor(t *testing.T) {
	fixed := uuid.Must(uuid.FromString("6ba7b810-9dad-41d1-80b4-00c04fd430c8"))

	t.Run("generates_when_absent", func(t *testing.T) {
		p := NewRequestIDProcessor(func() (uuid.UUID, error) { return fixed, nil })
		out, err := p.Process(context.Background(), domain.ProxyRequest{}, http.Header{})
		require.NoError(t, err)
		assert.Equal(t, fixed.String(), out.Get(HeaderRequestID))
	})

	t.Run("keeps_inbound", func(t *testing.T) {
		p := NewRequestIDProcessor(func() (uuid.UUID, error) {
			t.Fatal("generator must not be called")
			return uuid.Nil, nil
		})
		out, err := p.Process(context.Background(), domain.ProxyRequest{}, http.Header{"X-Request-Id": {"client-id"}})
		require.NoError(t, err)
		assert.Equal(t, "client-id", out.Get(HeaderRequestID))
	})

	t.Run("generator_error", func(t *testing.T) {
		p := NewRequestIDProcessor(func() (uuid.UUID, error) { return uuid.Nil, errors.New("entropy exhausted") })
		_, err := p.Process(context.Background(), domain.ProxyRequest{}, nil)
		require.Error(t, err)
		assert.Equal(t, domain.ErrInternalServerError, domain.ToGatewayErrorCode(err))
	})

	t.Run("real_v4", func(t *testing.T) {
		p := NewRequestIDProcessor(uuid.NewV4)
		out, err := p.Process(context.Background(), domain.ProxyRequest{}, nil)
		require.NoError(t, err)
		id, err := uuid.FromString(out.Get(HeaderRequestID))
		require.NoError(t, err)
		assert.Equal(t, byte(uuid.V4), id.Version())
	})
}
