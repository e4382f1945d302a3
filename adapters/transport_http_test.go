package adapters

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"deliverygateway/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPTransport_Panics(t *testing.T) {
	assert.PanicsWithValue(t, "adapters.transport_http.go: http client is required", func() {
		NewHTTPTransport(nil, "http")
	})
}

func TestHTTPTransport_RoundTrip(t *testing.T) {
	var gotMethod, gotPath, gotQuery, gotBody, gotReqID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotReqID = r.Header.Get("X-Request-Id")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Keep-Alive", "timeout=5")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"o1"}`))
	}))
	defer server.Close()

	tr := NewHTTPTransport(server.Client(), "")
	resp, err := tr.RoundTrip(context.Background(), strings.TrimPrefix(server.URL, "http://"), domain.ProxyRequest{
		Method:   http.MethodPost,
		Path:     "/orders",
		RawQuery: "dry_run=1",
		Header:   http.Header{"X-Request-Id": {"req-1"}},
		Body:     []byte(`{"customer":"alice"}`),
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/orders", gotPath)
	assert.Equal(t, "dry_run=1", gotQuery)
	assert.Equal(t, `{"customer":"alice"}`, gotBody)
	assert.Equal(t, "req-1", gotReqID)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, `{"id":"o1"}`, string(resp.Body))
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Empty(t, resp.Header.Get("Keep-Alive"))
}

func TestHTTPTransport_RoundTrip_ServerErrorIsAResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	resp, err := NewHTTPTransport(server.Client(), "http").RoundTrip(context.Background(), strings.TrimPrefix(server.URL, "http://"), domain.ProxyRequest{Method: http.MethodGet, Path: "/"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestHTTPTransport_RoundTrip_RedirectNotFollowed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/old" {
			http.Redirect(w, r, "/new", http.StatusFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	resp, err := NewHTTPTransport(server.Client(), "http").RoundTrip(context.Background(), strings.TrimPrefix(server.URL, "http://"), domain.ProxyRequest{Method: http.MethodGet, Path: "/old"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/new", resp.Header.Get("Location"))
}

func TestHTTPTransport_RoundTrip_Errors(t *testing.T) {
	t.Run("connection_refused", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		addr := strings.TrimPrefix(server.URL, "http://")
		server.Close()

		_, err := NewHTTPTransport(&http.Client{}, "http").RoundTrip(context.Background(), addr, domain.ProxyRequest{Method: http.MethodGet, Path: "/"})
		require.Error(t, err)
	})
	t.Run("deadline", func(t *testing.T) {
		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer server.Close()
		defer close(release)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err := NewHTTPTransport(server.Client(), "http").RoundTrip(ctx, strings.TrimPrefix(server.URL, "http://"), domain.ProxyRequest{Method: http.MethodGet, Path: "/"})
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
