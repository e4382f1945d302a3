package helpers

import (
	"net"
	"net/http"
	"strings"
)

const (
	// HeaderRequestID carries the request id across the gateway and its upstreams.
	HeaderRequestID = "X-Request-Id"
	// HeaderForwardedFor is the client address chain appended by every proxy.
	HeaderForwardedFor = "X-Forwarded-For"
	// HeaderForwardedHost is the Host the client originally asked for.
	HeaderForwardedHost = "X-Forwarded-Host"
	// HeaderForwardedProto is the scheme the client used (http or https).
	HeaderForwardedProto = "X-Forwarded-Proto"
)

// hopByHopHeaders apply to a single transport-level connection and are never forwarded (RFC 7230 section 6.1).
var hopByHopHeaders = []string{
	"Connection",
	"Proxy-Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

// RemoveHopByHop deletes hop-by-hop headers from h in place, including every header named in Connection.
//
// Parameter h — header map (nil allowed, no-op).
//
// Called from HopByHopProcessor.Process on requests and from adapters.HTTPTransport on responses.
func RemoveHopByHop(h http.Header) {
	if h == nil {
		return
	}
	for _, v := range h.Values("Connection") {
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				h.Del(name)
			}
		}
	}
	for _, name := range hopByHopHeaders {
		h.Del(name)
	}
}

// GetHeaderValue returns the first value of header key with surrounding whitespace trimmed.
//
// Returns: (value, true) when there is a non-empty value; ("", false) when h is nil, key is missing or value is blank.
func GetHeaderValue(h http.Header, key string) (string, bool) {
	if h == nil || key == "" {
		return "", false
	}
	v := strings.TrimSpace(h.Get(key))
	if v == "" {
		return "", false
	}
	return v, true
}

// ClientIP returns the host part of remoteAddr; remoteAddr itself when it has no port.
func ClientIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
