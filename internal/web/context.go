package web

import (
	"context"
	"net"
	"net/http"

	"github.com/JonMunkholm/console/internal/core"
)

// withRequestMetadata adds IP and User-Agent to context for audit logging.
func withRequestMetadata(r *http.Request) context.Context {
	return core.ContextWithClient(r.Context(), clientIP(r), r.UserAgent())
}

// clientIP returns the request's client address without the port.
// RemoteAddr has already been processed by TrustedRealIP.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
