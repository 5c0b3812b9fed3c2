package core

import "context"

// Client identifies who issued a request, for the audit trail.
type Client struct {
	IP        string
	UserAgent string
}

type clientKey struct{}

// ContextWithClient attaches the caller's IP address and User-Agent so audit
// entries recorded further down the call chain can carry them. Empty values
// keep whatever an outer caller attached.
func ContextWithClient(ctx context.Context, ip, userAgent string) context.Context {
	c := ClientFromContext(ctx)
	if ip != "" {
		c.IP = ip
	}
	if userAgent != "" {
		c.UserAgent = userAgent
	}
	return context.WithValue(ctx, clientKey{}, c)
}

// ClientFromContext returns the client attached to ctx, or the zero Client.
func ClientFromContext(ctx context.Context) Client {
	c, _ := ctx.Value(clientKey{}).(Client)
	return c
}
