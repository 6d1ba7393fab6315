package gateway

import "context"

type authorizationKey struct{}

// WithAuthorization attaches the inbound Authorization header to the context
// so an endpoint can forward the caller's credentials (pass-through auth).
func WithAuthorization(ctx context.Context, header string) context.Context {
	return context.WithValue(ctx, authorizationKey{}, header)
}

// AuthorizationFromContext returns the Authorization header attached by the
// host, if any.
func AuthorizationFromContext(ctx context.Context) (string, bool) {
	header, ok := ctx.Value(authorizationKey{}).(string)
	return header, ok && header != ""
}
