// internal/pkg/identity/session.go
package identity

import "context"

// Session carries the authenticated principal for one request. It is
// constructed once by the auth middleware and passed explicitly into
// every service call; services never consult global state for identity.
type Session struct {
	DealerID string
}

// Valid reports whether the session carries an authenticated dealer
func (s Session) Valid() bool {
	return s.DealerID != ""
}

type contextKey struct{}

// WithSession returns a context carrying the session
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext extracts the session placed by the auth middleware.
// The zero Session is returned when none is present.
func FromContext(ctx context.Context) Session {
	s, _ := ctx.Value(contextKey{}).(Session)
	return s
}
