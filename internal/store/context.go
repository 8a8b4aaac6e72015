package store

import "context"

type contextKey struct{}

// NewContext returns a copy of ctx carrying s.
func NewContext(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the store carried by ctx, if any.
func FromContext(ctx context.Context) (*Store, bool) {
	s, ok := ctx.Value(contextKey{}).(*Store)
	return s, ok && s != nil
}

// MustFromContext returns the store carried by ctx and panics when there is
// none. Reaching this panic means a handler was mounted outside the session
// middleware, which is a wiring bug rather than a runtime condition.
func MustFromContext(ctx context.Context) *Store {
	s, ok := FromContext(ctx)
	if !ok {
		panic("store: accessed outside of a session scope (is the handler mounted behind session.Middleware?)")
	}
	return s
}
