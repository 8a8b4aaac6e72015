package latency

import "context"

type contextKey struct{}

// NewContext returns a copy of ctx carrying g.
func NewContext(ctx context.Context, g *Group) context.Context {
	return context.WithValue(ctx, contextKey{}, g)
}

// FromContext returns the Group carried by ctx, or nil.
func FromContext(ctx context.Context) *Group {
	g, _ := ctx.Value(contextKey{}).(*Group)
	return g
}

// RunFromContext runs fn through the Group carried by ctx. Without one, fn runs
// inline.
func RunFromContext(ctx context.Context, name string, fn func()) error {
	if g := FromContext(ctx); g != nil {
		return g.Run(ctx, name, fn)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	fn()
	return nil
}
