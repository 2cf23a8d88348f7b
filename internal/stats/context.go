package stats

import "context"

// ctxKey is the key type for storing a Reporter in context.
type ctxKey struct{}

// FromContext extracts the Reporter from ctx, or nil when none is
// attached. A nil Reporter yields inert tracers from TraceScope, so call
// sites can trace unconditionally.
func FromContext(ctx context.Context) *Reporter {
	if ctx == nil {
		return nil
	}
	if r, ok := ctx.Value(ctxKey{}).(*Reporter); ok {
		return r
	}
	return nil
}

// WithReporter attaches a Reporter to ctx.
func WithReporter(ctx context.Context, r *Reporter) context.Context {
	return context.WithValue(ctx, ctxKey{}, r)
}
