package trace

import "context"

type ctxKey struct{}

// binding is what a context carries: the tracer and the innermost open span.
type binding struct {
	tracer Tracer
	span   uint64
}

func bindingOf(ctx context.Context) binding {
	if ctx != nil {
		if b, ok := ctx.Value(ctxKey{}).(binding); ok {
			return b
		}
	}
	return binding{tracer: Nop}
}

// FromContext returns the tracer of ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	return bindingOf(ctx).tracer
}

// WithTracer attaches t to ctx. Spans started from the result are roots.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, binding{tracer: t})
}

// ParentID returns the id of the innermost span started through ctx, or 0.
func ParentID(ctx context.Context) uint64 {
	return bindingOf(ctx).span
}
