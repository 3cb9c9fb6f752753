package actorrt

import "context"

// SpanHandle is returned by Tracer.StartSpan and closed when the traced
// operation completes. It is deliberately not any particular tracing
// SDK's span type, so that a caller can back it with OpenTelemetry, a log
// line, or nothing at all.
type SpanHandle interface {
	End()
}

// Tracer is an OSAL-style seam: actorrt never imports a telemetry SDK
// itself, it only consumes this interface, so the choice of backend
// belongs entirely to whoever builds the Executor. The default is
// noopTracer — the hook exists so a caller who wants one can supply it,
// without actorrt carrying a dependency nothing requires it to carry.
type Tracer interface {
	StartSpan(ctx context.Context, actor string, op string, attrs ...Attr) (context.Context, SpanHandle)
}

type noopTracer struct{}

type noopSpan struct{}

func (noopSpan) End() {}

func (noopTracer) StartSpan(ctx context.Context, _ string, _ string, _ ...Attr) (context.Context, SpanHandle) {
	return ctx, noopSpan{}
}
