package observability

import (
	"context"
	"log"

	"go.opentelemetry.io/otel/trace"
)

// Logf logs with the active trace id prepended when the context carries one.
func Logf(ctx context.Context, format string, args ...any) {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.HasTraceID() {
		log.Printf(format, args...)
		return
	}
	log.Printf("trace_id=%s "+format, append([]any{sc.TraceID().String()}, args...)...)
}
