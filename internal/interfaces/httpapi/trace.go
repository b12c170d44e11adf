package httpapi

import (
	"context"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const handlerSpanPrefix = "httpapi.Handler."

var (
	apiTracer = otel.Tracer("fantasy-points/internal/interfaces/httpapi")
	noopSpan  = trace.SpanFromContext(context.Background())
)

// startHandlerSpan opens a child of the otelhttp server span, tagged with the
// matched mux pattern. Untraced requests such as /healthz get a no-op span.
func startHandlerSpan(r *http.Request, name string) (context.Context, trace.Span) {
	ctx := r.Context()
	if !trace.SpanContextFromContext(ctx).IsValid() || !isHandlerSpan(name) {
		return ctx, noopSpan
	}

	var opts []trace.SpanStartOption
	if r.Pattern != "" {
		opts = append(opts, trace.WithAttributes(attribute.String("http.route", r.Pattern)))
	}
	return apiTracer.Start(ctx, name, opts...)
}

func isHandlerSpan(name string) bool {
	return strings.HasPrefix(name, handlerSpanPrefix)
}
