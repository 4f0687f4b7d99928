package httpapi

import (
	"context"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var apiTracer = otel.Tracer("smfc-manager/internal/interfaces/httpapi")
var noopSpan = trace.SpanFromContext(context.Background())

// startSpan opens child spans for handlers only. Helpers and untraced
// requests (health checks) get the noop span.
func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() || !shouldCreateHTTPAPISpan(name) {
		return ctx, noopSpan
	}
	return apiTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func shouldCreateHTTPAPISpan(name string) bool {
	return strings.HasPrefix(name, "httpapi.Handler.")
}

// sessionIDParam reads the {sessionID} path value and tags the span with it.
func sessionIDParam(r *http.Request, span trace.Span) string {
	id := strings.TrimSpace(r.PathValue("sessionID"))
	if span.IsRecording() {
		span.SetAttributes(attribute.String("smfc.session_id", id))
	}
	return id
}
