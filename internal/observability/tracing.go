package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "messenger"

// Tracer wraps the global OpenTelemetry tracer. Without a configured
// provider the spans are no-ops.
type Tracer struct {
	tracer trace.Tracer
}

func NewTracer() *Tracer {
	return &Tracer{tracer: otel.Tracer(tracerName)}
}

// NewTracerWithProvider is used by tests to capture spans.
func NewTracerWithProvider(tp trace.TracerProvider) *Tracer {
	return &Tracer{tracer: tp.Tracer(tracerName)}
}

// Start opens a span named after the store operation, e.g. "message.send".
func (t *Tracer) Start(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, operation, trace.WithAttributes(attrs...))
}

// End records err on the span, if any, and ends it.
func (t *Tracer) End(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func UserID(id int64) attribute.KeyValue    { return attribute.Int64("messenger.user_id", id) }
func PeerID(id int64) attribute.KeyValue    { return attribute.Int64("messenger.peer_id", id) }
func MessageID(id int64) attribute.KeyValue { return attribute.Int64("messenger.message_id", id) }
func ReactionTypeID(id int64) attribute.KeyValue {
	return attribute.Int64("messenger.reaction_type_id", id)
}
func PostID(id int64) attribute.KeyValue { return attribute.Int64("messenger.post_id", id) }
