package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName = "worktrack/tracker-api"
)

// GetTracer returns the tracer for the tracker-api service.
func GetTracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// StartEntrySpan starts a new span for a time entry operation.
func StartEntrySpan(ctx context.Context, operation, entryID string) (context.Context, trace.Span) {
	return GetTracer().Start(ctx, "time_entry."+operation,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("time_entry.id", entryID),
		),
	)
}

// StartUserSpan starts a new span for a user management operation.
func StartUserSpan(ctx context.Context, operation, userID string) (context.Context, trace.Span) {
	return GetTracer().Start(ctx, "user."+operation,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("user.id", userID),
		),
	)
}

// StartReportSpan starts a new span for summary report generation.
func StartReportSpan(ctx context.Context, allUsers bool) (context.Context, trace.Span) {
	return GetTracer().Start(ctx, "report.summary",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.Bool("report.all_users", allUsers),
		),
	)
}

// RecordError records an error on a span.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
