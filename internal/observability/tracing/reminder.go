package tracing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const reminderTracerName = "github.com/KasumiMercury/primind-daily-reminder/internal/service/reminder"

func ReminderTracer() trace.Tracer {
	return otel.Tracer(reminderTracerName)
}

func StartReconcileSpan(ctx context.Context, runID string, test bool) (context.Context, trace.Span) {
	return ReminderTracer().Start(ctx, "reminder.reconcile",
		trace.WithAttributes(
			attribute.String("reconcile.run_id", runID),
			attribute.Bool("reconcile.test", test),
		),
	)
}

func StartInitialSetupSpan(ctx context.Context) (context.Context, trace.Span) {
	return ReminderTracer().Start(ctx, "reminder.initial_setup")
}

func StartCancelAllSpan(ctx context.Context) (context.Context, trace.Span) {
	return ReminderTracer().Start(ctx, "reminder.cancel_all")
}

func StartRedisOperationSpan(ctx context.Context, operation, key string) (context.Context, trace.Span) {
	return ReminderTracer().Start(ctx, "reminder.redis."+operation,
		trace.WithAttributes(
			attribute.String("db.system", "redis"),
			attribute.String("db.operation", operation),
			attribute.String("db.key", key),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordReconcileResult(span trace.Span, action string, triggerAt time.Time, pendingCount int, err error) {
	span.SetAttributes(
		attribute.String("reconcile.action", action),
		attribute.Int("reconcile.pending_count", pendingCount),
	)
	if !triggerAt.IsZero() {
		span.SetAttributes(attribute.String("reconcile.trigger_at", triggerAt.Format(time.RFC3339)))
	}
	RecordError(span, err)
}

func RecordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}
