package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	reminderMeterName = "reminder.service"
)

type ReminderMetrics struct {
	reconciliations   metric.Int64Counter
	submitFailures    metric.Int64Counter
	cancellations     metric.Int64Counter
	reconcileDuration metric.Float64Histogram
	permissionResults metric.Int64Counter
}

func NewReminderMetrics() (*ReminderMetrics, error) {
	meter := otel.Meter(reminderMeterName)

	reconciliations, err := meter.Int64Counter(
		"reminder_reconciliations_total",
		metric.WithDescription("Total number of reconciliations by resulting action"),
		metric.WithUnit("{reconciliation}"),
	)
	if err != nil {
		return nil, err
	}

	submitFailures, err := meter.Int64Counter(
		"reminder_submit_failures_total",
		metric.WithDescription("Total number of notification requests rejected by the notification center"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	cancellations, err := meter.Int64Counter(
		"reminder_cancelled_requests_total",
		metric.WithDescription("Total number of pending requests removed"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	reconcileDuration, err := meter.Float64Histogram(
		"reminder_reconcile_duration_seconds",
		metric.WithDescription("Time spent reconciling the pending schedule"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5,
		),
	)
	if err != nil {
		return nil, err
	}

	permissionResults, err := meter.Int64Counter(
		"reminder_permission_requests_total",
		metric.WithDescription("Total number of permission requests by outcome"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	return &ReminderMetrics{
		reconciliations:   reconciliations,
		submitFailures:    submitFailures,
		cancellations:     cancellations,
		reconcileDuration: reconcileDuration,
		permissionResults: permissionResults,
	}, nil
}

func (m *ReminderMetrics) RecordReconciliation(ctx context.Context, action string, test bool) {
	m.reconciliations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("action", action),
		attribute.Bool("test", test),
	))
}

func (m *ReminderMetrics) RecordSubmitFailure(ctx context.Context, test bool) {
	m.submitFailures.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("test", test),
	))
}

func (m *ReminderMetrics) RecordCancelled(ctx context.Context, count int) {
	if count <= 0 {
		return
	}
	m.cancellations.Add(ctx, int64(count))
}

func (m *ReminderMetrics) RecordReconcileDuration(ctx context.Context, duration time.Duration) {
	m.reconcileDuration.Record(ctx, duration.Seconds())
}

func (m *ReminderMetrics) RecordPermission(ctx context.Context, outcome string) {
	m.permissionResults.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}
