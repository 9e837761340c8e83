//go:build gcloud

package reconcilerecorder

import (
	"context"
	"log/slog"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/KasumiMercury/primind-daily-reminder/internal/domain"
)

type bigQueryRecord struct {
	RecordedAt   time.Time              `bigquery:"recorded_at"`
	ReconciledAt time.Time              `bigquery:"reconciled_at"`
	RunID        string                 `bigquery:"run_id"`
	Action       string                 `bigquery:"action"`
	TriggerAt    bigquery.NullTimestamp `bigquery:"trigger_at"`
	PendingCount int64                  `bigquery:"pending_count"`
	Test         bool                   `bigquery:"test"`
	SubmitFailed bool                   `bigquery:"submit_failed"`
}

func newBigQueryRecord(record domain.ReconcileRecord, recordedAt time.Time) *bigQueryRecord {
	return &bigQueryRecord{
		RecordedAt:   recordedAt,
		ReconciledAt: record.At,
		RunID:        record.RunID,
		Action:       record.Action.String(),
		TriggerAt: bigquery.NullTimestamp{
			Timestamp: record.TriggerAt,
			Valid:     !record.TriggerAt.IsZero(),
		},
		PendingCount: int64(record.PendingCount),
		Test:         record.Test,
		SubmitFailed: record.SubmitFailed,
	}
}

type bigQueryRecorder struct {
	client   *bigquery.Client
	inserter *bigquery.Inserter
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.ReconcileRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "reconciliation recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.BigQueryProjectID == "" {
		slog.WarnContext(ctx, "BigQuery project ID not configured, reconciliation recording disabled")
		return NewNoopRecorder(), nil
	}

	client, err := bigquery.NewClient(ctx, cfg.BigQueryProjectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create BigQuery client, reconciliation recording disabled",
			slog.String("error", err.Error()),
			slog.String("project_id", cfg.BigQueryProjectID),
		)
		return NewNoopRecorder(), nil
	}

	slog.InfoContext(ctx, "reconciliation recorder initialized",
		slog.String("type", "bigquery"),
		slog.String("project_id", cfg.BigQueryProjectID),
		slog.String("dataset", cfg.BigQueryDataset),
		slog.String("table", cfg.BigQueryTable),
	)

	return &bigQueryRecorder{
		client:   client,
		inserter: client.Dataset(cfg.BigQueryDataset).Table(cfg.BigQueryTable).Inserter(),
	}, nil
}

func (r *bigQueryRecorder) Record(ctx context.Context, record domain.ReconcileRecord) error {
	if err := r.inserter.Put(ctx, newBigQueryRecord(record, time.Now())); err != nil {
		slog.WarnContext(ctx, "failed to insert reconciliation to BigQuery",
			slog.String("error", err.Error()),
			slog.String("run_id", record.RunID),
		)
	}
	return nil
}

func (r *bigQueryRecorder) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
