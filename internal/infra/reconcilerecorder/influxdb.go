//go:build !gcloud

package reconcilerecorder

import (
	"context"
	"log/slog"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/KasumiMercury/primind-daily-reminder/internal/domain"
)

const measurement = "reminder_reconciliation"

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.ReconcileRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "reconciliation recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, reconciliation recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)

	slog.InfoContext(ctx, "reconciliation recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return &influxDBRecorder{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.InfluxDBOrg, cfg.InfluxDBBucket),
	}, nil
}

func (r *influxDBRecorder) Record(ctx context.Context, record domain.ReconcileRecord) error {
	if err := r.writeAPI.WritePoint(ctx, newPoint(record)); err != nil {
		slog.WarnContext(ctx, "failed to write reconciliation to InfluxDB",
			slog.String("error", err.Error()),
			slog.String("run_id", record.RunID),
			slog.String("action", record.Action.String()),
		)
	}
	return nil
}

func newPoint(record domain.ReconcileRecord) *write.Point {
	runID := record.RunID
	if runID == "" {
		runID = "default"
	}

	fields := map[string]any{
		"pending_count": record.PendingCount,
		"submit_failed": record.SubmitFailed,
	}
	if !record.TriggerAt.IsZero() {
		fields["trigger_unix"] = record.TriggerAt.Unix()
		fields["trigger_at"] = record.TriggerAt.UTC().Format(time.RFC3339)
	}

	at := record.At
	if at.IsZero() {
		at = time.Now()
	}

	return influxdb2.NewPoint(
		measurement,
		map[string]string{
			"run_id": runID,
			"action": record.Action.String(),
			"test":   boolTag(record.Test),
		},
		fields,
		at,
	)
}

func boolTag(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func (r *influxDBRecorder) Close() error {
	if r.client != nil {
		r.client.Close()
	}
	return nil
}
