//go:build !gcloud

package reconcilerecorder

import (
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/KasumiMercury/primind-daily-reminder/internal/domain"
)

func tagValue(p *write.Point, key string) string {
	for _, tag := range p.TagList() {
		if tag.Key == key {
			return tag.Value
		}
	}
	return ""
}

func hasField(p *write.Point, key string) bool {
	for _, field := range p.FieldList() {
		if field.Key == key {
			return true
		}
	}
	return false
}

func TestNewPoint(t *testing.T) {
	at := time.Date(2024, 3, 10, 23, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		record      domain.ReconcileRecord
		wantRunID   string
		wantTrigger bool
	}{
		{
			name: "scheduled reconciliation",
			record: domain.ReconcileRecord{
				RunID:        "run-1",
				At:           at,
				Action:       domain.ActionScheduleAt,
				TriggerAt:    time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC),
				PendingCount: 0,
			},
			wantRunID:   "run-1",
			wantTrigger: true,
		},
		{
			name: "cleared schedule without run id",
			record: domain.ReconcileRecord{
				At:           at,
				Action:       domain.ActionCancelAllNoReschedule,
				PendingCount: 2,
			},
			wantRunID:   "default",
			wantTrigger: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPoint(tt.record)

			if p.Name() != measurement {
				t.Errorf("expected measurement %s, got %s", measurement, p.Name())
			}
			if got := tagValue(p, "run_id"); got != tt.wantRunID {
				t.Errorf("expected run_id %s, got %s", tt.wantRunID, got)
			}
			if got := tagValue(p, "action"); got != tt.record.Action.String() {
				t.Errorf("expected action %s, got %s", tt.record.Action, got)
			}
			if hasField(p, "trigger_unix") != tt.wantTrigger {
				t.Errorf("expected trigger field present = %v", tt.wantTrigger)
			}
			if !p.Time().Equal(at) {
				t.Errorf("expected point time %v, got %v", at, p.Time())
			}
		})
	}
}
