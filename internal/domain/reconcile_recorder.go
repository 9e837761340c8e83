package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=reconcile_recorder.go -destination=reconcile_recorder_mock.go -package=domain

type ReconcileRecord struct {
	RunID        string
	At           time.Time
	Action       Action
	TriggerAt    time.Time
	PendingCount int
	Test         bool
	SubmitFailed bool
}

type ReconcileRecorder interface {
	Record(ctx context.Context, record ReconcileRecord) error
	Close() error
}
