package reconcilerecorder

import (
	"context"

	"github.com/KasumiMercury/primind-daily-reminder/internal/domain"
)

type noopRecorder struct{}

func NewNoopRecorder() domain.ReconcileRecorder {
	return &noopRecorder{}
}

func (n *noopRecorder) Record(_ context.Context, _ domain.ReconcileRecord) error {
	return nil
}

func (n *noopRecorder) Close() error {
	return nil
}
