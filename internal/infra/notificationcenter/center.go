package notificationcenter

import (
	"context"

	"github.com/KasumiMercury/primind-daily-reminder/internal/domain"
)

// Center is what the host needs from a backend beyond the scheduler contract:
// the delivery webhook and read-only views.
type Center interface {
	domain.NotificationCenter
	domain.BadgeCounter
	MarkDelivered(ctx context.Context, identifier string) error
	DeliveredRequests(ctx context.Context) ([]domain.PendingRequest, error)
	BadgeCount(ctx context.Context) (int, error)
}

var (
	_ Center = (*RedisCenter)(nil)
	_ Center = (*MemoryCenter)(nil)
)
