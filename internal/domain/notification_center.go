package domain

import "context"

//go:generate mockgen -source=notification_center.go -destination=notification_center_mock.go -package=domain

// AuthorizationOptions are the presentation capabilities asked for when
// requesting permission.
type AuthorizationOptions struct {
	Alert bool
	Sound bool
	Badge bool
}

// DefaultAuthorizationOptions asks for alerts, sounds and badges.
func DefaultAuthorizationOptions() AuthorizationOptions {
	return AuthorizationOptions{Alert: true, Sound: true, Badge: true}
}

// NotificationCenter is the scheduler that owns pending and delivered
// notifications. PendingRequests returns requests in the center's own order,
// test request included.
type NotificationCenter interface {
	PendingRequests(ctx context.Context) ([]PendingRequest, error)
	RemoveAllDelivered(ctx context.Context) error
	RemovePending(ctx context.Context, identifiers []string) error
	Submit(ctx context.Context, req *Request) error
	RequestPermission(ctx context.Context, opts AuthorizationOptions) (bool, error)
}

// BadgeCounter controls the visible unread-count indicator.
type BadgeCounter interface {
	SetBadgeCount(ctx context.Context, count int) error
}
