package notificationcenter_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-daily-reminder/internal/calendar"
	"github.com/KasumiMercury/primind-daily-reminder/internal/domain"
	"github.com/KasumiMercury/primind-daily-reminder/internal/infra/notificationcenter"
	"github.com/KasumiMercury/primind-daily-reminder/internal/service/decision"
	"github.com/KasumiMercury/primind-daily-reminder/internal/service/reminder"
	"github.com/KasumiMercury/primind-daily-reminder/internal/testutil"
)

func TestMemoryCenterSubmitAndPending(t *testing.T) {
	ctx := context.Background()
	accepted := time.Date(2024, 3, 10, 23, 0, 0, 0, time.UTC)
	center := notificationcenter.NewMemoryCenter(true, testutil.FixedClock(accepted))

	fireAt := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)
	if err := center.Submit(ctx, &domain.Request{
		Identifier: "req-1",
		Trigger:    domain.NewCalendarTrigger(fireAt),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := center.Submit(ctx, &domain.Request{
		Identifier: domain.TestRequestIdentifier,
		Trigger:    domain.NewIntervalTrigger(domain.TestRequestDelay),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pending, err := center.PendingRequests(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending requests, got %d", len(pending))
	}

	byID := make(map[string]domain.PendingRequest)
	for _, p := range pending {
		byID[p.Identifier] = p
	}
	if tt := byID["req-1"].TriggerTime; tt == nil || !tt.Equal(fireAt) {
		t.Errorf("expected calendar trigger at %v, got %v", fireAt, tt)
	}
	if byID[domain.TestRequestIdentifier].TriggerTime != nil {
		t.Error("expected interval trigger to have no calendar trigger time")
	}
}

func TestMemoryCenterSubmitReplacesIdentifier(t *testing.T) {
	ctx := context.Background()
	center := notificationcenter.NewMemoryCenter(true, testutil.FixedClock(time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)))

	first := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)
	second := time.Date(2024, 3, 12, 9, 0, 0, 0, time.UTC)
	for _, at := range []time.Time{first, second} {
		if err := center.Submit(ctx, &domain.Request{Identifier: "req-1", Trigger: domain.NewCalendarTrigger(at)}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	pending, _ := center.PendingRequests(ctx)
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending request, got %d", len(pending))
	}
	if !pending[0].TriggerTime.Equal(second) {
		t.Errorf("expected replaced trigger %v, got %v", second, *pending[0].TriggerTime)
	}
}

func TestMemoryCenterSubmitInvalid(t *testing.T) {
	center := notificationcenter.NewMemoryCenter(true, nil)

	err := center.Submit(context.Background(), &domain.Request{})
	if !errors.Is(err, notificationcenter.ErrInvalidRequestData) {
		t.Errorf("expected ErrInvalidRequestData, got %v", err)
	}
}

func TestMemoryCenterMarkDelivered(t *testing.T) {
	ctx := context.Background()
	center := notificationcenter.NewMemoryCenter(true, nil)

	if err := center.Submit(ctx, &domain.Request{
		Identifier: "req-1",
		Trigger:    domain.NewCalendarTrigger(time.Now().Add(time.Hour)),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := center.MarkDelivered(ctx, "req-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := center.MarkDelivered(ctx, "req-1"); !errors.Is(err, domain.ErrRequestNotFound) {
		t.Errorf("expected ErrRequestNotFound, got %v", err)
	}

	pending, _ := center.PendingRequests(ctx)
	delivered, _ := center.DeliveredRequests(ctx)
	badge, _ := center.BadgeCount(ctx)
	if len(pending) != 0 || len(delivered) != 1 || badge != 1 {
		t.Errorf("expected 0 pending, 1 delivered, badge 1; got %d, %d, %d", len(pending), len(delivered), badge)
	}

	if err := center.RemoveAllDelivered(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	delivered, _ = center.DeliveredRequests(ctx)
	if len(delivered) != 0 {
		t.Errorf("expected no delivered requests, got %d", len(delivered))
	}
}

func TestMemoryCenterRequestPermission(t *testing.T) {
	tests := []struct {
		name              string
		defaultPermission bool
	}{
		{name: "granted by default", defaultPermission: true},
		{name: "denied by default", defaultPermission: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			center := notificationcenter.NewMemoryCenter(tt.defaultPermission, nil)

			for range 2 {
				granted, err := center.RequestPermission(context.Background(), domain.DefaultAuthorizationOptions())
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if granted != tt.defaultPermission {
					t.Errorf("expected %v, got %v", tt.defaultPermission, granted)
				}
			}
		})
	}
}

func newReminderService(center *notificationcenter.MemoryCenter, now time.Time) *reminder.Service {
	engine := decision.NewEngine(calendar.New(time.UTC))
	return reminder.NewService(center, center, engine, nil, nil, reminder.WithClock(testutil.FixedClock(now)))
}

func TestReconcileAgainstMemoryCenter(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 23, 0, 0, 0, time.UTC)
	content := domain.NotificationContent{Title: "Daily check-in", Body: "Time to review your day"}

	t.Run("disabled leaves nothing pending", func(t *testing.T) {
		center := notificationcenter.NewMemoryCenter(true, testutil.FixedClock(now))
		svc := newReminderService(center, now)
		svc.Configure(domain.UserSettings{DeliveryHour: 9, NotificationsEnabled: true}, content)
		svc.ReconcileForTomorrow(ctx, false)

		svc.Configure(domain.UserSettings{DeliveryHour: 9, NotificationsEnabled: false}, content)
		svc.OnNotificationsDisabled(ctx)
		svc.ReconcileForTomorrow(ctx, false)

		pending, _ := center.PendingRequests(ctx)
		if len(pending) != 0 {
			t.Errorf("expected no pending requests, got %d", len(pending))
		}
	})

	t.Run("repeated reconciliation keeps one request", func(t *testing.T) {
		center := notificationcenter.NewMemoryCenter(true, testutil.FixedClock(now))
		svc := newReminderService(center, now)
		svc.Configure(domain.UserSettings{DeliveryHour: 9, NotificationsEnabled: true}, content)

		want := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)
		for range 3 {
			svc.ReconcileForTomorrow(ctx, false)

			pending, _ := center.PendingRequests(ctx)
			if len(pending) != 1 {
				t.Fatalf("expected 1 pending request, got %d", len(pending))
			}
			if !pending[0].TriggerTime.Equal(want) {
				t.Errorf("expected trigger %v, got %v", want, *pending[0].TriggerTime)
			}
		}
	})

	t.Run("test request survives cancellation", func(t *testing.T) {
		center := notificationcenter.NewMemoryCenter(true, testutil.FixedClock(now))
		svc := newReminderService(center, now)
		svc.Configure(domain.UserSettings{DeliveryHour: 9, NotificationsEnabled: true}, content)

		svc.ReconcileForTomorrow(ctx, false)
		svc.ReconcileForTomorrow(ctx, true)
		svc.OnNotificationsDisabled(ctx)

		pending, _ := center.PendingRequests(ctx)
		if len(pending) != 1 || !pending[0].IsTest() {
			t.Errorf("expected only the test request to remain, got %+v", pending)
		}
	})

	t.Run("initial setup denied schedules nothing", func(t *testing.T) {
		center := notificationcenter.NewMemoryCenter(false, testutil.FixedClock(now))
		svc := newReminderService(center, now)
		svc.Configure(domain.UserSettings{DeliveryHour: 9, NotificationsEnabled: true}, content)

		var calls []bool
		svc.InitialSetup(ctx, func(granted bool) { calls = append(calls, granted) })

		if len(calls) != 1 || calls[0] {
			t.Errorf("expected a single false callback, got %v", calls)
		}
		pending, _ := center.PendingRequests(ctx)
		if len(pending) != 0 {
			t.Errorf("expected no pending requests, got %d", len(pending))
		}
	})
}
