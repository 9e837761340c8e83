package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/primind-daily-reminder/internal/calendar"
	"github.com/KasumiMercury/primind-daily-reminder/internal/domain"
	"github.com/KasumiMercury/primind-daily-reminder/internal/service/decision"
	"github.com/KasumiMercury/primind-daily-reminder/internal/testutil"
)

var testContent = domain.NotificationContent{Title: "Today's to-do", Body: "Check your list"}

func ptr(t time.Time) *time.Time {
	return &t
}

func createTestService(
	center domain.NotificationCenter,
	badge domain.BadgeCounter,
	recorder domain.ReconcileRecorder,
	now time.Time,
	opts ...Option,
) *Service {
	engine := decision.NewEngine(calendar.New(time.UTC))
	opts = append([]Option{WithClock(testutil.FixedClock(now)), WithIDGenerator(testutil.SequenceIDs("req"))}, opts...)
	return NewService(center, badge, engine, nil, recorder, opts...)
}

func TestReconcileForTomorrow_NotConfigured(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// no expectations: any call fails the test
	center := domain.NewMockNotificationCenter(ctrl)
	badge := domain.NewMockBadgeCounter(ctrl)

	svc := createTestService(center, badge, nil, time.Date(2024, time.March, 10, 23, 0, 0, 0, time.UTC))

	got := svc.ReconcileForTomorrow(context.Background(), false)
	if got.Action != domain.ActionNone {
		t.Errorf("action: got %s, want %s", got.Action, domain.ActionNone)
	}

	got = svc.ReconcileForTomorrow(context.Background(), true)
	if got.Action != domain.ActionNone {
		t.Errorf("test action: got %s, want %s", got.Action, domain.ActionNone)
	}
}

func TestReconcileForTomorrow_Disabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	center := domain.NewMockNotificationCenter(ctrl)
	center.EXPECT().RemoveAllDelivered(gomock.Any()).Return(nil).Times(2)

	svc := createTestService(center, nil, nil, time.Date(2024, time.March, 10, 23, 0, 0, 0, time.UTC))
	svc.Configure(domain.UserSettings{DeliveryHour: 9, NotificationsEnabled: false}, testContent)

	if got := svc.ReconcileForTomorrow(context.Background(), false); got.Action != domain.ActionNone {
		t.Errorf("action: got %s, want %s", got.Action, domain.ActionNone)
	}
	if got := svc.ReconcileForTomorrow(context.Background(), true); got.Action != domain.ActionNone {
		t.Errorf("test action: got %s, want %s", got.Action, domain.ActionNone)
	}
}

func TestReconcileForTomorrow_TestRequestBypassesEngine(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2024, time.March, 10, 23, 0, 0, 0, time.UTC)

	center := domain.NewMockNotificationCenter(ctrl)
	center.EXPECT().RemoveAllDelivered(gomock.Any()).Return(nil)
	center.EXPECT().
		Submit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *domain.Request) error {
			if req.Identifier != domain.TestRequestIdentifier {
				t.Errorf("identifier: got %q, want %q", req.Identifier, domain.TestRequestIdentifier)
			}
			if req.Trigger.Kind != domain.TriggerInterval {
				t.Errorf("trigger kind: got %s, want %s", req.Trigger.Kind, domain.TriggerInterval)
			}
			if req.Trigger.Interval != 5*time.Second {
				t.Errorf("interval: got %s, want 5s", req.Trigger.Interval)
			}
			if req.Content != testContent {
				t.Errorf("content: got %+v, want %+v", req.Content, testContent)
			}
			return nil
		})

	recorder := domain.NewMockReconcileRecorder(ctrl)
	recorder.EXPECT().
		Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, record domain.ReconcileRecord) error {
			if !record.Test {
				t.Errorf("record should be marked as test")
			}
			return nil
		})

	svc := createTestService(center, nil, recorder, now)
	svc.Configure(domain.UserSettings{DeliveryHour: 9, NotificationsEnabled: true}, testContent)

	got := svc.ReconcileForTomorrow(context.Background(), true)
	if got.Action != domain.ActionScheduleAt {
		t.Errorf("action: got %s, want %s", got.Action, domain.ActionScheduleAt)
	}
	if want := now.Add(5 * time.Second); !got.TriggerAt.Equal(want) {
		t.Errorf("fire time: got %s, want %s", got.TriggerAt, want)
	}
}

func TestReconcileForTomorrow_EmptyScheduleSchedulesTomorrow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	center := domain.NewMockNotificationCenter(ctrl)
	center.EXPECT().RemoveAllDelivered(gomock.Any()).Return(nil)
	center.EXPECT().
		PendingRequests(gomock.Any()).
		Return([]domain.PendingRequest{{Identifier: domain.TestRequestIdentifier}}, nil)
	center.EXPECT().
		Submit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *domain.Request) error {
			if req.Identifier != "req-1" {
				t.Errorf("identifier: got %q, want %q", req.Identifier, "req-1")
			}
			want := domain.DateComponents{Year: 2024, Month: time.March, Day: 11, Hour: 9, Minute: 0}
			if req.Trigger.Kind != domain.TriggerCalendar || req.Trigger.Components != want {
				t.Errorf("trigger: got %+v, want calendar %+v", req.Trigger, want)
			}
			return nil
		})

	svc := createTestService(center, nil, nil, time.Date(2024, time.March, 10, 23, 0, 0, 0, time.UTC))
	svc.Configure(domain.UserSettings{DeliveryHour: 9, NotificationsEnabled: true}, testContent)

	got := svc.ReconcileForTomorrow(context.Background(), false)
	if got.Action != domain.ActionScheduleAt {
		t.Errorf("action: got %s, want %s", got.Action, domain.ActionScheduleAt)
	}
}

func TestReconcileForTomorrow_ReplacesPendingForToday(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2024, time.March, 10, 1, 0, 0, 0, time.UTC)
	pending := []domain.PendingRequest{
		{Identifier: domain.TestRequestIdentifier},
		{Identifier: "old", TriggerTime: ptr(time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC))},
	}

	center := domain.NewMockNotificationCenter(ctrl)
	badge := domain.NewMockBadgeCounter(ctrl)

	gomock.InOrder(
		center.EXPECT().RemoveAllDelivered(gomock.Any()).Return(nil),
		center.EXPECT().PendingRequests(gomock.Any()).Return(pending, nil),
		center.EXPECT().RemoveAllDelivered(gomock.Any()).Return(nil),
		center.EXPECT().PendingRequests(gomock.Any()).Return(pending, nil),
		center.EXPECT().RemovePending(gomock.Any(), []string{"old"}).Return(nil),
		badge.EXPECT().SetBadgeCount(gomock.Any(), 0).Return(nil),
		center.EXPECT().
			Submit(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req *domain.Request) error {
				want := domain.DateComponents{Year: 2024, Month: time.March, Day: 10, Hour: 9, Minute: 0}
				if req.Trigger.Components != want {
					t.Errorf("components: got %+v, want %+v", req.Trigger.Components, want)
				}
				return nil
			}),
	)

	svc := createTestService(center, badge, nil, now)
	svc.Configure(domain.UserSettings{DeliveryHour: 9, NotificationsEnabled: true}, testContent)

	got := svc.ReconcileForTomorrow(context.Background(), false)
	if got.Action != domain.ActionCancelAllThenScheduleAt {
		t.Errorf("action: got %s, want %s", got.Action, domain.ActionCancelAllThenScheduleAt)
	}
	if want := time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC); !got.TriggerAt.Equal(want) {
		t.Errorf("trigger: got %s, want %s", got.TriggerAt, want)
	}
}

func TestReconcileForTomorrow_StaleScheduleIsClearedOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	pending := []domain.PendingRequest{
		{Identifier: "stale", TriggerTime: ptr(time.Date(2024, time.March, 8, 9, 0, 0, 0, time.UTC))},
	}

	center := domain.NewMockNotificationCenter(ctrl)
	center.EXPECT().RemoveAllDelivered(gomock.Any()).Return(nil).Times(2)
	center.EXPECT().PendingRequests(gomock.Any()).Return(pending, nil).Times(2)
	center.EXPECT().RemovePending(gomock.Any(), []string{"stale"}).Return(nil)
	center.EXPECT().Submit(gomock.Any(), gomock.Any()).Times(0)

	svc := createTestService(center, nil, nil, time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC))
	svc.Configure(domain.UserSettings{DeliveryHour: 9, NotificationsEnabled: true}, testContent)

	got := svc.ReconcileForTomorrow(context.Background(), false)
	if got.Action != domain.ActionCancelAllNoReschedule {
		t.Errorf("action: got %s, want %s", got.Action, domain.ActionCancelAllNoReschedule)
	}
}

func TestReconcileForTomorrow_FailuresLeaveScheduleUnchanged(t *testing.T) {
	tests := []struct {
		name    string
		now     time.Time
		pending []domain.PendingRequest
		err     error
	}{
		{
			name: "pending fetch fails",
			now:  time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC),
			err:  errors.New("center unavailable"),
		},
		{
			name: "date arithmetic overflows",
			now:  time.Date(9999, time.December, 31, 12, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			center := domain.NewMockNotificationCenter(ctrl)
			center.EXPECT().RemoveAllDelivered(gomock.Any()).Return(nil)
			center.EXPECT().PendingRequests(gomock.Any()).Return(tt.pending, tt.err)

			svc := createTestService(center, nil, nil, tt.now)
			svc.Configure(domain.UserSettings{DeliveryHour: 9, NotificationsEnabled: true}, testContent)

			got := svc.ReconcileForTomorrow(context.Background(), false)
			if got.Action != domain.ActionNone {
				t.Errorf("action: got %s, want %s", got.Action, domain.ActionNone)
			}
		})
	}
}

func TestReconcileForTomorrow_SubmitFailureIsSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	center := domain.NewMockNotificationCenter(ctrl)
	center.EXPECT().RemoveAllDelivered(gomock.Any()).Return(nil)
	center.EXPECT().PendingRequests(gomock.Any()).Return(nil, nil)
	center.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(errors.New("rejected"))

	recorder := domain.NewMockReconcileRecorder(ctrl)
	recorder.EXPECT().
		Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, record domain.ReconcileRecord) error {
			if !record.SubmitFailed {
				t.Errorf("record should flag the failed submit")
			}
			if record.Action != domain.ActionScheduleAt {
				t.Errorf("action: got %s, want %s", record.Action, domain.ActionScheduleAt)
			}
			return errors.New("recorder down")
		})

	svc := createTestService(center, nil, recorder, time.Date(2024, time.March, 10, 23, 0, 0, 0, time.UTC))
	svc.Configure(domain.UserSettings{DeliveryHour: 9, NotificationsEnabled: true}, testContent)

	got := svc.ReconcileForTomorrow(context.Background(), false)
	if got.Action != domain.ActionScheduleAt {
		t.Errorf("action: got %s, want %s", got.Action, domain.ActionScheduleAt)
	}
}

func TestInitialSetup(t *testing.T) {
	tests := []struct {
		name          string
		granted       bool
		permissionErr error
		wantGranted   bool
	}{
		{name: "granted schedules first reminder", granted: true, wantGranted: true},
		{name: "denied reports false", granted: false, wantGranted: false},
		{name: "error reports false", granted: true, permissionErr: errors.New("boom"), wantGranted: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			center := domain.NewMockNotificationCenter(ctrl)
			badge := domain.NewMockBadgeCounter(ctrl)

			center.EXPECT().RemoveAllDelivered(gomock.Any()).Return(nil).AnyTimes()
			center.EXPECT().PendingRequests(gomock.Any()).Return(nil, nil).AnyTimes()
			badge.EXPECT().SetBadgeCount(gomock.Any(), 0).Return(nil)
			center.EXPECT().
				RequestPermission(gomock.Any(), domain.DefaultAuthorizationOptions()).
				Return(tt.granted, tt.permissionErr)

			submits := 0
			if tt.wantGranted {
				submits = 1
			}
			center.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(nil).Times(submits)

			svc := createTestService(center, badge, nil, time.Date(2024, time.March, 10, 23, 0, 0, 0, time.UTC))
			svc.Configure(domain.UserSettings{DeliveryHour: 9, NotificationsEnabled: true}, testContent)

			calls := 0
			var got bool
			svc.InitialSetup(context.Background(), func(granted bool) {
				calls++
				got = granted
			})

			if calls != 1 {
				t.Fatalf("callback calls: got %d, want 1", calls)
			}
			if got != tt.wantGranted {
				t.Errorf("granted: got %v, want %v", got, tt.wantGranted)
			}
		})
	}
}

func TestOnNotificationsDisabled_KeepsTestRequestAndDefersBadgeReset(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	center := domain.NewMockNotificationCenter(ctrl)
	badge := domain.NewMockBadgeCounter(ctrl)

	center.EXPECT().RemoveAllDelivered(gomock.Any()).Return(nil)
	center.EXPECT().PendingRequests(gomock.Any()).Return([]domain.PendingRequest{
		{Identifier: "a"},
		{Identifier: domain.TestRequestIdentifier},
		{Identifier: "b"},
	}, nil)
	center.EXPECT().RemovePending(gomock.Any(), []string{"a", "b"}).Return(nil)

	var deferred []func()
	svc := createTestService(center, badge, nil, time.Now(), WithDispatcher(func(fn func()) {
		deferred = append(deferred, fn)
	}))

	svc.OnNotificationsDisabled(context.Background())

	if len(deferred) != 1 {
		t.Fatalf("deferred calls: got %d, want 1", len(deferred))
	}

	badge.EXPECT().SetBadgeCount(gomock.Any(), 0).Return(nil)
	deferred[0]()
}

func TestConfigure_ReplacesWholesale(t *testing.T) {
	svc := NewService(nil, nil, nil, nil, nil)

	if _, _, ok := svc.Configuration(); ok {
		t.Fatalf("expected no configuration before Configure")
	}

	svc.Configure(domain.UserSettings{DeliveryHour: 7, NotificationsEnabled: true}, testContent)
	svc.Configure(domain.UserSettings{DeliveryHour: 20}, domain.NotificationContent{Title: "new"})

	settings, content, ok := svc.Configuration()
	if !ok {
		t.Fatalf("expected configuration")
	}
	if settings.DeliveryHour != 20 || settings.NotificationsEnabled {
		t.Errorf("settings: got %+v", settings)
	}
	if content.Title != "new" || content.Body != "" {
		t.Errorf("content: got %+v", content)
	}
}
