package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/KasumiMercury/primind-daily-reminder/internal/domain"
	"github.com/KasumiMercury/primind-daily-reminder/internal/observability/metrics"
	"github.com/KasumiMercury/primind-daily-reminder/internal/observability/tracing"
	"github.com/KasumiMercury/primind-daily-reminder/internal/service/decision"
)

// Dispatcher runs fn on the context that owns the visible UI state.
type Dispatcher func(fn func())

// Service keeps a single daily reminder scheduled with the notification
// center. It holds no locks: Configure and the reconcile, setup and disable
// operations must be called from one control flow.
type Service struct {
	center   domain.NotificationCenter
	badge    domain.BadgeCounter
	engine   *decision.Engine
	metrics  *metrics.ReminderMetrics
	recorder domain.ReconcileRecorder

	now      func() time.Time
	newID    func() string
	dispatch Dispatcher

	settings *domain.UserSettings
	content  *domain.NotificationContent
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		s.newID = newID
	}
}

func WithDispatcher(dispatch Dispatcher) Option {
	return func(s *Service) {
		s.dispatch = dispatch
	}
}

func NewService(
	center domain.NotificationCenter,
	badge domain.BadgeCounter,
	engine *decision.Engine,
	reminderMetrics *metrics.ReminderMetrics,
	recorder domain.ReconcileRecorder,
	opts ...Option,
) *Service {
	s := &Service{
		center:   center,
		badge:    badge,
		engine:   engine,
		metrics:  reminderMetrics,
		recorder: recorder,
		now:      time.Now,
		newID:    uuid.NewString,
		dispatch: func(fn func()) { fn() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Configure replaces the settings and content used by later scheduling.
func (s *Service) Configure(settings domain.UserSettings, content domain.NotificationContent) {
	s.settings = &settings
	s.content = &content
}

// Configuration returns the current settings and content, ok is false until
// Configure has been called.
func (s *Service) Configuration() (domain.UserSettings, domain.NotificationContent, bool) {
	if s.settings == nil || s.content == nil {
		return domain.UserSettings{}, domain.NotificationContent{}, false
	}
	return *s.settings, *s.content, true
}

// ReconcileForTomorrow brings the pending schedule back to exactly one request
// for the next delivery hour. With isTest it instead submits a one-shot test
// request firing in five seconds. Failures never propagate: the returned
// decision is what was applied, ActionNone when nothing was.
func (s *Service) ReconcileForTomorrow(ctx context.Context, isTest bool) domain.ScheduleDecision {
	settings, _, ok := s.Configuration()
	if !ok {
		slog.DebugContext(ctx, "reminder not configured, skipping reconciliation")
		return domain.NoDecision()
	}

	runID := uuid.NewString()
	ctx, span := tracing.StartReconcileSpan(ctx, runID, isTest)
	defer span.End()

	if s.metrics != nil {
		started := time.Now()
		defer func() {
			s.metrics.RecordReconcileDuration(ctx, time.Since(started))
		}()
	}

	if err := s.center.RemoveAllDelivered(ctx); err != nil {
		slog.WarnContext(ctx, "failed to remove delivered notifications",
			slog.String("error", err.Error()),
		)
	}

	if !settings.NotificationsEnabled {
		slog.DebugContext(ctx, "notifications turned off, nothing to schedule")
		tracing.RecordReconcileResult(span, domain.ActionNone.String(), time.Time{}, 0, nil)
		return domain.NoDecision()
	}

	if isTest {
		return s.scheduleTest(ctx, runID, s.now())
	}

	pending, err := s.center.PendingRequests(ctx)
	if err != nil {
		slog.WarnContext(ctx, "failed to fetch pending requests, leaving schedule unchanged",
			slog.String("run_id", runID),
			slog.String("error", err.Error()),
		)
		tracing.RecordReconcileResult(span, domain.ActionNone.String(), time.Time{}, 0, err)
		return domain.NoDecision()
	}
	pending = domain.WithoutTestRequests(pending)

	now := s.now()
	d, err := s.engine.Decide(now, settings, pending)
	if err != nil {
		slog.WarnContext(ctx, "failed to compute schedule, leaving schedule unchanged",
			slog.String("run_id", runID),
			slog.Time("now", now),
			slog.Int("delivery_hour", settings.DeliveryHour),
			slog.String("error", err.Error()),
		)
		tracing.RecordReconcileResult(span, domain.ActionNone.String(), time.Time{}, len(pending), err)
		return domain.NoDecision()
	}

	slog.InfoContext(ctx, "reconciling daily reminder",
		slog.String("run_id", runID),
		slog.String("action", d.Action.String()),
		slog.Time("trigger_at", d.TriggerAt),
		slog.Int("pending_count", len(pending)),
	)

	if d.Action.CancelsPending() {
		s.cancelAllNonTest(ctx)
	}

	submitFailed := false
	if d.Action.Schedules() {
		submitFailed = !s.submit(ctx, s.buildRequest(d.TriggerAt, false))
	}

	if s.metrics != nil {
		s.metrics.RecordReconciliation(ctx, d.Action.String(), false)
	}
	s.record(ctx, domain.ReconcileRecord{
		RunID:        runID,
		At:           now,
		Action:       d.Action,
		TriggerAt:    d.TriggerAt,
		PendingCount: len(pending),
		SubmitFailed: submitFailed,
	})
	tracing.RecordReconcileResult(span, d.Action.String(), d.TriggerAt, len(pending), nil)

	return d
}

func (s *Service) scheduleTest(ctx context.Context, runID string, now time.Time) domain.ScheduleDecision {
	req := s.buildRequest(now, true)
	submitFailed := !s.submit(ctx, req)

	d := domain.ScheduleAt(req.Trigger.NextFireTime(now))

	slog.InfoContext(ctx, "test reminder submitted",
		slog.String("run_id", runID),
		slog.Time("fire_at", d.TriggerAt),
	)

	if s.metrics != nil {
		s.metrics.RecordReconciliation(ctx, d.Action.String(), true)
	}
	s.record(ctx, domain.ReconcileRecord{
		RunID:        runID,
		At:           now,
		Action:       d.Action,
		TriggerAt:    d.TriggerAt,
		Test:         true,
		SubmitFailed: submitFailed,
	})

	return d
}

// InitialSetup clears the schedule, asks for permission and, when granted,
// schedules the first reminder. onComplete is called exactly once.
func (s *Service) InitialSetup(ctx context.Context, onComplete func(granted bool)) {
	ctx, span := tracing.StartInitialSetupSpan(ctx)
	defer span.End()

	complete := func(granted bool) {
		if onComplete != nil {
			onComplete(granted)
		}
	}

	s.cancelAllNonTest(ctx)

	granted, err := s.center.RequestPermission(ctx, domain.DefaultAuthorizationOptions())
	if err != nil {
		slog.WarnContext(ctx, "notification permission request failed",
			slog.String("error", err.Error()),
		)
		s.recordPermission(ctx, "error")
		tracing.RecordError(span, err)
		complete(false)
		return
	}
	if !granted {
		slog.InfoContext(ctx, "notification permission denied")
		s.recordPermission(ctx, "denied")
		tracing.RecordError(span, domain.ErrPermissionDenied)
		complete(false)
		return
	}

	s.recordPermission(ctx, "granted")
	s.ReconcileForTomorrow(ctx, false)
	tracing.RecordError(span, nil)
	complete(true)
}

// OnNotificationsDisabled clears every non-test pending and delivered
// notification without scheduling a replacement.
func (s *Service) OnNotificationsDisabled(ctx context.Context) {
	slog.InfoContext(ctx, "notifications turned off, clearing schedule")
	s.cancelAllNonTest(ctx)
}

// cancelAllNonTest removes delivered notifications and every pending request
// except the test request, then resets the badge on the dispatcher.
func (s *Service) cancelAllNonTest(ctx context.Context) {
	ctx, span := tracing.StartCancelAllSpan(ctx)
	defer span.End()

	if err := s.center.RemoveAllDelivered(ctx); err != nil {
		slog.WarnContext(ctx, "failed to remove delivered notifications",
			slog.String("error", err.Error()),
		)
	}

	pending, err := s.center.PendingRequests(ctx)
	if err != nil {
		slog.WarnContext(ctx, "failed to fetch pending requests for cancellation",
			slog.String("error", err.Error()),
		)
		tracing.RecordError(span, err)
	} else {
		ids := make([]string, 0, len(pending))
		for _, p := range domain.WithoutTestRequests(pending) {
			ids = append(ids, p.Identifier)
		}
		if len(ids) > 0 {
			if err := s.center.RemovePending(ctx, ids); err != nil {
				slog.WarnContext(ctx, "failed to remove pending requests",
					slog.Int("count", len(ids)),
					slog.String("error", err.Error()),
				)
				tracing.RecordError(span, err)
			} else if s.metrics != nil {
				s.metrics.RecordCancelled(ctx, len(ids))
			}
		}
	}

	if s.badge == nil {
		return
	}
	badgeCtx := context.WithoutCancel(ctx)
	s.dispatch(func() {
		if err := s.badge.SetBadgeCount(badgeCtx, 0); err != nil {
			slog.WarnContext(badgeCtx, "failed to reset badge count",
				slog.String("error", err.Error()),
			)
		}
	})
}

// buildRequest creates a one-shot request. Regular requests match the exact
// year, month, day, hour and minute of triggerTime under a fresh identifier;
// test requests fire after a fixed delay under TestRequestIdentifier.
func (s *Service) buildRequest(triggerTime time.Time, isTest bool) *domain.Request {
	req := &domain.Request{
		Identifier: s.newID(),
		Trigger:    domain.NewCalendarTrigger(triggerTime),
	}
	if isTest {
		req.Identifier = domain.TestRequestIdentifier
		req.Trigger = domain.NewIntervalTrigger(domain.TestRequestDelay)
	}
	if s.content != nil {
		req.Content = *s.content
	}
	return req
}

// submit hands req to the notification center. Rejections are logged and
// counted only.
func (s *Service) submit(ctx context.Context, req *domain.Request) bool {
	if err := s.center.Submit(ctx, req); err != nil {
		err = fmt.Errorf("%w: %w", domain.ErrSubmitFailed, err)
		slog.ErrorContext(ctx, "failed to submit notification request",
			slog.String("identifier", req.Identifier),
			slog.String("trigger", req.Trigger.Kind.String()),
			slog.String("error", err.Error()),
		)
		if s.metrics != nil {
			s.metrics.RecordSubmitFailure(ctx, req.IsTest())
		}
		return false
	}

	slog.DebugContext(ctx, "notification request submitted",
		slog.String("identifier", req.Identifier),
		slog.String("trigger", req.Trigger.Kind.String()),
	)
	return true
}

func (s *Service) record(ctx context.Context, record domain.ReconcileRecord) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.Record(ctx, record); err != nil {
		slog.WarnContext(ctx, "failed to record reconciliation",
			slog.String("run_id", record.RunID),
			slog.String("error", err.Error()),
		)
	}
}

func (s *Service) recordPermission(ctx context.Context, outcome string) {
	if s.metrics != nil {
		s.metrics.RecordPermission(ctx, outcome)
	}
}
