package daily

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/KasumiMercury/primind-daily-reminder/internal/domain"
)

const DefaultSchedule = "5 0 * * *"

// Reconciler is the part of the reminder service the driver calls.
type Reconciler interface {
	ReconcileForTomorrow(ctx context.Context, isTest bool) domain.ScheduleDecision
}

// Executor runs fn on the control flow that owns the reconciler.
type Executor interface {
	Do(ctx context.Context, fn func()) error
}

type Config struct {
	Schedule   string
	Location   *time.Location
	RunOnStart bool
}

// Driver reconciles the daily reminder on a cron schedule, shortly after
// local midnight by default.
type Driver struct {
	cron       *cron.Cron
	executor   Executor
	reconciler Reconciler
	schedule   string
	runOnStart bool

	ctx    context.Context
	cancel context.CancelFunc
}

func NewDriver(executor Executor, reconciler Reconciler, cfg Config) (*Driver, error) {
	schedule := cfg.Schedule
	if schedule == "" {
		schedule = DefaultSchedule
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}

	parser := cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

	d := &Driver{
		cron:       cron.New(cron.WithParser(parser), cron.WithLocation(loc)),
		executor:   executor,
		reconciler: reconciler,
		schedule:   schedule,
		runOnStart: cfg.RunOnStart,
	}
	d.ctx, d.cancel = context.WithCancel(context.Background())

	if _, err := d.cron.AddFunc(schedule, func() { d.RunNow(d.ctx) }); err != nil {
		return nil, fmt.Errorf("failed to parse daily schedule %q: %w", schedule, err)
	}

	return d, nil
}

// Start begins cron triggering. With RunOnStart the first reconciliation runs
// before Start returns.
func (d *Driver) Start(ctx context.Context) {
	if d.runOnStart {
		d.RunNow(ctx)
	}
	d.cron.Start()

	slog.InfoContext(ctx, "daily reconciliation driver started",
		slog.String("schedule", d.schedule),
		slog.String("tz", d.cron.Location().String()),
	)
}

// RunNow reconciles once through the executor.
func (d *Driver) RunNow(ctx context.Context) {
	workCtx := context.WithoutCancel(ctx)
	var decision domain.ScheduleDecision
	err := d.executor.Do(ctx, func() {
		decision = d.reconciler.ReconcileForTomorrow(workCtx, false)
	})
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			slog.WarnContext(ctx, "daily reconciliation not run",
				slog.String("error", err.Error()),
			)
		}
		return
	}

	slog.InfoContext(ctx, "daily reconciliation finished",
		slog.String("action", decision.Action.String()),
	)
}

// Next reports when the schedule fires next.
func (d *Driver) Next() time.Time {
	entries := d.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

// Stop ends cron triggering and waits for a running reconciliation, bounded
// by ctx.
func (d *Driver) Stop(ctx context.Context) {
	d.cancel()
	select {
	case <-d.cron.Stop().Done():
	case <-ctx.Done():
	}
	slog.InfoContext(ctx, "daily reconciliation driver stopped")
}
