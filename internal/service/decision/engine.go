package decision

import (
	"fmt"
	"time"

	"github.com/KasumiMercury/primind-daily-reminder/internal/calendar"
	"github.com/KasumiMercury/primind-daily-reminder/internal/domain"
)

// Engine decides how the daily reminder schedule should change. It is pure:
// the same inputs always yield the same decision.
type Engine struct {
	cal *calendar.Calendar
}

func NewEngine(cal *calendar.Calendar) *Engine {
	if cal == nil {
		cal = calendar.Local()
	}
	return &Engine{cal: cal}
}

// Decide expects settings with notifications enabled and a pending list that
// already excludes the test request. Only the first pending request is
// inspected.
func (e *Engine) Decide(now time.Time, settings domain.UserSettings, pending []domain.PendingRequest) (domain.ScheduleDecision, error) {
	targets, err := e.Targets(now, settings.DeliveryHour)
	if err != nil {
		return domain.NoDecision(), err
	}

	if len(pending) == 0 {
		return domain.ScheduleAt(targets.TomorrowAt), nil
	}

	first := pending[0].TriggerTime
	if first == nil {
		return domain.CancelAllNoReschedule(), nil
	}

	switch {
	case e.cal.IsSameDay(*first, targets.Tomorrow):
		return domain.CancelAllThenScheduleAt(targets.TomorrowAt), nil
	case e.cal.IsSameDay(*first, now) && first.After(now):
		// e.g. opened at 01:00 while today's 09:00 reminder is still ahead
		return domain.CancelAllThenScheduleAt(targets.TodayAt), nil
	default:
		return domain.CancelAllNoReschedule(), nil
	}
}

// Targets are the candidate trigger times around now.
type Targets struct {
	Today      time.Time
	Tomorrow   time.Time
	TodayAt    time.Time
	TomorrowAt time.Time
}

func (e *Engine) Targets(now time.Time, deliveryHour int) (Targets, error) {
	today := e.cal.StartOfDay(now)

	tomorrow, err := e.cal.AddDays(today, 1)
	if err != nil {
		return Targets{}, fmt.Errorf("failed to compute tomorrow: %w", err)
	}

	todayAt, err := e.cal.AddHours(today, deliveryHour)
	if err != nil {
		return Targets{}, fmt.Errorf("failed to compute today's trigger: %w", err)
	}

	tomorrowAt, err := e.cal.AddHours(tomorrow, deliveryHour)
	if err != nil {
		return Targets{}, fmt.Errorf("failed to compute tomorrow's trigger: %w", err)
	}

	return Targets{
		Today:      today,
		Tomorrow:   tomorrow,
		TodayAt:    todayAt,
		TomorrowAt: tomorrowAt,
	}, nil
}
