package domain

import "time"

type Action string

const (
	ActionNone                    Action = "none"
	ActionScheduleAt              Action = "schedule_at"
	ActionCancelAllThenScheduleAt Action = "cancel_all_then_schedule_at"
	ActionCancelAllNoReschedule   Action = "cancel_all_no_reschedule"
)

func (a Action) String() string {
	return string(a)
}

// CancelsPending reports whether the action clears the existing schedule.
func (a Action) CancelsPending() bool {
	return a == ActionCancelAllThenScheduleAt || a == ActionCancelAllNoReschedule
}

// Schedules reports whether the action submits a new request.
func (a Action) Schedules() bool {
	return a == ActionScheduleAt || a == ActionCancelAllThenScheduleAt
}

// ScheduleDecision is computed fresh on every reconciliation and never stored.
type ScheduleDecision struct {
	Action    Action
	TriggerAt time.Time
}

func NoDecision() ScheduleDecision {
	return ScheduleDecision{Action: ActionNone}
}

func ScheduleAt(t time.Time) ScheduleDecision {
	return ScheduleDecision{Action: ActionScheduleAt, TriggerAt: t}
}

func CancelAllThenScheduleAt(t time.Time) ScheduleDecision {
	return ScheduleDecision{Action: ActionCancelAllThenScheduleAt, TriggerAt: t}
}

func CancelAllNoReschedule() ScheduleDecision {
	return ScheduleDecision{Action: ActionCancelAllNoReschedule}
}
