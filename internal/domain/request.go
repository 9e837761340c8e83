package domain

import "time"

// TestRequestIdentifier tags the one-shot request used to preview a reminder.
// It is never treated as part of the daily schedule.
const TestRequestIdentifier = "testnotification"

// TestRequestDelay is how long after submission a test request fires.
const TestRequestDelay = 5 * time.Second

type TriggerKind string

const (
	TriggerCalendar TriggerKind = "calendar"
	TriggerInterval TriggerKind = "interval"
)

func (k TriggerKind) String() string {
	return string(k)
}

// DateComponents mirrors the fields a calendar trigger matches on.
type DateComponents struct {
	Year   int        `json:"year"`
	Month  time.Month `json:"month"`
	Day    int        `json:"day"`
	Hour   int        `json:"hour"`
	Minute int        `json:"minute"`
}

func DateComponentsOf(t time.Time) DateComponents {
	return DateComponents{
		Year:   t.Year(),
		Month:  t.Month(),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
	}
}

// Time resolves the components in loc.
func (c DateComponents) Time(loc *time.Location) time.Time {
	return time.Date(c.Year, c.Month, c.Day, c.Hour, c.Minute, 0, 0, loc)
}

// Trigger is non-repeating. Calendar triggers fire at Components, interval
// triggers fire Interval after the request was accepted.
type Trigger struct {
	Kind       TriggerKind    `json:"kind"`
	Components DateComponents `json:"components,omitempty"`
	Interval   time.Duration  `json:"interval,omitempty"`
}

func NewCalendarTrigger(at time.Time) Trigger {
	return Trigger{
		Kind:       TriggerCalendar,
		Components: DateComponentsOf(at),
	}
}

func NewIntervalTrigger(d time.Duration) Trigger {
	return Trigger{
		Kind:     TriggerInterval,
		Interval: d,
	}
}

// NextFireTime returns the absolute time the trigger fires for a request
// accepted at acceptedAt.
func (t Trigger) NextFireTime(acceptedAt time.Time) time.Time {
	if t.Kind == TriggerInterval {
		return acceptedAt.Add(t.Interval)
	}
	return t.Components.Time(acceptedAt.Location())
}

// Request is a one-shot notification request handed to the notification center.
type Request struct {
	Identifier string              `json:"identifier"`
	Content    NotificationContent `json:"content"`
	Trigger    Trigger             `json:"trigger"`
}

func (r *Request) IsTest() bool {
	return r.Identifier == TestRequestIdentifier
}

// PendingRequest is a snapshot of a request still waiting to fire.
// TriggerTime is nil when the request has no calendar trigger.
type PendingRequest struct {
	Identifier  string     `json:"identifier"`
	TriggerTime *time.Time `json:"trigger_time,omitempty"`
}

func (p PendingRequest) IsTest() bool {
	return p.Identifier == TestRequestIdentifier
}

// WithoutTestRequests drops the test request from a pending snapshot while
// keeping the notification center's order.
func WithoutTestRequests(pending []PendingRequest) []PendingRequest {
	filtered := make([]PendingRequest, 0, len(pending))
	for _, p := range pending {
		if !p.IsTest() {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
