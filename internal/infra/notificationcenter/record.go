package notificationcenter

import (
	"cmp"
	"slices"
	"strconv"
	"time"

	"github.com/KasumiMercury/primind-daily-reminder/internal/domain"
)

// requestRecord is the stored form of a submitted request.
type requestRecord struct {
	Identifier  string                     `json:"identifier"`
	Content     domain.NotificationContent `json:"content"`
	Trigger     domain.Trigger             `json:"trigger"`
	FireAt      time.Time                  `json:"fire_at"`
	AcceptedAt  time.Time                  `json:"accepted_at"`
	TaskName    string                     `json:"task_name,omitempty"`
	DeliveredAt *time.Time                 `json:"delivered_at,omitempty"`
}

func newRequestRecord(req *domain.Request, acceptedAt time.Time) requestRecord {
	return requestRecord{
		Identifier: req.Identifier,
		Content:    req.Content,
		Trigger:    req.Trigger,
		FireAt:     req.Trigger.NextFireTime(acceptedAt),
		AcceptedAt: acceptedAt,
	}
}

// pending reports the snapshot the scheduler exposes. Only calendar triggers
// carry a next trigger time.
func (r requestRecord) pending() domain.PendingRequest {
	p := domain.PendingRequest{Identifier: r.Identifier}
	if r.Trigger.Kind == domain.TriggerCalendar {
		at := r.FireAt
		p.TriggerTime = &at
	}
	return p
}

// taskName is unique per submission so a replaced identifier never collides
// with a task the queue still remembers.
func taskName(identifier string, acceptedAt time.Time) string {
	return identifier + "-" + strconv.FormatInt(acceptedAt.UnixNano(), 10)
}

// sortBySubmission orders records the way they were accepted.
func sortBySubmission(records []requestRecord) {
	slices.SortFunc(records, func(a, b requestRecord) int {
		if c := a.AcceptedAt.Compare(b.AcceptedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.Identifier, b.Identifier)
	})
}
