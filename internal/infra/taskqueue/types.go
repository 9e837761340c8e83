package taskqueue

import "time"

// NotificationTask is the delivery payload. TaskName names the queued task
// (identifier-unixnano from the notification center) and falls back to
// RequestID when empty. RequestID is what the delivery callback reads.
type NotificationTask struct {
	TaskName   string    `json:"-"`
	RequestID  string    `json:"request_id"`
	Namespace  string    `json:"namespace"`
	ScheduleAt time.Time `json:"-"`

	Title string `json:"title"`
	Body  string `json:"body"`
	Sound string `json:"sound,omitempty"`
}

type TaskResponse struct {
	Name         string    `json:"name"`
	ScheduleTime time.Time `json:"schedule_time"`
	CreateTime   time.Time `json:"create_time"`
}

type PrimindTaskRequest struct {
	Task PrimindTask `json:"task"`
}

type PrimindTask struct {
	Name         string             `json:"name,omitempty"`
	HTTPRequest  PrimindHTTPRequest `json:"httpRequest"`
	ScheduleTime string             `json:"scheduleTime,omitempty"`
}

type PrimindHTTPRequest struct {
	URL     string            `json:"url,omitempty"`
	Body    string            `json:"body"`
	Headers map[string]string `json:"headers,omitempty"`
}

type PrimindTaskResponse struct {
	Name         string `json:"name"`
	ScheduleTime string `json:"scheduleTime"`
	CreateTime   string `json:"createTime"`
}

func (t *NotificationTask) name() string {
	if t.TaskName != "" {
		return t.TaskName
	}
	return t.RequestID
}
