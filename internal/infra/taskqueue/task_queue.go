package taskqueue

import "context"

//go:generate mockgen -source=task_queue.go -destination=mock.go -package=taskqueue

// TaskQueue delivers a notification at its schedule time by calling back the
// delivery webhook. Tasks are named by NotificationTask.TaskName, which the
// notification center sets to the request identifier plus the submission
// instant in nanoseconds.
type TaskQueue interface {
	RegisterNotification(ctx context.Context, task *NotificationTask) (*TaskResponse, error)
	DeleteTask(ctx context.Context, taskID string) error
}
