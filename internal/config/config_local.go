//go:build !gcloud

package config

import "errors"

// Validate accepts an empty PRIMIND_TASKS_URL: requests are then stored
// without a delivery task.
func (c *TaskQueueConfig) Validate() error {
	if c.PrimindTasksURL != "" && c.TargetURL == "" {
		return errors.New("TASK_QUEUE_TARGET_URL is required when PRIMIND_TASKS_URL is set")
	}
	return nil
}
