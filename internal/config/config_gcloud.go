//go:build gcloud

package config

import (
	"errors"
	"fmt"
)

// Validate requires a full Cloud Tasks queue path and the delivery callback
// URL. GCLOUD_TASKS_ENDPOINT is optional and only set for an emulator.
func (c *TaskQueueConfig) Validate() error {
	var errs []error

	if c.GCloudProjectID == "" {
		errs = append(errs, errors.New("GCLOUD_PROJECT_ID is required"))
	}
	if c.GCloudLocationID == "" {
		errs = append(errs, errors.New("GCLOUD_LOCATION_ID is required"))
	}
	if c.GCloudQueueID == "" {
		errs = append(errs, errors.New("GCLOUD_QUEUE_ID is required"))
	}
	if c.GCloudTargetURL == "" {
		if c.TargetURL == "" {
			errs = append(errs, errors.New("GCLOUD_TARGET_URL is required"))
		} else {
			c.GCloudTargetURL = c.TargetURL
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("task queue configuration errors: %w", errors.Join(errs...))
	}

	return nil
}
