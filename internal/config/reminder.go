package config

import (
	"os"
	"strconv"
	"time"
)

const (
	reminderNamespaceEnv         = "REMINDER_NAMESPACE"
	reminderTimezoneEnv          = "REMINDER_TIMEZONE"
	reminderDailyScheduleEnv     = "REMINDER_DAILY_SCHEDULE"
	reminderPermissionDefaultEnv = "REMINDER_PERMISSION_DEFAULT"
	reminderRunOnStartEnv        = "REMINDER_RUN_ON_START"

	defaultReminderNamespace     = "default"
	defaultReminderDailySchedule = "5 0 * * *"
)

type ReminderConfig struct {
	Namespace         string
	Location          *time.Location
	DailySchedule     string
	DefaultPermission bool
	RunOnStart        bool
}

func LoadReminderConfig() (*ReminderConfig, error) {
	namespace := os.Getenv(reminderNamespaceEnv)
	if namespace == "" {
		namespace = defaultReminderNamespace
	}

	loc := time.Local
	if tz := os.Getenv(reminderTimezoneEnv); tz != "" {
		parsed, err := time.LoadLocation(tz)
		if err != nil {
			return nil, ErrInvalidTimezone
		}
		loc = parsed
	}

	schedule := os.Getenv(reminderDailyScheduleEnv)
	if schedule == "" {
		schedule = defaultReminderDailySchedule
	}

	defaultPermission := true
	if raw := os.Getenv(reminderPermissionDefaultEnv); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, ErrInvalidPermissionDefault
		}
		defaultPermission = parsed
	}

	runOnStart := os.Getenv(reminderRunOnStartEnv) != "false"

	return &ReminderConfig{
		Namespace:         namespace,
		Location:          loc,
		DailySchedule:     schedule,
		DefaultPermission: defaultPermission,
		RunOnStart:        runOnStart,
	}, nil
}

func (c *ReminderConfig) Validate() error {
	if c == nil || c.Namespace == "" {
		return ErrReminderNamespaceMissing
	}
	return nil
}
