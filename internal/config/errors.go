package config

import "errors"

var (
	ErrRedisAddrMissing         = errors.New("REDIS_ADDR is required")
	ErrInvalidRedisDB           = errors.New("REDIS_DB must be a non-negative integer")
	ErrInvalidRedisTLS          = errors.New("REDIS_TLS must be a boolean")
	ErrInvalidTimezone          = errors.New("REMINDER_TIMEZONE must be a valid IANA time zone")
	ErrInvalidPermissionDefault = errors.New("REMINDER_PERMISSION_DEFAULT must be a boolean")
	ErrReminderNamespaceMissing = errors.New("REMINDER_NAMESPACE must not be empty")
)
