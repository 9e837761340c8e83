package domain

import "errors"

var (
	ErrDateArithmetic      = errors.New("date arithmetic out of range")
	ErrPermissionDenied    = errors.New("notification permission denied")
	ErrSubmitFailed        = errors.New("notification submit failed")
	ErrInvalidDeliveryHour = errors.New("delivery hour must be within 0..23")
	ErrRequestNotFound     = errors.New("notification request not found")
)
