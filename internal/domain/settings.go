package domain

import "fmt"

// UserSettings is supplied by the host and replaced wholesale whenever the user
// changes their preferences.
type UserSettings struct {
	DeliveryHour         int  `json:"delivery_hour"`
	NotificationsEnabled bool `json:"notifications_enabled"`
}

func (s UserSettings) Validate() error {
	if s.DeliveryHour < 0 || s.DeliveryHour > 23 {
		return fmt.Errorf("%w: %d", ErrInvalidDeliveryHour, s.DeliveryHour)
	}
	return nil
}

// NotificationContent is passed through to the notification center untouched.
type NotificationContent struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Sound string `json:"sound,omitempty"`
}
