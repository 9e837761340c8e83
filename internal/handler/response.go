package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-daily-reminder/internal/domain"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type DecisionResponse struct {
	Action    string     `json:"action"`
	TriggerAt *time.Time `json:"trigger_at,omitempty"`
}

func newDecisionResponse(d domain.ScheduleDecision) DecisionResponse {
	resp := DecisionResponse{Action: d.Action.String()}
	if d.Action.Schedules() {
		at := d.TriggerAt
		resp.TriggerAt = &at
	}
	return resp
}

type ConfigureRequest struct {
	DeliveryHour         *int                       `json:"delivery_hour"`
	NotificationsEnabled bool                       `json:"notifications_enabled"`
	Content              domain.NotificationContent `json:"content"`
}

type ConfigurationResponse struct {
	Settings domain.UserSettings        `json:"settings"`
	Content  domain.NotificationContent `json:"content"`
}

type SetupResponse struct {
	Granted bool `json:"granted"`
}

type PendingResponse struct {
	Pending    []domain.PendingRequest `json:"pending"`
	Delivered  []domain.PendingRequest `json:"delivered"`
	BadgeCount int                     `json:"badge_count"`
}

// DeliveryTask is the subset of the queued task payload the callback reads.
type DeliveryTask struct {
	RequestID string `json:"request_id"`
	Namespace string `json:"namespace"`
}

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func respondError(c *gin.Context, status int, errType, message string) {
	c.JSON(status, ErrorResponse{
		Error:   errType,
		Message: message,
	})
}

func respondLoopUnavailable(c *gin.Context, err error) {
	respondError(c, http.StatusServiceUnavailable, "unavailable", err.Error())
}
