package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-daily-reminder/internal/domain"
	"github.com/KasumiMercury/primind-daily-reminder/internal/infra/notificationcenter"
)

// ReminderService is the orchestrator surface the handler drives.
type ReminderService interface {
	Configure(settings domain.UserSettings, content domain.NotificationContent)
	Configuration() (domain.UserSettings, domain.NotificationContent, bool)
	ReconcileForTomorrow(ctx context.Context, isTest bool) domain.ScheduleDecision
	InitialSetup(ctx context.Context, onComplete func(granted bool))
	OnNotificationsDisabled(ctx context.Context)
}

// Executor serializes calls into the reminder service.
type Executor interface {
	Do(ctx context.Context, fn func()) error
}

type ReminderHandler struct {
	executor Executor
	service  ReminderService
	center   notificationcenter.Center
}

func NewReminderHandler(executor Executor, service ReminderService, center notificationcenter.Center) *ReminderHandler {
	return &ReminderHandler{
		executor: executor,
		service:  service,
		center:   center,
	}
}

func (h *ReminderHandler) Register(r gin.IRouter) {
	reminder := r.Group("/reminder")
	{
		reminder.GET("/configuration", h.HandleGetConfiguration)
		reminder.POST("/configure", h.HandleConfigure)
		reminder.POST("/reconcile", h.HandleReconcile)
		reminder.POST("/setup", h.HandleSetup)
		reminder.POST("/disable", h.HandleDisable)
		reminder.GET("/pending", h.HandlePending)
	}
	r.POST("/notifications/deliver", h.HandleDeliver)
	r.POST("/notifications/:id/delivered", h.HandleDelivered)
}

func (h *ReminderHandler) HandleConfigure(c *gin.Context) {
	ctx := c.Request.Context()

	var req ConfigureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "request unmarshal failed",
			slog.String("error", err.Error()),
			slog.String("path", c.Request.URL.Path),
		)
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	if req.DeliveryHour == nil {
		respondError(c, http.StatusBadRequest, "validation_error", "delivery_hour is required")
		return
	}

	settings := domain.UserSettings{
		DeliveryHour:         *req.DeliveryHour,
		NotificationsEnabled: req.NotificationsEnabled,
	}
	if err := settings.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	workCtx := context.WithoutCancel(ctx)
	var disabled bool
	if err := h.executor.Do(ctx, func() {
		prev, _, configured := h.service.Configuration()
		h.service.Configure(settings, req.Content)
		if configured && prev.NotificationsEnabled && !settings.NotificationsEnabled {
			disabled = true
			h.service.OnNotificationsDisabled(workCtx)
		}
	}); err != nil {
		respondLoopUnavailable(c, err)
		return
	}

	slog.InfoContext(ctx, "reminder configured",
		slog.Int("delivery_hour", settings.DeliveryHour),
		slog.Bool("notifications_enabled", settings.NotificationsEnabled),
		slog.Bool("schedule_cleared", disabled),
	)

	c.JSON(http.StatusOK, ConfigurationResponse{Settings: settings, Content: req.Content})
}

func (h *ReminderHandler) HandleGetConfiguration(c *gin.Context) {
	var (
		settings domain.UserSettings
		content  domain.NotificationContent
		ok       bool
	)
	if err := h.executor.Do(c.Request.Context(), func() {
		settings, content, ok = h.service.Configuration()
	}); err != nil {
		respondLoopUnavailable(c, err)
		return
	}
	if !ok {
		respondError(c, http.StatusNotFound, "not_configured", "reminder has not been configured")
		return
	}

	c.JSON(http.StatusOK, ConfigurationResponse{Settings: settings, Content: content})
}

func (h *ReminderHandler) HandleReconcile(c *gin.Context) {
	ctx := c.Request.Context()

	isTest := false
	if v := c.Query("test"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			respondError(c, http.StatusBadRequest, "validation_error", "test must be a boolean")
			return
		}
		isTest = parsed
	}

	workCtx := context.WithoutCancel(ctx)
	var decision domain.ScheduleDecision
	if err := h.executor.Do(ctx, func() {
		decision = h.service.ReconcileForTomorrow(workCtx, isTest)
	}); err != nil {
		respondLoopUnavailable(c, err)
		return
	}

	c.JSON(http.StatusOK, newDecisionResponse(decision))
}

func (h *ReminderHandler) HandleSetup(c *gin.Context) {
	ctx := c.Request.Context()

	workCtx := context.WithoutCancel(ctx)
	var granted bool
	if err := h.executor.Do(ctx, func() {
		h.service.InitialSetup(workCtx, func(g bool) {
			granted = g
		})
	}); err != nil {
		respondLoopUnavailable(c, err)
		return
	}

	c.JSON(http.StatusOK, SetupResponse{Granted: granted})
}

func (h *ReminderHandler) HandleDisable(c *gin.Context) {
	ctx := c.Request.Context()

	workCtx := context.WithoutCancel(ctx)
	if err := h.executor.Do(ctx, func() {
		h.service.OnNotificationsDisabled(workCtx)
	}); err != nil {
		respondLoopUnavailable(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: "reminder schedule cleared"})
}

func (h *ReminderHandler) HandlePending(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		resp PendingResponse
		err  error
	)
	if loopErr := h.executor.Do(ctx, func() {
		if resp.Pending, err = h.center.PendingRequests(ctx); err != nil {
			return
		}
		if resp.Delivered, err = h.center.DeliveredRequests(ctx); err != nil {
			return
		}
		resp.BadgeCount, err = h.center.BadgeCount(ctx)
	}); loopErr != nil {
		respondLoopUnavailable(c, loopErr)
		return
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to load notification state",
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "processing_error", "failed to load notification state")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// HandleDeliver is the task queue callback. The body is the queued
// notification task.
func (h *ReminderHandler) HandleDeliver(c *gin.Context) {
	var task DeliveryTask
	if err := c.ShouldBindJSON(&task); err != nil || task.RequestID == "" {
		respondError(c, http.StatusBadRequest, "validation_error", "request_id is required")
		return
	}
	h.markDelivered(c, task.RequestID)
}

func (h *ReminderHandler) HandleDelivered(c *gin.Context) {
	h.markDelivered(c, c.Param("id"))
}

// markDelivered fires the request and, for a daily reminder, schedules the
// next one right away.
func (h *ReminderHandler) markDelivered(c *gin.Context, id string) {
	ctx := c.Request.Context()
	workCtx := context.WithoutCancel(ctx)

	var err error
	next := domain.NoDecision()
	if loopErr := h.executor.Do(ctx, func() {
		if err = h.center.MarkDelivered(workCtx, id); err != nil {
			return
		}
		if id != domain.TestRequestIdentifier {
			next = h.service.ReconcileForTomorrow(workCtx, false)
		}
	}); loopErr != nil {
		respondLoopUnavailable(c, loopErr)
		return
	}

	switch {
	case errors.Is(err, domain.ErrRequestNotFound):
		slog.InfoContext(ctx, "delivered request no longer pending",
			slog.String("request_id", id),
		)
		respondError(c, http.StatusNotFound, "not_found", "request is not pending")
	case err != nil:
		slog.ErrorContext(ctx, "failed to mark request delivered",
			slog.String("request_id", id),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "processing_error", "failed to mark request delivered")
	default:
		slog.InfoContext(ctx, "request delivered",
			slog.String("request_id", id),
			slog.String("next_action", next.Action.String()),
		)
		c.JSON(http.StatusOK, SuccessResponse{Success: true})
	}
}
