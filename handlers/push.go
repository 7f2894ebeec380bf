package handlers

import (
	"errors"
	"net/http"
	"time"

	pushlogRepo "churchapp/database/repository/pushlog"
	subscriberRepo "churchapp/database/repository/subscriber"
	"churchapp/models"
	"churchapp/services/notification"
	"churchapp/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PushHandler serves subscriber management, the push test trigger and the
// delivery-log lookup.
type PushHandler struct {
	Subscribers subscriberRepo.SubscriberRepository
	Logs        pushlogRepo.PushLogRepository
	Notifier    notification.NotificationService
}

// NewPushHandler creates a new PushHandler.
func NewPushHandler(subs subscriberRepo.SubscriberRepository, logs pushlogRepo.PushLogRepository, notifier notification.NotificationService) *PushHandler {
	return &PushHandler{Subscribers: subs, Logs: logs, Notifier: notifier}
}

type upsertSubscriberRequest struct {
	UUID        string `json:"uuid" binding:"required"`
	FCMToken    string `json:"fcmToken"`
	PushEnabled bool   `json:"pushEnabled"`
	PushTime    string `json:"pushTime"`
}

// ListHandler returns every registered device.
func (h *PushHandler) ListHandler(c *gin.Context) {
	subs, err := h.Subscribers.List()
	if err != nil {
		zap.L().Error("Failed to list subscribers", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to list subscribers", "")
		return
	}
	c.JSON(http.StatusOK, subs)
}

// UpsertHandler registers or updates a device's push settings.
func (h *PushHandler) UpsertHandler(c *gin.Context) {
	var req upsertSubscriberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.PushTime != "" {
		if _, err := time.Parse("15:04", req.PushTime); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "pushTime must be in HH:mm form", "")
			return
		}
	}

	sub := &models.Subscriber{
		UUID:        req.UUID,
		FCMToken:    req.FCMToken,
		PushEnabled: req.PushEnabled,
		PushTime:    req.PushTime,
		UpdatedAt:   time.Now(),
	}
	if err := h.Subscribers.Upsert(sub); err != nil {
		zap.L().Error("Failed to upsert subscriber", zap.String("uuid", req.UUID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to save subscriber", "")
		return
	}
	c.JSON(http.StatusOK, sub)
}

// DeleteHandler removes a device registration.
func (h *PushHandler) DeleteHandler(c *gin.Context) {
	uuid := c.Param("uuid")
	if err := h.Subscribers.Delete(uuid); err != nil {
		if errors.Is(err, subscriberRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "subscriber not found", "")
			return
		}
		zap.L().Error("Failed to delete subscriber", zap.String("uuid", uuid), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete subscriber", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "subscriber deleted"})
}

// TestHandler sends the daily notification to one device immediately,
// bypassing its configured push time. The device uuid comes from the path
// parameter or, for convenience on GET requests, the ?uuid= query.
func (h *PushHandler) TestHandler(c *gin.Context) {
	uuid := c.Param("uuid")
	if uuid == "" {
		uuid = c.Query("uuid")
	}
	if uuid == "" {
		utils.JSONError(c, http.StatusBadRequest, "uuid is required", "")
		return
	}

	log, err := h.Notifier.DispatchTo(c.Request.Context(), uuid, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, subscriberRepo.ErrNotFound):
			utils.JSONError(c, http.StatusNotFound, "subscriber not found", "")
		case errors.Is(err, notification.ErrPushDisabled):
			utils.JSONError(c, http.StatusNotFound, "push is disabled for this subscriber", "")
		default:
			zap.L().Error("Test push failed", zap.String("uuid", uuid), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "failed to send test push", "")
		}
		return
	}

	resp := gin.H{"uuid": log.UUID, "status": log.Status}
	if log.Error != "" {
		resp["error"] = log.Error
	}
	c.JSON(http.StatusOK, resp)
}

// LogsHandler returns one day's delivery logs. The day comes from the
// ?date=yyyyMMdd query and defaults to today.
func (h *PushHandler) LogsHandler(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = time.Now().Format(notification.DateKeyFormat)
	}
	if _, err := time.Parse(notification.DateKeyFormat, date); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "date must be in yyyyMMdd form", "")
		return
	}

	logs, err := h.Logs.ListByDate(date)
	if err != nil {
		zap.L().Error("Failed to list delivery logs", zap.String("date", date), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to list delivery logs", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "logs": logs})
}
