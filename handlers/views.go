package handlers

import (
	"net/http"

	"churchapp/models"
	"churchapp/services/tasks"
	"churchapp/services/views"
	"churchapp/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ViewHandler serves the public read-marker endpoint. Writing a marker also
// queues the counter sync so the increment happens off the request path.
type ViewHandler struct {
	Service    views.ViewService
	TaskClient *asynq.Client
}

// NewViewHandler creates a new ViewHandler.
func NewViewHandler(svc views.ViewService, taskClient *asynq.Client) *ViewHandler {
	return &ViewHandler{Service: svc, TaskClient: taskClient}
}

type recordViewRequest struct {
	Kind      string `json:"kind" binding:"required"`
	ContentID string `json:"contentId" binding:"required"`
	Viewer    string `json:"viewer"`
}

// RecordHandler stores a view marker and queues the counter increment.
func (h *ViewHandler) RecordHandler(c *gin.Context) {
	var req recordViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "kind and contentId are required", "")
		return
	}

	marker, err := h.Service.RecordView(req.Kind, req.ContentID, req.Viewer)
	if err != nil {
		if !models.ValidKind(req.Kind) {
			utils.JSONError(c, http.StatusBadRequest, "unknown content kind", "")
			return
		}
		zap.L().Error("Failed to record view", zap.String("contentId", req.ContentID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to record view", "")
		return
	}

	payload := models.ViewSyncPayload{Kind: req.Kind, ContentID: req.ContentID}
	if err := tasks.EnqueueViewSync(h.TaskClient, payload); err != nil {
		// The marker is already stored; the counter catches up on the next
		// marker for the same item.
		zap.L().Warn("Failed to queue view sync", zap.String("contentId", req.ContentID), zap.Error(err))
	}

	c.JSON(http.StatusCreated, marker)
}
