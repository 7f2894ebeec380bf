package handlers

import (
	"errors"
	"net/http"

	contentRepo "churchapp/database/repository/content"
	"churchapp/models"
	"churchapp/services/content"
	"churchapp/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContentHandler serves the admin CRUD endpoints for notices, weekly posts
// and photo albums.
type ContentHandler struct {
	Service content.ContentService
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(svc content.ContentService) *ContentHandler {
	return &ContentHandler{Service: svc}
}

// createContentRequest is the payload for creating a content item.
type createContentRequest struct {
	Title   string                 `json:"title" binding:"required"`
	Author  string                 `json:"author"`
	Details []models.ContentDetail `json:"details"`
}

// updateContentRequest is the payload for editing a content item.
type updateContentRequest struct {
	Title  string `json:"title" binding:"required"`
	Author string `json:"author"`
	Active *bool  `json:"active"`
}

// ListHandler returns all content items of one kind, newest first.
func (h *ContentHandler) ListHandler(c *gin.Context) {
	kind := c.Param("kind")
	if !models.ValidKind(kind) {
		utils.JSONError(c, http.StatusBadRequest, "unknown content kind", "")
		return
	}

	items, err := h.Service.List(kind)
	if err != nil {
		zap.L().Error("Failed to list contents", zap.String("kind", kind), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to list contents", "")
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetHandler returns one content item together with its detail sidecars.
func (h *ContentHandler) GetHandler(c *gin.Context) {
	kind, id := c.Param("kind"), c.Param("id")
	item, details, err := h.Service.Get(kind, id)
	if err != nil {
		if errors.Is(err, contentRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "content not found", "")
			return
		}
		zap.L().Error("Failed to fetch content", zap.String("id", id), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch content", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": item, "details": details})
}

// CreateHandler creates a content item with its details.
func (h *ContentHandler) CreateHandler(c *gin.Context) {
	kind := c.Param("kind")
	var req createContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	item := &models.Content{
		Kind:   kind,
		Title:  req.Title,
		Author: req.Author,
	}
	created, err := h.Service.Create(item, req.Details)
	if err != nil {
		zap.L().Error("Failed to create content", zap.String("kind", kind), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to create content", "")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateHandler edits a content item's editable fields.
func (h *ContentHandler) UpdateHandler(c *gin.Context) {
	kind, id := c.Param("kind"), c.Param("id")
	var req updateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	item := &models.Content{
		ID:     id,
		Kind:   kind,
		Title:  req.Title,
		Author: req.Author,
		Active: req.Active == nil || *req.Active,
	}
	if err := h.Service.Update(item); err != nil {
		if errors.Is(err, contentRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "content not found", "")
			return
		}
		zap.L().Error("Failed to update content", zap.String("id", id), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to update content", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "content updated"})
}

// DeleteHandler removes a content item and its details.
func (h *ContentHandler) DeleteHandler(c *gin.Context) {
	kind, id := c.Param("kind"), c.Param("id")
	if err := h.Service.Delete(c.Request.Context(), kind, id); err != nil {
		if errors.Is(err, contentRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "content not found", "")
			return
		}
		zap.L().Error("Failed to delete content", zap.String("id", id), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete content", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "content deleted"})
}

// SaveDetailHandler upserts one detail sidecar of a content item.
func (h *ContentHandler) SaveDetailHandler(c *gin.Context) {
	id := c.Param("id")
	var detail models.ContentDetail
	if err := c.ShouldBindJSON(&detail); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	detail.ContentID = id
	if detail.PictureID == "" {
		detail.PictureID = "body"
	}

	if err := h.Service.SaveDetail(&detail); err != nil {
		zap.L().Error("Failed to save content detail", zap.String("id", id), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to save detail", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "detail saved"})
}
