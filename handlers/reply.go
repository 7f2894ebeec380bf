package handlers

import (
	"errors"
	"net/http"
	"time"

	contentRepo "churchapp/database/repository/content"
	replyRepo "churchapp/database/repository/reply"
	"churchapp/models"
	"churchapp/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReplyHandler serves the comment-moderation endpoints. Members post comments
// from the app; the console lists commented posts, drills into one post's
// thread, and hard-deletes individual comments.
type ReplyHandler struct {
	Replies  replyRepo.ReplyRepository
	Contents contentRepo.ContentRepository
}

// NewReplyHandler creates a new ReplyHandler.
func NewReplyHandler(replies replyRepo.ReplyRepository, contents contentRepo.ContentRepository) *ReplyHandler {
	return &ReplyHandler{Replies: replies, Contents: contents}
}

type createReplyRequest struct {
	Kind      string `json:"kind" binding:"required"`
	ContentID string `json:"contentId" binding:"required"`
	UserName  string `json:"userName"`
	UserUID   string `json:"userUid"`
	Body      string `json:"content" binding:"required"`
}

// CreateHandler stores a member comment on a notice or photo album.
func (h *ReplyHandler) CreateHandler(c *gin.Context) {
	var req createReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "kind, contentId and content are required", err.Error())
		return
	}
	if !models.ValidReplyKind(req.Kind) {
		utils.JSONError(c, http.StatusBadRequest, "comments are only supported on notices and photo albums", "")
		return
	}
	if _, err := h.Contents.GetByID(req.Kind, req.ContentID); err != nil {
		if errors.Is(err, contentRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "content not found", "")
			return
		}
		zap.L().Error("Failed to fetch parent content", zap.String("contentId", req.ContentID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to save comment", "")
		return
	}

	reply := &models.Reply{
		ID:           uuid.NewString(),
		Kind:         req.Kind,
		ContentID:    req.ContentID,
		UserName:     req.UserName,
		UserUID:      req.UserUID,
		Body:         req.Body,
		Active:       true,
		RegisteredAt: time.Now(),
	}
	if err := h.Replies.Create(reply); err != nil {
		zap.L().Error("Failed to create reply", zap.String("contentId", req.ContentID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to save comment", "")
		return
	}
	c.JSON(http.StatusCreated, reply)
}

// ListThreadsHandler returns the commented posts of one kind, newest comment
// first. Each row carries the parent's title and author; threads whose parent
// was deleted are dropped from the overview.
func (h *ReplyHandler) ListThreadsHandler(c *gin.Context) {
	kind := c.Param("kind")
	if !models.ValidReplyKind(kind) {
		utils.JSONError(c, http.StatusBadRequest, "comments are only supported on notices and photo albums", "")
		return
	}

	threads, err := h.Replies.ListThreads(kind)
	if err != nil {
		zap.L().Error("Failed to list reply threads", zap.String("kind", kind), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to list comment threads", "")
		return
	}

	out := make([]models.ReplyThread, 0, len(threads))
	for _, thread := range threads {
		parent, err := h.Contents.GetByID(kind, thread.ContentID)
		if err != nil {
			if errors.Is(err, contentRepo.ErrNotFound) {
				continue
			}
			zap.L().Error("Failed to fetch thread parent", zap.String("contentId", thread.ContentID), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "failed to list comment threads", "")
			return
		}
		thread.Title = parent.Title
		thread.Author = parent.Author
		out = append(out, thread)
	}
	c.JSON(http.StatusOK, out)
}

// ListHandler returns one post's comments, oldest first.
func (h *ReplyHandler) ListHandler(c *gin.Context) {
	kind, contentID := c.Param("kind"), c.Param("id")
	if !models.ValidReplyKind(kind) {
		utils.JSONError(c, http.StatusBadRequest, "comments are only supported on notices and photo albums", "")
		return
	}

	replies, err := h.Replies.ListByContent(kind, contentID)
	if err != nil {
		zap.L().Error("Failed to list replies", zap.String("contentId", contentID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to list comments", "")
		return
	}
	c.JSON(http.StatusOK, replies)
}

// DeleteHandler hard-deletes one comment.
func (h *ReplyHandler) DeleteHandler(c *gin.Context) {
	kind, id := c.Param("kind"), c.Param("id")
	if !models.ValidReplyKind(kind) {
		utils.JSONError(c, http.StatusBadRequest, "comments are only supported on notices and photo albums", "")
		return
	}

	if err := h.Replies.Delete(kind, id); err != nil {
		if errors.Is(err, replyRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "comment not found", "")
			return
		}
		zap.L().Error("Failed to delete reply", zap.String("id", id), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete comment", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}
