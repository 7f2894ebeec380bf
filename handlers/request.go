package handlers

import (
	"errors"
	"net/http"
	"time"

	requestRepo "churchapp/database/repository/request"
	"churchapp/models"
	"churchapp/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// RequestHandler serves the account approval queue.
type RequestHandler struct {
	Repo requestRepo.RequestRepository
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(repo requestRepo.RequestRepository) *RequestHandler {
	return &RequestHandler{Repo: repo}
}

// ListHandler returns all pending and approved requests, newest first.
func (h *RequestHandler) ListHandler(c *gin.Context) {
	requests, err := h.Repo.List()
	if err != nil {
		zap.L().Error("Failed to list account requests", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to list account requests", "")
		return
	}
	c.JSON(http.StatusOK, requests)
}

// GetHandler returns one account request.
func (h *RequestHandler) GetHandler(c *gin.Context) {
	id := c.Param("id")
	request, err := h.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, requestRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "account request not found", "")
			return
		}
		zap.L().Error("Failed to fetch account request", zap.String("id", id), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch account request", "")
		return
	}
	c.JSON(http.StatusOK, request)
}

// ApproveHandler marks a request approved and materialises a login account
// from it. Approving the same request twice is rejected so the stored
// password hash is only ever written once.
func (h *RequestHandler) ApproveHandler(c *gin.Context) {
	id := c.Param("id")

	request, err := h.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, requestRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "account request not found", "")
			return
		}
		zap.L().Error("Failed to fetch account request", zap.String("id", id), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to approve request", "")
		return
	}

	if err := h.Repo.Approve(id); err != nil {
		switch {
		case errors.Is(err, requestRepo.ErrAlreadyApproved):
			utils.JSONError(c, http.StatusConflict, "request already approved", "")
		case errors.Is(err, requestRepo.ErrNotFound):
			utils.JSONError(c, http.StatusNotFound, "account request not found", "")
		default:
			zap.L().Error("Failed to approve account request", zap.String("id", id), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "failed to approve request", "")
		}
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		zap.L().Error("Failed to hash password", zap.String("id", id), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to approve request", "")
		return
	}

	account := &models.Account{
		ID:           request.ID,
		LoginID:      request.LoginID,
		PasswordHash: string(hash),
		Role:         "admin",
		CreatedAt:    time.Now(),
	}
	if err := h.Repo.CreateAccount(account); err != nil {
		zap.L().Error("Failed to create account", zap.String("loginId", request.LoginID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to approve request", "")
		return
	}

	zap.L().Info("Account request approved",
		zap.String("id", id),
		zap.String("loginId", request.LoginID))
	c.JSON(http.StatusOK, gin.H{"message": "request approved", "loginId": request.LoginID})
}

// DeleteHandler removes an account request from the queue.
func (h *RequestHandler) DeleteHandler(c *gin.Context) {
	id := c.Param("id")
	if err := h.Repo.Delete(id); err != nil {
		if errors.Is(err, requestRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "account request not found", "")
			return
		}
		zap.L().Error("Failed to delete account request", zap.String("id", id), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete request", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "request deleted"})
}
