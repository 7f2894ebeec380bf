package handlers

import (
	"errors"
	"net/http"
	"time"

	requestRepo "churchapp/database/repository/request"
	"churchapp/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenLifetime = 12 * time.Hour

// AuthHandler serves admin console authentication.
type AuthHandler struct {
	Repo requestRepo.RequestRepository
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(repo requestRepo.RequestRepository) *AuthHandler {
	return &AuthHandler{Repo: repo}
}

type loginRequest struct {
	LoginID  string `json:"loginId" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginHandler verifies admin credentials and issues a session token.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "loginId and password are required", "")
		return
	}

	account, err := h.Repo.GetAccountByLoginID(req.LoginID)
	if err != nil {
		if errors.Is(err, requestRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusUnauthorized, "invalid credentials", "")
			return
		}
		zap.L().Error("Failed to look up account", zap.String("loginId", req.LoginID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "login failed", "")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "invalid credentials", "")
		return
	}

	token, err := utils.GenerateToken(account.ID, account.LoginID, tokenLifetime)
	if err != nil {
		zap.L().Error("Failed to sign token", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "login failed", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"loginId": account.LoginID,
		"role":    account.Role,
	})
}
