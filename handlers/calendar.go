package handlers

import (
	"errors"
	"net/http"
	"time"

	calendarRepo "churchapp/database/repository/calendar"
	"churchapp/models"
	"churchapp/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CalendarHandler serves the church calendar endpoints.
type CalendarHandler struct {
	Repo calendarRepo.CalendarRepository
}

// NewCalendarHandler creates a new CalendarHandler.
func NewCalendarHandler(repo calendarRepo.CalendarRepository) *CalendarHandler {
	return &CalendarHandler{Repo: repo}
}

type calendarRequest struct {
	Title     string `json:"title" binding:"required"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Place     string `json:"place"`
	Memo      string `json:"memo"`
}

func (r *calendarRequest) validate() error {
	if _, err := time.Parse("2006-01-02", r.Date); err != nil {
		return errors.New("date must be in yyyy-MM-dd form")
	}
	return nil
}

// ListHandler returns all entries of one month. The month comes from the
// ?month=yyyy-MM query and defaults to the current month.
func (h *CalendarHandler) ListHandler(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		month = time.Now().Format("2006-01")
	}
	if _, err := time.Parse("2006-01", month); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "month must be in yyyy-MM form", "")
		return
	}

	entries, err := h.Repo.ListByMonth(month)
	if err != nil {
		zap.L().Error("Failed to list calendar entries", zap.String("month", month), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to list calendar entries", "")
		return
	}
	c.JSON(http.StatusOK, entries)
}

// GetHandler returns one calendar entry.
func (h *CalendarHandler) GetHandler(c *gin.Context) {
	id := c.Param("id")
	entry, err := h.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, calendarRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "calendar entry not found", "")
			return
		}
		zap.L().Error("Failed to fetch calendar entry", zap.String("id", id), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch calendar entry", "")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// CreateHandler creates a calendar entry.
func (h *CalendarHandler) CreateHandler(c *gin.Context) {
	var req calendarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := req.validate(); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	entry := &models.CalendarEntry{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Place:     req.Place,
		Memo:      req.Memo,
	}
	if err := h.Repo.Create(entry); err != nil {
		zap.L().Error("Failed to create calendar entry", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to create calendar entry", "")
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// UpdateHandler edits a calendar entry.
func (h *CalendarHandler) UpdateHandler(c *gin.Context) {
	id := c.Param("id")
	var req calendarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := req.validate(); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	entry := &models.CalendarEntry{
		ID:        id,
		Title:     req.Title,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Place:     req.Place,
		Memo:      req.Memo,
	}
	if err := h.Repo.Update(entry); err != nil {
		if errors.Is(err, calendarRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "calendar entry not found", "")
			return
		}
		zap.L().Error("Failed to update calendar entry", zap.String("id", id), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to update calendar entry", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "calendar entry updated"})
}

// DeleteHandler removes a calendar entry.
func (h *CalendarHandler) DeleteHandler(c *gin.Context) {
	id := c.Param("id")
	if err := h.Repo.Delete(id); err != nil {
		if errors.Is(err, calendarRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "calendar entry not found", "")
			return
		}
		zap.L().Error("Failed to delete calendar entry", zap.String("id", id), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete calendar entry", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "calendar entry deleted"})
}
