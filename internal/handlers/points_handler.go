package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/WorkhubHQ/workhub-backend/internal/models"
	"github.com/WorkhubHQ/workhub-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// PointsHandler handles points-related HTTP requests
type PointsHandler struct {
	pointsService *services.PointsService
}

// NewPointsHandler creates a new PointsHandler
func NewPointsHandler(pointsService *services.PointsService) *PointsHandler {
	return &PointsHandler{
		pointsService: pointsService,
	}
}

// RecordActivityRequest is the payload activity collaborators post when
// their own domain event completes.
type RecordActivityRequest struct {
	EmployeeID   string                     `json:"employeeId" binding:"required"`
	ActivityType models.ActivityType        `json:"activityType" binding:"required"`
	Metadata     models.TransactionMetadata `json:"metadata"`
}

// PenaltyRequest is the admin penalty payload.
type PenaltyRequest struct {
	EmployeeID    string `json:"employeeId" binding:"required"`
	PenaltyAmount int    `json:"penaltyAmount" binding:"required"`
	Reason        string `json:"reason" binding:"required"`
}

// RecordActivity handles POST /points/activities
func (h *PointsHandler) RecordActivity(c *gin.Context) {
	var req RecordActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx, err := h.pointsService.RecordActivity(c.Request.Context(), req.EmployeeID, req.ActivityType, req.Metadata)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, tx)
}

// GetMySummary handles GET /points/my/summary
func (h *PointsHandler) GetMySummary(c *gin.Context) {
	employeeID := c.GetString("userID")
	if employeeID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	summary, err := h.pointsService.GetSummary(c.Request.Context(), employeeID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetMyHistory handles GET /points/my/history
func (h *PointsHandler) GetMyHistory(c *gin.Context) {
	employeeID := c.GetString("userID")
	if employeeID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	history, err := h.pointsService.GetHistory(c.Request.Context(), employeeID, limit)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"employeeId":   employeeID,
		"count":        len(history),
		"transactions": history,
	})
}

// GetLeaderboard handles GET /points/leaderboard
func (h *PointsHandler) GetLeaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	leaderboard, err := h.pointsService.GetLeaderboard(c.Request.Context(), limit)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":       len(leaderboard),
		"leaderboard": leaderboard,
	})
}

// GetEmployeePoints handles GET /points/admin/employees/:employeeId
func (h *PointsHandler) GetEmployeePoints(c *gin.Context) {
	detail, err := h.pointsService.GetLedgerDetail(c.Request.Context(), c.Param("employeeId"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, detail)
}

// GetAllPoints handles GET /points/admin/all
func (h *PointsHandler) GetAllPoints(c *gin.Context) {
	rows, err := h.pointsService.GetAllLedgers(c.Request.Context())
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":  len(rows),
		"points": rows,
	})
}

// ApplyPenalty handles POST /points/admin/penalty
func (h *PointsHandler) ApplyPenalty(c *gin.Context) {
	var req PenaltyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx, err := h.pointsService.ApplyPenalty(c.Request.Context(), req.EmployeeID, req.PenaltyAmount, req.Reason, c.GetString("userEmail"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Penalty applied successfully",
		"transaction": tx,
	})
}

// GetSystemSummary handles GET /points/admin/summary
func (h *PointsHandler) GetSystemSummary(c *gin.Context) {
	summary, err := h.pointsService.GetSystemSummary(c.Request.Context())
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"systemSummary": summary,
		"config": gin.H{
			"monthlyCapPoints": h.pointsService.MonthlyCap(),
			"expiryMonths":     h.pointsService.ExpiryMonths(),
		},
	})
}

// statusFor maps engine errors to HTTP status codes. Transient failures
// (contention, store outage) surface as 503 so callers know a retry of the
// whole operation is safe.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidActivity),
		errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrMissingReason):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrConcurrencyExhausted),
		errors.Is(err, services.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
