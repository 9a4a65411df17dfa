package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"mediguard-backend/models"
	"mediguard-backend/services"
)

type ToolsController struct {
	toolsService *services.HealthToolsService
}

func NewToolsController(toolsService *services.HealthToolsService) *ToolsController {
	return &ToolsController{
		toolsService: toolsService,
	}
}

func (tc *ToolsController) CheckHeartRate(c *gin.Context) {
	var req models.HeartRateRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	reading, err := tc.toolsService.CheckHeartRate(req.BPM)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "Invalid heart rate",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, reading)
}

func (tc *ToolsController) TrackSymptom(c *gin.Context) {
	var req models.TrackerRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	entry, err := tc.toolsService.TrackSymptom(c.Request.Context(), req.SessionID, req.Symptom, req.Severity)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrEmptySymptom) || errors.Is(err, services.ErrInvalidSeverity) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{
			"error":   "Failed to add symptom to tracker",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// GetTrackedSymptoms returns the most recent tracker entries of a session
func (tc *ToolsController) GetTrackedSymptoms(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "session_id is required",
		})
		return
	}

	entries, err := tc.toolsService.RecentSymptoms(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to retrieve symptom history",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": sessionID,
		"entries":    entries,
	})
}

// GetEmergencyContacts returns the emergency numbers together with the
// warning signs that warrant calling them.
func (tc *ToolsController) GetEmergencyContacts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"contacts": tc.toolsService.EmergencyContacts(),
		"signs":    tc.toolsService.EmergencySigns(),
	})
}

func (tc *ToolsController) GetEmergencySigns(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"signs": tc.toolsService.EmergencySigns(),
	})
}
