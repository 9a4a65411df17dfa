package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"mediguard-backend/models"
	"mediguard-backend/services"
)

type TriageController struct {
	triageService *services.TriageService
}

func NewTriageController(triageService *services.TriageService) *TriageController {
	return &TriageController{
		triageService: triageService,
	}
}

// Assess classifies the reported symptoms. A free-text description is
// reduced to known symptom keywords first when no symptom list is sent.
func (tc *TriageController) Assess(c *gin.Context) {
	var req models.AssessRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	symptoms := req.Symptoms
	if len(symptoms) == 0 && strings.TrimSpace(req.Description) != "" {
		symptoms = tc.triageService.ExtractSymptoms(req.Description)
	}

	c.JSON(http.StatusOK, models.AssessResponse{
		Assessment: tc.triageService.AssessWithCare(symptoms),
		AgeGroup:   req.AgeGroup,
		Gender:     req.Gender,
	})
}

// GetQuickSelectSymptoms returns the symptom checklist
func (tc *TriageController) GetQuickSelectSymptoms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"symptoms": tc.triageService.QuickSelectSymptoms(),
	})
}

// ExtractSymptoms turns a free-text description into symptom keywords
func (tc *TriageController) ExtractSymptoms(c *gin.Context) {
	var req struct {
		Description string `json:"description" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"symptoms": tc.triageService.ExtractSymptoms(req.Description),
	})
}

func (tc *TriageController) GetRemedy(c *gin.Context) {
	complaint := c.Param("complaint")

	remedy, ok := tc.triageService.RemedyFor(complaint)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "No home remedy for this complaint",
			"complaint": complaint,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"complaint": complaint,
		"remedy":    remedy,
	})
}

// ListFirstAid returns the first-aid topics and the general principles
func (tc *TriageController) ListFirstAid(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"topics":             tc.triageService.FirstAidTopics(),
		"general_principles": tc.triageService.GeneralFirstAid(),
	})
}

// GetFirstAid answers with the general principles when the topic has no
// specific instruction.
func (tc *TriageController) GetFirstAid(c *gin.Context) {
	topic := c.Param("topic")

	instruction, ok := tc.triageService.FirstAidFor(topic)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error":              "No first aid instructions for this topic",
			"topic":              topic,
			"general_principles": tc.triageService.GeneralFirstAid(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"topic":       topic,
		"instruction": instruction,
	})
}
