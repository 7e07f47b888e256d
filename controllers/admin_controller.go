package controllers

import (
	"encoding/csv"
	"strconv"
	"time"

	"sakubun/services"

	"github.com/gin-gonic/gin"
)

// AdminController serves the administrative surface: quota resets, the
// attempts CSV export, and evaluator health counters.
type AdminController struct {
	Store     services.AttemptStore
	Quota     services.QuotaCounter
	Evaluator *services.Evaluator
}

type QuotaResetRequest struct {
	UserID string `json:"userId" binding:"required"`
	Date   string `json:"date"`
}

// ResetQuota zeroes a user's daily counter.
func (ac *AdminController) ResetQuota(c *gin.Context) {
	var req QuotaResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}
	ac.Quota.Reset(req.UserID, req.Date)
	c.JSON(200, gin.H{"message": "Quota reset", "userId": req.UserID})
}

// ExportAttempts streams every recorded attempt as CSV.
func (ac *AdminController) ExportAttempts(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil || limit < 0 {
		limit = 0
	}

	attempts, err := ac.Store.ListAllAttempts(c.Request.Context(), limit)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to load attempts: " + err.Error()})
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", "attachment; filename=attempts.csv")

	writer := csv.NewWriter(c.Writer)
	writer.Write([]string{
		"id", "userId", "difficultyLevel", "japaneseSentence",
		"userTranslation", "correctTranslation", "rating",
		"isBookmarked", "reviewCount", "createdAt",
	})
	for _, attempt := range attempts {
		writer.Write([]string{
			attempt.ID.Hex(),
			attempt.UserID,
			string(attempt.DifficultyLevel),
			attempt.JapaneseSentence,
			attempt.UserTranslation,
			attempt.CorrectTranslation,
			strconv.Itoa(attempt.Rating),
			strconv.FormatBool(attempt.IsBookmarked),
			strconv.Itoa(attempt.ReviewCount),
			attempt.CreatedAt.Format(time.RFC3339),
		})
	}
	writer.Flush()
}

// GetMetrics exposes the evaluator fallback counter so a systemic Gemini
// outage is visible instead of hiding behind silently degraded answers.
func (ac *AdminController) GetMetrics(c *gin.Context) {
	c.JSON(200, gin.H{
		"evaluatorFallbacks": ac.Evaluator.FallbackCount(),
	})
}
