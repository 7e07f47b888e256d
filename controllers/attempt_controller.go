package controllers

import (
	"strconv"

	"sakubun/services"

	"github.com/gin-gonic/gin"
)

// AttemptController serves the read-only and bookmark/review surface over
// recorded attempts.
type AttemptController struct {
	Store services.AttemptStore
	Quota services.QuotaCounter
}

const defaultHistoryLimit = 20

// ListAttempts returns the user's graded history, newest first.
func (ac *AttemptController) ListAttempts(c *gin.Context) {
	userID := c.GetString("userId")

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultHistoryLimit)))
	if err != nil || limit <= 0 {
		limit = defaultHistoryLimit
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	attempts, err := ac.Store.ListAttempts(c.Request.Context(), userID, limit, offset)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to load attempts: " + err.Error()})
		return
	}
	c.JSON(200, gin.H{"attempts": attempts})
}

// ToggleBookmark flips the bookmark flag on one attempt.
func (ac *AttemptController) ToggleBookmark(c *gin.Context) {
	userID := c.GetString("userId")
	attemptID := c.Param("id")

	bookmarked, err := ac.Store.ToggleBookmark(c.Request.Context(), userID, attemptID)
	if err != nil {
		c.JSON(404, gin.H{"error": "Attempt not found"})
		return
	}
	c.JSON(200, gin.H{"isBookmarked": bookmarked})
}

// MarkReviewed records one review replay of an attempt.
func (ac *AttemptController) MarkReviewed(c *gin.Context) {
	userID := c.GetString("userId")
	attemptID := c.Param("id")

	if err := ac.Store.MarkReviewed(c.Request.Context(), userID, attemptID); err != nil {
		c.JSON(404, gin.H{"error": "Attempt not found"})
		return
	}
	c.JSON(200, gin.H{"message": "Review recorded"})
}

// DeleteAll performs the bulk user-data reset.
func (ac *AttemptController) DeleteAll(c *gin.Context) {
	userID := c.GetString("userId")

	if err := ac.Store.DeleteAllForUser(c.Request.Context(), userID); err != nil {
		c.JSON(500, gin.H{"error": "Failed to delete attempts: " + err.Error()})
		return
	}
	c.JSON(200, gin.H{"message": "All practice history deleted"})
}

// GetProgress returns the user's per-difficulty problem numbers and today's
// quota usage.
func (ac *AttemptController) GetProgress(c *gin.Context) {
	userID := c.GetString("userId")

	numbers, err := ac.Store.ProblemNumbers(c.Request.Context(), userID)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to load progress: " + err.Error()})
		return
	}
	c.JSON(200, gin.H{
		"problemNumbers": numbers,
		"todayCount":     ac.Quota.Count(userID),
		"dailyLimit":     ac.Quota.Ceiling(),
	})
}
