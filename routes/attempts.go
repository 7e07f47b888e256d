package routes

import (
	"sakubun/controllers"

	"github.com/gin-gonic/gin"
)

// SetupAttemptRoutes registers the history, bookmark, review and progress
// endpoints.
func SetupAttemptRoutes(router *gin.RouterGroup, ac *controllers.AttemptController) {
	attempts := router.Group("/attempts")
	{
		attempts.GET("", ac.ListAttempts)
		attempts.DELETE("", ac.DeleteAll)
		attempts.POST("/:id/bookmark", ac.ToggleBookmark)
		attempts.POST("/:id/review", ac.MarkReviewed)
	}
	router.GET("/progress", ac.GetProgress)
}
