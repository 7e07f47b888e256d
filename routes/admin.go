package routes

import (
	"sakubun/controllers"
	"sakubun/middlewares"

	"github.com/gin-gonic/gin"
)

// SetupAdminRoutes registers the administrative endpoints behind the admin
// role guard.
func SetupAdminRoutes(router *gin.RouterGroup, ac *controllers.AdminController) {
	admin := router.Group("/admin")
	admin.Use(middlewares.AdminOnly())
	{
		admin.POST("/quota/reset", ac.ResetQuota)
		admin.GET("/attempts/export", ac.ExportAttempts)
		admin.GET("/metrics", ac.GetMetrics)
	}
}
