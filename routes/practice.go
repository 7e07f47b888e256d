package routes

import (
	"sakubun/controllers"

	"github.com/gin-gonic/gin"
)

// SetupPracticeRoutes registers the problem-dispatch and evaluation
// endpoints. /translate is kept as an alias observed in older clients; both
// routes run the same canonical pipeline.
func SetupPracticeRoutes(router *gin.RouterGroup, pc *controllers.PracticeController) {
	router.POST("/problem", pc.GetProblem)
	router.POST("/evaluate", pc.Evaluate)
	router.POST("/translate", pc.Evaluate)
}
