package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/sharesuki/internal/app/controllers"
	"github.com/yigit/sharesuki/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	skillController *controllers.SkillController,
	matchingController *controllers.MatchingController,
	vocabularyController *controllers.VocabularyController,
	notifyTimeout time.Duration,
) {
	// API version group
	v1 := router.Group("/api/v1")

	skills := v1.Group("/skills")
	{
		skills.POST("", skillController.CreateSkill)
		skills.GET("", skillController.ListSkills)
		skills.GET("/:id", skillController.GetSkill)
		skills.PUT("/:id", skillController.UpdateSkill)
		skills.DELETE("/:id", skillController.DeleteSkill)
		skills.GET("/:id/matches", skillController.GetMatches)
	}

	matching := v1.Group("/matching")
	{
		matching.POST("/:id/notify", middleware.WriteDeadline(notifyTimeout), matchingController.NotifyMutualMatches) // Synchronous pass
		matching.POST("/notify-all", matchingController.NotifyAll)                                                    // Queued full run
		matching.GET("/stats", matchingController.GetStats)
	}

	v1.GET("/vocabulary", vocabularyController.GetVocabulary)
}
