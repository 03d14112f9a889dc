package routes

import (
	"aasaasi/controllers"

	"github.com/gin-gonic/gin"
)

// SetupLearningRoutes sets up the grammar, vocabulary and practice test routes
func SetupLearningRoutes(router *gin.RouterGroup, ctrl *controllers.LearningController) {
	grammar := router.Group("/grammar")
	{
		grammar.GET("/topics", ctrl.GrammarTopics)
		grammar.GET("/tips", ctrl.GrammarTips)
		grammar.GET("/test", ctrl.GrammarTest)
	}

	vocab := router.Group("/vocab")
	{
		vocab.GET("/categories", ctrl.VocabCategories)
		vocab.GET("/words", ctrl.VocabWords)
	}

	tests := router.Group("/tests")
	{
		tests.GET("/kinds", ctrl.TestKinds)
		tests.POST("/start", ctrl.StartTest)
		tests.POST("/submit", ctrl.SubmitTest)
	}
}
