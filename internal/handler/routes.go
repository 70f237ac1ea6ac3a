package handler

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterRoutes mounts the games and tags API onto the router.
func RegisterRoutes(router *gin.Engine, db *gorm.DB) {
	games := NewGameHandler(db)
	tags := NewTagHandler(db)

	gameRoutes := router.Group("/games")
	{
		gameRoutes.GET("", games.GetGames)
		gameRoutes.POST("", games.CreateGame)
		gameRoutes.GET("/:id", games.GetGameByID)
		gameRoutes.PUT("/:id", games.UpdateGame)
		gameRoutes.DELETE("/:id", games.DeleteGame)
		gameRoutes.POST("/:id/tags", games.AddGameTags)
		gameRoutes.DELETE("/:id/tags/:tagId", games.RemoveGameTag)
	}

	tagRoutes := router.Group("/tags")
	{
		tagRoutes.GET("", tags.GetTags)
		tagRoutes.DELETE("/:id", tags.DeleteTag)
	}
}
