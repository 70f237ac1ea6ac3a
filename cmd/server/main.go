package main

import (
	"fmt"
	"log"
	"net/http"

	"gamerate/backend/internal/config"
	"gamerate/backend/internal/database"
	"gamerate/backend/internal/handler"

	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "gamerate/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Game Rating API
// @version         1.0
// @description     Personal game-rating catalog: games with multi-dimensional ratings, reviews and tags.
// @host            localhost:8080
// @BasePath        /
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	db, err := database.Connect(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Database connection established.")

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	handler.RegisterRoutes(router, db)

	fmt.Println("Server is running on " + cfg.ListenAddr)
	fmt.Println("Swagger UI is available at http://localhost:8080/swagger/index.html")
	log.Fatal(router.Run(cfg.ListenAddr))
}
