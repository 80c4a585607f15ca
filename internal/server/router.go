package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/hallowgraph/backend/internal/handlers"
)

type RouterConfig struct {
	CharacterHandler *handlers.CharacterHandler
	GraphHandler     *handlers.GraphHandler
	FeatureHandler   *handlers.FeatureHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.GET("/characters", cfg.CharacterHandler.List)
		api.GET("/search", cfg.CharacterHandler.Search)
		api.GET("/graph", cfg.GraphHandler.HouseFilter)
		api.GET("/graph/:name", cfg.GraphHandler.Neighborhood)
		api.GET("/features", cfg.FeatureHandler.Export)
		api.GET("/features/:name", cfg.FeatureHandler.PersonFeatures)
		api.POST("/predict", cfg.FeatureHandler.Predict)
	}

	return router
}
