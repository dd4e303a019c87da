package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/incident-map-go/internal/database"
	"github.com/jengzang/incident-map-go/internal/handler"
	"github.com/jengzang/incident-map-go/internal/middleware"
	"github.com/jengzang/incident-map-go/internal/repository"
	"github.com/jengzang/incident-map-go/internal/service"
)

// SetupRouter wires repositories, services and handlers onto the gin
// engine.
func SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS: the map client is served from a different origin.
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Incident Map API is running",
		})
	})

	db := database.GetDB()

	densityHandler := handler.NewDensityHandler(
		service.NewDensityService(repository.NewDensityRepository(db)))
	diversityHandler := handler.NewDiversityHandler(
		service.NewDiversityService(repository.NewDiversityRepository(db)))
	metadataHandler := handler.NewMetadataHandler(
		service.NewMetadataService(repository.NewMetadataRepository(db)))
	incidentHandler := handler.NewIncidentHandler(
		service.NewIncidentService(repository.NewIncidentRepository(db)))

	api := r.Group("/api")
	{
		api.GET("/density", densityHandler.GetDensity)
		api.GET("/density-scaled", densityHandler.GetDensityScaled)
		api.GET("/diversity", diversityHandler.GetDiversity)
		api.GET("/metadata", metadataHandler.GetMetadata)

		api.POST("/incidents",
			middleware.RateLimit(10, time.Minute),
			incidentHandler.Ingest)
	}

	return r
}
