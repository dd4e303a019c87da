package handler

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/incident-map-go/internal/models"
	"github.com/jengzang/incident-map-go/internal/service"
	"github.com/jengzang/incident-map-go/pkg/response"
)

// DiversityHandler handles HTTP requests for diversity points
type DiversityHandler struct {
	service *service.DiversityService
}

// NewDiversityHandler creates a new diversity handler
func NewDiversityHandler(service *service.DiversityService) *DiversityHandler {
	return &DiversityHandler{service: service}
}

// GetDiversity handles GET /api/diversity
func (h *DiversityHandler) GetDiversity(c *gin.Context) {
	var filter models.DiversityFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	points, err := h.service.GetDiversity(filter)
	if err != nil {
		log.Printf("[DiversityHandler] query failed: %v", err)
		response.InternalError(c, "Failed to get diversity points")
		return
	}
	if points == nil {
		points = []models.DiversityPoint{}
	}

	c.JSON(200, points)
}
