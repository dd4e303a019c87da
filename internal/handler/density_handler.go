package handler

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/incident-map-go/internal/models"
	"github.com/jengzang/incident-map-go/internal/service"
	"github.com/jengzang/incident-map-go/pkg/response"
)

// DensityHandler handles HTTP requests for density points
type DensityHandler struct {
	service *service.DensityService
}

// NewDensityHandler creates a new density handler
func NewDensityHandler(service *service.DensityService) *DensityHandler {
	return &DensityHandler{service: service}
}

// GetDensity handles GET /api/density
func (h *DensityHandler) GetDensity(c *gin.Context) {
	h.serve(c, false)
}

// GetDensityScaled handles GET /api/density-scaled
func (h *DensityHandler) GetDensityScaled(c *gin.Context) {
	h.serve(c, true)
}

func (h *DensityHandler) serve(c *gin.Context, scaled bool) {
	var filter models.DensityFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	points, err := h.service.GetDensity(filter, scaled)
	if err != nil {
		log.Printf("[DensityHandler] query failed: %v", err)
		response.InternalError(c, "Failed to get density points")
		return
	}
	if points == nil {
		points = []models.DensityPoint{}
	}

	// Raw array, the wire shape the sync engine consumes.
	c.JSON(200, points)
}
