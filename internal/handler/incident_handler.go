package handler

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/incident-map-go/internal/repository"
	"github.com/jengzang/incident-map-go/internal/service"
	"github.com/jengzang/incident-map-go/pkg/response"
)

// IncidentHandler handles HTTP requests for incident ingestion
type IncidentHandler struct {
	service *service.IncidentService
}

// NewIncidentHandler creates a new incident handler
func NewIncidentHandler(service *service.IncidentService) *IncidentHandler {
	return &IncidentHandler{service: service}
}

// Ingest handles POST /api/incidents with a JSON array body
func (h *IncidentHandler) Ingest(c *gin.Context) {
	var incidents []repository.IncidentInput
	if err := c.ShouldBindJSON(&incidents); err != nil {
		response.BadRequest(c, "Invalid incident payload")
		return
	}

	if err := h.service.Ingest(incidents); err != nil {
		log.Printf("[IncidentHandler] ingest failed: %v", err)
		response.InternalError(c, "Failed to store incidents")
		return
	}

	response.Success(c, gin.H{"count": len(incidents)})
}
