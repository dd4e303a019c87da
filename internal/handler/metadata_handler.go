package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/incident-map-go/internal/service"
	"github.com/jengzang/incident-map-go/pkg/response"
)

// MetadataHandler handles HTTP requests for the dataset descriptor
type MetadataHandler struct {
	service *service.MetadataService
}

// NewMetadataHandler creates a new metadata handler
func NewMetadataHandler(service *service.MetadataService) *MetadataHandler {
	return &MetadataHandler{service: service}
}

// GetMetadata handles GET /api/metadata. An empty store answers 404;
// clients treat that as "no metadata", not an error.
func (h *MetadataHandler) GetMetadata(c *gin.Context) {
	meta, err := h.service.GetMetadata()
	if err != nil {
		log.Printf("[MetadataHandler] query failed: %v", err)
		response.InternalError(c, "Failed to get metadata")
		return
	}
	if meta == nil {
		c.Status(http.StatusNotFound)
		return
	}

	c.JSON(200, meta)
}
