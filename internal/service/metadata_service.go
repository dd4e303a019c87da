package service

import (
	"github.com/jengzang/incident-map-go/internal/models"
	"github.com/jengzang/incident-map-go/internal/repository"
)

// MetadataService handles business logic for the dataset descriptor
type MetadataService struct {
	repo *repository.MetadataRepository
}

// NewMetadataService creates a new metadata service
func NewMetadataService(repo *repository.MetadataRepository) *MetadataService {
	return &MetadataService{repo: repo}
}

// GetMetadata retrieves the aggregate descriptor; nil when no data
func (s *MetadataService) GetMetadata() (*models.Metadata, error) {
	return s.repo.GetMetadata()
}
