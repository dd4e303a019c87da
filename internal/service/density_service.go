package service

import (
	"github.com/jengzang/incident-map-go/internal/models"
	"github.com/jengzang/incident-map-go/internal/repository"
)

// DensityService handles business logic for density queries
type DensityService struct {
	repo *repository.DensityRepository
}

// NewDensityService creates a new density service
func NewDensityService(repo *repository.DensityRepository) *DensityService {
	return &DensityService{repo: repo}
}

// GetDensity retrieves per-cell incident counts for a time window
func (s *DensityService) GetDensity(filter models.DensityFilter, scaled bool) ([]models.DensityPoint, error) {
	return s.repo.GetDensity(filter, scaled)
}
