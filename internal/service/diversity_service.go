package service

import (
	"github.com/jengzang/incident-map-go/internal/models"
	"github.com/jengzang/incident-map-go/internal/repository"
)

// DiversityService handles business logic for diversity queries
type DiversityService struct {
	repo *repository.DiversityRepository
}

// NewDiversityService creates a new diversity service
func NewDiversityService(repo *repository.DiversityRepository) *DiversityService {
	return &DiversityService{repo: repo}
}

// GetDiversity retrieves per-cell temporal-diversity scores
func (s *DiversityService) GetDiversity(filter models.DiversityFilter) ([]models.DiversityPoint, error) {
	return s.repo.GetDiversity(filter)
}
