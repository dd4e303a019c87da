package service

import (
	"github.com/jengzang/incident-map-go/internal/repository"
)

// IncidentService handles business logic for incident ingestion
type IncidentService struct {
	repo *repository.IncidentRepository
}

// NewIncidentService creates a new incident service
func NewIncidentService(repo *repository.IncidentRepository) *IncidentService {
	return &IncidentService{repo: repo}
}

// Ingest stores a batch of incidents
func (s *IncidentService) Ingest(incidents []repository.IncidentInput) error {
	return s.repo.InsertBatch(incidents)
}
