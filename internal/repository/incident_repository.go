package repository

import (
	"database/sql"
	"fmt"
)

// IncidentRepository handles incident ingestion.
type IncidentRepository struct {
	db *sql.DB
}

// NewIncidentRepository creates a new incident repository
func NewIncidentRepository(db *sql.DB) *IncidentRepository {
	return &IncidentRepository{db: db}
}

// IncidentInput is one incoming incident record.
type IncidentInput struct {
	Lon        float64 `json:"lon" binding:"required"`
	Lat        float64 `json:"lat" binding:"required"`
	OccurredAt int64   `json:"occurred_at" binding:"required"`
}

// InsertBatch stores a batch of incidents in one transaction.
func (r *IncidentRepository) InsertBatch(incidents []IncidentInput) error {
	if len(incidents) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT INTO incidents (lon, lat, occurred_at) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, in := range incidents {
		if _, err := stmt.Exec(in.Lon, in.Lat, in.OccurredAt); err != nil {
			return fmt.Errorf("failed to insert incident: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
