package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jengzang/incident-map-go/internal/models"
	"github.com/jengzang/incident-map-go/internal/spatial"
)

// MetadataRepository derives the aggregate dataset descriptor.
type MetadataRepository struct {
	db *sql.DB
}

// NewMetadataRepository creates a new metadata repository
func NewMetadataRepository(db *sql.DB) *MetadataRepository {
	return &MetadataRepository{db: db}
}

// GetMetadata returns the dataset descriptor, or nil when the store is
// empty.
func (r *MetadataRepository) GetMetadata() (*models.Metadata, error) {
	return r.getMetadataAt(time.Now())
}

func (r *MetadataRepository) getMetadataAt(now time.Time) (*models.Metadata, error) {
	rows, err := r.db.Query("SELECT lon, lat, occurred_at FROM incidents")
	if err != nil {
		return nil, fmt.Errorf("failed to query incidents: %w", err)
	}
	defer rows.Close()

	var (
		points     []spatial.Point
		lastUpdate int64
		windows    = make([]int, len(models.TimeWindows()))
	)
	for rows.Next() {
		var lon, lat float64
		var occurredAt int64
		if err := rows.Scan(&lon, &lat, &occurredAt); err != nil {
			return nil, fmt.Errorf("failed to scan incident: %w", err)
		}
		points = append(points, spatial.Point{Lat: lat, Lon: lon})
		if occurredAt > lastUpdate {
			lastUpdate = occurredAt
		}
		windows[windowOf(occurredAt, now)]++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read incidents: %w", err)
	}

	if len(points) == 0 {
		return nil, nil
	}

	center := spatial.Centroid(points)
	return &models.Metadata{
		LastUpdate:   lastUpdate,
		CenterLon:    center.Lon,
		CenterLat:    center.Lat,
		TotalCount:   len(points),
		WindowCounts: windows,
	}, nil
}
