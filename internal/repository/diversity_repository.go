package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jengzang/incident-map-go/internal/models"
	"github.com/jengzang/incident-map-go/internal/spatial"
)

// DiversityRepository computes a temporal-diversity score per occupied
// grid cell: how many distinct time windows have incidents within the
// radius group's search radius of the cell center.
type DiversityRepository struct {
	db *sql.DB
}

// NewDiversityRepository creates a new diversity repository
func NewDiversityRepository(db *sql.DB) *DiversityRepository {
	return &DiversityRepository{db: db}
}

type incidentSample struct {
	lon, lat float64
	window   int
}

// GetDiversity returns per-cell diversity scores (1..number of time
// windows) for the bounds at the filter's level.
func (r *DiversityRepository) GetDiversity(filter models.DiversityFilter) ([]models.DiversityPoint, error) {
	return r.getDiversityAt(filter, time.Now())
}

func (r *DiversityRepository) getDiversityAt(filter models.DiversityFilter, now time.Time) ([]models.DiversityPoint, error) {
	level := spatial.ClampLevel(filter.Level)
	radius := models.RadiusMeters(filter.RadiusGroupID)
	// Widen the query box so incidents just outside the viewport still
	// contribute to cells near the edge.
	margin := spatial.RadiusToDegrees(radius) * 2

	query := `SELECT lon, lat, occurred_at FROM incidents
		WHERE lon >= ? AND lon <= ? AND lat >= ? AND lat <= ?`
	rows, err := r.db.Query(query,
		filter.MinLon-margin, filter.MaxLon+margin,
		filter.MinLat-margin, filter.MaxLat+margin)
	if err != nil {
		return nil, fmt.Errorf("failed to query incidents: %w", err)
	}
	defer rows.Close()

	var samples []incidentSample
	for rows.Next() {
		var lon, lat float64
		var occurredAt int64
		if err := rows.Scan(&lon, &lat, &occurredAt); err != nil {
			return nil, fmt.Errorf("failed to scan incident: %w", err)
		}
		samples = append(samples, incidentSample{
			lon:    lon,
			lat:    lat,
			window: windowOf(occurredAt, now),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read incidents: %w", err)
	}

	// Occupied cells inside the viewport seed the score computation.
	type cell struct{ x, y int64 }
	occupied := make(map[cell]bool)
	for _, s := range samples {
		if s.lon < filter.MinLon || s.lon > filter.MaxLon || s.lat < filter.MinLat || s.lat > filter.MaxLat {
			continue
		}
		x, y := spatial.CellKey(s.lon, s.lat, level)
		occupied[cell{x, y}] = true
	}

	points := make([]models.DiversityPoint, 0, len(occupied))
	for c := range occupied {
		cLon, cLat := spatial.CellCenterFromKey(c.x, c.y, level)

		windows := make(map[int]bool)
		for _, s := range samples {
			if spatial.WithinRadius(cLat, cLon, s.lat, s.lon, radius) {
				windows[s.window] = true
			}
		}
		if len(windows) == 0 {
			continue
		}
		points = append(points, models.DiversityPoint{
			Lon:   cLon,
			Lat:   cLat,
			Score: len(windows),
		})
	}

	return points, nil
}

// windowOf assigns an incident timestamp to its time window ID.
func windowOf(occurredAt int64, now time.Time) int {
	age := now.Unix() - occurredAt
	day := int64(24 * 3600)
	switch {
	case age < day:
		return 0
	case age < 7*day:
		return 1
	case age < 30*day:
		return 2
	default:
		return 3
	}
}
