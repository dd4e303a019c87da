package repository

import (
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/jengzang/incident-map-go/internal/models"
	"github.com/jengzang/incident-map-go/internal/spatial"
)

// maxDensity saturates per-cell counts on the wire.
const maxDensity = 255

// DensityRepository aggregates incidents into per-cell counts for one
// time window.
type DensityRepository struct {
	db *sql.DB
}

// NewDensityRepository creates a new density repository
func NewDensityRepository(db *sql.DB) *DensityRepository {
	return &DensityRepository{db: db}
}

// GetDensity returns per-cell incident counts for the window and
// bounds, clamped to 0-255. With scaled set, counts are log-scaled so a
// few dense cells do not flatten the rest of the map.
func (r *DensityRepository) GetDensity(filter models.DensityFilter, scaled bool) ([]models.DensityPoint, error) {
	return r.getDensityAt(filter, scaled, time.Now())
}

func (r *DensityRepository) getDensityAt(filter models.DensityFilter, scaled bool, now time.Time) ([]models.DensityPoint, error) {
	start, end := WindowRange(filter.TimeWindowID, now)
	level := spatial.ClampLevel(filter.Level)

	query := `SELECT lon, lat FROM incidents
		WHERE lon >= ? AND lon <= ? AND lat >= ? AND lat <= ?
		AND occurred_at >= ? AND occurred_at < ?`
	rows, err := r.db.Query(query,
		filter.MinLon, filter.MaxLon, filter.MinLat, filter.MaxLat, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query incidents: %w", err)
	}
	defer rows.Close()

	type cell struct{ x, y int64 }
	counts := make(map[cell]int)
	for rows.Next() {
		var lon, lat float64
		if err := rows.Scan(&lon, &lat); err != nil {
			return nil, fmt.Errorf("failed to scan incident: %w", err)
		}
		x, y := spatial.CellKey(lon, lat, level)
		counts[cell{x, y}]++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read incidents: %w", err)
	}

	maxCount := 0
	for _, n := range counts {
		if n > maxCount {
			maxCount = n
		}
	}

	points := make([]models.DensityPoint, 0, len(counts))
	for c, n := range counts {
		value := n
		if scaled && maxCount > 0 {
			value = int(math.Round(maxDensity * math.Log1p(float64(n)) / math.Log1p(float64(maxCount))))
		}
		if value > maxDensity {
			value = maxDensity
		}
		lon, lat := spatial.CellCenterFromKey(c.x, c.y, level)
		points = append(points, models.DensityPoint{
			Lon:     lon,
			Lat:     lat,
			Density: value,
		})
	}

	return points, nil
}

// WindowRange maps a time window ID to its [start, end) Unix range
// relative to now. Window 0 is the newest.
func WindowRange(windowID int, now time.Time) (int64, int64) {
	ts := now.Unix()
	day := int64(24 * 3600)
	switch windowID {
	case 0:
		return ts - day, ts + 1
	case 1:
		return ts - 7*day, ts - day
	case 2:
		return ts - 30*day, ts - 7*day
	default:
		return 0, ts - 30*day
	}
}
