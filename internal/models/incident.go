package models

// Incident is one stored incident record.
type Incident struct {
	ID         int64   `json:"id" db:"id"`
	Lon        float64 `json:"lon" db:"lon"`
	Lat        float64 `json:"lat" db:"lat"`
	OccurredAt int64   `json:"occurred_at" db:"occurred_at"` // Unix timestamp
}

// Metadata is the optional aggregate descriptor served by /api/metadata.
type Metadata struct {
	LastUpdate   int64   `json:"last_update"` // Unix timestamp of newest incident
	CenterLon    float64 `json:"center_lon"`
	CenterLat    float64 `json:"center_lat"`
	TotalCount   int     `json:"total_count"`
	WindowCounts []int   `json:"window_counts"` // per time window, index = window ID
}
