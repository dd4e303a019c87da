package models

// PointKind is the discriminant of the DataPoint union.
type PointKind int

const (
	// KindDensity marks a per-cell incident count (0-255).
	KindDensity PointKind = iota
	// KindDiversity marks a per-cell temporal-diversity score (1..N).
	KindDiversity
)

// DataPoint is one grid cell sample returned by the point endpoints.
// Value holds either a density count or a diversity score depending on
// Kind; the two variants never mix within a single response.
type DataPoint struct {
	Lon   float64
	Lat   float64
	Kind  PointKind
	Value float64
}

// DensityPoint is the wire shape of /api/density and /api/density-scaled.
type DensityPoint struct {
	Lon     float64 `json:"lon"`
	Lat     float64 `json:"lat"`
	Density int     `json:"density"` // 0-255
}

// DiversityPoint is the wire shape of /api/diversity.
type DiversityPoint struct {
	Lon   float64 `json:"lon"`
	Lat   float64 `json:"lat"`
	Score int     `json:"score"` // 1..number of time windows
}
