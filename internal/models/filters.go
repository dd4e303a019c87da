package models

// DensityFilter binds query parameters for /api/density and
// /api/density-scaled.
type DensityFilter struct {
	TimeWindowID int     `form:"time_window_id"`
	Level        int     `form:"level"` // 1-4
	MinLon       float64 `form:"min_lon"`
	MinLat       float64 `form:"min_lat"`
	MaxLon       float64 `form:"max_lon"`
	MaxLat       float64 `form:"max_lat"`
}

// DiversityFilter binds query parameters for /api/diversity.
type DiversityFilter struct {
	RadiusGroupID int     `form:"radius_group_id"`
	Level         int     `form:"level"` // 1-4
	MinLon        float64 `form:"min_lon"`
	MinLat        float64 `form:"min_lat"`
	MaxLon        float64 `form:"max_lon"`
	MaxLat        float64 `form:"max_lat"`
}

// Bounds converts the filter box into a Bounds value.
func (f DensityFilter) Bounds() Bounds {
	return Bounds{West: f.MinLon, South: f.MinLat, East: f.MaxLon, North: f.MaxLat}
}

// Bounds converts the filter box into a Bounds value.
func (f DiversityFilter) Bounds() Bounds {
	return Bounds{West: f.MinLon, South: f.MinLat, East: f.MaxLon, North: f.MaxLat}
}
