package spatial

import "math"

// Precision levels for the decimal-degree grid. A cell at level L spans
// 1/10^L degrees per edge, so level 2 cells are 0.01 degrees wide.
const (
	MinLevel = 1
	MaxLevel = 4
)

// ClampLevel forces a level into the supported range.
func ClampLevel(level int) int {
	if level < MinLevel {
		return MinLevel
	}
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}

// CellEdge returns the cell edge length in degrees at the given level.
func CellEdge(level int) float64 {
	return 1.0 / math.Pow(10, float64(ClampLevel(level)))
}

// CellHalfWidth returns half the cell edge, the offset from a cell
// center to its border.
func CellHalfWidth(level int) float64 {
	return 0.5 * CellEdge(level)
}

// CellCenter snaps a coordinate to the center of its containing cell.
func CellCenter(lon, lat float64, level int) (float64, float64) {
	x, y := CellKey(lon, lat, level)
	return CellCenterFromKey(x, y, level)
}

// CellCenterFromKey returns the center coordinate of the cell with the
// given integer cell coordinates.
func CellCenterFromKey(x, y int64, level int) (float64, float64) {
	scale := math.Pow(10, float64(ClampLevel(level)))
	return (float64(x) + 0.5) / scale, (float64(y) + 0.5) / scale
}

// CellKey returns integer cell coordinates usable as a map key.
func CellKey(lon, lat float64, level int) (int64, int64) {
	scale := math.Pow(10, float64(ClampLevel(level)))
	return int64(math.Floor(lon * scale)), int64(math.Floor(lat * scale))
}
