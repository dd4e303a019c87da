// Package viewport turns raw map navigation events into stable,
// precision-leveled viewport snapshots.
package viewport

import (
	"github.com/jengzang/incident-map-go/internal/spatial"
)

// zoomThresholds are the ascending zoom breakpoints between precision
// levels. Zoom below the first threshold maps to MinLevel; each crossed
// threshold raises the level by one, capped at MaxLevel.
var zoomThresholds = []float64{7, 10, 13}

// LevelForZoom maps a continuous map zoom to a discrete grid precision
// level. Monotonic non-decreasing in zoom and always inside
// [spatial.MinLevel, spatial.MaxLevel].
func LevelForZoom(zoom float64) int {
	level := spatial.MinLevel
	for _, t := range zoomThresholds {
		if zoom >= t {
			level++
		}
	}
	return spatial.ClampLevel(level)
}

// ClampLevel clamps a manually chosen level into the supported range.
// Exposed so a caller-provided override follows the same rule as the
// automatic mapping.
func ClampLevel(level int) int {
	return spatial.ClampLevel(level)
}
