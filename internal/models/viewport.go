package models

// Bounds is a geographic bounding box in decimal degrees.
type Bounds struct {
	West  float64
	South float64
	East  float64
	North float64
}

// Viewport is an immutable snapshot of the visible map area at a
// discrete precision level. Produced only by the viewport tracker and
// replaced wholesale on every publish.
type Viewport struct {
	Bounds
	Level int
}

// Equal reports whether two viewports match exactly.
func (v Viewport) Equal(o Viewport) bool {
	return v == o
}
