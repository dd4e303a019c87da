// Package geojson holds the minimal GeoJSON structures written into map
// sources: point features for heatmap rendering and square cell polygons
// for fill rendering.
package geojson

// FeatureCollection follows the standard GeoJSON structure.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is a single geographic feature with geometry and properties.
type Feature struct {
	Type       string                 `json:"type"`
	Geometry   Geometry               `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

// Geometry is a Point ([lon, lat]) or Polygon (ring list) geometry.
// Coordinates holds []float64 for points and [][][]float64 for polygons,
// matching the GeoJSON wire shape for each type.
type Geometry struct {
	Type        string      `json:"type"`
	Coordinates interface{} `json:"coordinates"`
}

// Empty returns an empty collection, used to clear a source.
func Empty() FeatureCollection {
	return FeatureCollection{Type: "FeatureCollection", Features: []Feature{}}
}

// NewCollection wraps features into a collection.
func NewCollection(features []Feature) FeatureCollection {
	if features == nil {
		features = []Feature{}
	}
	return FeatureCollection{Type: "FeatureCollection", Features: features}
}

// PointFeature builds a Point feature at (lon, lat).
func PointFeature(lon, lat float64, props map[string]interface{}) Feature {
	return Feature{
		Type:       "Feature",
		Geometry:   Geometry{Type: "Point", Coordinates: []float64{lon, lat}},
		Properties: props,
	}
}

// SquareFeature builds a square Polygon feature centered on (lon, lat)
// with the given half-width in degrees. The ring is closed: first and
// last vertex coincide.
func SquareFeature(lon, lat, halfWidth float64, props map[string]interface{}) Feature {
	ring := [][]float64{
		{lon - halfWidth, lat - halfWidth},
		{lon + halfWidth, lat - halfWidth},
		{lon + halfWidth, lat + halfWidth},
		{lon - halfWidth, lat + halfWidth},
		{lon - halfWidth, lat - halfWidth},
	}
	return Feature{
		Type:       "Feature",
		Geometry:   Geometry{Type: "Polygon", Coordinates: [][][]float64{ring}},
		Properties: props,
	}
}
