// Package maprender keeps a persistent set of map rendering layers
// consistent with the user's selection, display mode and style knobs.
// The actual renderer is abstracted behind the Surface interface so the
// engine can drive a GL map, a test fake or a logging stub unchanged.
package maprender

import (
	"github.com/jengzang/incident-map-go/internal/geojson"
)

// LayerKind distinguishes the two rendering layer types.
type LayerKind int

const (
	// KindFill renders grid-cell polygons.
	KindFill LayerKind = iota
	// KindHeat renders a continuous heatmap from raw points.
	KindHeat
)

// LayerSpec describes a layer at creation time. Paint properties are
// renderer expressions or plain values keyed by property name.
type LayerSpec struct {
	ID       string
	SourceID string
	Kind     LayerKind
	Filter   []interface{}
	Paint    map[string]interface{}
	Visible  bool
}

// Surface is the subset of map-renderer operations the engine needs.
// Implementations must tolerate repeated identical calls; the engine
// reconciles from scratch and re-applies state freely.
type Surface interface {
	AddSource(id string, data geojson.FeatureCollection) error
	SetSourceData(id string, data geojson.FeatureCollection) error
	AddLayer(spec LayerSpec) error
	SetVisibility(layerID string, visible bool) error
	SetPaint(layerID, property string, value interface{}) error
	SetFilter(layerID string, filter []interface{}) error
	RemoveLayer(layerID string) error
	RemoveSource(id string) error
}
