// Package maptest provides a recording map surface for tests.
package maptest

import (
	"sync"

	"github.com/jengzang/incident-map-go/internal/geojson"
	"github.com/jengzang/incident-map-go/internal/maprender"
)

// Fake records the final state every surface operation leaves behind,
// so reconciliation outcomes can be compared as values. Safe for
// concurrent use; fetch completions write from their own goroutines.
type Fake struct {
	mu      sync.Mutex
	sources map[string]geojson.FeatureCollection
	layers  map[string]maprender.LayerSpec
	visible map[string]bool
	filters map[string][]interface{}
	paint   map[string]map[string]interface{}
}

// NewFake returns an empty recording surface.
func NewFake() *Fake {
	return &Fake{
		sources: make(map[string]geojson.FeatureCollection),
		layers:  make(map[string]maprender.LayerSpec),
		visible: make(map[string]bool),
		filters: make(map[string][]interface{}),
		paint:   make(map[string]map[string]interface{}),
	}
}

func (f *Fake) AddSource(id string, data geojson.FeatureCollection) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sources[id] = data
	return nil
}

func (f *Fake) SetSourceData(id string, data geojson.FeatureCollection) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sources[id] = data
	return nil
}

func (f *Fake) AddLayer(spec maprender.LayerSpec) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.layers[spec.ID] = spec
	f.visible[spec.ID] = spec.Visible
	if spec.Filter != nil {
		f.filters[spec.ID] = spec.Filter
	}
	return nil
}

func (f *Fake) SetVisibility(layerID string, visible bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.visible[layerID] = visible
	return nil
}

func (f *Fake) SetPaint(layerID, property string, value interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.paint[layerID] == nil {
		f.paint[layerID] = make(map[string]interface{})
	}
	f.paint[layerID][property] = value
	return nil
}

func (f *Fake) SetFilter(layerID string, filter []interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filters[layerID] = filter
	return nil
}

func (f *Fake) RemoveLayer(layerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.layers, layerID)
	delete(f.visible, layerID)
	delete(f.filters, layerID)
	delete(f.paint, layerID)
	return nil
}

func (f *Fake) RemoveSource(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sources, id)
	return nil
}

// LayerCount returns the number of live layers.
func (f *Fake) LayerCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.layers)
}

// SourceCount returns the number of live sources.
func (f *Fake) SourceCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sources)
}

// Visible reports a layer's current visibility.
func (f *Fake) Visible(layerID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.visible[layerID]
}

// VisibilitySnapshot copies the full visibility assignment.
func (f *Fake) VisibilitySnapshot() map[string]bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]bool, len(f.visible))
	for k, v := range f.visible {
		out[k] = v
	}
	return out
}

// Filter returns a layer's current filter expression.
func (f *Fake) Filter(layerID string) []interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.filters[layerID]
}

// Paint returns one paint property of a layer, or nil.
func (f *Fake) Paint(layerID, property string) interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.paint[layerID]; ok {
		return p[property]
	}
	return nil
}

// Source returns a source's current feature collection.
func (f *Fake) Source(id string) geojson.FeatureCollection {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sources[id]
}
