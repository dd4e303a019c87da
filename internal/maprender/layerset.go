package maprender

import (
	"fmt"

	"github.com/jengzang/incident-map-go/internal/geojson"
	"github.com/jengzang/incident-map-go/internal/models"
)

// layerKey identifies one per-category layer. Category IDs repeat
// across families, so the family is part of the key.
type layerKey struct {
	family models.CategoryFamily
	catID  int
	kind   LayerKind
}

// LayerSet is the typed mapping from (family, category, kind) to layer
// and source identifiers. It is populated exactly once, on the first
// map-ready event, and the identifiers are never rebuilt afterwards.
type LayerSet struct {
	built bool

	layers  map[layerKey]string
	fillSrc map[layerKey]string
	stacked map[models.CategoryFamily]string
	heatSrc map[models.CategoryFamily]string
}

// NewLayerSet returns an unbuilt layer set.
func NewLayerSet() *LayerSet {
	return &LayerSet{
		layers:  make(map[layerKey]string),
		fillSrc: make(map[layerKey]string),
		stacked: make(map[models.CategoryFamily]string),
		heatSrc: make(map[models.CategoryFamily]string),
	}
}

// Built reports whether Build has completed.
func (ls *LayerSet) Built() bool {
	return ls.built
}

// Build creates every source and layer on the surface: per category one
// fill layer over its own polygon source and one heatmap layer over the
// family's shared point source, plus one stacked heatmap layer per
// family. All layers start hidden. Build is idempotent; a second call
// is a no-op.
func (ls *LayerSet) Build(s Surface) error {
	if ls.built {
		return nil
	}

	for _, family := range []models.CategoryFamily{models.FamilyDensity, models.FamilyDiversity} {
		catalog := models.Catalog(family)

		heatSrc := fmt.Sprintf("%s-points", family)
		if err := s.AddSource(heatSrc, geojson.Empty()); err != nil {
			return fmt.Errorf("add heat source %s: %w", heatSrc, err)
		}
		ls.heatSrc[family] = heatSrc

		for _, cat := range catalog {
			fillKey := layerKey{family: family, catID: cat.ID, kind: KindFill}
			heatKey := layerKey{family: family, catID: cat.ID, kind: KindHeat}

			fillSrc := fmt.Sprintf("%s-cells-%d", family, cat.ID)
			if err := s.AddSource(fillSrc, geojson.Empty()); err != nil {
				return fmt.Errorf("add fill source %s: %w", fillSrc, err)
			}
			ls.fillSrc[fillKey] = fillSrc

			fillID := fmt.Sprintf("%s-fill-%d", family, cat.ID)
			if err := s.AddLayer(LayerSpec{ID: fillID, SourceID: fillSrc, Kind: KindFill}); err != nil {
				return fmt.Errorf("add fill layer %s: %w", fillID, err)
			}
			ls.layers[fillKey] = fillID

			heatID := fmt.Sprintf("%s-heat-%d", family, cat.ID)
			spec := LayerSpec{
				ID:       heatID,
				SourceID: heatSrc,
				Kind:     KindHeat,
				Filter:   CategoryFilter(cat.ID),
			}
			if err := s.AddLayer(spec); err != nil {
				return fmt.Errorf("add heat layer %s: %w", heatID, err)
			}
			ls.layers[heatKey] = heatID
		}

		stackedID := fmt.Sprintf("%s-heat-stacked", family)
		spec := LayerSpec{
			ID:       stackedID,
			SourceID: heatSrc,
			Kind:     KindHeat,
			Filter:   SelectionFilter(nil),
		}
		if err := s.AddLayer(spec); err != nil {
			return fmt.Errorf("add stacked layer %s: %w", stackedID, err)
		}
		ls.stacked[family] = stackedID
	}

	ls.built = true
	return nil
}

// Teardown removes every layer and source from the surface and returns
// the set to its unbuilt state.
func (ls *LayerSet) Teardown(s Surface) {
	if !ls.built {
		return
	}
	for _, id := range ls.layers {
		s.RemoveLayer(id)
	}
	for _, id := range ls.stacked {
		s.RemoveLayer(id)
	}
	for _, id := range ls.fillSrc {
		s.RemoveSource(id)
	}
	for _, id := range ls.heatSrc {
		s.RemoveSource(id)
	}
	ls.layers = make(map[layerKey]string)
	ls.fillSrc = make(map[layerKey]string)
	ls.stacked = make(map[models.CategoryFamily]string)
	ls.heatSrc = make(map[models.CategoryFamily]string)
	ls.built = false
}

// FillLayer returns the fill layer ID for a category.
func (ls *LayerSet) FillLayer(f models.CategoryFamily, catID int) (string, bool) {
	id, ok := ls.layers[layerKey{family: f, catID: catID, kind: KindFill}]
	return id, ok
}

// HeatLayer returns the dedicated heatmap layer ID for a category.
func (ls *LayerSet) HeatLayer(f models.CategoryFamily, catID int) (string, bool) {
	id, ok := ls.layers[layerKey{family: f, catID: catID, kind: KindHeat}]
	return id, ok
}

// StackedLayer returns the family's shared stacked heatmap layer ID.
func (ls *LayerSet) StackedLayer(f models.CategoryFamily) (string, bool) {
	id, ok := ls.stacked[f]
	return id, ok
}

// FillSource returns the polygon source ID for a category.
func (ls *LayerSet) FillSource(f models.CategoryFamily, catID int) (string, bool) {
	id, ok := ls.fillSrc[layerKey{family: f, catID: catID, kind: KindFill}]
	return id, ok
}

// HeatSource returns the family's shared point source ID.
func (ls *LayerSet) HeatSource(f models.CategoryFamily) (string, bool) {
	id, ok := ls.heatSrc[f]
	return id, ok
}

// CategoryFilter matches features tagged with a single category ID.
func CategoryFilter(catID int) []interface{} {
	return []interface{}{"==", []interface{}{"get", "category"}, catID}
}

// SelectionFilter matches features whose category is in the selected
// set. An empty selection matches nothing.
func SelectionFilter(selected []int) []interface{} {
	ids := make([]interface{}, 0, len(selected))
	for _, id := range selected {
		ids = append(ids, id)
	}
	return []interface{}{"in", []interface{}{"get", "category"}, []interface{}{"literal", ids}}
}
