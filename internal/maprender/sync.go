package maprender

import (
	"log"
	"sort"

	"github.com/jengzang/incident-map-go/internal/models"
)

// DisplayMode selects discrete polygons or a continuous heatmap.
type DisplayMode int

const (
	ModeFill DisplayMode = iota
	ModeHeatmap
)

// RenderStyle selects how heatmap categories combine.
type RenderStyle int

const (
	// StyleStacked renders all selected categories through one shared
	// heatmap layer.
	StyleStacked RenderStyle = iota
	// StylePerCategory renders one independent heatmap layer per
	// selected category, each with its own color ramp.
	StylePerCategory
)

// ViewState is the complete display configuration the layer
// synchronizer reconciles against. It is treated as a value; every
// change produces a full recompute, never an incremental diff.
type ViewState struct {
	Family       models.CategoryFamily
	Selected     map[int]bool
	Mode         DisplayMode
	Style        RenderStyle
	RadiusScale  float64
	OpacityScale float64
	// ScaledSource routes density fetches to /api/density-scaled.
	ScaledSource bool
}

// NewViewState returns a state with neutral knobs and nothing selected.
func NewViewState(family models.CategoryFamily) ViewState {
	return ViewState{
		Family:       family,
		Selected:     make(map[int]bool),
		RadiusScale:  1,
		OpacityScale: 1,
	}
}

// SelectedIDs returns the selected category IDs in ascending order.
func (v ViewState) SelectedIDs() []int {
	ids := make([]int, 0, len(v.Selected))
	for id, on := range v.Selected {
		if on {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

// MaxValue returns the value ceiling of the family, used to normalize
// cell values: density counts saturate at 255, diversity scores at the
// number of time windows.
func (v ViewState) MaxValue() float64 {
	if v.Family == models.FamilyDiversity {
		return float64(len(models.TimeWindows()))
	}
	return 255
}

// Synchronizer owns layer visibility and paint reconciliation. It never
// creates or destroys layers itself; that is the LayerSet's job.
type Synchronizer struct {
	surface Surface
	layers  *LayerSet
}

// NewSynchronizer builds a layer synchronizer over a built (or not yet
// built) layer set.
func NewSynchronizer(surface Surface, layers *LayerSet) *Synchronizer {
	return &Synchronizer{surface: surface, layers: layers}
}

// Reconcile recomputes the desired visibility, filter and paint
// assignment of every known layer from the given state and applies it.
// Idempotent: re-applying an identical state converges to the same
// assignment. When the layer set is not built yet the call is skipped
// silently; the next reconciliation retries.
func (s *Synchronizer) Reconcile(st ViewState) {
	if !s.layers.Built() {
		log.Printf("[LayerSync] layers not built yet, skipping reconcile")
		return
	}

	for _, family := range []models.CategoryFamily{models.FamilyDensity, models.FamilyDiversity} {
		active := family == st.Family
		catalog := models.Catalog(family)
		familySize := len(catalog)

		for _, cat := range catalog {
			selected := active && st.Selected[cat.ID]

			if id, ok := s.layers.FillLayer(family, cat.ID); ok {
				visible := selected && st.Mode == ModeFill
				s.surface.SetVisibility(id, visible)
				if visible {
					s.surface.SetPaint(id, "fill-color", FillColor(cat.Color))
					s.surface.SetPaint(id, "fill-opacity", FillOpacityExpr(st.MaxValue()))
				}
			}

			if id, ok := s.layers.HeatLayer(family, cat.ID); ok {
				visible := selected && st.Mode == ModeHeatmap && st.Style == StylePerCategory
				s.surface.SetVisibility(id, visible)
				if visible {
					s.surface.SetPaint(id, "heatmap-radius",
						HeatRadiusExpr(st.MaxValue(), cat.OrderIndex, familySize, st.RadiusScale))
					s.surface.SetPaint(id, "heatmap-opacity",
						HeatOpacity(cat.OrderIndex, familySize, st.OpacityScale))
					s.surface.SetPaint(id, "heatmap-color", HeatColorRamp(cat.Color))
				}
			}
		}

		if id, ok := s.layers.StackedLayer(family); ok {
			selected := []int{}
			if active {
				selected = st.SelectedIDs()
			}
			visible := active && st.Mode == ModeHeatmap && st.Style == StyleStacked
			s.surface.SetVisibility(id, visible)
			// The inclusion filter tracks the selection even while the
			// layer stays visible, so an empty selection renders
			// nothing rather than everything.
			s.surface.SetFilter(id, SelectionFilter(selected))
			if visible {
				s.surface.SetPaint(id, "heatmap-radius",
					HeatRadiusExpr(st.MaxValue(), 0, 1, st.RadiusScale))
				s.surface.SetPaint(id, "heatmap-opacity",
					HeatOpacity(0, 1, st.OpacityScale))
			}
		}
	}
}
