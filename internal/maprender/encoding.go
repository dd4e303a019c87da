package maprender

import (
	"fmt"

	"github.com/jengzang/incident-map-go/internal/models"
)

// Heatmap opacity bounds across a family's age/severity gradient.
const (
	maxHeatOpacity = 0.85
	minHeatOpacity = 0.35
)

// breakpoint is one (input, output) pair of a piecewise-linear table.
type breakpoint struct {
	in  float64
	out float64
}

// baseRadiusByZoom is the zoom-indexed base heatmap radius in pixels.
var baseRadiusByZoom = []breakpoint{
	{in: 4, out: 2},
	{in: 8, out: 6},
	{in: 12, out: 14},
	{in: 16, out: 28},
}

// radiusByValue scales the base radius by the normalized cell value.
// The 0.6 floor keeps zero-valued cells visible.
var radiusByValue = []breakpoint{
	{in: 0, out: 0.6},
	{in: 0.25, out: 0.8},
	{in: 0.5, out: 1.0},
	{in: 1, out: 1.4},
}

// lerpTable interpolates linearly over an ascending breakpoint table,
// clamping outside the table's range.
func lerpTable(table []breakpoint, x float64) float64 {
	if x <= table[0].in {
		return table[0].out
	}
	last := table[len(table)-1]
	if x >= last.in {
		return last.out
	}
	for i := 1; i < len(table); i++ {
		if x <= table[i].in {
			lo, hi := table[i-1], table[i]
			t := (x - lo.in) / (hi.in - lo.in)
			return lo.out + t*(hi.out-lo.out)
		}
	}
	return last.out
}

// ageMultiplier derives the age/severity radius factor from a
// category's rank. Lower ranks (newest, least severe) render narrower.
// A single-category family gets a flat 1.
func ageMultiplier(orderIndex, familySize int) float64 {
	if familySize <= 1 {
		return 1
	}
	t := float64(orderIndex) / float64(familySize-1)
	return 0.7 + 0.5*t
}

// HeatRadius computes the heatmap point radius in pixels. The four
// factors (zoom base, normalized value, age rank, user knob) multiply,
// so the result is monotonic in the scale knob.
func HeatRadius(zoom, value, maxValue float64, orderIndex, familySize int, scaleKnob float64) float64 {
	norm := 0.0
	if maxValue > 0 {
		norm = value / maxValue
	}
	return lerpTable(baseRadiusByZoom, zoom) *
		lerpTable(radiusByValue, norm) *
		ageMultiplier(orderIndex, familySize) *
		scaleKnob
}

// HeatOpacity interpolates between the maximum and minimum heatmap
// opacity across a family's rank range, scaled by the user knob and
// clamped to [0, 1]. A single-category family always gets the maximum
// opacity, subject only to clamping.
func HeatOpacity(orderIndex, familySize int, opacityKnob float64) float64 {
	if familySize <= 1 {
		return clamp01(maxHeatOpacity)
	}
	t := float64(orderIndex) / float64(familySize-1)
	return clamp01((maxHeatOpacity + t*(minHeatOpacity-maxHeatOpacity)) * opacityKnob)
}

// FillOpacity maps a normalized cell value into [0.3, 1.0],
// independent of zoom.
func FillOpacity(value, maxValue float64) float64 {
	norm := 0.0
	if maxValue > 0 {
		norm = value / maxValue
	}
	if norm < 0 {
		norm = 0
	}
	if norm > 1 {
		norm = 1
	}
	return 0.3 + 0.7*norm
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// HeatRadiusExpr builds the renderer expression equivalent of
// HeatRadius: an outer zoom interpolation whose stops are themselves
// value interpolations over the feature's "value" property.
func HeatRadiusExpr(maxValue float64, orderIndex, familySize int, scaleKnob float64) []interface{} {
	expr := []interface{}{"interpolate", []interface{}{"linear"}, []interface{}{"zoom"}}
	mult := ageMultiplier(orderIndex, familySize) * scaleKnob
	for _, zb := range baseRadiusByZoom {
		valueExpr := []interface{}{"interpolate", []interface{}{"linear"}, []interface{}{"get", "value"}}
		for _, vb := range radiusByValue {
			valueExpr = append(valueExpr, vb.in*maxValue, zb.out*vb.out*mult)
		}
		expr = append(expr, zb.in, valueExpr)
	}
	return expr
}

// FillOpacityExpr builds the renderer expression equivalent of
// FillOpacity over the feature's "value" property.
func FillOpacityExpr(maxValue float64) []interface{} {
	if maxValue <= 0 {
		maxValue = 1
	}
	return []interface{}{
		"interpolate", []interface{}{"linear"}, []interface{}{"get", "value"},
		0.0, 0.3,
		maxValue, 1.0,
	}
}

// HeatColorRamp builds a density color ramp fading from transparent
// into the category color.
func HeatColorRamp(c models.RGB) []interface{} {
	return []interface{}{
		"interpolate", []interface{}{"linear"}, []interface{}{"heatmap-density"},
		0.0, fmt.Sprintf("rgba(%d,%d,%d,0)", c.R, c.G, c.B),
		0.5, fmt.Sprintf("rgba(%d,%d,%d,0.55)", c.R, c.G, c.B),
		1.0, fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B),
	}
}

// FillColor formats the flat polygon color for a category.
func FillColor(c models.RGB) string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}
