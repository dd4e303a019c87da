package maprender

import (
	"math"
	"testing"

	"github.com/jengzang/incident-map-go/internal/models"
)

func TestHeatRadiusZeroValueStaysVisible(t *testing.T) {
	for zoom := 0.0; zoom <= 20; zoom += 0.5 {
		r := HeatRadius(zoom, 0, 255, 0, 4, 1)
		if r <= 0 {
			t.Fatalf("HeatRadius(zoom=%v, value=0) = %v, want > 0", zoom, r)
		}
	}
}

func TestHeatRadiusValueFloor(t *testing.T) {
	// The value multiplier bottoms out at 0.6 of the full-value radius
	// baseline (multiplier 1.0 at half value).
	zero := HeatRadius(10, 0, 255, 0, 1, 1)
	half := HeatRadius(10, 127.5, 255, 0, 1, 1)
	ratio := zero / half
	if math.Abs(ratio-0.6) > 1e-9 {
		t.Errorf("zero-value radius ratio = %v, want 0.6", ratio)
	}
}

func TestHeatRadiusMonotonicInScaleKnob(t *testing.T) {
	prev := HeatRadius(12, 100, 255, 1, 4, 0.1)
	for knob := 0.2; knob <= 3; knob += 0.1 {
		got := HeatRadius(12, 100, 255, 1, 4, knob)
		if got < prev {
			t.Fatalf("radius decreased as knob grew: knob=%v %v -> %v", knob, prev, got)
		}
		prev = got
	}
}

func TestHeatRadiusAgeScaling(t *testing.T) {
	// Newer categories (lower order index) render narrower.
	newest := HeatRadius(10, 100, 255, 0, 4, 1)
	oldest := HeatRadius(10, 100, 255, 3, 4, 1)
	if newest >= oldest {
		t.Errorf("newest radius %v should be below oldest %v", newest, oldest)
	}
}

func TestHeatOpacityStrictlyDecreasing(t *testing.T) {
	for _, familySize := range []int{2, 3, 4, 8} {
		prev := HeatOpacity(0, familySize, 1)
		for idx := 1; idx < familySize; idx++ {
			got := HeatOpacity(idx, familySize, 1)
			if got >= prev {
				t.Fatalf("familySize=%d: opacity not strictly decreasing at index %d (%v -> %v)",
					familySize, idx, prev, got)
			}
			prev = got
		}
	}
}

func TestHeatOpacityBounds(t *testing.T) {
	for idx := 0; idx < 4; idx++ {
		for _, knob := range []float64{0, 0.5, 1, 2, 10} {
			got := HeatOpacity(idx, 4, knob)
			if got < 0 || got > 1 {
				t.Fatalf("HeatOpacity(%d, 4, %v) = %v out of [0,1]", idx, knob, got)
			}
		}
	}
}

func TestHeatOpacitySingleCategoryFamily(t *testing.T) {
	// One category disables the gradient: maximum opacity, knob only
	// subject to clamping.
	if got := HeatOpacity(0, 1, 0.1); got != maxHeatOpacity {
		t.Errorf("HeatOpacity(familySize=1) = %v, want %v", got, maxHeatOpacity)
	}
}

func TestFillOpacityRange(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		max   float64
		want  float64
	}{
		{"zero value", 0, 255, 0.3},
		{"max value", 255, 255, 1.0},
		{"half value", 127.5, 255, 0.65},
		{"zero max", 10, 0, 0.3},
		{"overshoot clamps", 400, 255, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FillOpacity(tt.value, tt.max)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("FillOpacity(%v, %v) = %v, want %v", tt.value, tt.max, got, tt.want)
			}
		})
	}
}

func TestAgeMultiplierFlatForSingleCategory(t *testing.T) {
	if got := ageMultiplier(0, 1); got != 1 {
		t.Errorf("ageMultiplier(0, 1) = %v, want 1", got)
	}
}

func TestLerpTableClampsOutsideRange(t *testing.T) {
	table := []breakpoint{{in: 1, out: 10}, {in: 3, out: 30}}
	if got := lerpTable(table, 0); got != 10 {
		t.Errorf("below range: got %v, want 10", got)
	}
	if got := lerpTable(table, 5); got != 30 {
		t.Errorf("above range: got %v, want 30", got)
	}
	if got := lerpTable(table, 2); got != 20 {
		t.Errorf("interpolated: got %v, want 20", got)
	}
}

func TestHeatColorRampUsesCategoryColor(t *testing.T) {
	ramp := HeatColorRamp(models.RGB{R: 1, G: 2, B: 3})
	last := ramp[len(ramp)-1].(string)
	if last != "rgb(1,2,3)" {
		t.Errorf("ramp top color = %q, want rgb(1,2,3)", last)
	}
}
