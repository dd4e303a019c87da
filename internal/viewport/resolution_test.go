package viewport

import (
	"testing"

	"github.com/jengzang/incident-map-go/internal/spatial"
)

func TestLevelForZoom(t *testing.T) {
	tests := []struct {
		name string
		zoom float64
		want int
	}{
		{"far below first threshold", 0, spatial.MinLevel},
		{"just below first threshold", 6.9, 1},
		{"at first threshold", 7, 2},
		{"between thresholds", 11, 3},
		{"at top threshold", 13, 4},
		{"beyond top threshold", 22, spatial.MaxLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LevelForZoom(tt.zoom); got != tt.want {
				t.Errorf("LevelForZoom(%v) = %d, want %d", tt.zoom, got, tt.want)
			}
		})
	}
}

func TestLevelForZoomMonotonic(t *testing.T) {
	prev := LevelForZoom(0)
	for z := 0.0; z <= 22; z += 0.25 {
		got := LevelForZoom(z)
		if got < prev {
			t.Fatalf("LevelForZoom decreased at zoom %v: %d -> %d", z, prev, got)
		}
		if got < spatial.MinLevel || got > spatial.MaxLevel {
			t.Fatalf("LevelForZoom(%v) = %d out of range", z, got)
		}
		prev = got
	}
}

func TestClampLevel(t *testing.T) {
	if got := ClampLevel(-3); got != spatial.MinLevel {
		t.Errorf("ClampLevel(-3) = %d, want %d", got, spatial.MinLevel)
	}
	if got := ClampLevel(99); got != spatial.MaxLevel {
		t.Errorf("ClampLevel(99) = %d, want %d", got, spatial.MaxLevel)
	}
	if got := ClampLevel(3); got != 3 {
		t.Errorf("ClampLevel(3) = %d, want 3", got)
	}
}
