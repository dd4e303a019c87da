// Command mapsim drives the rendering engine against a running API
// server with a logging surface, for manual smoke checks without a
// browser.
package main

import (
	"context"
	"log"
	"time"

	"github.com/jengzang/incident-map-go/internal/config"
	"github.com/jengzang/incident-map-go/internal/engine"
	"github.com/jengzang/incident-map-go/internal/geojson"
	"github.com/jengzang/incident-map-go/internal/maprender"
	"github.com/jengzang/incident-map-go/internal/models"
)

// logSurface prints every rendering operation instead of drawing.
type logSurface struct{}

func (logSurface) AddSource(id string, data geojson.FeatureCollection) error {
	log.Printf("[Surface] add source %s", id)
	return nil
}

func (logSurface) SetSourceData(id string, data geojson.FeatureCollection) error {
	log.Printf("[Surface] source %s <- %d features", id, len(data.Features))
	return nil
}

func (logSurface) AddLayer(spec maprender.LayerSpec) error {
	log.Printf("[Surface] add layer %s (source %s)", spec.ID, spec.SourceID)
	return nil
}

func (logSurface) SetVisibility(layerID string, visible bool) error {
	log.Printf("[Surface] layer %s visible=%v", layerID, visible)
	return nil
}

func (logSurface) SetPaint(layerID, property string, value interface{}) error {
	log.Printf("[Surface] layer %s paint %s", layerID, property)
	return nil
}

func (logSurface) SetFilter(layerID string, filter []interface{}) error {
	log.Printf("[Surface] layer %s filter %v", layerID, filter)
	return nil
}

func (logSurface) RemoveLayer(layerID string) error {
	log.Printf("[Surface] remove layer %s", layerID)
	return nil
}

func (logSurface) RemoveSource(id string) error {
	log.Printf("[Surface] remove source %s", id)
	return nil
}

func main() {
	cfg := config.Load()

	eng, err := engine.New(engine.Config{
		AccessToken: cfg.MapToken,
		APIBaseURL:  cfg.APIBaseURL,
		Quiescence:  200 * time.Millisecond,
		OnLoading: func(loading bool) {
			log.Printf("[Loading] %v", loading)
		},
	})
	if err != nil {
		// Without a map token no rendering can happen at all.
		log.Fatalf("cannot start map: %v (set MAP_ACCESS_TOKEN)", err)
	}
	defer eng.Close()

	if err := eng.Attach(logSurface{}); err != nil {
		log.Fatalf("attach surface: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if meta, err := eng.Metadata(ctx); err != nil {
		log.Printf("metadata unavailable: %v", err)
	} else if meta != nil {
		log.Printf("dataset: %d incidents, center (%.4f, %.4f)",
			meta.TotalCount, meta.CenterLon, meta.CenterLat)
	}

	eng.SetSelection([]int{0, 1})
	eng.MapIdle(models.Bounds{West: -100, South: 30, East: -90, North: 40}, 9)
	time.Sleep(2 * time.Second)

	eng.SetDisplayMode(maprender.ModeHeatmap)
	eng.SetRenderStyle(maprender.StylePerCategory)
	time.Sleep(time.Second)

	eng.SetFamily(models.FamilyDiversity)
	eng.SetSelection([]int{2})
	time.Sleep(2 * time.Second)

	log.Printf("loading=%v, done", eng.Loading())
}
