package datasync

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/jengzang/incident-map-go/internal/geojson"
	"github.com/jengzang/incident-map-go/internal/maprender"
	"github.com/jengzang/incident-map-go/internal/models"
	"github.com/jengzang/incident-map-go/internal/spatial"
)

// catKey identifies one category across both families.
type catKey struct {
	family models.CategoryFamily
	catID  int
}

// Synchronizer issues viewport-scoped fetches per selected category and
// writes the converted geometry into the map sources. Per category only
// the most recently issued request may write; earlier in-flight
// responses are discarded on arrival. All source writes for one
// response happen under a single lock, so overlapping completions
// serialize like event-loop callbacks.
type Synchronizer struct {
	mu      sync.Mutex
	client  *Client
	surface maprender.Surface
	layers  *maprender.LayerSet

	seq         map[catKey]uint64 // latest issued request per category
	fetchKey    map[catKey]string // (level, bounds, source) of last applied fetch
	inflightKey map[catKey]string // same key for the request still in flight
	points      map[catKey][]models.DataPoint
	inflight    int

	// onLoading reports the aggregate "any category still loading"
	// flag; invoked outside the lock on every transition.
	onLoading func(bool)
}

// NewSynchronizer builds a data synchronizer writing through the given
// surface and layer set. onLoading may be nil.
func NewSynchronizer(client *Client, surface maprender.Surface, layers *maprender.LayerSet, onLoading func(bool)) *Synchronizer {
	return &Synchronizer{
		client:      client,
		surface:     surface,
		layers:      layers,
		seq:         make(map[catKey]uint64),
		fetchKey:    make(map[catKey]string),
		inflightKey: make(map[catKey]string),
		points:      make(map[catKey][]models.DataPoint),
		onLoading:   onLoading,
	}
}

// Loading reports whether any category has an outstanding request.
func (s *Synchronizer) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight > 0
}

// Refresh reconciles every category's source content against the
// viewport and display state: selected categories of the active family
// are fetched (unless their data is already current for this viewport),
// everything else is cleared. Safe to call from any goroutine.
func (s *Synchronizer) Refresh(ctx context.Context, vp models.Viewport, st maprender.ViewState) {
	if !s.layers.Built() {
		log.Printf("[DataSync] layers not built yet, skipping refresh")
		return
	}

	s.mu.Lock()
	for _, family := range []models.CategoryFamily{models.FamilyDensity, models.FamilyDiversity} {
		active := family == st.Family
		for _, cat := range models.Catalog(family) {
			key := catKey{family: family, catID: cat.ID}
			if !active || !st.Selected[cat.ID] {
				s.clearLocked(key)
				continue
			}
			s.fetchLocked(ctx, key, vp, st)
		}
	}
	loading := s.inflight > 0
	s.mu.Unlock()

	s.reportLoading(loading)
}

// fetchLocked issues one request for a selected category unless the
// applied data, or a request already in flight, matches the viewport
// and source toggle.
func (s *Synchronizer) fetchLocked(ctx context.Context, key catKey, vp models.Viewport, st maprender.ViewState) {
	want := fmt.Sprintf("%d|%.6f,%.6f,%.6f,%.6f|%v",
		vp.Level, vp.West, vp.South, vp.East, vp.North, st.ScaledSource && key.family == models.FamilyDensity)
	if s.fetchKey[key] == want || s.inflightKey[key] == want {
		return
	}

	s.seq[key]++
	seq := s.seq[key]
	s.inflightKey[key] = want
	s.inflight++

	go s.fetch(ctx, key, seq, want, vp, st)
}

func (s *Synchronizer) fetch(ctx context.Context, key catKey, seq uint64, want string, vp models.Viewport, st maprender.ViewState) {
	var (
		points []models.DataPoint
		err    error
	)
	if key.family == models.FamilyDiversity {
		points, err = s.client.FetchDiversity(ctx, key.catID, vp.Level, vp.Bounds)
	} else {
		points, err = s.client.FetchDensity(ctx, key.catID, vp.Level, vp.Bounds, st.ScaledSource)
	}

	s.mu.Lock()
	s.inflight--

	if s.seq[key] != seq {
		// A newer request for this category was issued while this one
		// was in flight; its result owns the source now.
		loading := s.inflight > 0
		s.mu.Unlock()
		log.Printf("[DataSync] dropping stale response %s cat=%d seq=%d", key.family, key.catID, seq)
		s.reportLoading(loading)
		return
	}

	// This request is the latest for its category; it owns the
	// in-flight slot.
	delete(s.inflightKey, key)

	if err != nil {
		log.Printf("[DataSync] fetch failed %s cat=%d: %v", key.family, key.catID, err)
		s.clearLocked(key)
		loading := s.inflight > 0
		s.mu.Unlock()
		s.reportLoading(loading)
		return
	}

	s.fetchKey[key] = want
	s.points[key] = points
	s.writeFillLocked(key, points, vp.Level)
	s.writeHeatLocked(key.family)
	loading := s.inflight > 0
	s.mu.Unlock()

	s.reportLoading(loading)
}

// clearLocked empties a category's displayed data and orphans any
// request still in flight for it, so a late response cannot repopulate
// a deselected category. A category that is already empty and idle is
// left untouched, keeping repeated reconciliation free at the data
// level.
func (s *Synchronizer) clearLocked(key catKey) {
	_, hadFetch := s.fetchKey[key]
	_, hadInflight := s.inflightKey[key]
	hadPoints := len(s.points[key]) > 0
	if !hadFetch && !hadInflight && !hadPoints {
		return
	}

	if hadInflight {
		s.seq[key]++
		delete(s.inflightKey, key)
	}
	delete(s.fetchKey, key)
	delete(s.points, key)
	if src, ok := s.layers.FillSource(key.family, key.catID); ok {
		s.surface.SetSourceData(src, geojson.Empty())
	}
	s.writeHeatLocked(key.family)
}

// writeFillLocked converts points into grid-cell polygons and writes
// the category's fill source.
func (s *Synchronizer) writeFillLocked(key catKey, points []models.DataPoint, level int) {
	src, ok := s.layers.FillSource(key.family, key.catID)
	if !ok {
		return
	}
	half := spatial.CellHalfWidth(level)
	features := make([]geojson.Feature, 0, len(points))
	for _, p := range points {
		features = append(features, geojson.SquareFeature(p.Lon, p.Lat, half, map[string]interface{}{
			"category": key.catID,
			"value":    p.Value,
		}))
	}
	s.surface.SetSourceData(src, geojson.NewCollection(features))
}

// writeHeatLocked rebuilds the family's shared point source from every
// cached category, each point tagged with its category for filtering.
func (s *Synchronizer) writeHeatLocked(family models.CategoryFamily) {
	src, ok := s.layers.HeatSource(family)
	if !ok {
		return
	}
	var features []geojson.Feature
	for _, cat := range models.Catalog(family) {
		key := catKey{family: family, catID: cat.ID}
		for _, p := range s.points[key] {
			features = append(features, geojson.PointFeature(p.Lon, p.Lat, map[string]interface{}{
				"category": cat.ID,
				"value":    p.Value,
			}))
		}
	}
	s.surface.SetSourceData(src, geojson.NewCollection(features))
}

func (s *Synchronizer) reportLoading(loading bool) {
	if s.onLoading != nil {
		s.onLoading(loading)
	}
}
