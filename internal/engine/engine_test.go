package engine_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jengzang/incident-map-go/internal/engine"
	"github.com/jengzang/incident-map-go/internal/maprender"
	"github.com/jengzang/incident-map-go/internal/maprender/maptest"
	"github.com/jengzang/incident-map-go/internal/models"
)

type recordedRequest struct {
	path  string
	query url.Values
}

// apiStub serves one density sample for every window and records what
// was asked.
type apiStub struct {
	mu       sync.Mutex
	requests []recordedRequest
}

func (a *apiStub) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		a.requests = append(a.requests, recordedRequest{path: r.URL.Path, query: r.URL.Query()})
		a.mu.Unlock()

		switch {
		case r.URL.Path == "/api/metadata":
			json.NewEncoder(w).Encode(models.Metadata{TotalCount: 42})
		case strings.HasPrefix(r.URL.Path, "/api/density"):
			json.NewEncoder(w).Encode([]models.DensityPoint{{Lon: -95, Lat: 35, Density: 10}})
		case r.URL.Path == "/api/diversity":
			json.NewEncoder(w).Encode([]models.DiversityPoint{{Lon: -95, Lat: 35, Score: 3}})
		default:
			http.NotFound(w, r)
		}
	})
}

func (a *apiStub) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.requests)
}

func (a *apiStub) last() recordedRequest {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.requests[len(a.requests)-1]
}

func newEngine(t *testing.T) (*engine.Engine, *maptest.Fake, *apiStub) {
	t.Helper()
	stub := &apiStub{}
	server := httptest.NewServer(stub.handler())
	t.Cleanup(server.Close)

	e, err := engine.New(engine.Config{
		AccessToken: "pk.test",
		APIBaseURL:  server.URL,
		Quiescence:  10 * time.Millisecond,
	})
	require.NoError(t, err)
	t.Cleanup(e.Close)

	surface := maptest.NewFake()
	require.NoError(t, e.Attach(surface))
	return e, surface, stub
}

func testBounds() models.Bounds {
	return models.Bounds{West: -100, South: 30, East: -90, North: 40}
}

func TestNewRequiresAccessToken(t *testing.T) {
	_, err := engine.New(engine.Config{APIBaseURL: "http://localhost:8080"})
	require.ErrorIs(t, err, engine.ErrMissingToken)
}

func TestAttachTwiceFails(t *testing.T) {
	e, _, _ := newEngine(t)
	require.Error(t, e.Attach(maptest.NewFake()))
}

func TestSelectionAndViewportDriveOneFetch(t *testing.T) {
	e, surface, stub := newEngine(t)

	e.SetSelection([]int{0})
	e.MapIdle(testBounds(), 8)

	require.Eventually(t, func() bool { return stub.count() == 1 }, time.Second, 5*time.Millisecond)

	req := stub.last()
	require.Equal(t, "/api/density", req.path)
	require.Equal(t, "0", req.query.Get("time_window_id"))
	require.Equal(t, "2", req.query.Get("level"))
	require.Equal(t, "-100", req.query.Get("min_lon"))
	require.Equal(t, "30", req.query.Get("min_lat"))
	require.Equal(t, "-90", req.query.Get("max_lon"))
	require.Equal(t, "40", req.query.Get("max_lat"))

	// The sample lands as one square in the window-0 fill source, on a
	// visible layer.
	layers := layerSetOf(t)
	require.Eventually(t, func() bool {
		return len(surface.Source(layers.fillSrc0).Features) == 1
	}, time.Second, 5*time.Millisecond)

	feat := surface.Source(layers.fillSrc0).Features[0]
	rings := feat.Geometry.Coordinates.([][][]float64)
	require.InDelta(t, -95.005, rings[0][0][0], 1e-9)
	require.InDelta(t, 34.995, rings[0][0][1], 1e-9)
	require.True(t, surface.Visible(layers.fill0))
}

func TestModeToggleRedrawsWithoutRefetch(t *testing.T) {
	e, surface, stub := newEngine(t)

	e.SetSelection([]int{0})
	e.MapIdle(testBounds(), 8)
	require.Eventually(t, func() bool { return stub.count() == 1 && !e.Loading() },
		time.Second, 5*time.Millisecond)

	e.SetRenderStyle(maprender.StylePerCategory)
	e.SetDisplayMode(maprender.ModeHeatmap)

	layers := layerSetOf(t)
	require.Eventually(t, func() bool { return surface.Visible(layers.heat0) },
		time.Second, 5*time.Millisecond)
	require.False(t, surface.Visible(layers.fill0), "fill layer must hide in heatmap mode")
	require.Equal(t, 1, stub.count(), "display toggle must reuse fetched data")

	// Most recent of four windows at full knob.
	require.Equal(t, maprender.HeatOpacity(0, 4, 1), surface.Paint(layers.heat0, "heatmap-opacity"))
}

func TestStackedEmptySelectionShowsNothing(t *testing.T) {
	e, surface, stub := newEngine(t)

	e.SetDisplayMode(maprender.ModeHeatmap)
	e.SetRenderStyle(maprender.StyleStacked)
	e.SetFamily(models.FamilyDiversity)
	e.MapIdle(testBounds(), 8)

	layers := layerSetOf(t)
	require.Eventually(t, func() bool { return surface.Visible(layers.divStacked) },
		time.Second, 5*time.Millisecond)

	// Visible, but filtered down to the empty selection.
	require.Equal(t, maprender.SelectionFilter(nil), surface.Filter(layers.divStacked))

	// Nothing selected, nothing fetched.
	time.Sleep(50 * time.Millisecond)
	require.Zero(t, stub.count())
}

func TestScaledSourceSwitchRefetches(t *testing.T) {
	e, _, stub := newEngine(t)

	e.SetSelection([]int{0})
	e.MapIdle(testBounds(), 8)
	require.Eventually(t, func() bool { return stub.count() == 1 }, time.Second, 5*time.Millisecond)

	e.SetScaledSource(true)
	require.Eventually(t, func() bool { return stub.count() == 2 }, time.Second, 5*time.Millisecond)
	require.Equal(t, "/api/density-scaled", stub.last().path)
}

func TestFamilySwitchClearsSelection(t *testing.T) {
	e, _, _ := newEngine(t)

	e.SetSelection([]int{0, 2})
	e.SetFamily(models.FamilyDiversity)

	st := e.State()
	require.Equal(t, models.FamilyDiversity, st.Family)
	require.Empty(t, st.Selected)
}

func TestLevelOverridePinsPrecision(t *testing.T) {
	e, _, stub := newEngine(t)

	e.SetSelection([]int{0})
	e.SetLevelOverride(4)
	e.MapIdle(testBounds(), 8) // zoom 8 alone would mean level 2

	require.Eventually(t, func() bool { return stub.count() == 1 }, time.Second, 5*time.Millisecond)
	require.Equal(t, "4", stub.last().query.Get("level"))
}

func TestMetadataFetch(t *testing.T) {
	e, _, _ := newEngine(t)

	meta, err := e.Metadata(context.Background())
	require.NoError(t, err)
	require.NotNil(t, meta)
	require.Equal(t, 42, meta.TotalCount)
}

func TestCloseTearsDownSurface(t *testing.T) {
	stub := &apiStub{}
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	e, err := engine.New(engine.Config{AccessToken: "pk.test", APIBaseURL: server.URL})
	require.NoError(t, err)

	surface := maptest.NewFake()
	require.NoError(t, e.Attach(surface))
	require.NotZero(t, surface.LayerCount())

	e.Close()
	require.Zero(t, surface.LayerCount())
	require.Zero(t, surface.SourceCount())
}

// layerIDs resolves the handful of layer and source identifiers the
// tests assert on, via a throwaway LayerSet built against a scratch
// surface. Build is deterministic, so the identifiers match the
// engine's own set.
type layerIDs struct {
	fill0      string
	fillSrc0   string
	heat0      string
	divStacked string
}

func layerSetOf(t *testing.T) layerIDs {
	t.Helper()
	ls := maprender.NewLayerSet()
	require.NoError(t, ls.Build(maptest.NewFake()))

	out := layerIDs{}
	var ok bool
	out.fill0, ok = ls.FillLayer(models.FamilyDensity, 0)
	require.True(t, ok)
	out.fillSrc0, ok = ls.FillSource(models.FamilyDensity, 0)
	require.True(t, ok)
	out.heat0, ok = ls.HeatLayer(models.FamilyDensity, 0)
	require.True(t, ok)
	out.divStacked, ok = ls.StackedLayer(models.FamilyDiversity)
	require.True(t, ok)
	return out
}
