// Package engine composes the viewport tracker, data synchronizer and
// layer synchronizer around one exclusively-owned map surface.
package engine

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/jengzang/incident-map-go/internal/datasync"
	"github.com/jengzang/incident-map-go/internal/maprender"
	"github.com/jengzang/incident-map-go/internal/models"
	"github.com/jengzang/incident-map-go/internal/viewport"
)

// ErrMissingToken is returned when the map provider access token is
// absent. Rendering cannot start without it; callers should surface a
// blocking message and perform no further map operations.
var ErrMissingToken = errors.New("engine: map access token is required")

// Config carries everything the engine needs at construction.
type Config struct {
	// AccessToken is the map provider credential. Required.
	AccessToken string
	// APIBaseURL is the incident API root, e.g. "http://localhost:8080".
	APIBaseURL string
	// Quiescence overrides the viewport debounce window; zero keeps the
	// default.
	Quiescence time.Duration
	// OnLoading receives the aggregate loading flag. Optional.
	OnLoading func(bool)
}

// Engine owns the rendering state machine. All mutating methods are
// safe for concurrent use; internally the data and layer synchronizers
// serialize on their own locks.
type Engine struct {
	mu        sync.Mutex
	surface   maprender.Surface
	layers    *maprender.LayerSet
	lsync     *maprender.Synchronizer
	dsync     *datasync.Synchronizer
	tracker   *viewport.Tracker
	client    *datasync.Client
	onLoading func(bool)

	state  maprender.ViewState
	vp     *models.Viewport
	ctx    context.Context
	cancel context.CancelFunc
}

// New validates the config and builds an unattached engine. The map
// surface is acquired later via Attach, once the mounting surface
// exists.
func New(cfg Config) (*Engine, error) {
	if cfg.AccessToken == "" {
		return nil, ErrMissingToken
	}

	ctx, cancel := context.WithCancel(context.Background())
	e := &Engine{
		client:    datasync.NewClient(cfg.APIBaseURL),
		layers:    maprender.NewLayerSet(),
		state:     maprender.NewViewState(models.FamilyDensity),
		onLoading: cfg.OnLoading,
		ctx:       ctx,
		cancel:    cancel,
	}
	e.tracker = viewport.NewTracker(cfg.Quiescence, e.onViewport)
	return e, nil
}

// Attach acquires the map surface, wires the synchronizers to it and
// builds the persistent layer set. Call once, on the first map-ready
// event; until then state changes and viewport publishes are dropped.
func (e *Engine) Attach(s maprender.Surface) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.surface != nil {
		return errors.New("engine: surface already attached")
	}
	e.surface = s
	e.lsync = maprender.NewSynchronizer(s, e.layers)
	e.dsync = datasync.NewSynchronizer(e.client, s, e.layers, e.onLoading)

	if err := e.layers.Build(s); err != nil {
		return err
	}
	e.lsync.Reconcile(e.state)
	return nil
}

// Close releases the surface: layers and sources are removed, pending
// timers cancelled, in-flight responses orphaned.
func (e *Engine) Close() {
	e.cancel()
	e.tracker.Close()

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.surface != nil {
		e.layers.Teardown(e.surface)
		e.surface = nil
	}
}

// MapIdle forwards a navigation-completed signal into the debounced
// viewport tracker.
func (e *Engine) MapIdle(bounds models.Bounds, zoom float64) {
	e.tracker.MapIdle(bounds, zoom)
}

// onViewport is the viewport-changed subscription: a settled viewport
// triggers a data refresh for the current selection.
func (e *Engine) onViewport(vp models.Viewport) {
	e.mu.Lock()
	e.vp = &vp
	st := e.state
	dsync := e.dsync
	e.mu.Unlock()

	if dsync != nil {
		dsync.Refresh(e.ctx, vp, st)
	}
}

// SetSelection replaces the selected category set for the active
// family. Selection changes reconcile layers and refresh data.
func (e *Engine) SetSelection(ids []int) {
	e.update(func(st *maprender.ViewState) {
		st.Selected = make(map[int]bool, len(ids))
		for _, id := range ids {
			st.Selected[id] = true
		}
	}, true)
}

// SetFamily switches between the density and diversity data families,
// clearing the selection.
func (e *Engine) SetFamily(f models.CategoryFamily) {
	e.update(func(st *maprender.ViewState) {
		st.Family = f
		st.Selected = make(map[int]bool)
	}, true)
}

// SetDisplayMode toggles fill and heatmap rendering. Display mode only
// changes which layers show; it never refetches.
func (e *Engine) SetDisplayMode(m maprender.DisplayMode) {
	e.update(func(st *maprender.ViewState) { st.Mode = m }, false)
}

// SetRenderStyle toggles stacked and per-category heatmap rendering.
func (e *Engine) SetRenderStyle(s maprender.RenderStyle) {
	e.update(func(st *maprender.ViewState) { st.Style = s }, false)
}

// SetRadiusScale adjusts the user heatmap radius knob.
func (e *Engine) SetRadiusScale(v float64) {
	e.update(func(st *maprender.ViewState) { st.RadiusScale = v }, false)
}

// SetOpacityScale adjusts the user heatmap opacity knob.
func (e *Engine) SetOpacityScale(v float64) {
	e.update(func(st *maprender.ViewState) { st.OpacityScale = v }, false)
}

// SetScaledSource routes density fetches through the alternate scaled
// endpoint. Changing the source invalidates fetched data.
func (e *Engine) SetScaledSource(on bool) {
	e.update(func(st *maprender.ViewState) { st.ScaledSource = on }, true)
}

// SetLevelOverride pins the precision level, bypassing the zoom
// mapping; negative restores automatic.
func (e *Engine) SetLevelOverride(level int) {
	e.tracker.SetLevelOverride(level)
}

// State returns a copy of the current display state.
func (e *Engine) State() maprender.ViewState {
	e.mu.Lock()
	defer e.mu.Unlock()
	st := e.state
	sel := make(map[int]bool, len(st.Selected))
	for id, on := range st.Selected {
		sel[id] = on
	}
	st.Selected = sel
	return st
}

// Loading reports whether any category fetch is outstanding.
func (e *Engine) Loading() bool {
	e.mu.Lock()
	dsync := e.dsync
	e.mu.Unlock()
	return dsync != nil && dsync.Loading()
}

// Metadata fetches the optional dataset descriptor; nil means absent.
func (e *Engine) Metadata(ctx context.Context) (*models.Metadata, error) {
	return e.client.FetchMetadata(ctx)
}

// update applies one state mutation, then runs the subscriptions that
// configuration change requires: layer reconciliation always, data
// refresh only when the change affects what must be fetched.
func (e *Engine) update(mutate func(*maprender.ViewState), refetch bool) {
	e.mu.Lock()
	mutate(&e.state)
	st := e.state
	lsync, dsync := e.lsync, e.dsync
	var vp *models.Viewport
	if e.vp != nil {
		v := *e.vp
		vp = &v
	}
	e.mu.Unlock()

	if lsync == nil {
		// Not attached yet; Attach reconciles the accumulated state.
		return
	}
	lsync.Reconcile(st)
	if refetch && vp != nil {
		dsync.Refresh(e.ctx, *vp, st)
	} else if refetch {
		log.Printf("[Engine] no viewport yet, refresh deferred")
	}
}
