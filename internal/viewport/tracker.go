package viewport

import (
	"log"
	"sync"
	"time"

	"github.com/jengzang/incident-map-go/internal/models"
)

const (
	// DefaultQuiescence is the debounce window after the last map-idle
	// signal before a viewport is published.
	DefaultQuiescence = 500 * time.Millisecond

	// EdgeTolerance is the per-edge change in degrees below which a
	// bounds move is considered float jitter, not a real navigation.
	EdgeTolerance = 1e-4
)

// Tracker debounces map-idle signals and publishes stable viewport
// snapshots. A snapshot is only published when any edge moved beyond
// EdgeTolerance or the precision level changed; the very first snapshot
// after construction is published unconditionally.
type Tracker struct {
	mu         sync.Mutex
	sched      *Scheduler
	quiescence time.Duration
	publish    func(models.Viewport)

	last     *models.Viewport
	override *int // manual precision level, clamped on use
}

// NewTracker builds a tracker delivering snapshots to publish. The
// callback runs on the scheduler's timer goroutine.
func NewTracker(quiescence time.Duration, publish func(models.Viewport)) *Tracker {
	if quiescence <= 0 {
		quiescence = DefaultQuiescence
	}
	return &Tracker{
		sched:      NewScheduler(),
		quiescence: quiescence,
		publish:    publish,
	}
}

// MapIdle records the end of a pan or zoom. Repeated calls inside the
// quiescence window supersede each other; only the final settled bounds
// are considered for publishing.
func (t *Tracker) MapIdle(bounds models.Bounds, zoom float64) {
	t.sched.Schedule(t.quiescence, func() {
		t.settle(bounds, zoom)
	})
}

// SetLevelOverride substitutes a user-chosen precision level for the
// zoom-derived one. Passing a negative value restores automatic mapping.
func (t *Tracker) SetLevelOverride(level int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if level < 0 {
		t.override = nil
		return
	}
	clamped := ClampLevel(level)
	t.override = &clamped
}

// Last returns the most recently published viewport, or false when
// nothing has been published yet.
func (t *Tracker) Last() (models.Viewport, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.last == nil {
		return models.Viewport{}, false
	}
	return *t.last, true
}

// Close cancels any pending publish.
func (t *Tracker) Close() {
	t.sched.Cancel()
}

func (t *Tracker) settle(bounds models.Bounds, zoom float64) {
	t.mu.Lock()

	level := LevelForZoom(zoom)
	if t.override != nil {
		level = *t.override
	}
	next := models.Viewport{Bounds: bounds, Level: level}

	if t.last != nil && !t.significant(next) {
		t.mu.Unlock()
		return
	}

	t.last = &next
	publish := t.publish
	t.mu.Unlock()

	log.Printf("[Viewport] settled level=%d west=%.4f south=%.4f east=%.4f north=%.4f",
		next.Level, next.West, next.South, next.East, next.North)
	if publish != nil {
		publish(next)
	}
}

// significant reports whether next differs from the last published
// viewport by more than the per-edge tolerance, or by precision level.
func (t *Tracker) significant(next models.Viewport) bool {
	prev := *t.last
	if next.Level != prev.Level {
		return true
	}
	return exceeds(next.West, prev.West) ||
		exceeds(next.South, prev.South) ||
		exceeds(next.East, prev.East) ||
		exceeds(next.North, prev.North)
}

func exceeds(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d > EdgeTolerance
}
