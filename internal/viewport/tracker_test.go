package viewport

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jengzang/incident-map-go/internal/models"
)

type publishRecorder struct {
	mu        sync.Mutex
	published []models.Viewport
}

func (r *publishRecorder) publish(vp models.Viewport) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.published = append(r.published, vp)
}

func (r *publishRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.published)
}

func (r *publishRecorder) last() models.Viewport {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.published[len(r.published)-1]
}

func TestTrackerFirstCaptureUnconditional(t *testing.T) {
	rec := &publishRecorder{}
	tr := NewTracker(10*time.Millisecond, rec.publish)
	defer tr.Close()

	tr.MapIdle(models.Bounds{West: -100, South: 30, East: -90, North: 40}, 8)

	require.Eventually(t, func() bool { return rec.count() == 1 }, time.Second, 5*time.Millisecond)
	got := rec.last()
	require.Equal(t, 2, got.Level)
	require.Equal(t, -100.0, got.West)

	last, ok := tr.Last()
	require.True(t, ok)
	require.True(t, last.Equal(got))
}

func TestTrackerLastBeforePublish(t *testing.T) {
	tr := NewTracker(10*time.Millisecond, nil)
	defer tr.Close()

	_, ok := tr.Last()
	require.False(t, ok)
}

func TestTrackerDebounceCollapsesRapidSignals(t *testing.T) {
	rec := &publishRecorder{}
	tr := NewTracker(50*time.Millisecond, rec.publish)
	defer tr.Close()

	for i := 0; i < 5; i++ {
		tr.MapIdle(models.Bounds{West: float64(-100 - i), South: 30, East: -90, North: 40}, 8)
		time.Sleep(5 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return rec.count() == 1 }, time.Second, 5*time.Millisecond)
	require.Equal(t, -104.0, rec.last().West)

	// No further publishes after settling.
	time.Sleep(100 * time.Millisecond)
	require.Equal(t, 1, rec.count())
}

func TestTrackerToleranceSuppressesJitter(t *testing.T) {
	rec := &publishRecorder{}
	tr := NewTracker(10*time.Millisecond, rec.publish)
	defer tr.Close()

	base := models.Bounds{West: -100, South: 30, East: -90, North: 40}
	tr.MapIdle(base, 8)
	require.Eventually(t, func() bool { return rec.count() == 1 }, time.Second, 5*time.Millisecond)

	// Move every edge by less than the tolerance.
	jitter := base
	jitter.West += EdgeTolerance / 2
	jitter.East -= EdgeTolerance / 2
	tr.MapIdle(jitter, 8)
	time.Sleep(100 * time.Millisecond)
	require.Equal(t, 1, rec.count(), "sub-tolerance move must not publish")

	// One edge beyond tolerance is significant.
	moved := base
	moved.North += EdgeTolerance * 3
	tr.MapIdle(moved, 8)
	require.Eventually(t, func() bool { return rec.count() == 2 }, time.Second, 5*time.Millisecond)
}

func TestTrackerLevelChangeIsSignificant(t *testing.T) {
	rec := &publishRecorder{}
	tr := NewTracker(10*time.Millisecond, rec.publish)
	defer tr.Close()

	base := models.Bounds{West: -100, South: 30, East: -90, North: 40}
	tr.MapIdle(base, 8)
	require.Eventually(t, func() bool { return rec.count() == 1 }, time.Second, 5*time.Millisecond)

	// Same bounds, zoom crossing a threshold.
	tr.MapIdle(base, 11)
	require.Eventually(t, func() bool { return rec.count() == 2 }, time.Second, 5*time.Millisecond)
	require.Equal(t, 3, rec.last().Level)
}

func TestTrackerLevelOverrideClamped(t *testing.T) {
	rec := &publishRecorder{}
	tr := NewTracker(10*time.Millisecond, rec.publish)
	defer tr.Close()

	tr.SetLevelOverride(99)
	tr.MapIdle(models.Bounds{West: -100, South: 30, East: -90, North: 40}, 2)

	require.Eventually(t, func() bool { return rec.count() == 1 }, time.Second, 5*time.Millisecond)
	require.Equal(t, 4, rec.last().Level, "override must be clamped to the max level")
}
