package infigrid

import "math"

// AxisTracker decides whether the current pointer gesture is horizontal or
// vertical. The first frame on which one delta component strictly dominates
// and exceeds the dead zone locks the axis for the rest of the gesture.
// A Grid owns one tracker; its state resets on every press.
type AxisTracker struct {
	deadZone float64
	anchor   Vec2
	tracking bool
	axis     Axis

	// OnGestureStarted fires on press with the anchor position.
	OnGestureStarted Signal[Vec2]
	// OnAxisDecided fires once per gesture when the axis locks.
	OnAxisDecided Signal[Axis]
	// OnGestureEnded fires on release with the final, possibly undetermined, axis.
	OnGestureEnded Signal[Axis]
}

// NewAxisTracker creates a tracker with the given dead zone in render units.
func NewAxisTracker(deadZone float64) *AxisTracker {
	return &AxisTracker{deadZone: deadZone}
}

// Press starts a new gesture anchored at p.
func (t *AxisTracker) Press(p Vec2) {
	t.anchor = p
	t.tracking = true
	t.axis = AxisNone
	t.OnGestureStarted.Emit(p)
}

// Track is called every frame while the pointer is held.
func (t *AxisTracker) Track(p Vec2) {
	if !t.tracking || t.axis != AxisNone {
		return
	}
	dx := math.Abs(p.X - t.anchor.X)
	dy := math.Abs(p.Y - t.anchor.Y)
	switch {
	case dx > dy && dx > t.deadZone:
		t.axis = AxisX
	case dy > dx && dy > t.deadZone:
		t.axis = AxisY
	default:
		return
	}
	t.OnAxisDecided.Emit(t.axis)
}

// Release ends the gesture, reports its axis and resets the tracker.
func (t *AxisTracker) Release() {
	if !t.tracking {
		return
	}
	axis := t.axis
	t.tracking = false
	t.OnGestureEnded.Emit(axis)
	t.axis = AxisNone
	t.anchor = Vec2{}
}

// Axis returns the axis of the gesture in progress.
func (t *AxisTracker) Axis() Axis { return t.axis }

// Tracking reports whether a gesture is in progress.
func (t *AxisTracker) Tracking() bool { return t.tracking }

// Anchor returns the press position of the current gesture.
func (t *AxisTracker) Anchor() Vec2 { return t.anchor }
