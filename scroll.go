package infigrid

import (
	"math"

	"github.com/tanema/gween/ease"
)

// ScrollSurface is the pannable surface. Its content node holds the
// detached line; the content offset is driven by user drags and inertia.
type ScrollSurface struct {
	content *Node
	rest    Vec2

	velocity   Vec2
	horizontal bool
	vertical   bool
	enabled    bool
	decel      float64

	dragging     bool
	dragStart    Vec2
	contentStart Vec2

	prev Vec2

	changed Signal[Vec2]
}

// NewScrollSurface wraps content. The content's current position becomes
// the rest offset. decel is the fraction of velocity kept per second.
func NewScrollSurface(content *Node, decel float64) *ScrollSurface {
	rest := Vec2{content.X, content.Y}
	return &ScrollSurface{
		content:    content,
		rest:       rest,
		prev:       rest,
		decel:      decel,
		enabled:    true,
		horizontal: true,
		vertical:   true,
	}
}

// Content returns the node moved by the surface.
func (s *ScrollSurface) Content() *Node { return s.content }

// Rest returns the offset the surface returns to after a settle.
func (s *ScrollSurface) Rest() Vec2 { return s.rest }

// Offset returns the current content offset.
func (s *ScrollSurface) Offset() Vec2 { return Vec2{s.content.X, s.content.Y} }

// Velocity returns the current scroll velocity in units per second.
func (s *ScrollSurface) Velocity() Vec2 { return s.velocity }

// SetVelocity sets the velocity, masked by the enabled axes.
func (s *ScrollSurface) SetVelocity(v Vec2) {
	if !s.horizontal {
		v.X = 0
	}
	if !s.vertical {
		v.Y = 0
	}
	s.velocity = v
}

// Speed returns the magnitude of the velocity.
func (s *ScrollSurface) Speed() float64 { return s.velocity.Len() }

// SetAxes enables movement along each axis. Velocity on a disabled axis is
// dropped.
func (s *ScrollSurface) SetAxes(horizontal, vertical bool) {
	s.horizontal = horizontal
	s.vertical = vertical
	s.SetVelocity(s.velocity)
}

// Axes reports which axes may move.
func (s *ScrollSurface) Axes() (horizontal, vertical bool) {
	return s.horizontal, s.vertical
}

// SetEnabled turns the surface on or off. Disabling stops motion and ends
// any user drag.
func (s *ScrollSurface) SetEnabled(enabled bool) {
	if s.enabled == enabled {
		return
	}
	s.enabled = enabled
	if !enabled {
		s.velocity = Vec2{}
		s.dragging = false
	}
}

// Enabled reports whether the surface reacts to drags and inertia.
func (s *ScrollSurface) Enabled() bool { return s.enabled }

// BeginDrag starts a user drag with the pointer at p.
func (s *ScrollSurface) BeginDrag(p Vec2) {
	if !s.enabled {
		return
	}
	s.dragging = true
	s.dragStart = p
	s.contentStart = s.Offset()
	s.velocity = Vec2{}
}

// Drag moves the content with the pointer along the enabled axes.
func (s *ScrollSurface) Drag(p Vec2) {
	if !s.enabled || !s.dragging {
		return
	}
	pos := s.contentStart.Add(p.Sub(s.dragStart))
	if s.horizontal {
		s.content.X = pos.X
	}
	if s.vertical {
		s.content.Y = pos.Y
	}
}

// EndDrag finishes the user drag; the content keeps its velocity.
func (s *ScrollSurface) EndDrag() {
	s.dragging = false
}

// UserDragging reports whether the user is dragging the surface.
func (s *ScrollSurface) UserDragging() bool { return s.dragging }

// Update advances inertia or, while dragging, samples the drag velocity,
// then notifies observers if the offset changed.
func (s *ScrollSurface) Update(dt float64) {
	if dt <= 0 {
		return
	}
	if s.enabled {
		pos := s.Offset()
		if s.dragging {
			target := pos.Sub(s.prev).Scale(1 / dt)
			t := math.Min(dt*10, 1)
			s.SetVelocity(s.velocity.Add(target.Sub(s.velocity).Scale(t)))
		} else if !s.velocity.IsZero() {
			pos = pos.Add(s.velocity.Scale(dt))
			f := math.Pow(s.decel, dt)
			s.velocity = s.velocity.Scale(f)
			if math.Abs(s.velocity.X) < 1 {
				s.velocity.X = 0
			}
			if math.Abs(s.velocity.Y) < 1 {
				s.velocity.Y = 0
			}
			s.content.X, s.content.Y = pos.X, pos.Y
		}
	}
	s.notify()
}

// notify emits a value change when the offset moved since the last call.
func (s *ScrollSurface) notify() {
	pos := s.Offset()
	if pos == s.prev {
		return
	}
	s.prev = pos
	s.changed.Emit(pos)
}

// StopMotion zeroes the velocity.
func (s *ScrollSurface) StopMotion() { s.velocity = Vec2{} }

// SetOffset moves the content directly. Observers hear about it on the next
// Update.
func (s *ScrollSurface) SetOffset(p Vec2) {
	s.content.X, s.content.Y = p.X, p.Y
}

// ResetToRest puts the content back at the rest offset without notifying.
func (s *ScrollSurface) ResetToRest() {
	s.content.X, s.content.Y = s.rest.X, s.rest.Y
	s.prev = s.rest
	s.velocity = Vec2{}
}

// OnValueChanged registers fn to run whenever the content offset changes.
func (s *ScrollSurface) OnValueChanged(fn func(offset Vec2)) CallbackHandle {
	return s.changed.Connect(fn)
}

// ScrollController reacts to surface changes with wraparound and re-layout,
// locks the surface to the gesture axis, and snaps the detached line back
// into alignment once scrolling slows down.
type ScrollController struct {
	cfg     Config
	co      *Coordinator
	surface *ScrollSurface
	layout  *Layout
	anim    Animator
	sched   *Scheduler
	bus     *eventBus
	log     *debugLog

	listening     bool
	snapping      bool
	settlePending bool
	axis          Axis
	snapTween     *TweenGroup
}

// NewScrollController wires the controller to the surface and the tracker.
func NewScrollController(co *Coordinator, tracker *AxisTracker) *ScrollController {
	s := &ScrollController{
		cfg:       co.cfg,
		co:        co,
		surface:   co.surface,
		layout:    co.layout,
		anim:      co.anim,
		sched:     co.sched,
		bus:       co.bus,
		log:       co.log,
		listening: true,
	}
	s.surface.OnValueChanged(s.onScroll)
	tracker.OnGestureStarted.Connect(s.onGestureStarted)
	tracker.OnAxisDecided.Connect(s.onAxisDecided)
	tracker.OnGestureEnded.Connect(s.onGestureEnded)
	return s
}

func (s *ScrollController) onScroll(Vec2) {
	if !s.listening {
		return
	}
	s.co.GridUpdate()
	s.layout.MarkDirty()
}

func (s *ScrollController) onGestureStarted(Vec2) {
	s.axis = AxisNone
	s.surface.SetAxes(false, false)
	if s.co.HasDetachedLine() && !s.snapping {
		s.settlePending = true
	}
}

func (s *ScrollController) onAxisDecided(a Axis) {
	s.axis = a
	s.surface.SetAxes(a == AxisX, a == AxisY)
	s.bus.emit(GridEvent{Type: EventAxisDecided, Axis: a})
}

func (s *ScrollController) onGestureEnded(a Axis) {
	s.bus.emit(GridEvent{Type: EventGestureEnded, Axis: a})
	if a != AxisNone && s.surface.Speed() <= s.cfg.SnapMinVelocity {
		s.settlePending = true
	}
}

// Axis returns the axis the surface is currently locked to.
func (s *ScrollController) Axis() Axis { return s.axis }

// Snapping reports whether a snap is in progress.
func (s *ScrollController) Snapping() bool { return s.snapping }

// Listening reports whether surface changes currently trigger wraparound.
func (s *ScrollController) Listening() bool { return s.listening }

// LateUpdate runs after the layout pass and starts a snap when the surface
// speed has decayed into the snap band, or when a finished gesture left
// the line at rest and no cell is busy.
func (s *ScrollController) LateUpdate() {
	if s.snapping || s.surface.UserDragging() {
		return
	}
	speed := s.surface.Speed()
	if speed > s.cfg.SnapMinVelocity && speed < s.cfg.SnapMaxVelocity {
		s.Snap()
		return
	}
	if s.settlePending && speed <= s.cfg.SnapMinVelocity && !s.co.Busy() {
		s.Snap()
	}
}

// Snap stops the surface and animates the detached line into alignment.
// Wraparound is suspended until the animation lands; the line is then
// reindexed and, one frame later, the surface returns to rest.
func (s *ScrollController) Snap() {
	if s.snapping {
		return
	}
	s.snapping = true
	s.settlePending = false
	s.surface.StopMotion()
	s.listening = false

	axis := s.co.LineAxis()
	offset := s.co.SnapOffset(axis)
	s.log.logf("snap %s offset %v", axis, offset)
	s.bus.emit(GridEvent{Type: EventSnapStarted, Axis: axis, Offset: offset})

	if offset.IsZero() {
		s.finishSnap(axis)
		return
	}
	target := s.surface.Offset().Sub(offset)
	g := TweenPosition(s.surface.Content(), target.X, target.Y, float32(s.cfg.SnapDuration), ease.OutCubic)
	g.OnComplete = func() { s.finishSnap(axis) }
	s.snapTween = s.anim.Animate(g)
}

func (s *ScrollController) finishSnap(axis Axis) {
	s.snapTween = nil
	s.listening = true
	s.co.ReindexAndSettle(axis)
	s.layout.MarkDirty()
	s.sched.NextFrame(func() {
		s.surface.ResetToRest()
		s.snapping = false
		s.log.logf("settled")
		s.bus.emit(GridEvent{Type: EventSettled, Axis: axis})
	})
}
