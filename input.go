package infigrid

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// PointerReader samples the single pointer the grid reacts to. Positions are
// in render space.
type PointerReader func() (x, y float64, pressed bool)

// EbitenPointer reads the left mouse button, falling back to the first
// active touch when the mouse is up.
func EbitenPointer() (float64, float64, bool) {
	mx, my := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		return float64(mx), float64(my), true
	}
	if ids := ebiten.AppendTouchIDs(nil); len(ids) > 0 {
		tx, ty := ebiten.TouchPosition(ids[0])
		return float64(tx), float64(ty), true
	}
	return float64(mx), float64(my), false
}

// pointerState tracks the one pointer between frames.
type pointerState struct {
	down        bool
	start       Vec2
	last        Vec2
	hit         *Cell
	dragging    bool // moved past the drag dead zone
	surfaceDrag bool // the surface owns the current drag
	injected    bool // the current press came from the inject queue
}

// processInput is called from Grid.Step before the scheduler runs.
func (g *Grid) processInput() {
	if g.processInjectedInput() {
		return
	}
	ps := &g.ptr
	if g.pointer == nil || ps.injected {
		// No live reader for this press: keep the held pointer where it is.
		if ps.down {
			g.processPointer(ps.last, true)
		}
		return
	}
	x, y, pressed := g.pointer()
	g.processPointer(Vec2{x, y}, pressed)
}

// processPointer runs the press/hold/drag/release state machine.
func (g *Grid) processPointer(p Vec2, pressed bool) {
	ps := &g.ptr

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.start = p
		ps.last = p
		ps.dragging = false
		ps.surfaceDrag = false
		ps.hit = g.coord.hitTest(p)

		g.tracker.Press(p)
		if ps.hit != nil {
			ps.hit.PointerDown(p)
		}

	case pressed && ps.down:
		g.tracker.Track(p)
		if ps.hit != nil {
			ps.hit.trackPointer(p)
		}
		if !ps.dragging && p.Dist(ps.start) > g.cfg.DragDeadZone {
			ps.dragging = true
		}
		if ps.dragging && p != ps.last {
			g.routeDrag(p)
		}
		ps.last = p

	case !pressed && ps.down:
		if ps.surfaceDrag {
			g.surface.EndDrag()
		}
		hit := ps.hit
		if hit != nil {
			hit.PointerUp()
			if !ps.dragging && g.coord.hitTest(p) == hit {
				hit.Click()
			}
		}
		g.tracker.Release()

		*ps = pointerState{last: p}
	}
}

// routeDrag offers the drag to the pressed cell first; if the cell is not in
// drag mode the scroll surface takes it.
func (g *Grid) routeDrag(p Vec2) {
	ps := &g.ptr
	if ps.hit != nil && ps.hit.Drag(p) {
		if ps.surfaceDrag {
			g.surface.EndDrag()
			ps.surfaceDrag = false
		}
		return
	}
	if g.scroll.Snapping() {
		return
	}
	if !ps.surfaceDrag {
		g.surface.BeginDrag(p)
		ps.surfaceDrag = g.surface.UserDragging()
		return
	}
	g.surface.Drag(p)
}
