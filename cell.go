package infigrid

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// CellState is the drag state of a cell. Collapse toggling runs alongside
// and has its own flags.
type CellState uint8

const (
	StateIdle         CellState = iota
	StatePressed                // pointer down, hold timer running
	StateDragEnabled            // hold completed, waiting for the pointer to move
	StateDragging               // cell follows the pointer
	StateSnappingBack           // returning to its anchor after release
)

func (s CellState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePressed:
		return "pressed"
	case StateDragEnabled:
		return "drag-enabled"
	case StateDragging:
		return "dragging"
	case StateSnappingBack:
		return "snapping-back"
	default:
		return "unknown"
	}
}

// holdEpsilon absorbs float drift when frame deltas are summed.
const holdEpsilon = 1e-9

// Cell is one recycled grid element. The coordinator creates every cell at
// spawn and only ever mutates their coordinates afterwards.
type Cell struct {
	co *Coordinator

	// node is positioned by the layout and by gestures; visual is its drawn
	// child and carries the collapse scale and offset.
	node   *Node
	visual *Node

	coord   Coord
	content *ebiten.Image
	state   CellState

	// Lock sources. Locked reports true while any is set.
	moved      bool // hold aborted by scrolling, cleared on settle
	swapping   bool // taking part in an exchange
	collapsing bool // collapse tween in flight

	expanded     bool // settled collapse state
	wantExpanded bool // state the current toggle is heading to

	anchor      Vec2 // world position to return to after a drag
	dragOffset  Vec2 // cell position minus pointer position
	lastPointer Vec2

	snapBackPending bool

	holdTask      *Task
	axisTask      *Task
	scaleTween    *TweenGroup
	moveTween     *TweenGroup
	collapseTween *TweenGroup
}

func newCell(co *Coordinator, coord Coord, content *ebiten.Image) *Cell {
	c := &Cell{co: co, coord: coord, content: content}
	c.node = NewContainer("cell")
	c.visual = NewSprite("cell-visual", content)
	c.node.AddChild(c.visual)
	c.node.UserData = c
	return c
}

// ID returns a stable identifier for the cell.
func (c *Cell) ID() uint32 { return c.node.ID }

// Coord returns the cell's current logical coordinate.
func (c *Cell) Coord() Coord { return c.coord }

// Node returns the node positioned by layout and gestures.
func (c *Cell) Node() *Node { return c.node }

// Visual returns the drawn child node.
func (c *Cell) Visual() *Node { return c.visual }

// Content returns the content handle assigned at spawn. May be nil.
func (c *Cell) Content() *ebiten.Image { return c.content }

// State returns the drag state.
func (c *Cell) State() CellState { return c.state }

// Locked reports whether the cell is mid-swap, mid-collapse or marked moved.
// Locked cells are never chosen as swap partners and ignore clicks.
func (c *Cell) Locked() bool { return c.moved || c.swapping || c.collapsing }

// Collapsed reports whether the cell is at its normal size.
func (c *Cell) Collapsed() bool { return !c.expanded }

// Expanded reports whether the cell is expanded.
func (c *Cell) Expanded() bool { return c.expanded }

// Anchor returns the world position the cell returns to after a drag.
func (c *Cell) Anchor() Vec2 { return c.anchor }

// Position returns the top-left corner of the cell in render space.
func (c *Cell) Position() Vec2 { return c.node.WorldPosition() }

// Center returns the centre of the cell in render space.
func (c *Cell) Center() Vec2 {
	return c.node.WorldPosition().Add(Vec2{c.node.Width / 2, c.node.Height / 2})
}

// Bounds returns the unscaled cell rectangle in render space.
func (c *Cell) Bounds() Rect { return c.node.WorldRect() }

// Detached reports whether the cell sits in the pannable layer.
func (c *Cell) Detached() bool { return c.node.Parent == c.co.pannable }

// GridCoord implements Slotted. Only cells in the pannable layer are laid
// out; static cells keep whatever position they settled at.
func (c *Cell) GridCoord() (Coord, bool) {
	return c.coord, c.Detached()
}

// SetSlot implements Slotted. pos is local to the pannable layer.
func (c *Cell) SetSlot(pos, size Vec2) {
	c.node.SetPosition(pos.X, pos.Y)
	c.setSize(size)
}

func (c *Cell) setSize(size Vec2) {
	c.node.SetSize(size.X, size.Y)
	c.visual.SetSize(size.X, size.Y)
}

// --- Gestures ---

// PointerDown starts the hold timer and the axis wait.
func (c *Cell) PointerDown(p Vec2) {
	co := c.co
	c.lastPointer = p

	c.axisTask.Cancel()
	c.axisTask = co.sched.Go(func(float64) bool {
		axis := co.tracker.Axis()
		if axis == AxisNone {
			return false
		}
		co.DetachLine(c.coord, axis)
		return true
	})

	c.holdTask.Cancel()
	c.holdTask = nil
	if c.state != StateIdle || c.swapping || c.collapsing {
		return
	}
	c.moved = false
	c.state = StatePressed

	var timer float64
	c.holdTask = co.sched.Go(func(dt float64) bool {
		if co.surface.Speed() > co.cfg.HoldCancelVelocity {
			c.moved = true
			c.state = StateIdle
			co.log.logf("cell %v: hold aborted by scroll (speed %.2f)", c.coord, co.surface.Speed())
			co.bus.emit(GridEvent{Type: EventHoldAborted, CellID: c.ID(), Coord: c.coord})
			return true
		}
		timer += dt
		if timer+holdEpsilon < co.cfg.HoldDuration {
			return false
		}
		c.enableDrag()
		return true
	})
}

// enableDrag runs once the hold completes.
func (c *Cell) enableDrag() {
	co := c.co
	co.surface.SetEnabled(false)
	c.anchor = c.node.WorldPosition()
	c.dragOffset = c.anchor.Sub(c.lastPointer)
	c.state = StateDragEnabled
	co.log.logf("cell %v: drag enabled at %v", c.coord, c.anchor)
	co.bus.emit(GridEvent{Type: EventDragEnabled, CellID: c.ID(), Coord: c.coord})
}

// trackPointer records the latest pointer position while held.
func (c *Cell) trackPointer(p Vec2) {
	c.lastPointer = p
}

// Drag moves the cell with the pointer and looks for a swap partner. It
// returns false when the cell is not in drag mode, in which case the
// gesture belongs to the scroll surface.
func (c *Cell) Drag(p Vec2) bool {
	switch c.state {
	case StateDragEnabled:
		c.beginDrag()
	case StateDragging:
	default:
		return false
	}
	c.lastPointer = p
	c.node.SetWorldPosition(p.Add(c.dragOffset))
	if !c.Locked() {
		if partner := c.nearestPartner(); partner != nil {
			c.co.ExchangeCoordinates(c, partner)
		}
	}
	return true
}

func (c *Cell) beginDrag() {
	co := c.co
	c.state = StateDragging
	co.layout.SetActive(false)
	c.node.RaiseToTop()
	c.scaleTween.Cancel()
	s := co.cfg.DragScale
	c.scaleTween = co.anim.Animate(TweenScale(c.node, s, s, float32(co.cfg.DragScaleDuration), ease.OutQuad))
}

// nearestPartner returns the closest other unlocked idle cell within the
// swap radius, or nil.
func (c *Cell) nearestPartner() *Cell {
	center := c.Center()
	radius := c.co.cfg.SwapRadius
	var best *Cell
	bestDist := math.Inf(1)
	for _, o := range c.co.proximity.NearestWithin(center, radius) {
		if o == nil || o == c || o.Locked() || o.state != StateIdle {
			continue
		}
		d := center.Dist(o.Center())
		if d <= radius && d < bestDist {
			best, bestDist = o, d
		}
	}
	return best
}

// PointerUp cancels a pending hold or sends a dragged cell home.
func (c *Cell) PointerUp() {
	c.holdTask.Cancel()
	c.holdTask = nil
	c.axisTask.Cancel()
	c.axisTask = nil

	switch c.state {
	case StatePressed:
		c.state = StateIdle
	case StateDragEnabled, StateDragging:
		if c.swapping {
			// The exchange commit moves the anchor; go home after it lands.
			c.state = StateSnappingBack
			c.snapBackPending = true
			return
		}
		c.snapBack()
	}
}

func (c *Cell) snapBack() {
	co := c.co
	c.state = StateSnappingBack
	c.scaleTween.Cancel()
	c.scaleTween = co.anim.Animate(TweenScale(c.node, 1, 1, float32(co.cfg.DragScaleDuration), ease.OutQuad))
	c.moveTween.Cancel()
	g := TweenWorldPosition(c.node, c.anchor, float32(co.cfg.SnapBackDuration), ease.OutQuad)
	g.OnComplete = func() {
		co.surface.SetEnabled(true)
		co.layout.SetActive(true)
		co.layout.MarkDirty()
		c.moved = false
		c.state = StateIdle
		co.log.logf("cell %v: snapped back to %v", c.coord, c.anchor)
	}
	c.moveTween = co.anim.Animate(g)
}

// Click toggles the collapse state unless the cell is busy or locked.
func (c *Cell) Click() {
	if c.state != StateIdle || c.Locked() {
		return
	}
	c.co.EnforceSingleExpansion(c)
}

// toggleCollapse flips the target collapse state and animates towards it.
// A toggle issued while another is in flight replaces it.
func (c *Cell) toggleCollapse() {
	co := c.co
	c.wantExpanded = !c.wantExpanded
	c.collapseTween.Cancel()
	c.collapsing = true
	c.node.RaiseToTop()

	toSX, toX := 1.0, 0.0
	if c.wantExpanded {
		sign := 1.0
		if c.coord.X*2 >= co.cfg.VisibleColumns {
			sign = -1
		}
		toSX = co.cfg.ExpandScale
		toX = sign * (co.layout.CellWidth()/2 + co.cfg.ExpandGap)
	}
	g := TweenCollapse(c.visual, toSX, toX, float32(co.cfg.CollapseDuration), ease.OutQuad)
	g.OnComplete = func() {
		c.expanded = c.wantExpanded
		c.collapsing = false
		t := EventCellCollapsed
		if c.expanded {
			t = EventCellExpanded
		}
		co.bus.emit(GridEvent{Type: t, CellID: c.ID(), Coord: c.coord})
	}
	c.collapseTween = co.anim.Animate(g)
}

// checkBounds runs the wraparound test against b. At most one boundary is
// applied per call, in the order left, right, top, bottom.
func (c *Cell) checkBounds(b Bounds, cols, rows int) bool {
	p := c.Center()
	var d Coord
	switch {
	case p.X < b.Left:
		d.X = cols
	case p.X > b.Right:
		d.X = -cols
	case p.Y < b.Top:
		d.Y = -rows
	case p.Y > b.Bottom:
		d.Y = rows
	default:
		return false
	}
	from := c.coord
	c.co.move(c, from.Add(d))
	c.co.bus.emit(GridEvent{Type: EventCellWrapped, CellID: c.ID(), Coord: c.coord, Other: from})
	return true
}

// settle clears gesture locks after a reindex.
func (c *Cell) settle() {
	c.moved = false
}
