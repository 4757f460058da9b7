package infigrid

import (
	"math"
	"sort"

	"github.com/tanema/gween/ease"
)

// snapEpsilon is the misalignment below which a line counts as aligned.
const snapEpsilon = 1e-6

// ProximityQuery finds cells whose centres lie within r of p. The result may
// include locked cells and the caller itself; callers filter.
type ProximityQuery interface {
	NearestWithin(p Vec2, r float64) []*Cell
}

// arenaProximity scans every cell.
type arenaProximity struct {
	co  *Coordinator
	buf []*Cell
}

func (q *arenaProximity) NearestWithin(p Vec2, r float64) []*Cell {
	q.buf = q.buf[:0]
	for _, c := range q.co.cells {
		if p.Dist(c.Center()) <= r {
			q.buf = append(q.buf, c)
		}
	}
	sort.SliceStable(q.buf, func(i, j int) bool {
		return p.Dist(q.buf[i].Center()) < p.Dist(q.buf[j].Center())
	})
	return q.buf
}

// Coordinator owns the cell arena and orchestrates line detachment, swaps,
// wraparound, snap offsets and reindexing.
type Coordinator struct {
	cfg       Config
	layout    *Layout
	sched     *Scheduler
	anim      Animator
	surface   *ScrollSurface
	tracker   *AxisTracker
	proximity ProximityQuery
	bus       *eventBus
	log       *debugLog

	root     *Node
	static   *Node
	pannable *Node

	cells []*Cell
	index map[Coord]*Cell

	bounds    Bounds
	reference Vec2
	lineAxis  Axis
}

// Spawn allocates the full buffered window. Array position (x, y) receives
// coordinate (x-bufferColumns, visibleRows+bufferRows-1-y). Content is drawn
// round-robin from the content source; nil content is allowed. Every cell
// starts in the pannable layer so the first arrangement places it.
func (co *Coordinator) Spawn() {
	rows, cols := co.layout.TotalRows(), co.layout.TotalColumns()
	if rows <= 0 || cols <= 0 {
		return
	}
	co.cells = make([]*Cell, 0, rows*cols)
	co.index = make(map[Coord]*Cell, rows*cols)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			coord := Coord{
				X: x - co.cfg.BufferColumns,
				Y: co.cfg.VisibleRows + co.cfg.BufferRows - 1 - y,
			}
			content := co.cfg.Content.Next()
			c := newCell(co, coord, content)
			co.pannable.AddChild(c.node)
			co.cells = append(co.cells, c)
			co.index[coord] = c
		}
	}
	co.log.logf("spawned %d cells (%dx%d)", len(co.cells), cols, rows)
}

// ComputeBounds derives the four wraparound lines and the snap reference
// from the slot geometry, then moves every cell to the static layer.
func (co *Coordinator) ComputeBounds() {
	l := co.layout
	size := l.CellSize()
	vr, br, bc := co.cfg.VisibleRows, co.cfg.BufferRows, co.cfg.BufferColumns
	cols, rows := l.TotalColumns(), l.TotalRows()
	midRow := vr + br - 1 - rows/2
	midCol := cols/2 - bc

	left := l.SlotCenter(Coord{-bc, midRow})
	right := l.SlotCenter(Coord{cols - 1 - bc, midRow})
	top := l.SlotCenter(Coord{midCol, vr + br - 1})
	bottom := l.SlotCenter(Coord{midCol, -br})
	rest := co.surface.Rest()

	co.bounds = Bounds{
		Left:   rest.X + left.X - size.X/2,
		Right:  rest.X + right.X + size.X/2,
		Top:    rest.Y + top.Y - size.Y/2,
		Bottom: rest.Y + bottom.Y + size.Y/2,
	}
	co.reference = rest.Add(l.Slot(Coord{1 - bc, vr + br - 2}))

	for _, c := range co.cells {
		c.node.Reparent(co.static)
	}
	co.lineAxis = AxisNone
	co.log.logf("bounds %+v reference %v", co.bounds, co.reference)
}

// Bounds returns the wraparound boundary lines.
func (co *Coordinator) Bounds() Bounds { return co.bounds }

// Reference returns the snap reference position.
func (co *Coordinator) Reference() Vec2 { return co.reference }

// GridUpdate runs the wraparound check on every cell.
func (co *Coordinator) GridUpdate() {
	cols, rows := co.layout.TotalColumns(), co.layout.TotalRows()
	for _, c := range co.cells {
		c.checkBounds(co.bounds, cols, rows)
	}
}

// DetachLine moves the row (AxisX) or column (AxisY) through coord into the
// pannable layer, keeping world positions. Ignored for AxisNone or while a
// line is already detached.
func (co *Coordinator) DetachLine(coord Coord, axis Axis) {
	if axis == AxisNone || co.pannable.NumChildren() > 0 {
		return
	}
	n := 0
	for _, c := range co.cells {
		if (axis == AxisX && c.coord.Y == coord.Y) || (axis == AxisY && c.coord.X == coord.X) {
			c.node.Reparent(co.pannable)
			n++
		}
	}
	if n == 0 {
		return
	}
	co.lineAxis = axis
	co.log.logf("detached %s line through %v (%d cells)", axis, coord, n)
	co.bus.emit(GridEvent{Type: EventLineDetached, Coord: coord, Axis: axis})
}

// HasDetachedLine reports whether any cell is in the pannable layer.
func (co *Coordinator) HasDetachedLine() bool { return co.pannable.NumChildren() > 0 }

// LineAxis returns the axis of the detached line, AxisNone if there is none.
func (co *Coordinator) LineAxis() Axis { return co.lineAxis }

// Line returns the cells in the pannable layer in child order.
func (co *Coordinator) Line() []*Cell {
	kids := co.pannable.Children()
	line := make([]*Cell, 0, len(kids))
	for _, n := range kids {
		if c, ok := n.UserData.(*Cell); ok {
			line = append(line, c)
		}
	}
	return line
}

// ExchangeCoordinates starts a swap: b animates to a's anchor and, once it
// lands, the two cells trade coordinates and layers and a's anchor moves to
// b's old position. Returns false without side effects when either cell is
// nil, they are the same cell, or either is locked.
func (co *Coordinator) ExchangeCoordinates(a, b *Cell) bool {
	if a == nil || b == nil || a == b || a.Locked() || b.Locked() {
		return false
	}
	a.swapping, b.swapping = true, true
	from := b.node.WorldPosition()
	co.log.logf("swap %v <-> %v", a.coord, b.coord)
	co.bus.emit(GridEvent{Type: EventSwapStarted, CellID: a.ID(), Coord: a.coord, Other: b.coord})

	b.moveTween.Cancel()
	g := TweenWorldPosition(b.node, a.anchor, float32(co.cfg.SwapDuration), ease.OutQuad)
	g.OnComplete = func() {
		co.exchange(a, b)
		pa, pb := a.node.Parent, b.node.Parent
		if pa != pb {
			a.node.Reparent(pb)
			b.node.Reparent(pa)
		}
		b.node.SetWorldPosition(a.anchor)
		a.anchor = from
		a.swapping, b.swapping = false, false
		co.bus.emit(GridEvent{Type: EventSwapCommitted, CellID: a.ID(), Coord: a.coord, Other: b.coord})
		if a.snapBackPending {
			a.snapBackPending = false
			a.snapBack()
		}
	}
	b.moveTween = co.anim.Animate(g)
	return true
}

// exchange trades the coordinates of a and b and updates the index.
func (co *Coordinator) exchange(a, b *Cell) {
	a.coord, b.coord = b.coord, a.coord
	co.index[a.coord] = a
	co.index[b.coord] = b
}

// move changes c's coordinate and keeps the index current.
func (co *Coordinator) move(c *Cell, to Coord) {
	if co.index[c.coord] == c {
		delete(co.index, c.coord)
	}
	c.coord = to
	co.index[to] = c
}

// SnapOffset returns how far the detached line is from alignment along
// axis. The target is the cell one step in from the line's leading end:
// gx == min+1 for AxisX, gy == max-1 for AxisY. The zero vector is returned
// when the line is aligned, missing, or has no target cell.
func (co *Coordinator) SnapOffset(axis Axis) Vec2 {
	line := co.Line()
	if axis == AxisNone || len(line) == 0 {
		return Vec2{}
	}
	ext := line[0].coord
	for _, c := range line[1:] {
		ext.X = min(ext.X, c.coord.X)
		ext.Y = max(ext.Y, c.coord.Y)
	}
	var target *Cell
	for _, c := range line {
		if (axis == AxisX && c.coord.X == ext.X+1) || (axis == AxisY && c.coord.Y == ext.Y-1) {
			target = c
			break
		}
	}
	if target == nil {
		return Vec2{}
	}
	p := target.node.WorldPosition()
	var off Vec2
	if axis == AxisX {
		off.X = p.X - co.reference.X
	} else {
		off.Y = p.Y - co.reference.Y
	}
	if math.Abs(off.X) < snapEpsilon && math.Abs(off.Y) < snapEpsilon {
		return Vec2{}
	}
	return off
}

// ReindexAndSettle renumbers the detached line by position along axis,
// starting from -bufferColumns (AxisX, left to right) or -bufferRows
// (AxisY, bottom to top), returns the line to the static layer and clears
// every cell's moved lock.
func (co *Coordinator) ReindexAndSettle(axis Axis) {
	line := co.Line()
	switch axis {
	case AxisX:
		sort.SliceStable(line, func(i, j int) bool {
			return line[i].node.WorldPosition().X < line[j].node.WorldPosition().X
		})
		for i, c := range line {
			co.move(c, Coord{X: i - co.cfg.BufferColumns, Y: c.coord.Y})
		}
	case AxisY:
		sort.SliceStable(line, func(i, j int) bool {
			return line[i].node.WorldPosition().Y > line[j].node.WorldPosition().Y
		})
		for i, c := range line {
			co.move(c, Coord{X: c.coord.X, Y: i - co.cfg.BufferRows})
		}
	}
	for _, c := range line {
		c.node.Reparent(co.static)
	}
	for _, c := range co.cells {
		c.settle()
	}
	co.lineAxis = AxisNone
	co.log.logf("reindexed %d cells along %s", len(line), axis)
}

// EnforceSingleExpansion collapses every other expanded or expanding cell,
// then toggles cell.
func (co *Coordinator) EnforceSingleExpansion(cell *Cell) {
	for _, c := range co.cells {
		if c != cell && c.wantExpanded {
			c.toggleCollapse()
		}
	}
	cell.toggleCollapse()
}

// Busy reports whether any cell is held, dragged, snapping back or swapping.
func (co *Coordinator) Busy() bool {
	for _, c := range co.cells {
		if c.state != StateIdle || c.swapping {
			return true
		}
	}
	return false
}

// CellAt returns the cell currently holding coord.
func (co *Coordinator) CellAt(coord Coord) (*Cell, bool) {
	c, ok := co.index[coord]
	return c, ok
}

// Cells returns the arena in spawn order. The slice MUST NOT be mutated.
func (co *Coordinator) Cells() []*Cell { return co.cells }

// Expanded returns the cells whose settled state is expanded.
func (co *Coordinator) Expanded() []*Cell {
	var out []*Cell
	for _, c := range co.cells {
		if c.expanded {
			out = append(out, c)
		}
	}
	return out
}

// slotted returns every cell as a layout item.
func (co *Coordinator) slotted() []Slotted {
	items := make([]Slotted, len(co.cells))
	for i, c := range co.cells {
		items[i] = c
	}
	return items
}

// hitTest returns the topmost cell under p, checking the pannable layer
// before the static layer and later children before earlier ones.
func (co *Coordinator) hitTest(p Vec2) *Cell {
	for _, layer := range [...]*Node{co.pannable, co.static} {
		kids := layer.Children()
		for i := len(kids) - 1; i >= 0; i-- {
			c, ok := kids[i].UserData.(*Cell)
			if ok && c.Bounds().Contains(p) {
				return c
			}
		}
	}
	return nil
}
