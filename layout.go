package infigrid

// Slotted is anything the layout can place. GridCoord returns ok=false for
// items without a logical coordinate; those are skipped.
type Slotted interface {
	GridCoord() (Coord, bool)
	SetSlot(pos, size Vec2)
}

// Layout maps logical grid coordinates to render-space slot positions.
// Arrangement is on demand: MarkDirty requests it and Arrange only does work
// when dirty and active.
type Layout struct {
	visibleRows, visibleCols int
	bufferRows, bufferCols   int
	spacing                  Vec2
	padding                  Padding

	viewport  Vec2
	container Vec2 // zero means "same as viewport"

	dirty  bool
	active bool
}

// NewLayout creates a layout from the grid configuration.
func NewLayout(cfg Config) *Layout {
	return &Layout{
		visibleRows: cfg.VisibleRows,
		visibleCols: cfg.VisibleColumns,
		bufferRows:  cfg.BufferRows,
		bufferCols:  cfg.BufferColumns,
		spacing:     cfg.Spacing,
		padding:     cfg.Padding,
		viewport:    Vec2{cfg.ViewportWidth, cfg.ViewportHeight},
		dirty:       true,
		active:      true,
	}
}

// SetViewport changes the viewport size and marks the layout dirty.
func (l *Layout) SetViewport(w, h float64) {
	l.viewport = Vec2{w, h}
	l.dirty = true
}

// SetContainer sets the size of the rectangle the buffered grid is centred
// in. A zero size centres it in the viewport.
func (l *Layout) SetContainer(w, h float64) {
	l.container = Vec2{w, h}
	l.dirty = true
}

// Viewport returns the current viewport size.
func (l *Layout) Viewport() Vec2 { return l.viewport }

// TotalRows returns visible rows plus the buffer on both sides.
func (l *Layout) TotalRows() int { return l.visibleRows + 2*l.bufferRows }

// TotalColumns returns visible columns plus the buffer on both sides.
func (l *Layout) TotalColumns() int { return l.visibleCols + 2*l.bufferCols }

// CellWidth returns the width of one cell.
func (l *Layout) CellWidth() float64 {
	if l.visibleCols <= 0 {
		return 0
	}
	avail := l.viewport.X - l.padding.Left - l.padding.Right - l.spacing.X*float64(l.visibleCols-1)
	return avail / float64(l.visibleCols)
}

// CellHeight returns the height of one cell.
func (l *Layout) CellHeight() float64 {
	if l.visibleRows <= 0 {
		return 0
	}
	avail := l.viewport.Y - l.padding.Top - l.padding.Bottom - l.spacing.Y*float64(l.visibleRows-1)
	return avail / float64(l.visibleRows)
}

// CellSize returns CellWidth and CellHeight as a vector.
func (l *Layout) CellSize() Vec2 {
	return Vec2{l.CellWidth(), l.CellHeight()}
}

// GridSize returns the extent of the whole buffered grid.
func (l *Layout) GridSize() Vec2 {
	cols, rows := l.TotalColumns(), l.TotalRows()
	return Vec2{
		X: float64(cols)*l.CellWidth() + float64(cols-1)*l.spacing.X,
		Y: float64(rows)*l.CellHeight() + float64(rows-1)*l.spacing.Y,
	}
}

// Offset returns the centring offset of the buffered grid in its container.
func (l *Layout) Offset() Vec2 {
	c := l.container
	if c.X == 0 && c.Y == 0 {
		c = l.viewport
	}
	g := l.GridSize()
	return Vec2{(c.X - g.X) / 2, (c.Y - g.Y) / 2}
}

// Slot returns the top-left corner of the slot for logical coordinate c.
// Row 0 sits near the bottom of the buffered window.
func (l *Layout) Slot(c Coord) Vec2 {
	off := l.Offset()
	w, h := l.CellWidth(), l.CellHeight()
	return Vec2{
		X: off.X + float64(c.X+l.bufferCols)*(w+l.spacing.X),
		Y: off.Y + float64(l.TotalRows()-1-(c.Y+l.bufferRows))*(h+l.spacing.Y),
	}
}

// SlotCenter returns the centre of the slot for c.
func (l *Layout) SlotCenter(c Coord) Vec2 {
	return l.Slot(c).Add(l.CellSize().Scale(0.5))
}

// MarkDirty requests a re-layout on the next Arrange.
func (l *Layout) MarkDirty() { l.dirty = true }

// Dirty reports whether a re-layout is pending.
func (l *Layout) Dirty() bool { return l.dirty }

// SetActive suspends or resumes arrangement. Dragging a cell suspends it so
// the layout does not fight the pointer.
func (l *Layout) SetActive(active bool) { l.active = active }

// Active reports whether arrangement is enabled.
func (l *Layout) Active() bool { return l.active }

// valid reports whether the inputs describe a non-degenerate window.
func (l *Layout) valid() bool {
	return l.TotalRows() > 0 && l.TotalColumns() > 0 &&
		l.viewport.X > 0 && l.viewport.Y > 0
}

// Arrange positions every item at its slot when dirty and active and reports
// whether it did any work.
func (l *Layout) Arrange(items []Slotted) bool {
	if !l.dirty || !l.active {
		return false
	}
	l.dirty = false
	if !l.valid() {
		return false
	}
	size := l.CellSize()
	for _, it := range items {
		c, ok := it.GridCoord()
		if !ok {
			continue
		}
		it.SetSlot(l.Slot(c), size)
	}
	return true
}
