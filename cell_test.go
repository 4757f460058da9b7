package infigrid

import (
	"testing"
)

func TestCellStateString(t *testing.T) {
	if StateDragEnabled.String() != "drag-enabled" || CellState(99).String() != "unknown" {
		t.Error("CellState names wrong")
	}
}

func TestHoldAbortedByScroll(t *testing.T) {
	g := newTestGrid(t)
	c := mustCell(t, g, Coord{1, 1})
	var aborted, enabled int
	lockedOnAbort := false
	g.OnEvent(func(e GridEvent) {
		switch e.Type {
		case EventHoldAborted:
			aborted++
			lockedOnAbort = c.Locked()
		case EventDragEnabled:
			enabled++
		}
	})

	g.InjectPress(300, 300)
	stepN(g, 4, 0.1)
	if c.State() != StatePressed {
		t.Fatalf("state = %v, want pressed", c.State())
	}

	g.Surface().SetAxes(true, false)
	g.Surface().SetVelocity(Vec2{5, 0})
	g.Step(0.1)

	if aborted != 1 {
		t.Fatalf("aborted = %d, want 1", aborted)
	}
	if !lockedOnAbort {
		t.Error("aborted cell was not marked moved")
	}
	if c.State() != StateIdle {
		t.Errorf("state = %v, want idle", c.State())
	}
	stepN(g, 15, 0.1)
	if enabled != 0 {
		t.Error("drag enabled after an aborted hold")
	}
	if c.Drag(Vec2{350, 300}) {
		t.Error("Drag accepted without a completed hold")
	}
}

func TestHoldEnablesDrag(t *testing.T) {
	g := newTestGrid(t)
	c := mustCell(t, g, Coord{1, 1})

	g.InjectPress(300, 300)
	stepN(g, 3, 0.25)
	if c.State() != StatePressed {
		t.Fatalf("state after 0.75s = %v", c.State())
	}
	g.Step(0.25)
	if c.State() != StateDragEnabled {
		t.Fatalf("state after 1s = %v, want drag-enabled", c.State())
	}
	if g.Surface().Enabled() {
		t.Error("surface still enabled while a cell is held")
	}
	if c.Anchor() != (Vec2{200, 200}) {
		t.Errorf("anchor = %v", c.Anchor())
	}
}

func TestReleaseBeforeHoldReturnsToIdle(t *testing.T) {
	g := newTestGrid(t)
	c := mustCell(t, g, Coord{1, 1})
	g.InjectPress(300, 300)
	stepN(g, 2, 0.25)
	g.InjectRelease(300, 300)
	stepN(g, 10, 0.25)
	if c.State() != StateIdle {
		t.Errorf("state = %v", c.State())
	}
	if !g.Surface().Enabled() {
		t.Error("surface disabled")
	}
}

func TestHoldDragSwap(t *testing.T) {
	g := newTestGrid(t)
	a := mustCell(t, g, Coord{1, 1})
	b := mustCell(t, g, Coord{2, 1})
	var committed int
	g.OnEvent(func(e GridEvent) {
		if e.Type == EventSwapCommitted {
			committed++
		}
	})

	g.InjectPress(300, 300)
	stepN(g, 4, 0.25)
	g.InjectMove(460, 300)
	g.Step(0.05)

	if a.State() != StateDragging {
		t.Fatalf("state = %v, want dragging", a.State())
	}
	if a.Position() != (Vec2{360, 200}) {
		t.Errorf("dragged cell at %v, want (360,200)", a.Position())
	}
	if g.LayoutEngine().Active() {
		t.Error("layout active during a drag")
	}

	stepN(g, 6, 0.05)
	if committed != 1 {
		t.Fatalf("committed = %d, want 1", committed)
	}
	if b.Position() != (Vec2{200, 200}) {
		t.Errorf("partner at %v, want (200,200)", b.Position())
	}

	g.InjectRelease(460, 300)
	stepN(g, 20, 0.05)

	if a.Coord() != (Coord{2, 1}) || b.Coord() != (Coord{1, 1}) {
		t.Fatalf("a=%v b=%v", a.Coord(), b.Coord())
	}
	if a.Position() != (Vec2{400, 200}) {
		t.Errorf("a at %v, want (400,200)", a.Position())
	}
	if a.Node().ScaleX != 1 {
		t.Errorf("a scale = %v", a.Node().ScaleX)
	}
	if a.State() != StateIdle || !g.Surface().Enabled() || !g.LayoutEngine().Active() {
		t.Errorf("state=%v surface=%v layout=%v", a.State(), g.Surface().Enabled(), g.LayoutEngine().Active())
	}
	assertSettled(t, g)
}

func TestReleaseDuringSwapWaitsForCommit(t *testing.T) {
	g := newTestGrid(t)
	a := mustCell(t, g, Coord{1, 1})

	g.InjectPress(300, 300)
	stepN(g, 4, 0.25)
	g.InjectMove(460, 300)
	g.InjectRelease(460, 300)
	g.Step(0.05)
	g.Step(0.05)

	if a.State() != StateSnappingBack || !a.snapBackPending {
		t.Fatalf("state=%v pending=%v", a.State(), a.snapBackPending)
	}
	stepN(g, 20, 0.05)
	if a.Coord() != (Coord{2, 1}) || a.Position() != (Vec2{400, 200}) {
		t.Errorf("a=%v at %v", a.Coord(), a.Position())
	}
	assertSettled(t, g)
}

func TestClickExpands(t *testing.T) {
	g := newTestGrid(t)
	c := mustCell(t, g, Coord{1, 1})
	var expanded []Coord
	g.OnEvent(func(e GridEvent) {
		if e.Type == EventCellExpanded {
			expanded = append(expanded, e.Coord)
		}
	})

	g.InjectClick(300, 300)
	stepN(g, 5, 0.05)

	if !c.Expanded() || c.Collapsed() {
		t.Fatal("cell not expanded after click")
	}
	if len(expanded) != 1 || expanded[0] != (Coord{1, 1}) {
		t.Errorf("events = %v", expanded)
	}
}

func TestClickAfterDragDoesNotToggle(t *testing.T) {
	g := newTestGrid(t)
	c := mustCell(t, g, Coord{1, 1})
	g.InjectDrag(300, 300, 300, 340, 4)
	stepN(g, 60, frameDT)
	if c.Expanded() {
		t.Error("drag toggled collapse")
	}
}

func TestScrollRowWrapsAndSettles(t *testing.T) {
	g := newTestGrid(t)
	var wraps, settled int
	g.OnEvent(func(e GridEvent) {
		switch e.Type {
		case EventCellWrapped:
			wraps++
		case EventSettled:
			settled++
		}
	})
	row := make(map[uint32]bool)
	for _, c := range g.Cells() {
		if c.Coord().Y == 2 {
			row[c.ID()] = true
		}
	}

	g.InjectDrag(300, 100, 60, 100, 10)
	stepN(g, 240, frameDT)

	if wraps == 0 {
		t.Error("no cell wrapped")
	}
	if settled != 1 {
		t.Errorf("settled = %d, want 1", settled)
	}
	assertSettled(t, g)
	for _, c := range g.Cells() {
		if row[c.ID()] != (c.Coord().Y == 2) {
			t.Errorf("cell %d left its row: now %v", c.ID(), c.Coord())
		}
		if c.Locked() {
			t.Errorf("cell %v still locked", c.Coord())
		}
	}
}

func TestScrollColumnWrapsAndSettles(t *testing.T) {
	g := newTestGrid(t)
	g.InjectDrag(500, 300, 500, 560, 12)
	stepN(g, 240, frameDT)
	assertSettled(t, g)
	for _, c := range g.Cells() {
		if c.Expanded() {
			t.Errorf("cell %v expanded by a drag", c.Coord())
		}
	}
}
