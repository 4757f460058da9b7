package ecs

import (
	"io"
	"testing"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/infigrid"
)

func newGrid(t *testing.T, world donburi.World) *infigrid.Grid {
	t.Helper()
	cfg := infigrid.DefaultConfig()
	cfg.Content = infigrid.NewImagePool()
	cfg.LogOutput = io.Discard
	cfg.Events = NewDonburiSink(world)
	g, err := infigrid.NewGrid(cfg)
	if err != nil {
		t.Fatal(err)
	}
	g.SetPointerReader(nil)
	return g
}

func TestDonburiSinkPublishes(t *testing.T) {
	world := donburi.NewWorld()
	g := newGrid(t, world)

	var got []infigrid.GridEvent
	GridEventType.Subscribe(world, func(_ donburi.World, e infigrid.GridEvent) {
		got = append(got, e)
	})

	g.Coordinator().DetachLine(infigrid.Coord{X: 0, Y: 1}, infigrid.AxisX)
	if len(got) != 0 {
		t.Fatal("events delivered before ProcessEvents")
	}
	events.ProcessAllEvents(world)
	if len(got) != 1 || got[0].Type != infigrid.EventLineDetached || got[0].Axis != infigrid.AxisX {
		t.Errorf("got %+v", got)
	}
}

func TestCellMirrorTracksSwaps(t *testing.T) {
	world := donburi.NewWorld()
	g := newGrid(t, world)
	mirror := NewCellMirror(world, g.Cells())

	a, _ := g.CellAt(infigrid.Coord{X: 1, Y: 1})
	data, ok := mirror.Lookup(a.ID())
	if !ok || data.Coord != (infigrid.Coord{X: 1, Y: 1}) || data.Detached {
		t.Fatalf("initial mirror = %+v ok=%v", data, ok)
	}

	g.InjectPress(300, 300)
	for i := 0; i < 4; i++ {
		g.Step(0.25)
	}
	g.InjectMove(460, 300)
	g.InjectRelease(460, 300)
	for i := 0; i < 30; i++ {
		g.Step(0.05)
		events.ProcessAllEvents(world)
	}

	data, _ = mirror.Lookup(a.ID())
	if data.Coord != (infigrid.Coord{X: 2, Y: 1}) {
		t.Errorf("mirrored coord = %v, want (2,1)", data.Coord)
	}
	if data.Detached {
		t.Error("mirror still reports the cell detached")
	}
}

func TestCellMirrorTracksExpansion(t *testing.T) {
	world := donburi.NewWorld()
	g := newGrid(t, world)
	mirror := NewCellMirror(world, g.Cells())

	c, _ := g.CellAt(infigrid.Coord{X: 0, Y: 0})
	g.InjectClick(c.Center().X, c.Center().Y)
	for i := 0; i < 6; i++ {
		g.Step(0.05)
	}
	events.ProcessAllEvents(world)

	data, _ := mirror.Lookup(c.ID())
	if !data.Expanded {
		t.Error("mirror missed the expansion")
	}
	if _, ok := mirror.Lookup(0); ok {
		t.Error("lookup of an unknown id succeeded")
	}
}
