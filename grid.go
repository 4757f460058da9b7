package infigrid

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// Grid is the top-level object. It owns the node tree, the cell arena and
// every controller, and runs them in a fixed order each frame. A Grid
// satisfies ebiten.Game.
type Grid struct {
	cfg Config
	log *debugLog

	root     *Node
	static   *Node
	pannable *Node

	layout  *Layout
	tracker *AxisTracker
	sched   *Scheduler
	tweens  *Tweens
	surface *ScrollSurface
	coord   *Coordinator
	scroll  *ScrollController
	bus     *eventBus

	pointer     PointerReader
	ptr         pointerState
	injectQueue []syntheticPointerEvent
	testRunner  *TestRunner

	resizePending bool
	pendingSize   Vec2

	drawBuf []*Cell
	pixel   *ebiten.Image
	overlay fpsOverlay

	// SnapshotDir is where the test runner's snapshot steps write PNG files.
	SnapshotDir string
	snapshotSeq int
}

// NewGrid validates cfg, spawns the cell pool, lays it out and computes the
// wraparound bounds. Zero behavioural fields in cfg take their defaults.
func NewGrid(cfg Config) (*Grid, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("infigrid: invalid config: %w", err)
	}

	g := &Grid{
		cfg:         cfg,
		log:         newDebugLog(cfg.LogOutput, cfg.Debug),
		root:        NewContainer("root"),
		static:      NewContainer("static"),
		pannable:    NewContainer("pannable"),
		sched:       &Scheduler{},
		tweens:      &Tweens{},
		bus:         &eventBus{sink: cfg.Events},
		pointer:     EbitenPointer,
		SnapshotDir: "snapshots",
	}
	g.root.AddChild(g.static)
	g.root.AddChild(g.pannable)

	g.layout = NewLayout(cfg)
	g.tracker = NewAxisTracker(cfg.AxisDeadZone)
	g.surface = NewScrollSurface(g.pannable, cfg.DecelerationRate)
	g.coord = &Coordinator{
		cfg:      cfg,
		layout:   g.layout,
		sched:    g.sched,
		anim:     g.tweens,
		surface:  g.surface,
		tracker:  g.tracker,
		bus:      g.bus,
		log:      g.log,
		root:     g.root,
		static:   g.static,
		pannable: g.pannable,
	}
	g.coord.proximity = cfg.Proximity
	if g.coord.proximity == nil {
		g.coord.proximity = &arenaProximity{co: g.coord}
	}
	g.scroll = NewScrollController(g.coord, g.tracker)
	g.bus.signal.Connect(func(e GridEvent) {
		if e.Type == EventSettled {
			g.debugCheckIndex()
		}
	})

	g.coord.Spawn()
	g.layout.Arrange(g.coord.slotted())
	g.coord.ComputeBounds()
	return g, nil
}

// Config returns the effective configuration.
func (g *Grid) Config() Config { return g.cfg }

// Root returns the root node. Its children are the static layer and the
// pannable layer.
func (g *Grid) Root() *Node { return g.root }

// LayoutEngine returns the layout engine.
func (g *Grid) LayoutEngine() *Layout { return g.layout }

// Coordinator returns the cell coordinator.
func (g *Grid) Coordinator() *Coordinator { return g.coord }

// Surface returns the pannable scroll surface.
func (g *Grid) Surface() *ScrollSurface { return g.surface }

// ScrollController returns the snap and axis-lock controller.
func (g *Grid) ScrollController() *ScrollController { return g.scroll }

// Tracker returns the gesture axis tracker.
func (g *Grid) Tracker() *AxisTracker { return g.tracker }

// Scheduler returns the per-frame task scheduler.
func (g *Grid) Scheduler() *Scheduler { return g.sched }

// Tweens returns the running animations.
func (g *Grid) Tweens() *Tweens { return g.tweens }

// Cells returns the cell arena in spawn order.
func (g *Grid) Cells() []*Cell { return g.coord.Cells() }

// CellAt returns the cell holding coord.
func (g *Grid) CellAt(coord Coord) (*Cell, bool) { return g.coord.CellAt(coord) }

// SetPointerReader replaces the live pointer source. nil disables live input;
// injected events still work.
func (g *Grid) SetPointerReader(r PointerReader) { g.pointer = r }

// OnEvent registers a callback for every grid event.
func (g *Grid) OnEvent(fn func(GridEvent)) CallbackHandle {
	return g.bus.signal.Connect(fn)
}

// Resize changes the viewport. The new geometry is applied once no line is
// detached and no cell is busy.
func (g *Grid) Resize(w, h float64) {
	size := Vec2{w, h}
	if !g.resizePending && g.layout.Viewport() == size {
		return
	}
	g.pendingSize = size
	g.resizePending = true
}

// applyResize re-slots every cell for the new viewport and recomputes the
// bounds.
func (g *Grid) applyResize() {
	if !g.resizePending || g.coord.HasDetachedLine() || g.coord.Busy() || g.scroll.Snapping() {
		return
	}
	g.resizePending = false
	if g.layout.Viewport() == g.pendingSize {
		return
	}
	g.layout.SetViewport(g.pendingSize.X, g.pendingSize.Y)
	for _, c := range g.coord.cells {
		c.node.Reparent(g.pannable)
	}
	g.layout.MarkDirty()
	g.layout.Arrange(g.coord.slotted())
	g.coord.ComputeBounds()
	g.log.logf("resized to %v", g.layout.Viewport())
}

// Update advances one frame at the game's tick rate. Implements ebiten.Game.
func (g *Grid) Update() error {
	g.Step(1.0 / float64(ebiten.TPS()))
	return nil
}

// Step advances the grid by dt seconds: scripted steps, pointer input,
// scheduled tasks, tweens, scroll inertia (wraparound and re-layout on
// change), the layout pass and finally the snap check.
func (g *Grid) Step(dt float64) {
	if g.testRunner != nil {
		g.testRunner.step(g)
	}
	g.processInput()
	g.sched.Tick(dt)
	g.tweens.Update(float32(dt))
	g.surface.Update(dt)
	g.layout.Arrange(g.coord.slotted())
	g.scroll.LateUpdate()
	g.applyResize()
	if g.log.enabled {
		g.overlay.update(dt, g)
	}
}

// Layout implements ebiten.Game. The grid renders at the viewport size and
// follows the outside size when it changes.
func (g *Grid) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.Resize(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}
