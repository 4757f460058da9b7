package infigrid

// syntheticPointerEvent represents a single injected pointer event in
// render-space coordinates.
type syntheticPointerEvent struct {
	pos     Vec2
	pressed bool
}

// InjectPress queues a pointer press at (x, y). The event is consumed on the
// next frame's processInput call.
func (g *Grid) InjectPress(x, y float64) {
	g.injectQueue = append(g.injectQueue, syntheticPointerEvent{pos: Vec2{x, y}, pressed: true})
}

// InjectMove queues a held-pointer move to (x, y). Use this between
// InjectPress and InjectRelease to simulate a drag.
func (g *Grid) InjectMove(x, y float64) {
	g.injectQueue = append(g.injectQueue, syntheticPointerEvent{pos: Vec2{x, y}, pressed: true})
}

// InjectRelease queues a pointer release at (x, y).
func (g *Grid) InjectRelease(x, y float64) {
	g.injectQueue = append(g.injectQueue, syntheticPointerEvent{pos: Vec2{x, y}})
}

// InjectClick queues a press followed by a release at the same position.
// Consumes two frames.
func (g *Grid) InjectClick(x, y float64) {
	g.InjectPress(x, y)
	g.InjectRelease(x, y)
}

// InjectHold queues a press at (x, y) kept still for frames frames. The
// pointer stays down afterwards; follow with InjectMove or InjectRelease.
func (g *Grid) InjectHold(x, y float64, frames int) {
	g.InjectPress(x, y)
	for i := 1; i < frames; i++ {
		g.InjectMove(x, y)
	}
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). The total sequence consumes `frames` frames.
// Minimum frames is 2 (press + release).
func (g *Grid) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	g.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		g.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	g.InjectRelease(toX, toY)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through processPointer. Returns true if an event was consumed, in which
// case the real pointer is not read this frame.
func (g *Grid) processInjectedInput() bool {
	if len(g.injectQueue) == 0 {
		return false
	}
	evt := g.injectQueue[0]
	copy(g.injectQueue, g.injectQueue[1:])
	g.injectQueue = g.injectQueue[:len(g.injectQueue)-1]

	g.processPointer(evt.pos, evt.pressed)
	g.ptr.injected = g.ptr.down
	return true
}
