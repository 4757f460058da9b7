package infigrid

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields simultaneously. Create one via
// the convenience constructors (TweenPosition, TweenScale, TweenWorldPosition,
// TweenCollapse) and either call Update(dt) each frame or hand it to an
// Animator. When the last tween finishes the exact target values are written
// and OnComplete fires once.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	to     [4]float64
	target *Node

	// apply runs after field values are written; world-space tweens use it
	// to push a proxy value through the node's current parent.
	apply func()
	proxy [2]float64

	Done     bool
	canceled bool

	// OnComplete is called once, after the final values have been written.
	// It is not called for cancelled groups.
	OnComplete func()
}

// Update advances all tweens by dt seconds and writes values to the target
// fields.
func (g *TweenGroup) Update(dt float32) {
	if g.Done || g.canceled {
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		if finished {
			*g.fields[i] = g.to[i]
		} else {
			*g.fields[i] = float64(val)
			allDone = false
		}
	}
	if g.apply != nil {
		g.apply()
	}
	if !allDone {
		return
	}
	g.Done = true
	if g.OnComplete != nil {
		fn := g.OnComplete
		g.OnComplete = nil
		fn()
	}
}

// Cancel stops the group where it is. OnComplete will not fire.
func (g *TweenGroup) Cancel() {
	if g == nil {
		return
	}
	g.canceled = true
}

// Canceled reports whether Cancel was called.
func (g *TweenGroup) Canceled() bool {
	return g.canceled
}

// Target returns the node the group animates.
func (g *TweenGroup) Target() *Node {
	return g.target
}

func (g *TweenGroup) add(field *float64, to float64, duration float32, fn ease.TweenFunc) {
	i := g.count
	g.tweens[i] = gween.New(float32(*field), float32(to), duration, fn)
	g.fields[i] = field
	g.to[i] = to
	g.count++
}

// TweenPosition creates a TweenGroup that animates node.X and node.Y to the
// given local coordinates over the specified duration using the easing function.
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.add(&node.X, toX, duration, fn)
	g.add(&node.Y, toY, duration, fn)
	return g
}

// TweenScale creates a TweenGroup that animates node.ScaleX and node.ScaleY to
// the given target values over the specified duration using the easing function.
func TweenScale(node *Node, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.add(&node.ScaleX, toSX, duration, fn)
	g.add(&node.ScaleY, toSY, duration, fn)
	return g
}

// TweenWorldPosition animates node towards the render-space point to. The
// interpolated value is kept in world space and applied through whatever
// parent the node has on each frame, so the node may be reparented while
// the tween runs.
func TweenWorldPosition(node *Node, to Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	start := node.WorldPosition()
	g.proxy = [2]float64{start.X, start.Y}
	g.add(&g.proxy[0], to.X, duration, fn)
	g.add(&g.proxy[1], to.Y, duration, fn)
	g.apply = func() {
		node.SetWorldPosition(Vec2{g.proxy[0], g.proxy[1]})
	}
	return g
}

// TweenCollapse animates the horizontal scale and local X offset of node
// together, as used by the expand/collapse toggle.
func TweenCollapse(node *Node, toSX, toX float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.add(&node.ScaleX, toSX, duration, fn)
	g.add(&node.X, toX, duration, fn)
	return g
}

// Animator plays tween groups. Animate starts g and returns it so callers can
// keep a handle for cancellation.
type Animator interface {
	Animate(g *TweenGroup) *TweenGroup
}

// Tweens is the default Animator: a list of running groups advanced by the
// grid once per frame.
type Tweens struct {
	groups []*TweenGroup
}

// Animate adds g to the running set.
func (t *Tweens) Animate(g *TweenGroup) *TweenGroup {
	t.groups = append(t.groups, g)
	return g
}

// Update advances every running group. Groups started from a completion
// callback take their first step on the next Update.
func (t *Tweens) Update(dt float32) {
	n := len(t.groups)
	for i := 0; i < n; i++ {
		t.groups[i].Update(dt)
	}
	live := t.groups[:0]
	for _, g := range t.groups {
		if !g.Done && !g.canceled {
			live = append(live, g)
		}
	}
	for i := len(live); i < len(t.groups); i++ {
		t.groups[i] = nil
	}
	t.groups = live
}

// Len returns the number of groups still running.
func (t *Tweens) Len() int {
	n := 0
	for _, g := range t.groups {
		if !g.Done && !g.canceled {
			n++
		}
	}
	return n
}
