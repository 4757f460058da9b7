package infigrid

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenPositionReachesTarget(t *testing.T) {
	node := NewContainer("n")
	g := TweenPosition(node, 100, 200, 1.0, ease.Linear)

	g.Update(0.5)
	if g.Done {
		t.Fatal("should not be done at half time")
	}
	if math.Abs(node.X-50) > 0.5 {
		t.Errorf("X at half time = %v, want ~50", node.X)
	}

	g.Update(0.5)
	if !g.Done {
		t.Fatal("should be done after full duration")
	}
	if node.X != 100 || node.Y != 200 {
		t.Errorf("final = (%v,%v), want exactly (100,200)", node.X, node.Y)
	}
}

func TestTweenOnCompleteFiresOnce(t *testing.T) {
	node := NewContainer("n")
	g := TweenScale(node, 2, 3, 0.2, ease.OutQuad)
	fired := 0
	g.OnComplete = func() { fired++ }

	for i := 0; i < 10; i++ {
		g.Update(0.1)
	}
	if fired != 1 {
		t.Errorf("OnComplete fired %d times, want 1", fired)
	}
	if node.ScaleX != 2 || node.ScaleY != 3 {
		t.Errorf("scale = (%v,%v)", node.ScaleX, node.ScaleY)
	}
}

func TestTweenCancelSkipsCompletion(t *testing.T) {
	node := NewContainer("n")
	g := TweenPosition(node, 100, 0, 1.0, ease.Linear)
	fired := false
	g.OnComplete = func() { fired = true }

	g.Update(0.25)
	g.Cancel()
	x := node.X
	g.Update(1)
	if fired {
		t.Error("cancelled group completed")
	}
	if node.X != x {
		t.Errorf("cancelled group kept moving: %v -> %v", x, node.X)
	}
	if !g.Canceled() {
		t.Error("Canceled() = false")
	}

	var nilGroup *TweenGroup
	nilGroup.Cancel()
}

func TestTweenWorldPositionSurvivesReparent(t *testing.T) {
	a := NewContainer("a")
	a.SetPosition(100, 0)
	b := NewContainer("b")
	b.SetPosition(-50, 30)
	node := NewContainer("n")
	a.AddChild(node)

	g := TweenWorldPosition(node, Vec2{300, 300}, 1.0, ease.Linear)
	if g.Target() != node {
		t.Error("Target mismatch")
	}
	g.Update(0.5)
	node.Reparent(b)
	g.Update(0.5)

	if got := node.WorldPosition(); got != (Vec2{300, 300}) {
		t.Errorf("world position = %v, want (300,300)", got)
	}
	if node.X != 350 || node.Y != 270 {
		t.Errorf("local = (%v,%v), want (350,270)", node.X, node.Y)
	}
}

func TestTweenCollapseTargets(t *testing.T) {
	node := NewContainer("n")
	g := TweenCollapse(node, 2.1, -110, 0.1, ease.OutQuad)
	g.Update(0.1)
	if !g.Done || node.ScaleX != 2.1 || node.X != -110 {
		t.Errorf("done=%v scaleX=%v x=%v", g.Done, node.ScaleX, node.X)
	}
	if node.ScaleY != 1 {
		t.Errorf("ScaleY touched: %v", node.ScaleY)
	}
}

func TestTweensManager(t *testing.T) {
	var tw Tweens
	a := NewContainer("a")
	b := NewContainer("b")
	tw.Animate(TweenPosition(a, 10, 0, 0.1, ease.Linear))
	cancelled := tw.Animate(TweenPosition(b, 10, 0, 1, ease.Linear))
	if tw.Len() != 2 {
		t.Fatalf("Len = %d, want 2", tw.Len())
	}
	cancelled.Cancel()
	if tw.Len() != 1 {
		t.Errorf("Len after cancel = %d, want 1", tw.Len())
	}

	var chained bool
	first := TweenPosition(a, 20, 0, 0.1, ease.Linear)
	first.OnComplete = func() {
		tw.Animate(TweenPosition(a, 30, 0, 0.1, ease.Linear))
		chained = true
	}
	tw.Animate(first)
	tw.Update(0.1)
	tw.Update(0.1)
	if !chained {
		t.Fatal("completion callback did not run")
	}
	tw.Update(0.1)
	if a.X != 30 {
		t.Errorf("chained tween ended at %v, want 30", a.X)
	}
	if tw.Len() != 0 {
		t.Errorf("Len = %d, want 0", tw.Len())
	}
}
