package infigrid

import "testing"

func TestWorldPositionAccumulates(t *testing.T) {
	root := NewContainer("root")
	root.SetPosition(10, 10)
	mid := NewContainer("mid")
	mid.SetPosition(20, -5)
	mid.SetScale(3, 3) // scale does not propagate
	leaf := NewContainer("leaf")
	leaf.SetPosition(1, 2)
	root.AddChild(mid)
	mid.AddChild(leaf)

	if got := leaf.WorldPosition(); got != (Vec2{31, 7}) {
		t.Errorf("WorldPosition = %v, want (31,7)", got)
	}
	if got := mid.LocalToWorld(Vec2{1, 1}); got != (Vec2{31, 6}) {
		t.Errorf("LocalToWorld = %v", got)
	}
	if got := mid.WorldToLocal(Vec2{31, 6}); got != (Vec2{1, 1}) {
		t.Errorf("WorldToLocal = %v", got)
	}
}

func TestSetWorldPosition(t *testing.T) {
	parent := NewContainer("p")
	parent.SetPosition(-200, 0)
	n := NewContainer("n")
	parent.AddChild(n)
	n.SetWorldPosition(Vec2{50, 60})
	if n.X != 250 || n.Y != 60 {
		t.Errorf("local = (%v,%v), want (250,60)", n.X, n.Y)
	}

	orphan := NewContainer("o")
	orphan.SetWorldPosition(Vec2{3, 4})
	if orphan.X != 3 || orphan.Y != 4 {
		t.Error("orphan position not set directly")
	}
}

func TestWorldRect(t *testing.T) {
	p := NewContainer("p")
	p.SetPosition(100, 100)
	n := NewContainer("n")
	n.SetPosition(10, 20)
	n.SetSize(50, 40)
	p.AddChild(n)

	r := n.WorldRect()
	if r != (Rect{X: 110, Y: 120, Width: 50, Height: 40}) {
		t.Errorf("WorldRect = %+v", r)
	}
	if !r.Contains(Vec2{110, 160}) || r.Contains(Vec2{161, 130}) {
		t.Error("Contains edge handling wrong")
	}
	if r.Center() != (Vec2{135, 140}) {
		t.Errorf("Center = %v", r.Center())
	}
}
