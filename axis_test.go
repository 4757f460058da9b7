package infigrid

import "testing"

func TestAxisTrackerLocksOnce(t *testing.T) {
	tr := NewAxisTracker(10)
	var decided []Axis
	tr.OnAxisDecided.Connect(func(a Axis) { decided = append(decided, a) })

	tr.Press(Vec2{0, 0})
	tr.Track(Vec2{15, 3})
	if tr.Axis() != AxisX {
		t.Fatalf("axis = %v, want x", tr.Axis())
	}
	tr.Track(Vec2{2, 20})
	if tr.Axis() != AxisX {
		t.Errorf("axis changed to %v after locking", tr.Axis())
	}
	if len(decided) != 1 || decided[0] != AxisX {
		t.Errorf("decided = %v, want [x]", decided)
	}
}

func TestAxisTrackerUndecided(t *testing.T) {
	tests := []struct {
		name string
		p    Vec2
	}{
		{"inside dead zone", Vec2{8, 2}},
		{"exactly dead zone", Vec2{10, 0}},
		{"diagonal", Vec2{30, 30}},
		{"diagonal negative", Vec2{-25, 25}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewAxisTracker(10)
			tr.Press(Vec2{100, 100})
			tr.Track(Vec2{100 + tt.p.X, 100 + tt.p.Y})
			if tr.Axis() != AxisNone {
				t.Errorf("axis = %v, want none", tr.Axis())
			}
		})
	}
}

func TestAxisTrackerVertical(t *testing.T) {
	tr := NewAxisTracker(10)
	tr.Press(Vec2{50, 50})
	tr.Track(Vec2{53, 30})
	if tr.Axis() != AxisY {
		t.Errorf("axis = %v, want y", tr.Axis())
	}
}

func TestAxisTrackerReleaseResets(t *testing.T) {
	tr := NewAxisTracker(10)
	var started []Vec2
	var ended []Axis
	tr.OnGestureStarted.Connect(func(p Vec2) { started = append(started, p) })
	tr.OnGestureEnded.Connect(func(a Axis) { ended = append(ended, a) })

	tr.Release()
	if len(ended) != 0 {
		t.Fatal("Release without a gesture emitted")
	}

	tr.Press(Vec2{5, 5})
	if !tr.Tracking() || tr.Anchor() != (Vec2{5, 5}) {
		t.Fatalf("tracking = %v anchor = %v", tr.Tracking(), tr.Anchor())
	}
	tr.Track(Vec2{5, 40})
	tr.Release()

	if len(started) != 1 || started[0] != (Vec2{5, 5}) {
		t.Errorf("started = %v", started)
	}
	if len(ended) != 1 || ended[0] != AxisY {
		t.Errorf("ended = %v, want [y]", ended)
	}
	if tr.Tracking() || tr.Axis() != AxisNone {
		t.Error("tracker not reset after release")
	}

	// Tracking after release does nothing.
	tr.Track(Vec2{100, 5})
	if tr.Axis() != AxisNone {
		t.Error("axis decided without a press")
	}
}
