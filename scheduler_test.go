package infigrid

import "testing"

func TestSchedulerGoRunsUntilDone(t *testing.T) {
	var s Scheduler
	calls := 0
	task := s.Go(func(float64) bool {
		calls++
		return calls == 3
	})
	for i := 0; i < 5; i++ {
		s.Tick(0.1)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	if task.Active() {
		t.Error("finished task still active")
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
	if s.Frame() != 5 {
		t.Errorf("Frame = %d, want 5", s.Frame())
	}
}

func TestSchedulerAfter(t *testing.T) {
	var s Scheduler
	fired := 0
	s.After(0.3, func() { fired++ })
	s.Tick(0.1)
	s.Tick(0.1)
	if fired != 0 {
		t.Fatal("fired early")
	}
	s.Tick(0.1)
	s.Tick(0.1)
	if fired != 1 {
		t.Errorf("fired = %d, want 1", fired)
	}
}

func TestSchedulerCancel(t *testing.T) {
	var s Scheduler
	ran := false
	task := s.NextFrame(func() { ran = true })
	task.Cancel()
	s.Tick(0.1)
	if ran {
		t.Error("cancelled task ran")
	}

	var nilTask *Task
	nilTask.Cancel()
	if nilTask.Active() {
		t.Error("nil task reported active")
	}
}

func TestSchedulerTaskStartedDuringTickWaits(t *testing.T) {
	var s Scheduler
	inner := false
	s.NextFrame(func() {
		s.NextFrame(func() { inner = true })
	})
	s.Tick(0.1)
	if inner {
		t.Fatal("task started inside Tick ran in the same Tick")
	}
	s.Tick(0.1)
	if !inner {
		t.Error("task started inside Tick never ran")
	}
}
