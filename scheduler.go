package infigrid

// Task is a resumable per-frame wait registered with a Scheduler.
// The step function receives the frame delta in seconds and returns true
// once the task has finished.
type Task struct {
	step     func(dt float64) bool
	canceled bool
	done     bool
}

// Cancel stops the task before its next step. Safe to call on a nil or
// finished task.
func (t *Task) Cancel() {
	if t == nil {
		return
	}
	t.canceled = true
}

// Active reports whether the task is still waiting to finish.
func (t *Task) Active() bool {
	return t != nil && !t.canceled && !t.done
}

// Scheduler advances outstanding tasks once per frame. Tasks started during
// a frame, before Tick runs, take their first step in that same Tick; tasks
// started from inside Tick wait for the next one.
type Scheduler struct {
	tasks   []*Task
	pending []*Task
	frame   uint64
}

// Go registers a task whose step runs every frame until it returns true.
func (s *Scheduler) Go(step func(dt float64) bool) *Task {
	t := &Task{step: step}
	s.pending = append(s.pending, t)
	return t
}

// After runs fn once at least d seconds of frame time have accumulated.
func (s *Scheduler) After(d float64, fn func()) *Task {
	var elapsed float64
	return s.Go(func(dt float64) bool {
		elapsed += dt
		if elapsed < d {
			return false
		}
		fn()
		return true
	})
}

// NextFrame runs fn on the next Tick.
func (s *Scheduler) NextFrame(fn func()) *Task {
	return s.Go(func(float64) bool {
		fn()
		return true
	})
}

// Tick advances every active task by dt seconds.
func (s *Scheduler) Tick(dt float64) {
	s.frame++
	if len(s.pending) > 0 {
		s.tasks = append(s.tasks, s.pending...)
		s.pending = s.pending[:0]
	}
	live := s.tasks[:0]
	for _, t := range s.tasks {
		if t.canceled {
			continue
		}
		if t.step(dt) {
			t.done = true
			continue
		}
		if !t.canceled {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = live
}

// Len returns the number of tasks that have not finished or been cancelled.
func (s *Scheduler) Len() int {
	n := 0
	for _, t := range s.tasks {
		if t.Active() {
			n++
		}
	}
	for _, t := range s.pending {
		if t.Active() {
			n++
		}
	}
	return n
}

// Frame returns the number of ticks processed so far.
func (s *Scheduler) Frame() uint64 {
	return s.frame
}
