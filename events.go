package infigrid

// EventType identifies the kind of grid event.
type EventType uint8

const (
	EventAxisDecided   EventType = iota // gesture axis locked
	EventGestureEnded                   // pointer released; Axis holds the final axis
	EventHoldAborted                    // hold cancelled by surface motion
	EventDragEnabled                    // hold completed, cell follows the pointer
	EventLineDetached                   // a row or column moved to the pannable layer
	EventCellWrapped                    // wraparound changed a cell's coordinate
	EventSwapStarted                    // two cells locked for an exchange
	EventSwapCommitted                  // exchange finished, coordinates swapped
	EventSnapStarted                    // snap animation began
	EventSettled                        // reindex finished, surface back at rest
	EventCellExpanded                   // collapse toggle finished in the expanded state
	EventCellCollapsed                  // collapse toggle finished in the collapsed state
)

var eventTypeNames = [...]string{
	EventAxisDecided:   "axis-decided",
	EventGestureEnded:  "gesture-ended",
	EventHoldAborted:   "hold-aborted",
	EventDragEnabled:   "drag-enabled",
	EventLineDetached:  "line-detached",
	EventCellWrapped:   "cell-wrapped",
	EventSwapStarted:   "swap-started",
	EventSwapCommitted: "swap-committed",
	EventSnapStarted:   "snap-started",
	EventSettled:       "settled",
	EventCellExpanded:  "cell-expanded",
	EventCellCollapsed: "cell-collapsed",
}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "unknown"
}

// GridEvent carries a grid notification. Fields not relevant to Type are zero.
type GridEvent struct {
	Type   EventType
	CellID uint32 // node ID of the cell involved, 0 if none
	Coord  Coord  // the cell's coordinate after the event
	Other  Coord  // previous coordinate (wrap) or partner coordinate (swap)
	Axis   Axis
	Offset Vec2 // snap offset for EventSnapStarted
}

// EventSink receives every grid event. Implementations bridge grid events
// into other systems, e.g. an ECS world (see the ecs package).
type EventSink interface {
	EmitEvent(event GridEvent)
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id     uint32
	remove func(id uint32)
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.remove == nil {
		return
	}
	h.remove(h.id)
}

type subscriber[T any] struct {
	id uint32
	fn func(T)
}

// Signal is a synchronous observer list. Emit calls every connected function
// in registration order. Callbacks connected or removed during Emit take
// effect on the next Emit.
type Signal[T any] struct {
	nextID uint32
	subs   []subscriber[T]
}

// Connect registers fn and returns a handle that disconnects it.
func (s *Signal[T]) Connect(fn func(T)) CallbackHandle {
	s.nextID++
	s.subs = append(s.subs, subscriber[T]{id: s.nextID, fn: fn})
	return CallbackHandle{id: s.nextID, remove: s.disconnect}
}

// Emit delivers v to every subscriber.
func (s *Signal[T]) Emit(v T) {
	if len(s.subs) == 0 {
		return
	}
	subs := s.subs
	for _, sub := range subs {
		sub.fn(v)
	}
}

// Len returns the number of connected subscribers.
func (s *Signal[T]) Len() int {
	return len(s.subs)
}

func (s *Signal[T]) disconnect(id uint32) {
	for i, sub := range s.subs {
		if sub.id == id {
			// Copy so an in-progress Emit keeps iterating its own slice.
			next := make([]subscriber[T], 0, len(s.subs)-1)
			next = append(next, s.subs[:i]...)
			s.subs = append(next, s.subs[i+1:]...)
			return
		}
	}
}

// eventBus fans grid events out to scene-level callbacks and the optional sink.
type eventBus struct {
	signal Signal[GridEvent]
	sink   EventSink
}

func (b *eventBus) emit(e GridEvent) {
	b.signal.Emit(e)
	if b.sink != nil {
		b.sink.EmitEvent(e)
	}
}
