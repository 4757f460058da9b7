// Package ecs provides ECS adapters for infigrid.
package ecs

import (
	"github.com/phanxgames/infigrid"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GridEventType is the Donburi event type for grid events.
// Subscribe to this in your ECS systems to receive swaps, snaps and settles.
var GridEventType = events.NewEventType[infigrid.GridEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Grid events are published to GridEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) infigrid.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event infigrid.GridEvent) {
	GridEventType.Publish(s.world, event)
}

// CellData mirrors the observable state of one grid cell.
type CellData struct {
	ID       uint32
	Coord    infigrid.Coord
	Expanded bool
	Detached bool
}

// CellComponent holds CellData on mirrored entities.
var CellComponent = donburi.NewComponentType[CellData]()

// CellMirror keeps one Donburi entity per grid cell in step with the grid.
// Entities are refreshed whenever a grid event that can change coordinates
// or collapse state is processed.
type CellMirror struct {
	world    donburi.World
	cells    []*infigrid.Cell
	entities map[uint32]donburi.Entity
}

// NewCellMirror creates an entity for every cell and subscribes to
// GridEventType on world.
func NewCellMirror(world donburi.World, cells []*infigrid.Cell) *CellMirror {
	m := &CellMirror{
		world:    world,
		cells:    cells,
		entities: make(map[uint32]donburi.Entity, len(cells)),
	}
	for _, c := range cells {
		m.entities[c.ID()] = world.Create(CellComponent)
	}
	m.Sync()
	GridEventType.Subscribe(world, m.onEvent)
	return m
}

func (m *CellMirror) onEvent(_ donburi.World, e infigrid.GridEvent) {
	switch e.Type {
	case infigrid.EventCellWrapped, infigrid.EventSwapCommitted, infigrid.EventSettled,
		infigrid.EventLineDetached, infigrid.EventCellExpanded, infigrid.EventCellCollapsed:
		m.Sync()
	}
}

// Sync copies the current state of every cell into its entity.
func (m *CellMirror) Sync() {
	for _, c := range m.cells {
		ent, ok := m.entities[c.ID()]
		if !ok || !m.world.Valid(ent) {
			continue
		}
		CellComponent.SetValue(m.world.Entry(ent), CellData{
			ID:       c.ID(),
			Coord:    c.Coord(),
			Expanded: c.Expanded(),
			Detached: c.Detached(),
		})
	}
}

// Lookup returns the mirrored data for the cell with the given ID.
func (m *CellMirror) Lookup(id uint32) (CellData, bool) {
	ent, ok := m.entities[id]
	if !ok || !m.world.Valid(ent) {
		return CellData{}, false
	}
	return *CellComponent.Get(m.world.Entry(ent)), true
}
