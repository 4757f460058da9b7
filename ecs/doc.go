// Package ecs provides ECS adapters for infigrid's event stream.
//
// [NewDonburiSink] bridges grid events (axis decisions, swaps, wraps, snaps,
// settles, collapse toggles) into a [Donburi] world as typed events.
// Subscribe to [GridEventType] in your ECS systems to receive them.
// [NewCellMirror] keeps one entity per cell whose [CellComponent] tracks the
// cell's logical coordinate and collapse state.
//
// Usage:
//
//	world := donburi.NewWorld()
//	cfg.Events = ecs.NewDonburiSink(world)
//	grid, err := infigrid.NewGrid(cfg)
//	mirror := ecs.NewCellMirror(world, grid.Cells())
//	// each frame, after grid.Update:
//	events.ProcessAllEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
