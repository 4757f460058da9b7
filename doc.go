// Package infigrid is a virtual infinite grid for [Ebitengine].
//
// A small, fixed pool of cells is recycled through a buffered window so the
// grid appears endless. Rows and columns pan with axis locking and snap back
// into alignment after inertial scrolling; a held cell can be dragged onto a
// neighbour to swap them; a clicked cell expands while every other cell
// collapses.
//
// # Quick start
//
// A [Grid] implements [ebiten.Game]:
//
//	cfg := infigrid.DefaultConfig()
//	cfg.Content = infigrid.NewImagePool(tiles...)
//	grid, err := infigrid.NewGrid(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	ebiten.RunGame(grid)
//
// Configs can also be read from TOML with [LoadConfig] or [DecodeConfig];
// unset behavioural fields fall back to [DefaultConfig].
//
// # Coordinates
//
// Every cell has a logical [Coord]. Columns run from -BufferColumns to
// VisibleColumns+BufferColumns-1 left to right; rows run from -BufferRows at
// the bottom to VisibleRows+BufferRows-1 at the top. Render space has its
// origin at the top-left with Y growing downward, so [Layout.Slot] flips the
// row index.
//
// # Frame order
//
// [Grid.Step] runs, in order: the attached [TestRunner], pointer input,
// scheduled [Task]s, tweens, scroll inertia (whose value changes trigger
// wraparound and a re-layout), the layout pass, and the snap check in
// [ScrollController.LateUpdate].
//
// # Observing
//
// [Grid.OnEvent] registers a callback for every [GridEvent]. Set
// [Config.Events] to forward the same events elsewhere; the ecs subpackage
// publishes them into a [Donburi] world.
//
// # Testing
//
// Pointer input can be injected with [Grid.InjectPress], [Grid.InjectMove],
// [Grid.InjectRelease], [Grid.InjectHold] and friends, or scripted as JSON
// through [LoadTestScript]. [Grid.Snapshot] renders a schematic of the cell
// layout (via [gg]) for visual checks.
//
// [Ebitengine]: https://ebitengine.org
// [gg]: https://github.com/fogleman/gg
// [Donburi]: https://github.com/yohamta/donburi
package infigrid
