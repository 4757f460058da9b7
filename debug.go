package infigrid

import (
	"fmt"
	"io"
	"os"
)

// debugLog writes "[infigrid]" prefixed diagnostics when enabled.
type debugLog struct {
	out     io.Writer
	enabled bool
}

func newDebugLog(out io.Writer, enabled bool) *debugLog {
	if out == nil {
		out = os.Stderr
	}
	return &debugLog{out: out, enabled: enabled}
}

// logf prints one line. No-op when the log is nil or disabled.
func (l *debugLog) logf(format string, args ...any) {
	if l == nil || !l.enabled {
		return
	}
	_, _ = fmt.Fprintf(l.out, "[infigrid] "+format+"\n", args...)
}

// warnf always prints, enabled or not.
func (l *debugLog) warnf(format string, args ...any) {
	if l == nil {
		return
	}
	_, _ = fmt.Fprintf(l.out, "[infigrid] warning: "+format+"\n", args...)
}

// SetDebugMode enables or disables diagnostic logging of state transitions,
// swaps, snaps and settles.
func (g *Grid) SetDebugMode(enabled bool) {
	g.log.enabled = enabled
}

// debugCheckIndex warns when the coordinate index disagrees with the arena.
// Only run in debug mode, after a settle.
func (g *Grid) debugCheckIndex() {
	if !g.log.enabled {
		return
	}
	co := g.coord
	seen := make(map[Coord]uint32, len(co.cells))
	for _, c := range co.cells {
		if id, dup := seen[c.coord]; dup {
			g.log.warnf("coordinate %v held by cells %d and %d", c.coord, id, c.ID())
		}
		seen[c.coord] = c.ID()
		if co.index[c.coord] != c {
			g.log.warnf("index entry for %v does not point at cell %d", c.coord, c.ID())
		}
	}
}
