package infigrid

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// Snapshot colours, RGB in [0, 1].
var (
	snapBackground = [3]float64{0.08, 0.08, 0.1}
	snapStatic     = [3]float64{0.35, 0.37, 0.42}
	snapDetached   = [3]float64{0.2, 0.45, 0.85}
	snapDragging   = [3]float64{0.95, 0.6, 0.15}
	snapExpanded   = [3]float64{0.3, 0.75, 0.4}
	snapBounds     = [3]float64{0.9, 0.2, 0.2}
)

// Snapshot renders a schematic of the grid: every cell rectangle with its
// logical coordinate, the wraparound bounds and the snap reference point.
// The image covers the viewport plus one cell of margin on every side so
// buffered cells are visible.
func (g *Grid) Snapshot() image.Image {
	vp := g.layout.Viewport()
	cell := g.layout.CellSize()
	margin := Vec2{max(cell.X, 0), max(cell.Y, 0)}
	w := max(int(vp.X+2*margin.X), 1)
	h := max(int(vp.Y+2*margin.Y), 1)

	dc := gg.NewContext(w, h)
	dc.SetRGB(snapBackground[0], snapBackground[1], snapBackground[2])
	dc.Clear()
	dc.Translate(margin.X, margin.Y)

	// Viewport outline.
	dc.SetRGBA(1, 1, 1, 0.6)
	dc.SetLineWidth(1)
	dc.DrawRectangle(0, 0, vp.X, vp.Y)
	dc.Stroke()

	dc.SetFontFace(basicfont.Face7x13)
	for _, c := range g.coord.drawOrder(nil) {
		r := c.drawRect()
		fill := snapStatic
		switch {
		case c.state == StateDragging || c.state == StateSnappingBack:
			fill = snapDragging
		case c.expanded:
			fill = snapExpanded
		case c.Detached():
			fill = snapDetached
		}
		dc.SetRGB(fill[0], fill[1], fill[2])
		dc.DrawRectangle(r.X, r.Y, r.Width, r.Height)
		dc.FillPreserve()
		dc.SetRGB(0, 0, 0)
		dc.Stroke()

		center := r.Center()
		dc.SetRGB(1, 1, 1)
		dc.DrawStringAnchored(fmt.Sprintf("%d,%d", c.coord.X, c.coord.Y), center.X, center.Y, 0.5, 0.5)
	}

	b := g.coord.bounds
	dc.SetRGB(snapBounds[0], snapBounds[1], snapBounds[2])
	dc.SetLineWidth(2)
	dc.DrawLine(b.Left, b.Top, b.Left, b.Bottom)
	dc.DrawLine(b.Right, b.Top, b.Right, b.Bottom)
	dc.DrawLine(b.Left, b.Top, b.Right, b.Top)
	dc.DrawLine(b.Left, b.Bottom, b.Right, b.Bottom)
	dc.Stroke()

	ref := g.coord.reference
	dc.DrawCircle(ref.X, ref.Y, 4)
	dc.Fill()

	return dc.Image()
}

// WriteSnapshot renders a Snapshot and writes it as a PNG file.
func (g *Grid) WriteSnapshot(path string) error {
	return writePNG(path, g.Snapshot())
}

// snapshotToDir writes a timestamped, labeled snapshot into SnapshotDir and
// returns its path.
func (g *Grid) snapshotToDir(label string) (string, error) {
	if err := os.MkdirAll(g.SnapshotDir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", g.SnapshotDir, err)
	}
	g.snapshotSeq++
	stamp := time.Now().Format("20060102_150405")
	name := fmt.Sprintf("%s_%03d_%s.png", stamp, g.snapshotSeq, sanitizeLabel(label))
	path := filepath.Join(g.SnapshotDir, name)
	if err := g.WriteSnapshot(path); err != nil {
		return "", err
	}
	return path, nil
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
