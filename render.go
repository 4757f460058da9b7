package infigrid

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// drawRect returns the rectangle a cell covers on screen: the node's slot
// scaled about its centre by the node and visual scales, shifted by the
// visual's local offset.
func (c *Cell) drawRect() Rect {
	p := c.node.WorldPosition()
	w := c.node.Width * c.node.ScaleX * c.visual.ScaleX
	h := c.node.Height * c.node.ScaleY * c.visual.ScaleY
	cx := p.X + c.node.Width/2 + c.visual.X
	cy := p.Y + c.node.Height/2 + c.visual.Y
	return Rect{X: cx - w/2, Y: cy - h/2, Width: w, Height: h}
}

// raised reports whether the cell should be drawn above settled cells.
func (c *Cell) raised() bool {
	return c.state == StateDragging || c.state == StateSnappingBack || c.collapsing || c.expanded
}

// drawOrder appends cells in paint order: static layer, then the detached
// line, then anything being dragged or expanded.
func (co *Coordinator) drawOrder(buf []*Cell) []*Cell {
	buf = buf[:0]
	var top []*Cell
	for _, layer := range [...]*Node{co.static, co.pannable} {
		for _, n := range layer.Children() {
			c, ok := n.UserData.(*Cell)
			if !ok || !n.Visible {
				continue
			}
			if c.raised() {
				top = append(top, c)
				continue
			}
			buf = append(buf, c)
		}
	}
	return append(buf, top...)
}

// Draw renders every cell onto screen. Cells without content are drawn as
// solid rectangles in their visual's Color.
func (g *Grid) Draw(screen *ebiten.Image) {
	g.drawBuf = g.coord.drawOrder(g.drawBuf)
	for _, c := range g.drawBuf {
		g.drawCell(screen, c)
	}
	if g.log.enabled {
		g.overlay.draw(screen)
	}
}

func (g *Grid) drawCell(screen *ebiten.Image, c *Cell) {
	r := c.drawRect()
	if r.Width <= 0 || r.Height <= 0 {
		return
	}
	img := c.content
	if img == nil {
		img = g.whitePixel()
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}

	var op ebiten.DrawImageOptions
	op.GeoM.Scale(r.Width/float64(b.Dx()), r.Height/float64(b.Dy()))
	op.GeoM.Translate(r.X, r.Y)
	col := c.visual.Color
	op.ColorScale.Scale(float32(col.R*col.A), float32(col.G*col.A), float32(col.B*col.A), float32(col.A))
	screen.DrawImage(img, &op)
}

// whitePixel returns a lazily created 1x1 white image used for cells
// without content.
func (g *Grid) whitePixel() *ebiten.Image {
	if g.pixel == nil {
		g.pixel = ebiten.NewImage(1, 1)
		g.pixel.Fill(color.White)
	}
	return g.pixel
}
