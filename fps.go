package infigrid

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsOverlay is the debug-mode status panel: frame rates plus the scroll
// and line state. The text is redrawn about twice a second.
type fpsOverlay struct {
	img     *ebiten.Image
	elapsed float64
	text    string
}

const fpsOverlayInterval = 0.5

// update refreshes the panel text. Returns true when the text changed.
func (o *fpsOverlay) update(dt float64, g *Grid) bool {
	o.elapsed += dt
	if o.text != "" && o.elapsed < fpsOverlayInterval {
		return false
	}
	o.elapsed = 0
	text := fmt.Sprintf("FPS: %.1f  TPS: %.1f\nline: %s  snapping: %v\nvelocity: %.1f",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		g.coord.LineAxis(), g.scroll.Snapping(), g.surface.Speed())
	if text == o.text {
		return false
	}
	o.text = text
	return true
}

func (o *fpsOverlay) draw(screen *ebiten.Image) {
	if o.text == "" {
		return
	}
	// 200x48 fits three lines of the debug font.
	if o.img == nil {
		o.img = ebiten.NewImage(200, 48)
	}
	o.img.Clear()
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, o.text)
	screen.DrawImage(o.img, nil)
}
