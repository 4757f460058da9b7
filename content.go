package infigrid

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	// Register decoders used by LoadImagePool.
	_ "image/jpeg"
	_ "image/png"
)

// ContentSource hands out content handles. Next returns nil when it has
// nothing to give; cells tolerate nil content.
type ContentSource interface {
	Next() *ebiten.Image
}

// ImagePool is a round-robin ContentSource over a fixed set of images.
type ImagePool struct {
	images []*ebiten.Image
	next   int
}

// NewImagePool creates a pool over images. An empty pool always returns nil.
func NewImagePool(images ...*ebiten.Image) *ImagePool {
	return &ImagePool{images: images}
}

// Next returns the next image in rotation.
func (p *ImagePool) Next() *ebiten.Image {
	if len(p.images) == 0 {
		return nil
	}
	img := p.images[p.next]
	p.next = (p.next + 1) % len(p.images)
	return img
}

// Len returns the number of images in the pool.
func (p *ImagePool) Len() int { return len(p.images) }

// LoadImagePool decodes every .png, .jpg and .jpeg file directly inside dir
// of fsys, in lexical order.
func LoadImagePool(fsys fs.FS, dir string) (*ImagePool, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("load image pool: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(path.Ext(e.Name())) {
		case ".png", ".jpg", ".jpeg":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	images := make([]*ebiten.Image, 0, len(names))
	for _, name := range names {
		img, _, err := ebitenutil.NewImageFromFileSystem(fsys, path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("load image pool: %s: %w", name, err)
		}
		images = append(images, img)
	}
	return NewImagePool(images...), nil
}
