package drake

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// textureRegistry owns every GPU image the engine can sample from: decoded
// files, glyph atlases handed over by the text renderer, and the 1x1 white
// fallback. Objects refer to textures by id only, which keeps the batch
// sort key a plain integer compare.
type textureRegistry struct {
	images   map[uint32]*ebiten.Image
	interned map[*ebiten.Image]uint32
	nextID   uint32

	white *ebiten.Image
}

func newTextureRegistry() *textureRegistry {
	return &textureRegistry{
		images:   make(map[uint32]*ebiten.Image),
		interned: make(map[*ebiten.Image]uint32),
		nextID:   1,
	}
}

// load decodes an image file and registers it, returning its id.
// PNG, JPEG, BMP and WebP are supported.
func (r *textureRegistry) load(path string) (uint32, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("drake: open texture %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return 0, fmt.Errorf("drake: decode texture %s: %w", path, err)
	}

	id := r.nextID
	r.nextID++
	r.images[id] = ebiten.NewImageFromImage(img)
	return id, nil
}

// intern registers an externally produced image (a glyph atlas page) and
// memoizes the result, so repeated draws of the same page resolve to the
// same id and batch together.
func (r *textureRegistry) intern(img *ebiten.Image) uint32 {
	if id, ok := r.interned[img]; ok {
		return id
	}
	id := r.nextID
	r.nextID++
	r.images[id] = img
	r.interned[img] = id
	return id
}

func (r *textureRegistry) lookup(id uint32) *ebiten.Image {
	return r.images[id]
}

// delete releases a texture. Interned glyph pages are owned by the text
// renderer and are only unmapped, not deallocated.
func (r *textureRegistry) delete(id uint32) {
	img, ok := r.images[id]
	if !ok {
		return
	}
	delete(r.images, id)
	if owned, interned := r.interned[img]; interned && owned == id {
		delete(r.interned, img)
		return
	}
	img.Deallocate()
}

// whitePixel returns the shared 1x1 white image, creating it on first use.
// The shader samples it when an object has no texture so that textured and
// untextured shapes can share one pipeline.
func (r *textureRegistry) whitePixel() *ebiten.Image {
	if r.white == nil {
		r.white = ebiten.NewImage(1, 1)
		r.white.Fill(color.White)
	}
	return r.white
}

func (r *textureRegistry) dispose() {
	for id, img := range r.images {
		delete(r.images, id)
		if _, interned := r.interned[img]; interned {
			continue
		}
		img.Deallocate()
	}
	r.interned = make(map[*ebiten.Image]uint32)
	if r.white != nil {
		r.white.Deallocate()
		r.white = nil
	}
}
