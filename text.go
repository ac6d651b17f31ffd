package drake

import (
	"bytes"
	"fmt"
	"os"

	"github.com/chewxy/math32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// fontFace is one loaded font at a fixed pixel size. Glyph rasterization is
// delegated to Ebitengine's text/v2 glyph cache; the engine only positions
// the resulting quads.
type fontFace struct {
	face       *text.GoTextFace
	source     *text.GoTextFaceSource
	ascent     float32
	lineHeight float32
}

// fontRegistry owns loaded fonts, keyed by id.
type fontRegistry struct {
	fonts  map[uint32]*fontFace
	nextID uint32
}

func newFontRegistry() *fontRegistry {
	return &fontRegistry{
		fonts:  make(map[uint32]*fontFace),
		nextID: 1,
	}
}

// load reads a TTF/OTF file and registers a face at the given pixel size.
func (r *fontRegistry) load(path string, size float32) (uint32, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("drake: read font %s: %w", path, err)
	}

	source, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("drake: parse font %s: %w", path, err)
	}

	face := &text.GoTextFace{
		Source: source,
		Size:   float64(size),
	}
	m := face.Metrics()

	id := r.nextID
	r.nextID++
	r.fonts[id] = &fontFace{
		face:       face,
		source:     source,
		ascent:     float32(m.HAscent),
		lineHeight: float32(m.HAscent + m.HDescent + m.HLineGap),
	}
	return id, nil
}

func (r *fontRegistry) lookup(id uint32) *fontFace {
	return r.fonts[id]
}

func (r *fontRegistry) delete(id uint32) {
	delete(r.fonts, id)
}

// measure returns the width and height of the rendered text.
func (f *fontFace) measure(s string) Vec2 {
	w, h := text.Measure(s, f.face, float64(f.lineHeight))
	return Vec2{X: float32(w), Y: float32(h)}
}

// glyphQuad is one positioned glyph produced by text layout: its four corner
// positions after rotation, its axis-aligned footprint before rotation, and
// the atlas page it samples from.
type glyphQuad struct {
	shape   GlyphShape
	bounds  Rect
	texture uint32
}

// layoutGlyphs shapes the text and bakes each glyph's corner positions,
// rotated by angleDeg about pos+origin. pos is the baseline of the first
// line. Corner order is top-left, top-right, bottom-right, bottom-left.
// intern maps a glyph cache page to a texture id.
func (f *fontFace) layoutGlyphs(s string, pos Vec2, angleDeg float32, origin Vec2, intern func(*ebiten.Image) uint32) []glyphQuad {
	glyphs := text.AppendGlyphs(nil, s, f.face, &text.LayoutOptions{
		LineSpacing: float64(f.lineHeight),
	})
	if len(glyphs) == 0 {
		return nil
	}

	angle := angleDeg * math32.Pi / 180
	cosA := math32.Cos(angle)
	sinA := math32.Sin(angle)
	pivot := Vec2{X: pos.X + origin.X, Y: pos.Y + origin.Y}

	rotate := func(x, y float32) Vec2 {
		dx := x - pivot.X
		dy := y - pivot.Y
		return Vec2{
			X: dx*cosA - dy*sinA + pivot.X,
			Y: dx*sinA + dy*cosA + pivot.Y,
		}
	}

	quads := make([]glyphQuad, 0, len(glyphs))
	for _, g := range glyphs {
		if g.Image == nil {
			continue
		}
		w, h := g.Image.Bounds().Dx(), g.Image.Bounds().Dy()

		// Glyph offsets are relative to the top of the text box; shift so
		// that pos lands on the first baseline.
		x0 := pos.X + float32(g.X)
		y0 := pos.Y - f.ascent + float32(g.Y)
		x1 := x0 + float32(w)
		y1 := y0 + float32(h)

		v0 := rotate(x0, y0)
		v1 := rotate(x1, y0)
		v2 := rotate(x1, y1)
		v3 := rotate(x0, y1)

		quads = append(quads, glyphQuad{
			shape:   GlyphShape{V0: v0, V1: v1, V2: v2, V3: v3},
			bounds:  Rect{X: v0.X, Y: v0.Y, Width: v1.X - v0.X, Height: v3.Y - v0.Y},
			texture: intern(g.Image),
		})
	}
	return quads
}
