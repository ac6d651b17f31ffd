package drake

import (
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Render draws one full frame to target: shadow groups first, in ascending
// blur-radius order, then the sorted object pool. The pool is resorted
// beforehand if any mutation marked it dirty.
func (e *Engine) Render(target *ebiten.Image) {
	if !e.ok() || target == nil {
		return
	}

	start := time.Now()
	dirty := e.objects.needsSort
	e.objects.resort(&e.sortScratch)
	e.stats.reset()
	if dirty {
		e.stats.SortTime = time.Since(start)
	}

	for _, group := range buildShadowGroups(e.objects.objects, e.screen) {
		e.renderShadowGroup(group, target)
	}

	e.drawObjects(e.objects.objects, target)
	e.stats.Objects = e.objects.len()
	e.stats.RenderTime = time.Since(start)
}

// renderShadowGroup rasterizes one blur-radius group of shadow clones into
// the offscreen shadow target and composites it, blurred, onto dst.
func (e *Engine) renderShadowGroup(group shadowGroup, dst *ebiten.Image) {
	e.ensureTargets()
	e.stats.ShadowGroups++

	e.shadowTarget.Clear()
	e.drawObjects(group.clones, e.shadowTarget)

	if group.blurRadius <= 0 {
		op := &ebiten.DrawImageOptions{}
		dst.DrawImage(e.shadowTarget, op)
		e.stats.DrawCalls++
		return
	}

	blur := e.shaders.blur
	if blur == nil {
		return
	}
	kernel := gaussianKernel(group.blurRadius)
	weights := blurWeightsUniform(kernel)
	w := int(e.screen.Width)
	h := int(e.screen.Height)

	// Horizontal pass into the intermediate target, then vertical pass
	// compositing straight onto dst.
	e.blurTarget.Clear()
	hop := &ebiten.DrawRectShaderOptions{}
	hop.Images[0] = e.shadowTarget
	hop.Uniforms = map[string]any{
		"Weights":  weights,
		"PixelDir": []float32{1, 0},
	}
	e.blurTarget.DrawRectShader(w, h, blur, hop)

	vop := &ebiten.DrawRectShaderOptions{}
	vop.Images[0] = e.blurTarget
	vop.Uniforms = map[string]any{
		"Weights":  weights,
		"PixelDir": []float32{0, 1},
	}
	dst.DrawRectShader(w, h, blur, vop)
	e.stats.DrawCalls += 2
}

func (e *Engine) ensureTargets() {
	w := int(e.screen.Width)
	h := int(e.screen.Height)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if e.shadowTarget == nil {
		e.shadowTarget = ebiten.NewImage(w, h)
	}
	if e.blurTarget == nil {
		e.blurTarget = ebiten.NewImage(w, h)
	}
}

// sourceRect resolves an object's sample region in pixels: the texture's
// full bounds, or the shared white pixel when untextured. The object's UV
// sub-rectangle is mapped into this region during vertex generation.
func (e *Engine) sourceRect(obj *Object) (*ebiten.Image, texRect) {
	img := e.textures.lookup(obj.TextureID)
	if img == nil {
		return e.textures.whitePixel(), texRect{0, 0, 1, 1}
	}
	b := img.Bounds()
	return img, texRect{
		x0: float32(b.Min.X),
		y0: float32(b.Min.Y),
		x1: float32(b.Max.X),
		y1: float32(b.Max.Y),
	}
}

// drawObjects buffers vertex data for every visible object in order, then
// walks the list in batches sharing shader, texture, and clip state. Each
// object still gets its own draw so per-object uniforms apply.
func (e *Engine) drawObjects(objects []Object, dst *ebiten.Image) {
	e.vertices = e.vertices[:0]
	if cap(e.vertexCounts) < len(objects) {
		e.vertexCounts = make([]int, len(objects))
	}
	e.vertexCounts = e.vertexCounts[:len(objects)]

	targetW := float32(dst.Bounds().Dx())
	targetH := float32(dst.Bounds().Dy())

	for i := range objects {
		obj := &objects[i]
		if !obj.Visible {
			e.vertexCounts[i] = 0
			continue
		}
		_, src := e.sourceRect(obj)
		mvp := e.proj.mul(rotationAboutPivot(obj.Rotation, obj.RotationOrigin, obj.Bounds))
		var n int
		e.vertices, n = appendObjectVertices(e.vertices, obj, mvp, targetW, targetH, src)
		e.vertexCounts[i] = n
	}
	e.growIndices(len(e.vertices))

	offset := 0
	for i := 0; i < len(objects); {
		first := &objects[i]
		if !first.Visible {
			i++
			continue
		}
		prog := e.shaders.lookup(first.effectiveShader())
		if prog == nil {
			offset += e.vertexCounts[i]
			i++
			continue
		}

		clipDst := clipTarget(dst, first.clip)
		e.stats.Batches++

		end := i + 1
		for end < len(objects) && sameBatch(first, &objects[end]) {
			end++
		}

		for j := i; j < end; j++ {
			obj := &objects[j]
			n := e.vertexCounts[j]
			if !obj.Visible || n == 0 {
				continue
			}

			img, _ := e.sourceRect(obj)
			op := &ebiten.DrawTrianglesShaderOptions{}
			op.Images[0] = img
			op.Uniforms = objectUniforms(obj)
			clipDst.DrawTrianglesShader32(e.vertices[offset:offset+n], e.indices[:n], prog, op)
			e.stats.DrawCalls++
			e.stats.Vertices += n
			offset += n
		}
		i = end
	}
}

// clipTarget narrows dst to the object's scissor rectangle. SubImage keeps
// the parent's coordinate space, so buffered vertex positions stay valid.
func clipTarget(dst *ebiten.Image, clip Rect) *ebiten.Image {
	r := image.Rect(
		int(clip.X), int(clip.Y),
		int(clip.X+clip.Width), int(clip.Y+clip.Height),
	)
	return dst.SubImage(r).(*ebiten.Image)
}

// growIndices keeps the shared sequential index slice at least n long.
// Every draw indexes a contiguous vertex run, so indices are always 0..n-1.
func (e *Engine) growIndices(n int) {
	for len(e.indices) < n {
		e.indices = append(e.indices, uint32(len(e.indices)))
	}
}

func boolFloat(b bool) float32 {
	if b {
		return 1
	}
	return 0
}

// objectUniforms assembles the uniform map pushed for one object's draw:
// the shape's built-in parameters plus any caller-set named uniforms.
func objectUniforms(obj *Object) map[string]any {
	u := map[string]any{
		"ObjectColor": []float32{obj.Color.R, obj.Color.G, obj.Color.B, obj.Color.A},
		"UseTexture":  boolFloat(obj.TextureID != 0),
	}

	switch shape := obj.Shape.(type) {
	case RoundedRectShape:
		u["QuadSize"] = []float32{obj.Bounds.Width, obj.Bounds.Height}
		u["ShapeSize"] = []float32{shape.ShapeSize.X, shape.ShapeSize.Y}
		u["CornerRadius"] = shape.CornerRadius
		u["Blur"] = shape.Blur
		u["Inset"] = boolFloat(shape.Inset)
		u["BorderWidth"] = obj.BorderWidth
		u["BorderColor"] = []float32{obj.BorderColor.R, obj.BorderColor.G, obj.BorderColor.B, obj.BorderColor.A}
	case CircleShape:
		u["QuadSize"] = []float32{obj.Bounds.Width, obj.Bounds.Height}
		u["ShapeRadius"] = shape.Radius
		u["Blur"] = shape.Blur
		u["Inset"] = boolFloat(shape.Inset)
		u["BorderWidth"] = obj.BorderWidth
		u["BorderColor"] = []float32{obj.BorderColor.R, obj.BorderColor.G, obj.BorderColor.B, obj.BorderColor.A}
	case LineShape:
		u["LineWidth"] = shape.Width
	}

	for name, val := range obj.Uniforms {
		u[name] = val.kageValue()
	}
	return u
}
