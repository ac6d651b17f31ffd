package drake

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Engine is a retained-mode 2D scene. Objects are created by Add calls,
// mutated in place by Set calls keyed on their id, and drawn back-to-front
// by Render. An Engine owns its GPU resources (shaders, textures, offscreen
// targets) and must be released with Shutdown.
//
// Engine is single-threaded: all mutation and rendering must happen on the
// thread that owns the graphics context.
type Engine struct {
	screen     Rect
	proj       mat4
	objects    *store
	containers containerStack
	shaders    *shaderRegistry
	textures   *textureRegistry
	fonts      *fontRegistry

	// Frame scratch, reused across Render calls.
	sortScratch  []Object
	vertices     []ebiten.Vertex
	vertexCounts []int
	indices      []uint32

	// Offscreen targets for the shadow blur passes, allocated lazily and
	// resized with the screen.
	shadowTarget *ebiten.Image
	blurTarget   *ebiten.Image

	stats FrameStats

	closed bool
}

// New creates an engine for the given screen size and compiles the built-in
// shaders.
func New(screenWidth, screenHeight int) *Engine {
	e := &Engine{
		objects:  newStore(),
		shaders:  newShaderRegistry(),
		textures: newTextureRegistry(),
		fonts:    newFontRegistry(),
	}
	e.resize(screenWidth, screenHeight)
	logDebug("engine initialized", "width", screenWidth, "height", screenHeight)
	return e
}

// ok reports whether the engine is usable. Every exported operation funnels
// through this so that calls on a nil or shut-down engine degrade to logged
// no-ops instead of panics.
func (e *Engine) ok() bool {
	if e == nil || e.closed {
		logWarn("engine not initialized")
		return false
	}
	return true
}

// Shutdown releases every GPU resource the engine owns. The engine must not
// be used afterwards; further calls are logged no-ops.
func (e *Engine) Shutdown() {
	if !e.ok() {
		return
	}
	e.shaders.dispose()
	e.textures.dispose()
	e.fonts = newFontRegistry()
	e.objects.clear()
	e.containers.reset()
	e.releaseTargets()
	e.closed = true
	logDebug("engine shut down")
}

// SetScreenSize updates the screen dimensions and recomputes the projection.
func (e *Engine) SetScreenSize(width, height int) {
	if !e.ok() {
		return
	}
	e.resize(width, height)
}

func (e *Engine) resize(width, height int) {
	e.screen = Rect{Width: float32(width), Height: float32(height)}
	e.proj = ortho(float32(width), float32(height))
	e.releaseTargets()
}

func (e *Engine) releaseTargets() {
	if e.shadowTarget != nil {
		e.shadowTarget.Deallocate()
		e.shadowTarget = nil
	}
	if e.blurTarget != nil {
		e.blurTarget.Deallocate()
		e.blurTarget = nil
	}
}

// Clear removes every object from the scene. Fonts, textures, and shaders
// stay registered.
func (e *Engine) Clear() {
	if !e.ok() {
		return
	}
	e.objects.clear()
	e.containers.reset()
}

// add assigns the current container clip and registers the object in the
// pool, returning its id.
func (e *Engine) add(obj Object) uint32 {
	obj.clip = e.containers.top(e.screen)
	return e.objects.add(obj)
}

// AddRect adds an axis-aligned rectangle. Pass textureID 0 to fill with the
// flat color only; uv selects the sampled sub-rectangle when textured.
func (e *Engine) AddRect(bounds Rect, color Color, zIndex int, textureID uint32, uv Rect, borderWidth float32, borderColor Color) uint32 {
	if !e.ok() {
		return 0
	}
	return e.add(Object{
		Shape:       RectShape{},
		Visible:     true,
		ZIndex:      zIndex,
		Bounds:      bounds,
		Color:       color,
		TextureID:   textureID,
		UVRect:      uv,
		BorderWidth: borderWidth,
		BorderColor: borderColor,
	})
}

// AddRoundedRect adds a rounded rectangle. shapeSize is the rectangle's
// pixel size used for corner evaluation, normally bounds.Width/Height.
// blur softens the edge; inset inverts the fill for cut-out effects.
func (e *Engine) AddRoundedRect(bounds Rect, shapeSize Vec2, color Color, cornerRadius, blur float32, inset bool, zIndex int, textureID uint32, uv Rect, borderWidth float32, borderColor Color) uint32 {
	if !e.ok() {
		return 0
	}
	return e.add(Object{
		Shape: RoundedRectShape{
			ShapeSize:    shapeSize,
			CornerRadius: cornerRadius,
			Blur:         blur,
			Inset:        inset,
		},
		Visible:     true,
		ZIndex:      zIndex,
		Bounds:      bounds,
		Color:       color,
		TextureID:   textureID,
		UVRect:      uv,
		BorderWidth: borderWidth,
		BorderColor: borderColor,
	})
}

// AddCircle adds a circle of the given radius centered in bounds.
func (e *Engine) AddCircle(bounds Rect, color Color, radius, blur float32, inset bool, zIndex int, textureID uint32, borderWidth float32, borderColor Color) uint32 {
	if !e.ok() {
		return 0
	}
	return e.add(Object{
		Shape: CircleShape{
			Radius: radius,
			Blur:   blur,
			Inset:  inset,
		},
		Visible:     true,
		ZIndex:      zIndex,
		Bounds:      bounds,
		Color:       color,
		TextureID:   textureID,
		UVRect:      Rect{0, 0, 1, 1},
		BorderWidth: borderWidth,
		BorderColor: borderColor,
	})
}

// AddLine adds a stroked poly-line from start to end. In LineCurved mode the
// path is a Catmull-Rom spline through the control points; with no controls
// a midpoint control is synthesized so the stroke still bows. Bounds and
// triangle count are derived from the tessellated path.
func (e *Engine) AddLine(start, end Vec2, color Color, width float32, mode LineMode, controls []Vec2, zIndex int) uint32 {
	if !e.ok() {
		return 0
	}
	shape := LineShape{
		Start:    start,
		End:      end,
		Controls: append([]Vec2(nil), controls...),
		Width:    width,
		Mode:     mode,
	}
	bounds, triCount := lineGeometry(shape)
	shape.TriCount = triCount
	return e.add(Object{
		Shape:   shape,
		Visible: true,
		ZIndex:  zIndex,
		Bounds:  bounds,
		Color:   color,
		UVRect:  Rect{0, 0, 1, 1},
	})
}

// Remove destroys an object. Unknown ids are ignored.
func (e *Engine) Remove(id uint32) {
	if !e.ok() {
		return
	}
	e.objects.remove(id)
}

// Find returns the object with the given id, or nil. The pointer is only
// valid until the next Add, Remove, or Render call.
func (e *Engine) Find(id uint32) *Object {
	if !e.ok() {
		return nil
	}
	return e.objects.find(id)
}

// SetVisible toggles an object without removing it from the pool.
func (e *Engine) SetVisible(id uint32, visible bool) {
	if !e.ok() {
		return
	}
	if obj := e.objects.find(id); obj != nil {
		obj.Visible = visible
	}
}

// SetCornerRadius changes a rounded rectangle's corner radius. Other shapes
// ignore the call.
func (e *Engine) SetCornerRadius(id uint32, radius float32) {
	if !e.ok() {
		return
	}
	obj := e.objects.find(id)
	if obj == nil {
		return
	}
	if shape, isRounded := obj.Shape.(RoundedRectShape); isRounded {
		shape.CornerRadius = radius
		obj.Shape = shape
	}
}

// SetRotation sets an object's rotation in degrees about its current pivot.
func (e *Engine) SetRotation(id uint32, angleDegrees float32) {
	if !e.ok() {
		return
	}
	if obj := e.objects.find(id); obj != nil {
		obj.Rotation = angleDegrees
	}
}

// SetRotationOrigin sets the rotation pivot as a fraction of the object's
// bounds, {0.5, 0.5} being the center.
func (e *Engine) SetRotationOrigin(id uint32, pivot Vec2) {
	if !e.ok() {
		return
	}
	if obj := e.objects.find(id); obj != nil {
		obj.RotationOrigin = pivot
	}
}

// SetRotationAndOrigin sets angle and pivot together.
func (e *Engine) SetRotationAndOrigin(id uint32, angleDegrees float32, pivot Vec2) {
	if !e.ok() {
		return
	}
	if obj := e.objects.find(id); obj != nil {
		obj.Rotation = angleDegrees
		obj.RotationOrigin = pivot
	}
}

// SetElevation sets the Material shadow level (0 disables). Shadows affect
// draw order, so the pool is marked for resort.
func (e *Engine) SetElevation(id uint32, level int) {
	if !e.ok() {
		return
	}
	if obj := e.objects.find(id); obj != nil {
		obj.Elevation = level
		e.objects.needsSort = true
	}
}

// SetShader overrides the object's shader program. The pool is only marked
// dirty when the id actually changes.
func (e *Engine) SetShader(id, shaderID uint32) {
	if !e.ok() {
		return
	}
	if obj := e.objects.find(id); obj != nil && obj.ShaderID != shaderID {
		obj.ShaderID = shaderID
		e.objects.needsSort = true
	}
}

// SetUniform sets a named shader parameter on the object.
func (e *Engine) SetUniform(id uint32, name string, value Uniform) {
	if !e.ok() {
		return
	}
	if obj := e.objects.find(id); obj != nil {
		obj.setUniform(name, value)
	}
}

// SetBorder sets the stroke width and color drawn inside the shape edge.
func (e *Engine) SetBorder(id uint32, width float32, color Color) {
	if !e.ok() {
		return
	}
	if obj := e.objects.find(id); obj != nil {
		obj.BorderWidth = width
		obj.BorderColor = color
	}
}

// LoadFont loads a TTF/OTF file at the given pixel size. Returns 0 on
// failure.
func (e *Engine) LoadFont(path string, size float32) uint32 {
	if !e.ok() {
		return 0
	}
	id, err := e.fonts.load(path, size)
	if err != nil {
		logError("load font", "err", err)
		return 0
	}
	return id
}

// DrawText adds one Glyph object per rendered glyph. pos is the baseline of
// the first line; rotation in degrees is applied about pos+origin. Unknown
// font ids are ignored.
func (e *Engine) DrawText(fontID uint32, s string, pos Vec2, color Color, zIndex int, rotation float32, origin Vec2) {
	if !e.ok() {
		return
	}
	face := e.fonts.lookup(fontID)
	if face == nil {
		return
	}
	for _, q := range face.layoutGlyphs(s, pos, rotation, origin, e.textures.intern) {
		e.add(Object{
			Shape:     q.shape,
			Visible:   true,
			ZIndex:    zIndex,
			Bounds:    q.bounds,
			Color:     color,
			TextureID: q.texture,
			UVRect:    Rect{0, 0, 1, 1},
		})
	}
}

// MeasureText returns the rendered size of the text, or zero for an unknown
// font.
func (e *Engine) MeasureText(fontID uint32, s string) Vec2 {
	if !e.ok() {
		return Vec2{}
	}
	face := e.fonts.lookup(fontID)
	if face == nil {
		return Vec2{}
	}
	return face.measure(s)
}

// DeleteFont releases a font. Glyph objects already in the scene keep their
// interned atlas pages.
func (e *Engine) DeleteFont(fontID uint32) {
	if !e.ok() {
		return
	}
	e.fonts.delete(fontID)
}

// LoadTexture decodes an image file and returns its id and pixel size.
// Returns 0, 0, 0 on failure.
func (e *Engine) LoadTexture(path string) (id uint32, width, height int) {
	if !e.ok() {
		return 0, 0, 0
	}
	id, err := e.textures.load(path)
	if err != nil {
		logError("load texture", "err", err)
		return 0, 0, 0
	}
	b := e.textures.lookup(id).Bounds()
	return id, b.Dx(), b.Dy()
}

// DeleteTexture releases a texture.
func (e *Engine) DeleteTexture(id uint32) {
	if !e.ok() {
		return
	}
	e.textures.delete(id)
}

// CreateShader compiles a custom fragment shader in Kage form and returns
// its id (always ≥100), or 0 on failure.
func (e *Engine) CreateShader(source string) uint32 {
	if !e.ok() {
		return 0
	}
	return e.shaders.createCustom(source)
}

// DeleteShader releases a custom shader. Built-in ids are protected.
func (e *Engine) DeleteShader(id uint32) {
	if !e.ok() {
		return
	}
	e.shaders.deleteCustom(id)
}

// BeginContainer pushes a clip region. Objects added until the matching
// EndContainer are scissored to the intersection of all open containers.
func (e *Engine) BeginContainer(bounds Rect) {
	if !e.ok() {
		return
	}
	e.containers.push(bounds)
}

// EndContainer pops the innermost container. Unbalanced calls are ignored.
func (e *Engine) EndContainer() {
	if !e.ok() {
		return
	}
	e.containers.pop()
}
