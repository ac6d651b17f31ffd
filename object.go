package drake

// Builtin shader program ids. Every shape type maps to one of these unless
// the object carries an explicit shader override. Custom shaders created via
// [Engine.CreateShader] are assigned ids starting at customShaderBase and
// never collide with builtins.
const (
	shaderRect        uint32 = 1
	shaderRoundedRect uint32 = 2
	shaderCircle      uint32 = 3
	shaderGlyph       uint32 = 4
	shaderLine        uint32 = 5

	customShaderBase uint32 = 100
)

// Shape is the closed set of drawable shape variants. Exactly one of
// [RectShape], [RoundedRectShape], [CircleShape], [GlyphShape], or
// [LineShape] is stored per object; each variant carries only the fields
// relevant to its geometry and builtin shader.
type Shape interface {
	// builtinShader returns the builtin program id used when the object has
	// no shader override.
	builtinShader() uint32
}

// RectShape is a plain quad: flat color or texture over the object bounds.
type RectShape struct{}

func (RectShape) builtinShader() uint32 { return shaderRect }

// RoundedRectShape renders a rounded box via a signed-distance-field shader.
// ShapeSize is the box extent without rounding; Blur softens the boundary
// and Inset flips the falloff inward.
type RoundedRectShape struct {
	ShapeSize    Vec2
	CornerRadius float32
	Blur         float32
	Inset        bool
}

func (RoundedRectShape) builtinShader() uint32 { return shaderRoundedRect }

// CircleShape renders a circle via a signed-distance-field shader.
type CircleShape struct {
	Radius float32
	Blur   float32
	Inset  bool
}

func (CircleShape) builtinShader() uint32 { return shaderCircle }

// GlyphShape is a single rasterized text glyph. The four corners are
// precomputed in screen space at DrawText time (rotation about the text
// origin is baked in), so glyph quads bypass the per-object model matrix.
type GlyphShape struct {
	V0, V1, V2, V3 Vec2 // top-left, top-right, bottom-right, bottom-left
}

func (GlyphShape) builtinShader() uint32 { return shaderGlyph }

// LineShape is a poly-line from Start to End through the ordered control
// points, rendered as tessellated thick quads. TriCount is precomputed at
// insertion for draw-call sizing.
type LineShape struct {
	Start    Vec2
	End      Vec2
	Controls []Vec2
	Width    float32
	Mode     LineMode
	TriCount int
}

func (LineShape) builtinShader() uint32 { return shaderLine }

// Object is one drawable entry in the scene pool.
//
// The clip rectangle is captured from the top of the container stack at
// insertion time and never retroactively updated by later container pushes
// or pops.
type Object struct {
	id uint32

	Shape   Shape
	Visible bool
	ZIndex  int

	Bounds Rect
	Color  Color

	// TextureID references a texture in the engine's registry; 0 = untextured.
	TextureID uint32
	// ShaderID is an explicit program override; 0 selects the shape's builtin.
	ShaderID uint32

	clip   Rect
	UVRect Rect

	BorderWidth float32
	BorderColor Color

	// Uniforms carries extra typed parameters for custom shaders. Builtin
	// shape parameters live on the Shape variant, not here.
	Uniforms map[string]Uniform

	Elevation int

	Rotation       float32 // degrees, clockwise
	RotationOrigin Vec2    // pivot as a fraction of Bounds (0.5,0.5 = center)
}

// ID returns the object's identifier.
func (o *Object) ID() uint32 { return o.id }

// Clip returns the scissor rectangle captured at insertion.
func (o *Object) Clip() Rect { return o.clip }

// effectiveShader resolves the program id used to draw the object: the
// explicit override if set, otherwise the shape's builtin program.
func (o *Object) effectiveShader() uint32 {
	if o.ShaderID != 0 {
		return o.ShaderID
	}
	return o.Shape.builtinShader()
}

// setUniform stores a custom uniform, allocating the map on first use.
func (o *Object) setUniform(name string, u Uniform) {
	if o.Uniforms == nil {
		o.Uniforms = make(map[string]Uniform, 4)
	}
	o.Uniforms[name] = u
}
