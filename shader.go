package drake

import "github.com/hajimehoshi/ebiten/v2"

// --- Kage shader sources ---
// All shaders use //kage:unit pixels as required by Ebitengine. Shape
// boundaries are evaluated per-pixel from the normalized shape UV carried in
// custom.xy, so every shape is two triangles regardless of silhouette.
// Ebitengine expects premultiplied-alpha output; shaders premultiply at
// return.

const rectShaderSrc = `//kage:unit pixels
package main

var ObjectColor vec4
var UseTexture float

func Fragment(dst vec4, src vec2, color vec4, custom vec4) vec4 {
	base := ObjectColor
	if UseTexture >= 0.5 {
		base = imageSrc0At(src) * ObjectColor
	}
	return vec4(base.rgb*base.a, base.a)
}
`

const roundedRectShaderSrc = `//kage:unit pixels
package main

var ObjectColor vec4
var UseTexture float
var QuadSize vec2
var ShapeSize vec2
var CornerRadius float
var Blur float
var Inset float
var BorderWidth float
var BorderColor vec4
var Spread float

func sdfRoundedBox(p vec2, b vec2, r float) float {
	q := abs(p) - b + vec2(r, r)
	return length(max(q, vec2(0, 0))) + min(max(q.x, q.y), 0.0) - r
}

func Fragment(dst vec4, src vec2, color vec4, custom vec4) vec4 {
	base := ObjectColor
	if UseTexture >= 0.5 {
		base = imageSrc0At(src) * ObjectColor
	}

	p := (custom.xy - vec2(0.5, 0.5)) * QuadSize
	dist := sdfRoundedBox(p, ShapeSize*0.5, CornerRadius)

	alpha := 0.0
	final := base

	if BorderWidth > 0.0 {
		innerDist := sdfRoundedBox(p, ShapeSize*0.5-vec2(BorderWidth, BorderWidth), max(0.0, CornerRadius-BorderWidth))

		edge := max(0.5, fwidth(dist))
		innerEdge := max(0.5, fwidth(innerDist))

		outerAlpha := smoothstep(-edge, edge, -dist)
		innerAlpha := smoothstep(-innerEdge, innerEdge, -innerDist)
		alpha = outerAlpha - innerAlpha
		final = BorderColor

		if Blur > 0.0 {
			if Inset >= 0.5 {
				alpha = smoothstep(Blur, 0.0, alpha)
			} else {
				alpha = 1.0 - smoothstep(0.0, Blur, 1.0-alpha)
			}
		}
	} else {
		if Blur > 0.0 {
			effective := dist - Spread
			if Inset >= 0.5 {
				alpha = smoothstep(Blur, 0.0, -effective)
			} else {
				alpha = exp(-pow(max(0.0, effective), 2.0) * 6.0 / Blur)
			}
		} else {
			edge := max(0.5, fwidth(dist))
			alpha = smoothstep(-edge, edge, -dist)
		}
	}

	a := final.a * alpha
	return vec4(final.rgb*a, a)
}
`

const circleShaderSrc = `//kage:unit pixels
package main

var ObjectColor vec4
var UseTexture float
var QuadSize vec2
var ShapeRadius float
var Blur float
var Inset float
var BorderWidth float
var BorderColor vec4

func Fragment(dst vec4, src vec2, color vec4, custom vec4) vec4 {
	base := ObjectColor
	if UseTexture >= 0.5 {
		base = imageSrc0At(src) * ObjectColor
	}

	p := (custom.xy - vec2(0.5, 0.5)) * QuadSize
	dist := length(p) - ShapeRadius

	alpha := 0.0
	final := base

	if BorderWidth > 0.0 {
		innerDist := dist + BorderWidth
		edge := fwidth(dist)
		innerEdge := fwidth(innerDist)
		outerAlpha := smoothstep(edge, -edge, dist)
		innerAlpha := smoothstep(innerEdge, -innerEdge, innerDist)
		alpha = outerAlpha - innerAlpha
		final = BorderColor
		if innerDist < 0.0 {
			final = base
			alpha = smoothstep(edge, -edge, dist)
		}
	} else {
		if Blur > 0.0 {
			d := dist
			if Inset >= 0.5 {
				d = -dist
			}
			normalized := clamp(d/Blur, 0.0, 1.0)
			alpha = 1.0 - pow(normalized, 0.75)
		} else {
			edge := fwidth(dist)
			alpha = smoothstep(edge, -edge, dist)
		}
	}

	a := final.a * alpha
	return vec4(final.rgb*a, a)
}
`

const glyphShaderSrc = `//kage:unit pixels
package main

var ObjectColor vec4

func Fragment(dst vec4, src vec2, color vec4, custom vec4) vec4 {
	alpha := imageSrc0At(src).a
	a := ObjectColor.a * alpha
	return vec4(ObjectColor.rgb*a, a)
}
`

const lineShaderSrc = `//kage:unit pixels
package main

var ObjectColor vec4
var UseTexture float
var LineWidth float

func Fragment(dst vec4, src vec2, color vec4, custom vec4) vec4 {
	base := ObjectColor
	if UseTexture >= 0.5 {
		base = imageSrc0At(src) * ObjectColor
	}
	dist := abs(custom.y)
	alpha := smoothstep(LineWidth/2.0, LineWidth/2.0-1.0, dist)
	a := base.a * alpha
	return vec4(base.rgb*a, a)
}
`

// blurShaderSrc is one half of the separable Gaussian blur. PixelDir selects
// the pass axis ((1,0) horizontal, (0,1) vertical). Weights beyond the
// half-kernel are zero after normalization, so the tap loop runs the full
// fixed range with no dynamic bound.
const blurShaderSrc = `//kage:unit pixels
package main

var Weights [16]float
var PixelDir vec2

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	sum := imageSrc0At(src) * Weights[0]
	for i := 1; i < 16; i++ {
		off := PixelDir * float(i)
		sum += imageSrc0At(src+off) * Weights[i]
		sum += imageSrc0At(src-off) * Weights[i]
	}
	return sum
}
`

// shaderRegistry owns every compiled program: builtins at fixed low ids,
// caller-compiled Kage fragments from customShaderBase up. Ids are
// monotonic and never reused; id 0 is the invalid sentinel.
type shaderRegistry struct {
	programs map[uint32]*ebiten.Shader
	blur     *ebiten.Shader
	nextID   uint32
}

func newShaderRegistry() *shaderRegistry {
	r := &shaderRegistry{
		programs: make(map[uint32]*ebiten.Shader, 8),
		nextID:   customShaderBase,
	}

	builtins := []struct {
		id  uint32
		src string
	}{
		{shaderRect, rectShaderSrc},
		{shaderRoundedRect, roundedRectShaderSrc},
		{shaderCircle, circleShaderSrc},
		{shaderGlyph, glyphShaderSrc},
		{shaderLine, lineShaderSrc},
	}
	for _, b := range builtins {
		prog, err := ebiten.NewShader([]byte(b.src))
		if err != nil {
			logError("compile builtin shader failed", "id", b.id, "err", err)
			continue
		}
		r.programs[b.id] = prog
	}

	blur, err := ebiten.NewShader([]byte(blurShaderSrc))
	if err != nil {
		logError("compile blur shader failed", "err", err)
	}
	r.blur = blur

	return r
}

// lookup returns the program for an id, or nil when the id is unregistered.
// Objects resolving to a nil program are skipped at render time.
func (r *shaderRegistry) lookup(id uint32) *ebiten.Shader {
	return r.programs[id]
}

// createCustom compiles a caller-supplied Kage fragment source and registers
// it under a fresh custom id. Returns 0 on compile failure; no partial state
// is committed.
func (r *shaderRegistry) createCustom(src string) uint32 {
	prog, err := ebiten.NewShader([]byte(src))
	if err != nil {
		logError("compile custom shader failed", "err", err)
		return 0
	}

	id := r.nextID
	r.nextID++
	r.programs[id] = prog
	return id
}

// deleteCustom removes a custom program. Builtin ids below customShaderBase
// are protected and the call is a no-op for them.
func (r *shaderRegistry) deleteCustom(id uint32) {
	if id < customShaderBase {
		return
	}
	if prog, ok := r.programs[id]; ok {
		prog.Deallocate()
		delete(r.programs, id)
	}
}

// dispose releases every program.
func (r *shaderRegistry) dispose() {
	for id, prog := range r.programs {
		prog.Deallocate()
		delete(r.programs, id)
	}
	if r.blur != nil {
		r.blur.Deallocate()
		r.blur = nil
	}
}
