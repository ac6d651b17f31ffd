package drake

import (
	"sort"

	"github.com/chewxy/math32"
)

// shadowLayer is one contribution to an elevated object's shadow: an offset,
// enlarged, blurred copy of the shape at a given opacity.
type shadowLayer struct {
	opacity    float32
	yOffset    float32
	blurRadius float32
	spread     float32
}

// shadowPresets maps elevation levels to their ordered shadow layers
// (umbra, penumbra, ambient), reverse-engineered from the Material 3
// elevation model. Elevation 0 means no shadow. Static and read-only.
var shadowPresets = map[int][]shadowLayer{
	1: {
		{0.20, 2, 1, -1},
		{0.14, 1, 1, 0},
		{0.12, 1, 3, 0},
	},
	2: {
		{0.20, 3, 1, -2},
		{0.14, 2, 2, 0},
		{0.12, 1, 5, 0},
	},
	3: {
		{0.20, 3, 3, -2},
		{0.14, 3, 4, 0},
		{0.12, 1, 8, 0},
	},
	4: {
		{0.20, 2, 4, -1},
		{0.14, 4, 5, 0},
		{0.12, 1, 10, 0},
	},
	5: {
		{0.20, 3, 5, -1},
		{0.14, 5, 8, 0},
		{0.12, 1, 14, 0},
	},
}

// shadowGroup is all shadow clones sharing one blur radius. Layers across
// different source objects that use the same radius amortize a single blur
// pass, so pass count is bounded by the number of distinct radii in use
// this frame, not by object count.
type shadowGroup struct {
	blurRadius float32
	clones     []Object
}

// castsShadow reports whether an object participates in the shadow pass.
// Only filled area shapes cast shadows; glyphs and lines never do.
func castsShadow(obj *Object) bool {
	if obj.Elevation < 1 || !obj.Visible {
		return false
	}
	switch obj.Shape.(type) {
	case RectShape, RoundedRectShape, CircleShape:
		_, ok := shadowPresets[obj.Elevation]
		return ok
	}
	return false
}

// shadowClone derives one shadow copy of obj for the given layer: opaque
// black at the layer opacity, offset vertically, inflated symmetrically by
// the spread (the shape's own radius grows by the same amount so the
// silhouette matches the inflated footprint), stripped of texture, border,
// and shader override, and clipped to the full screen — shadows are never
// scissored to their source's container.
func shadowClone(obj *Object, layer shadowLayer, screen Rect) Object {
	clone := *obj

	clone.Color = Color{0, 0, 0, layer.opacity}
	clone.Bounds.Y += layer.yOffset

	s := layer.spread
	clone.Bounds.X -= s
	clone.Bounds.Y -= s
	clone.Bounds.Width += 2 * s
	clone.Bounds.Height += 2 * s

	switch shape := clone.Shape.(type) {
	case RoundedRectShape:
		shape.ShapeSize.X += 2 * s
		shape.ShapeSize.Y += 2 * s
		shape.CornerRadius += s
		clone.Shape = shape
	case CircleShape:
		shape.Radius += s
		clone.Shape = shape
	}

	clone.TextureID = 0
	clone.BorderWidth = 0
	clone.ShaderID = 0
	clone.clip = screen
	clone.Elevation = 0
	clone.Uniforms = nil

	return clone
}

// buildShadowGroups expands every shadow-casting object into its preset's
// layer clones and groups them by blur radius, ascending.
func buildShadowGroups(objects []Object, screen Rect) []shadowGroup {
	byRadius := make(map[float32][]Object)

	for i := range objects {
		obj := &objects[i]
		if !castsShadow(obj) {
			continue
		}
		for _, layer := range shadowPresets[obj.Elevation] {
			byRadius[layer.blurRadius] = append(byRadius[layer.blurRadius], shadowClone(obj, layer, screen))
		}
	}

	if len(byRadius) == 0 {
		return nil
	}

	groups := make([]shadowGroup, 0, len(byRadius))
	for radius, clones := range byRadius {
		groups = append(groups, shadowGroup{blurRadius: radius, clones: clones})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].blurRadius < groups[j].blurRadius
	})
	return groups
}

// maxHalfKernel is the largest supported half-kernel; it matches the fixed
// weight array length in the blur shader (center + 15 taps per side).
const maxHalfKernel = 15

// gaussianKernel computes the normalized half-kernel weights for a blur
// radius: sigma = radius/3, taps = clamp(round(3·sigma), 1, 15), weights
// scaled so the full symmetric kernel (center once, each side tap twice)
// sums to 1. Returns nil for radius ≤ 0.
func gaussianKernel(radius float32) []float32 {
	if radius <= 0 {
		return nil
	}

	sigma := radius / 3
	halfKernel := int(sigma * 3)
	if halfKernel < 1 {
		halfKernel = 1
	}
	if halfKernel > maxHalfKernel {
		halfKernel = maxHalfKernel
	}

	weights := make([]float32, halfKernel+1)
	var sum float32
	for i := 0; i <= halfKernel; i++ {
		x := float32(i)
		weights[i] = math32.Exp(-x*x/(2*sigma*sigma)) / (math32.Sqrt(2*math32.Pi) * sigma)
		if i == 0 {
			sum += weights[i]
		} else {
			sum += weights[i] * 2
		}
	}
	for i := range weights {
		weights[i] /= sum
	}
	return weights
}

// blurWeightsUniform pads a kernel out to the shader's fixed weight array.
// Taps past the half-kernel stay zero, so the shader can loop the full
// range unconditionally.
func blurWeightsUniform(kernel []float32) []float32 {
	padded := make([]float32, maxHalfKernel+1)
	copy(padded, kernel)
	return padded
}
