package drake

// Uniform is a typed shader parameter value. It is a closed tagged union:
// exactly one payload field is meaningful, selected by Kind. Uniforms carry
// shape-specific parameters on builtin shaders and act as the generic
// extension point for custom shaders set via [Engine.SetUniform].
type Uniform struct {
	Kind UniformKind

	Float float32
	V2    Vec2
	V3    Vec3
	V4    Vec4
	Int   int32
}

// FloatUniform returns a scalar float uniform.
func FloatUniform(v float32) Uniform {
	return Uniform{Kind: UniformFloat, Float: v}
}

// Vec2Uniform returns a 2-component vector uniform.
func Vec2Uniform(v Vec2) Uniform {
	return Uniform{Kind: UniformVec2, V2: v}
}

// Vec3Uniform returns a 3-component vector uniform.
func Vec3Uniform(v Vec3) Uniform {
	return Uniform{Kind: UniformVec3, V3: v}
}

// Vec4Uniform returns a 4-component vector uniform.
func Vec4Uniform(v Vec4) Uniform {
	return Uniform{Kind: UniformVec4, V4: v}
}

// IntUniform returns an integer uniform.
func IntUniform(v int32) Uniform {
	return Uniform{Kind: UniformInt, Int: v}
}

// kageValue converts the uniform to a value accepted by Ebitengine's
// DrawTrianglesShader uniform map.
func (u Uniform) kageValue() any {
	switch u.Kind {
	case UniformFloat:
		return u.Float
	case UniformVec2:
		return []float32{u.V2.X, u.V2.Y}
	case UniformVec3:
		return []float32{u.V3.X, u.V3.Y, u.V3.Z}
	case UniformVec4:
		return []float32{u.V4.X, u.V4.Y, u.V4.Z, u.V4.W}
	case UniformInt:
		return int(u.Int)
	default:
		return float32(0)
	}
}
