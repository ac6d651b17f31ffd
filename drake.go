package drake

import "github.com/chewxy/math32"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float32
}

// ColorWhite is the default object color.
var ColorWhite = Color{1, 1, 1, 1}

// Vec2 is a 2D vector used for positions, offsets, sizes, and directions
// throughout the API. Components are float32 to match the GPU vertex format.
type Vec2 struct {
	X, Y float32
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float32 {
	return math32.Hypot(v.X, v.Y)
}

// Vec3 is a 3-component vector, used only as a typed uniform payload.
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 is a 4-component vector, used only as a typed uniform payload.
type Vec4 struct {
	X, Y, Z, W float32
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float32
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersect returns the intersection of r and other. Width and height of the
// result are clamped to zero; a degenerate intersection never goes negative.
func (r Rect) Intersect(other Rect) Rect {
	out := Rect{
		X: math32.Max(r.X, other.X),
		Y: math32.Max(r.Y, other.Y),
	}
	out.Width = math32.Min(r.X+r.Width, other.X+other.Width) - out.X
	out.Height = math32.Min(r.Y+r.Height, other.Y+other.Height) - out.Y
	out.Width = math32.Max(0, out.Width)
	out.Height = math32.Max(0, out.Height)
	return out
}

// LineMode selects how a line object connects its points.
type LineMode uint8

const (
	// LineStraight connects consecutive points with straight segments.
	LineStraight LineMode = iota
	// LineCurved interpolates a Catmull-Rom curve through the points.
	LineCurved
)

// UniformKind tags the payload variant of a typed uniform value.
type UniformKind uint8

const (
	UniformFloat UniformKind = iota
	UniformVec2
	UniformVec3
	UniformVec4
	UniformInt
)
