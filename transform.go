package drake

import "github.com/chewxy/math32"

// mat4 is a row-major 4×4 homogeneous matrix. The engine's backend has no
// programmable vertex stage, so projection and model matrices are applied to
// vertex positions on the CPU before submission.
type mat4 [4][4]float32

// identityMat4 is the identity matrix.
var identityMat4 = mat4{
	{1, 0, 0, 0},
	{0, 1, 0, 0},
	{0, 0, 1, 0},
	{0, 0, 0, 1},
}

// ortho builds the screen-space orthographic projection: left 0, top 0,
// right w, bottom h, Y-axis inverted so screen Y-down maps to NDC correctly.
// Z is collapsed to a fixed depth — z-index is a draw-order concept, not a
// depth-buffer concept.
func ortho(w, h float32) mat4 {
	if w <= 0 || h <= 0 {
		return identityMat4
	}
	return mat4{
		{2 / w, 0, 0, -1},
		{0, -2 / h, 0, 1},
		{0, 0, -1, 0},
		{0, 0, 0, 1},
	}
}

// rotationAboutPivot builds the model matrix for a rotation of angle degrees
// (clockwise in screen space) about the point bounds.origin + bounds.size ·
// origin. The pivot translation is folded in so rotation happens about the
// pivot rather than the screen origin.
func rotationAboutPivot(angleDeg float32, origin Vec2, bounds Rect) mat4 {
	if angleDeg == 0 {
		return identityMat4
	}

	rad := angleDeg * math32.Pi / 180
	sin, cos := math32.Sincos(rad)

	cx := bounds.X + bounds.Width*origin.X
	cy := bounds.Y + bounds.Height*origin.Y

	return mat4{
		{cos, -sin, 0, cx - cos*cx + sin*cy},
		{sin, cos, 0, cy - sin*cx - cos*cy},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// mul returns m * other.
func (m mat4) mul(other mat4) mat4 {
	var out mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out[r][c] = m[r][0]*other[0][c] +
				m[r][1]*other[1][c] +
				m[r][2]*other[2][c] +
				m[r][3]*other[3][c]
		}
	}
	return out
}

// apply transforms a screen-space point through the matrix, treating it as
// (x, y, 0, 1). The matrices the engine composes keep w at 1, so no
// perspective divide is needed.
func (m mat4) apply(x, y float32) (float32, float32) {
	return m[0][0]*x + m[0][1]*y + m[0][3],
		m[1][0]*x + m[1][1]*y + m[1][3]
}

// ndcToTarget maps NDC coordinates back to pixel coordinates on a target of
// the given size. Inverse of what ortho produces: (-1, 1) is the top-left.
func ndcToTarget(ndcX, ndcY, w, h float32) (float32, float32) {
	return (ndcX + 1) / 2 * w, (1 - ndcY) / 2 * h
}
