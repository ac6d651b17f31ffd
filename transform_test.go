package drake

import "testing"

func TestOrthoMapsScreenCorners(t *testing.T) {
	m := ortho(640, 480)

	x, y := m.apply(0, 0)
	assertNear(t, "top-left ndc x", x, -1)
	assertNear(t, "top-left ndc y", y, 1)

	x, y = m.apply(640, 480)
	assertNear(t, "bottom-right ndc x", x, 1)
	assertNear(t, "bottom-right ndc y", y, -1)

	x, y = m.apply(320, 240)
	assertNear(t, "center ndc x", x, 0)
	assertNear(t, "center ndc y", y, 0)
}

func TestOrthoDegenerateSizeIsIdentity(t *testing.T) {
	if ortho(0, 480) != identityMat4 {
		t.Error("zero width did not fall back to identity")
	}
	if ortho(640, -1) != identityMat4 {
		t.Error("negative height did not fall back to identity")
	}
}

func TestNDCToTargetInvertsOrtho(t *testing.T) {
	m := ortho(800, 600)
	for _, p := range []Vec2{{0, 0}, {800, 600}, {123, 456}, {400, 300}} {
		ndcX, ndcY := m.apply(p.X, p.Y)
		x, y := ndcToTarget(ndcX, ndcY, 800, 600)
		assertNear(t, "round-trip x", x, p.X)
		assertNear(t, "round-trip y", y, p.Y)
	}
}

func TestRotationPivotIsFixedPoint(t *testing.T) {
	bounds := Rect{100, 50, 40, 20}
	for _, origin := range []Vec2{{0, 0}, {0.5, 0.5}, {1, 1}, {0.25, 0.75}} {
		m := rotationAboutPivot(137, origin, bounds)
		px := bounds.X + bounds.Width*origin.X
		py := bounds.Y + bounds.Height*origin.Y

		x, y := m.apply(px, py)
		assertNear(t, "pivot x", x, px)
		assertNear(t, "pivot y", y, py)
	}
}

func TestRotationQuarterTurn(t *testing.T) {
	bounds := Rect{0, 0, 20, 20}
	m := rotationAboutPivot(90, Vec2{0.5, 0.5}, bounds)

	// Screen space is Y-down, so a positive angle turns clockwise on
	// screen: the top-left corner lands at the top-right.
	x, y := m.apply(0, 0)
	assertNear(t, "corner x", x, 20)
	assertNear(t, "corner y", y, 0)
}

func TestZeroRotationIsIdentity(t *testing.T) {
	if rotationAboutPivot(0, Vec2{0.5, 0.5}, Rect{10, 10, 5, 5}) != identityMat4 {
		t.Error("zero angle did not produce identity")
	}
}

func TestMatrixMulComposesTransforms(t *testing.T) {
	proj := ortho(640, 480)
	rot := rotationAboutPivot(45, Vec2{0, 0}, Rect{100, 100, 50, 50})
	mvp := proj.mul(rot)

	// Applying the composite must match applying rotation then projection.
	rx, ry := rot.apply(125, 125)
	wantX, wantY := proj.apply(rx, ry)
	gotX, gotY := mvp.apply(125, 125)
	assertNear(t, "composed x", gotX, wantX)
	assertNear(t, "composed y", gotY, wantY)
}
