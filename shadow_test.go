package drake

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestGaussianKernelNormalization(t *testing.T) {
	for _, radius := range []float32{0.5, 1, 2, 3, 5, 8, 14, 40} {
		weights := gaussianKernel(radius)
		if weights == nil {
			t.Fatalf("nil kernel for radius %v", radius)
		}

		sum := weights[0]
		for _, w := range weights[1:] {
			sum += 2 * w
		}
		if math32.Abs(sum-1) > epsilon {
			t.Errorf("radius %v: kernel sum = %v, want 1", radius, sum)
		}
	}
}

func TestGaussianKernelTapBounds(t *testing.T) {
	// Tiny radius still yields the minimum one side tap.
	if got := len(gaussianKernel(0.1)); got != 2 {
		t.Errorf("len = %d for tiny radius, want 2", got)
	}
	// Huge radius clamps at the shader's fixed array size.
	if got := len(gaussianKernel(1000)); got != maxHalfKernel+1 {
		t.Errorf("len = %d for huge radius, want %d", got, maxHalfKernel+1)
	}
	if gaussianKernel(0) != nil {
		t.Error("radius 0 must produce no kernel")
	}
	if gaussianKernel(-3) != nil {
		t.Error("negative radius must produce no kernel")
	}
}

func TestBlurWeightsUniformPadsWithZeros(t *testing.T) {
	kernel := gaussianKernel(1)
	padded := blurWeightsUniform(kernel)

	if len(padded) != maxHalfKernel+1 {
		t.Fatalf("len = %d, want %d", len(padded), maxHalfKernel+1)
	}
	for i := len(kernel); i < len(padded); i++ {
		if padded[i] != 0 {
			t.Errorf("padded[%d] = %v, want 0", i, padded[i])
		}
	}
}

func TestCastsShadowGating(t *testing.T) {
	cases := []struct {
		name string
		obj  Object
		want bool
	}{
		{"elevated rect", Object{Shape: RectShape{}, Visible: true, Elevation: 1}, true},
		{"elevated rounded rect", Object{Shape: RoundedRectShape{}, Visible: true, Elevation: 3}, true},
		{"elevated circle", Object{Shape: CircleShape{}, Visible: true, Elevation: 5}, true},
		{"zero elevation", Object{Shape: RectShape{}, Visible: true}, false},
		{"invisible", Object{Shape: RectShape{}, Visible: false, Elevation: 2}, false},
		{"unregistered level", Object{Shape: RectShape{}, Visible: true, Elevation: 9}, false},
		{"line", Object{Shape: LineShape{}, Visible: true, Elevation: 2}, false},
		{"glyph", Object{Shape: GlyphShape{}, Visible: true, Elevation: 2}, false},
	}
	for _, tc := range cases {
		if got := castsShadow(&tc.obj); got != tc.want {
			t.Errorf("%s: castsShadow = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestShadowCloneDerivation(t *testing.T) {
	screen := Rect{0, 0, 640, 480}
	obj := Object{
		Shape: RoundedRectShape{
			ShapeSize:    Vec2{100, 60},
			CornerRadius: 8,
		},
		Visible:     true,
		Bounds:      Rect{50, 40, 100, 60},
		Color:       Color{1, 0, 0, 1},
		TextureID:   7,
		ShaderID:    120,
		BorderWidth: 2,
		Elevation:   1,
		clip:        Rect{10, 10, 50, 50},
	}
	layer := shadowLayer{opacity: 0.2, yOffset: 2, blurRadius: 1, spread: -1}

	clone := shadowClone(&obj, layer, screen)

	if clone.Color != (Color{0, 0, 0, 0.2}) {
		t.Errorf("color = %+v, want opaque black at layer opacity", clone.Color)
	}
	// y offset 2, then spread -1 shrinks every side by 1.
	if want := (Rect{51, 43, 98, 58}); clone.Bounds != want {
		t.Errorf("bounds = %+v, want %+v", clone.Bounds, want)
	}
	shape := clone.Shape.(RoundedRectShape)
	assertNear(t, "shape width", shape.ShapeSize.X, 98)
	assertNear(t, "shape height", shape.ShapeSize.Y, 58)
	assertNear(t, "corner radius", shape.CornerRadius, 7)

	if clone.TextureID != 0 || clone.ShaderID != 0 || clone.BorderWidth != 0 {
		t.Error("texture, shader override, and border must be stripped")
	}
	if clone.clip != screen {
		t.Errorf("clip = %+v, want full screen", clone.clip)
	}
	if clone.Elevation != 0 {
		t.Error("clone must not cast shadows itself")
	}
}

func TestShadowCloneGrowsCircleRadius(t *testing.T) {
	obj := Object{
		Shape:     CircleShape{Radius: 30},
		Visible:   true,
		Bounds:    Rect{0, 0, 60, 60},
		Elevation: 1,
	}
	clone := shadowClone(&obj, shadowLayer{opacity: 0.1, spread: 3}, Rect{0, 0, 100, 100})
	assertNear(t, "radius", clone.Shape.(CircleShape).Radius, 33)
}

func TestShadowGroupsByRadiusAscending(t *testing.T) {
	screen := Rect{0, 0, 640, 480}
	objects := []Object{
		{Shape: RectShape{}, Visible: true, Bounds: Rect{0, 0, 10, 10}, Elevation: 1},
	}

	groups := buildShadowGroups(objects, screen)

	// Elevation 1 has three layers over two distinct blur radii (1, 1, 3).
	if len(groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(groups))
	}
	if groups[0].blurRadius != 1 || groups[1].blurRadius != 3 {
		t.Errorf("radii = [%v %v], want [1 3]", groups[0].blurRadius, groups[1].blurRadius)
	}
	if len(groups[0].clones) != 2 {
		t.Errorf("radius-1 clones = %d, want 2", len(groups[0].clones))
	}
	if len(groups[1].clones) != 1 {
		t.Errorf("radius-3 clones = %d, want 1", len(groups[1].clones))
	}

	total := 0
	for _, g := range groups {
		total += len(g.clones)
	}
	if total != 3 {
		t.Errorf("total clones = %d, want one per preset layer", total)
	}
}

func TestShadowGroupsShareRadiiAcrossObjects(t *testing.T) {
	screen := Rect{0, 0, 640, 480}
	objects := []Object{
		{Shape: RectShape{}, Visible: true, Bounds: Rect{0, 0, 10, 10}, Elevation: 1},
		{Shape: CircleShape{Radius: 5}, Visible: true, Bounds: Rect{50, 50, 10, 10}, Elevation: 1},
		{Shape: LineShape{}, Visible: true, Elevation: 1},
	}

	groups := buildShadowGroups(objects, screen)

	// Both shadow casters use the same preset, so the group count does not
	// grow with the object count. The line contributes nothing.
	if len(groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(groups))
	}
	total := 0
	for _, g := range groups {
		total += len(g.clones)
	}
	if total != 6 {
		t.Errorf("total clones = %d, want 6", total)
	}
}

func TestNoShadowGroupsWithoutElevation(t *testing.T) {
	objects := []Object{
		{Shape: RectShape{}, Visible: true, Bounds: Rect{0, 0, 10, 10}},
	}
	if groups := buildShadowGroups(objects, Rect{0, 0, 100, 100}); groups != nil {
		t.Errorf("groups = %v, want nil for unelevated scene", groups)
	}
}

func TestShadowPresetsCoverLevelsOneToFive(t *testing.T) {
	for level := 1; level <= 5; level++ {
		layers, ok := shadowPresets[level]
		if !ok {
			t.Fatalf("no preset for elevation %d", level)
		}
		if len(layers) != 3 {
			t.Errorf("elevation %d has %d layers, want 3", level, len(layers))
		}
	}
	if _, ok := shadowPresets[0]; ok {
		t.Error("elevation 0 must not have a preset")
	}
}
