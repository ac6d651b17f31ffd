package drake

import "github.com/chewxy/math32"

// clipFrame is one entry of the container stack: the scissor rectangle in
// effect inside the container and the accumulated translation of nested
// container origins.
type clipFrame struct {
	clip   Rect
	offset Vec2
}

// containerStack tracks nested clip scopes. Objects added while a container
// is open capture the top clip rectangle permanently.
//
// The accumulated offset translates NESTED CONTAINER BOUNDS only — it is
// deliberately not applied to object coordinates. Containers used to act as
// local coordinate origins as well, but that feature produced compounding
// drift and was removed; they are now pure clip scopes. Object bounds are
// always screen-absolute.
type containerStack struct {
	frames []clipFrame
}

// push translates bounds by the current accumulated offset, intersects the
// result with the current top clip (the outermost container is not clamped
// to the screen), and pushes the new frame. Width and height clamp to zero
// on degenerate intersections.
func (cs *containerStack) push(bounds Rect) {
	var offset Vec2
	if n := len(cs.frames); n > 0 {
		offset = cs.frames[n-1].offset
	}

	clip := Rect{
		X:      bounds.X + offset.X,
		Y:      bounds.Y + offset.Y,
		Width:  bounds.Width,
		Height: bounds.Height,
	}
	if n := len(cs.frames); n > 0 {
		clip = clip.Intersect(cs.frames[n-1].clip)
	}
	clip.Width = math32.Max(0, clip.Width)
	clip.Height = math32.Max(0, clip.Height)

	cs.frames = append(cs.frames, clipFrame{
		clip:   clip,
		offset: Vec2{bounds.X + offset.X, bounds.Y + offset.Y},
	})
}

// pop restores the parent frame. No-op on an empty stack: an unbalanced
// EndContainer is defined as harmless.
func (cs *containerStack) pop() {
	if len(cs.frames) == 0 {
		return
	}
	cs.frames = cs.frames[:len(cs.frames)-1]
}

// top returns the clip rectangle new objects must capture: the innermost
// container clip, or the full screen when no container is open.
func (cs *containerStack) top(screen Rect) Rect {
	if n := len(cs.frames); n > 0 {
		return cs.frames[n-1].clip
	}
	return screen
}

// reset drops all frames. Called by Clear.
func (cs *containerStack) reset() {
	cs.frames = cs.frames[:0]
}

// depth returns the current nesting level.
func (cs *containerStack) depth() int {
	return len(cs.frames)
}
