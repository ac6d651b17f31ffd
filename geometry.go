package drake

import (
	"github.com/chewxy/math32"
	"github.com/hajimehoshi/ebiten/v2"
)

// curveSamplesPerSegment is the fixed Catmull-Rom tessellation density.
const curveSamplesPerSegment = 20

// minSegmentLength is the threshold below which a line segment is considered
// degenerate and skipped during quad generation.
const minSegmentLength = 1e-3

// texRect is the pixel-space region of the source image an object samples.
// Normalized UVs are mapped into this region when vertices are built.
type texRect struct {
	x0, y0, x1, y1 float32
}

// appendObjectVertices converts one object's semantic shape into GPU
// vertices appended to dst. Positions run through mvp (projection × model)
// and back to target pixels; Custom0/Custom1 carry the normalized shape UV
// the builtin shaders evaluate signed distance fields against.
//
// Returns the extended slice and the number of vertices appended.
func appendObjectVertices(dst []ebiten.Vertex, obj *Object, mvp mat4, targetW, targetH float32, src texRect) ([]ebiten.Vertex, int) {
	start := len(dst)

	switch shape := obj.Shape.(type) {
	case GlyphShape:
		dst = appendGlyphQuad(dst, obj, shape, mvp, targetW, targetH, src)
	case LineShape:
		dst = appendLineQuads(dst, shape, mvp, targetW, targetH, src)
	default:
		dst = appendBoundsQuad(dst, obj, mvp, targetW, targetH, src)
	}

	return dst, len(dst) - start
}

// vertexAt builds one vertex: position through the mvp and NDC→pixel
// mapping, normalized UV into the source region, shape UV into Custom0/1.
func vertexAt(x, y, u, v, gu, gv float32, mvp mat4, targetW, targetH float32, src texRect) ebiten.Vertex {
	ndcX, ndcY := mvp.apply(x, y)
	dx, dy := ndcToTarget(ndcX, ndcY, targetW, targetH)
	return ebiten.Vertex{
		DstX:    dx,
		DstY:    dy,
		SrcX:    src.x0 + u*(src.x1-src.x0),
		SrcY:    src.y0 + v*(src.y1-src.y0),
		ColorR:  1,
		ColorG:  1,
		ColorB:  1,
		ColorA:  1,
		Custom0: gu,
		Custom1: gv,
	}
}

// appendBoundsQuad emits the two triangles spanning the object bounds, used
// by Rect, RoundedRect, and Circle shapes. The UV sub-rectangle convention
// follows the object's UVRect: (X, Y) is the top-left UV corner and
// (Width, Height) is the bottom-right UV corner.
func appendBoundsQuad(dst []ebiten.Vertex, obj *Object, mvp mat4, targetW, targetH float32, src texRect) []ebiten.Vertex {
	x1 := obj.Bounds.X
	y1 := obj.Bounds.Y
	x2 := obj.Bounds.X + obj.Bounds.Width
	y2 := obj.Bounds.Y + obj.Bounds.Height
	u1, v1 := obj.UVRect.X, obj.UVRect.Y
	u2, v2 := obj.UVRect.Width, obj.UVRect.Height

	return append(dst,
		vertexAt(x1, y1, u1, v1, 0, 0, mvp, targetW, targetH, src),
		vertexAt(x1, y2, u1, v2, 0, 1, mvp, targetW, targetH, src),
		vertexAt(x2, y1, u2, v1, 1, 0, mvp, targetW, targetH, src),

		vertexAt(x2, y1, u2, v1, 1, 0, mvp, targetW, targetH, src),
		vertexAt(x1, y2, u1, v2, 0, 1, mvp, targetW, targetH, src),
		vertexAt(x2, y2, u2, v2, 1, 1, mvp, targetW, targetH, src),
	)
}

// appendGlyphQuad emits a glyph quad from its four precomputed corners.
func appendGlyphQuad(dst []ebiten.Vertex, obj *Object, g GlyphShape, mvp mat4, targetW, targetH float32, src texRect) []ebiten.Vertex {
	u1, v1 := obj.UVRect.X, obj.UVRect.Y
	u2, v2 := obj.UVRect.Width, obj.UVRect.Height

	return append(dst,
		vertexAt(g.V0.X, g.V0.Y, u1, v1, 0, 0, mvp, targetW, targetH, src),
		vertexAt(g.V3.X, g.V3.Y, u1, v2, 0, 1, mvp, targetW, targetH, src),
		vertexAt(g.V1.X, g.V1.Y, u2, v1, 1, 0, mvp, targetW, targetH, src),

		vertexAt(g.V1.X, g.V1.Y, u2, v1, 1, 0, mvp, targetW, targetH, src),
		vertexAt(g.V2.X, g.V2.Y, u2, v2, 1, 1, mvp, targetW, targetH, src),
		vertexAt(g.V3.X, g.V3.Y, u1, v2, 0, 1, mvp, targetW, targetH, src),
	)
}

// appendLineQuads tessellates the line and emits one thick quad per
// non-degenerate sample segment. The shape UV's Y component encodes the
// signed distance across the stroke for the line shader's falloff.
func appendLineQuads(dst []ebiten.Vertex, shape LineShape, mvp mat4, targetW, targetH float32, src texRect) []ebiten.Vertex {
	points := linePoints(shape)
	half := shape.Width / 2

	for seg := 0; seg+1 < len(points); seg++ {
		p1 := points[seg]
		p2 := points[seg+1]
		dir := p2.Sub(p1)

		length := dir.Len()
		if length < minSegmentLength {
			continue
		}

		perp := Vec2{-dir.Y / length * half, dir.X / length * half}

		v0 := Vec2{p1.X + perp.X, p1.Y + perp.Y}
		v1 := Vec2{p1.X - perp.X, p1.Y - perp.Y}
		v2 := Vec2{p2.X - perp.X, p2.Y - perp.Y}
		v3 := Vec2{p2.X + perp.X, p2.Y + perp.Y}

		dst = append(dst,
			vertexAt(v0.X, v0.Y, 0, 0, 0, 1, mvp, targetW, targetH, src),
			vertexAt(v1.X, v1.Y, 0, 1, 0, 0, mvp, targetW, targetH, src),
			vertexAt(v3.X, v3.Y, 1, 0, 1, 1, mvp, targetW, targetH, src),

			vertexAt(v1.X, v1.Y, 0, 1, 0, 0, mvp, targetW, targetH, src),
			vertexAt(v2.X, v2.Y, 1, 1, 1, 0, mvp, targetW, targetH, src),
			vertexAt(v3.X, v3.Y, 1, 0, 1, 1, mvp, targetW, targetH, src),
		)
	}

	return dst
}

// linePoints builds the renderable point sequence for a line shape:
// [start, controls…, end] for straight mode, or the Catmull-Rom tessellation
// of that sequence for curved mode.
func linePoints(shape LineShape) []Vec2 {
	all := make([]Vec2, 0, len(shape.Controls)+2)
	all = append(all, shape.Start)
	all = append(all, shape.Controls...)
	all = append(all, shape.End)

	if shape.Mode == LineStraight {
		return all
	}
	return tessellateCatmullRom(synthesizeControl(all, shape), shape.End)
}

// synthesizeControl injects one midpoint control when a curved line has
// none: offset perpendicular to start→end by a quarter of the segment
// length, producing a gentle arc bulge.
func synthesizeControl(all []Vec2, shape LineShape) []Vec2 {
	if len(shape.Controls) != 0 || len(all) < 2 {
		return all
	}

	dir := shape.End.Sub(shape.Start)
	length := dir.Len()
	if length <= 1e-6 {
		return all
	}

	perp := Vec2{-dir.Y / length, dir.X / length}
	mid := Vec2{
		X: (shape.Start.X+shape.End.X)/2 + perp.X*(length/4),
		Y: (shape.Start.Y+shape.End.Y)/2 + perp.Y*(length/4),
	}
	return []Vec2{shape.Start, mid, shape.End}
}

// tessellateCatmullRom interpolates a cubic Catmull-Rom curve through the
// control polygon, clamping out-of-range neighbor indices to the nearest
// endpoint. Each consecutive point pair yields a fixed number of samples;
// the very last sample is forced to the exact end point so floating-point
// drift cannot miss the target.
func tessellateCatmullRom(ctrl []Vec2, end Vec2) []Vec2 {
	if len(ctrl) < 2 {
		return nil
	}

	out := make([]Vec2, 0, (len(ctrl)-1)*curveSamplesPerSegment)

	for i := 0; i+1 < len(ctrl); i++ {
		p0 := ctrl[max(i-1, 0)]
		p1 := ctrl[i]
		p2 := ctrl[i+1]
		p3 := ctrl[min(i+2, len(ctrl)-1)]

		for k := 0; k < curveSamplesPerSegment; k++ {
			t := float32(k) / float32(curveSamplesPerSegment-1)
			t2 := t * t
			t3 := t2 * t

			out = append(out, Vec2{
				X: 0.5 * ((-t3+2*t2-t)*p0.X + (3*t3-5*t2+2)*p1.X + (-3*t3+4*t2+t)*p2.X + (t3-t2)*p3.X),
				Y: 0.5 * ((-t3+2*t2-t)*p0.Y + (3*t3-5*t2+2)*p1.Y + (-3*t3+4*t2+t)*p2.Y + (t3-t2)*p3.Y),
			})
		}
	}

	if len(out) > 0 {
		out[len(out)-1] = end
	}
	return out
}

// lineGeometry computes the render metadata stored on a line object at
// insertion: the bounding box of all sample points inflated by half the
// stroke width, and the triangle count (two per sample segment).
func lineGeometry(shape LineShape) (Rect, int) {
	points := linePoints(shape)

	minX, maxX := shape.Start.X, shape.Start.X
	minY, maxY := shape.Start.Y, shape.Start.Y
	for _, p := range points {
		minX = math32.Min(minX, p.X)
		maxX = math32.Max(maxX, p.X)
		minY = math32.Min(minY, p.Y)
		maxY = math32.Max(maxY, p.Y)
	}

	segments := 0
	if len(points) > 1 {
		segments = len(points) - 1
	}

	half := shape.Width / 2
	bounds := Rect{
		X:      minX - half,
		Y:      minY - half,
		Width:  maxX - minX + shape.Width,
		Height: maxY - minY + shape.Width,
	}
	return bounds, segments * 2
}
