package drake

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float fields on a scene object simultaneously.
// Create one via the convenience constructors (TweenBounds, TweenColor,
// TweenRotation) and call Update(dt) each frame. The group resolves its
// target by id on every update, so it stays valid across pool compaction.
// If the object has been removed, the group stops immediately.
//
// There is no global animation manager — users call Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	engine *Engine
	id     uint32
	apply  func(obj *Object, vals [4]float32)
	Done   bool
}

// Update advances all tweens by dt seconds and writes the values to the
// target object. If the object no longer exists, Done is set and no writes
// occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	obj := g.engine.Find(g.id)
	if obj == nil {
		g.Done = true
		return
	}

	var vals [4]float32
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		vals[i] = val
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
	g.apply(obj, vals)
}

// TweenBounds animates an object's position to the given coordinates over
// the specified duration using the easing function. Size is unchanged.
func TweenBounds(e *Engine, id uint32, toX, toY float32, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, engine: e, id: id}
	obj := e.Find(id)
	if obj == nil {
		g.Done = true
		return g
	}
	g.tweens[0] = gween.New(obj.Bounds.X, toX, duration, fn)
	g.tweens[1] = gween.New(obj.Bounds.Y, toY, duration, fn)
	g.apply = func(obj *Object, vals [4]float32) {
		obj.Bounds.X = vals[0]
		obj.Bounds.Y = vals[1]
	}
	return g
}

// TweenColor animates all four components of an object's color to the
// target color over the specified duration.
func TweenColor(e *Engine, id uint32, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 4, engine: e, id: id}
	obj := e.Find(id)
	if obj == nil {
		g.Done = true
		return g
	}
	g.tweens[0] = gween.New(obj.Color.R, to.R, duration, fn)
	g.tweens[1] = gween.New(obj.Color.G, to.G, duration, fn)
	g.tweens[2] = gween.New(obj.Color.B, to.B, duration, fn)
	g.tweens[3] = gween.New(obj.Color.A, to.A, duration, fn)
	g.apply = func(obj *Object, vals [4]float32) {
		obj.Color = Color{vals[0], vals[1], vals[2], vals[3]}
	}
	return g
}

// TweenAlpha animates an object's alpha to the target value.
func TweenAlpha(e *Engine, id uint32, to float32, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, engine: e, id: id}
	obj := e.Find(id)
	if obj == nil {
		g.Done = true
		return g
	}
	g.tweens[0] = gween.New(obj.Color.A, to, duration, fn)
	g.apply = func(obj *Object, vals [4]float32) {
		obj.Color.A = vals[0]
	}
	return g
}

// TweenRotation animates an object's rotation angle, in degrees, to the
// target value.
func TweenRotation(e *Engine, id uint32, to float32, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, engine: e, id: id}
	obj := e.Find(id)
	if obj == nil {
		g.Done = true
		return g
	}
	g.tweens[0] = gween.New(obj.Rotation, to, duration, fn)
	g.apply = func(obj *Object, vals [4]float32) {
		obj.Rotation = vals[0]
	}
	return g
}
