// Package drake is a retained-mode 2D shape engine for [Ebitengine].
//
// Clients register drawable shapes — rectangles, rounded rectangles,
// circles, text glyphs, and poly-lines — into an identity-addressed object
// pool owned by an [Engine]. Each frame, [Engine.Render] lazily re-sorts the
// pool by z-index and draw state, expands elevated shapes into blurred
// Material-style shadow layers, tessellates line geometry, and submits
// everything as a minimal sequence of batched draw calls against the target
// image.
//
// # Quick start
//
// Create an engine and implement [ebiten.Game] around it:
//
//	eng := drake.New(640, 480)
//	id := eng.AddRect(drake.Rect{X: 10, Y: 10, Width: 100, Height: 50},
//		drake.Color{R: 0.3, G: 0.7, B: 1, A: 1}, 0, 0,
//		drake.Rect{0, 0, 1, 1}, 0, drake.Color{})
//
//	type Game struct{ eng *drake.Engine }
//
//	func (g *Game) Update() error              { return nil }
//	func (g *Game) Draw(screen *ebiten.Image)  { g.eng.Render(screen) }
//	func (g *Game) Layout(w, h int) (int, int) { return 640, 480 }
//
// Objects are addressed by uint32 ids; 0 is the universal invalid sentinel.
// Ids are monotonically increasing and never reused within a session.
// Mutation calls against unknown ids are silent no-ops, and every call
// against a shut-down engine is a logged no-op with a safe sentinel return —
// nothing in the engine is fatal.
//
// The engine is single-threaded: all mutation and rendering must happen on
// the goroutine owning the graphics context.
//
// [Ebitengine]: https://ebitengine.org
package drake
