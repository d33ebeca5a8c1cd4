// Package object holds the game entities: ship, bullets, asteroids, saucers
// and particles.
package object

import (
	"time"

	"github.com/tomz197/asteroids-arcade/internal/draw"
	"github.com/tomz197/asteroids-arcade/internal/input"
	"github.com/tomz197/asteroids-arcade/internal/physics"
)

// Intents is an alias for the input package's per-frame intents.
type Intents = input.Intents

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Delta time.Duration
	World Screen
	Ship  ShipView // Read-only ship snapshot (saucers aim with it)
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas
	World  Screen
}

// Screen holds the world dimensions in logical pixels.
type Screen struct {
	Width   int
	Height  int
	CenterX int
	CenterY int
}

// NewScreen builds a Screen with its center precomputed.
func NewScreen(width, height int) Screen {
	return Screen{Width: width, Height: height, CenterX: width / 2, CenterY: height / 2}
}

// Center returns the middle of the world.
func (s Screen) Center() physics.Vec {
	return physics.Vec{X: float64(s.CenterX), Y: float64(s.CenterY)}
}

// Wrap maps p back onto the torus (Asteroids-style).
func (s Screen) Wrap(p physics.Vec) physics.Vec {
	return physics.Wrap(p, float64(s.Width), float64(s.Height))
}

// Object is a drawable and updatable game entity.
type Object interface {
	// Update advances the object. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool)
	// Draw draws the object onto ctx.Canvas.
	Draw(ctx DrawContext)
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	// Release returns the object to its pool for reuse.
	Release()
}

// ReleaseObject releases an object back to its pool if it implements Releasable.
func ReleaseObject(obj Object) {
	if r, ok := obj.(Releasable); ok {
		r.Release()
	}
}

// ScreenPositions holds up to 4 draw positions for world-wrapped objects.
// Using a fixed array avoids allocations in the hot rendering path.
type ScreenPositions struct {
	Positions [4]draw.Point
	Count     int
}

// WrapCopies returns where an object of the given radius must be drawn so
// that it shows on both sides of any edge it straddles.
func WrapCopies(pos physics.Vec, radius float64, world Screen) ScreenPositions {
	var result ScreenPositions

	w := float64(world.Width)
	h := float64(world.Height)

	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			x := pos.X + float64(dx)*w
			y := pos.Y + float64(dy)*h
			if x+radius < 0 || x-radius > w || y+radius < 0 || y-radius > h {
				continue
			}
			if result.Count < len(result.Positions) {
				result.Positions[result.Count] = draw.Point{X: x, Y: y}
				result.Count++
			}
		}
	}

	return result
}

// drawShape draws a closed outline given in local coordinates (already
// rotated) at every wrapped copy of pos.
func drawShape(ctx DrawContext, pos physics.Vec, radius float64, local []physics.Vec) {
	copies := WrapCopies(pos, radius, ctx.World)
	for i := 0; i < copies.Count; i++ {
		at := copies.Positions[i]
		points := ctx.Canvas.BorrowPoints(len(local))
		for j, p := range local {
			points[j] = draw.Point{X: at.X + p.X, Y: at.Y + p.Y}
		}
		ctx.Canvas.DrawPolygon(points, false)
	}
}
