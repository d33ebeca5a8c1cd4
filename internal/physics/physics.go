// Package physics provides vector math, torus wrapping and collision tests.
package physics

import "math"

// Vec is a 2D vector in world units (pixels).
type Vec struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

// Scale returns v multiplied by s.
func (v Vec) Scale(s float64) Vec { return Vec{v.X * s, v.Y * s} }

// Len returns the Euclidean length of v.
func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }

// Distance calculates the Euclidean distance between two points.
func Distance(a, b Vec) float64 {
	return math.Sqrt(DistanceSquared(a, b))
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(a, b Vec) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return dx*dx + dy*dy
}

// CirclesOverlap reports whether two circles overlap.
// Touching circles (distance exactly ra+rb) do not overlap.
func CirclesOverlap(a Vec, ra float64, b Vec, rb float64) bool {
	minDist := ra + rb
	return DistanceSquared(a, b) < minDist*minDist
}

// Wrap maps p onto the torus [0,w) x [0,h). Each axis is reduced modulo its
// dimension and the result is never negative.
func Wrap(p Vec, w, h float64) Vec {
	return Vec{X: wrapAxis(p.X, w), Y: wrapAxis(p.Y, h)}
}

// WrapAxis wraps a single coordinate into [0,size).
func WrapAxis(v, size float64) float64 {
	return wrapAxis(v, size)
}

func wrapAxis(v, size float64) float64 {
	if size <= 0 {
		return v
	}
	v = math.Mod(v, size)
	if v < 0 {
		v += size
	}
	// math.Mod can return size itself for tiny negative inputs after the add.
	if v >= size {
		v = 0
	}
	return v
}

// Rotate rotates each point about the origin by degrees using the standard
// rotation matrix. The input slice is not modified.
func Rotate(points []Vec, degrees float64) []Vec {
	rad := degrees * math.Pi / 180
	sin, cos := math.Sincos(rad)
	out := make([]Vec, len(points))
	for i, p := range points {
		out[i] = Vec{
			X: p.X*cos - p.Y*sin,
			Y: p.X*sin + p.Y*cos,
		}
	}
	return out
}

// Heading returns the unit direction for a heading in degrees where 0 points
// to the top of the screen and angles grow clockwise.
func Heading(degrees float64) Vec {
	sin, cos := math.Sincos(degrees * math.Pi / 180)
	return Vec{X: sin, Y: -cos}
}

// FromAngle returns a vector of the given length along a mathematical angle
// in radians (0 = +X, counter-clockwise in screen space is negative Y).
func FromAngle(rad, length float64) Vec {
	sin, cos := math.Sincos(rad)
	return Vec{X: cos * length, Y: sin * length}
}

// ClampLen scales v down to max when it is longer.
func ClampLen(v Vec, max float64) Vec {
	l := v.Len()
	if l > max && l > 0 {
		return v.Scale(max / l)
	}
	return v
}
