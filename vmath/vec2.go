package vmath

import (
	"math"
)

// Vec2 is a point or offset in play-area percent space (0..100 per axis)
type Vec2 struct {
	X, Y float64
}

// Center is the middle of the play area
var Center = Vec2{X: 50, Y: 50}

func V2Add(a, b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

func V2Sub(a, b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

func V2Scale(v Vec2, s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func V2Mag(v Vec2) float64 {
	return math.Hypot(v.X, v.Y)
}

// V2Normalize returns the unit vector of v, zero vector stays zero
func V2Normalize(v Vec2) Vec2 {
	mag := V2Mag(v)
	if mag == 0 {
		return Vec2{}
	}
	inv := 1.0 / mag
	return Vec2{v.X * inv, v.Y * inv}
}

// Distance is the Euclidean distance between two points
func Distance(a, b Vec2) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Angle returns the heading from 'from' to 'to' in radians, atan2 convention
func Angle(from, to Vec2) float64 {
	return math.Atan2(to.Y-from.Y, to.X-from.X)
}

// FromPolar builds an offset of length r along angle
func FromPolar(angle, r float64) Vec2 {
	return Vec2{math.Cos(angle) * r, math.Sin(angle) * r}
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampVec limits both axes to [lo, hi]
func ClampVec(v Vec2, lo, hi float64) Vec2 {
	return Vec2{Clamp(v.X, lo, hi), Clamp(v.Y, lo, hi)}
}

// InBox reports whether both axes lie inside [lo, hi]
func InBox(v Vec2, lo, hi float64) bool {
	return v.X >= lo && v.X <= hi && v.Y >= lo && v.Y <= hi
}

// NormalizeAngle wraps an angle into [0, 2π)
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// AngleDiff returns the signed shortest rotation from 'from' to 'to', in (-π, π]
func AngleDiff(from, to float64) float64 {
	d := NormalizeAngle(to - from)
	if d > math.Pi {
		d -= 2 * math.Pi
	}
	return d
}
