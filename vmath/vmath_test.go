package vmath

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestDistanceAndAngle(t *testing.T) {
	a := Vec2{10, 10}
	b := Vec2{13, 14}

	if d := Distance(a, b); math.Abs(d-5) > eps {
		t.Errorf("Distance = %f, want 5", d)
	}
	if d := Distance(b, a); math.Abs(d-5) > eps {
		t.Errorf("Distance should be symmetric, got %f", d)
	}

	if ang := Angle(Vec2{0, 0}, Vec2{0, 1}); math.Abs(ang-math.Pi/2) > eps {
		t.Errorf("Angle up = %f, want π/2", ang)
	}

	// Polar round trip
	off := FromPolar(Angle(a, b), 5)
	got := V2Add(a, off)
	if Distance(got, b) > 1e-6 {
		t.Errorf("FromPolar round trip landed at %v, want %v", got, b)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{5, 10, 90, 10},
		{95, 10, 90, 90},
		{50, 10, 90, 50},
		{10, 10, 90, 10},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%v,%v,%v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}

	v := ClampVec(Vec2{-3, 120}, 15, 85)
	if v.X != 15 || v.Y != 85 {
		t.Errorf("ClampVec = %v, want {15 85}", v)
	}
	if !InBox(v, 15, 85) {
		t.Error("clamped vector should be in box")
	}
	if InBox(Vec2{14.9, 50}, 15, 85) {
		t.Error("14.9 should be outside [15,85]")
	}
}

func TestAngleHelpers(t *testing.T) {
	if a := NormalizeAngle(-math.Pi / 2); math.Abs(a-3*math.Pi/2) > eps {
		t.Errorf("NormalizeAngle(-π/2) = %f", a)
	}
	if a := NormalizeAngle(5 * math.Pi); math.Abs(a-math.Pi) > eps {
		t.Errorf("NormalizeAngle(5π) = %f", a)
	}

	tests := []struct {
		from, to, want float64
	}{
		{0, math.Pi / 4, math.Pi / 4},
		{math.Pi / 4, 0, -math.Pi / 4},
		{0.1, 2*math.Pi - 0.1, -0.2},
		{2*math.Pi - 0.1, 0.1, 0.2},
	}
	for _, tt := range tests {
		if got := AngleDiff(tt.from, tt.to); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("AngleDiff(%f,%f) = %f, want %f", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	if n := V2Normalize(Vec2{}); n != (Vec2{}) {
		t.Errorf("zero vector should normalize to zero, got %v", n)
	}
	n := V2Normalize(Vec2{3, 4})
	if math.Abs(V2Mag(n)-1) > eps {
		t.Errorf("normalized magnitude = %f", V2Mag(n))
	}
}

func TestFastRandRange(t *testing.T) {
	r := NewFastRand(42)
	for i := 0; i < 10000; i++ {
		f := r.Float64()
		if f < 0 || f >= 1 {
			t.Fatalf("Float64 out of range: %f", f)
		}
		v := Range(r, 35, 60)
		if v < 35 || v >= 60 {
			t.Fatalf("Range out of bounds: %f", v)
		}
		if n := Intn(r, 7); n < 0 || n >= 7 {
			t.Fatalf("Intn out of bounds: %d", n)
		}
	}

	// Same seed, same stream
	a, b := NewFastRand(7), NewFastRand(7)
	for i := 0; i < 100; i++ {
		if a.Next() != b.Next() {
			t.Fatal("seeded generators diverged")
		}
	}

	// Zero seed must not lock at zero
	z := NewFastRand(0)
	if z.Next() == 0 {
		t.Error("zero seed produced a stuck generator")
	}
}

func TestScriptedRand(t *testing.T) {
	s := NewScriptedRand(0.1, 0.9)
	if s.Float64() != 0.1 || s.Float64() != 0.9 || s.Float64() != 0.1 {
		t.Error("scripted rand should cycle through values")
	}
	if s.Draws() != 3 {
		t.Errorf("Draws = %d, want 3", s.Draws())
	}

	if !Chance(NewScriptedRand(0.01), 0.012) {
		t.Error("0.01 < 0.012 should succeed")
	}
	if Chance(NewScriptedRand(0.5), 0.012) {
		t.Error("0.5 should fail a 1.2% chance")
	}

	if got := Pick(NewScriptedRand(0.99), []string{"a", "b", "c"}); got != "c" {
		t.Errorf("Pick = %q, want c", got)
	}
	if got := Pick[string](NewScriptedRand(0.5), nil); got != "" {
		t.Errorf("Pick on empty = %q", got)
	}
}
