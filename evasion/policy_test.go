package evasion

import (
	"math"
	"testing"

	"github.com/lixenwraith/hover-hell/parameter"
	"github.com/lixenwraith/hover-hell/vmath"
)

func newTestPolicy(rng vmath.Rand) (*Policy, *parameter.Tuning) {
	tun := parameter.Default()
	return NewPolicy(&tun, rng), &tun
}

func near(a, b vmath.Vec2) bool {
	return vmath.Distance(a, b) < 1e-6
}

func TestClassify(t *testing.T) {
	p, _ := newTestPolicy(vmath.NewScriptedRand())
	tests := []struct {
		d    float64
		want Tier
	}{
		{0, TierFlee},
		{29.99, TierFlee},
		{30, TierNervous},
		{49.99, TierNervous},
		{50, TierCalm},
		{120, TierCalm},
	}
	for _, tt := range tests {
		if got := p.Classify(tt.d); got != tt.want {
			t.Errorf("Classify(%v) = %s, want %s", tt.d, got, tt.want)
		}
	}
}

func TestFleeInBounds(t *testing.T) {
	p, tun := newTestPolicy(vmath.NewScriptedRand(0.0))

	out := p.Next(Input{
		Pointer:   vmath.Vec2{X: 45, Y: 50},
		Target:    TargetState{Pos: vmath.Vec2{X: 50, Y: 50}},
		AreaReady: true,
	})

	if out.Tier != TierFlee {
		t.Fatalf("tier = %s, want flee", out.Tier)
	}
	if out.Target.Mode != ModeFlee {
		t.Fatalf("mode = %s, want flee", out.Target.Mode)
	}
	// Minimum escape straight along +x
	if !near(out.Target.Pos, vmath.Vec2{X: 85, Y: 50}) {
		t.Errorf("pos = %v, want {85 50}", out.Target.Pos)
	}
	if out.Shake != tun.ShakeFlee {
		t.Errorf("shake = %v, want %v", out.Shake, tun.ShakeFlee)
	}
	if math.Abs(out.Target.Size-(1+tun.ShakeFlee*sizePerShake)) > 1e-9 {
		t.Errorf("size = %v", out.Target.Size)
	}
	if out.Taunts != 2 {
		t.Errorf("taunts = %d, want 2 with zero draws", out.Taunts)
	}
}

func TestFleeOutOfBoundsTeleportsDiagonal(t *testing.T) {
	p, _ := newTestPolicy(vmath.NewScriptedRand(0.5))

	out := p.Next(Input{
		Pointer:   vmath.Vec2{X: 45, Y: 50},
		Target:    TargetState{Pos: vmath.Vec2{X: 50, Y: 50}},
		AreaReady: true,
	})

	if out.Target.Mode != ModeTeleport {
		t.Fatalf("mode = %s, want teleport", out.Target.Mode)
	}
	// x: pointer left half -> far band midpoint; y: pointer on 50 -> near band midpoint
	if !near(out.Target.Pos, vmath.Vec2{X: 82.5, Y: 17.5}) {
		t.Errorf("pos = %v, want {82.5 17.5}", out.Target.Pos)
	}
	if out.Taunts != 1 {
		t.Errorf("taunts = %d, want 1", out.Taunts)
	}
}

// Every flee move nets more separation, and teleports land diagonal to the pointer
func TestFleeAlwaysIncreasesSeparation(t *testing.T) {
	rng := vmath.NewFastRand(1234)
	p, tun := newTestPolicy(rng)

	for i := 0; i < 5000; i++ {
		target := vmath.Vec2{X: vmath.Range(rng, 10, 90), Y: vmath.Range(rng, 10, 90)}
		off := vmath.FromPolar(vmath.Range(rng, 0, 2*math.Pi), vmath.Range(rng, 0, tun.FleeDistance))
		pointer := vmath.ClampVec(vmath.V2Add(target, off), 0, 100)
		d := vmath.Distance(pointer, target)
		if d >= tun.FleeDistance {
			continue
		}

		out := p.Next(Input{
			Pointer:    pointer,
			Target:     TargetState{Pos: target},
			Encouraged: i%2 == 0,
			AreaReady:  true,
		})
		nd := vmath.Distance(pointer, out.Target.Pos)

		if nd <= d {
			t.Fatalf("flee did not increase separation: pointer=%v target=%v d=%f nd=%f", pointer, target, d, nd)
		}
		if !vmath.InBox(out.Target.Pos, tun.FleeBoundMin, tun.FleeBoundMax) {
			t.Fatalf("flee landed out of bounds: %v", out.Target.Pos)
		}

		if out.Target.Mode == ModeTeleport {
			for _, axis := range [][2]float64{{pointer.X, out.Target.Pos.X}, {pointer.Y, out.Target.Pos.Y}} {
				if axis[0] < 50 && axis[1] < tun.CornerFarMin {
					t.Fatalf("teleport not diagonal: pointer=%v pos=%v", pointer, out.Target.Pos)
				}
				if axis[0] >= 50 && axis[1] > tun.CornerNearMax {
					t.Fatalf("teleport not diagonal: pointer=%v pos=%v", pointer, out.Target.Pos)
				}
			}
		} else if out.Target.Mode != ModeFlee {
			t.Fatalf("unexpected mode %s", out.Target.Mode)
		}
	}
}

func TestEncouragedFleeNarrowsEscape(t *testing.T) {
	p, tun := newTestPolicy(vmath.NewScriptedRand(0.99))
	in := Input{
		Pointer:    vmath.Vec2{X: 20, Y: 50},
		Target:     TargetState{Pos: vmath.Vec2{X: 25, Y: 50}},
		Encouraged: true,
		AreaReady:  true,
	}
	out := p.Next(in)
	want := 25 + tun.FleeEscapeMin + (tun.FleeEscapeMax-tun.FleeEscapeMin)*tun.EncouragedScale*0.99
	if out.Target.Mode != ModeFlee || math.Abs(out.Target.Pos.X-want) > 1e-9 {
		t.Errorf("encouraged flee pos = %v mode=%s, want x=%f", out.Target.Pos, out.Target.Mode, want)
	}
}

func TestNervousScenario(t *testing.T) {
	rng := vmath.NewFastRand(99)
	p, tun := newTestPolicy(rng)

	prior := vmath.Vec2{X: 50, Y: 50}
	pointer := vmath.Vec2{X: 90, Y: 50} // distance 40
	for i := 0; i < 2000; i++ {
		out := p.Next(Input{Pointer: pointer, Target: TargetState{Pos: prior}, AreaReady: true})
		if out.Tier != TierNervous {
			t.Fatalf("tier = %s, want nervous", out.Tier)
		}
		assertNervousMove(t, tun, prior, out)
	}
}

func TestNervousNearEdgeKeepsStepLength(t *testing.T) {
	rng := vmath.NewFastRand(5)
	p, tun := newTestPolicy(rng)

	for i := 0; i < 2000; i++ {
		prior := vmath.Vec2{X: vmath.Range(rng, 15, 85), Y: vmath.Range(rng, 15, 85)}
		pointer := vmath.V2Add(prior, vmath.FromPolar(vmath.Range(rng, 0, 2*math.Pi), 40))
		out := p.Next(Input{Pointer: pointer, Target: TargetState{Pos: prior}, AreaReady: true})
		assertNervousMove(t, tun, prior, out)
	}
}

func assertNervousMove(t *testing.T, tun *parameter.Tuning, prior vmath.Vec2, out Outcome) {
	t.Helper()
	if out.Target.Mode != ModeNervous {
		t.Fatalf("mode = %s, want nervous", out.Target.Mode)
	}
	if !vmath.InBox(out.Target.Pos, tun.NervousBoundMin, tun.NervousBoundMax) {
		t.Fatalf("nervous pos %v outside [%v,%v]", out.Target.Pos, tun.NervousBoundMin, tun.NervousBoundMax)
	}
	step := vmath.Distance(prior, out.Target.Pos)
	if step < tun.NervousStepMin-1e-9 || step > tun.NervousStepMax+1e-9 {
		t.Fatalf("nervous step %f outside [%v,%v] from %v", step, tun.NervousStepMin, tun.NervousStepMax, prior)
	}
	if out.Shake != tun.ShakeNervous {
		t.Fatalf("shake = %v, want %v", out.Shake, tun.ShakeNervous)
	}
}

func TestCalmModeSelection(t *testing.T) {
	far := Input{
		Pointer:   vmath.Vec2{X: 90, Y: 90},
		Target:    TargetState{Pos: vmath.Vec2{X: 20, Y: 20}},
		AreaReady: true,
	}

	tests := []struct {
		draw      float64
		wantMode  Mode
		wantShake func(*parameter.Tuning) float64
	}{
		{0.1, ModeTeleport, func(t *parameter.Tuning) float64 { return t.ShakeTeleport }},
		{0.3, ModeDrift, func(t *parameter.Tuning) float64 { return t.ShakeCalm }},
		{0.9, ModeOrbit, func(t *parameter.Tuning) float64 { return t.ShakeCalm }},
	}
	for _, tt := range tests {
		p, tun := newTestPolicy(vmath.NewScriptedRand(tt.draw))
		out := p.Next(far)
		if out.Tier != TierCalm {
			t.Fatalf("tier = %s, want calm", out.Tier)
		}
		if out.Target.Mode != tt.wantMode {
			t.Errorf("draw %v: mode = %s, want %s", tt.draw, out.Target.Mode, tt.wantMode)
		}
		if out.Shake != tt.wantShake(tun) {
			t.Errorf("draw %v: shake = %v", tt.draw, out.Shake)
		}
		if !vmath.InBox(out.Target.Pos, tun.CalmBoundMin, tun.CalmBoundMax) {
			t.Errorf("draw %v: pos %v out of calm bounds", tt.draw, out.Target.Pos)
		}
	}
}

func TestOrbitAvoidsPointerHeading(t *testing.T) {
	// Elapsed 0: heading 0, radius = base
	p, tun := newTestPolicy(vmath.NewScriptedRand(0.9))
	out := p.Next(Input{
		Pointer:   vmath.Vec2{X: 100, Y: 50}, // heading 0 from center, on the orbit path
		Target:    TargetState{Pos: vmath.Vec2{X: 20, Y: 20}},
		AreaReady: true,
	})
	want := vmath.Vec2{X: 50, Y: 50 + tun.OrbitBaseRadius}
	if !near(out.Target.Pos, want) {
		t.Errorf("orbit with pointer on path = %v, want %v", out.Target.Pos, want)
	}

	p, _ = newTestPolicy(vmath.NewScriptedRand(0.9))
	out = p.Next(Input{
		Pointer:   vmath.Vec2{X: 0, Y: 50}, // opposite side, no adjustment
		Target:    TargetState{Pos: vmath.Vec2{X: 90, Y: 90}},
		AreaReady: true,
	})
	want = vmath.Vec2{X: 50 + tun.OrbitBaseRadius, Y: 50}
	if !near(out.Target.Pos, want) {
		t.Errorf("orbit with pointer away = %v, want %v", out.Target.Pos, want)
	}
}

func TestOrbitRadiusBreathes(t *testing.T) {
	tun := parameter.Default()
	for _, elapsed := range []float64{0, 1, 2.5, 7, 30} {
		r := OrbitRadius(&tun, elapsed)
		if r < tun.OrbitBaseRadius-tun.OrbitRadiusSwing || r > tun.OrbitBaseRadius+tun.OrbitRadiusSwing {
			t.Errorf("radius %f out of swing at t=%v", r, elapsed)
		}
		a := OrbitAngle(&tun, elapsed)
		if a < 0 || a >= 2*math.Pi {
			t.Errorf("angle %f not normalized", a)
		}
	}
}

func TestUnreadyAreaFallsBackToCenter(t *testing.T) {
	rng := vmath.NewScriptedRand(0.3)
	p, _ := newTestPolicy(rng)
	out := p.Next(Input{
		Pointer: vmath.Vec2{X: 48, Y: 50},
		Target:  TargetState{Pos: vmath.Vec2{X: 50, Y: 50}},
	})
	if out.Target.Pos != vmath.Center {
		t.Errorf("unready area pos = %v, want center", out.Target.Pos)
	}
	if out.Shake != 0 || out.Taunts != 0 {
		t.Error("unready area should not shake or taunt")
	}
	if rng.Draws() != 0 {
		t.Errorf("unready area consumed %d draws", rng.Draws())
	}
}

func TestTauntRatesByTier(t *testing.T) {
	rng := vmath.NewFastRand(77)
	p, _ := newTestPolicy(rng)

	counts := map[Tier]int{}
	const n = 4000
	for i := 0; i < n; i++ {
		counts[TierFlee] += p.taunts(TierFlee)
		counts[TierCalm] += p.taunts(TierCalm)
	}
	if counts[TierFlee] <= counts[TierCalm] {
		t.Errorf("flee tier should taunt more: flee=%d calm=%d", counts[TierFlee], counts[TierCalm])
	}
}
