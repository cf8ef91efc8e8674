package evasion

import (
	"math"

	"github.com/lixenwraith/hover-hell/parameter"
	"github.com/lixenwraith/hover-hell/vmath"
)

// sizePerShake is the visual swell of the target per unit of shake
const sizePerShake = 0.1

// Policy decides where the target goes next
// Stateless between moves; all randomness comes from the injected source
type Policy struct {
	tuning *parameter.Tuning
	rng    vmath.Rand
}

func NewPolicy(tuning *parameter.Tuning, rng vmath.Rand) *Policy {
	return &Policy{tuning: tuning, rng: rng}
}

// Classify maps a pointer-to-target distance to its tier
func (p *Policy) Classify(d float64) Tier {
	switch {
	case d < p.tuning.FleeDistance:
		return TierFlee
	case d < p.tuning.NervousDistance:
		return TierNervous
	default:
		return TierCalm
	}
}

// Next computes the target's next state from the current pointer and target
func (p *Policy) Next(in Input) Outcome {
	d := vmath.Distance(in.Pointer, in.Target.Pos)
	tier := p.Classify(d)

	// Unmeasured area: park at the default position, no flair
	if !in.AreaReady {
		return Outcome{
			Target: TargetState{Pos: vmath.Center, Size: 1, Mode: ModeIdle},
			Tier:   tier,
		}
	}

	var next TargetState
	var shake float64

	switch tier {
	case TierFlee:
		next, shake = p.flee(in, d)
	case TierNervous:
		next, shake = p.nervous(in)
	default:
		next, shake = p.calm(in)
	}
	next.Size = 1 + shake*sizePerShake

	return Outcome{
		Target: next,
		Tier:   tier,
		Shake:  shake,
		Taunts: p.taunts(tier),
	}
}

// flee jumps directly away from the pointer, or to the opposite corner when the jump would leave the bounds
func (p *Policy) flee(in Input, d float64) (TargetState, float64) {
	t := p.tuning

	var angle float64
	if d == 0 {
		angle = vmath.Range(p.rng, 0, 2*math.Pi)
	} else {
		angle = vmath.Angle(in.Pointer, in.Target.Pos)
	}

	escMax := t.FleeEscapeMax
	if in.Encouraged {
		escMax = t.FleeEscapeMin + (t.FleeEscapeMax-t.FleeEscapeMin)*t.EncouragedScale
	}
	dist := vmath.Range(p.rng, t.FleeEscapeMin, escMax)

	raw := vmath.V2Add(in.Target.Pos, vmath.FromPolar(angle, dist))
	if vmath.InBox(raw, t.FleeBoundMin, t.FleeBoundMax) {
		return TargetState{Pos: raw, Mode: ModeFlee}, t.ShakeFlee
	}

	return TargetState{Pos: p.oppositeCorner(in.Pointer), Mode: ModeTeleport}, t.ShakeFlee
}

// oppositeCorner picks a point in the quadrant diagonal to the pointer, per axis
func (p *Policy) oppositeCorner(pointer vmath.Vec2) vmath.Vec2 {
	t := p.tuning
	half := parameter.AreaMax / 2

	axis := func(v float64) float64 {
		if v < half {
			return vmath.Range(p.rng, t.CornerFarMin, t.CornerFarMax)
		}
		return vmath.Range(p.rng, t.CornerNearMin, t.CornerNearMax)
	}

	x := axis(pointer.X)
	y := axis(pointer.Y)
	return vmath.Vec2{X: x, Y: y}
}

// nervous hops a random step; angles that would be clamped are retried so the hop keeps its length
func (p *Policy) nervous(in Input) (TargetState, float64) {
	t := p.tuning
	from := in.Target.Pos

	var dist float64
	for i := 0; i < t.NervousAttempts; i++ {
		angle := vmath.Range(p.rng, 0, 2*math.Pi)
		dist = vmath.Range(p.rng, t.NervousStepMin, t.NervousStepMax)
		raw := vmath.V2Add(from, vmath.FromPolar(angle, dist))
		if vmath.InBox(raw, t.NervousBoundMin, t.NervousBoundMax) {
			return TargetState{Pos: raw, Mode: ModeNervous}, t.ShakeNervous
		}
	}

	// Heading to the center always stays inside the band for steps up to the band half-width
	if dist == 0 {
		dist = t.NervousStepMin
	}
	angle := vmath.Angle(from, vmath.Center)
	if from == vmath.Center {
		angle = 0
	}
	pos := vmath.V2Add(from, vmath.FromPolar(angle, dist))
	pos = vmath.ClampVec(pos, t.NervousBoundMin, t.NervousBoundMax)
	return TargetState{Pos: pos, Mode: ModeNervous}, t.ShakeNervous
}

// calm picks teleport, drift or orbit by weight
func (p *Policy) calm(in Input) (TargetState, float64) {
	t := p.tuning
	total := t.CalmTeleportWeight + t.CalmDriftWeight + t.CalmOrbitWeight
	r := p.rng.Float64() * total

	switch {
	case r < t.CalmTeleportWeight:
		pos := vmath.Vec2{
			X: vmath.Range(p.rng, t.CalmBoundMin, t.CalmBoundMax),
			Y: vmath.Range(p.rng, t.CalmBoundMin, t.CalmBoundMax),
		}
		return TargetState{Pos: pos, Mode: ModeTeleport}, t.ShakeTeleport

	case r < t.CalmTeleportWeight+t.CalmDriftWeight:
		return TargetState{Pos: p.drift(in), Mode: ModeDrift}, t.ShakeCalm

	default:
		return TargetState{Pos: p.orbit(in), Mode: ModeOrbit}, t.ShakeCalm
	}
}

// drift eases toward the center while leaning away from the pointer
func (p *Policy) drift(in Input) vmath.Vec2 {
	t := p.tuning
	pos := in.Target.Pos

	pull := vmath.V2Scale(vmath.V2Sub(vmath.Center, pos), t.DriftPull)
	push := vmath.V2Scale(vmath.V2Normalize(vmath.V2Sub(pos, in.Pointer)), t.DriftPush)
	jitter := vmath.Vec2{
		X: vmath.Range(p.rng, -t.DriftJitter, t.DriftJitter),
		Y: vmath.Range(p.rng, -t.DriftJitter, t.DriftJitter),
	}

	next := vmath.V2Add(vmath.V2Add(pos, pull), vmath.V2Add(push, jitter))
	return vmath.ClampVec(next, t.CalmBoundMin, t.CalmBoundMax)
}

// orbit circles the center on a breathing radius, turning away when the pointer sits on the path
func (p *Policy) orbit(in Input) vmath.Vec2 {
	t := p.tuning
	angle := OrbitAngle(t, in.Elapsed)
	radius := OrbitRadius(t, in.Elapsed)

	pointerAngle := vmath.Angle(vmath.Center, in.Pointer)
	diff := vmath.AngleDiff(pointerAngle, angle)
	if math.Abs(diff) < t.OrbitAvoidArc {
		if diff >= 0 {
			angle += t.OrbitAvoidTurn
		} else {
			angle -= t.OrbitAvoidTurn
		}
	}

	pos := vmath.V2Add(vmath.Center, vmath.FromPolar(angle, radius))
	return vmath.ClampVec(pos, t.CalmBoundMin, t.CalmBoundMax)
}

// OrbitAngle is the unadjusted orbit heading at a session time
func OrbitAngle(t *parameter.Tuning, elapsed float64) float64 {
	return vmath.NormalizeAngle(t.OrbitAngularSpeed * elapsed)
}

// OrbitRadius is the breathing orbit radius at a session time
func OrbitRadius(t *parameter.Tuning, elapsed float64) float64 {
	return t.OrbitBaseRadius + t.OrbitRadiusSwing*math.Sin(t.OrbitSwingFreq*elapsed)
}

// taunts draws the number of taunt intents for a tier
func (p *Policy) taunts(tier Tier) int {
	t := p.tuning
	switch tier {
	case TierFlee:
		if !vmath.Chance(p.rng, t.FleeTauntChance) {
			return 0
		}
		if vmath.Chance(p.rng, t.FleeSecondTauntChance) {
			return 2
		}
		return 1
	case TierNervous:
		if vmath.Chance(p.rng, t.NervousTauntChance) {
			return 1
		}
	default:
		if vmath.Chance(p.rng, t.CalmTauntChance) {
			return 1
		}
	}
	return 0
}
