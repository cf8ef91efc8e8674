package difficulty

import (
	"time"

	"github.com/lixenwraith/hover-hell/evasion"
	"github.com/lixenwraith/hover-hell/parameter"
	"github.com/lixenwraith/hover-hell/vmath"
)

// Plan is the scheduler output for the next tick
type Plan struct {
	MoveDelay      time.Duration // delay until the next evasion move
	SabotageChance float64       // per-tick probability handed to the progress machine
	Pressure       float64       // interval multiplier in [PressureFloor, 1], 1 = relaxed
}

// Scheduler derives tick pacing from proximity tier, lock-on and encouragement
type Scheduler struct {
	tuning *parameter.Tuning
	rng    vmath.Rand
}

func NewScheduler(tuning *parameter.Tuning, rng vmath.Rand) *Scheduler {
	return &Scheduler{tuning: tuning, rng: rng}
}

// BaseInterval is the un-scaled move delay for a tier, flee fastest
func (s *Scheduler) BaseInterval(tier evasion.Tier) time.Duration {
	switch tier {
	case evasion.TierFlee:
		return s.tuning.FleeInterval
	case evasion.TierNervous:
		return s.tuning.NervousInterval
	default:
		return s.tuning.CalmInterval
	}
}

// Pressure shrinks linearly from 1 at zero lock-on to the floor at the win threshold
func (s *Scheduler) Pressure(lockOn float64) float64 {
	t := s.tuning
	frac := lockOn / t.WinThreshold
	switch {
	case frac <= 0:
		return 1
	case frac >= 1:
		return t.PressureFloor
	}
	return t.PressureFloor + (1-t.PressureFloor)*(1-frac)
}

// Compute returns the plan for the current tier and progress
func (s *Scheduler) Compute(tier evasion.Tier, lockOn float64, encouraged bool) Plan {
	t := s.tuning
	pressure := s.Pressure(lockOn)

	scale := pressure
	if encouraged {
		scale *= t.EncouragementSlack
	}
	if t.IntervalJitter > 0 {
		scale *= 1 + t.IntervalJitter*(2*s.rng.Float64()-1)
	}
	// Jitter never pushes the delay under the pressure floor
	scale = max(scale, t.PressureFloor)

	delay := time.Duration(float64(s.BaseInterval(tier)) * scale)
	if delay < t.MinMoveDelay {
		delay = t.MinMoveDelay
	}

	return Plan{
		MoveDelay:      delay,
		SabotageChance: s.SabotageChance(lockOn, encouraged),
		Pressure:       pressure,
	}
}

// SabotageChance grows toward victory and eases slightly once encouraged
func (s *Scheduler) SabotageChance(lockOn float64, encouraged bool) float64 {
	t := s.tuning
	frac := vmath.Clamp(lockOn/t.WinThreshold, 0, 1)
	chance := t.SabotageChance * (1 + t.SabotagePressure*frac)
	if encouraged {
		chance *= t.EncouragedSabotage
	}
	return vmath.Clamp(chance, 0, 1)
}
