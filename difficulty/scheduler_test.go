package difficulty

import (
	"testing"
	"time"

	"github.com/lixenwraith/hover-hell/evasion"
	"github.com/lixenwraith/hover-hell/parameter"
	"github.com/lixenwraith/hover-hell/vmath"
)

// A 0.5 draw is the jitter midpoint, so scripted schedulers are deterministic
func newTestScheduler() (*Scheduler, *parameter.Tuning) {
	tun := parameter.Default()
	return NewScheduler(&tun, vmath.NewScriptedRand(0.5)), &tun
}

func TestTierOrdering(t *testing.T) {
	s, _ := newTestScheduler()
	flee := s.Compute(evasion.TierFlee, 0, false).MoveDelay
	nervous := s.Compute(evasion.TierNervous, 0, false).MoveDelay
	calm := s.Compute(evasion.TierCalm, 0, false).MoveDelay

	if !(flee < nervous && nervous < calm) {
		t.Errorf("expected flee < nervous < calm, got %v %v %v", flee, nervous, calm)
	}
}

func TestPressureTightensTowardVictory(t *testing.T) {
	s, tun := newTestScheduler()

	prev := time.Duration(1<<62)
	for lock := 0.0; lock <= tun.WinThreshold; lock += 0.5 {
		d := s.Compute(evasion.TierCalm, lock, false).MoveDelay
		if d > prev {
			t.Fatalf("delay grew with lock-on at %v: %v > %v", lock, d, prev)
		}
		prev = d
	}

	atWin := s.Compute(evasion.TierCalm, tun.WinThreshold, false).MoveDelay
	want := time.Duration(float64(tun.CalmInterval) * tun.PressureFloor)
	if atWin != want {
		t.Errorf("delay at victory = %v, want floor %v", atWin, want)
	}

	// Never below the floor, even past the threshold
	if p := s.Pressure(tun.WinThreshold * 3); p != tun.PressureFloor {
		t.Errorf("pressure past threshold = %v, want %v", p, tun.PressureFloor)
	}
	if p := s.Pressure(0); p != 1 {
		t.Errorf("pressure at zero = %v, want 1", p)
	}
}

func TestEncouragementIsMinorConcession(t *testing.T) {
	s, tun := newTestScheduler()
	for _, lock := range []float64{3, 6, 9.5} {
		plain := s.Compute(evasion.TierNervous, lock, false)
		relaxed := s.Compute(evasion.TierNervous, lock, true)

		if relaxed.MoveDelay <= plain.MoveDelay {
			t.Errorf("lock %v: encouragement should slow ticking, %v <= %v", lock, relaxed.MoveDelay, plain.MoveDelay)
		}
		// Not a reset: still faster than an unpressured tick
		if relaxed.MoveDelay >= tun.NervousInterval && lock >= 6 {
			t.Errorf("lock %v: encouragement undid pressure: %v", lock, relaxed.MoveDelay)
		}
		if relaxed.SabotageChance >= plain.SabotageChance {
			t.Errorf("lock %v: encouragement should ease sabotage", lock)
		}
	}
}

func TestSabotageChanceGrows(t *testing.T) {
	s, tun := newTestScheduler()
	low := s.SabotageChance(0, false)
	high := s.SabotageChance(tun.WinThreshold, false)
	if low != tun.SabotageChance {
		t.Errorf("base chance = %v, want %v", low, tun.SabotageChance)
	}
	if high <= low {
		t.Errorf("chance should grow near victory: %v <= %v", high, low)
	}
	if high > 1 {
		t.Errorf("chance %v not a probability", high)
	}
}

func TestJitterAndMinimum(t *testing.T) {
	tun := parameter.Default()
	lo := NewScheduler(&tun, vmath.NewScriptedRand(0.0)).Compute(evasion.TierCalm, 0, false).MoveDelay
	hi := NewScheduler(&tun, vmath.NewScriptedRand(0.999999)).Compute(evasion.TierCalm, 0, false).MoveDelay

	wantLo := time.Duration(float64(tun.CalmInterval) * (1 - tun.IntervalJitter))
	if lo != wantLo {
		t.Errorf("low jitter delay = %v, want %v", lo, wantLo)
	}
	if hi <= tun.CalmInterval {
		t.Errorf("high jitter delay = %v, want > %v", hi, tun.CalmInterval)
	}

	tun.FleeInterval = 10 * time.Millisecond
	d := NewScheduler(&tun, vmath.NewScriptedRand(0.0)).Compute(evasion.TierFlee, tun.WinThreshold, false).MoveDelay
	if d != tun.MinMoveDelay {
		t.Errorf("delay = %v, want clamp to %v", d, tun.MinMoveDelay)
	}
}

func TestJitterRespectsPressureFloor(t *testing.T) {
	tun := parameter.Default()
	for _, draw := range []float64{0, 0.5, 0.999} {
		s := NewScheduler(&tun, vmath.NewScriptedRand(draw))
		for _, tier := range []evasion.Tier{evasion.TierFlee, evasion.TierNervous, evasion.TierCalm} {
			floor := time.Duration(float64(s.BaseInterval(tier)) * tun.PressureFloor)
			if d := s.Compute(tier, tun.WinThreshold, false).MoveDelay; d < floor {
				t.Errorf("draw %v tier %s: delay %v under floor %v", draw, tier, d, floor)
			}
		}
	}
}
