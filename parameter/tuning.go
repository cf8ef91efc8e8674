package parameter

import (
	"fmt"
	"math"
	"slices"
	"time"
)

// Variant selects the objective the engine runs
type Variant string

const (
	// VariantHover is lock-on: keep the pointer on the target for WinThreshold seconds
	VariantHover Variant = "hover"
	// VariantClick is click-count: hit the target ClickGoal times before TimeLimit
	VariantClick Variant = "click"
	// VariantAvoid is survival: steer clear of drifting obstacles for as long as possible
	VariantAvoid Variant = "avoid"
)

// Variants lists the playable variants in menu order
var Variants = []Variant{VariantHover, VariantClick, VariantAvoid}

// Next cycles to the following variant
func (v Variant) Next() Variant {
	for i, cand := range Variants {
		if cand == v {
			return Variants[(i+1)%len(Variants)]
		}
	}
	return VariantHover
}

// Known reports whether v is one of Variants
func (v Variant) Known() bool {
	return slices.Contains(Variants, v)
}

// Tuning is the full configuration of one engine instance
// Every gameplay constant lives here so variants differ by data, not code
type Tuning struct {
	Variant Variant `toml:"variant"`

	// Progress & win
	WinThreshold        float64 `toml:"win_threshold"`        // lock-on seconds to win
	HitRadius           float64 `toml:"hit_radius"`           // overlap distance in area units
	EngagementThreshold float64 `toml:"engagement_threshold"` // lock-on that sets encouragement
	MilestoneEvery      int     `toml:"milestone_every"`      // streak step that announces a milestone
	DecayRateSlow       float64 `toml:"decay_rate_slow"`      // seconds lost per second at low lock-on
	DecayRateFast       float64 `toml:"decay_rate_fast"`      // seconds lost per second above DecayFastAbove
	DecayFastAbove      float64 `toml:"decay_fast_above"`
	ScorePerSecond      float64 `toml:"score_per_second"`
	ScorePerStreak      int     `toml:"score_per_streak"`

	// Sabotage
	SabotageChance     float64 `toml:"sabotage_chance"`    // base per-tick probability
	SabotageArmAfter   float64 `toml:"sabotage_arm_after"` // lock-on before sabotage can fire
	SabotagePenaltyMin float64 `toml:"sabotage_penalty_min"`
	SabotagePenaltyMax float64 `toml:"sabotage_penalty_max"`

	// Evasion tiers
	FleeDistance    float64 `toml:"flee_distance"`    // d < this: flee
	NervousDistance float64 `toml:"nervous_distance"` // d < this: nervous, otherwise calm

	FleeEscapeMin   float64 `toml:"flee_escape_min"`
	FleeEscapeMax   float64 `toml:"flee_escape_max"`
	FleeBoundMin    float64 `toml:"flee_bound_min"`
	FleeBoundMax    float64 `toml:"flee_bound_max"`
	CornerNearMin   float64 `toml:"corner_near_min"` // diagonal escape band on the low side
	CornerNearMax   float64 `toml:"corner_near_max"`
	CornerFarMin    float64 `toml:"corner_far_min"` // diagonal escape band on the high side
	CornerFarMax    float64 `toml:"corner_far_max"`
	EncouragedScale float64 `toml:"encouraged_escape_scale"` // shrinks the escape band once encouraged

	NervousStepMin  float64 `toml:"nervous_step_min"`
	NervousStepMax  float64 `toml:"nervous_step_max"`
	NervousBoundMin float64 `toml:"nervous_bound_min"`
	NervousBoundMax float64 `toml:"nervous_bound_max"`
	NervousAttempts int     `toml:"nervous_attempts"`

	CalmTeleportWeight float64 `toml:"calm_teleport_weight"`
	CalmDriftWeight    float64 `toml:"calm_drift_weight"`
	CalmOrbitWeight    float64 `toml:"calm_orbit_weight"`
	CalmBoundMin       float64 `toml:"calm_bound_min"`
	CalmBoundMax       float64 `toml:"calm_bound_max"`
	DriftPull          float64 `toml:"drift_pull"`   // fraction of the way to center per move
	DriftPush          float64 `toml:"drift_push"`   // push away from pointer, area units
	DriftJitter        float64 `toml:"drift_jitter"` // +/- random wobble per axis
	OrbitBaseRadius    float64 `toml:"orbit_base_radius"`
	OrbitRadiusSwing   float64 `toml:"orbit_radius_swing"`
	OrbitSwingFreq     float64 `toml:"orbit_swing_freq"`
	OrbitAngularSpeed  float64 `toml:"orbit_angular_speed"` // radians per second of session time
	OrbitAvoidArc      float64 `toml:"orbit_avoid_arc"`     // radians around the pointer heading to avoid
	OrbitAvoidTurn     float64 `toml:"orbit_avoid_turn"`

	// Cosmetic shake
	ShakeFlee     float64       `toml:"shake_flee"`
	ShakeNervous  float64       `toml:"shake_nervous"`
	ShakeCalm     float64       `toml:"shake_calm"`
	ShakeTeleport float64       `toml:"shake_teleport"`
	ShakeDuration time.Duration `toml:"shake_duration"`

	// Taunt intents emitted with a move
	FleeTauntChance       float64 `toml:"flee_taunt_chance"`
	FleeSecondTauntChance float64 `toml:"flee_second_taunt_chance"`
	NervousTauntChance    float64 `toml:"nervous_taunt_chance"`
	CalmTauntChance       float64 `toml:"calm_taunt_chance"`

	// Difficulty scheduler
	FleeInterval       time.Duration `toml:"flee_interval"`
	NervousInterval    time.Duration `toml:"nervous_interval"`
	CalmInterval       time.Duration `toml:"calm_interval"`
	MinMoveDelay       time.Duration `toml:"min_move_delay"`
	IntervalJitter     float64       `toml:"interval_jitter"`     // +/- fraction
	PressureFloor      float64       `toml:"pressure_floor"`      // interval multiplier at victory
	EncouragementSlack float64       `toml:"encouragement_slack"` // interval multiplier once encouraged
	SabotagePressure   float64       `toml:"sabotage_pressure"`   // extra sabotage chance fraction at victory
	EncouragedSabotage float64       `toml:"encouraged_sabotage"` // sabotage chance multiplier once encouraged

	// Taunt dispatcher
	TauntCap         int           `toml:"taunt_cap"`
	TauntPeriod      time.Duration `toml:"taunt_period"`
	TauntLifetimeMin time.Duration `toml:"taunt_lifetime_min"`
	TauntLifetimeMax time.Duration `toml:"taunt_lifetime_max"`
	TauntPosMin      float64       `toml:"taunt_pos_min"`
	TauntPosMax      float64       `toml:"taunt_pos_max"`

	// Click variant
	ClickGoal        int           `toml:"click_goal"`
	ClickTauntChance float64       `toml:"click_taunt_chance"`
	TimeLimit        time.Duration `toml:"time_limit"` // zero disables the countdown

	// Avoid variant
	Avoid AvoidTuning `toml:"avoid"`
}

// Default returns the hover baseline
func Default() Tuning {
	return Tuning{
		Variant: VariantHover,

		WinThreshold:        10.0,
		HitRadius:           5.0,
		EngagementThreshold: 3.0,
		MilestoneEvery:      2,
		DecayRateSlow:       0.5,
		DecayRateFast:       1.5,
		DecayFastAbove:      5.0,
		ScorePerSecond:      10,
		ScorePerStreak:      5,

		SabotageChance:     0.012,
		SabotageArmAfter:   1.5,
		SabotagePenaltyMin: 0.5,
		SabotagePenaltyMax: 2.0,

		FleeDistance:    30,
		NervousDistance: 50,

		FleeEscapeMin:   35,
		FleeEscapeMax:   60,
		FleeBoundMin:    10,
		FleeBoundMax:    90,
		CornerNearMin:   10,
		CornerNearMax:   25,
		CornerFarMin:    75,
		CornerFarMax:    90,
		EncouragedScale: 0.85,

		NervousStepMin:  15,
		NervousStepMax:  35,
		NervousBoundMin: 15,
		NervousBoundMax: 85,
		NervousAttempts: 8,

		CalmTeleportWeight: 0.2,
		CalmDriftWeight:    0.3,
		CalmOrbitWeight:    0.5,
		CalmBoundMin:       10,
		CalmBoundMax:       90,
		DriftPull:          0.3,
		DriftPush:          8,
		DriftJitter:        7.5,
		OrbitBaseRadius:    25,
		OrbitRadiusSwing:   15,
		OrbitSwingFreq:     0.7,
		OrbitAngularSpeed:  0.9,
		OrbitAvoidArc:      math.Pi / 3,
		OrbitAvoidTurn:     math.Pi / 2,

		ShakeFlee:     8,
		ShakeNervous:  4,
		ShakeCalm:     1,
		ShakeTeleport: 2,
		ShakeDuration: 200 * time.Millisecond,

		FleeTauntChance:       0.6,
		FleeSecondTauntChance: 0.35,
		NervousTauntChance:    0.3,
		CalmTauntChance:       0.1,

		FleeInterval:       300 * time.Millisecond,
		NervousInterval:    650 * time.Millisecond,
		CalmInterval:       1500 * time.Millisecond,
		MinMoveDelay:       50 * time.Millisecond,
		IntervalJitter:     0.25,
		PressureFloor:      0.3,
		EncouragementSlack: 1.15,
		SabotagePressure:   1.0,
		EncouragedSabotage: 0.85,

		TauntCap:         5,
		TauntPeriod:      100 * time.Millisecond,
		TauntLifetimeMin: 4 * time.Second,
		TauntLifetimeMax: 6 * time.Second,
		TauntPosMin:      15,
		TauntPosMax:      75,

		ClickGoal:        10,
		ClickTauntChance: 0.3,
		TimeLimit:        0,

		Avoid: DefaultAvoid(),
	}
}

// ForVariant returns the preset for a variant
func ForVariant(v Variant) Tuning {
	t := Default()
	switch v {
	case VariantClick:
		t.Variant = VariantClick
		t.TimeLimit = 15 * time.Second
		// Click targets jump more and rest less than the hover box
		t.CalmTeleportWeight = 0.4
		t.CalmDriftWeight = 0.3
		t.CalmOrbitWeight = 0.3
		t.CalmInterval = 1200 * time.Millisecond
		t.CalmTauntChance = 0.15
		t.SabotageChance = 0
	case VariantAvoid:
		t.Variant = VariantAvoid
		t.TimeLimit = 0
		t.SabotageChance = 0
	default:
		t.Variant = VariantHover
	}
	return t
}

// Validate rejects configurations that break engine invariants
func (t *Tuning) Validate() error {
	switch t.Variant {
	case VariantHover, VariantClick, VariantAvoid:
	default:
		return fmt.Errorf("unknown variant %q", t.Variant)
	}

	if t.WinThreshold <= 0 {
		return fmt.Errorf("win_threshold must be positive, got %v", t.WinThreshold)
	}
	if t.HitRadius <= 0 {
		return fmt.Errorf("hit_radius must be positive, got %v", t.HitRadius)
	}
	if t.FleeDistance <= t.HitRadius || t.NervousDistance <= t.FleeDistance {
		return fmt.Errorf("tier distances must satisfy hit_radius < flee_distance < nervous_distance")
	}
	if t.FleeEscapeMin <= 0 || t.FleeEscapeMax < t.FleeEscapeMin {
		return fmt.Errorf("flee escape band [%v,%v] invalid", t.FleeEscapeMin, t.FleeEscapeMax)
	}
	if t.NervousStepMin <= 0 || t.NervousStepMax < t.NervousStepMin {
		return fmt.Errorf("nervous step band [%v,%v] invalid", t.NervousStepMin, t.NervousStepMax)
	}
	if !validBand(t.FleeBoundMin, t.FleeBoundMax) || !validBand(t.NervousBoundMin, t.NervousBoundMax) ||
		!validBand(t.CalmBoundMin, t.CalmBoundMax) || !validBand(t.CornerNearMin, t.CornerNearMax) ||
		!validBand(t.CornerFarMin, t.CornerFarMax) {
		return fmt.Errorf("position bounds must lie inside [0,%v]", AreaMax)
	}
	if t.CornerNearMax >= AreaMax/2 || t.CornerFarMin <= AreaMax/2 {
		return fmt.Errorf("corner bands must sit on opposite halves of the area")
	}
	if t.EncouragedScale <= 0 || t.EncouragedScale > 1 {
		return fmt.Errorf("encouraged_escape_scale must be in (0,1], got %v", t.EncouragedScale)
	}
	if t.CalmTeleportWeight < 0 || t.CalmDriftWeight < 0 || t.CalmOrbitWeight < 0 ||
		t.CalmTeleportWeight+t.CalmDriftWeight+t.CalmOrbitWeight <= 0 {
		return fmt.Errorf("calm weights must be non-negative with a positive sum")
	}
	if t.SabotagePenaltyMin < 0 || t.SabotagePenaltyMax < t.SabotagePenaltyMin {
		return fmt.Errorf("sabotage penalty band [%v,%v] invalid", t.SabotagePenaltyMin, t.SabotagePenaltyMax)
	}
	if !probability(t.SabotageChance) || !probability(t.FleeTauntChance) || !probability(t.NervousTauntChance) ||
		!probability(t.CalmTauntChance) || !probability(t.FleeSecondTauntChance) || !probability(t.ClickTauntChance) {
		return fmt.Errorf("chances must be probabilities in [0,1]")
	}
	if t.DecayRateSlow < 0 || t.DecayRateFast < t.DecayRateSlow {
		return fmt.Errorf("decay_rate_fast must be >= decay_rate_slow >= 0")
	}
	if t.PressureFloor <= 0 || t.PressureFloor > 1 {
		return fmt.Errorf("pressure_floor must be in (0,1], got %v", t.PressureFloor)
	}
	if t.EncouragementSlack < 1 || t.EncouragementSlack > 1.5 {
		return fmt.Errorf("encouragement_slack must be in [1,1.5], got %v", t.EncouragementSlack)
	}
	if t.FleeInterval <= 0 || t.NervousInterval < t.FleeInterval || t.CalmInterval < t.NervousInterval {
		return fmt.Errorf("intervals must grow from flee to calm")
	}
	if t.IntervalJitter < 0 || t.IntervalJitter >= 1 {
		return fmt.Errorf("interval_jitter must be in [0,1), got %v", t.IntervalJitter)
	}
	if t.TauntCap < 1 {
		return fmt.Errorf("taunt_cap must be at least 1")
	}
	if t.TauntPeriod <= 0 || t.TauntLifetimeMin <= 0 || t.TauntLifetimeMax < t.TauntLifetimeMin {
		return fmt.Errorf("taunt timing invalid")
	}
	if t.MilestoneEvery < 1 {
		return fmt.Errorf("milestone_every must be at least 1")
	}
	if t.Variant == VariantClick && (t.ClickGoal < 1 || t.TimeLimit <= 0) {
		return fmt.Errorf("click variant needs click_goal >= 1 and a positive time_limit")
	}
	if t.Variant == VariantAvoid {
		if err := t.Avoid.validate(); err != nil {
			return fmt.Errorf("avoid: %w", err)
		}
	}
	return nil
}

func validBand(lo, hi float64) bool {
	return lo >= 0 && hi <= AreaMax && lo <= hi
}

func probability(p float64) bool {
	return p >= 0 && p <= 1
}
