package evasion

import (
	"github.com/lixenwraith/hover-hell/vmath"
)

// Tier classifies pointer proximity
type Tier uint8

const (
	TierFlee Tier = iota
	TierNervous
	TierCalm
)

func (t Tier) String() string {
	switch t {
	case TierFlee:
		return "flee"
	case TierNervous:
		return "nervous"
	default:
		return "calm"
	}
}

// Mode tags the movement that produced the current target position
type Mode uint8

const (
	ModeIdle Mode = iota
	ModeFlee
	ModeNervous
	ModeOrbit
	ModeDrift
	ModeTeleport
)

var modeNames = [...]string{"idle", "flee", "nervous", "orbit", "drift", "teleport"}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// TargetState is the target's position, visual size multiplier and movement tag
type TargetState struct {
	Pos  vmath.Vec2
	Size float64
	Mode Mode
}

// InitialTarget is the target at session start
func InitialTarget() TargetState {
	return TargetState{Pos: vmath.Center, Size: 1, Mode: ModeIdle}
}

// Input is everything the policy reads for one move
type Input struct {
	Pointer    vmath.Vec2
	Target     TargetState
	Encouraged bool
	Elapsed    float64 // session seconds, drives the orbit phase
	AreaReady  bool    // false while the play area has not been measured
}

// Outcome is the result of one policy move
type Outcome struct {
	Target TargetState
	Tier   Tier
	Shake  float64 // cosmetic intensity, decays outside the policy
	Taunts int     // taunt intents correlated with the tier
}
