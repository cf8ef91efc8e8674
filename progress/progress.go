package progress

import (
	"math"

	"github.com/lixenwraith/hover-hell/parameter"
	"github.com/lixenwraith/hover-hell/vmath"
)

// winEpsilon absorbs float accumulation so N steps of dt land exactly on the threshold
const winEpsilon = 1e-9

// State is the player's lock-on progress
type State struct {
	LockOn     float64 // seconds, always within [0, WinThreshold]
	Streak     int     // floor(LockOn)
	Encouraged bool    // one-way, set past the engagement threshold
	Won        bool
}

// EventKind discriminates progress transitions
type EventKind uint8

const (
	EventSabotage EventKind = iota
	EventMilestone
	EventEncouraged
	EventWon
)

// Event reports a transition produced by one update
type Event struct {
	Kind    EventKind
	Penalty float64 // EventSabotage: seconds actually removed
	Streak  int     // EventMilestone: boundary crossed
}

// Machine accumulates lock-on time, decays it, sabotages it and detects the win
type Machine struct {
	tuning *parameter.Tuning
	rng    vmath.Rand
	state  State
	frozen bool
}

func NewMachine(tuning *parameter.Tuning, rng vmath.Rand) *Machine {
	return &Machine{tuning: tuning, rng: rng}
}

// State returns a copy of the current progress
func (m *Machine) State() State {
	return m.state
}

// Frozen reports whether further updates are ignored
func (m *Machine) Frozen() bool {
	return m.frozen || m.state.Won
}

// Freeze stops all mutation, used when the session ends without a win
func (m *Machine) Freeze() {
	m.frozen = true
}

// Reset returns to a fresh, mutable state
func (m *Machine) Reset() {
	m.state = State{}
	m.frozen = false
}

// Score is floor(lock-on * per-second) + streak * per-streak
func (m *Machine) Score() int {
	t := m.tuning
	return int(math.Floor(m.state.LockOn*t.ScorePerSecond+winEpsilon)) + m.state.Streak*t.ScorePerStreak
}

// Update advances one tick of dt seconds
// sabotageChance is the per-tick probability supplied by the difficulty scheduler
func (m *Machine) Update(overlapping bool, dt float64, sabotageChance float64) []Event {
	if m.Frozen() || dt <= 0 {
		return nil
	}

	if !overlapping {
		m.decay(dt)
		return nil
	}

	t := m.tuning
	var events []Event
	prevStreak := m.state.Streak

	m.state.LockOn += dt
	if m.state.LockOn >= t.WinThreshold-winEpsilon {
		m.state.LockOn = t.WinThreshold
	}
	m.state.Streak = streakOf(m.state.LockOn)
	events = m.milestones(events, prevStreak, m.state.Streak)

	if !m.state.Encouraged && m.state.LockOn > t.EngagementThreshold {
		m.state.Encouraged = true
		events = append(events, Event{Kind: EventEncouraged})
	}

	if m.state.LockOn >= t.WinThreshold {
		m.state.Won = true
		return append(events, Event{Kind: EventWon})
	}

	// Sabotage is armed only once the player is doing well
	if m.state.LockOn > t.SabotageArmAfter && sabotageChance > 0 && vmath.Chance(m.rng, sabotageChance) {
		penalty := vmath.Range(m.rng, t.SabotagePenaltyMin, t.SabotagePenaltyMax)
		applied := math.Min(penalty, m.state.LockOn)
		m.state.LockOn = math.Max(0, m.state.LockOn-applied)
		m.state.Streak = streakOf(m.state.LockOn)
		events = append(events, Event{Kind: EventSabotage, Penalty: applied})
	}

	return events
}

// decay drains lock-on while contact is lost, faster past the high-water band
func (m *Machine) decay(dt float64) {
	t := m.tuning
	if m.state.LockOn <= 0 {
		return
	}
	rate := t.DecayRateSlow
	if m.state.LockOn > t.DecayFastAbove {
		rate = t.DecayRateFast
	}
	m.state.LockOn = math.Max(0, m.state.LockOn-rate*dt)
	m.state.Streak = streakOf(m.state.LockOn)
}

// milestones appends one event per milestone boundary crossed upward
func (m *Machine) milestones(events []Event, from, to int) []Event {
	every := m.tuning.MilestoneEvery
	for k := from + 1; k <= to; k++ {
		if k%every == 0 {
			events = append(events, Event{Kind: EventMilestone, Streak: k})
		}
	}
	return events
}

func streakOf(lockOn float64) int {
	return int(math.Floor(lockOn + winEpsilon))
}
