package taunt

import (
	"log"
	"time"

	"github.com/lixenwraith/hover-hell/parameter"
	"github.com/lixenwraith/hover-hell/vmath"
)

// Event is one live on-screen taunt
type Event struct {
	ID        uint64
	Kind      Kind
	Text      string
	Value     float64 // exact number the text reports, e.g. the applied sabotage penalty
	Pos       vmath.Vec2
	Remaining time.Duration
}

// Notifier receives every taunt text as it is emitted
type Notifier func(text string)

// Dispatcher keeps a bounded set of live taunts and ages them on a fixed period
// Notification failures are swallowed; the dispatcher never affects progress
type Dispatcher struct {
	tuning *parameter.Tuning
	rng    vmath.Rand
	player string
	notify Notifier

	events []Event
	nextID uint64
	carry  time.Duration // sub-period remainder between Advance calls
}

func NewDispatcher(tuning *parameter.Tuning, rng vmath.Rand, player string, notify Notifier) *Dispatcher {
	return &Dispatcher{
		tuning: tuning,
		rng:    rng,
		player: player,
		notify: notify,
		events: make([]Event, 0, tuning.TauntCap+1),
	}
}

// Emit picks a random line for the kind, renders it and pushes it
func (d *Dispatcher) Emit(kind Kind, value float64) Event {
	line := vmath.Pick(d.rng, Lines(kind))
	return d.Push(kind, Render(line, d.player, value), value)
}

// Push appends a taunt with explicit text, trimming the oldest beyond the cap
func (d *Dispatcher) Push(kind Kind, text string, value float64) Event {
	t := d.tuning
	d.nextID++
	ev := Event{
		ID:    d.nextID,
		Kind:  kind,
		Text:  text,
		Value: value,
		Pos: vmath.Vec2{
			X: vmath.Range(d.rng, t.TauntPosMin, t.TauntPosMax),
			Y: vmath.Range(d.rng, t.TauntPosMin, t.TauntPosMax),
		},
		Remaining: t.TauntLifetimeMin + time.Duration(d.rng.Float64()*float64(t.TauntLifetimeMax-t.TauntLifetimeMin)),
	}

	d.events = append(d.events, ev)
	if excess := len(d.events) - t.TauntCap; excess > 0 {
		d.events = append(d.events[:0], d.events[excess:]...)
	}

	d.safeNotify(text)
	return ev
}

// Advance ages live taunts by whole periods and drops the expired ones
func (d *Dispatcher) Advance(dt time.Duration) {
	if dt <= 0 {
		return
	}
	period := d.tuning.TauntPeriod
	d.carry += dt
	periods := d.carry / period
	if periods == 0 {
		return
	}
	d.carry -= periods * period
	decrement := periods * period

	live := d.events[:0]
	for _, ev := range d.events {
		ev.Remaining -= decrement
		if ev.Remaining > 0 {
			live = append(live, ev)
		}
	}
	d.events = live
}

// Live returns a copy of the current taunts, oldest first
func (d *Dispatcher) Live() []Event {
	out := make([]Event, len(d.events))
	copy(out, d.events)
	return out
}

// Len returns the live taunt count
func (d *Dispatcher) Len() int {
	return len(d.events)
}

// Clear drops all live taunts and the period remainder
func (d *Dispatcher) Clear() {
	d.events = d.events[:0]
	d.carry = 0
}

func (d *Dispatcher) safeNotify(text string) {
	if d.notify == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("taunt: notifier panicked: %v", r)
		}
	}()
	d.notify(text)
}
