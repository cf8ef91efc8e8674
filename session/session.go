package session

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/lixenwraith/hover-hell/audio"
	"github.com/lixenwraith/hover-hell/difficulty"
	"github.com/lixenwraith/hover-hell/evasion"
	"github.com/lixenwraith/hover-hell/hazard"
	"github.com/lixenwraith/hover-hell/parameter"
	"github.com/lixenwraith/hover-hell/progress"
	"github.com/lixenwraith/hover-hell/status"
	"github.com/lixenwraith/hover-hell/taunt"
	"github.com/lixenwraith/hover-hell/vmath"
)

// Status is the session lifecycle state
type Status uint8

const (
	StatusPlaying Status = iota
	StatusWon
	StatusLost
)

func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	}
	return "unknown"
}

// Result is the terminal outcome passed to OnGameEnd
type Result string

const (
	ResultWon  Result = "won"
	ResultLost Result = "lost"
)

// PointerSource supplies the latest normalized pointer sample
// ready is false until the play area has been measured
type PointerSource interface {
	Pointer() (pos vmath.Vec2, ready bool)
}

// Callbacks are invoked outside the session lock; panics are recovered
type Callbacks struct {
	OnGameEnd          func(result Result, score int)
	OnSarcasticMessage func(text string)
}

// Config wires a session; zero-valued optional fields get defaults
type Config struct {
	Tuning    parameter.Tuning
	Player    string
	Rand      vmath.Rand // nil uses FastRand seeded with Seed
	Seed      uint64
	Pointer   PointerSource
	Audio     audio.Player     // nil is silent
	Status    *status.Registry // nil allocates a private registry
	Callbacks Callbacks
}

// Session owns one game: target, progress, pacing and live taunts
// Step is the only simulation entry point; all state changes happen under mu
type Session struct {
	mu sync.Mutex

	tuning  parameter.Tuning
	player  string
	rng     vmath.Rand
	pointer PointerSource
	sound   audio.Player
	cb      Callbacks

	policy   *evasion.Policy
	progress *progress.Machine
	sched    *difficulty.Scheduler
	taunts   *taunt.Dispatcher
	field    *hazard.Field

	status    Status
	score     int
	target    evasion.TargetState
	tier      evasion.Tier
	plan      difficulty.Plan
	moveIn    time.Duration
	elapsed   time.Duration
	shake     float64
	shakeLeft time.Duration
	clicks    int
	remaining time.Duration

	// Avoid variant
	avatar     vmath.Vec2
	level      int
	seconds    int           // whole seconds survived
	survived   time.Duration // carry toward the next whole second
	invertLeft time.Duration
	nearCool   time.Duration

	lastPointer vmath.Vec2
	pointerOK   bool
	overlapping bool

	// Deliveries collected under the lock and flushed after it
	outbox  []string
	ended   bool
	endWith Result

	reg       *status.Registry
	statTick  *status.Counter
	statMoves *status.Counter
	statSabo  *status.Counter
	statLock  *status.Gauge
	statPress *status.Gauge
	statDelay *status.Counter
	statMode  *status.Label
	statTier  *status.Label
	statState *status.Label
	statLevel *status.Counter
	statObst  *status.Counter
}

// New validates the tuning and returns a session in the playing state
func New(cfg Config) (*Session, error) {
	if err := cfg.Tuning.Validate(); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	if cfg.Pointer == nil {
		return nil, fmt.Errorf("session: pointer source required")
	}

	s := &Session{
		tuning:  cfg.Tuning,
		player:  cfg.Player,
		rng:     cfg.Rand,
		pointer: cfg.Pointer,
		sound:   cfg.Audio,
		cb:      cfg.Callbacks,
		reg:     cfg.Status,
	}
	if s.rng == nil {
		s.rng = vmath.NewFastRand(cfg.Seed)
	}
	if s.sound == nil {
		s.sound = audio.Silent{}
	}
	if s.reg == nil {
		s.reg = status.NewRegistry()
	}
	s.cacheMetrics()

	s.policy = evasion.NewPolicy(&s.tuning, s.rng)
	s.progress = progress.NewMachine(&s.tuning, s.rng)
	s.sched = difficulty.NewScheduler(&s.tuning, s.rng)
	s.taunts = taunt.NewDispatcher(&s.tuning, s.rng, s.player, s.enqueue)
	s.field = hazard.NewField(&s.tuning, s.rng)

	s.mu.Lock()
	s.reset()
	s.mu.Unlock()
	s.flush()
	return s, nil
}

func (s *Session) cacheMetrics() {
	s.statTick = s.reg.Counter("session.ticks")
	s.statMoves = s.reg.Counter("evasion.moves")
	s.statSabo = s.reg.Counter("progress.sabotages")
	s.statLock = s.reg.Gauge("progress.lockon")
	s.statPress = s.reg.Gauge("sched.pressure")
	s.statDelay = s.reg.Counter("sched.delay_ms")
	s.statMode = s.reg.Label("evasion.mode")
	s.statTier = s.reg.Label("evasion.tier")
	s.statState = s.reg.Label("session.status")
	s.statLevel = s.reg.Counter("avoid.level")
	s.statObst = s.reg.Counter("avoid.obstacles")
}

// reset returns every sub-state to its initial value and emits the start taunt
// Caller holds mu
func (s *Session) reset() {
	s.status = StatusPlaying
	s.score = 0
	s.target = evasion.InitialTarget()
	s.tier = evasion.TierCalm
	s.elapsed = 0
	s.shake = 0
	s.shakeLeft = 0
	s.clicks = 0
	s.remaining = s.tuning.TimeLimit
	s.overlapping = false
	s.ended = false
	s.avatar = vmath.Vec2{X: parameter.AreaMax / 2, Y: parameter.AreaMax / 2}
	s.level = 1
	s.seconds = 0
	s.survived = 0
	s.invertLeft = 0
	s.nearCool = 0

	s.field.Clear()
	if s.tuning.Variant == parameter.VariantAvoid {
		s.field.Reset(s.avatar)
	}

	s.progress.Reset()
	s.taunts.Clear()
	s.plan = s.sched.Compute(evasion.TierCalm, 0, false)
	s.moveIn = s.plan.MoveDelay

	s.taunts.Emit(taunt.KindSessionStart, 0)
	s.publish()
}

// Step advances the simulation by dt
// Order within a tick: pointer read, evasion move, progress, scheduler, cosmetics, countdown
func (s *Session) Step(dt time.Duration) {
	if dt <= 0 {
		return
	}
	s.mu.Lock()
	s.step(dt)
	s.mu.Unlock()
	s.flush()
}

func (s *Session) step(dt time.Duration) {
	s.statTick.Add(1)

	// Terminal sessions only age cosmetics
	if s.status != StatusPlaying {
		s.decayShake(dt)
		s.taunts.Advance(dt)
		return
	}

	s.elapsed += dt
	ptr, ready := s.pointer.Pointer()
	s.lastPointer, s.pointerOK = ptr, ready

	if s.tuning.Variant == parameter.VariantAvoid {
		s.stepAvoid(dt, ptr, ready)
		return
	}

	moved := false
	s.moveIn -= dt
	if s.moveIn <= 0 {
		s.move(ptr, ready)
		moved = true
	}

	d := vmath.Distance(ptr, s.target.Pos)
	s.overlapping = ready && d < s.tuning.HitRadius

	if s.tuning.Variant == parameter.VariantHover {
		events := s.progress.Update(s.overlapping, dt.Seconds(), s.plan.SabotageChance)
		s.handleProgress(events)
		if s.status != StatusPlaying {
			return
		}
	}

	st := s.progress.State()
	s.plan = s.sched.Compute(s.policy.Classify(d), s.pressureInput(), st.Encouraged)
	if moved || s.moveIn > s.plan.MoveDelay {
		s.moveIn = s.plan.MoveDelay
	}

	s.decayShake(dt)
	s.taunts.Advance(dt)

	if s.tuning.TimeLimit > 0 {
		s.remaining -= dt
		if s.remaining <= 0 {
			s.remaining = 0
			s.end(ResultLost, s.clicks)
			return
		}
	}
	s.publish()
}

// stepAvoid runs the survival variant; the obstacle field replaces evasion and lock-on
// The field holds still until the play area is measured
func (s *Session) stepAvoid(dt time.Duration, ptr vmath.Vec2, ready bool) {
	a := &s.tuning.Avoid
	if ready {
		s.avatar = s.steer(ptr)
		res := s.field.Step(dt.Seconds(), s.avatar, s.level, s.score)
		if res.Hit {
			s.end(ResultLost, s.score)
			return
		}
		if res.Golden > 0 {
			bonus := res.Golden * a.GoldenBonus
			s.score += bonus
			s.taunts.Emit(taunt.KindGolden, float64(bonus))
			s.play(audio.CueGolden)
		}

		s.nearCool -= dt
		if res.Near {
			s.nearMiss()
		}

		if s.invertLeft > 0 {
			s.invertLeft = max(s.invertLeft-dt, 0)
		}
		s.survived += dt
		for s.survived >= time.Second {
			s.survived -= time.Second
			s.surviveSecond()
		}
	}

	s.plan = s.sched.Compute(evasion.TierCalm, s.pressureInput(), false)
	s.decayShake(dt)
	s.taunts.Advance(dt)
	s.publish()
}

// steer maps the pointer to the avatar, mirrored while controls are inverted
func (s *Session) steer(ptr vmath.Vec2) vmath.Vec2 {
	if s.invertLeft > 0 {
		ptr = vmath.Vec2{X: parameter.AreaMax - ptr.X, Y: parameter.AreaMax - ptr.Y}
	}
	return vmath.ClampVec(ptr, s.tuning.Avoid.PlayerMin, s.tuning.Avoid.PlayerMax)
}

// nearMiss shakes on every close call; the taunt cooldown shrinks with level pressure
func (s *Session) nearMiss() {
	s.shake = s.tuning.Avoid.NearShake
	s.shakeLeft = s.tuning.ShakeDuration
	if s.nearCool > 0 {
		return
	}
	s.nearCool = time.Duration(float64(s.tuning.Avoid.NearTauntCooldown) * s.plan.Pressure)
	s.taunts.Emit(taunt.KindDodge, 0)
	s.play(audio.CueNearMiss)
}

// surviveSecond scores one survived second and levels up every LevelEvery seconds
func (s *Session) surviveSecond() {
	a := &s.tuning.Avoid
	s.seconds++
	s.score++

	if s.seconds%a.LevelEvery == 0 {
		s.level = min(s.level+1, a.MaxLevel)
		s.taunts.Emit(taunt.KindLevelUp, float64(s.level))
		s.play(audio.CueLevelUp)
		if vmath.Chance(s.rng, a.InvertChance) {
			s.invertLeft = a.InvertDuration
			s.taunts.Emit(taunt.KindInverted, 0)
		}
	}
	if vmath.Chance(s.rng, a.SurviveTauntChance) {
		s.taunts.Emit(taunt.KindDodge, 0)
	}
}

// move runs one evasion policy step and its side effects
func (s *Session) move(ptr vmath.Vec2, ready bool) {
	out := s.policy.Next(evasion.Input{
		Pointer:    ptr,
		Target:     s.target,
		Encouraged: s.progress.State().Encouraged,
		Elapsed:    s.elapsed.Seconds(),
		AreaReady:  ready,
	})
	s.target = out.Target
	s.tier = out.Tier
	s.statMoves.Add(1)
	if !ready {
		return
	}

	if out.Shake > 0 {
		s.shake = out.Shake
		s.shakeLeft = s.tuning.ShakeDuration
	}

	kind := taunt.KindAmbient
	switch {
	case out.Target.Mode == evasion.ModeTeleport && out.Tier == evasion.TierFlee:
		kind = taunt.KindTeleport
		s.play(audio.CueTeleport)
	case out.Tier == evasion.TierFlee:
		kind = taunt.KindFlee
		s.play(audio.CueNearMiss)
	}
	for i := 0; i < out.Taunts; i++ {
		s.taunts.Emit(kind, 0)
	}
}

func (s *Session) handleProgress(events []progress.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case progress.EventSabotage:
			s.statSabo.Add(1)
			s.taunts.Emit(taunt.KindSabotage, ev.Penalty)
			s.play(audio.CueSabotage)
		case progress.EventMilestone:
			s.taunts.Emit(taunt.KindMilestone, float64(ev.Streak))
			s.play(audio.CueMilestone)
		case progress.EventEncouraged:
			s.taunts.Emit(taunt.KindEncouragement, 0)
		case progress.EventWon:
			s.end(ResultWon, s.progress.Score())
		}
	}
}

// pressureInput maps the variant objective onto the lock-on scale the scheduler reads
func (s *Session) pressureInput() float64 {
	switch s.tuning.Variant {
	case parameter.VariantClick:
		return s.tuning.WinThreshold * float64(s.clicks) / float64(s.tuning.ClickGoal)
	case parameter.VariantAvoid:
		if s.tuning.Avoid.MaxLevel <= 1 {
			return 0
		}
		return s.tuning.WinThreshold * float64(s.level-1) / float64(s.tuning.Avoid.MaxLevel-1)
	}
	return s.progress.State().LockOn
}

func (s *Session) decayShake(dt time.Duration) {
	if s.shakeLeft <= 0 {
		return
	}
	s.shakeLeft -= dt
	if s.shakeLeft <= 0 {
		s.shakeLeft = 0
		s.shake = 0
	}
}

// end performs the single terminal transition
func (s *Session) end(result Result, score int) {
	if s.status != StatusPlaying {
		return
	}
	s.score = score
	s.progress.Freeze()
	if result == ResultWon {
		s.status = StatusWon
		s.taunts.Emit(taunt.KindWin, float64(score))
		s.play(audio.CueWin)
	} else {
		s.status = StatusLost
		s.taunts.Emit(taunt.KindLoss, float64(score))
		s.play(audio.CueLoss)
	}
	s.ended = true
	s.endWith = result
	s.publish()
}

// Click registers a click at a normalized position, click variant only
// Returns whether the target was hit
func (s *Session) Click(pos vmath.Vec2) bool {
	s.mu.Lock()
	hit := s.click(pos)
	s.mu.Unlock()
	s.flush()
	return hit
}

func (s *Session) click(pos vmath.Vec2) bool {
	if s.status != StatusPlaying || s.tuning.Variant != parameter.VariantClick {
		return false
	}
	if vmath.Distance(pos, s.target.Pos) >= s.tuning.HitRadius {
		return false
	}

	s.clicks++
	s.play(audio.CueClick)
	if vmath.Chance(s.rng, s.tuning.ClickTauntChance) {
		s.taunts.Emit(taunt.KindClick, 0)
	}

	if s.clicks >= s.tuning.ClickGoal {
		s.end(ResultWon, s.clicks*10+int(s.remaining/time.Second))
		return true
	}

	// A hit forces an immediate escape from the click point
	s.move(pos, true)
	s.moveIn = s.plan.MoveDelay
	s.publish()
	return true
}

// Abandon ends a playing session as lost with the current score
func (s *Session) Abandon() {
	s.mu.Lock()
	switch s.tuning.Variant {
	case parameter.VariantClick:
		s.end(ResultLost, s.clicks)
	case parameter.VariantAvoid:
		s.end(ResultLost, s.score)
	default:
		s.end(ResultLost, s.progress.Score())
	}
	s.mu.Unlock()
	s.flush()
}

// Restart discards the current game and starts a fresh one
func (s *Session) Restart() {
	s.mu.Lock()
	s.reset()
	s.mu.Unlock()
	s.flush()
}

// Reconfigure swaps the tuning, e.g. on variant change, and restarts
func (s *Session) Reconfigure(t parameter.Tuning) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	s.mu.Lock()
	s.tuning = t
	s.reset()
	s.mu.Unlock()
	s.flush()
	return nil
}

// Status returns the lifecycle state
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Registry exposes the telemetry cells written by the session
func (s *Session) Registry() *status.Registry {
	return s.reg
}

func (s *Session) publish() {
	st := s.progress.State()
	s.statLock.Set(st.LockOn)
	s.statPress.Set(s.plan.Pressure)
	s.statDelay.Store(s.plan.MoveDelay.Milliseconds())
	s.statMode.Set(s.target.Mode.String())
	s.statTier.Set(s.tier.String())
	s.statState.Set(s.status.String())
	s.statLevel.Store(int64(s.level))
	s.statObst.Store(int64(s.field.Len()))
}

func (s *Session) play(c audio.Cue) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("session: audio cue %s: %v", c, r)
		}
	}()
	s.sound.Play(c)
}

// enqueue is the taunt notifier; delivery waits until the lock is released
func (s *Session) enqueue(text string) {
	s.outbox = append(s.outbox, text)
}

// flush delivers queued messages and the end notification without holding mu
func (s *Session) flush() {
	s.mu.Lock()
	msgs := s.outbox
	s.outbox = nil
	ended, result, score := s.ended, s.endWith, s.score
	s.ended = false
	s.mu.Unlock()

	if s.cb.OnSarcasticMessage != nil {
		for _, m := range msgs {
			safeCall(func() { s.cb.OnSarcasticMessage(m) })
		}
	}
	if ended && s.cb.OnGameEnd != nil {
		safeCall(func() { s.cb.OnGameEnd(result, score) })
	}
}

func safeCall(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("session: callback panicked: %v", r)
		}
	}()
	fn()
}
