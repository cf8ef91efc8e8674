package session

import (
	"time"

	"github.com/lixenwraith/hover-hell/evasion"
	"github.com/lixenwraith/hover-hell/hazard"
	"github.com/lixenwraith/hover-hell/parameter"
	"github.com/lixenwraith/hover-hell/progress"
	"github.com/lixenwraith/hover-hell/taunt"
	"github.com/lixenwraith/hover-hell/vmath"
)

// Snapshot is a read-only copy of session state for rendering
type Snapshot struct {
	Status  Status
	Variant parameter.Variant
	Player  string
	Score   int // final score once terminal, live score otherwise

	Target      evasion.TargetState
	Tier        evasion.Tier
	Progress    progress.State
	WinAt       float64
	Pointer     vmath.Vec2
	PointerOK   bool
	Overlapping bool

	Clicks    int
	ClickGoal int
	Remaining time.Duration
	Elapsed   time.Duration

	Obstacles []hazard.Obstacle
	Avatar    vmath.Vec2
	Level     int
	Survived  int // whole seconds
	Inverted  bool

	Shake  float64
	Taunts []taunt.Event
}

// Snapshot copies the current state
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	score := s.score
	if s.status == StatusPlaying {
		switch s.tuning.Variant {
		case parameter.VariantClick:
			score = s.clicks
		case parameter.VariantHover:
			score = s.progress.Score()
		}
	}

	return Snapshot{
		Status:      s.status,
		Variant:     s.tuning.Variant,
		Player:      s.player,
		Score:       score,
		Target:      s.target,
		Tier:        s.tier,
		Progress:    s.progress.State(),
		WinAt:       s.tuning.WinThreshold,
		Pointer:     s.lastPointer,
		PointerOK:   s.pointerOK,
		Overlapping: s.overlapping,
		Clicks:      s.clicks,
		ClickGoal:   s.tuning.ClickGoal,
		Remaining:   s.remaining,
		Elapsed:     s.elapsed,
		Obstacles:   s.field.Obstacles(),
		Avatar:      s.avatar,
		Level:       s.level,
		Survived:    s.seconds,
		Inverted:    s.invertLeft > 0,
		Shake:       s.shake,
		Taunts:      s.taunts.Live(),
	}
}
