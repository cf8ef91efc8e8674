package main

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/hover-hell/audio"
	"github.com/lixenwraith/hover-hell/engine"
	"github.com/lixenwraith/hover-hell/input"
	"github.com/lixenwraith/hover-hell/leaderboard"
	"github.com/lixenwraith/hover-hell/parameter"
	"github.com/lixenwraith/hover-hell/render"
	"github.com/lixenwraith/hover-hell/session"
	"github.com/lixenwraith/hover-hell/status"
	"github.com/lixenwraith/hover-hell/vmath"
)

const audioVolume = 0.6

type shellConfig struct {
	Screen     tcell.Screen
	Tuning     parameter.Tuning
	TuningPath string
	Player     string
	Seed       uint64
	Store      leaderboard.Store
	Mute       bool
	Debug      bool
	Color      bool
	Clock      engine.TimeProvider // nil uses the monotonic clock
}

// shell owns the terminal side of a game: input routing, scheduler control and frames
type shell struct {
	screen     tcell.Screen
	tuningPath string
	player     string
	debug      bool

	tracker   *input.Tracker
	edge      input.ClickEdge
	sound     *audio.Engine // nil when silent
	board     *leaderboard.Board
	session   *session.Session
	scheduler *engine.ClockScheduler
	updates   <-chan struct{}
	renderer  *render.Renderer
	reg       *status.Registry

	showBoard  bool
	boardDirty atomic.Bool
	entries    []leaderboard.Entry

	statSubmitted *status.Counter
	statFrames    *status.Counter
	statPlayer    *status.Label
}

func newShell(cfg shellConfig) (*shell, error) {
	sh := &shell{
		screen:     cfg.Screen,
		tuningPath: cfg.TuningPath,
		player:     cfg.Player,
		debug:      cfg.Debug,
		tracker:    input.NewTracker(),
		board:      leaderboard.NewBoard(cfg.Store, vmath.NewFastRand(cfg.Seed+1)),
		renderer:   render.NewRenderer(cfg.Color, vmath.NewFastRand(cfg.Seed+2)),
		reg:        status.NewRegistry(),
	}
	sh.statSubmitted = sh.reg.Counter("leaderboard.submitted")
	sh.statFrames = sh.reg.Counter("render.frames")
	sh.statPlayer = sh.reg.Label("shell.player")
	sh.statPlayer.Set(cfg.Player)

	var player audio.Player = audio.Silent{}
	if !cfg.Mute {
		e := audio.NewEngine(audioVolume)
		if err := e.Start(); err != nil {
			log.Printf("audio: %v, continuing without sound", err)
		} else {
			sh.sound = e
			player = e
		}
	}

	s, err := session.New(session.Config{
		Tuning:  cfg.Tuning,
		Player:  cfg.Player,
		Seed:    cfg.Seed,
		Pointer: sh.tracker,
		Audio:   player,
		Status:  sh.reg,
		Callbacks: session.Callbacks{
			OnGameEnd:          sh.onGameEnd,
			OnSarcasticMessage: sh.onMessage,
		},
	})
	if err != nil {
		sh.closeAudio()
		return nil, err
	}
	sh.session = s

	clock := cfg.Clock
	if clock == nil {
		clock = engine.NewMonotonicTimeProvider()
	}
	sh.scheduler, sh.updates = engine.NewClockScheduler(s, clock, parameter.TickInterval, sh.reg)
	sh.resize()
	return sh, nil
}

// Run drives the game until the player quits or the screen closes
func (sh *shell) Run() {
	events := make(chan tcell.Event, 64)
	engine.Go(func() {
		for {
			ev := sh.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	})

	sh.scheduler.Start()
	defer sh.scheduler.Stop()

	frames := time.NewTicker(parameter.FrameInterval)
	defer frames.Stop()

	sh.draw()
	for {
		select {
		case ev, ok := <-events:
			if !ok || !sh.handle(ev) {
				return
			}
		case <-sh.updates:
			sh.draw()
		case <-frames.C:
			sh.draw()
		}
	}
}

// handle applies one terminal event and reports whether the shell keeps running
func (sh *shell) handle(ev tcell.Event) bool {
	in := input.Translate(ev)
	switch in.Type {
	case input.IntentQuit:
		sh.scheduler.Stop()
		sh.session.Abandon()
		return false
	case input.IntentRestart:
		sh.showBoard = false
		sh.scheduler.Restart(sh.session.Restart)
	case input.IntentPause:
		paused := sh.scheduler.TogglePause()
		log.Printf("shell: paused=%v", paused)
	case input.IntentMute:
		if sh.sound != nil {
			sh.sound.ToggleMute()
		}
	case input.IntentLeaderboard:
		sh.showBoard = !sh.showBoard
		sh.boardDirty.Store(true)
	case input.IntentSwitchVariant:
		sh.switchVariant()
	case input.IntentResize:
		sh.screen.Sync()
		sh.resize()
	case input.IntentPointer, input.IntentClick:
		sh.tracker.Move(in.X, in.Y)
		if sh.edge.Press(in) {
			sh.click(in.X, in.Y)
		}
	}
	return true
}

func (sh *shell) click(x, y int) {
	if sh.scheduler.IsPaused() || sh.showBoard {
		return
	}
	area := sh.tracker.Area()
	if !area.Ready() || !area.Contains(x, y) {
		return
	}
	sh.session.Click(area.Normalize(x, y))
}

// switchVariant restarts on the next game type, keeping file overrides when they load
func (sh *shell) switchVariant() {
	next := sh.session.Snapshot().Variant.Next()
	t, err := loadTuning(sh.tuningPath, next)
	if err != nil || t.Variant != next {
		if err != nil {
			log.Printf("shell: tuning for %s: %v, using preset", next, err)
		}
		t = parameter.ForVariant(next)
	}

	sh.showBoard = false
	sh.scheduler.Restart(func() {
		if err := sh.session.Reconfigure(t); err != nil {
			log.Printf("shell: switch to %s: %v", next, err)
		}
	})
}

func (sh *shell) resize() {
	w, h := sh.screen.Size()
	sh.tracker.SetArea(render.PlayArea(w, h))
}

// onGameEnd submits the finished game; the session reports each game once
func (sh *shell) onGameEnd(result session.Result, score int) {
	variant := sh.session.Snapshot().Variant
	e := sh.board.AddScore(sh.player, string(variant), score)
	sh.statSubmitted.Add(1)
	sh.boardDirty.Store(true)
	log.Printf("shell: game %s %s score=%d status=%q", variant, result, score, e.Status)
}

func (sh *shell) onMessage(text string) {
	log.Printf("taunt: %s", text)
}

func (sh *shell) muted() bool {
	return sh.sound == nil || sh.sound.IsMuted()
}

func (sh *shell) view() render.View {
	if sh.showBoard && sh.boardDirty.Swap(false) {
		sh.entries = sh.board.All()
	}
	v := render.View{
		Snap:      sh.session.Snapshot(),
		Paused:    sh.scheduler.IsPaused(),
		Muted:     sh.muted(),
		ShowBoard: sh.showBoard,
		Board:     sh.entries,
		Debug:     sh.debug,
	}
	if sh.debug {
		v.Telemetry = sh.reg.Lines()
	}
	return v
}

func (sh *shell) draw() {
	sh.renderer.Frame(sh.screen, sh.view())
	sh.statFrames.Add(1)
}

func (sh *shell) closeAudio() {
	if sh.sound != nil {
		sh.sound.Close()
		sh.sound = nil
	}
}

// Close stops the loop and releases audio
func (sh *shell) Close() {
	sh.scheduler.Stop()
	sh.closeAudio()
}
