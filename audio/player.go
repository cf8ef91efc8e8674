package audio

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Player plays cues without blocking; failures never reach the caller
type Player interface {
	Play(c Cue)
}

// Silent is the no-op player used when no audio device is available
type Silent struct{}

func (Silent) Play(Cue) {}

// Engine mixes cues into a single beep mixer fed to the speaker
type Engine struct {
	mu      sync.Mutex
	mixer   *beep.Mixer
	rate    beep.SampleRate
	volume  float64
	started bool
	muted   atomic.Bool
	played  atomic.Int64
}

func NewEngine(volume float64) *Engine {
	return &Engine{
		mixer:  &beep.Mixer{},
		rate:   SampleRate,
		volume: volume,
	}
}

// Start opens the speaker and attaches the mixer
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return nil
	}
	if err := speaker.Init(e.rate, e.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}
	speaker.Play(e.mixer)
	e.started = true
	return nil
}

// Play queues the cue on the mixer
// Panics from the audio stack are logged and discarded
func (e *Engine) Play(c Cue) {
	if e.muted.Load() {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("audio: play %s failed: %v", c, r)
		}
	}()

	s := Build(c, e.rate, e.volume)
	if s == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		speaker.Lock()
		defer speaker.Unlock()
	}
	e.mixer.Add(s)
	e.played.Add(1)
}

// ToggleMute flips mute and reports whether sound is now on
func (e *Engine) ToggleMute() bool {
	for {
		old := e.muted.Load()
		if e.muted.CompareAndSwap(old, !old) {
			return old
		}
	}
}

func (e *Engine) IsMuted() bool {
	return e.muted.Load()
}

// Played counts cues queued since creation
func (e *Engine) Played() int64 {
	return e.played.Load()
}

// Close drops pending cues and detaches from the speaker
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.started {
		e.mixer.Clear()
		return
	}
	speaker.Clear()
	speaker.Close()
	e.started = false
}
