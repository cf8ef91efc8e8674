package audio

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
)

// Cue identifies a game sound
type Cue int

const (
	CueTeleport Cue = iota // target jumped to the far corner
	CueNearMiss            // flee-tier reaction
	CueSabotage            // lock-on penalty applied
	CueMilestone           // streak crossed a milestone
	CueWin
	CueLoss
	CueClick   // click variant hit
	CueGolden  // avoid variant bonus pickup
	CueLevelUp // avoid variant level change
	cueCount
)

var cueNames = [cueCount]string{
	"teleport", "near-miss", "sabotage", "milestone", "win", "loss", "click", "golden", "level-up",
}

func (c Cue) String() string {
	if c >= 0 && c < cueCount {
		return cueNames[c]
	}
	return "unknown"
}

const (
	SampleRate = beep.SampleRate(44100)

	toneAttack  = 5 * time.Millisecond
	toneRelease = 20 * time.Millisecond

	teleportNote  = 60 * time.Millisecond
	nearMissNote  = 80 * time.Millisecond
	sabotageBuzz  = 250 * time.Millisecond
	milestoneRing = 300 * time.Millisecond
	winNote       = 90 * time.Millisecond
	lossNote      = 150 * time.Millisecond
	lossGap       = 40 * time.Millisecond
	clickTick     = 30 * time.Millisecond
	goldenNote    = 120 * time.Millisecond
	levelUpNote   = 180 * time.Millisecond
)

// Note frequencies in Hz
const (
	noteA2 = 110.0
	noteD4 = 293.66
	noteC4 = 261.63
	noteE4 = 329.63
	noteG4 = 392.0
	noteA4 = 440.0
	noteC5 = 523.25
	noteE5 = 659.25
	noteG5 = 783.99
	noteA5 = 880.0
	noteB5 = 987.77
	noteC6 = 1046.5
	noteD6 = 1174.66
	noteA6 = 1760.0
)

// Build returns a finite streamer for a cue scaled by volume, nil for unknown cues
func Build(c Cue, rate beep.SampleRate, volume float64) beep.Streamer {
	var s beep.Streamer
	switch c {
	case CueTeleport:
		s = beep.Seq(
			tone(noteE5, teleportNote, WaveSquare, rate),
			tone(noteB5, teleportNote, WaveSquare, rate),
		)
	case CueNearMiss:
		s = tone(noteA4, nearMissNote, WaveSine, rate)
	case CueSabotage:
		s = tone(noteA2, sabotageBuzz, WaveSaw, rate)
	case CueMilestone:
		s = beep.Mix(
			newVolume(tone(noteA5, milestoneRing, WaveSine, rate), 0.7),
			newVolume(tone(noteA6, milestoneRing, WaveSine, rate), 0.3),
		)
	case CueWin:
		s = beep.Seq(
			tone(noteC5, winNote, WaveSquare, rate),
			tone(noteE5, winNote, WaveSquare, rate),
			tone(noteG5, winNote, WaveSquare, rate),
			tone(noteC6, winNote*2, WaveSquare, rate),
		)
	case CueLoss:
		s = beep.Seq(
			tone(noteG4, lossNote, WaveSaw, rate),
			generators.Silence(rate.N(lossGap)),
			tone(noteE4, lossNote, WaveSaw, rate),
			generators.Silence(rate.N(lossGap)),
			tone(noteC4, lossNote*2, WaveSaw, rate),
		)
	case CueClick:
		s = tone(0, clickTick, WaveNoise, rate)
	case CueGolden:
		s = tone(noteD6, goldenNote, WaveSaw, rate)
	case CueLevelUp:
		s = beep.Seq(
			tone(noteD4, levelUpNote, WaveSaw, rate),
			tone(noteA4, levelUpNote, WaveSaw, rate),
		)
	default:
		return nil
	}
	return newVolume(s, volume)
}
