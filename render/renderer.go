package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/hover-hell/evasion"
	"github.com/lixenwraith/hover-hell/input"
	"github.com/lixenwraith/hover-hell/leaderboard"
	"github.com/lixenwraith/hover-hell/parameter"
	"github.com/lixenwraith/hover-hell/session"
	"github.com/lixenwraith/hover-hell/taunt"
	"github.com/lixenwraith/hover-hell/vmath"
)

const (
	meterWidth = 20
	keyHelp    = "q quit  r restart  p pause  m mute  l scores  Tab switch game"
	glyphBlock = '█'

	glyphObstacle = '●'
	glyphFake     = '○'
	glyphGolden   = '$'
	glyphAvatar   = '@'
)

// View is everything one frame shows
type View struct {
	Snap      session.Snapshot
	Paused    bool
	Muted     bool
	ShowBoard bool
	Board     []leaderboard.Entry
	Debug     bool
	Telemetry []string
}

// Renderer draws frames; the rng only drives the cosmetic border jitter
type Renderer struct {
	styles Styles
	rng    vmath.Rand
}

func NewRenderer(color bool, rng vmath.Rand) *Renderer {
	return &Renderer{styles: NewStyles(color), rng: rng}
}

// Frame clears, draws and flushes a tcell screen
func (r *Renderer) Frame(screen tcell.Screen, v View) {
	screen.Clear()
	r.Draw(screen, v)
	screen.Show()
}

// Draw renders a view onto any surface
func (r *Renderer) Draw(s Surface, v View) {
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}
	for y := 0; y < h; y++ {
		fill(s, 0, y, w, ' ', r.styles.Base)
	}

	area := PlayArea(w, h)
	r.drawTitle(s, w, v)
	r.drawMeter(s, w, v.Snap)

	if !area.Ready() {
		drawText(s, 0, rowBorderTop, w, "Terminal too small. Even the box feels cramped.", r.styles.Loss)
		return
	}

	r.drawBorder(s, area, v.Snap.Shake)
	if v.ShowBoard {
		r.drawBoard(s, area, v.Board)
	} else {
		if v.Snap.Variant == parameter.VariantAvoid {
			r.drawHazards(s, area, v.Snap)
		} else {
			r.drawTarget(s, area, v.Snap)
		}
		r.drawTaunts(s, area, v.Snap.Taunts)
		if v.Snap.Status != session.StatusPlaying {
			r.drawBanner(s, area, v.Snap)
		}
	}

	if v.Debug && len(v.Telemetry) > 0 {
		drawText(s, 0, h-2, w, clipWidth(strings.Join(v.Telemetry, "  "), w), r.styles.Dim)
	}
	drawText(s, 0, h-1, w, keyHelp, r.styles.Dim)
}

func (r *Renderer) drawTitle(s Surface, w int, v View) {
	fill(s, 0, rowTitle, w, ' ', r.styles.Status)
	snap := v.Snap
	title := fmt.Sprintf(" %s | %s | %s", leaderboard.DisplayName(string(snap.Variant)), snap.Player, snap.Status)
	drawText(s, 0, rowTitle, w, title, r.styles.Status)

	var flags string
	if v.Paused {
		flags += "[PAUSED] "
	}
	if v.Muted {
		flags += "[MUTED] "
	}
	if flags != "" {
		fw := runewidth.StringWidth(flags)
		drawText(s, max(w-fw, 0), rowTitle, w, flags, r.styles.Status.Bold(true))
	}
}

func (r *Renderer) drawMeter(s Surface, w int, snap session.Snapshot) {
	x := 1
	switch snap.Variant {
	case parameter.VariantAvoid:
		line := fmt.Sprintf("Survived %ds  Score %d  Level %d  Obstacles %d", snap.Survived, snap.Score,
			snap.Level, len(snap.Obstacles))
		if snap.Inverted {
			line += "  [INVERTED]"
		}
		drawText(s, x, rowMeter, w, line, r.styles.Base)
		return
	case parameter.VariantClick:
		line := fmt.Sprintf("Clicks %d/%d  Time %4.1fs  %s", snap.Clicks, snap.ClickGoal,
			snap.Remaining.Seconds(), pointerStatus(snap))
		drawText(s, x, rowMeter, w, line, r.styles.Base)
		return
	}

	x = drawText(s, x, rowMeter, w, "Lock-on ", r.styles.Base)
	frac := 0.0
	if snap.WinAt > 0 {
		frac = vmath.Clamp(snap.Progress.LockOn/snap.WinAt, 0, 1)
	}
	filled := int(math.Round(frac * meterWidth))
	for i := 0; i < meterWidth && x < w; i++ {
		if i < filled {
			s.SetContent(x, rowMeter, glyphBlock, nil, r.styles.Meter(float64(i+1)/meterWidth))
		} else {
			s.SetContent(x, rowMeter, '░', nil, r.styles.MeterEmpty)
		}
		x++
	}

	line := fmt.Sprintf(" %4.1fs/%.1fs  Streak %d  %s", snap.Progress.LockOn, snap.WinAt,
		snap.Progress.Streak, pointerStatus(snap))
	if snap.Progress.Encouraged {
		line += "  (pity mode)"
	}
	drawText(s, x, rowMeter, w, line, r.styles.Base)
}

func pointerStatus(snap session.Snapshot) string {
	switch {
	case !snap.PointerOK:
		return "Move the mouse, coward"
	case snap.Overlapping:
		return "HOVERING!"
	default:
		return "Not even close"
	}
}

// drawBorder frames the play area, jittered sideways while the target shakes
func (r *Renderer) drawBorder(s Surface, area input.Area, shake float64) {
	style := r.styles.Border
	dx := 0
	if shake > 0 {
		style = r.styles.BorderHot
		dx = vmath.Intn(r.rng, 3) - 1
	}

	left, right := area.X-1+dx, area.X+area.Width+dx
	top, bottom := area.Y-1, area.Y+area.Height
	for x := left + 1; x < right; x++ {
		s.SetContent(x, top, '─', nil, style)
		s.SetContent(x, bottom, '─', nil, style)
	}
	for y := top + 1; y < bottom; y++ {
		s.SetContent(left, y, '│', nil, style)
		s.SetContent(right, y, '│', nil, style)
	}
	s.SetContent(left, top, '┌', nil, style)
	s.SetContent(right, top, '┐', nil, style)
	s.SetContent(left, bottom, '└', nil, style)
	s.SetContent(right, bottom, '┘', nil, style)
}

// drawHazards plots on-screen obstacles, then the avatar on top
// Edge spawns still outside the area are not drawn
func (r *Renderer) drawHazards(s Surface, area input.Area, snap session.Snapshot) {
	for _, o := range snap.Obstacles {
		if !vmath.InBox(o.Pos, 0, parameter.AreaMax) {
			continue
		}
		glyph, style := glyphObstacle, r.styles.Sabotage
		switch {
		case o.Fake:
			glyph, style = glyphFake, r.styles.Dim
		case o.Golden:
			glyph, style = glyphGolden, r.styles.Win
		}
		x, y := area.Cell(o.Pos)
		s.SetContent(x, y, glyph, nil, style)
	}

	style := r.styles.TargetHit
	if snap.Inverted {
		style = r.styles.Teleport
	}
	x, y := area.Cell(snap.Avatar)
	s.SetContent(x, y, glyphAvatar, nil, style)
}

// TargetRect returns the target's cells, sized by the visual multiplier and kept inside the area
func TargetRect(area input.Area, t evasion.TargetState) (x, y, w, h int) {
	w = max(int(math.Round(parameter.TargetCellsWide*t.Size)), 1)
	h = parameter.TargetCellsHigh
	w, h = min(w, area.Width), min(h, area.Height)

	cx, cy := area.Cell(t.Pos)
	x = min(max(cx-w/2, area.X), area.X+area.Width-w)
	y = min(max(cy-h/2, area.Y), area.Y+area.Height-h)
	return x, y, w, h
}

func (r *Renderer) drawTarget(s Surface, area input.Area, snap session.Snapshot) {
	style := r.styles.TargetIdle
	switch {
	case snap.Overlapping:
		style = r.styles.TargetHit
	case snap.Target.Mode == evasion.ModeTeleport:
		style = r.styles.Teleport
	}
	x, y, w, h := TargetRect(area, snap.Target)
	for row := y; row < y+h; row++ {
		fill(s, x, row, w, glyphBlock, style)
	}
}

func (r *Renderer) drawTaunts(s Surface, area input.Area, taunts []taunt.Event) {
	limit := area.X + area.Width
	for _, ev := range taunts {
		text := clipWidth(ev.Text, area.Width)
		x, y := area.Cell(ev.Pos)
		x = max(min(x, limit-runewidth.StringWidth(text)), area.X)

		style := r.styles.Taunt
		switch ev.Kind {
		case taunt.KindSabotage, taunt.KindLoss, taunt.KindInverted:
			style = r.styles.Sabotage
		case taunt.KindMilestone, taunt.KindEncouragement, taunt.KindWin, taunt.KindLevelUp, taunt.KindGolden:
			style = r.styles.Milestone
		}
		drawText(s, x, y, limit, text, style)
	}
}

func (r *Renderer) drawBanner(s Surface, area input.Area, snap session.Snapshot) {
	headline, style := "GAME OVER", r.styles.Loss
	if snap.Status == session.StatusWon {
		headline, style = "YOU WON?! (we're checking the replays)", r.styles.Win
	}
	lines := []string{
		headline,
		fmt.Sprintf("Score %d (%s)", snap.Score, leaderboard.FormatScore(snap.Score, string(snap.Variant))),
		"r restart  l scores  Tab switch game",
	}
	r.drawCentered(s, area, lines, style)
}

func (r *Renderer) drawBoard(s Surface, area input.Area, entries []leaderboard.Entry) {
	lines := []string{"HALL OF SHAME", ""}
	if len(entries) == 0 {
		lines = append(lines, "No scores yet. Go embarrass yourself.")
	}
	for i, e := range entries {
		lines = append(lines, fmt.Sprintf("%2d. %-16s %-14s %10s  %s", i+1,
			clipWidth(e.PlayerName, 16), leaderboard.DisplayName(e.GameType),
			leaderboard.FormatScore(e.Score, e.GameType), e.Status))
	}
	r.drawCentered(s, area, lines, r.styles.Base)
}

// drawCentered stacks lines in the middle of the area, each centered and clipped
func (r *Renderer) drawCentered(s Surface, area input.Area, lines []string, style tcell.Style) {
	top := area.Y + max((area.Height-len(lines))/2, 0)
	for i, line := range lines {
		y := top + i
		if y >= area.Y+area.Height {
			return
		}
		line = clipWidth(line, area.Width)
		x := area.X + (area.Width-runewidth.StringWidth(line))/2
		fill(s, area.X, y, area.Width, ' ', r.styles.Base)
		drawText(s, x, y, area.X+area.Width, line, style)
	}
}
