package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/hover-hell/evasion"
	"github.com/lixenwraith/hover-hell/hazard"
	"github.com/lixenwraith/hover-hell/leaderboard"
	"github.com/lixenwraith/hover-hell/parameter"
	"github.com/lixenwraith/hover-hell/session"
	"github.com/lixenwraith/hover-hell/taunt"
	"github.com/lixenwraith/hover-hell/vmath"
)

// grid records the last rune written per cell
type grid struct {
	w, h  int
	cells map[[2]int]rune
}

func newGrid(w, h int) *grid {
	return &grid{w: w, h: h, cells: make(map[[2]int]rune)}
}

func (g *grid) Size() (int, int) { return g.w, g.h }

func (g *grid) SetContent(x, y int, r rune, _ []rune, _ tcell.Style) {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return
	}
	g.cells[[2]int{x, y}] = r
}

func (g *grid) row(y int) string {
	var sb strings.Builder
	for x := 0; x < g.w; x++ {
		r, ok := g.cells[[2]int{x, y}]
		if !ok {
			r = ' '
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func (g *grid) contains(text string) bool {
	for y := 0; y < g.h; y++ {
		if strings.Contains(g.row(y), text) {
			return true
		}
	}
	return false
}

func hoverSnap() session.Snapshot {
	return session.Snapshot{
		Status:    session.StatusPlaying,
		Variant:   parameter.VariantHover,
		Player:    "Manki",
		Target:    evasion.InitialTarget(),
		WinAt:     10,
		PointerOK: true,
	}
}

func TestDrawHoverFrame(t *testing.T) {
	g := newGrid(80, 24)
	r := NewRenderer(true, vmath.NewScriptedRand(0.5))
	snap := hoverSnap()
	snap.Progress.LockOn = 5
	r.Draw(g, View{Snap: snap, Paused: true})

	if title := g.row(rowTitle); !strings.Contains(title, "Hover Hell") || !strings.Contains(title, "Manki") {
		t.Errorf("title row = %q", title)
	}
	if !strings.Contains(g.row(rowTitle), "[PAUSED]") {
		t.Error("paused flag missing from title")
	}
	meter := g.row(rowMeter)
	if !strings.Contains(meter, "Lock-on") || !strings.Contains(meter, "5.0s/10.0s") {
		t.Errorf("meter row = %q", meter)
	}
	if n := strings.Count(meter, string(glyphBlock)); n != meterWidth/2 {
		t.Errorf("meter filled %d cells, want %d", n, meterWidth/2)
	}

	area := PlayArea(80, 24)
	x, y, w, h := TargetRect(area, snap.Target)
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			if g.cells[[2]int{col, row}] != glyphBlock {
				t.Fatalf("target cell (%d,%d) not drawn", col, row)
			}
		}
	}
	if !strings.Contains(g.row(23), "q quit") {
		t.Errorf("help row = %q", g.row(23))
	}
}

func TestDrawClickMeter(t *testing.T) {
	g := newGrid(80, 24)
	snap := hoverSnap()
	snap.Variant = parameter.VariantClick
	snap.Clicks, snap.ClickGoal = 3, 10
	NewRenderer(false, vmath.NewScriptedRand(0)).Draw(g, View{Snap: snap})

	if meter := g.row(rowMeter); !strings.Contains(meter, "Clicks 3/10") {
		t.Errorf("meter row = %q", meter)
	}
	if !strings.Contains(g.row(rowTitle), "Click Chaos") {
		t.Errorf("title row = %q", g.row(rowTitle))
	}
}

func TestDrawAvoidField(t *testing.T) {
	g := newGrid(80, 24)
	snap := hoverSnap()
	snap.Variant = parameter.VariantAvoid
	snap.Avatar = vmath.Center
	snap.Survived, snap.Score, snap.Level, snap.Inverted = 12, 17, 2, true
	snap.Obstacles = []hazard.Obstacle{
		{ID: 1, Pos: vmath.Vec2{X: 10, Y: 10}, Size: 3},
		{ID: 2, Pos: vmath.Vec2{X: 90, Y: 90}, Size: 3, Fake: true},
		{ID: 3, Pos: vmath.Vec2{X: 10, Y: 90}, Size: 3, Golden: true},
		{ID: 4, Pos: vmath.Vec2{X: -6, Y: 50}, Size: 3},
	}
	NewRenderer(true, vmath.NewScriptedRand(0.5)).Draw(g, View{Snap: snap})

	meter := g.row(rowMeter)
	for _, want := range []string{"Survived 12s", "Score 17", "Level 2", "Obstacles 4", "[INVERTED]"} {
		if !strings.Contains(meter, want) {
			t.Errorf("meter row %q missing %q", meter, want)
		}
	}
	if !strings.Contains(g.row(rowTitle), "Dodge Disaster") {
		t.Errorf("title row = %q", g.row(rowTitle))
	}

	area := PlayArea(80, 24)
	tests := []struct {
		pos  vmath.Vec2
		want rune
	}{
		{vmath.Vec2{X: 10, Y: 10}, glyphObstacle},
		{vmath.Vec2{X: 90, Y: 90}, glyphFake},
		{vmath.Vec2{X: 10, Y: 90}, glyphGolden},
		{vmath.Center, glyphAvatar},
	}
	for _, tt := range tests {
		x, y := area.Cell(tt.pos)
		if got := g.cells[[2]int{x, y}]; got != tt.want {
			t.Errorf("cell at %+v = %q, want %q", tt.pos, got, tt.want)
		}
	}
	if x, y := area.Cell(vmath.Vec2{X: 0, Y: 50}); g.cells[[2]int{x, y}] == glyphObstacle {
		t.Error("off-area obstacle should not be drawn")
	}
	if g.contains(string(glyphBlock)) {
		t.Error("avoid frame should not draw the hover target")
	}
}

func TestTargetRectStaysInside(t *testing.T) {
	area := PlayArea(40, 20)
	corners := []vmath.Vec2{{X: 0, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}, {X: 100, Y: 0}, vmath.Center}
	for _, pos := range corners {
		for _, size := range []float64{1, 1.5, 3} {
			x, y, w, h := TargetRect(area, evasion.TargetState{Pos: pos, Size: size})
			if x < area.X || y < area.Y || x+w > area.X+area.Width || y+h > area.Y+area.Height {
				t.Errorf("pos %v size %v: rect (%d,%d,%d,%d) outside %+v", pos, size, x, y, w, h, area)
			}
		}
	}
}

func TestTauntShiftedToFit(t *testing.T) {
	g := newGrid(60, 20)
	snap := hoverSnap()
	snap.Target.Pos = vmath.Vec2{X: 5, Y: 90}
	snap.Taunts = []taunt.Event{{Kind: taunt.KindFlee, Text: "Too slow, Manki!", Pos: vmath.Vec2{X: 100, Y: 50}}}
	NewRenderer(true, vmath.NewScriptedRand(0)).Draw(g, View{Snap: snap})

	if !g.contains("Too slow, Manki!") {
		t.Fatal("taunt text should be drawn whole")
	}
	area := PlayArea(60, 20)
	_, y := area.Cell(snap.Taunts[0].Pos)
	if g.cells[[2]int{area.X + area.Width, y}] != '│' {
		t.Error("taunt overwrote the right border")
	}
}

func TestBannerAndBoard(t *testing.T) {
	g := newGrid(80, 24)
	snap := hoverSnap()
	snap.Status = session.StatusWon
	snap.Score = 150
	r := NewRenderer(true, vmath.NewScriptedRand(0))
	r.Draw(g, View{Snap: snap})
	if !g.contains("YOU WON") || !g.contains("15.0s") {
		t.Error("win banner missing score")
	}

	g = newGrid(80, 24)
	board := []leaderboard.Entry{{PlayerName: "Manki", GameType: "click", Score: 7, Status: "Not Terrible"}}
	r.Draw(g, View{Snap: snap, ShowBoard: true, Board: board})
	if !g.contains("HALL OF SHAME") || !g.contains("Manki") || !g.contains("7 clicks") {
		t.Error("leaderboard view incomplete")
	}
	if g.contains("YOU WON") {
		t.Error("board should replace the play view")
	}

	g = newGrid(80, 24)
	r.Draw(g, View{Snap: snap, ShowBoard: true})
	if !g.contains("No scores yet") {
		t.Error("empty board message missing")
	}
}

func TestTinyScreen(t *testing.T) {
	g := newGrid(12, 6)
	NewRenderer(true, vmath.NewScriptedRand(0)).Draw(g, View{Snap: hoverSnap()})
	if !g.contains("Terminal") {
		t.Error("small terminal should show a notice")
	}
	NewRenderer(true, vmath.NewScriptedRand(0)).Draw(newGrid(0, 0), View{Snap: hoverSnap()})
}

func TestShakeJitter(t *testing.T) {
	snap := hoverSnap()
	snap.Shake = 0.3
	area := PlayArea(40, 20)
	// Draws of 0.5 and 0.99 pick offsets 0 and +1
	for _, tt := range []struct {
		draw float64
		left int
	}{{0.5, area.X - 1}, {0.99, area.X}} {
		g := newGrid(40, 20)
		NewRenderer(true, vmath.NewScriptedRand(tt.draw)).Draw(g, View{Snap: snap})
		if g.cells[[2]int{tt.left, area.Y + area.Height/2}] != '│' {
			t.Errorf("draw %v: left border not at column %d", tt.draw, tt.left)
		}
	}
}

func TestDebugTelemetryRow(t *testing.T) {
	g := newGrid(80, 24)
	NewRenderer(true, vmath.NewScriptedRand(0)).Draw(g, View{Snap: hoverSnap(), Debug: true, Telemetry: []string{"engine.ticks=12"}})
	if !strings.Contains(g.row(22), "engine.ticks=12") {
		t.Errorf("telemetry row = %q", g.row(22))
	}
}

func TestFrameOnSimulationScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(80, 24)

	NewRenderer(true, vmath.NewFastRand(1)).Frame(screen, View{Snap: hoverSnap()})
}
