package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/hover-hell/input"
)

// Screen rows outside the play area
const (
	rowTitle     = 0
	rowMeter     = 1
	rowBorderTop = 2
	footerRows   = 3 // bottom border, telemetry, key help
)

// Surface is the drawing target, satisfied by tcell.Screen
type Surface interface {
	Size() (width, height int)
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// PlayArea returns the cell rectangle inside the border for a screen size
func PlayArea(width, height int) input.Area {
	a := input.Area{X: 1, Y: rowBorderTop + 1, Width: width - 2, Height: height - rowBorderTop - 1 - footerRows}
	a.Width = max(a.Width, 0)
	a.Height = max(a.Height, 0)
	return a
}

// drawText writes s from x, clipped at limit, and returns the column after the last cell
// Zero-width runes are skipped; a wide rune that would cross limit ends the line
func drawText(s Surface, x, y, limit int, text string, style tcell.Style) int {
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > limit {
			break
		}
		s.SetContent(x, y, r, nil, style)
		x += w
	}
	return x
}

// fill paints a run of one rune
func fill(s Surface, x, y, n int, r rune, style tcell.Style) {
	for i := 0; i < n; i++ {
		s.SetContent(x+i, y, r, nil, style)
	}
}

// clipWidth truncates text to at most w terminal columns
func clipWidth(text string, w int) string {
	if runewidth.StringWidth(text) <= w {
		return text
	}
	return runewidth.Truncate(text, w, "")
}
