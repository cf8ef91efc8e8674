package input

import (
	"sync/atomic"

	"github.com/lixenwraith/hover-hell/parameter"
	"github.com/lixenwraith/hover-hell/vmath"
)

// Area is the play area in screen cells
type Area struct {
	X, Y          int
	Width, Height int
}

// Ready reports whether the area is large enough to play in
func (a Area) Ready() bool {
	return a.Width >= parameter.MinAreaCells && a.Height >= parameter.MinAreaCells
}

// Contains reports whether a cell lies inside the area
func (a Area) Contains(x, y int) bool {
	return x >= a.X && x < a.X+a.Width && y >= a.Y && y < a.Y+a.Height
}

// Normalize maps a cell to 0-100 area coordinates, measuring from the cell center
// Cells outside the area clamp to the nearest edge
func (a Area) Normalize(x, y int) vmath.Vec2 {
	if a.Width <= 0 || a.Height <= 0 {
		return vmath.Center
	}
	return vmath.ClampVec(vmath.Vec2{
		X: (float64(x-a.X) + 0.5) * parameter.AreaMax / float64(a.Width),
		Y: (float64(y-a.Y) + 0.5) * parameter.AreaMax / float64(a.Height),
	}, 0, parameter.AreaMax)
}

// Cell maps area coordinates back to the containing screen cell
func (a Area) Cell(v vmath.Vec2) (x, y int) {
	col := int(v.X * float64(a.Width) / parameter.AreaMax)
	row := int(v.Y * float64(a.Height) / parameter.AreaMax)
	return a.X + min(max(col, 0), a.Width-1), a.Y + min(max(row, 0), a.Height-1)
}

type sample struct {
	pos   vmath.Vec2
	ready bool
}

// Tracker holds the latest pointer sample; the newest write always wins
// Writers are the input goroutine, the reader is the simulation step
type Tracker struct {
	area    atomic.Pointer[Area]
	current atomic.Pointer[sample]
	cellX   atomic.Int64
	cellY   atomic.Int64
	seen    atomic.Bool
}

func NewTracker() *Tracker {
	t := &Tracker{}
	t.area.Store(&Area{})
	t.current.Store(&sample{pos: vmath.Center})
	return t
}

// SetArea updates the play area and renormalizes the last seen cell
func (t *Tracker) SetArea(a Area) {
	t.area.Store(&a)
	if t.seen.Load() {
		t.Move(int(t.cellX.Load()), int(t.cellY.Load()))
		return
	}
	t.current.Store(&sample{pos: vmath.Center, ready: a.Ready()})
}

// Area returns the current play area
func (t *Tracker) Area() Area {
	return *t.area.Load()
}

// Move records a pointer position in screen cells
func (t *Tracker) Move(x, y int) {
	t.cellX.Store(int64(x))
	t.cellY.Store(int64(y))
	t.seen.Store(true)
	a := t.area.Load()
	t.current.Store(&sample{pos: a.Normalize(x, y), ready: a.Ready()})
}

// Pointer returns the latest normalized sample and whether the area is ready
func (t *Tracker) Pointer() (vmath.Vec2, bool) {
	s := t.current.Load()
	return s.pos, s.ready
}
