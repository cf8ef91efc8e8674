package render

import (
	"github.com/gdamore/tcell/v2"
)

// Palette, Tokyo Night base
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)
	RgbForeground = tcell.NewRGBColor(192, 202, 245)
	RgbDim        = tcell.NewRGBColor(86, 95, 137)
	RgbBorder     = tcell.NewRGBColor(122, 162, 247)
	RgbBorderHot  = tcell.NewRGBColor(247, 118, 142) // border while shaking

	RgbTargetIdle = tcell.NewRGBColor(255, 158, 100) // orange, pointer off target
	RgbTargetHit  = tcell.NewRGBColor(158, 206, 106) // green, pointer on target
	RgbTeleport   = tcell.NewRGBColor(187, 154, 247) // purple flash after a jump

	RgbTaunt     = tcell.NewRGBColor(224, 175, 104)
	RgbSabotage  = tcell.NewRGBColor(255, 80, 80)
	RgbMilestone = tcell.NewRGBColor(125, 207, 255)

	RgbWin  = tcell.NewRGBColor(50, 255, 50)
	RgbLoss = tcell.NewRGBColor(255, 80, 80)

	RgbStatusBg   = tcell.NewRGBColor(135, 206, 250)
	RgbStatusText = tcell.NewRGBColor(0, 0, 0)
	RgbMeterEmpty = tcell.NewRGBColor(40, 42, 54)
)

// MeterColor grades the lock-on meter from red through yellow to green
// progress is 0.0 to 1.0
func MeterColor(progress float64) tcell.Color {
	switch {
	case progress <= 0:
		return tcell.NewRGBColor(139, 0, 0)
	case progress >= 1:
		return tcell.NewRGBColor(50, 255, 50)
	case progress < 0.5: // red to yellow
		t := progress / 0.5
		return tcell.NewRGBColor(int32(139+(255-139)*t), int32(215*t), 0)
	default: // yellow to green
		t := (progress - 0.5) / 0.5
		return tcell.NewRGBColor(int32(255-(255-50)*t), int32(215+(255-215)*t), int32(50*t))
	}
}

// Styles resolves the palette, or terminal defaults when color is off
type Styles struct {
	Base, Dim, Border, BorderHot    tcell.Style
	TargetIdle, TargetHit, Teleport tcell.Style
	Taunt, Sabotage, Milestone      tcell.Style
	Win, Loss, Status, MeterEmpty   tcell.Style
	color                           bool
}

func NewStyles(color bool) Styles {
	if !color {
		d := tcell.StyleDefault
		return Styles{
			Base: d, Dim: d.Dim(true), Border: d, BorderHot: d.Bold(true),
			TargetIdle: d.Reverse(true), TargetHit: d.Reverse(true).Bold(true), Teleport: d.Reverse(true),
			Taunt: d, Sabotage: d.Bold(true), Milestone: d.Underline(true),
			Win: d.Bold(true), Loss: d.Bold(true), Status: d.Reverse(true), MeterEmpty: d.Dim(true),
		}
	}
	base := tcell.StyleDefault.Background(RgbBackground).Foreground(RgbForeground)
	return Styles{
		Base:       base,
		Dim:        base.Foreground(RgbDim),
		Border:     base.Foreground(RgbBorder),
		BorderHot:  base.Foreground(RgbBorderHot).Bold(true),
		TargetIdle: base.Foreground(RgbTargetIdle),
		TargetHit:  base.Foreground(RgbTargetHit),
		Teleport:   base.Foreground(RgbTeleport),
		Taunt:      base.Foreground(RgbTaunt),
		Sabotage:   base.Foreground(RgbSabotage).Bold(true),
		Milestone:  base.Foreground(RgbMilestone),
		Win:        base.Foreground(RgbWin).Bold(true),
		Loss:       base.Foreground(RgbLoss).Bold(true),
		Status:     tcell.StyleDefault.Background(RgbStatusBg).Foreground(RgbStatusText),
		MeterEmpty: base.Foreground(RgbMeterEmpty),
		color:      true,
	}
}

// Meter returns the filled meter style at a progress fraction
func (s Styles) Meter(progress float64) tcell.Style {
	if !s.color {
		return s.Base.Reverse(true)
	}
	return s.Base.Foreground(MeterColor(progress))
}
