package input

import (
	"github.com/gdamore/tcell/v2"
)

// IntentType is a semantic action decoded from a terminal event
type IntentType uint8

const (
	IntentNone IntentType = iota

	IntentQuit          // q, Esc, Ctrl+C
	IntentRestart       // r
	IntentPause         // p
	IntentMute          // m
	IntentLeaderboard   // l
	IntentSwitchVariant // Tab

	IntentPointer // mouse motion
	IntentClick   // primary button press
	IntentResize
)

// Intent carries the action and, for mouse intents, the cell
type Intent struct {
	Type IntentType
	X, Y int
}

// runeIntents maps printable keys, case-insensitive via lower-case lookup
var runeIntents = map[rune]IntentType{
	'q': IntentQuit,
	'r': IntentRestart,
	'p': IntentPause,
	'm': IntentMute,
	'l': IntentLeaderboard,
}

var keyIntents = map[tcell.Key]IntentType{
	tcell.KeyEscape: IntentQuit,
	tcell.KeyCtrlC:  IntentQuit,
	tcell.KeyTab:    IntentSwitchVariant,
}

// KeyIntent decodes a key press
func KeyIntent(key tcell.Key, ch rune) IntentType {
	if key == tcell.KeyRune {
		if ch >= 'A' && ch <= 'Z' {
			ch += 'a' - 'A'
		}
		return runeIntents[ch]
	}
	return keyIntents[key]
}

// MouseIntent decodes a mouse report; a pressed primary button is a click
func MouseIntent(x, y int, buttons tcell.ButtonMask) Intent {
	if buttons&tcell.Button1 != 0 {
		return Intent{Type: IntentClick, X: x, Y: y}
	}
	return Intent{Type: IntentPointer, X: x, Y: y}
}

// Translate decodes a tcell event
func Translate(ev tcell.Event) Intent {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return Intent{Type: KeyIntent(e.Key(), e.Rune())}
	case *tcell.EventMouse:
		x, y := e.Position()
		return MouseIntent(x, y, e.Buttons())
	case *tcell.EventResize:
		return Intent{Type: IntentResize}
	}
	return Intent{}
}

// ClickEdge filters held-button reports so one press yields one click
type ClickEdge struct {
	down bool
}

// Press reports true only on the transition from released to pressed
func (c *ClickEdge) Press(in Intent) bool {
	pressed := in.Type == IntentClick
	edge := pressed && !c.down
	c.down = pressed
	return edge
}
