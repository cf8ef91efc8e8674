package taunt

import (
	"fmt"
	"strings"
)

// Kind tags what a taunt is reacting to
type Kind uint8

const (
	KindAmbient Kind = iota
	KindFlee
	KindTeleport
	KindSabotage
	KindMilestone
	KindEncouragement
	KindSessionStart
	KindWin
	KindLoss
	KindClick
	KindDodge
	KindLevelUp
	KindInverted
	KindGolden
)

var kindNames = [...]string{
	"ambient", "flee", "teleport", "sabotage", "milestone",
	"encouragement", "session-start", "win", "loss", "click",
	"dodge", "level-up", "inverted", "golden",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Placeholders expanded in catalog lines
const (
	phName  = "{name}"
	phValue = "{value}"
)

// catalog holds the message pool per kind
// {name} is the player, {value} is the kind-specific number (penalty, streak, score)
var catalog = map[Kind][]string{
	KindAmbient: {
		"{name}, your mouse skills are... questionable",
		"Come on {name}, focus! Oh wait, that's impossible here",
		"{name}, the box is laughing at you!",
		"Nice try {name}, but the box has trust issues",
		"{name}, maybe try using both hands?",
		"The box thinks you're too slow, {name}!",
		"{name}, I believe in you! (Just kidding)",
		"Stay calm {name}... LOOK BEHIND YOU!",
	},
	KindFlee: {
		"Nope. Not today, {name}.",
		"Too close, {name}! The box has boundaries.",
		"You almost had it. Almost.",
		"Personal space, {name}!",
		"The box felt that. It did not like it.",
		"Your reflexes are slower than a sloth on vacation",
	},
	KindTeleport: {
		"Teleport! The box escaped from {name}!",
		"Poof. Good luck finding it, {name}.",
		"The box filed a restraining order.",
	},
	KindSabotage: {
		"Oops! The timer got confused and ate {value}s, {name}!",
		"Sabotage! -{value}s. Nothing personal, {name}.",
		"A cosmic ray flipped {value}s off your timer. Sorry not sorry.",
	},
	KindMilestone: {
		"{value} seconds?! Suspicious, {name}.",
		"Streak {value}. Don't get cocky, {name}.",
		"{value}s in. The box is getting nervous.",
	},
	KindEncouragement: {
		"Fine, {name}. The box will play a little fair. A little.",
		"Okay {name}, you're not completely hopeless.",
	},
	KindSessionStart: {
		"Back in the ring, {name}. Try not to embarrass yourself again.",
		"Welcome to Hover Hell, {name}. Abandon hope.",
	},
	KindWin: {
		"Impossible! {name} actually did it! Score {value}.",
		"{name} wins with {value}. We're checking the replays.",
	},
	KindLoss: {
		"Time's up {name}! Final score {value}. Pathetic.",
		"Game over, {name}. {value} points of pure mediocrity.",
	},
	KindClick: {
		"{name}, your clicking speed is... concerning",
		"Faster {name}! The box is getting bored!",
		"{name}, are you clicking or just admiring the box?",
		"Click like your dignity depends on it, {name}!",
	},
	KindDodge: {
		"{name}, are you trying to get hit?",
		"Is your mouse asleep, {name}?",
		"Bold move. We'll remember that.",
		"That was almost skill. Almost.",
		"You're like a magnet for trouble.",
		"The obstacles have formed a union.",
		"Pro tip: not getting hit helps.",
		"You call that dodging? I've seen snails with better moves",
		"You're dodging like my grandpa dodges questions",
	},
	KindLevelUp: {
		"Level {value}! Things are getting spicy. Not that you'll last long!",
		"Level {value}, {name}. The obstacles just got a raise.",
	},
	KindInverted: {
		"Controls inverted! Good luck, you'll need it!",
		"Left is right now, {name}. Enjoy.",
	},
	KindGolden: {
		"You greedy genius! +{value} points {name}!",
		"+{value}! Even a broken clock, {name}...",
	},
}

// Lines returns the message pool for a kind
func Lines(kind Kind) []string {
	return catalog[kind]
}

// Render expands placeholders in a catalog line
func Render(line, player string, value float64) string {
	r := strings.NewReplacer(phName, player, phValue, formatValue(value))
	return r.Replace(line)
}

// formatValue prints whole numbers without decimals and the rest with two
func formatValue(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
