package leaderboard

import (
	"fmt"

	"github.com/lixenwraith/hover-hell/vmath"
)

var (
	statusHigh = []string{
		"Definitely Not Cheating",
		"Suspiciously Good",
		"Pure Luck (Obviously)",
		"Probably Used Both Hands",
		"Must Have Had Coffee",
	}
	statusMedium = []string{
		"Not Terrible",
		"Could Be Worse",
		"Gave Up After This",
		"Needs More Practice",
		"Almost Acceptable",
	}
	statusLow = []string{
		"Rage Quit Immediately",
		"Still Doesn't Understand",
		"Mouse Slipped",
		"Haven't Even Tried Yet!",
		"Spectacular Failure",
		"Better Luck Next Time",
	}
)

// band thresholds per game type: high at or above first, medium at or above second
var bands = map[string][2]int{
	"hover": {8, 4},
	"click": {8, 5},
	"avoid": {20, 10},
}

var otherBand = [2]int{3, 1}

// StatusPool returns the label pool a score falls into
func StatusPool(score int, gameType string) []string {
	band, ok := bands[gameType]
	if !ok {
		band = otherBand
	}
	switch {
	case score >= band[0]:
		return statusHigh
	case score >= band[1]:
		return statusMedium
	default:
		return statusLow
	}
}

// SarcasticStatus picks a random label from the score's pool
func SarcasticStatus(rng vmath.Rand, score int, gameType string) string {
	return vmath.Pick(rng, StatusPool(score, gameType))
}

// FormatScore renders a score in the unit of its game
func FormatScore(score int, gameType string) string {
	switch gameType {
	case "hover":
		return fmt.Sprintf("%.1fs", float64(score)/10)
	case "click":
		return fmt.Sprintf("%d clicks", score)
	case "avoid":
		return fmt.Sprintf("%d points", score)
	case "memory":
		return fmt.Sprintf("Level %d", score)
	}
	return fmt.Sprintf("%d", score)
}

var displayNames = map[string]string{
	"hover":  "Hover Hell",
	"click":  "Click Chaos",
	"avoid":  "Dodge Disaster",
	"memory": "Memory Mayhem",
}

// DisplayName returns the title of a game type, or the type itself when unknown
func DisplayName(gameType string) string {
	if n, ok := displayNames[gameType]; ok {
		return n
	}
	return gameType
}
