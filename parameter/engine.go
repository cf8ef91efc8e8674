package parameter

import "time"

// Game Loop & Engine Timing
const (
	// TickInterval is the fixed simulation step driven by the clock scheduler
	TickInterval = 100 * time.Millisecond

	// FrameInterval is the render cadence, independent of simulation
	FrameInterval = 33 * time.Millisecond

	// PausedSleepFactor multiplies the tick while paused to save CPU
	PausedSleepFactor = 2
)

// Play Area
const (
	// AreaMax is the extent of the normalized coordinate space on each axis
	AreaMax = 100.0

	// TargetCellsWide and TargetCellsHigh are the drawn size of the target box
	TargetCellsWide = 5
	TargetCellsHigh = 3

	// MinAreaCells is the smallest usable play area; smaller counts as unmeasured
	MinAreaCells = 8
)

// Leaderboard
const (
	// LeaderboardKey is the single storage key holding the serialized score list
	LeaderboardKey = "detox-leaderboard"

	// LeaderboardMaxEntries caps the stored list
	LeaderboardMaxEntries = 10

	// LeaderboardDefaultLimit is the per-game top list size
	LeaderboardDefaultLimit = 5
)
