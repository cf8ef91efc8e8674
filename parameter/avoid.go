package parameter

import (
	"fmt"
	"time"
)

// AvoidTuning drives the obstacle field of the avoid variant
// Speeds and rates are per second of session time
type AvoidTuning struct {
	InitialObstacles int     `toml:"initial_obstacles"`
	PlayerRadius     float64 `toml:"player_radius"`
	PlayerMin        float64 `toml:"player_min"` // avatar clamp on both axes
	PlayerMax        float64 `toml:"player_max"`

	// Spawning
	SpawnRate       float64 `toml:"spawn_rate"`     // per second at level 1, score 0
	SpawnSoftCap    int     `toml:"spawn_soft_cap"` // no timed spawns at or above cap+level+score/3
	SpawnHardCap    int     `toml:"spawn_hard_cap"` // no spawns at all above cap+2*level+score/5
	SpawnMargin     float64 `toml:"spawn_margin"`   // edge spawns start this far outside the area
	NearSpawnChance float64 `toml:"near_spawn_chance"`
	NearSpawnMin    float64 `toml:"near_spawn_min"`
	NearSpawnMax    float64 `toml:"near_spawn_max"`

	// Motion
	BaseSpeed         float64 `toml:"base_speed"`
	SpeedPerLevel     float64 `toml:"speed_per_level"`
	NearSpeedPerLevel float64 `toml:"near_speed_per_level"`
	CrossSpeed        float64 `toml:"cross_speed"` // full width of the sideways drift band
	Wobble            float64 `toml:"wobble"`
	WobblePerLevel    float64 `toml:"wobble_per_level"`
	SizeMin           float64 `toml:"size_min"`
	SizeMax           float64 `toml:"size_max"`

	// Special obstacles
	GoldenChance   float64 `toml:"golden_chance"`
	GoldenBonus    int     `toml:"golden_bonus"`
	FakeChance     float64 `toml:"fake_chance"`
	FakeVanishRate float64 `toml:"fake_vanish_rate"` // per second
	FakePopupRate  float64 `toml:"fake_popup_rate"`  // per second
	FakeDrift      float64 `toml:"fake_drift"`

	// Near misses
	NearDistance      float64       `toml:"near_distance"`
	NearShake         float64       `toml:"near_shake"`
	NearTauntCooldown time.Duration `toml:"near_taunt_cooldown"`

	// Levels
	LevelEvery         int           `toml:"level_every"` // survived seconds per level
	MaxLevel           int           `toml:"max_level"`
	InvertChance       float64       `toml:"invert_chance"`
	InvertDuration     time.Duration `toml:"invert_duration"`
	SurviveTauntChance float64       `toml:"survive_taunt_chance"` // rolled once per survived second
}

// DefaultAvoid returns the avoid baseline
func DefaultAvoid() AvoidTuning {
	return AvoidTuning{
		InitialObstacles: 6,
		PlayerRadius:     2.8,
		PlayerMin:        4.8,
		PlayerMax:        95.2,

		SpawnRate:       1.08,
		SpawnSoftCap:    16,
		SpawnHardCap:    28,
		SpawnMargin:     6,
		NearSpawnChance: 0.12,
		NearSpawnMin:    8,
		NearSpawnMax:    18,

		BaseSpeed:         36,
		SpeedPerLevel:     8.4,
		NearSpeedPerLevel: 7.2,
		CrossSpeed:        96,
		Wobble:            4.8,
		WobblePerLevel:    0.1,
		SizeMin:           2.8,
		SizeMax:           5.2,

		GoldenChance:   0.03,
		GoldenBonus:    5,
		FakeChance:     0.06,
		FakeVanishRate: 1.5,
		FakePopupRate:  0.42,
		FakeDrift:      36,

		NearDistance:      9,
		NearShake:         6,
		NearTauntCooldown: 2 * time.Second,

		LevelEvery:         10,
		MaxLevel:           10,
		InvertChance:       0.5,
		InvertDuration:     2500 * time.Millisecond,
		SurviveTauntChance: 0.25,
	}
}

func (a *AvoidTuning) validate() error {
	if a.InitialObstacles < 0 || a.SpawnSoftCap < 0 || a.SpawnHardCap < a.SpawnSoftCap {
		return fmt.Errorf("obstacle caps must satisfy 0 <= spawn_soft_cap <= spawn_hard_cap")
	}
	if a.PlayerRadius <= 0 || !validBand(a.PlayerMin, a.PlayerMax) {
		return fmt.Errorf("player radius must be positive and clamp inside [0,%v]", AreaMax)
	}
	if a.SizeMin <= 0 || a.SizeMax < a.SizeMin || a.NearSpawnMin < 0 || a.NearSpawnMax < a.NearSpawnMin {
		return fmt.Errorf("size and near-spawn bands invalid")
	}
	if a.SpawnRate < 0 || a.BaseSpeed < 0 || a.FakeVanishRate < 0 || a.FakePopupRate < 0 {
		return fmt.Errorf("rates and speeds must be non-negative")
	}
	if !probability(a.NearSpawnChance) || !probability(a.GoldenChance) || !probability(a.FakeChance) ||
		!probability(a.InvertChance) || !probability(a.SurviveTauntChance) {
		return fmt.Errorf("chances must be probabilities in [0,1]")
	}
	if a.LevelEvery < 1 || a.MaxLevel < 1 {
		return fmt.Errorf("level_every and max_level must be at least 1")
	}
	return nil
}
