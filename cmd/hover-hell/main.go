package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/hover-hell/engine"
	"github.com/lixenwraith/hover-hell/leaderboard"
	"github.com/lixenwraith/hover-hell/parameter"
)

var (
	nameFlag   = flag.String("name", "", "Player name used in taunts and the leaderboard")
	gameFlag   = flag.String("game", "hover", "Game variant: hover, click, avoid")
	seedFlag   = flag.Uint64("seed", 0, "Random seed, 0 seeds from the clock")
	tuningFlag = flag.String("tuning", "", "TOML file overriding tuning values")
	dbFlag     = flag.String("db", "hover-hell.db", "Leaderboard database path, empty keeps scores in memory")
	muteFlag   = flag.Bool("mute", false, "Run without sound")
	debugFlag  = flag.Bool("debug", false, "Log to logs/hover-hell.log and show telemetry")
	colorFlag  = flag.String("color", "auto", "Color mode: auto, on, off")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "hover-hell: %v\n", err)
		os.Exit(1)
	}
}

// run returns instead of exiting so every deferred cleanup runs before the error is printed
func run() error {
	// Restore the terminal before printing any crash
	defer func() {
		if r := recover(); r != nil {
			engine.HandleCrash(r)
		}
	}()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	tuning, err := loadTuning(*tuningFlag, parameter.Variant(*gameFlag))
	if err != nil {
		return err
	}

	seed := *seedFlag
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	player := strings.TrimSpace(*nameFlag)
	if player == "" {
		player = leaderboard.DefaultPlayer
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	engine.RegisterCrashScreen(screen)
	defer screen.Fini()

	screen.EnableMouse()
	screen.HideCursor()

	return play(screen, shellConfig{
		Tuning:     tuning,
		TuningPath: *tuningFlag,
		Player:     player,
		Seed:       seed,
		Mute:       *muteFlag,
		Debug:      *debugFlag,
		Color:      resolveColor(*colorFlag, screen.Colors()),
	}, *dbFlag)
}

// play owns the leaderboard store for one terminal session; the store is closed on every return path
func play(screen tcell.Screen, cfg shellConfig, dbPath string) error {
	store, closeStore := openStore(dbPath)
	defer closeStore()

	cfg.Screen = screen
	cfg.Store = store
	sh, err := newShell(cfg)
	if err != nil {
		return err
	}
	defer sh.Close()

	log.Printf("hover-hell: %s as %q, seed %d", cfg.Tuning.Variant, cfg.Player, cfg.Seed)
	sh.Run()
	return nil
}

// loadTuning returns the variant preset, layered with the TOML file when one is given
func loadTuning(path string, variant parameter.Variant) (parameter.Tuning, error) {
	if path == "" {
		t := parameter.ForVariant(variant)
		if !variant.Known() {
			t.Variant = variant
		}
		if err := t.Validate(); err != nil {
			return parameter.Tuning{}, fmt.Errorf("invalid tuning: %w", err)
		}
		return t, nil
	}
	return parameter.Load(path, variant)
}

// openStore opens the SQLite leaderboard, falling back to memory on failure or an empty path
func openStore(path string) (leaderboard.Store, func()) {
	if path == "" {
		return leaderboard.NewMemoryStore(), func() {}
	}
	db, err := leaderboard.OpenSQLite(path)
	if err != nil {
		log.Printf("leaderboard: %v, keeping scores in memory", err)
		return leaderboard.NewMemoryStore(), func() {}
	}
	return db, func() {
		if err := db.Close(); err != nil {
			log.Printf("leaderboard: close: %v", err)
		}
	}
}

func resolveColor(mode string, colors int) bool {
	switch mode {
	case "on", "true", "truecolor":
		return true
	case "off", "false", "mono":
		return false
	default:
		return colors >= 256
	}
}
