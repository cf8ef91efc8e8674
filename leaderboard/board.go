package leaderboard

import (
	"cmp"
	"encoding/json"
	"errors"
	"log"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/hover-hell/parameter"
	"github.com/lixenwraith/hover-hell/vmath"
)

// DefaultPlayer replaces a blank player name
const DefaultPlayer = "Anonymous Player"

// Entry is one persisted score
type Entry struct {
	ID         string `json:"id"`
	PlayerName string `json:"playerName"`
	GameType   string `json:"gameType"`
	Score      int    `json:"score"`
	Timestamp  int64  `json:"timestamp"` // unix millis
	Status     string `json:"status"`
}

// Board is the best-first score list stored as one JSON blob
// Persistence is best-effort: storage errors are logged, never returned to gameplay
type Board struct {
	mu    sync.Mutex
	store Store
	key   string
	rng   vmath.Rand
	now   func() time.Time
	newID func() string
}

func NewBoard(store Store, rng vmath.Rand) *Board {
	return &Board{
		store: store,
		key:   parameter.LeaderboardKey,
		rng:   rng,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// AddScore inserts an entry, keeps the top entries and writes the list back
func (b *Board) AddScore(playerName, gameType string, score int) Entry {
	name := strings.TrimSpace(playerName)
	if name == "" {
		name = DefaultPlayer
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	entry := Entry{
		ID:         b.newID(),
		PlayerName: name,
		GameType:   gameType,
		Score:      score,
		Timestamp:  b.now().UnixMilli(),
		Status:     SarcasticStatus(b.rng, score, gameType),
	}

	entries := append(b.load(), entry)
	sortBest(entries)
	if len(entries) > parameter.LeaderboardMaxEntries {
		entries = entries[:parameter.LeaderboardMaxEntries]
	}

	data, err := json.Marshal(entries)
	if err != nil {
		log.Printf("leaderboard: encode: %v", err)
		return entry
	}
	if err := b.store.Set(b.key, data); err != nil {
		log.Printf("leaderboard: could not save score: %v", err)
	}
	return entry
}

// All returns the stored list, empty when missing, unreadable or corrupt
func (b *Board) All() []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.load()
}

// TopForGame returns the best entries of one game type; limit <= 0 uses the default
func (b *Board) TopForGame(gameType string, limit int) []Entry {
	if limit <= 0 {
		limit = parameter.LeaderboardDefaultLimit
	}
	var out []Entry
	for _, e := range b.All() {
		if e.GameType == gameType {
			out = append(out, e)
		}
	}
	sortBest(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Clear removes the stored list
func (b *Board) Clear() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.store.Delete(b.key)
}

func (b *Board) load() []Entry {
	data, err := b.store.Get(b.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("leaderboard: read: %v", err)
		}
		return []Entry{}
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Printf("leaderboard: corrupt list: %v", err)
		return []Entry{}
	}
	return entries
}

// sortBest orders by score descending; ties keep insertion order
func sortBest(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return cmp.Compare(b.Score, a.Score)
	})
}
