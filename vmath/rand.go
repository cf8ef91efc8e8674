package vmath

import (
	"sync"
)

// Rand is the random source consumed by game logic
// Float64 returns a value in [0, 1)
type Rand interface {
	Float64() float64
}

// Range returns a uniform value in [min, max)
func Range(r Rand, min, max float64) float64 {
	return min + r.Float64()*(max-min)
}

// Chance reports a Bernoulli draw with probability p
// Always consumes one draw so scripted sequences stay aligned
func Chance(r Rand, p float64) bool {
	return r.Float64() < p
}

// Intn returns a uniform int in [0, n)
func Intn(r Rand, n int) int {
	if n <= 0 {
		return 0
	}
	i := int(r.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

// Pick returns a uniformly chosen element, zero value for empty input
func Pick[T any](r Rand, items []T) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	return items[Intn(r, len(items))]
}

// FastRand is a xorshift64 generator, not safe for concurrent use
type FastRand struct {
	state uint64
}

func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// Float64 uses the top 53 bits for a uniform mantissa
func (r *FastRand) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}

// ScriptedRand replays a fixed sequence of draws, cycling when exhausted
// Used by tests to pin policy choices
type ScriptedRand struct {
	mu     sync.Mutex
	values []float64
	pos    int
}

func NewScriptedRand(values ...float64) *ScriptedRand {
	if len(values) == 0 {
		values = []float64{0.5}
	}
	return &ScriptedRand{values: values}
}

func (s *ScriptedRand) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.values[s.pos%len(s.values)]
	s.pos++
	return v
}

// Draws returns how many values were consumed
func (s *ScriptedRand) Draws() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos
}
