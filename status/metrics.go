package status

import (
	"math"
	"strconv"
	"sync/atomic"
)

// Metric is a telemetry cell that renders its current value for the debug line
type Metric interface {
	Format() string
}

// Counter is an integer cell; the embedded atomic carries Add, Store and Load
type Counter struct {
	atomic.Int64
}

func (c *Counter) Format() string { return strconv.FormatInt(c.Load(), 10) }

// Flag is a boolean cell
type Flag struct {
	atomic.Bool
}

func (f *Flag) Format() string { return strconv.FormatBool(f.Load()) }

// Gauge is a float cell stored as IEEE bits
type Gauge struct {
	bits atomic.Uint64
}

func (g *Gauge) Set(v float64) { g.bits.Store(math.Float64bits(v)) }

func (g *Gauge) Get() float64 { return math.Float64frombits(g.bits.Load()) }

func (g *Gauge) Format() string { return strconv.FormatFloat(g.Get(), 'f', 2, 64) }

// Label is a short text cell such as a mode or status name
type Label struct {
	val atomic.Pointer[string]
}

func (l *Label) Set(v string) { l.val.Store(&v) }

func (l *Label) Get() string {
	if p := l.val.Load(); p != nil {
		return *p
	}
	return ""
}

func (l *Label) Format() string { return l.Get() }
