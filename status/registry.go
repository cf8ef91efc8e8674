package status

import (
	"fmt"
	"slices"
	"sync"
)

// Registry is the shared telemetry board written by the engine, session and shell
// Writers look a cell up once and keep the pointer; only lookup and Lines take the lock
type Registry struct {
	mu    sync.Mutex
	cells map[string]Metric
}

func NewRegistry() *Registry {
	return &Registry{cells: make(map[string]Metric)}
}

func (r *Registry) Counter(key string) *Counter { return cell[Counter](r, key) }

func (r *Registry) Flag(key string) *Flag { return cell[Flag](r, key) }

func (r *Registry) Gauge(key string) *Gauge { return cell[Gauge](r, key) }

func (r *Registry) Label(key string) *Label { return cell[Label](r, key) }

// cell returns the metric under key, creating it on first use
// Reusing a key with another metric kind is a wiring bug and panics
func cell[T any, PT interface {
	*T
	Metric
}](r *Registry, key string) PT {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.cells[key]; ok {
		p, ok := m.(PT)
		if !ok {
			panic(fmt.Sprintf("status: %q registered as %T", key, m))
		}
		return p
	}
	p := PT(new(T))
	r.cells[key] = p
	return p
}

// Len returns the number of registered cells
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cells)
}

// Lines renders every cell as "key=value" in key order
func (r *Registry) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]string, 0, len(r.cells))
	for k := range r.cells {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k + "=" + r.cells[k].Format()
	}
	return out
}
