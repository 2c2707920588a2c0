package backend

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/agbru/fasteint/internal/cshift"
	"github.com/agbru/fasteint/internal/oracle"
)

// optional holds backends compiled in behind build tags.
var optional []Kernels

// Registry maps backend names to implementations. Full kernel sets and
// shift-only implementations share one namespace.
type Registry struct {
	mu       sync.RWMutex
	kernels  map[string]Kernels
	shifters map[string]Shifter
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		kernels:  make(map[string]Kernels),
		shifters: make(map[string]Shifter),
	}
}

// NewDefaultRegistry returns a registry holding the fast kernels, the
// big.Int and math/big vector references, any tagged backends, and the C
// shift when it was built.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(Fast{})
	r.Register(oracle.Big{})
	r.Register(oracle.Words{})
	for _, k := range optional {
		r.Register(k)
	}
	if cshift.Available() {
		r.RegisterShifter(cshift.Shifter{})
	}
	return r
}

// Register adds a full kernel set, replacing any backend of the same name.
func (r *Registry) Register(k Kernels) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.shifters, k.Name())
	r.kernels[k.Name()] = k
}

// RegisterShifter adds a shift-only implementation.
func (r *Registry) RegisterShifter(s Shifter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.kernels, s.Name())
	r.shifters[s.Name()] = s
}

// List returns every registered name, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listLocked()
}

// Kernels returns the full kernel set registered under name.
func (r *Registry) Kernels(name string) (Kernels, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if k, ok := r.kernels[name]; ok {
		return k, nil
	}
	return nil, fmt.Errorf("unknown backend %q (available: %s)", name, strings.Join(r.listLocked(), ", "))
}

// Shifter returns the shift implementation registered under name, which may
// be a full kernel set.
func (r *Registry) Shifter(name string) (Shifter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.shifters[name]; ok {
		return s, nil
	}
	if k, ok := r.kernels[name]; ok {
		return k, nil
	}
	return nil, fmt.Errorf("unknown backend %q (available: %s)", name, strings.Join(r.listLocked(), ", "))
}

func (r *Registry) listLocked() []string {
	names := make([]string, 0, len(r.kernels)+len(r.shifters))
	for name := range r.kernels {
		names = append(names, name)
	}
	for name := range r.shifters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Selection is the outcome of resolving a backend list against a registry.
type Selection struct {
	// Kernels are full kernel sets in name order.
	Kernels []Kernels
	// Shifters are shift-only implementations in name order.
	Shifters []Shifter
}

// Select resolves a comma-separated list of backend names. "all" or an
// empty string selects everything registered.
func (r *Registry) Select(list string) (Selection, error) {
	var names []string
	list = strings.TrimSpace(list)
	if list == "" || list == "all" {
		names = r.List()
	} else {
		for _, n := range strings.Split(list, ",") {
			names = append(names, strings.TrimSpace(n))
		}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	var sel Selection
	for _, name := range names {
		if k, ok := r.kernels[name]; ok {
			sel.Kernels = append(sel.Kernels, k)
			continue
		}
		if s, ok := r.shifters[name]; ok {
			sel.Shifters = append(sel.Shifters, s)
			continue
		}
		return Selection{}, fmt.Errorf("unknown backend %q (available: %s)", name, strings.Join(r.listLocked(), ", "))
	}
	return sel, nil
}
