package guards

import (
	"fmt"
	"sort"
	"sync"

	"github.com/termfx/hintfix/core"
)

// CollisionPolicy decides what Register does when a name is taken.
type CollisionPolicy int

const (
	// Reject refuses duplicate registrations.
	Reject CollisionPolicy = iota
	// Override replaces the previous registration.
	Override
)

// Registry maps guard function names to implementations. It satisfies
// core.GuardResolver, so it can be handed to evaluation directly.
type Registry struct {
	mu     sync.RWMutex
	policy CollisionPolicy
	funcs  map[string]core.GuardFunction
}

// NewRegistry creates an empty registry with the given collision policy.
func NewRegistry(policy CollisionPolicy) *Registry {
	return &Registry{policy: policy, funcs: make(map[string]core.GuardFunction)}
}

// Register adds a guard function. Under Reject, a duplicate name is an
// error; under Override, the newer registration wins.
func (r *Registry) Register(name string, fn core.GuardFunction) error {
	if name == "" {
		return fmt.Errorf("guard function name must not be empty")
	}
	if fn == nil {
		return fmt.Errorf("guard function %q must not be nil", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.funcs[name]; exists && r.policy == Reject {
		return fmt.Errorf("guard function %q already registered", name)
	}
	r.funcs[name] = fn
	return nil
}

// Resolve implements core.GuardResolver.
func (r *Registry) Resolve(name string) (core.GuardFunction, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.funcs[name]
	return fn, ok
}

// Names returns every registered name, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
