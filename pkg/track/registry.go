package track

import (
	"fmt"
	"sync"
)

// Registry assigns unique default names to tracks. Each track type
// carries its own counter, so the first unnamed Bed track becomes
// "Bed.1", the second "Bed.2", and so on. Explicit names bypass the
// counter entirely.
type Registry struct {
	mu     sync.Mutex
	counts map[string]int
}

// NewRegistry returns an empty registry with all counters at zero.
func NewRegistry() *Registry {
	return &Registry{counts: make(map[string]int)}
}

// Name returns explicit when non-empty, otherwise the next
// "{typ}.{ordinal}" name for the type.
func (r *Registry) Name(typ, explicit string) string {
	if explicit != "" {
		return explicit
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[typ]++
	return fmt.Sprintf("%s.%d", typ, r.counts[typ])
}

// Reset zeroes every counter. Intended for tests.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts = make(map[string]int)
}

// DefaultRegistry names tracks built without an explicit registry.
var DefaultRegistry = NewRegistry()
