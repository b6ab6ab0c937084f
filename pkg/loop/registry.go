package loop

import (
	"fmt"

	"github.com/philipparndt/goloop/pkg/mesh"
)

// EdgeRegistry maps an undirected edge of the input mesh to the index of
// the midpoint vertex created for it, so that the two faces sharing an
// edge reuse one vertex.
type EdgeRegistry struct {
	indices map[mesh.Edge]int
}

// NewEdgeRegistry creates an empty registry sized for about capacity edges
func NewEdgeRegistry(capacity int) *EdgeRegistry {
	return &EdgeRegistry{
		indices: make(map[mesh.Edge]int, capacity),
	}
}

// Contains reports whether a midpoint is registered for e
func (r *EdgeRegistry) Contains(e mesh.Edge) bool {
	_, ok := r.indices[e]
	return ok
}

// Add registers index as the midpoint vertex of e.
// Registering the same edge twice overwrites the earlier index.
func (r *EdgeRegistry) Add(e mesh.Edge, index int) {
	r.indices[e] = index
}

// Index returns the midpoint index of e. It panics if e was never
// registered; check with Contains first.
func (r *EdgeRegistry) Index(e mesh.Edge) int {
	index, ok := r.indices[e]
	if !ok {
		panic(fmt.Sprintf("loop: no midpoint registered for edge %v", e))
	}
	return index
}

// Len returns the number of registered edges
func (r *EdgeRegistry) Len() int {
	return len(r.indices)
}
