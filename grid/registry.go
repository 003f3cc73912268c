package grid

import (
	"sync"

	"github.com/google/uuid"
)

// Registry tracks live grids by ID so a host embedding several tables on
// one page can route events to the right widget.
type Registry struct {
	mu    sync.Mutex
	grids map[string]*Grid
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{grids: make(map[string]*Grid)}
}

// Register adds a grid and returns its generated ID.
func (r *Registry) Register(g *Grid) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := uuid.New().String()
	r.grids[id] = g
	return id
}

// Lookup returns the grid for an ID, or false when it was never registered
// or has been removed.
func (r *Registry) Lookup(id string) (*Grid, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.grids[id]
	return g, ok
}

// Unregister removes a grid. Removing an unknown ID is a no-op.
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.grids, id)
}

// Len reports how many grids are registered.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.grids)
}
