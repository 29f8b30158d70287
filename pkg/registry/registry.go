package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/stencil/pkg/domain"
	"github.com/aretw0/stencil/pkg/sketch"
)

// Factory builds a tool bound to a scene. Tools capture their scene, so a new
// tool is built for every scene it runs on.
type Factory func(scene *sketch.Scene) (*domain.Tool, error)

// Registry manages the available tools.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Factory
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Factory),
	}
}

// Register adds a tool to the registry.
// If a tool with the same id exists, it is overwritten.
func (r *Registry) Register(id string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[id] = f
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tools[id]
	return ok
}

// IDs returns the registered ids in alphabetical order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.tools))
	for id := range r.tools {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Build looks up a tool by id and builds it for scene.
// Returns an error wrapping domain.ErrToolNotFound if the tool is not found.
func (r *Registry) Build(id string, scene *sketch.Scene) (*domain.Tool, error) {
	r.mu.RLock()
	f, ok := r.tools[id]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrToolNotFound, id)
	}

	tool, err := f(scene)
	if err != nil {
		return nil, fmt.Errorf("build tool %s: %w", id, err)
	}
	return tool, nil
}
