package registry

import (
	"sort"
	"sync"

	"github.com/fwbo-viewer/fwbo/internal/model"
	"github.com/fwbo-viewer/fwbo/internal/scene"
)

// Context carries what a builder needs besides the shape itself.
type Context struct {
	Index         *model.Index
	Scale         float64
	MaxProperties int
	MaxOperations int
}

// NodeBuilder is the interface each shape kind builder must implement.
type NodeBuilder interface {
	Kind() model.ShapeKind
	// Build renders one shape. It never fails: an unresolved reference yields a placeholder node.
	Build(shape model.Shape, ctx Context) scene.Node
}

// Default is the global builder registry.
var Default = New()

// Registry holds node builders keyed by shape kind.
type Registry struct {
	mu       sync.RWMutex
	builders map[model.ShapeKind]NodeBuilder
}

// New returns a new empty registry.
func New() *Registry {
	return &Registry{builders: make(map[model.ShapeKind]NodeBuilder)}
}

// Register adds a builder for its kind, replacing any previous one.
func (r *Registry) Register(b NodeBuilder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builders[b.Kind()] = b
}

// Get returns the builder for the kind, or nil and false.
func (r *Registry) Get(kind model.ShapeKind) (NodeBuilder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.builders[kind]
	return b, ok
}

// Kinds returns all registered kinds in enum order.
func (r *Registry) Kinds() []model.ShapeKind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]model.ShapeKind, 0, len(r.builders))
	for k := range r.builders {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
