package models

import (
	"fmt"
	"sync"

	"github.com/AlexVanMeegen/nest-simulator/model"
)

// ErrUnknownModel indicates that a model name could not be resolved.
type ErrUnknownModel struct {
	Name string
}

func (e *ErrUnknownModel) Error() string {
	return fmt.Sprintf("unknown model %q", e.Name)
}

// ErrDuplicateModel indicates a second registration under an existing name.
type ErrDuplicateModel struct {
	Name string
}

func (e *ErrDuplicateModel) Error() string {
	return fmt.Sprintf("model %q is already registered", e.Name)
}

// Model yields entity-construction capability for one model name.
type Model interface {
	// Name returns the registry name of the model.
	Name() string

	// Kind returns the distribution policy of entities of this model.
	Kind() model.Kind

	// NewNode constructs a real node instance bound to the given VP.
	NewNode(gid model.GID, vp model.VP) model.Node
}

// Registry maps model names to models. Safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Model
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Model)}
}

// Register adds a model under its name.
func (r *Registry) Register(m Model) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byName[m.Name()]; ok {
		return &ErrDuplicateModel{Name: m.Name()}
	}
	r.byName[m.Name()] = m
	return nil
}

// MustRegister is Register that panics on error, for wiring at startup.
func (r *Registry) MustRegister(m Model) {
	if err := r.Register(m); err != nil {
		panic(err)
	}
}

// Get resolves a model name.
func (r *Registry) Get(name string) (Model, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.byName[name]
	if !ok {
		return nil, &ErrUnknownModel{Name: name}
	}
	return m, nil
}

// Names returns all registered model names in unspecified order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.byName))
	for n := range r.byName {
		names = append(names, n)
	}
	return names
}
