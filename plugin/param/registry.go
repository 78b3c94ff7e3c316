package param

import (
	"errors"
	"fmt"
	"sync"
)

// Registry errors.
var (
	ErrDuplicateParameter = errors.New("param: duplicate parameter id")
	ErrUnknownParameter   = errors.New("param: unknown parameter id")
)

// Registry holds parameters by string ID in registration order.
type Registry struct {
	mu     sync.RWMutex
	params map[string]*Parameter
	order  []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{params: make(map[string]*Parameter)}
}

// Add registers params. Nothing is added if any ID is already taken.
func (r *Registry) Add(params ...*Parameter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]struct{}, len(params))
	for _, p := range params {
		if p == nil {
			return fmt.Errorf("%w: nil parameter", ErrInvalidParameter)
		}

		_, taken := r.params[p.ID]
		_, dup := seen[p.ID]

		if taken || dup {
			return fmt.Errorf("%w: %q", ErrDuplicateParameter, p.ID)
		}

		seen[p.ID] = struct{}{}
	}

	for _, p := range params {
		r.params[p.ID] = p
		r.order = append(r.order, p.ID)
	}

	return nil
}

// Get returns the parameter with the given ID.
func (r *Registry) Get(id string) (*Parameter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.params[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownParameter, id)
	}

	return p, nil
}

// MustGet is like Get but panics on an unknown ID.
func (r *Registry) MustGet(id string) *Parameter {
	p, err := r.Get(id)
	if err != nil {
		panic(err)
	}

	return p
}

// Set parses text and stores it on the parameter with the given ID.
func (r *Registry) Set(id, text string) error {
	p, err := r.Get(id)
	if err != nil {
		return err
	}

	return p.Set(text)
}

// Count returns the number of parameters.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.order)
}

// All returns all parameters in registration order.
func (r *Registry) All() []*Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Parameter, len(r.order))
	for i, id := range r.order {
		out[i] = r.params[id]
	}

	return out
}
