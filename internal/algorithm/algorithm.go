// Package algorithm defines the optimisation step islands run. The
// orchestrator treats algorithms as opaque.
package algorithm

import (
	"context"
	"encoding/json"
	"sync"

	"archipelago/internal/population"
	dErrors "archipelago/pkg/domain-errors"
)

// Algorithm evolves a population by one generation. Evolve receives a
// population it owns exclusively and returns the evolved population.
type Algorithm interface {
	Name() string
	Evolve(ctx context.Context, pop *population.Population) (*population.Population, error)
	// Clone returns an independent copy; every island holds its own.
	Clone() Algorithm
	State() State
}

// State is the serialisable description of an algorithm.
type State struct {
	Kind   string          `json:"kind"`
	Params json.RawMessage `json:"params,omitempty"`
}

// Factory rebuilds an algorithm from its state.
type Factory func(State) (Algorithm, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

// Register makes an algorithm kind restorable from snapshots.
func Register(kind string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[kind] = factory
}

// FromState rebuilds a registered algorithm.
func FromState(st State) (Algorithm, error) {
	registryMu.RLock()
	factory, ok := registry[st.Kind]
	registryMu.RUnlock()
	if !ok {
		return nil, dErrors.Newf(dErrors.CodeInvalidInput, "unknown algorithm kind %q", st.Kind)
	}
	return factory(st)
}

// New builds a built-in algorithm by kind with default parameters.
func New(kind string) (Algorithm, error) {
	return FromState(State{Kind: kind})
}

func init() {
	Register(NullKind, func(State) (Algorithm, error) { return Null{}, nil })
	Register(MutationKind, func(st State) (Algorithm, error) {
		m := DefaultMutation()
		if len(st.Params) > 0 {
			if err := json.Unmarshal(st.Params, m); err != nil {
				return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "decode mutation params")
			}
		}
		if err := m.validate(); err != nil {
			return nil, err
		}
		return m, nil
	})
}
