package island

import (
	"archipelago/internal/algorithm"
	"archipelago/internal/population"
	dErrors "archipelago/pkg/domain-errors"
)

// State is the serialisable form of an island. Handles and pending faults
// are not part of it: a restored island is idle and receives a new handle.
type State struct {
	Algorithm     algorithm.State  `json:"algorithm"`
	Population    population.State `json:"population"`
	MigrationRate int              `json:"migration_rate"`
}

// State captures the island's algorithm and last completed population.
func (i *Island) State() (State, error) {
	i.mu.Lock()
	algo, pop := i.algo, i.pop.Clone()
	i.mu.Unlock()
	ps, err := pop.State()
	if err != nil {
		return State{}, err
	}
	return State{
		Algorithm:     algo.State(),
		Population:    ps,
		MigrationRate: i.rate,
	}, nil
}

// FromState rebuilds an idle island.
func FromState(st State, opts ...Option) (*Island, error) {
	algo, err := algorithm.FromState(st.Algorithm)
	if err != nil {
		return nil, err
	}
	pop, err := population.FromState(st.Population)
	if err != nil {
		return nil, err
	}
	if st.MigrationRate < 0 {
		return nil, dErrors.Newf(dErrors.CodeInvalidInput, "migration rate must not be negative, got %d", st.MigrationRate)
	}
	rate := st.MigrationRate
	if rate == 0 {
		rate = DefaultMigrationRate
	}
	return newIsland(algo, pop, rate, opts...), nil
}
