package algorithm

import (
	"context"
	"encoding/json"
	"fmt"

	"archipelago/internal/population"
	dErrors "archipelago/pkg/domain-errors"
)

const (
	NullKind     = "null"
	MutationKind = "mutation"
)

// Null leaves the population untouched.
type Null struct{}

func (Null) Name() string { return "Null algorithm" }

func (Null) Evolve(_ context.Context, pop *population.Population) (*population.Population, error) {
	return pop, nil
}

func (n Null) Clone() Algorithm { return n }

func (Null) State() State { return State{Kind: NullKind} }

// Mutation is a Gaussian hill climber: every individual is perturbed once per
// generation and the perturbation is kept when it improves fitness. Random
// draws come from the population's engine so runs replay from a seed.
type Mutation struct {
	// Sigma is the standard deviation relative to each bound's width.
	Sigma float64 `json:"sigma"`
}

func DefaultMutation() *Mutation {
	return &Mutation{Sigma: 0.1}
}

func (m *Mutation) Name() string { return "Gaussian mutation" }

func (m *Mutation) Evolve(ctx context.Context, pop *population.Population) (*population.Population, error) {
	prob := pop.Problem()
	lb, ub := prob.Bounds()
	rng := pop.Rand()
	for i := range pop.Size() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cur := pop.Individual(i)
		x := make([]float64, len(cur.X))
		for j := range x {
			x[j] = clamp(cur.X[j]+rng.NormFloat64()*m.Sigma*(ub[j]-lb[j]), lb[j], ub[j])
		}
		f, err := prob.Fitness(x)
		if err != nil {
			return nil, fmt.Errorf("evaluate candidate %d: %w", i, err)
		}
		if population.Less(f, cur.F) {
			if err := pop.SetXF(i, x, f); err != nil {
				return nil, err
			}
		}
	}
	return pop, nil
}

func (m *Mutation) Clone() Algorithm {
	c := *m
	return &c
}

func (m *Mutation) State() State {
	params, _ := json.Marshal(m)
	return State{Kind: MutationKind, Params: params}
}

func (m *Mutation) validate() error {
	if m.Sigma <= 0 || m.Sigma > 1 {
		return dErrors.Newf(dErrors.CodeInvalidInput, "mutation sigma must be in (0, 1], got %g", m.Sigma)
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
