package population

import (
	dErrors "archipelago/pkg/domain-errors"
)

// State is the serialisable form of a population.
type State struct {
	Problem ProblemState `json:"problem"`
	IDs     []uint64     `json:"ids"`
	X       [][]float64  `json:"x"`
	F       [][]float64  `json:"f"`
	Seed    uint64       `json:"seed"`
	Engine  []byte       `json:"engine"`
}

// State captures the population, random engine included.
func (p *Population) State() (State, error) {
	engine, err := p.engine.MarshalBinary()
	if err != nil {
		return State{}, dErrors.Wrap(err, dErrors.CodeInternal, "marshal random engine")
	}
	return State{
		Problem: p.problem.State(),
		IDs:     p.IDs(),
		X:       p.X(),
		F:       p.F(),
		Seed:    p.seed,
		Engine:  engine,
	}, nil
}

// FromState rebuilds a population, validating every individual against the
// restored problem.
func FromState(st State) (*Population, error) {
	prob, err := ProblemFromState(st.Problem)
	if err != nil {
		return nil, err
	}
	if len(st.IDs) != len(st.X) || len(st.IDs) != len(st.F) {
		return nil, dErrors.Newf(dErrors.CodeInvalidInput,
			"inconsistent population state: %d ids, %d decision vectors, %d fitness vectors",
			len(st.IDs), len(st.X), len(st.F))
	}
	pop := newEmpty(prob, st.Seed)
	if len(st.Engine) > 0 {
		if err := pop.engine.UnmarshalBinary(st.Engine); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "unmarshal random engine")
		}
	}
	for i := range st.IDs {
		if err := pop.checkDims(st.X[i], st.F[i]); err != nil {
			return nil, err
		}
	}
	pop.ids = append([]uint64(nil), st.IDs...)
	pop.xs = cloneMatrix(st.X)
	pop.fs = cloneMatrix(st.F)
	return pop, nil
}
