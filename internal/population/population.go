// Package population holds candidate solutions evaluated against a Problem.
//
// A Population is not safe for concurrent use; islands serialise access to
// the population they own and hand clones to algorithms and observers.
package population

import (
	"fmt"
	"math/rand/v2"

	"archipelago/internal/migration"
	dErrors "archipelago/pkg/domain-errors"
)

// Population is a set of individuals (id, decision vector, fitness vector)
// plus the random engine used to draw new ids and decision vectors.
type Population struct {
	problem Problem
	ids     []uint64
	xs      [][]float64
	fs      [][]float64
	seed    uint64
	engine  *rand.PCG
	rng     *rand.Rand
}

// New creates a population of size random individuals for problem p.
func New(p Problem, size int, seed uint64) (*Population, error) {
	if p == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "problem is required")
	}
	if size < 0 {
		return nil, dErrors.Newf(dErrors.CodeInvalidInput, "population size must not be negative, got %d", size)
	}
	pop := newEmpty(p, seed)
	for range size {
		if err := pop.PushBack(pop.DecisionVector()); err != nil {
			return nil, err
		}
	}
	return pop, nil
}

func newEmpty(p Problem, seed uint64) *Population {
	engine := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	return &Population{
		problem: p,
		seed:    seed,
		engine:  engine,
		rng:     rand.New(engine),
	}
}

// PushBack evaluates x and appends it with a fresh id.
func (p *Population) PushBack(x []float64) error {
	f, err := p.problem.Fitness(x)
	if err != nil {
		return fmt.Errorf("evaluate fitness: %w", err)
	}
	return p.PushBackXF(x, f)
}

// PushBackXF appends x with a known fitness and a fresh id.
func (p *Population) PushBackXF(x, f []float64) error {
	if err := p.checkDims(x, f); err != nil {
		return err
	}
	p.ids = append(p.ids, p.rng.Uint64())
	p.xs = append(p.xs, append([]float64(nil), x...))
	p.fs = append(p.fs, append([]float64(nil), f...))
	return nil
}

// DecisionVector draws a uniformly random vector within the problem bounds.
func (p *Population) DecisionVector() []float64 {
	lb, ub := p.problem.Bounds()
	x := make([]float64, len(lb))
	for i := range x {
		x[i] = lb[i] + p.rng.Float64()*(ub[i]-lb[i])
	}
	return x
}

// Champion returns the position of the best individual. It is only defined
// for non-empty single-objective populations.
func (p *Population) Champion() (int, error) {
	if p.Size() == 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "cannot determine the champion of an empty population")
	}
	if p.problem.NObj() > 1 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "champion can only be extracted in single objective problems")
	}
	best := 0
	for i := 1; i < len(p.fs); i++ {
		if Less(p.fs[i], p.fs[best]) {
			best = i
		}
	}
	return best, nil
}

// ChampionX returns a copy of the champion's decision vector.
func (p *Population) ChampionX() ([]float64, error) {
	idx, err := p.Champion()
	if err != nil {
		return nil, err
	}
	return append([]float64(nil), p.xs[idx]...), nil
}

// ChampionF returns a copy of the champion's fitness vector.
func (p *Population) ChampionF() ([]float64, error) {
	idx, err := p.Champion()
	if err != nil {
		return nil, err
	}
	return append([]float64(nil), p.fs[idx]...), nil
}

// SetXF overwrites the i-th individual keeping its id.
func (p *Population) SetXF(i int, x, f []float64) error {
	if i < 0 || i >= p.Size() {
		return dErrors.Newf(dErrors.CodeOutOfRange,
			"trying to access individual at position %d, while population has size %d", i, p.Size())
	}
	if err := p.checkDims(x, f); err != nil {
		return err
	}
	copy(p.xs[i], x)
	copy(p.fs[i], f)
	return nil
}

// SetX evaluates x and overwrites the i-th individual with it.
func (p *Population) SetX(i int, x []float64) error {
	f, err := p.problem.Fitness(x)
	if err != nil {
		return fmt.Errorf("evaluate fitness: %w", err)
	}
	return p.SetXF(i, x, f)
}

// Replace overwrites the i-th individual with ind, including its id.
func (p *Population) Replace(i int, ind migration.Individual) error {
	if err := p.SetXF(i, ind.X, ind.F); err != nil {
		return err
	}
	p.ids[i] = ind.ID
	return nil
}

// Individual returns a copy of the i-th individual.
func (p *Population) Individual(i int) migration.Individual {
	return migration.Individual{ID: p.ids[i], X: p.xs[i], F: p.fs[i]}.Clone()
}

// Best returns the positions of the n best individuals, best first.
func (p *Population) Best(n int) []int {
	order := p.sortedIndices()
	if n > len(order) {
		n = len(order)
	}
	return order[:n]
}

// Worst returns the position of the worst individual, or -1 when empty.
func (p *Population) Worst() int {
	if p.Size() == 0 {
		return -1
	}
	worst := 0
	for i := 1; i < len(p.fs); i++ {
		if Less(p.fs[worst], p.fs[i]) {
			worst = i
		}
	}
	return worst
}

// Group packs the individuals at the given positions into a migration group.
func (p *Population) Group(positions []int) migration.Group {
	g := migration.Group{Individuals: make([]migration.Individual, 0, len(positions))}
	for _, i := range positions {
		g.Individuals = append(g.Individuals, p.Individual(i))
	}
	return g
}

func (p *Population) sortedIndices() []int {
	order := make([]int, len(p.fs))
	for i := range order {
		order[i] = i
	}
	// insertion sort keeps ties in position order
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && Less(p.fs[order[j]], p.fs[order[j-1]]); j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}
	return order
}

// Size is the number of individuals.
func (p *Population) Size() int {
	return len(p.ids)
}

func (p *Population) Problem() Problem { return p.problem }

// Seed is the seed the random engine was created with.
func (p *Population) Seed() uint64 { return p.seed }

// Rand exposes the population's random engine to algorithms evolving it.
func (p *Population) Rand() *rand.Rand { return p.rng }

// IDs returns a copy of the individual ids.
func (p *Population) IDs() []uint64 {
	return append([]uint64(nil), p.ids...)
}

// X returns a deep copy of the decision vectors.
func (p *Population) X() [][]float64 { return cloneMatrix(p.xs) }

// F returns a deep copy of the fitness vectors.
func (p *Population) F() [][]float64 { return cloneMatrix(p.fs) }

// Clone returns an independent copy, random engine state included.
func (p *Population) Clone() *Population {
	out := newEmpty(p.problem, p.seed)
	if state, err := p.engine.MarshalBinary(); err == nil {
		_ = out.engine.UnmarshalBinary(state)
	}
	out.ids = append([]uint64(nil), p.ids...)
	out.xs = cloneMatrix(p.xs)
	out.fs = cloneMatrix(p.fs)
	return out
}

func (p *Population) checkDims(x, f []float64) error {
	lb, _ := p.problem.Bounds()
	if len(x) != len(lb) {
		return dErrors.Newf(dErrors.CodeInvalidInput,
			"a decision vector of size %d is being inserted into the population, but the problem dimension is %d",
			len(x), len(lb))
	}
	if len(f) != p.problem.NObj() {
		return dErrors.Newf(dErrors.CodeInvalidInput,
			"a fitness vector of size %d is being inserted into the population, but the fitness dimension of the problem is %d",
			len(f), p.problem.NObj())
	}
	return nil
}

// Less orders fitness vectors lexicographically.
func Less(a, b []float64) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

func cloneMatrix(m [][]float64) [][]float64 {
	out := make([][]float64, len(m))
	for i, row := range m {
		out[i] = append([]float64(nil), row...)
	}
	return out
}
