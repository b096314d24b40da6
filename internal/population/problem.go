package population

import (
	"fmt"
	"sync"

	dErrors "archipelago/pkg/domain-errors"
)

// Problem is the optimisation problem a population is evaluated against.
// Implementations must be safe for concurrent use by multiple populations.
type Problem interface {
	Name() string
	Fitness(x []float64) ([]float64, error)
	Bounds() (lower, upper []float64)
	// NObj is the number of objectives; it equals the fitness dimension for
	// unconstrained problems.
	NObj() int
	State() ProblemState
}

// ProblemState is the serialisable description of a problem.
type ProblemState struct {
	Kind      string `json:"kind"`
	Dimension int    `json:"dimension"`
}

// ProblemFactory rebuilds a problem from its state.
type ProblemFactory func(ProblemState) (Problem, error)

var (
	problemsMu sync.RWMutex
	problems   = map[string]ProblemFactory{}
)

// RegisterProblem makes a problem kind restorable from snapshots. Registering
// the same kind twice replaces the earlier factory.
func RegisterProblem(kind string, factory ProblemFactory) {
	problemsMu.Lock()
	defer problemsMu.Unlock()
	problems[kind] = factory
}

// ProblemFromState rebuilds a registered problem.
func ProblemFromState(st ProblemState) (Problem, error) {
	problemsMu.RLock()
	factory, ok := problems[st.Kind]
	problemsMu.RUnlock()
	if !ok {
		return nil, dErrors.Newf(dErrors.CodeInvalidInput, "unknown problem kind %q", st.Kind)
	}
	return factory(st)
}

func init() {
	RegisterProblem(SphereKind, func(st ProblemState) (Problem, error) { return NewSphere(st.Dimension) })
	RegisterProblem(RosenbrockKind, func(st ProblemState) (Problem, error) { return NewRosenbrock(st.Dimension) })
}

const (
	SphereKind     = "sphere"
	RosenbrockKind = "rosenbrock"
)

// Sphere is sum(x_i^2) on [-5.12, 5.12]^n.
type Sphere struct {
	dim int
}

func NewSphere(dim int) (*Sphere, error) {
	if dim < 1 {
		return nil, dErrors.Newf(dErrors.CodeInvalidInput, "sphere dimension must be positive, got %d", dim)
	}
	return &Sphere{dim: dim}, nil
}

func (p *Sphere) Name() string { return "Sphere Function" }
func (p *Sphere) NObj() int    { return 1 }

func (p *Sphere) Bounds() ([]float64, []float64) {
	return fill(p.dim, -5.12), fill(p.dim, 5.12)
}

func (p *Sphere) Fitness(x []float64) ([]float64, error) {
	if len(x) != p.dim {
		return nil, dimensionError(len(x), p.dim)
	}
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return []float64{sum}, nil
}

func (p *Sphere) State() ProblemState {
	return ProblemState{Kind: SphereKind, Dimension: p.dim}
}

// Rosenbrock is the banana function on [-5, 10]^n, n >= 2.
type Rosenbrock struct {
	dim int
}

func NewRosenbrock(dim int) (*Rosenbrock, error) {
	if dim < 2 {
		return nil, dErrors.Newf(dErrors.CodeInvalidInput, "rosenbrock dimension must be at least 2, got %d", dim)
	}
	return &Rosenbrock{dim: dim}, nil
}

func (p *Rosenbrock) Name() string { return "Multidimensional Rosenbrock Function" }
func (p *Rosenbrock) NObj() int    { return 1 }

func (p *Rosenbrock) Bounds() ([]float64, []float64) {
	return fill(p.dim, -5), fill(p.dim, 10)
}

func (p *Rosenbrock) Fitness(x []float64) ([]float64, error) {
	if len(x) != p.dim {
		return nil, dimensionError(len(x), p.dim)
	}
	var sum float64
	for i := 0; i < len(x)-1; i++ {
		a := x[i+1] - x[i]*x[i]
		b := 1 - x[i]
		sum += 100*a*a + b*b
	}
	return []float64{sum}, nil
}

func (p *Rosenbrock) State() ProblemState {
	return ProblemState{Kind: RosenbrockKind, Dimension: p.dim}
}

func fill(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func dimensionError(got, want int) error {
	return dErrors.New(dErrors.CodeInvalidInput,
		fmt.Sprintf("decision vector of size %d, but the problem dimension is %d", got, want))
}
