package population

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"archipelago/internal/migration"
	dErrors "archipelago/pkg/domain-errors"
)

// biObjective is a two-objective problem used to exercise the champion rule.
type biObjective struct{}

func (biObjective) Name() string { return "bi" }
func (biObjective) NObj() int    { return 2 }
func (biObjective) Bounds() ([]float64, []float64) {
	return []float64{0}, []float64{1}
}
func (biObjective) Fitness(x []float64) ([]float64, error) {
	return []float64{x[0], 1 - x[0]}, nil
}
func (biObjective) State() ProblemState { return ProblemState{Kind: "bi", Dimension: 1} }

type PopulationSuite struct {
	suite.Suite
	sphere *Sphere
}

func TestPopulationSuite(t *testing.T) {
	suite.Run(t, new(PopulationSuite))
}

func (s *PopulationSuite) SetupTest() {
	var err error
	s.sphere, err = NewSphere(3)
	s.Require().NoError(err)
}

func (s *PopulationSuite) TestNew() {
	s.Run("creates individuals within bounds", func() {
		pop, err := New(s.sphere, 10, 42)
		s.Require().NoError(err)
		s.Equal(10, pop.Size())
		s.Len(pop.IDs(), 10)
		for _, x := range pop.X() {
			s.Len(x, 3)
			for _, v := range x {
				s.GreaterOrEqual(v, -5.12)
				s.LessOrEqual(v, 5.12)
			}
		}
	})

	s.Run("same seed yields the same population", func() {
		a, err := New(s.sphere, 5, 7)
		s.Require().NoError(err)
		b, err := New(s.sphere, 5, 7)
		s.Require().NoError(err)
		s.Equal(a.IDs(), b.IDs())
		s.Equal(a.X(), b.X())
	})

	s.Run("negative size rejected", func() {
		_, err := New(s.sphere, -1, 0)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("nil problem rejected", func() {
		_, err := New(nil, 1, 0)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func (s *PopulationSuite) TestChampion() {
	s.Run("empty population has no champion", func() {
		pop, err := New(s.sphere, 0, 1)
		s.Require().NoError(err)
		_, err = pop.Champion()
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("multi objective population has no champion", func() {
		pop, err := New(biObjective{}, 3, 1)
		s.Require().NoError(err)
		_, err = pop.ChampionF()
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("champion is the smallest fitness", func() {
		pop, err := New(s.sphere, 0, 1)
		s.Require().NoError(err)
		s.Require().NoError(pop.PushBack([]float64{1, 1, 1}))
		s.Require().NoError(pop.PushBack([]float64{0, 0, 0.5}))
		s.Require().NoError(pop.PushBack([]float64{2, 0, 0}))
		idx, err := pop.Champion()
		s.Require().NoError(err)
		s.Equal(1, idx)
		f, err := pop.ChampionF()
		s.Require().NoError(err)
		s.Equal([]float64{0.25}, f)
		s.Equal(2, pop.Worst())
		s.Equal([]int{1, 0}, pop.Best(2))
	})
}

func (s *PopulationSuite) TestSetters() {
	pop, err := New(s.sphere, 2, 3)
	s.Require().NoError(err)

	s.Run("out of range position", func() {
		err := pop.SetX(2, []float64{0, 0, 0})
		s.True(dErrors.HasCode(err, dErrors.CodeOutOfRange))
	})

	s.Run("wrong dimension", func() {
		err := pop.SetXF(0, []float64{0}, []float64{0})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("replace keeps the incoming id", func() {
		err := pop.Replace(1, migration.Individual{ID: 99, X: []float64{0, 0, 0}, F: []float64{0}})
		s.Require().NoError(err)
		s.Equal(uint64(99), pop.IDs()[1])
	})
}

func (s *PopulationSuite) TestStateRoundTrip() {
	pop, err := New(s.sphere, 4, 11)
	s.Require().NoError(err)
	st, err := pop.State()
	s.Require().NoError(err)

	restored, err := FromState(st)
	s.Require().NoError(err)
	s.Equal(pop.IDs(), restored.IDs())
	s.Equal(pop.F(), restored.F())
	// the random engine continues where the original left off
	s.Equal(pop.DecisionVector(), restored.DecisionVector())

	s.Run("unknown problem kind", func() {
		bad := st
		bad.Problem.Kind = "nope"
		_, err := FromState(bad)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("ragged vectors", func() {
		bad := st
		bad.F = bad.F[:1]
		_, err := FromState(bad)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func (s *PopulationSuite) TestCloneIsIndependent() {
	pop, err := New(s.sphere, 2, 5)
	s.Require().NoError(err)
	c := pop.Clone()
	s.Require().NoError(c.SetX(0, []float64{0, 0, 0}))
	s.NotEqual(pop.X()[0], c.X()[0])
	s.Equal(pop.DecisionVector(), c.DecisionVector())
}

func TestRosenbrockFitness(t *testing.T) {
	p, err := NewRosenbrock(2)
	if err != nil {
		t.Fatalf("new rosenbrock: %v", err)
	}
	f, err := p.Fitness([]float64{1, 1})
	if err != nil {
		t.Fatalf("fitness: %v", err)
	}
	if f[0] != 0 {
		t.Fatalf("expected global minimum 0 at (1,1), got %v", f[0])
	}
	if _, err := NewRosenbrock(1); !dErrors.HasCode(err, dErrors.CodeInvalidInput) {
		t.Fatalf("expected invalid input for dimension 1, got %v", err)
	}
}
