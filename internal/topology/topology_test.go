package topology

//go:generate mockgen -source=topology.go -destination=mocks/mocks.go -package=mocks Topology

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	dErrors "archipelago/pkg/domain-errors"
)

type TopologySuite struct {
	suite.Suite
}

func TestTopologySuite(t *testing.T) {
	suite.Run(t, new(TopologySuite))
}

func grow(s *TopologySuite, t Topology, n int) {
	for range n {
		s.Require().NoError(t.PushBack())
	}
}

func (s *TopologySuite) TestUnconnected() {
	t := NewUnconnected()
	grow(s, t, 3)
	s.Equal(3, t.NumNodes())
	c, err := t.Connections(1)
	s.Require().NoError(err)
	s.Empty(c.Sources)
	s.Empty(c.Weights)
}

func (s *TopologySuite) TestRing() {
	r, err := NewRing(0.5)
	s.Require().NoError(err)

	s.Run("single node has no neighbours", func() {
		grow(s, r, 1)
		c, err := r.Connections(0)
		s.Require().NoError(err)
		s.Empty(c.Sources)
	})

	s.Run("two nodes connect once", func() {
		grow(s, r, 1)
		c, err := r.Connections(0)
		s.Require().NoError(err)
		s.Equal([]int{1}, c.Sources)
	})

	s.Run("wraps around", func() {
		grow(s, r, 3)
		c, err := r.Connections(0)
		s.Require().NoError(err)
		s.Equal([]int{4, 1}, c.Sources)
		s.Equal([]float64{0.5, 0.5}, c.Weights)
		w, ok := c.WeightFrom(4)
		s.True(ok)
		s.Equal(0.5, w)
		_, ok = c.WeightFrom(2)
		s.False(ok)
	})
}

func (s *TopologySuite) TestFullyConnected() {
	f, err := NewFullyConnected(DefaultWeight)
	s.Require().NoError(err)
	grow(s, f, 4)
	c, err := f.Connections(2)
	s.Require().NoError(err)
	s.Equal([]int{0, 1, 3}, c.Sources)
	s.Equal([]float64{DefaultWeight, DefaultWeight, DefaultWeight}, c.Weights)

	s.Run("zero weight is kept", func() {
		z, err := NewFullyConnected(0)
		s.Require().NoError(err)
		grow(s, z, 2)
		c, err := z.Connections(0)
		s.Require().NoError(err)
		s.Equal([]float64{0}, c.Weights)

		restored, err := FromState(z.State())
		s.Require().NoError(err)
		s.Equal(0.0, restored.State().Weight)
	})
}

func (s *TopologySuite) TestOutOfRange() {
	t := NewUnconnected()
	grow(s, t, 2)
	_, err := t.Connections(2)
	s.True(dErrors.HasCode(err, dErrors.CodeOutOfRange))
	_, err = t.Connections(-1)
	s.True(dErrors.HasCode(err, dErrors.CodeOutOfRange))
}

func (s *TopologySuite) TestStateRoundTrip() {
	r, err := NewRing(0.25)
	s.Require().NoError(err)
	grow(s, r, 5)

	restored, err := FromState(r.State())
	s.Require().NoError(err)
	s.Equal(r.State(), restored.State())
	s.Equal("Ring", restored.Name())

	s.Run("unknown kind", func() {
		_, err := FromState(State{Kind: "torus"})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("bad weight", func() {
		for _, w := range []float64{2, -0.1, math.NaN(), math.Inf(1)} {
			_, err := New(RingKind, w)
			s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput), "weight %g", w)
		}
	})
}

func (s *TopologySuite) TestCloneIsIndependent() {
	t := NewUnconnected()
	grow(s, t, 2)
	c := t.Clone()
	s.Require().NoError(c.PushBack())
	s.Equal(2, t.NumNodes())
	s.Equal(3, c.NumNodes())
}

func (s *TopologySuite) TestConcurrentReadsDuringPushBack() {
	f, err := NewFullyConnected(1)
	s.Require().NoError(err)
	grow(s, f, 1)

	var wg sync.WaitGroup
	for range 50 {
		wg.Go(func() {
			_ = f.PushBack()
		})
		wg.Go(func() {
			c, err := f.Connections(0)
			s.NoError(err)
			s.Len(c.Weights, len(c.Sources))
		})
	}
	wg.Wait()
	s.Equal(51, f.NumNodes())
}
