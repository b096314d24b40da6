package algorithm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archipelago/internal/population"
	dErrors "archipelago/pkg/domain-errors"
)

func TestMutationNeverWorsensFitness(t *testing.T) {
	prob, err := population.NewSphere(4)
	require.NoError(t, err)
	pop, err := population.New(prob, 8, 3)
	require.NoError(t, err)
	before := pop.F()

	algo, err := New(MutationKind)
	require.NoError(t, err)
	out, err := algo.Evolve(context.Background(), pop)
	require.NoError(t, err)

	after := out.F()
	for i := range before {
		assert.LessOrEqual(t, after[i][0], before[i][0])
	}
}

func TestMutationIsReproducible(t *testing.T) {
	prob, err := population.NewSphere(2)
	require.NoError(t, err)
	run := func() [][]float64 {
		pop, err := population.New(prob, 5, 9)
		require.NoError(t, err)
		m := DefaultMutation()
		for range 3 {
			pop, err = m.Evolve(context.Background(), pop)
			require.NoError(t, err)
		}
		return pop.X()
	}
	assert.Equal(t, run(), run())
}

func TestStateRoundTrip(t *testing.T) {
	m := &Mutation{Sigma: 0.25}
	restored, err := FromState(m.State())
	require.NoError(t, err)
	assert.Equal(t, m, restored)

	null, err := FromState(Null{}.State())
	require.NoError(t, err)
	assert.Equal(t, Null{}, null)
}

func TestFromStateErrors(t *testing.T) {
	_, err := FromState(State{Kind: "missing"})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))

	_, err = FromState(State{Kind: MutationKind, Params: []byte(`{"sigma":-1}`)})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))

	_, err = FromState(State{Kind: MutationKind, Params: []byte(`{`)})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestCloneIsIndependent(t *testing.T) {
	m := &Mutation{Sigma: 0.2}
	c := m.Clone().(*Mutation)
	c.Sigma = 0.5
	assert.Equal(t, 0.2, m.Sigma)
}
