package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroup(t *testing.T) {
	t.Run("new group zips ids with vectors", func(t *testing.T) {
		g := NewGroup([]uint64{7, 9}, [][]float64{{1}, {2}}, [][]float64{{10}, {20}})
		require.Equal(t, 2, g.Len())
		assert.Equal(t, []uint64{7, 9}, g.IDs())
		assert.Equal(t, []float64{20}, g.Individuals[1].F)
	})

	t.Run("clone does not share backing arrays", func(t *testing.T) {
		g := NewGroup([]uint64{1}, [][]float64{{1, 2}}, [][]float64{{3}})
		c := g.Clone()
		c.Individuals[0].X[0] = 99
		assert.Equal(t, 1.0, g.Individuals[0].X[0])
	})

	t.Run("take leaves the source empty", func(t *testing.T) {
		g := NewGroup([]uint64{1, 2}, [][]float64{{1}, {2}}, [][]float64{{1}, {2}})
		out := g.Take()
		assert.True(t, g.Empty())
		assert.Equal(t, 2, out.Len())
	})

	t.Run("append keeps producer order", func(t *testing.T) {
		var g Group
		g.Append(NewGroup([]uint64{1, 2}, [][]float64{{1}, {2}}, [][]float64{{1}, {2}}))
		g.Append(NewGroup([]uint64{3}, [][]float64{{3}}, [][]float64{{3}}))
		assert.Equal(t, []uint64{1, 2, 3}, g.IDs())
	})
}
