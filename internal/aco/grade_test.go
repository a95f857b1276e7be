package aco

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"tourOpt/internal/tsp"
)

func TestGrade_ExactForIntegers(t *testing.T) {
	w := mat.NewDense(4, 4, []float64{
		0, 1, 2, 3,
		1, 0, 4, 7,
		2, 4, 0, 10,
		3, 7, 10, 0,
	})
	for _, tc := range []struct {
		tour []int
		want float64
	}{
		{[]int{0, 1, 2, 3}, 1 + 4 + 10 + 3},
		{[]int{0, 2, 1, 3}, 2 + 4 + 7 + 3},
		{[]int{0, 1, 3, 2}, 1 + 7 + 10 + 2},
	} {
		cost, err := Grade(tsp.AdjacencyFromTour(tc.tour), w)
		require.NoError(t, err)
		assert.Equal(t, tc.want, cost, "tour %v", tc.tour)
	}
}

func TestGrade_LinearInWeights(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	w := randomSymmetric(7, 1, 9, rng)
	m := tsp.AdjacencyFromTour([]int{3, 0, 6, 1, 5, 2, 4})

	base, err := Grade(m, w)
	require.NoError(t, err)

	for _, c := range []float64{0.5, 2, 17.25} {
		var scaled mat.Dense
		scaled.Scale(c, w)
		got, err := Grade(m, &scaled)
		require.NoError(t, err)
		assert.InDelta(t, c*base, got, 1e-9, "c=%v", c)
	}
}

func TestGrade_DimensionMismatch(t *testing.T) {
	_, err := Grade(ones(4), ones(3))
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	assert.ErrorIs(t, err, ErrConfiguration)
}
