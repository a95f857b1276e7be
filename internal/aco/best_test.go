package aco

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestIterationBest_FirstMinimumWins(t *testing.T) {
	sols := []Solution{{Cost: 5}, {Cost: 3}, {Cost: 4}, {Cost: 3}}
	assert.Equal(t, 1, IterationBest(sols))
	assert.Equal(t, -1, IterationBest(nil))

	withDegenerate := []Solution{degenerate(nil), {Cost: 9}, degenerate(nil)}
	assert.Equal(t, 1, IterationBest(withDegenerate))
}

func TestBestTracker_StrictImprovementOnly(t *testing.T) {
	bt := NewBestTracker()
	assert.True(t, bt.Best().Degenerate())

	assert.True(t, bt.Offer(Solution{Matrix: ones(3), Cost: 10}))
	assert.False(t, bt.Offer(Solution{Matrix: ones(3), Cost: 10}), "равная стоимость не заменяет")
	assert.False(t, bt.Offer(Solution{Matrix: ones(3), Cost: 11}))
	assert.False(t, bt.Offer(Solution{Cost: math.NaN()}))
	assert.False(t, bt.Offer(degenerate(mat.NewDense(3, 3, nil))))
	assert.True(t, bt.Offer(Solution{Matrix: ones(3), Cost: 7}))
	assert.Equal(t, 7.0, bt.Best().Cost)
}

func TestBestTracker_KeepsCopy(t *testing.T) {
	bt := NewBestTracker()
	m := ones(3)
	require.True(t, bt.Offer(Solution{Matrix: m, Cost: 1}))

	// Муравей переиспользует матрицу — сохранённое решение не должно меняться.
	m.Zero()
	assert.Equal(t, 9.0, mat.Sum(bt.Best().Matrix))

	got := bt.Best()
	got.Matrix.Zero()
	assert.Equal(t, 9.0, mat.Sum(bt.Best().Matrix))
}

func TestBestTracker_NonIncreasing(t *testing.T) {
	bt := NewBestTracker()
	prev := math.Inf(1)
	for _, c := range []float64{12, 15, 9, 9, 30, 4, 8, 4, 1} {
		bt.Offer(Solution{Matrix: ones(3), Cost: c})
		cur := bt.Best().Cost
		assert.LessOrEqual(t, cur, prev)
		prev = cur
	}
	assert.Equal(t, 1.0, prev)
}
