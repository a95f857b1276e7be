package ga

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allSelections() map[string]Selection {
	return map[string]Selection{
		"roulette":   RouletteWheel{},
		"random":     Random{},
		"rank":       Rank{},
		"rank-r":     RankR{R: 0.8},
		"tournament": Tournament{Size: 3},
		"sus":        StochasticUniversalSampling{},
		"boltzmann":  Boltzmann{Alpha: 0.05, Temp0: 50, MaxGenerations: 100},
	}
}

func TestSelection_CountAndRange(t *testing.T) {
	costs := []float64{10, 3, 7, 25, 1, 9, 14, 2}
	for name, sel := range allSelections() {
		t.Run(name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(1))
			for _, count := range []int{1, 2, 5, 8} {
				got := sel.Select(costs, count, 10, rng)
				require.Len(t, got, count)
				for _, i := range got {
					assert.GreaterOrEqual(t, i, 0)
					assert.Less(t, i, len(costs))
				}
			}
		})
	}
}

func TestSelection_PrefersCheaper(t *testing.T) {
	// Особь 0 заметно дешевле остальных: все операторы, кроме Random,
	// должны выбирать её чаще, чем 1 раз из 10.
	costs := []float64{0, 50, 50, 50, 50, 50, 50, 50, 50, 50}
	sels := allSelections()
	delete(sels, "random")
	sels["boltzmann"] = Boltzmann{Alpha: 0.9, Temp0: 5, MaxGenerations: 100}

	for name, sel := range sels {
		t.Run(name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(2))
			hits := 0
			const trials = 4000
			for trial := 0; trial < trials; trial++ {
				if sel.Select(costs, 1, 0, rng)[0] == 0 {
					hits++
				}
			}
			assert.Greater(t, float64(hits)/trials, 0.125)
		})
	}
}

func TestSelection_WithoutReplacement(t *testing.T) {
	costs := []float64{4, 1, 3, 2, 5}
	for name, sel := range map[string]Selection{
		"random":    Random{},
		"boltzmann": Boltzmann{Alpha: 0.5, Temp0: 5, MaxGenerations: 10},
	} {
		t.Run(name, func(t *testing.T) {
			got := sel.Select(costs, len(costs), 9, rand.New(rand.NewSource(3)))
			assert.ElementsMatch(t, []int{0, 1, 2, 3, 4}, got)
		})
	}
}

func TestStochasticUniversalSampling_EqualCosts(t *testing.T) {
	// При равной приспособленности каждый указатель попадает в свой сектор.
	costs := []float64{5, 5, 5, 5}
	got := StochasticUniversalSampling{}.Select(costs, 4, 0, rand.New(rand.NewSource(4)))
	assert.Equal(t, []int{0, 1, 2, 3}, got)
}

func TestRankR_Probability(t *testing.T) {
	// Индекс 1 дороже: при R=1 он выбирается, только если выпал в паре дважды.
	costs := []float64{1, 2}
	share := func(r float64) float64 {
		got := (RankR{R: r}).Select(costs, 2000, 0, rand.New(rand.NewSource(5)))
		worse := 0
		for _, i := range got {
			if i == 1 {
				worse++
			}
		}
		return float64(worse) / float64(len(got))
	}
	assert.Less(t, share(1), 0.35)
	assert.Greater(t, share(0), 0.65)
}

func TestBoltzmann_TemperatureDecreases(t *testing.T) {
	b := Boltzmann{Alpha: 0.1, Temp0: 20, MaxGenerations: 50}
	prev := b.temperature(0)
	assert.InDelta(t, 20*0.9, prev, 1e-12)
	for g := 1; g <= 50; g++ {
		cur := b.temperature(g)
		assert.Less(t, cur, prev)
		prev = cur
	}
}

func TestBoltzmann_ZeroTemperature(t *testing.T) {
	// Alpha = 1 обнуляет температуру: первой выбирается лучшая особь,
	// остальные — равновероятно.
	b := Boltzmann{Alpha: 1, Temp0: 10, MaxGenerations: 10}
	got := b.Select([]float64{3, 1, 2}, 3, 5, rand.New(rand.NewSource(6)))
	require.Len(t, got, 3)
	assert.Equal(t, 1, got[0])
	assert.ElementsMatch(t, []int{0, 1, 2}, got)
}

func TestRanked(t *testing.T) {
	assert.Equal(t, []int{2, 0, 3, 1}, ranked([]float64{2, 9, 1, 2}))
}
