package aco

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

func ones(n int) *mat.Dense {
	return uniform(n, 1)
}

// randomSymmetric — симметричная матрица со значениями в [lo, hi) и нулевой диагональю.
func randomSymmetric(n int, lo, hi float64, rng *rand.Rand) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v := lo + rng.Float64()*(hi-lo)
			m.Set(i, j, v)
			m.Set(j, i, v)
		}
	}
	return m
}

func rowSums(m mat.Matrix) []float64 {
	r, _ := m.Dims()
	out := make([]float64, r)
	for i := 0; i < r; i++ {
		out[i] = mat.Sum(m.(*mat.Dense).RowView(i))
	}
	return out
}

// recorder запоминает уведомления движка.
type recorder struct {
	events   []string
	current  []float64
	newBest  []float64
	failures int
	updates  int
}

func (r *recorder) OnStart()               { r.events = append(r.events, "start") }
func (r *recorder) OnIterationStart(i int) { r.events = append(r.events, fmt.Sprintf("iter_start:%d", i)) }
func (r *recorder) OnIterationEnd(i int)   { r.events = append(r.events, fmt.Sprintf("iter_end:%d", i)) }
func (r *recorder) OnEnd()                 { r.events = append(r.events, "end") }

func (r *recorder) OnCurrentBest(s *Solution) {
	r.events = append(r.events, "current")
	r.current = append(r.current, s.Cost)
}

func (r *recorder) OnNewBest(s *Solution) {
	r.events = append(r.events, "new_best")
	r.newBest = append(r.newBest, s.Cost)
}

func (r *recorder) OnPheromoneUpdate(_, _ mat.Matrix) {
	r.events = append(r.events, "pheromone")
	r.updates++
}

func (r *recorder) OnConstructionFailure(iteration, ant int) {
	r.events = append(r.events, fmt.Sprintf("failure:%d:%d", iteration, ant))
	r.failures++
}

// testConfig — рабочая конфигурация на случайном евклидовом-подобном графе.
func testConfig(n int, seed int64) Config {
	rng := rand.New(rand.NewSource(seed))
	dist := randomSymmetric(n, 1, 10, rng)
	heur := mat.NewDense(n, n, nil)
	heur.Apply(func(i, j int, v float64) float64 {
		if i == j {
			return 0
		}
		return 1 / v
	}, dist)

	cfg := DefaultConfig()
	cfg.Iterations = 15
	cfg.Ants = 8
	cfg.Weights = dist
	cfg.Heuristic = heur
	cfg.Pheromone = ones(n)
	cfg.Update = AntSystemUpdate{Q: 1}
	return cfg
}
