package aco

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// PheromoneUpdate вычисляет новую матрицу феромона по старой и решениям итерации.
// Реализация не должна изменять входную матрицу и обязана вернуть матрицу того же размера.
type PheromoneUpdate interface {
	Apply(pheromone mat.Matrix, solutions []Solution, evaporationRate float64) *mat.Dense
}

// PheromoneUpdateFunc позволяет использовать обычную функцию как PheromoneUpdate.
type PheromoneUpdateFunc func(pheromone mat.Matrix, solutions []Solution, evaporationRate float64) *mat.Dense

func (f PheromoneUpdateFunc) Apply(pheromone mat.Matrix, solutions []Solution, evaporationRate float64) *mat.Dense {
	return f(pheromone, solutions, evaporationRate)
}

// AntSystemUpdate — классическое правило Ant System:
// tau ← (1-rho)·tau + Σ_k Q/cost_k по рёбрам тура k.
type AntSystemUpdate struct {
	Q float64
}

func (u AntSystemUpdate) Apply(pheromone mat.Matrix, solutions []Solution, rho float64) *mat.Dense {
	next := evaporate(pheromone, rho)
	for _, s := range solutions {
		deposit(next, s, u.Q)
	}
	return next
}

// ElitistUpdate — Ant System плюс дополнительный вклад Elite·Q/cost по
// лучшему решению, которое стратегия видела за прогон.
// Хранит состояние, поэтому один экземпляр обслуживает один прогон.
type ElitistUpdate struct {
	Q     float64
	Elite float64

	best *BestTracker
}

func (u *ElitistUpdate) Apply(pheromone mat.Matrix, solutions []Solution, rho float64) *mat.Dense {
	if u.best == nil {
		u.best = NewBestTracker()
	}
	next := AntSystemUpdate{Q: u.Q}.Apply(pheromone, solutions, rho)
	if i := IterationBest(solutions); i >= 0 {
		u.best.Offer(solutions[i])
	}
	deposit(next, u.best.best, u.Elite*u.Q)
	return next
}

// IterationBestUpdate — испарение с нижней границей Floor и отложение
// феромона только по лучшему туру итерации.
type IterationBestUpdate struct {
	Q     float64
	Floor float64
}

func (u IterationBestUpdate) Apply(pheromone mat.Matrix, solutions []Solution, rho float64) *mat.Dense {
	next := evaporate(pheromone, rho)
	floor := u.Floor
	next.Apply(func(_, _ int, v float64) float64 {
		return math.Max(v, floor)
	}, next)
	if i := IterationBest(solutions); i >= 0 {
		deposit(next, solutions[i], u.Q)
	}
	return next
}

// evaporate возвращает (1-rho)·tau в новой матрице.
func evaporate(pheromone mat.Matrix, rho float64) *mat.Dense {
	var next mat.Dense
	next.Scale(1-rho, pheromone)
	return &next
}

// deposit добавляет q/cost на каждое ребро решения.
// Заглушки, нулевые и отрицательные стоимости пропускаются.
func deposit(tau *mat.Dense, s Solution, q float64) {
	if s.Matrix == nil || s.Degenerate() {
		return
	}
	amount := q / s.Cost
	if !(amount > 0) || math.IsInf(amount, 0) {
		return
	}
	var d mat.Dense
	d.Scale(amount, s.Matrix)
	tau.Add(tau, &d)
}
