package aco

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// BuildWeights считает веса переходов weight(i,j) = P[i,j]^alpha · H[i,j]^beta.
// Нормировка не выполняется: она делается локально при выборе следующей вершины.
//
// 0^0 == 1, как в math.Pow: при alpha == 0 ребро с нулевым феромоном
// остаётся достижимым, при beta == 0 то же для нулевой эвристики.
func BuildWeights(pheromone, heuristic mat.Matrix, alpha, beta float64) (*mat.Dense, error) {
	if pheromone == nil || heuristic == nil {
		return nil, fmt.Errorf("%w: nil matrix", ErrConfiguration)
	}
	pr, pc := pheromone.Dims()
	hr, hc := heuristic.Dims()
	if pr != hr || pc != hc {
		return nil, fmt.Errorf("%w: pheromone %dx%d, heuristic %dx%d", ErrDimensionMismatch, pr, pc, hr, hc)
	}
	if pr == 0 || pc == 0 {
		return nil, fmt.Errorf("%w: empty matrix", ErrConfiguration)
	}

	w := mat.NewDense(pr, pc, nil)
	w.Apply(func(i, j int, p float64) float64 {
		return fastPow(p, alpha) * fastPow(heuristic.At(i, j), beta)
	}, pheromone)
	return w, nil
}

// fastPow — оптимизация для частых степеней.
// Результаты совпадают с math.Pow, включая 0^0 == 1.
func fastPow(x, p float64) float64 {
	switch p {
	case 0:
		return 1.0
	case 1:
		return x
	case 2:
		return x * x
	}
	return math.Pow(x, p)
}
