package aco

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// ConstructTour строит один замкнутый тур рулеточным отбором по матрице весов.
//
// Старт выбирается равномерно. Непосещённые вершины просматриваются по
// возрастанию номера; вершины с нулевым весом не выбираются никогда.
// Если из текущей вершины суммарный вес непосещённых равен нулю, возвращается
// нулевая матрица и false. Матрица весов только читается, поэтому вызовы
// для разных муравьёв можно выполнять параллельно.
func ConstructTour(weights mat.Matrix, rng *rand.Rand) (*mat.Dense, bool) {
	n, _ := weights.Dims()
	tour := mat.NewDense(n, n, nil)

	start := rng.Intn(n)
	unvisited := make([]int, 0, n-1)
	for v := 0; v < n; v++ {
		if v != start {
			unvisited = append(unvisited, v)
		}
	}

	row := make([]float64, n)
	cur := start
	for len(unvisited) > 0 {
		row = mat.Row(row, cur, weights)

		denom := 0.0
		for _, v := range unvisited {
			denom += row[v]
		}
		// !(denom > 0) заодно отсекает NaN
		if !(denom > 0) {
			tour.Zero()
			return tour, false
		}

		// Рулетка: r ∈ [0, denom)
		r := rng.Float64() * denom
		pick := -1
		for k, v := range unvisited {
			w := row[v]
			if w <= 0 {
				continue
			}
			pick = k
			r -= w
			if r <= 0 {
				break
			}
		}
		// При накоплении ошибки округления r может остаться > 0,
		// тогда pick указывает на последнего кандидата с положительным весом.

		next := unvisited[pick]
		tour.Set(cur, next, 1)
		tour.Set(next, cur, 1)
		unvisited = append(unvisited[:pick], unvisited[pick+1:]...)
		cur = next
	}

	// Замыкание цикла
	tour.Set(cur, start, 1)
	tour.Set(start, cur, 1)
	return tour, true
}
