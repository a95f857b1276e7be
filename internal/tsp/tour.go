package tsp

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ErrNotCycle — матрица смежности не задаёт единственный гамильтонов цикл.
var ErrNotCycle = errors.New("tsp: adjacency matrix is not a single hamiltonian cycle")

// ValidateTour проверяет, что tour — перестановка вершин 0..n-1 (открытая
// запись цикла, замыкающее ребро подразумевается).
func ValidateTour(tour []int, n int) error {
	if len(tour) != n {
		return fmt.Errorf("tour length must be %d (got %d)", n, len(tour))
	}
	seen := make([]bool, n)
	for i, v := range tour {
		if v < 0 || v >= n {
			return fmt.Errorf("tour[%d]=%d out of range [0,%d)", i, v, n)
		}
		if seen[v] {
			return fmt.Errorf("duplicate node %d in tour", v)
		}
		seen[v] = true
	}
	return nil
}

// AdjacencyFromTour строит симметричную 0/1 матрицу замкнутого тура.
func AdjacencyFromTour(tour []int) *mat.Dense {
	n := len(tour)
	m := mat.NewDense(n, n, nil)
	prev := tour[n-1]
	for _, v := range tour {
		m.Set(prev, v, 1)
		m.Set(v, prev, 1)
		prev = v
	}
	return m
}

// TourFromAdjacency восстанавливает тур, начинающийся в вершине 0.
// Из двух соседей вершины 0 первым идёт сосед с меньшим номером.
func TourFromAdjacency(m mat.Matrix) ([]int, error) {
	nbr, err := neighbours(m)
	if err != nil {
		return nil, err
	}
	n := len(nbr)
	tour := make([]int, 0, n)
	visited := make([]bool, n)
	prev, cur := -1, 0
	for {
		tour = append(tour, cur)
		visited[cur] = true
		next := nbr[cur][0]
		if next == prev {
			next = nbr[cur][1]
		}
		prev, cur = cur, next
		if cur == 0 {
			break
		}
		if visited[cur] {
			return nil, fmt.Errorf("%w: revisits node %d", ErrNotCycle, cur)
		}
	}
	if len(tour) != n {
		return nil, fmt.Errorf("%w: cycle through node 0 covers %d of %d nodes", ErrNotCycle, len(tour), n)
	}
	return tour, nil
}

// CheckCycle: симметрия, ровно два ребра у каждой вершины, один цикл без подциклов.
func CheckCycle(m mat.Matrix) error {
	_, err := TourFromAdjacency(m)
	return err
}

// neighbours возвращает пары соседей каждой вершины в порядке возрастания.
func neighbours(m mat.Matrix) ([][2]int, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil matrix", ErrNotCycle)
	}
	r, c := m.Dims()
	if r != c || r < MinNodes {
		return nil, fmt.Errorf("%w: shape %dx%d", ErrNotCycle, r, c)
	}
	out := make([][2]int, r)
	for i := 0; i < r; i++ {
		k := 0
		for j := 0; j < r; j++ {
			v := m.At(i, j)
			if v == 0 {
				continue
			}
			if v != 1 || i == j {
				return nil, fmt.Errorf("%w: entry [%d][%d]=%g", ErrNotCycle, i, j, v)
			}
			if m.At(j, i) != 1 {
				return nil, fmt.Errorf("%w: asymmetric edge %d-%d", ErrNotCycle, i, j)
			}
			if k == 2 {
				return nil, fmt.Errorf("%w: node %d has degree > 2", ErrNotCycle, i)
			}
			out[i][k] = j
			k++
		}
		if k != 2 {
			return nil, fmt.Errorf("%w: node %d has degree %d", ErrNotCycle, i, k)
		}
	}
	return out, nil
}
