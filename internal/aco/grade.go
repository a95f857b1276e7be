package aco

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Grade — стоимость тура: sum(M ⊙ W) / 2. Каждое ребро симметричной
// матрицы учтено дважды, отсюда деление пополам.
func Grade(adjacency, weights mat.Matrix) (float64, error) {
	if adjacency == nil || weights == nil {
		return 0, fmt.Errorf("%w: nil matrix", ErrConfiguration)
	}
	ar, ac := adjacency.Dims()
	wr, wc := weights.Dims()
	if ar != wr || ac != wc {
		return 0, fmt.Errorf("%w: adjacency %dx%d, weights %dx%d", ErrDimensionMismatch, ar, ac, wr, wc)
	}
	var prod mat.Dense
	prod.MulElem(adjacency, weights)
	return mat.Sum(&prod) / 2, nil
}
