package tsp

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Objective — дополнительный критерий качества тура (например, риск или
// время в пути) с весовым коэффициентом.
type Objective struct {
	Name   string
	Coef   float64
	Values *mat.Dense
}

func (o Objective) validate(n int) error {
	if o.Values == nil {
		return errors.New("objective values are nil")
	}
	r, c := o.Values.Dims()
	if r != n || c != n {
		return fmt.Errorf("objective %q must be %dx%d (got %dx%d)", o.Name, n, n, r, c)
	}
	if math.IsNaN(o.Coef) || math.IsInf(o.Coef, 0) {
		return fmt.Errorf("objective %q coef must be finite (got %g)", o.Name, o.Coef)
	}
	return nil
}

// StackObjectives складывает базовую матрицу с критериями:
// W = base + Σ coef_k · values_k. Входные матрицы не изменяются.
func StackObjectives(base mat.Matrix, objs ...Objective) (*mat.Dense, error) {
	if base == nil {
		return nil, errors.New("base matrix is nil")
	}
	r, c := base.Dims()
	if r != c {
		return nil, fmt.Errorf("base matrix must be square (got %dx%d)", r, c)
	}
	w := mat.DenseCopyOf(base)
	var scaled mat.Dense
	for _, o := range objs {
		if err := o.validate(r); err != nil {
			return nil, err
		}
		scaled.Scale(o.Coef, o.Values)
		w.Add(w, &scaled)
	}
	return w, nil
}
