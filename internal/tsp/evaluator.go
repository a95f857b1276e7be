package tsp

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Evaluator считает стоимость замкнутого тура по матрице весов.
type Evaluator struct {
	n int
	w *mat.Dense
}

func NewEvaluator(inst *Instance) (*Evaluator, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	w, err := inst.WeightMatrix()
	if err != nil {
		return nil, err
	}
	return &Evaluator{n: inst.Nodes, w: w}, nil
}

// NewMatrixEvaluator оборачивает готовую квадратную матрицу весов.
func NewMatrixEvaluator(w *mat.Dense) (*Evaluator, error) {
	if w == nil {
		return nil, fmt.Errorf("nil weight matrix")
	}
	r, c := w.Dims()
	if r != c {
		return nil, fmt.Errorf("weight matrix must be square (got %dx%d)", r, c)
	}
	return &Evaluator{n: r, w: w}, nil
}

func (e *Evaluator) Nodes() int { return e.n }

// Cost — сумма весов рёбер tour[0]→tour[1]→…→tour[n-1]→tour[0].
func (e *Evaluator) Cost(tour []int) (float64, error) {
	if e == nil || e.w == nil {
		return 0, fmt.Errorf("nil evaluator")
	}
	if err := ValidateTour(tour, e.n); err != nil {
		return 0, err
	}
	sum := 0.0
	prev := tour[len(tour)-1]
	for _, v := range tour {
		sum += e.w.At(prev, v)
		prev = v
	}
	return sum, nil
}

func (e *Evaluator) MustCost(tour []int) float64 {
	c, err := e.Cost(tour)
	if err != nil {
		panic(err)
	}
	return c
}
