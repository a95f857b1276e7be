package aco

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Solution — тур одного муравья: симметричная 0/1 матрица смежности и её стоимость.
type Solution struct {
	Matrix *mat.Dense
	Cost   float64
}

// degenerate возвращает решение-заглушку для муравья, который не смог
// замкнуть тур. Стоимость +Inf, чтобы заглушка никогда не стала лучшей.
func degenerate(m *mat.Dense) Solution {
	return Solution{Matrix: m, Cost: math.Inf(1)}
}

// Less упорядочивает решения по возрастанию стоимости.
func (s Solution) Less(other Solution) bool {
	return s.Cost < other.Cost
}

// Degenerate сообщает, что решение — заглушка неудачного построения.
func (s Solution) Degenerate() bool {
	return math.IsInf(s.Cost, 1)
}

// Valid: NaN-стоимость недопустима.
func (s Solution) Valid() bool {
	return !math.IsNaN(s.Cost)
}

// Clone копирует решение вместе с матрицей.
func (s Solution) Clone() Solution {
	out := Solution{Cost: s.Cost}
	if s.Matrix != nil {
		out.Matrix = mat.DenseCopyOf(s.Matrix)
	}
	return out
}
