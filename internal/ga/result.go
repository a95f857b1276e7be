package ga

import "tourOpt/internal/opt"

func ToOptResult(bestTour []int, bestCost float64, evals, gens int, meta map[string]any) opt.Result {
	tourCopy := make([]int, len(bestTour))
	copy(tourCopy, bestTour)
	return opt.Result{
		Tour:        tourCopy,
		Cost:        bestCost,
		Evaluations: evals,
		Iterations:  gens,
		Meta:        meta,
	}
}
