package opt

import (
	"context"
	"time"

	"tourOpt/internal/tsp"
)

type Optimizer interface {
	Solve(ctx context.Context, inst *tsp.Instance) (Result, error)
}

type Result struct {
	// Tour — открытая запись замкнутого тура (перестановка вершин).
	Tour        []int
	Cost        float64
	Evaluations int
	Iterations  int
	Duration    time.Duration
	Meta        map[string]any
}
