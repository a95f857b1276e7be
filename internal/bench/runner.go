package bench

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"tourOpt/internal/opt"
	"tourOpt/internal/tsp"
)

type Algorithm struct {
	Name    string
	Factory func(seed int64) (opt.Optimizer, error)
}

type Case struct {
	Nodes        int
	InstanceSeed int64
	// Side — сторона квадрата для RandomEuclidean.
	Side float64
}

type Record struct {
	Algo  string
	Nodes int
	Runs  int

	TimeBestMs float64
	TimeMeanMs float64
	TimeStdMs  float64

	CostBest float64
	CostMean float64
	CostStd  float64
}

type Runner struct {
	Runs          int
	BaseSeed      int64
	PerRunTimeout time.Duration // 0 = no timeout

	// Logger может быть nil.
	Logger *zap.Logger
}

// Instance генерирует экземпляр задачи для случая: один и тот же для всех
// алгоритмов и запусков.
func (c Case) Instance() *tsp.Instance {
	return tsp.RandomEuclidean(c.Nodes, c.Side, randForSeed(c.InstanceSeed))
}

func (r Runner) RunCase(ctx context.Context, c Case, algo Algorithm) (Record, error) {
	log := r.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("algo", algo.Name), zap.Int("nodes", c.Nodes))

	inst := c.Instance()
	eval, err := tsp.NewEvaluator(inst)
	if err != nil {
		return Record{}, err
	}

	costs := make([]float64, 0, r.Runs)
	timesMs := make([]float64, 0, r.Runs)

	for i := 0; i < r.Runs; i++ {
		runSeed := r.BaseSeed + int64(i)

		op, err := algo.Factory(runSeed)
		if err != nil {
			return Record{}, fmt.Errorf("run %d: factory: %w", i, err)
		}

		runCtx := ctx
		cancel := func() {}
		if r.PerRunTimeout > 0 {
			runCtx, cancel = context.WithTimeout(ctx, r.PerRunTimeout)
		}
		start := time.Now()
		res, err := op.Solve(runCtx, inst)
		dur := time.Since(start)
		cancel()

		if err != nil && runCtx.Err() != nil {
			return Record{}, fmt.Errorf("run %d: cancelled/timeout: %w", i, err)
		}
		if err != nil {
			return Record{}, fmt.Errorf("run %d: solve error: %w", i, err)
		}
		if err := tsp.ValidateTour(res.Tour, inst.Nodes); err != nil {
			return Record{}, fmt.Errorf("run %d: invalid tour: %w", i, err)
		}
		if want := eval.MustCost(res.Tour); !closeEnough(want, res.Cost) {
			return Record{}, fmt.Errorf("run %d: reported cost %f, tour costs %f", i, res.Cost, want)
		}

		costs = append(costs, res.Cost)
		timesMs = append(timesMs, float64(dur.Microseconds())/1000.0)

		log.Debug("запуск завершён",
			zap.Int("run", i),
			zap.Int64("seed", runSeed),
			zap.Float64("cost", res.Cost),
			zap.Duration("duration", dur),
		)
	}

	cStats := CalcStats(costs)
	tStats := CalcStats(timesMs)

	return Record{
		Algo:  algo.Name,
		Nodes: c.Nodes,
		Runs:  r.Runs,

		TimeBestMs: tStats.Best,
		TimeMeanMs: tStats.Mean,
		TimeStdMs:  tStats.Std,

		CostBest: cStats.Best,
		CostMean: cStats.Mean,
		CostStd:  cStats.Std,
	}, nil
}

func WriteCSV(path string, records []Record) error {
	if dir := dirOf(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := []string{
		"algo", "nodes", "runs",
		"time_best_ms", "time_mean_ms", "time_std_ms",
		"cost_best", "cost_mean", "cost_std",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.Algo,
			itoa(r.Nodes),
			itoa(r.Runs),

			ftoa(r.TimeBestMs),
			ftoa(r.TimeMeanMs),
			ftoa(r.TimeStdMs),

			ftoa(r.CostBest),
			ftoa(r.CostMean),
			ftoa(r.CostStd),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}
