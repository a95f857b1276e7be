package bench

import (
	"context"
	"encoding/csv"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"tourOpt/internal/opt"
	"tourOpt/internal/sa"
	"tourOpt/internal/tsp"
)

// identity возвращает тур 0..n-1 с его честной стоимостью.
type identity struct{ costDelta float64 }

func (o identity) Solve(_ context.Context, inst *tsp.Instance) (opt.Result, error) {
	eval, err := tsp.NewEvaluator(inst)
	if err != nil {
		return opt.Result{}, err
	}
	tour := make([]int, inst.Nodes)
	for i := range tour {
		tour[i] = i
	}
	return opt.Result{Tour: tour, Cost: eval.MustCost(tour) + o.costDelta}, nil
}

type brokenTour struct{}

func (brokenTour) Solve(context.Context, *tsp.Instance) (opt.Result, error) {
	return opt.Result{Tour: []int{0, 0, 1}}, nil
}

func factoryOf(o opt.Optimizer) func(int64) (opt.Optimizer, error) {
	return func(int64) (opt.Optimizer, error) { return o, nil }
}

func TestCalcStats(t *testing.T) {
	assert.Equal(t, Stats{}, CalcStats(nil))
	assert.Equal(t, Stats{N: 1, Best: 4, Mean: 4}, CalcStats([]float64{4}))

	s := CalcStats([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.Equal(t, 8, s.N)
	assert.Equal(t, 2.0, s.Best)
	assert.InDelta(t, 5.0, s.Mean, 1e-12)
	// выборочная дисперсия: 32/7
	assert.InDelta(t, 2.13808993529939, s.Std, 1e-9)
}

func TestRunner_RunCase(t *testing.T) {
	c := Case{Nodes: 8, InstanceSeed: 3, Side: 100}
	r := Runner{Runs: 4, BaseSeed: 10}

	rec, err := r.RunCase(context.Background(), c, Algorithm{Name: "ID", Factory: factoryOf(identity{})})
	require.NoError(t, err)

	eval, err := tsp.NewEvaluator(c.Instance())
	require.NoError(t, err)
	want := eval.MustCost([]int{0, 1, 2, 3, 4, 5, 6, 7})

	assert.Equal(t, "ID", rec.Algo)
	assert.Equal(t, 8, rec.Nodes)
	assert.Equal(t, 4, rec.Runs)
	assert.InDelta(t, want, rec.CostBest, 1e-9)
	assert.InDelta(t, want, rec.CostMean, 1e-9)
	assert.InDelta(t, 0, rec.CostStd, 1e-9)
}

func TestRunner_SeedsAndLogging(t *testing.T) {
	var seeds []int64
	core, logs := observer.New(zap.DebugLevel)
	r := Runner{Runs: 3, BaseSeed: 100, Logger: zap.New(core)}

	algo := Algorithm{Name: "SA", Factory: func(seed int64) (opt.Optimizer, error) {
		seeds = append(seeds, seed)
		cfg := sa.DefaultConfig()
		cfg.Iterations = 200
		return sa.New(cfg, rand.New(rand.NewSource(seed)))
	}}
	rec, err := r.RunCase(context.Background(), Case{Nodes: 6, InstanceSeed: 1, Side: 10}, algo)
	require.NoError(t, err)

	assert.Equal(t, []int64{100, 101, 102}, seeds)
	assert.LessOrEqual(t, rec.CostBest, rec.CostMean)
	assert.Equal(t, 3, logs.FilterMessage("запуск завершён").Len())
}

func TestRunner_Errors(t *testing.T) {
	c := Case{Nodes: 5, InstanceSeed: 1, Side: 10}
	r := Runner{Runs: 2}

	_, err := r.RunCase(context.Background(), c, Algorithm{Name: "bad", Factory: factoryOf(brokenTour{})})
	assert.ErrorContains(t, err, "invalid tour")

	_, err = r.RunCase(context.Background(), c, Algorithm{Name: "liar", Factory: factoryOf(identity{costDelta: 1})})
	assert.ErrorContains(t, err, "reported cost")

	boom := errors.New("boom")
	_, err = r.RunCase(context.Background(), c, Algorithm{Name: "f", Factory: func(int64) (opt.Optimizer, error) {
		return nil, boom
	}})
	assert.ErrorIs(t, err, boom)
}

func TestRunner_Timeout(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := sa.DefaultConfig()
	algo := Algorithm{Name: "SA", Factory: func(seed int64) (opt.Optimizer, error) {
		return sa.New(cfg, rand.New(rand.NewSource(seed)))
	}}
	_, err := Runner{Runs: 1}.RunCase(ctx, Case{Nodes: 6, InstanceSeed: 1, Side: 10}, algo)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.csv")
	records := []Record{{Algo: "ACO", Nodes: 20, Runs: 3, CostBest: 1.5, CostMean: 2, CostStd: 0.25}}

	require.NoError(t, WriteCSV(path, records))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, []string{
		"algo", "nodes", "runs",
		"time_best_ms", "time_mean_ms", "time_std_ms",
		"cost_best", "cost_mean", "cost_std",
	}, rows[0])
	assert.Equal(t, []string{
		"ACO", "20", "3",
		"0.000000", "0.000000", "0.000000",
		"1.500000", "2.000000", "0.250000",
	}, rows[1])
}

func TestWriteCSV_NoDirectory(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, WriteCSV("out.csv", nil))
	_, err := os.Stat("out.csv")
	assert.NoError(t, err)
}

func TestCaseSeed(t *testing.T) {
	assert.Equal(t, int64(777+2000), CaseSeed(777, 0, 20))
	assert.NotEqual(t, CaseSeed(777, 0, 20), CaseSeed(777, 1, 20))
}
