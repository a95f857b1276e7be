package aco

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gonum.org/v1/gonum/mat"

	"tourOpt/internal/tsp"
)

func TestNew_RejectsBadConfig(t *testing.T) {
	for _, tc := range []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero iterations", func(c *Config) { c.Iterations = 0 }},
		{"negative ants", func(c *Config) { c.Ants = -1 }},
		{"zero ants", func(c *Config) { c.Ants = 0 }},
		{"negative alpha", func(c *Config) { c.Alpha = -0.5 }},
		{"NaN beta", func(c *Config) { c.Beta = math.NaN() }},
		{"nil update", func(c *Config) { c.Update = nil }},
		{"nil heuristic", func(c *Config) { c.Heuristic = nil }},
		{"heuristic shape", func(c *Config) { c.Heuristic = ones(5) }},
		{"weights shape", func(c *Config) { c.Weights = mat.NewDense(6, 5, nil) }},
		{"non-square pheromone", func(c *Config) { c.Pheromone = mat.NewDense(6, 5, nil) }},
		{"too small", func(c *Config) {
			c.Pheromone, c.Heuristic, c.Weights = ones(2), ones(2), ones(2)
		}},
		{"negative pheromone", func(c *Config) {
			c.Pheromone = ones(6)
			c.Pheromone.Set(1, 2, -1)
		}},
		{"infinite weight", func(c *Config) {
			c.Weights = ones(6)
			c.Weights.Set(0, 1, math.Inf(1))
		}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig(6, 1)
			tc.mutate(&cfg)
			_, err := New(cfg, rand.New(rand.NewSource(1)))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfiguration)
		})
	}

	_, err := New(testConfig(6, 1), nil)
	assert.ErrorIs(t, err, ErrNilRNG)
}

func TestRun_NotificationOrder(t *testing.T) {
	cfg := testConfig(5, 2)
	cfg.Iterations = 1
	rec := &recorder{}
	cfg.Probe = rec

	s, err := New(cfg, rand.New(rand.NewSource(2)))
	require.NoError(t, err)
	assert.Equal(t, StateIdle, s.State())

	_, err = s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateFinished, s.State())

	assert.Equal(t, []string{
		"start",
		"iter_start:0",
		"current",
		"new_best",
		"pheromone",
		"iter_end:0",
		"end",
	}, rec.events)
}

func TestRun_ZeroIterations(t *testing.T) {
	cfg := testConfig(5, 3)
	rec := &recorder{}
	cfg.Probe = rec

	s, err := New(cfg, rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	best, err := s.run(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"start", "end"}, rec.events)
	assert.True(t, mat.Equal(cfg.Pheromone, s.Pheromone()))
	assert.True(t, best.Degenerate())
	assert.Nil(t, best.Matrix)
}

func TestRun_BestIsValidAndNonIncreasing(t *testing.T) {
	cfg := testConfig(10, 4)
	cfg.Iterations = 30
	rec := &recorder{}
	cfg.Probe = rec

	s, err := New(cfg, rand.New(rand.NewSource(4)))
	require.NoError(t, err)

	best, err := s.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, rec.current, 30)
	require.NotEmpty(t, rec.newBest)
	assert.Equal(t, 30, rec.updates)

	for i := 1; i < len(rec.newBest); i++ {
		assert.Less(t, rec.newBest[i], rec.newBest[i-1], "каждое новое лучшее строго дешевле")
	}
	assert.Equal(t, rec.newBest[len(rec.newBest)-1], best.Cost)

	for _, c := range rec.current {
		assert.GreaterOrEqual(t, c, best.Cost)
	}

	require.NoError(t, tsp.CheckCycle(best.Matrix))
	cost, err := Grade(best.Matrix, cfg.Weights)
	require.NoError(t, err)
	assert.InDelta(t, cost, best.Cost, 1e-9)
	assert.Equal(t, best.Cost, s.Best().Cost)
}

func TestRun_DoesNotTouchInitialPheromone(t *testing.T) {
	cfg := testConfig(6, 5)
	initial := mat.DenseCopyOf(cfg.Pheromone)

	s, err := New(cfg, rand.New(rand.NewSource(5)))
	require.NoError(t, err)
	_, err = s.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, mat.Equal(initial, cfg.Pheromone))
	assert.False(t, mat.Equal(initial, s.Pheromone()))
}

func TestRun_DeterministicAcrossWorkerCounts(t *testing.T) {
	run := func(workers int) (Solution, mat.Matrix) {
		cfg := testConfig(12, 6)
		cfg.Workers = workers
		cfg.Ants = 16
		s, err := New(cfg, rand.New(rand.NewSource(99)))
		require.NoError(t, err)
		best, err := s.Run(context.Background())
		require.NoError(t, err)
		return best, s.Pheromone()
	}

	bestSeq, phSeq := run(1)
	for _, w := range []int{2, 4, 16} {
		best, ph := run(w)
		assert.Equal(t, bestSeq.Cost, best.Cost, "workers=%d", w)
		assert.True(t, mat.Equal(bestSeq.Matrix, best.Matrix), "workers=%d", w)
		assert.True(t, mat.Equal(phSeq, ph), "workers=%d", w)
	}
}

func TestRun_DegenerateAntsAreNotFatal(t *testing.T) {
	// Нулевая эвристика при beta > 0 обнуляет все веса: ни один муравей не
	// может сделать шаг.
	n := 5
	cfg := testConfig(n, 7)
	cfg.Heuristic = mat.NewDense(n, n, nil)
	cfg.Iterations = 3
	cfg.Ants = 4
	rec := &recorder{}
	cfg.Probe = rec

	core, logs := observer.New(zap.WarnLevel)
	cfg.Logger = zap.New(core)

	s, err := New(cfg, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	best, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 12, rec.failures)
	assert.Equal(t, 12, logs.Len())
	assert.Empty(t, rec.newBest, "заглушка не может стать лучшим решением")
	require.Len(t, rec.current, 3)
	for _, c := range rec.current {
		assert.True(t, math.IsInf(c, 1))
	}
	assert.True(t, best.Degenerate())
}

func TestRun_PartialDegeneracyKeepsGoodAnts(t *testing.T) {
	// Вершина 0 достижима только из вершин 1 и 2: муравей, посетивший обе
	// раньше неё, застревает.
	n := 5
	cfg := testConfig(n, 8)
	h := ones(n)
	for k := 3; k < n; k++ {
		h.Set(0, k, 0)
		h.Set(k, 0, 0)
	}
	cfg.Heuristic = h
	cfg.Iterations = 5
	cfg.Ants = 20
	rec := &recorder{}
	cfg.Probe = rec

	s, err := New(cfg, rand.New(rand.NewSource(8)))
	require.NoError(t, err)

	best, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.Positive(t, rec.failures)
	assert.False(t, best.Degenerate())
	require.NoError(t, tsp.CheckCycle(best.Matrix))
}

func TestRun_StrategyShapeErrorIsFatal(t *testing.T) {
	for name, u := range map[string]PheromoneUpdate{
		"wrong shape": PheromoneUpdateFunc(func(mat.Matrix, []Solution, float64) *mat.Dense {
			return ones(3)
		}),
		"nil": PheromoneUpdateFunc(func(mat.Matrix, []Solution, float64) *mat.Dense {
			return nil
		}),
	} {
		t.Run(name, func(t *testing.T) {
			cfg := testConfig(5, 9)
			cfg.Update = u
			rec := &recorder{}
			cfg.Probe = rec

			s, err := New(cfg, rand.New(rand.NewSource(9)))
			require.NoError(t, err)

			_, err = s.Run(context.Background())
			require.ErrorIs(t, err, ErrStrategyShape)
			assert.Zero(t, rec.updates)
			assert.NotContains(t, rec.events, "end")
			assert.NotContains(t, rec.events, "iter_end:0")
			assert.True(t, mat.Equal(cfg.Pheromone, s.Pheromone()))
		})
	}
}

func TestRun_SecondRunFails(t *testing.T) {
	s, err := New(testConfig(5, 10), rand.New(rand.NewSource(10)))
	require.NoError(t, err)
	_, err = s.Run(context.Background())
	require.NoError(t, err)

	_, err = s.Run(context.Background())
	assert.ErrorIs(t, err, ErrFinished)
}

func TestRun_CancelledContextStopsBetweenIterations(t *testing.T) {
	cfg := testConfig(5, 11)
	rec := &recorder{}
	cfg.Probe = rec

	s, err := New(cfg, rand.New(rand.NewSource(11)))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"start"}, rec.events)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "finished", StateFinished.String())
	assert.Equal(t, "State(7)", State(7).String())
}
