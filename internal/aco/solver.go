package aco

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"tourOpt/internal/opt"
	"tourOpt/internal/tsp"
)

// UpdateRule выбирает стратегию обновления феромона для Solver.
type UpdateRule string

const (
	UpdateAntSystem     UpdateRule = "as"
	UpdateElitist       UpdateRule = "elitist"
	UpdateIterationBest UpdateRule = "iteration-best"
)

// SolverConfig — параметры муравьиного алгоритма для opt.Optimizer.
type SolverConfig struct {
	Iterations        int `toml:"iterations" yaml:"iterations"`
	IterationsPerNode int `toml:"iterations_per_node" yaml:"iterations_per_node"`

	Ants int `toml:"ants" yaml:"ants"`

	Alpha float64 `toml:"alpha" yaml:"alpha"`
	Beta  float64 `toml:"beta" yaml:"beta"`

	Rho float64 `toml:"rho" yaml:"rho"`

	Q float64 `toml:"q" yaml:"q"`

	Tau0 float64 `toml:"tau0" yaml:"tau0"`

	Update UpdateRule `toml:"update" yaml:"update"`
	// Elite — вес элитного муравья для UpdateElitist.
	Elite float64 `toml:"elite" yaml:"elite"`

	Workers int `toml:"workers" yaml:"workers"`
}

func DefaultSolverConfig() SolverConfig {
	return SolverConfig{
		Iterations:        0,
		IterationsPerNode: 10,

		Ants: 35,

		Alpha: 1.0,
		Beta:  2.0,

		Rho: 0.20,
		Q:   100.0,

		Tau0: 1.0,

		Update: UpdateAntSystem,
		Elite:  5,
	}
}

func (c SolverConfig) Validate() error {
	if c.Iterations <= 0 && c.IterationsPerNode <= 0 {
		return fmt.Errorf(
			"должно быть задано Iterations > 0 или IterationsPerNode > 0",
		)
	}
	if c.Ants <= 0 {
		return fmt.Errorf("ants должно быть > 0 (получено %d)", c.Ants)
	}
	if c.Alpha < 0 {
		return fmt.Errorf("alpha должно быть >= 0 (получено %f)", c.Alpha)
	}
	if c.Beta < 0 {
		return fmt.Errorf("beta должно быть >= 0 (получено %f)", c.Beta)
	}
	if c.Rho <= 0 || c.Rho >= 1 {
		return fmt.Errorf("rho должно лежать в интервале (0,1) (получено %f)", c.Rho)
	}
	if c.Q <= 0 {
		return fmt.Errorf("Q должно быть > 0 (получено %f)", c.Q)
	}
	if c.Tau0 <= 0 {
		return fmt.Errorf("tau0 должно быть > 0 (получено %f)", c.Tau0)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers должно быть >= 0 (получено %d)", c.Workers)
	}
	switch c.Update {
	case UpdateAntSystem, UpdateIterationBest:
		// ok
	case UpdateElitist:
		if c.Elite < 0 {
			return fmt.Errorf("elite должно быть >= 0 (получено %f)", c.Elite)
		}
	default:
		return fmt.Errorf("неизвестное правило обновления феромона %q", c.Update)
	}
	return nil
}

func (c SolverConfig) strategy() PheromoneUpdate {
	switch c.Update {
	case UpdateElitist:
		return &ElitistUpdate{Q: c.Q, Elite: c.Elite}
	case UpdateIterationBest:
		return IterationBestUpdate{Q: c.Q, Floor: 1e-12}
	}
	return AntSystemUpdate{Q: c.Q}
}

// Solver адаптирует движок AntSystem к интерфейсу opt.Optimizer.
type Solver struct {
	Cfg SolverConfig
	Rng *rand.Rand

	// Probe и Logger необязательны.
	Probe  Probe
	Logger *zap.Logger
}

// NewSolver возвращает новый ACO-солвер с валидацией конфигурации, с использованием
// инициализированного генератора случайных чисел. Используется в фабриках.
func NewSolver(cfg SolverConfig, rng *rand.Rand) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, ErrNilRNG
	}
	return &Solver{Cfg: cfg, Rng: rng}, nil
}

// Solve строит матрицы задачи, запускает один прогон и декодирует лучший тур.
func (s *Solver) Solve(ctx context.Context, inst *tsp.Instance) (opt.Result, error) {
	startTime := time.Now()

	if err := inst.Validate(); err != nil {
		return opt.Result{}, err
	}
	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{}, err
	}
	if s.Rng == nil {
		return opt.Result{}, ErrNilRNG
	}

	weights, err := inst.WeightMatrix()
	if err != nil {
		return opt.Result{}, err
	}

	n := inst.Nodes
	maxIter := s.Cfg.Iterations
	if maxIter <= 0 {
		maxIter = s.Cfg.IterationsPerNode * n
	}

	engine, err := NewBuilder(n).
		WithIterations(maxIter).
		WithAnts(s.Cfg.Ants).
		WithAlpha(s.Cfg.Alpha).
		WithBeta(s.Cfg.Beta).
		WithEvaporationRate(s.Cfg.Rho).
		WithWeights(weights).
		WithHeuristic(inst.HeuristicMatrix()).
		WithUniformPheromone(s.Cfg.Tau0).
		WithUpdate(s.Cfg.strategy()).
		WithProbe(s.Probe).
		WithWorkers(s.Cfg.Workers).
		WithLogger(s.Logger).
		Build(s.Rng)
	if err != nil {
		return opt.Result{}, err
	}

	meta := map[string]any{
		"ants":   s.Cfg.Ants,
		"alpha":  s.Cfg.Alpha,
		"beta":   s.Cfg.Beta,
		"rho":    s.Cfg.Rho,
		"Q":      s.Cfg.Q,
		"tau0":   s.Cfg.Tau0,
		"update": string(s.Cfg.Update),
	}

	best, runErr := engine.Run(ctx)
	if runErr != nil && ctx.Err() == nil {
		return opt.Result{}, runErr
	}
	if runErr != nil {
		meta["stopped"] = "context"
	}
	if best.Degenerate() {
		if runErr != nil {
			return opt.Result{Duration: time.Since(startTime), Meta: meta}, runErr
		}
		return opt.Result{}, fmt.Errorf("ни один муравей не построил тур за %d итераций", maxIter)
	}

	tour, err := tsp.TourFromAdjacency(best.Matrix)
	if err != nil {
		return opt.Result{}, err
	}

	return opt.Result{
		Tour:        tour,
		Cost:        best.Cost,
		Evaluations: maxIter * s.Cfg.Ants,
		Iterations:  maxIter,
		Duration:    time.Since(startTime),
		Meta:        meta,
	}, runErr
}
