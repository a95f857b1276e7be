package aco

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// State — состояние движка.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// AntSystem — движок муравьиной системы. Один экземпляр выполняет один прогон.
type AntSystem struct {
	cfg   Config
	rng   *rand.Rand
	probe Probe
	log   *zap.Logger

	pheromone *mat.Dense
	best      *BestTracker
	state     State
}

// New проверяет конфигурацию и возвращает движок в состоянии StateIdle.
// Начальная матрица феромона копируется: Config.Pheromone движок не меняет.
func New(cfg Config, rng *rand.Rand) (*AntSystem, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, ErrNilRNG
	}

	probe := cfg.Probe
	if probe == nil {
		probe = NopProbe{}
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &AntSystem{
		cfg:       cfg,
		rng:       rng,
		probe:     probe,
		log:       log.Named("aco"),
		pheromone: mat.DenseCopyOf(cfg.Pheromone),
		best:      NewBestTracker(),
		state:     StateIdle,
	}, nil
}

func (s *AntSystem) State() State { return s.state }

// Best возвращает копию глобально лучшего решения.
func (s *AntSystem) Best() Solution { return s.best.Best() }

// Pheromone возвращает текущую матрицу феромона только для чтения.
func (s *AntSystem) Pheromone() mat.Matrix { return s.pheromone }

// Run выполняет Config.Iterations итераций и возвращает глобально лучшее решение.
// Контекст проверяется только между итерациями; итерация, начавшаяся до
// отмены, доводится до конца.
func (s *AntSystem) Run(ctx context.Context) (Solution, error) {
	return s.run(ctx, s.cfg.Iterations)
}

func (s *AntSystem) run(ctx context.Context, iterations int) (Solution, error) {
	if s.state != StateIdle {
		return Solution{}, ErrFinished
	}
	s.state = StateRunning
	defer func() { s.state = StateFinished }()

	s.log.Debug("прогон начат",
		zap.Int("iterations", iterations),
		zap.Int("ants", s.cfg.Ants),
		zap.Int("nodes", s.pheromone.RawMatrix().Rows),
	)
	s.probe.OnStart()

	for i := 0; i < iterations; i++ {
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			s.log.Info("прогон остановлен", zap.Int("iteration", i), zap.Error(err))
			return s.best.Best(), err
		}

		s.probe.OnIterationStart(i)
		if err := s.iterate(i); err != nil {
			s.log.Error("итерация прервана", zap.Int("iteration", i), zap.Error(err))
			return s.best.Best(), err
		}
		s.probe.OnIterationEnd(i)
	}

	s.probe.OnEnd()
	best := s.best.Best()
	s.log.Debug("прогон завершён", zap.Float64("best_cost", best.Cost))
	return best, nil
}

// iterate — одна итерация: веса → муравьи → оценка → лучшее → феромон.
func (s *AntSystem) iterate(iter int) error {
	weights, err := BuildWeights(s.pheromone, s.cfg.Heuristic, s.cfg.Alpha, s.cfg.Beta)
	if err != nil {
		return err
	}

	tours, ok, err := s.runAnts(weights)
	if err != nil {
		return err
	}

	sols, err := s.grade(iter, tours, ok)
	if err != nil {
		return err
	}

	cur := &sols[IterationBest(sols)]
	s.probe.OnCurrentBest(cur)
	if s.best.Offer(*cur) {
		s.log.Debug("новое лучшее решение", zap.Int("iteration", iter), zap.Float64("cost", cur.Cost))
		s.probe.OnNewBest(cur)
	}

	next := s.cfg.Update.Apply(s.pheromone, sols, s.cfg.EvaporationRate)
	if err := checkShape(next, s.pheromone); err != nil {
		return err
	}
	s.probe.OnPheromoneUpdate(s.pheromone, next)
	s.pheromone = next
	return nil
}

// runAnts строит туры всех муравьёв на ограниченном пуле горутин.
// Матрица весов общая и только читается; каждый муравей пишет в свою матрицу
// и использует свой генератор, поэтому блокировки не нужны.
func (s *AntSystem) runAnts(weights *mat.Dense) ([]*mat.Dense, []bool, error) {
	ants := s.cfg.Ants
	seeds := antSeeds(s.rng, ants)
	tours := make([]*mat.Dense, ants)
	ok := make([]bool, ants)

	var g errgroup.Group
	g.SetLimit(s.workers())
	for k := 0; k < ants; k++ {
		g.Go(func() error {
			rng := rand.New(rand.NewSource(seeds[k]))
			tours[k], ok[k] = ConstructTour(weights, rng)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return tours, ok, nil
}

// grade оценивает туры. Неудачные построения получают стоимость +Inf,
// пишутся в лог и передаются пробе.
func (s *AntSystem) grade(iter int, tours []*mat.Dense, ok []bool) ([]Solution, error) {
	sols := make([]Solution, len(tours))
	for k, m := range tours {
		if !ok[k] {
			s.log.Warn("муравей не смог построить тур",
				zap.Int("iteration", iter),
				zap.Int("ant", k),
			)
			s.probe.OnConstructionFailure(iter, k)
			sols[k] = degenerate(m)
			continue
		}
		cost, err := Grade(m, s.cfg.Weights)
		if err != nil {
			return nil, err
		}
		sols[k] = Solution{Matrix: m, Cost: cost}
	}
	return sols, nil
}

func (s *AntSystem) workers() int {
	w := s.cfg.Workers
	if w <= 0 {
		w = runtime.GOMAXPROCS(0)
	}
	if w > s.cfg.Ants {
		w = s.cfg.Ants
	}
	return w
}

func checkShape(next, old *mat.Dense) error {
	if next == nil {
		return fmt.Errorf("%w: got nil", ErrStrategyShape)
	}
	nr, nc := next.Dims()
	or, oc := old.Dims()
	if nr != or || nc != oc {
		return fmt.Errorf("%w: got %dx%d, want %dx%d", ErrStrategyShape, nr, nc, or, oc)
	}
	return nil
}
