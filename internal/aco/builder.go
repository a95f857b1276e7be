package aco

import (
	"fmt"
	"math/rand"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

// Builder собирает Config для задачи размера n. Значения по умолчанию берутся
// из DefaultConfig; феромон — матрица единиц, стратегия — AntSystemUpdate{Q: 1}.
// Первая ошибка сеттера запоминается и возвращается из Build.
type Builder struct {
	n   int
	cfg Config
	err error
}

func NewBuilder(n int) *Builder {
	b := &Builder{n: n, cfg: DefaultConfig()}
	if n < MinNodes {
		b.err = fmt.Errorf("%w: problem size должно быть >= %d (получено %d)", ErrConfiguration, MinNodes, n)
	}
	return b
}

func (b *Builder) WithIterations(n int) *Builder {
	b.cfg.Iterations = n
	return b
}

func (b *Builder) WithAnts(n int) *Builder {
	b.cfg.Ants = n
	return b
}

func (b *Builder) WithAlpha(alpha float64) *Builder {
	b.cfg.Alpha = alpha
	return b
}

func (b *Builder) WithBeta(beta float64) *Builder {
	b.cfg.Beta = beta
	return b
}

func (b *Builder) WithEvaporationRate(rho float64) *Builder {
	b.cfg.EvaporationRate = rho
	return b
}

func (b *Builder) WithWeights(w *mat.Dense) *Builder {
	b.check("weights", w)
	b.cfg.Weights = w
	return b
}

func (b *Builder) WithHeuristic(h *mat.Dense) *Builder {
	b.check("heuristic", h)
	b.cfg.Heuristic = h
	return b
}

func (b *Builder) WithPheromone(p *mat.Dense) *Builder {
	b.check("pheromone", p)
	b.cfg.Pheromone = p
	return b
}

// WithUniformPheromone заполняет начальный феромон значением tau0.
func (b *Builder) WithUniformPheromone(tau0 float64) *Builder {
	if b.n >= MinNodes {
		b.cfg.Pheromone = uniform(b.n, tau0)
	}
	return b
}

func (b *Builder) WithUpdate(u PheromoneUpdate) *Builder {
	b.cfg.Update = u
	return b
}

func (b *Builder) WithProbe(p Probe) *Builder {
	b.cfg.Probe = p
	return b
}

func (b *Builder) WithWorkers(n int) *Builder {
	b.cfg.Workers = n
	return b
}

func (b *Builder) WithLogger(l *zap.Logger) *Builder {
	b.cfg.Logger = l
	return b
}

// Config возвращает собранную конфигурацию с подставленными значениями по умолчанию.
func (b *Builder) Config() (Config, error) {
	if b.err != nil {
		return Config{}, b.err
	}
	cfg := b.cfg
	if cfg.Pheromone == nil {
		cfg.Pheromone = uniform(b.n, 1)
	}
	if cfg.Update == nil {
		cfg.Update = AntSystemUpdate{Q: 1}
	}
	if cfg.Probe == nil {
		cfg.Probe = NopProbe{}
	}
	return cfg, cfg.Validate()
}

func (b *Builder) Build(rng *rand.Rand) (*AntSystem, error) {
	cfg, err := b.Config()
	if err != nil {
		return nil, err
	}
	return New(cfg, rng)
}

func (b *Builder) check(name string, m *mat.Dense) {
	if b.err != nil {
		return
	}
	if m == nil {
		b.err = fmt.Errorf("%w: %s matrix is nil", ErrConfiguration, name)
		return
	}
	if r, c := m.Dims(); r != b.n || c != b.n {
		b.err = fmt.Errorf("%w: %s must be %dx%d (got %dx%d)", ErrDimensionMismatch, name, b.n, b.n, r, c)
	}
}

func uniform(n int, v float64) *mat.Dense {
	data := make([]float64, n*n)
	for i := range data {
		data[i] = v
	}
	return mat.NewDense(n, n, data)
}
