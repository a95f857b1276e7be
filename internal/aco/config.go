package aco

import (
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

// MinNodes — минимальный размер матриц: цикл со степенью 2 у каждой
// вершины требует хотя бы трёх вершин.
const MinNodes = 3

// Config — параметры одного прогона Ant System. После New не изменяется.
type Config struct {
	Iterations int
	Ants       int

	Alpha float64
	Beta  float64

	// EvaporationRate передаётся стратегии обновления как есть; допустимый
	// диапазон определяет стратегия.
	EvaporationRate float64

	// Weights — матрица оценки туров, Heuristic — статическая видимость
	// рёбер, Pheromone — начальный феромон. Все n×n.
	Weights   *mat.Dense
	Heuristic *mat.Dense
	Pheromone *mat.Dense

	Update PheromoneUpdate
	// Probe может быть nil, тогда используется NopProbe.
	Probe Probe

	// Workers ограничивает число параллельно строящих туры муравьёв.
	// 0 — GOMAXPROCS.
	Workers int

	// Logger может быть nil, тогда логирование отключено.
	Logger *zap.Logger
}

// DefaultConfig возвращает параметры алгоритма без матриц и стратегии:
// их обязан задать вызывающий или Builder.
func DefaultConfig() Config {
	return Config{
		Iterations: 100,
		Ants:       35,

		Alpha: 1.0,
		Beta:  2.0,

		EvaporationRate: 0.20,
	}
}

func (c Config) Validate() error {
	if c.Iterations <= 0 {
		return fmt.Errorf("%w: iterations должно быть > 0 (получено %d)", ErrConfiguration, c.Iterations)
	}
	if c.Ants <= 0 {
		return fmt.Errorf("%w: ants должно быть > 0 (получено %d)", ErrConfiguration, c.Ants)
	}
	if !(c.Alpha >= 0) || math.IsInf(c.Alpha, 0) {
		return fmt.Errorf("%w: alpha должно быть >= 0 (получено %f)", ErrConfiguration, c.Alpha)
	}
	if !(c.Beta >= 0) || math.IsInf(c.Beta, 0) {
		return fmt.Errorf("%w: beta должно быть >= 0 (получено %f)", ErrConfiguration, c.Beta)
	}
	if math.IsNaN(c.EvaporationRate) {
		return fmt.Errorf("%w: evaporation rate is NaN", ErrConfiguration)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers должно быть >= 0 (получено %d)", ErrConfiguration, c.Workers)
	}
	if c.Update == nil {
		return fmt.Errorf("%w: pheromone update strategy is nil", ErrConfiguration)
	}

	n, err := squareDim("pheromone", c.Pheromone)
	if err != nil {
		return err
	}
	if err := sameDims(n, "heuristic", c.Heuristic); err != nil {
		return err
	}
	if err := sameDims(n, "weights", c.Weights); err != nil {
		return err
	}

	if err := checkEntries("pheromone", c.Pheromone, true); err != nil {
		return err
	}
	if err := checkEntries("heuristic", c.Heuristic, true); err != nil {
		return err
	}
	return checkEntries("weights", c.Weights, false)
}

func squareDim(name string, m *mat.Dense) (int, error) {
	if m == nil {
		return 0, fmt.Errorf("%w: %s matrix is nil", ErrConfiguration, name)
	}
	r, c := m.Dims()
	if r != c {
		return 0, fmt.Errorf("%w: %s must be square (got %dx%d)", ErrDimensionMismatch, name, r, c)
	}
	if r < MinNodes {
		return 0, fmt.Errorf("%w: %s must be at least %dx%d (got %dx%d)", ErrConfiguration, name, MinNodes, MinNodes, r, c)
	}
	return r, nil
}

func sameDims(n int, name string, m *mat.Dense) error {
	if m == nil {
		return fmt.Errorf("%w: %s matrix is nil", ErrConfiguration, name)
	}
	r, c := m.Dims()
	if r != n || c != n {
		return fmt.Errorf("%w: %s must be %dx%d (got %dx%d)", ErrDimensionMismatch, name, n, n, r, c)
	}
	return nil
}

// checkEntries: все элементы конечны, при nonNegative ещё и >= 0.
func checkEntries(name string, m *mat.Dense, nonNegative bool) error {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := m.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: %s[%d][%d] must be finite (got %g)", ErrConfiguration, name, i, j, v)
			}
			if nonNegative && v < 0 {
				return fmt.Errorf("%w: %s[%d][%d] must be >= 0 (got %g)", ErrConfiguration, name, i, j, v)
			}
		}
	}
	return nil
}
