package tsp

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// MinNodes — минимальный размер задачи: гамильтонов цикл, в котором у каждой
// вершины ровно два соседа, существует только начиная с трёх вершин.
const MinNodes = 3

// zeroDistEps заменяет нулевое расстояние при расчёте эвристики 1/d.
const zeroDistEps = 1e-9

// Instance — симметричная задача коммивояжёра на полном графе.
type Instance struct {
	Nodes int
	// Dist length must be Nodes*Nodes, row-major.
	Dist []float64
	// Objectives — дополнительные критерии, складываемые с расстоянием
	// при построении матрицы весов.
	Objectives []Objective
}

func NewInstance(nodes int, dist []float64) (*Instance, error) {
	inst := &Instance{Nodes: nodes, Dist: dist}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

func (inst *Instance) Validate() error {
	if inst == nil {
		return errors.New("instance is nil")
	}
	if inst.Nodes < MinNodes {
		return fmt.Errorf("nodes must be >= %d (got %d)", MinNodes, inst.Nodes)
	}
	if len(inst.Dist) != inst.Nodes*inst.Nodes {
		return fmt.Errorf("dist length must be nodes*nodes=%d (got %d)", inst.Nodes*inst.Nodes, len(inst.Dist))
	}
	n := inst.Nodes
	for i := 0; i < n; i++ {
		if d := inst.Dist[i*n+i]; d != 0 {
			return fmt.Errorf("dist[%d][%d] must be 0 (got %g)", i, i, d)
		}
		for j := 0; j < n; j++ {
			d := inst.Dist[i*n+j]
			if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
				return fmt.Errorf("dist[%d][%d] must be finite and >= 0 (got %g)", i, j, d)
			}
			if d != inst.Dist[j*n+i] {
				return fmt.Errorf("dist must be symmetric: [%d][%d]=%g, [%d][%d]=%g", i, j, d, j, i, inst.Dist[j*n+i])
			}
		}
	}
	for k, o := range inst.Objectives {
		if err := o.validate(n); err != nil {
			return fmt.Errorf("objective %d: %w", k, err)
		}
	}
	return nil
}

func (inst *Instance) Distance(i, j int) float64 {
	return inst.Dist[i*inst.Nodes+j]
}

// DistanceMatrix возвращает копию матрицы расстояний.
func (inst *Instance) DistanceMatrix() *mat.Dense {
	data := make([]float64, len(inst.Dist))
	copy(data, inst.Dist)
	return mat.NewDense(inst.Nodes, inst.Nodes, data)
}

// HeuristicMatrix — видимость рёбер 1/d; диагональ нулевая.
func (inst *Instance) HeuristicMatrix() *mat.Dense {
	n := inst.Nodes
	h := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			d := inst.Distance(i, j)
			if d < zeroDistEps {
				d = zeroDistEps
			}
			h.Set(i, j, 1/d)
		}
	}
	return h
}

// WeightMatrix — матрица весов для оценки тура: расстояние плюс все
// дополнительные критерии с их коэффициентами.
func (inst *Instance) WeightMatrix() (*mat.Dense, error) {
	return StackObjectives(inst.DistanceMatrix(), inst.Objectives...)
}

// RandomEuclidean генерирует экземпляр из точек, равномерно разбросанных
// по квадрату side×side.
func RandomEuclidean(nodes int, side float64, rng *rand.Rand) *Instance {
	if rng == nil {
		panic("генератор случайных чисел не инициализирован (nil)")
	}
	if side <= 0 {
		panic("invalid side length")
	}
	xs := make([]float64, nodes)
	ys := make([]float64, nodes)
	for i := range xs {
		xs[i] = rng.Float64() * side
		ys[i] = rng.Float64() * side
	}
	dist := make([]float64, nodes*nodes)
	for i := 0; i < nodes; i++ {
		for j := i + 1; j < nodes; j++ {
			d := math.Hypot(xs[i]-xs[j], ys[i]-ys[j])
			dist[i*nodes+j] = d
			dist[j*nodes+i] = d
		}
	}
	inst, err := NewInstance(nodes, dist)
	if err != nil {
		panic(err)
	}
	return inst
}
