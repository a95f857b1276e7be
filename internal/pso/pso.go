package pso

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/floats"

	"tourOpt/internal/opt"
	"tourOpt/internal/tsp"
)

// Solver - структура реализации алгоритма роя частиц
type Solver struct {
	Cfg Config
	Rng *rand.Rand
}

// New возвращает новый PSO-солвер с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
// Используется в фабриках.
func New(cfg Config, rng *rand.Rand) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	return &Solver{Cfg: cfg, Rng: rng}, nil
}

// particle описывает одну частицу роя.
type particle struct {
	// pos — позиция частицы
	pos []float64
	// vel — скорость частицы
	vel []float64

	// pBestPos — лучшая позиция частицы за всё время
	pBestPos []float64
	// pBestCost — значение целевой функции в pBestPos
	pBestCost float64

	// Вспомогательные буферы
	tourScratch []int
	keyScratch  []float64
}

// Solve — реализация эвристики.
func (s *Solver) Solve(ctx context.Context, inst *tsp.Instance) (opt.Result, error) {
	start := time.Now()

	// Валидация конфигурации
	if err := inst.Validate(); err != nil {
		return opt.Result{}, err
	}
	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{}, err
	}
	if s.Rng == nil {
		return opt.Result{}, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}

	// Оценка целевой функции
	eval, err := tsp.NewEvaluator(inst)
	if err != nil {
		return opt.Result{}, err
	}

	n := inst.Nodes

	iters := s.Cfg.Iterations
	if iters <= 0 {
		iters = s.Cfg.IterationsPerNode * n
	}

	// Инициализация частиц
	ps := make([]particle, s.Cfg.Particles)
	for i := range ps {
		ps[i] = particle{
			pos:         make([]float64, n),
			vel:         make([]float64, n),
			pBestPos:    make([]float64, n),
			pBestCost:   math.Inf(1),
			tourScratch: make([]int, n),
			keyScratch:  make([]float64, n),
		}
	}

	k := s.Cfg.coeffs()

	// Случайная инициализация позиций и скоростей частиц
	gBestPos := make([]float64, n)
	gBestTour := make([]int, n)
	gBestCost := math.Inf(1)

	for i := range ps {
		p := &ps[i]
		p.scatter(k, s.Rng)
		p.pBestCost = p.evaluate(eval)
		copy(p.pBestPos, p.pos)

		if p.pBestCost < gBestCost {
			gBestCost = p.pBestCost
			copy(gBestPos, p.pos)
			copy(gBestTour, p.tourScratch)
		}
	}
	evals := s.Cfg.Particles

	// Основной цикл
	iter := 0
	for ; iter < iters; iter++ {
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			return opt.Result{
				Tour:        gBestTour,
				Cost:        gBestCost,
				Evaluations: evals,
				Iterations:  iter,
				Duration:    time.Since(start),
				Meta: map[string]any{
					"stopped": "context",
				},
			}, err
		}

		for i := range ps {
			p := &ps[i]
			p.move(gBestPos, k, s.Rng)

			cost := p.evaluate(eval)
			evals++

			if cost < p.pBestCost {
				p.pBestCost = cost
				copy(p.pBestPos, p.pos)
			}
			if cost < gBestCost {
				gBestCost = cost
				copy(gBestPos, p.pos)
				copy(gBestTour, p.tourScratch)
			}
		}
	}

	return opt.Result{
		Tour:        gBestTour,
		Cost:        gBestCost,
		Evaluations: evals,
		Iterations:  iter,
		Duration:    time.Since(start),
		Meta: map[string]any{
			"particles": s.Cfg.Particles,
			"w":         k.w,
			"c1":        k.c1,
			"c2":        k.c2,
			"vmax":      k.vMax,
			"pos_min":   k.posMin,
			"pos_max":   k.posMax,
		},
	}, nil
}

// coeffs — параметры движения частиц, общие для роя.
type coeffs struct {
	w, c1, c2      float64
	vMax           float64
	posMin, posMax float64
}

func (c Config) coeffs() coeffs {
	return coeffs{w: c.W, c1: c.C1, c2: c.C2, vMax: c.VMax, posMin: c.PosMin, posMax: c.PosMax}
}

func (k coeffs) clampPos() bool { return k.posMin < k.posMax }

// scatter задаёт случайные начальные позицию и скорость.
func (p *particle) scatter(k coeffs, rng *rand.Rand) {
	span := 0.1
	if k.vMax > 0 {
		span = k.vMax
	}
	for d := range p.pos {
		if k.clampPos() {
			p.pos[d] = k.posMin + rng.Float64()*(k.posMax-k.posMin)
		} else {
			p.pos[d] = rng.Float64()
		}
		p.vel[d] = (rng.Float64()*2 - 1) * span
	}
}

// move делает один шаг: скорость по личному и глобальному лучшему,
// затем позиция. На границе области скорость по координате обнуляется.
func (p *particle) move(gBest []float64, k coeffs, rng *rand.Rand) {
	for d := range p.vel {
		r1, r2 := rng.Float64(), rng.Float64()
		v := k.w*p.vel[d] +
			k.c1*r1*(p.pBestPos[d]-p.pos[d]) +
			k.c2*r2*(gBest[d]-p.pos[d])
		if k.vMax > 0 {
			v = math.Max(-k.vMax, math.Min(k.vMax, v))
		}
		p.vel[d] = v
	}

	floats.Add(p.pos, p.vel)
	if !k.clampPos() {
		return
	}
	for d, x := range p.pos {
		if x < k.posMin || x > k.posMax {
			p.pos[d] = math.Max(k.posMin, math.Min(k.posMax, x))
			p.vel[d] = 0
		}
	}
}

// evaluate декодирует позицию в tourScratch и возвращает длину тура.
func (p *particle) evaluate(eval *tsp.Evaluator) float64 {
	decodeRandomKeys(p.pos, p.tourScratch, p.keyScratch)
	return eval.MustCost(p.tourScratch)
}

// decodeRandomKeys преобразует вещественные random-keys в тур:
// вершины упорядочиваются по возрастанию ключа.
func decodeRandomKeys(keys []float64, outTour []int, keyScratch []float64) {
	copy(keyScratch, keys)
	floats.Argsort(keyScratch, outTour)
}
