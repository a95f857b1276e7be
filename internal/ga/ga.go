package ga

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"tourOpt/internal/opt"
	"tourOpt/internal/perm"
	"tourOpt/internal/tsp"
)

// Solver — реализация генетического алгоритма для задачи коммивояжёра.
// Особь — открытая запись замкнутого тура.
type Solver struct {
	Cfg Config
	Rng *rand.Rand
}

// New возвращает новый GA-солвер с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
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

// Solve — реализация эвристики.
func (s *Solver) Solve(ctx context.Context, inst *tsp.Instance) (opt.Result, error) {
	start := time.Now()

	// Проверка корректности входных данных и конфигурации
	if err := inst.Validate(); err != nil {
		return opt.Result{}, err
	}
	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{}, err
	}
	if s.Rng == nil {
		return opt.Result{}, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}

	eval, err := tsp.NewEvaluator(inst)
	if err != nil {
		return opt.Result{}, err
	}

	nodes := inst.Nodes
	popSize := s.Cfg.Population
	selection := s.Cfg.selection()
	mutate := s.Cfg.mutation()

	// Вспомогательная анонимная функция для создания двумерного массива туров
	makeTours := func() [][]int {
		backing := make([]int, popSize*nodes)
		tours := make([][]int, popSize)
		for i := 0; i < popSize; i++ {
			tours[i] = backing[i*nodes : (i+1)*nodes]
		}
		return tours
	}

	// Две популяции: текущая (A) и следующая (B)
	toursA := makeTours()
	toursB := makeTours()
	costsA := make([]float64, popSize)
	costsB := make([]float64, popSize)

	// Инициализация начальной популяции
	for i := 0; i < popSize; i++ {
		perm.Identity(toursA[i])
		perm.Shuffle(toursA[i], s.Rng)
		costsA[i] = eval.MustCost(toursA[i])
	}
	evaluations := popSize

	// Поиск лучшего решения в начальной популяции
	bestTour := make([]int, nodes)
	bestCost := costsA[0]
	copy(bestTour, toursA[0])
	for i := 1; i < popSize; i++ {
		if costsA[i] < bestCost {
			bestCost = costsA[i]
			copy(bestTour, toursA[i])
		}
	}

	// Массивы для кроссовера:
	// mark и stamp используются для отметки уже включённых вершин
	mark := make([]int, nodes)
	stamp := 1

	// Временный буфер для второго потомка,
	// если в популяции остаётся нечётное число мест
	scratchChild := make([]int, nodes)

	for gen := 0; gen < s.Cfg.Generations; gen++ {
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			res := ToOptResult(
				bestTour,
				bestCost,
				evaluations,
				gen,
				map[string]any{"stopped": "context"},
			)
			res.Duration = time.Since(start)
			return res, err
		}

		write := 0

		// Элитизм (переносим лучших особей без изменений)
		for _, src := range ranked(costsA)[:s.Cfg.Elite] {
			copy(toursB[write], toursA[src])
			costsB[write] = costsA[src]
			write++
		}

		// Родительский пул на всё поколение; пары берутся подряд
		pool := selection.Select(costsA, popSize-write, gen, s.Rng)

		for k := 0; write < popSize; k += 2 {
			p1 := pool[k%len(pool)]
			p2 := pool[(k+1)%len(pool)]

			child1 := toursB[write]
			hasSecond := write+1 < popSize
			child2 := scratchChild
			if hasSecond {
				child2 = toursB[write+1]
			}

			// Кроссовер
			if s.Rng.Float64() < s.Cfg.CrossoverRate {
				orderCrossoverOX(
					toursA[p1],
					toursA[p2],
					child1,
					child2,
					s.Rng,
					mark,
					&stamp,
				)
			} else {
				copy(child1, toursA[p1])
				if hasSecond {
					copy(child2, toursA[p2])
				}
			}

			// Мутация
			if s.Rng.Float64() < s.Cfg.MutationRate {
				mutate(child1, s.Rng)
			}
			if hasSecond && s.Rng.Float64() < s.Cfg.MutationRate {
				mutate(child2, s.Rng)
			}

			// Оценка первого потомка
			c1 := eval.MustCost(child1)
			costsB[write] = c1
			evaluations++
			if c1 < bestCost {
				bestCost = c1
				copy(bestTour, child1)
			}
			write++

			// Оценка второго потомка
			if hasSecond {
				c2 := eval.MustCost(child2)
				costsB[write] = c2
				evaluations++
				if c2 < bestCost {
					bestCost = c2
					copy(bestTour, child2)
				}
				write++
			}
		}

		// Смена поколений
		toursA, toursB = toursB, toursA
		costsA, costsB = costsB, costsA
	}

	res := ToOptResult(
		bestTour,
		bestCost,
		evaluations,
		s.Cfg.Generations,
		map[string]any{
			"population":  s.Cfg.Population,
			"generations": s.Cfg.Generations,
			"elite":       s.Cfg.Elite,
			"selection":   string(s.Cfg.Selection),
			"mutation":    string(s.Cfg.Mutation),
		},
	)
	res.Duration = time.Since(start)
	return res, nil
}
