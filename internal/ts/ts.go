package ts

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"tourOpt/internal/opt"
	"tourOpt/internal/perm"
	"tourOpt/internal/tsp"
)

// Solver - структура реализации поиска с запретами.
type Solver struct {
	Cfg Config
	Rng *rand.Rand
}

// New возвращает новый TS-солвер с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
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

// Solve — основной цикл алгоритма
func (s *Solver) Solve(ctx context.Context, inst *tsp.Instance) (opt.Result, error) {
	start := time.Now()

	// Валидация входных данных
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

	maxIter := s.Cfg.Iterations
	if maxIter <= 0 {
		maxIter = s.Cfg.IterationsPerNode * n
	}

	// Текущее и кандидатное решения
	curr := perm.Random(n, s.Rng)
	cand := make([]int, n)

	currCost := eval.MustCost(curr)
	evals := 1

	// Глобально лучшее решение
	best := make([]int, n)
	copy(best, curr)
	bestCost := currCost

	// Табу-список - кольцевой буфер с мапой
	// Ёмкость выбирается с запасом относительно длины табу
	tabu := newTabuList(max(32, (s.Cfg.TabuTenure+s.Cfg.TabuTenureRand)*4))

	apply := s.Cfg.apply()

	neighbors := s.Cfg.NeighborsPerIter
	if neighbors < 1 {
		neighbors = 1
	}

	iter := 0
	for ; iter < maxIter; iter++ {
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			return opt.Result{
				Tour:        best,
				Cost:        bestCost,
				Evaluations: evals,
				Iterations:  iter,
				Duration:    time.Since(start),
				Meta: map[string]any{
					"stopped": "context",
				},
			}, err
		}

		// Лучший допустимый ход
		bestMoveFrom, bestMoveTo := -1, -1
		bestMoveCost := math.Inf(1)
		bestMoveNode := -1

		// Запасной ход (лучший без учёта табу),
		// используется если все допустимые ходы табуированы
		fallbackFrom, fallbackTo := -1, -1
		fallbackCost := math.Inf(1)
		fallbackNode := -1

		// Итерация по случайно сгенерированным соседям
		for k := 0; k < neighbors; k++ {
			from := s.Rng.Intn(n)
			to := s.Rng.Intn(n - 1)
			if to >= from {
				to++
			}

			node := curr[from]
			key := moveKey(node, from, to)

			// Формирование соседнего решения
			copy(cand, curr)
			apply(cand, from, to)

			cost := eval.MustCost(cand)
			evals++

			// Обновление хода
			if cost < fallbackCost {
				fallbackCost = cost
				fallbackFrom, fallbackTo = from, to
				fallbackNode = node
			}

			isTabu := tabu.IsTabu(key, iter)
			aspiration := cost < bestCost // критерий аспирации

			// Табуированный ход пропускается,
			// если не выполняется критерий аспирации
			if isTabu && !aspiration {
				continue
			}

			if cost < bestMoveCost {
				bestMoveCost = cost
				bestMoveFrom, bestMoveTo = from, to
				bestMoveNode = node
			}
		}

		// Выбор хода: сначала допустимый лучший, иначе запасной
		chosenFrom, chosenTo := bestMoveFrom, bestMoveTo
		chosenCost := bestMoveCost
		chosenNode := bestMoveNode

		if chosenFrom < 0 {
			chosenFrom, chosenTo = fallbackFrom, fallbackTo
			chosenCost = fallbackCost
			chosenNode = fallbackNode
		}

		// Нет допустимых ходов — завершаем поиск
		if chosenFrom < 0 {
			break
		}

		// Применение выбранного хода
		apply(curr, chosenFrom, chosenTo)
		currCost = chosenCost

		// Добавление обратного хода в табу-список.
		// Для всех окрестностей обратный ход переносит ту же вершину из to в from.
		tenure := s.Cfg.TabuTenure
		if s.Cfg.TabuTenureRand > 0 {
			tenure += s.Rng.Intn(s.Cfg.TabuTenureRand + 1)
		}
		reverseKey := moveKey(chosenNode, chosenTo, chosenFrom)
		tabu.Add(reverseKey, iter+tenure)

		// Обновление глобально лучшего решения
		if currCost < bestCost {
			bestCost = currCost
			copy(best, curr)
		}
	}

	return opt.Result{
		Tour:        best,
		Cost:        bestCost,
		Evaluations: evals,
		Iterations:  iter,
		Duration:    time.Since(start),
		Meta: map[string]any{
			"tabu_tenure":        s.Cfg.TabuTenure,
			"tabu_tenure_rand":   s.Cfg.TabuTenureRand,
			"neighbors_per_iter": s.Cfg.NeighborsPerIter,
			"neighborhood":       string(s.Cfg.Neighborhood),
		},
	}, nil
}

// tabuList — структура табу-списка.
// Реализована как кольцевой буфер фиксированного размера
// с map для быстрой проверки табуированности.
type tabuList struct {
	m   map[uint64]int // ключ → итерация истечения табу
	key []uint64       // кольцевой буфер ключей
	exp []int          // соответствующие сроки истечения
	i   int            // текущая позиция в кольце
}

// newTabuList создаёт табу-список заданной ёмкости.
func newTabuList(capacity int) *tabuList {
	if capacity < 8 {
		capacity = 8
	}
	return &tabuList{
		m:   make(map[uint64]int, capacity*2),
		key: make([]uint64, capacity),
		exp: make([]int, capacity),
		i:   0,
	}
}

// IsTabu проверяет, является ли ход табуированным на текущей итерации.
func (t *tabuList) IsTabu(k uint64, iter int) bool {
	if exp, ok := t.m[k]; ok && exp > iter {
		return true
	}
	return false
}

// Add добавляет новый табу-ход с указанием итерации истечения.
func (t *tabuList) Add(k uint64, expiry int) {
	// Удаление старого элемента из кольцевого буфера
	oldK := t.key[t.i]
	oldExp := t.exp[t.i]
	if oldK != 0 {
		if curExp, ok := t.m[oldK]; ok && curExp == oldExp {
			delete(t.m, oldK)
		}
	}

	t.key[t.i] = k
	t.exp[t.i] = expiry
	t.m[k] = expiry

	t.i++
	if t.i >= len(t.key) {
		t.i = 0
	}
}

// applySwap применяет swap-ход (обмен элементов в позициях i и j).
func applySwap(p []int, i, j int) {
	p[i], p[j] = p[j], p[i]
}

// applyInsert применяет insert-ход (элемент из позиции from вставляется в позицию to).
func applyInsert(p []int, from, to int) {
	if from == to {
		return
	}
	perm.Move(p, from, to)
}

// applyReverse применяет ход 2-opt: разворот отрезка между from и to.
func applyReverse(p []int, from, to int) {
	perm.ReverseRange(p, from, to)
}

// moveKey формирует уникальный ключ хода
func moveKey(node, from, to int) uint64 {
	return (uint64(uint32(node)) << 42) |
		(uint64(uint32(from)) << 21) |
		uint64(uint32(to))
}
