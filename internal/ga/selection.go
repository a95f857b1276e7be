package ga

import (
	"math"
	"math/rand"
	"sort"
)

// Selection выбирает count индексов особей для скрещивания.
// costs минимизируются; generation — номер текущего поколения с нуля.
type Selection interface {
	Select(costs []float64, count, generation int, rng *rand.Rand) []int
}

// fitness переводит стоимость в приспособленность для пропорциональных
// операторов: меньшая стоимость — большая приспособленность.
func fitness(cost float64) float64 {
	if !(cost >= 0) {
		cost = 0
	}
	return 1 / (1 + cost)
}

func fitnesses(costs []float64) ([]float64, float64) {
	f := make([]float64, len(costs))
	total := 0.0
	for i, c := range costs {
		f[i] = fitness(c)
		total += f[i]
	}
	return f, total
}

// RouletteWheel — отбор, пропорциональный приспособленности.
type RouletteWheel struct{}

func (RouletteWheel) Select(costs []float64, count, _ int, rng *rand.Rand) []int {
	f, total := fitnesses(costs)
	out := make([]int, 0, count)
	for len(out) < count {
		threshold := total * rng.Float64()
		pick := len(f) - 1
		sum := 0.0
		for i, v := range f {
			sum += v
			if sum > threshold {
				pick = i
				break
			}
		}
		out = append(out, pick)
	}
	return out
}

// Random — равновероятный отбор без повторов (с повторами, если count
// больше размера популяции).
type Random struct{}

func (Random) Select(costs []float64, count, _ int, rng *rand.Rand) []int {
	n := len(costs)
	if count <= n {
		return rng.Perm(n)[:count]
	}
	out := make([]int, count)
	for i := range out {
		out[i] = rng.Intn(n)
	}
	return out
}

// Rank — бинарный турнир: из двух случайных особей побеждает лучшая.
type Rank struct{}

func (Rank) Select(costs []float64, count, _ int, rng *rand.Rand) []int {
	out := make([]int, count)
	for k := range out {
		a, b := rng.Intn(len(costs)), rng.Intn(len(costs))
		if costs[b] < costs[a] {
			a = b
		}
		out[k] = a
	}
	return out
}

// RankR — бинарный турнир, в котором лучшая особь побеждает с вероятностью R.
type RankR struct {
	R float64
}

func (s RankR) Select(costs []float64, count, _ int, rng *rand.Rand) []int {
	out := make([]int, count)
	for k := range out {
		a, b := rng.Intn(len(costs)), rng.Intn(len(costs))
		if costs[b] < costs[a] {
			a, b = b, a
		}
		if rng.Float64() < s.R {
			out[k] = a
		} else {
			out[k] = b
		}
	}
	return out
}

// Tournament — турнирный отбор с возвращением. Size <= 0 означает
// пятую часть популяции (но не меньше 1).
type Tournament struct {
	Size int
}

func (s Tournament) Select(costs []float64, count, _ int, rng *rand.Rand) []int {
	size := s.Size
	if size <= 0 {
		size = len(costs) / 5
		if size < 1 {
			size = 1
		}
	}
	out := make([]int, count)
	for k := range out {
		out[k] = tournamentSelect(costs, size, rng)
	}
	return out
}

// tournamentSelect возвращает индекс особи с минимальной стоимостью среди
// tournamentSize случайно выбранных.
func tournamentSelect(costs []float64, tournamentSize int, rng *rand.Rand) int {
	best := rng.Intn(len(costs))
	bestCost := costs[best]
	for i := 1; i < tournamentSize; i++ {
		cand := rng.Intn(len(costs))
		if costs[cand] < bestCost {
			best = cand
			bestCost = costs[cand]
		}
	}
	return best
}

// StochasticUniversalSampling — count равноотстоящих указателей на колесе
// рулетки с одним случайным сдвигом.
type StochasticUniversalSampling struct{}

func (StochasticUniversalSampling) Select(costs []float64, count, _ int, rng *rand.Rand) []int {
	out := make([]int, 0, count)
	if count <= 0 {
		return out
	}
	f, total := fitnesses(costs)
	step := total / float64(count)
	pointer := rng.Float64() * step
	sum := 0.0
	for i, v := range f {
		sum += v
		for sum > pointer && len(out) < count {
			out = append(out, i)
			pointer += step
		}
	}
	// Ошибка округления может оставить последний указатель за краем колеса.
	for len(out) < count {
		out = append(out, len(f)-1)
	}
	return out
}

// Boltzmann — отбор без повторов с весами exp(-c/T), где c — стоимость,
// нормированная в [0,1], а температура убывает с номером поколения:
// T = Temp0·(1-Alpha)^k, k = 1 + 100·generation/MaxGenerations.
type Boltzmann struct {
	Alpha          float64
	Temp0          float64
	MaxGenerations int
}

func (s Boltzmann) temperature(generation int) float64 {
	maxGen := s.MaxGenerations
	if maxGen <= 0 {
		maxGen = 1
	}
	k := 1 + 100*float64(generation)/float64(maxGen)
	return s.Temp0 * math.Pow(1-s.Alpha, k)
}

func (s Boltzmann) Select(costs []float64, count, generation int, rng *rand.Rand) []int {
	n := len(costs)
	if count > n {
		count = n
	}
	lo, hi := costs[0], costs[0]
	for _, c := range costs[1:] {
		lo = math.Min(lo, c)
		hi = math.Max(hi, c)
	}
	span := hi - lo
	temp := s.temperature(generation)

	w := make([]float64, n)
	for i, c := range costs {
		norm := 0.0
		if span > 0 {
			norm = (c - lo) / span
		}
		switch {
		case norm == 0:
			w[i] = 1
		case temp > 0:
			w[i] = math.Exp(-norm / temp)
		}
	}

	out := make([]int, 0, count)
	for len(out) < count {
		total := 0.0
		for _, v := range w {
			if v > 0 {
				total += v
			}
		}
		pick := -1
		if total > 0 {
			r := rng.Float64() * total
			for i, v := range w {
				if v <= 0 {
					continue
				}
				pick = i
				r -= v
				if r <= 0 {
					break
				}
			}
		} else {
			// Остались только особи с нулевым весом: выбираем равновероятно.
			rest := make([]int, 0, n)
			for i, v := range w {
				if v == 0 {
					rest = append(rest, i)
				}
			}
			pick = rest[rng.Intn(len(rest))]
		}
		out = append(out, pick)
		w[pick] = -1
	}
	return out
}

// ranked возвращает индексы особей по возрастанию стоимости.
func ranked(costs []float64) []int {
	idxs := make([]int, len(costs))
	for i := range idxs {
		idxs[i] = i
	}
	sort.SliceStable(idxs, func(i, j int) bool {
		return costs[idxs[i]] < costs[idxs[j]]
	})
	return idxs
}
