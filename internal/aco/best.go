package aco

// IterationBest возвращает индекс решения с минимальной стоимостью.
// При равенстве побеждает первое. Для пустого среза -1.
func IterationBest(sols []Solution) int {
	if len(sols) == 0 {
		return -1
	}
	best := 0
	for i := 1; i < len(sols); i++ {
		if sols[i].Less(sols[best]) {
			best = i
		}
	}
	return best
}

// BestTracker хранит глобально лучшее решение прогона.
// Стоимость хранимого решения не возрастает.
type BestTracker struct {
	best Solution
}

func NewBestTracker() *BestTracker {
	return &BestTracker{best: degenerate(nil)}
}

// Offer заменяет лучшее решение копией кандидата, если тот строго дешевле.
func (t *BestTracker) Offer(candidate Solution) bool {
	if !candidate.Valid() || !candidate.Less(t.best) {
		return false
	}
	t.best = candidate.Clone()
	return true
}

// Best возвращает копию лучшего решения. До первого улучшения это
// заглушка со стоимостью +Inf и пустой матрицей.
func (t *BestTracker) Best() Solution {
	return t.best.Clone()
}
