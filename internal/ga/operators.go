package ga

import (
	"math/rand"

	"tourOpt/internal/perm"
)

// orderCrossoverOX реализует оператор Order Crossover.
// mark и stamp позволяют не очищать массив отметок между вызовами.
func orderCrossoverOX(
	p1, p2, c1, c2 []int,
	rng *rand.Rand,
	mark []int,
	stamp *int,
) {
	n := len(p1)

	// Выбор случайного отрезка [a, b)
	a := rng.Intn(n)
	b := rng.Intn(n)
	if a > b {
		a, b = b, a
	}
	if a == b {
		// Что бы длина сегмента не была 0
		b = (a + 1) % n
		if a > b {
			a, b = b, a
		}
	}

	oxChild(c1, p1, p2, a, b, mark, stamp)
	oxChild(c2, p2, p1, a, b, mark, stamp)
}

// oxChild копирует отрезок [a, b) из donor, а остальные позиции заполняет
// генами filler в порядке обхода от b по кругу.
func oxChild(child, donor, filler []int, a, b int, mark []int, stamp *int) {
	n := len(child)
	for i := range child {
		child[i] = -1
	}

	*stamp++
	cur := *stamp
	for i := a; i < b; i++ {
		child[i] = donor[i]
		mark[donor[i]] = cur
	}

	pos := b % n
	for i := 0; i < n; i++ {
		gene := filler[(b+i)%n]
		if mark[gene] == cur {
			continue
		}
		for child[pos] != -1 {
			pos = (pos + 1) % n
		}
		child[pos] = gene
		mark[gene] = cur
	}
}

// mutateSwap реализует оператор мутации Swap.
func mutateSwap(p []int, rng *rand.Rand) {
	perm.Swap(p, rng)
}

// mutateReverse — мутация 2-opt: разворот случайного отрезка тура.
func mutateReverse(p []int, rng *rand.Rand) {
	perm.Reverse(p, rng)
}
