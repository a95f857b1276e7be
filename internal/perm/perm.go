// Package perm — операции над перестановками вершин, общие для
// траекторных и популяционных эвристик.
package perm

import "math/rand"

// Identity заполняет срез значениями [0, 1, 2, ..., n-1].
// Используется как базовое состояние перед случайной перестановкой.
func Identity(p []int) {
	for i := range p {
		p[i] = i
	}
}

// Shuffle выполняет случайную перестановку элементов (Фишер–Йетс).
func Shuffle(p []int, rng *rand.Rand) {
	for i := len(p) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		p[i], p[j] = p[j], p[i]
	}
}

// Random возвращает новую случайную перестановку длины n.
func Random(n int, rng *rand.Rand) []int {
	p := make([]int, n)
	Identity(p)
	Shuffle(p, rng)
	return p
}

// twoPositions выбирает две различные позиции.
func twoPositions(n int, rng *rand.Rand) (int, int) {
	i := rng.Intn(n)
	j := rng.Intn(n - 1)
	if j >= i {
		j++
	}
	return i, j
}

// Swap формирует соседнее решение путём обмена двух случайных позиций.
func Swap(p []int, rng *rand.Rand) {
	if len(p) < 2 {
		return
	}
	i, j := twoPositions(len(p), rng)
	p[i], p[j] = p[j], p[i]
}

// Insert извлекает элемент из позиции i и вставляет его в позицию j.
func Insert(p []int, rng *rand.Rand) {
	if len(p) < 2 {
		return
	}
	i, j := twoPositions(len(p), rng)
	Move(p, i, j)
}

// Move перемещает элемент из позиции i в позицию j со сдвигом остальных.
func Move(p []int, i, j int) {
	val := p[i]
	if i < j {
		// Сдвиг элементов влево
		copy(p[i:j], p[i+1:j+1])
	} else {
		// Сдвиг элементов вправо
		copy(p[j+1:i+1], p[j:i])
	}
	p[j] = val
}

// Reverse — ход 2-opt: разворот отрезка между двумя случайными позициями.
// В замкнутом туре меняет ровно два ребра.
func Reverse(p []int, rng *rand.Rand) {
	if len(p) < 2 {
		return
	}
	i, j := twoPositions(len(p), rng)
	ReverseRange(p, i, j)
}

// ReverseRange разворачивает p[i..j] включительно; порядок i, j не важен.
func ReverseRange(p []int, i, j int) {
	if i > j {
		i, j = j, i
	}
	for i < j {
		p[i], p[j] = p[j], p[i]
		i++
		j--
	}
}
