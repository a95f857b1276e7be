package aco

import "math/rand"

// deriveSeed смешивает родительский сид и номер потока (финализатор SplitMix64),
// чтобы соседние муравьи получали некоррелированные последовательности.
func deriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// antSeeds раздаёт сиды муравьям итерации. Сиды берутся из генератора
// прогона последовательно, до запуска горутин, поэтому результат не зависит
// от числа воркеров и порядка их выполнения.
func antSeeds(base *rand.Rand, ants int) []int64 {
	seeds := make([]int64, ants)
	for k := range seeds {
		seeds[k] = deriveSeed(base.Int63(), uint64(k))
	}
	return seeds
}
