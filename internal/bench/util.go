package bench

import (
	"math/rand"
	"path/filepath"
	"strconv"
)

func randForSeed(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func dirOf(path string) string {
	d := filepath.Dir(path)
	if d == "." {
		return ""
	}
	return d
}

func itoa(v int) string { return strconv.Itoa(v) }

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// CaseSeed выводит сид экземпляра из базового сида, порядкового номера
// и размера задачи.
func CaseSeed(base int64, index, nodes int) int64 {
	return base + int64(index)*10_000 + int64(nodes)*100
}
