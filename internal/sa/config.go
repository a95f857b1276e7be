package sa

import (
	"fmt"
	"math/rand"

	"tourOpt/internal/perm"
)

// Тип окрестности
type Neighborhood string

const (
	NeighborhoodSwap   Neighborhood = "swap"
	NeighborhoodInsert Neighborhood = "insert"
	// NeighborhoodReverse — ход 2-opt, разворот отрезка тура.
	NeighborhoodReverse Neighborhood = "2opt"
)

type Config struct {
	Iterations        int `toml:"iterations" yaml:"iterations"`
	IterationsPerNode int `toml:"iterations_per_node" yaml:"iterations_per_node"`

	InitialTemp float64 `toml:"initial_temp" yaml:"initial_temp"`
	FinalTemp   float64 `toml:"final_temp" yaml:"final_temp"`
	Alpha       float64 `toml:"alpha" yaml:"alpha"`

	Neighborhood Neighborhood `toml:"neighborhood" yaml:"neighborhood"`
}

func DefaultConfig() Config {
	return Config{
		Iterations:        0,
		IterationsPerNode: 2500,

		InitialTemp: 100.0,
		FinalTemp:   0.01,
		Alpha:       0.999,

		Neighborhood: NeighborhoodReverse,
	}
}

func (c Config) Validate() error {
	if c.Iterations <= 0 && c.IterationsPerNode <= 0 {
		return fmt.Errorf(
			"должно быть задано Iterations > 0 или IterationsPerNode > 0",
		)
	}
	if c.InitialTemp <= 0 {
		return fmt.Errorf(
			"InitialTemp должно быть > 0 (получено %f)",
			c.InitialTemp,
		)
	}
	if c.FinalTemp <= 0 {
		return fmt.Errorf(
			"FinalTemp должно быть > 0 (получено %f)",
			c.FinalTemp,
		)
	}
	if c.FinalTemp >= c.InitialTemp {
		return fmt.Errorf(
			"FinalTemp должно быть < InitialTemp (получено %f >= %f)",
			c.FinalTemp,
			c.InitialTemp,
		)
	}
	if c.Alpha <= 0 || c.Alpha >= 1 {
		return fmt.Errorf(
			"alpha должно лежать в интервале (0,1) (получено %f)",
			c.Alpha,
		)
	}
	switch c.Neighborhood {
	case NeighborhoodSwap, NeighborhoodInsert, NeighborhoodReverse:
		// ok
	default:
		return fmt.Errorf(
			"неизвестный тип окрестности %q",
			c.Neighborhood,
		)
	}
	return nil
}

func (c Config) move() func([]int, *rand.Rand) {
	switch c.Neighborhood {
	case NeighborhoodInsert:
		return perm.Insert
	case NeighborhoodReverse:
		return perm.Reverse
	}
	return perm.Swap
}
