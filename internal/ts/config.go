package ts

import "fmt"

// Neighborhood определяет тип окрестности.
type Neighborhood string

const (
	NeighborhoodInsert Neighborhood = "insert"
	NeighborhoodSwap   Neighborhood = "swap"
	// NeighborhoodReverse — ход 2-opt.
	NeighborhoodReverse Neighborhood = "2opt"
)

type Config struct {
	Iterations        int `toml:"iterations" yaml:"iterations"`
	IterationsPerNode int `toml:"iterations_per_node" yaml:"iterations_per_node"`

	TabuTenure int `toml:"tabu_tenure" yaml:"tabu_tenure"`

	TabuTenureRand int `toml:"tabu_tenure_rand" yaml:"tabu_tenure_rand"`

	NeighborsPerIter int `toml:"neighbors_per_iter" yaml:"neighbors_per_iter"`

	Neighborhood Neighborhood `toml:"neighborhood" yaml:"neighborhood"`
}

func DefaultConfig() Config {
	return Config{
		Iterations:        0,
		IterationsPerNode: 250,

		TabuTenure:     7,
		TabuTenureRand: 3,

		NeighborsPerIter: 90,
		Neighborhood:     NeighborhoodReverse,
	}
}

func (c Config) Validate() error {
	if c.Iterations <= 0 && c.IterationsPerNode <= 0 {
		return fmt.Errorf(
			"должно быть задано Iterations > 0 или IterationsPerNode > 0",
		)
	}
	if c.TabuTenure <= 0 {
		return fmt.Errorf(
			"TabuTenure должно быть > 0 (получено %d)",
			c.TabuTenure,
		)
	}
	if c.TabuTenureRand < 0 {
		return fmt.Errorf(
			"TabuTenureRand должно быть >= 0 (получено %d)",
			c.TabuTenureRand,
		)
	}
	if c.NeighborsPerIter <= 0 {
		return fmt.Errorf(
			"NeighborsPerIter должно быть > 0 (получено %d)",
			c.NeighborsPerIter,
		)
	}
	switch c.Neighborhood {
	case NeighborhoodInsert, NeighborhoodSwap, NeighborhoodReverse:
		// ok
	default:
		return fmt.Errorf(
			"неизвестный тип окрестности %q",
			c.Neighborhood,
		)
	}
	return nil
}

func (c Config) apply() func(p []int, from, to int) {
	switch c.Neighborhood {
	case NeighborhoodSwap:
		return applySwap
	case NeighborhoodReverse:
		return applyReverse
	}
	return applyInsert
}
