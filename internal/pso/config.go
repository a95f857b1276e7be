package pso

import "fmt"

// Config — параметры роя. PosMin == PosMax == 0 отключает ограничение позиций.
type Config struct {
	Iterations        int `toml:"iterations" yaml:"iterations"`
	IterationsPerNode int `toml:"iterations_per_node" yaml:"iterations_per_node"`

	Particles int `toml:"particles" yaml:"particles"`

	W  float64 `toml:"w" yaml:"w"`
	C1 float64 `toml:"c1" yaml:"c1"`
	C2 float64 `toml:"c2" yaml:"c2"`

	VMax float64 `toml:"vmax" yaml:"vmax"`

	PosMin float64 `toml:"pos_min" yaml:"pos_min"`
	PosMax float64 `toml:"pos_max" yaml:"pos_max"`
}

func DefaultConfig() Config {
	return Config{
		Iterations:        0,
		IterationsPerNode: 180,

		Particles: 60,

		W:  0.729,
		C1: 1.49445,
		C2: 1.49445,

		VMax:   0.25,
		PosMin: 0.0,
		PosMax: 1.0,
	}
}

func (c Config) Validate() error {
	if c.Iterations <= 0 && c.IterationsPerNode <= 0 {
		return fmt.Errorf(
			"должно быть задано Iterations > 0 или IterationsPerNode > 0",
		)
	}
	if c.Particles <= 0 {
		return fmt.Errorf(
			"Particles должно быть > 0 (получено %d)",
			c.Particles,
		)
	}
	if c.W < 0 {
		return fmt.Errorf(
			"W должно быть >= 0 (получено %f)",
			c.W,
		)
	}
	if c.C1 < 0 || c.C2 < 0 {
		return fmt.Errorf(
			"C1 и C2 должны быть >= 0 (получено %f, %f)",
			c.C1,
			c.C2,
		)
	}
	if c.PosMin >= c.PosMax {
		if !(c.PosMin == 0 && c.PosMax == 0) {
			return fmt.Errorf(
				"для ограничения PosMin должно быть < PosMax (получено %f >= %f)",
				c.PosMin,
				c.PosMax,
			)
		}
	}
	return nil
}
