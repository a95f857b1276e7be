package ga

import (
	"fmt"
	"math/rand"
)

// SelectionKind — имя оператора отбора в конфигурации.
type SelectionKind string

const (
	SelectionTournament SelectionKind = "tournament"
	SelectionRoulette   SelectionKind = "roulette"
	SelectionRandom     SelectionKind = "random"
	SelectionRank       SelectionKind = "rank"
	SelectionRankR      SelectionKind = "rank-r"
	SelectionSUS        SelectionKind = "sus"
	SelectionBoltzmann  SelectionKind = "boltzmann"
)

// MutationKind — оператор мутации потомка.
type MutationKind string

const (
	MutationSwap    MutationKind = "swap"
	MutationReverse MutationKind = "reverse"
)

type Config struct {
	Population     int          `toml:"population" yaml:"population"`
	Generations    int          `toml:"generations" yaml:"generations"`
	Elite          int          `toml:"elite" yaml:"elite"`
	TournamentSize int          `toml:"tournament_size" yaml:"tournament_size"`
	CrossoverRate  float64      `toml:"crossover_rate" yaml:"crossover_rate"`
	MutationRate   float64      `toml:"mutation_rate" yaml:"mutation_rate"`
	Mutation       MutationKind `toml:"mutation" yaml:"mutation"`

	Selection SelectionKind `toml:"selection" yaml:"selection"`
	// RankR — вероятность победы лучшей особи для SelectionRankR.
	RankR float64 `toml:"rank_r" yaml:"rank_r"`
	// Параметры SelectionBoltzmann
	BoltzmannAlpha float64 `toml:"boltzmann_alpha" yaml:"boltzmann_alpha"`
	BoltzmannTemp0 float64 `toml:"boltzmann_temp0" yaml:"boltzmann_temp0"`
}

func (c Config) Validate() error {
	if c.Population <= 1 {
		return fmt.Errorf(
			"размер популяции должен быть > 1 (получено %d)",
			c.Population,
		)
	}
	if c.Generations <= 0 {
		return fmt.Errorf(
			"количество поколений должно быть > 0 (получено %d)",
			c.Generations,
		)
	}
	if c.Elite < 0 || c.Elite >= c.Population {
		return fmt.Errorf(
			"число элитных особей должно быть в диапазоне [0, population) (получено %d)",
			c.Elite,
		)
	}
	if c.CrossoverRate < 0 || c.CrossoverRate > 1 {
		return fmt.Errorf(
			"вероятность кроссовера должна быть в диапазоне [0,1] (получено %f)",
			c.CrossoverRate,
		)
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return fmt.Errorf(
			"вероятность мутации должна быть в диапазоне [0,1] (получено %f)",
			c.MutationRate,
		)
	}
	switch c.Mutation {
	case MutationSwap, MutationReverse:
		// ok
	default:
		return fmt.Errorf("неизвестный оператор мутации %q", c.Mutation)
	}
	switch c.Selection {
	case SelectionTournament:
		if c.TournamentSize <= 0 {
			return fmt.Errorf(
				"размер турнира должен быть > 0 (получено %d)",
				c.TournamentSize,
			)
		}
	case SelectionRankR:
		if c.RankR < 0 || c.RankR > 1 {
			return fmt.Errorf(
				"rankR должно быть в диапазоне [0,1] (получено %f)",
				c.RankR,
			)
		}
	case SelectionBoltzmann:
		if c.BoltzmannAlpha < 0 || c.BoltzmannAlpha > 1 {
			return fmt.Errorf(
				"alpha отбора Больцмана должно быть в диапазоне [0,1] (получено %f)",
				c.BoltzmannAlpha,
			)
		}
		if c.BoltzmannTemp0 < 5 || c.BoltzmannTemp0 > 100 {
			return fmt.Errorf(
				"начальная температура отбора Больцмана должна быть в диапазоне [5,100] (получено %f)",
				c.BoltzmannTemp0,
			)
		}
	case SelectionRoulette, SelectionRandom, SelectionRank, SelectionSUS:
		// ok
	default:
		return fmt.Errorf("неизвестный оператор отбора %q", c.Selection)
	}
	return nil
}

func DefaultConfig() Config {
	return Config{
		Population:     150,
		Generations:    400,
		Elite:          4,
		TournamentSize: 5,
		CrossoverRate:  0.90,
		MutationRate:   0.15,
		Mutation:       MutationReverse,

		Selection:      SelectionTournament,
		RankR:          0.8,
		BoltzmannAlpha: 0.05,
		BoltzmannTemp0: 50,
	}
}

// selection строит оператор отбора по конфигурации.
func (c Config) selection() Selection {
	switch c.Selection {
	case SelectionRoulette:
		return RouletteWheel{}
	case SelectionRandom:
		return Random{}
	case SelectionRank:
		return Rank{}
	case SelectionRankR:
		return RankR{R: c.RankR}
	case SelectionSUS:
		return StochasticUniversalSampling{}
	case SelectionBoltzmann:
		return Boltzmann{
			Alpha:          c.BoltzmannAlpha,
			Temp0:          c.BoltzmannTemp0,
			MaxGenerations: c.Generations,
		}
	}
	return Tournament{Size: c.TournamentSize}
}

func (c Config) mutation() func([]int, *rand.Rand) {
	if c.Mutation == MutationSwap {
		return mutateSwap
	}
	return mutateReverse
}
