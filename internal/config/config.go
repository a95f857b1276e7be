// Package config — профиль бенчмарка: параметры прогона и всех алгоритмов.
// Профиль читается из TOML или YAML (по расширению файла) поверх значений
// по умолчанию; флаги командной строки применяются после файла.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"tourOpt/internal/aco"
	"tourOpt/internal/ga"
	"tourOpt/internal/pso"
	"tourOpt/internal/sa"
	"tourOpt/internal/ts"
)

// Bench — параметры серии запусков.
type Bench struct {
	Out   string   `toml:"out" yaml:"out"`
	Sizes []int    `toml:"sizes" yaml:"sizes"`
	Algos []string `toml:"algos" yaml:"algos"`
	Runs  int      `toml:"runs" yaml:"runs"`

	Seed         int64 `toml:"seed" yaml:"seed"`
	InstanceSeed int64 `toml:"instance_seed" yaml:"instance_seed"`

	// Side — сторона квадрата, в котором генерируются вершины.
	Side float64 `toml:"side" yaml:"side"`

	PerRunTimeout time.Duration `toml:"per_run_timeout" yaml:"per_run_timeout"`

	// MetricsAddr — адрес HTTP-сервера /metrics; пусто — метрики не отдаются.
	MetricsAddr string `toml:"metrics_addr" yaml:"metrics_addr"`
}

type Profile struct {
	Bench Bench            `toml:"bench" yaml:"bench"`
	GA    ga.Config        `toml:"ga" yaml:"ga"`
	SA    sa.Config        `toml:"sa" yaml:"sa"`
	TS    ts.Config        `toml:"ts" yaml:"ts"`
	ACO   aco.SolverConfig `toml:"aco" yaml:"aco"`
	PSO   pso.Config       `toml:"pso" yaml:"pso"`
}

// Algorithms — имена алгоритмов, известные бенчмарку.
var Algorithms = []string{"GA", "SA", "TS", "ACO", "PSO"}

func Default() Profile {
	return Profile{
		Bench: Bench{
			Out:          "artifacts/results.csv",
			Sizes:        []int{20, 50, 100},
			Algos:        append([]string(nil), Algorithms...),
			Runs:         30,
			Seed:         1000,
			InstanceSeed: 777,
			Side:         1000,
		},
		GA:  ga.DefaultConfig(),
		SA:  sa.DefaultConfig(),
		TS:  ts.DefaultConfig(),
		ACO: aco.DefaultSolverConfig(),
		PSO: pso.DefaultConfig(),
	}
}

// ErrUnknownFormat — расширение файла не .toml, .yaml или .yml.
var ErrUnknownFormat = errors.New("config: unknown file format")

// Load читает профиль из файла поверх Default. Неизвестные ключи — ошибка.
func Load(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("load profile: %w", err)
	}
	p := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = decodeTOML(data, &p)
	case ".yaml", ".yml":
		err = decodeYAML(data, &p)
	default:
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
	if err != nil {
		return Profile{}, fmt.Errorf("load profile %s: %w", path, err)
	}
	return p, nil
}

func decodeTOML(data []byte, p *Profile) error {
	meta, err := toml.Decode(string(data), p)
	if err != nil {
		return err
	}
	if und := meta.Undecoded(); len(und) > 0 {
		keys := make([]string, len(und))
		for i, k := range und {
			keys[i] = k.String()
		}
		return fmt.Errorf("неизвестные ключи: %s", strings.Join(keys, ", "))
	}
	// Явно заданный список алгоритмов заменяет список по умолчанию целиком,
	// пустой список — ошибка, а не «все алгоритмы».
	if meta.IsDefined("bench", "algos") && len(p.Bench.Algos) == 0 {
		return errors.New("bench.algos задан пустым")
	}
	return nil
}

func decodeYAML(data []byte, p *Profile) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(p); err != nil {
		// Пустой файл оставляет значения по умолчанию.
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}

// Validate проверяет параметры серии и конфигурации выбранных алгоритмов.
func (p Profile) Validate() error {
	b := p.Bench
	if b.Runs <= 0 {
		return fmt.Errorf("runs должно быть > 0 (получено %d)", b.Runs)
	}
	if len(b.Sizes) == 0 {
		return errors.New("не задано ни одного размера задачи")
	}
	for _, n := range b.Sizes {
		if n < aco.MinNodes {
			return fmt.Errorf("размер задачи должен быть >= %d (получено %d)", aco.MinNodes, n)
		}
	}
	if b.Side <= 0 {
		return fmt.Errorf("side должно быть > 0 (получено %f)", b.Side)
	}
	if b.PerRunTimeout < 0 {
		return fmt.Errorf("per_run_timeout должно быть >= 0 (получено %s)", b.PerRunTimeout)
	}
	if len(b.Algos) == 0 {
		return errors.New("не выбран ни один алгоритм")
	}

	checks := map[string]struct {
		name string
		err  func() error
	}{
		"GA":  {"генетического алгоритма", p.GA.Validate},
		"SA":  {"алгоритма имитации отжига", p.SA.Validate},
		"TS":  {"табу-поиска", p.TS.Validate},
		"ACO": {"муравьиного алгоритма", p.ACO.Validate},
		"PSO": {"роя частиц", p.PSO.Validate},
	}
	for _, a := range b.Algos {
		c, ok := checks[a]
		if !ok {
			return fmt.Errorf("алгоритм не предоставлен в программе %q; доступные: %v", a, Algorithms)
		}
		if err := c.err(); err != nil {
			return fmt.Errorf("конфликт в конфигурации %s: %w", c.name, err)
		}
	}
	return nil
}
