package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourOpt/internal/aco"
	"tourOpt/internal/ga"
	"tourOpt/internal/sa"
)

func write(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoad_TOMLOverlay(t *testing.T) {
	path := write(t, "bench.toml", `
[bench]
sizes = [10, 25]
algos = ["ACO", "GA"]
runs = 5
per_run_timeout = "2s"

[aco]
ants = 12
update = "elitist"
elite = 3.5

[ga]
selection = "boltzmann"
`)
	p, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, p.Validate())

	assert.Equal(t, []int{10, 25}, p.Bench.Sizes)
	assert.Equal(t, []string{"ACO", "GA"}, p.Bench.Algos)
	assert.Equal(t, 5, p.Bench.Runs)
	assert.Equal(t, 2*time.Second, p.Bench.PerRunTimeout)

	assert.Equal(t, 12, p.ACO.Ants)
	assert.Equal(t, aco.UpdateElitist, p.ACO.Update)
	assert.Equal(t, 3.5, p.ACO.Elite)
	// Незаданные ключи остаются по умолчанию
	assert.Equal(t, aco.DefaultSolverConfig().Beta, p.ACO.Beta)
	assert.Equal(t, Default().Bench.Seed, p.Bench.Seed)

	assert.Equal(t, ga.SelectionBoltzmann, p.GA.Selection)
	assert.Equal(t, ga.DefaultConfig().Population, p.GA.Population)
}

func TestLoad_YAMLOverlay(t *testing.T) {
	path := write(t, "bench.yaml", `
bench:
  runs: 3
  metrics_addr: ":9090"
sa:
  neighborhood: insert
  iterations: 500
`)
	p, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, p.Validate())

	assert.Equal(t, 3, p.Bench.Runs)
	assert.Equal(t, ":9090", p.Bench.MetricsAddr)
	assert.Equal(t, sa.NeighborhoodInsert, p.SA.Neighborhood)
	assert.Equal(t, 500, p.SA.Iterations)
	assert.Equal(t, sa.DefaultConfig().Alpha, p.SA.Alpha)
	assert.Equal(t, Default().Bench.Sizes, p.Bench.Sizes)
}

func TestLoad_EmptyYAMLKeepsDefaults(t *testing.T) {
	p, err := Load(write(t, "empty.yml", ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), p)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(write(t, "bench.json", "{}"))
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(write(t, "typo.toml", "[aco]\nantz = 3\n"))
	assert.ErrorContains(t, err, "aco.antz")

	_, err = Load(write(t, "typo.yaml", "aco:\n  antz: 3\n"))
	assert.Error(t, err)

	_, err = Load(write(t, "empty-algos.toml", "[bench]\nalgos = []\n"))
	assert.Error(t, err)

	_, err = Load(write(t, "broken.toml", "[bench\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	for name, mutate := range map[string]func(p *Profile){
		"runs":      func(p *Profile) { p.Bench.Runs = 0 },
		"sizes":     func(p *Profile) { p.Bench.Sizes = nil },
		"tiny size": func(p *Profile) { p.Bench.Sizes = []int{2} },
		"side":      func(p *Profile) { p.Bench.Side = 0 },
		"timeout":   func(p *Profile) { p.Bench.PerRunTimeout = -time.Second },
		"no algos":  func(p *Profile) { p.Bench.Algos = nil },
		"unknown":   func(p *Profile) { p.Bench.Algos = []string{"LNS"} },
		"aco":       func(p *Profile) { p.ACO.Rho = 2 },
	} {
		t.Run(name, func(t *testing.T) {
			p := Default()
			mutate(&p)
			assert.Error(t, p.Validate())
		})
	}

	// Конфигурация невыбранного алгоритма не проверяется.
	p := Default()
	p.Bench.Algos = []string{"SA"}
	p.ACO.Rho = 2
	assert.NoError(t, p.Validate())
}
