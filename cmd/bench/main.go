package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"tourOpt/internal/aco"
	"tourOpt/internal/bench"
	"tourOpt/internal/config"
	"tourOpt/internal/ga"
	"tourOpt/internal/logger"
	"tourOpt/internal/opt"
	"tourOpt/internal/probe"
	"tourOpt/internal/pso"
	"tourOpt/internal/sa"
	"tourOpt/internal/ts"
)

// Фабрики

func newGAFactory(cfg ga.Config) func(seed int64) (opt.Optimizer, error) {
	return func(seed int64) (opt.Optimizer, error) {
		return ga.New(cfg, rand.New(rand.NewSource(seed)))
	}
}

func newSAFactory(cfg sa.Config) func(seed int64) (opt.Optimizer, error) {
	return func(seed int64) (opt.Optimizer, error) {
		return sa.New(cfg, rand.New(rand.NewSource(seed)))
	}
}

func newTSFactory(cfg ts.Config) func(seed int64) (opt.Optimizer, error) {
	return func(seed int64) (opt.Optimizer, error) {
		return ts.New(cfg, rand.New(rand.NewSource(seed)))
	}
}

// newACOFactory подключает к каждому запуску пробу метрик, если metrics != nil.
func newACOFactory(cfg aco.SolverConfig, metrics *probe.MetricsSet, nodes int) func(seed int64) (opt.Optimizer, error) {
	return func(seed int64) (opt.Optimizer, error) {
		solver, err := aco.NewSolver(cfg, rand.New(rand.NewSource(seed)))
		if err != nil {
			return nil, err
		}
		if metrics != nil {
			solver.Probe = metrics.Probe(probe.RunLabel("ACO-"+strconv.Itoa(nodes), seed))
		}
		return solver, nil
	}
}

func newPSOFactory(cfg pso.Config) func(seed int64) (opt.Optimizer, error) {
	return func(seed int64) (opt.Optimizer, error) {
		return pso.New(cfg, rand.New(rand.NewSource(seed)))
	}
}

func main() {
	log := logger.FromEnv()
	defer func() { _ = log.Sync() }()

	// Файл профиля читается до разбора флагов: его значения становятся
	// значениями флагов по умолчанию, явно заданные флаги их перекрывают.
	p := config.Default()
	if path := configPath(os.Args[1:]); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			log.Fatal("не удалось прочитать профиль", zap.Error(err))
		}
		p = loaded
	}

	var sizes, algos string
	flag.String("config", "", "профиль бенчмарка (.toml, .yaml, .yml)")
	bindFlags(&p, &sizes, &algos)
	flag.Parse()

	var err error
	if p.Bench.Sizes, err = parseSizes(sizes); err != nil {
		log.Fatal("конфликт", zap.Error(err))
	}
	p.Bench.Algos = splitCSV(algos)
	if err := p.Validate(); err != nil {
		log.Fatal("конфликт", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var metrics *probe.MetricsSet
	if p.Bench.MetricsAddr != "" {
		registry := prometheus.NewRegistry()
		if metrics, err = probe.NewMetrics(registry); err != nil {
			log.Fatal("не удалось зарегистрировать метрики", zap.Error(err))
		}
		srv := serveMetrics(p.Bench.MetricsAddr, registry, log)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	runner := bench.Runner{
		Runs:          p.Bench.Runs,
		BaseSeed:      p.Bench.Seed,
		PerRunTimeout: p.Bench.PerRunTimeout,
		Logger:        log,
	}

	var records []bench.Record
	for i, n := range p.Bench.Sizes {
		c := bench.Case{
			Nodes:        n,
			InstanceSeed: bench.CaseSeed(p.Bench.InstanceSeed, i, n),
			Side:         p.Bench.Side,
		}
		available := map[string]bench.Algorithm{
			"GA":  {Name: "GA", Factory: newGAFactory(p.GA)},
			"SA":  {Name: "SA", Factory: newSAFactory(p.SA)},
			"TS":  {Name: "TS", Factory: newTSFactory(p.TS)},
			"ACO": {Name: "ACO", Factory: newACOFactory(p.ACO, metrics, n)},
			"PSO": {Name: "PSO", Factory: newPSOFactory(p.PSO)},
		}

		for _, name := range p.Bench.Algos {
			a := available[name]
			fmt.Printf("Запущен алгоритм %s; %d вершин (общее кол-во запусков=%d)...\n", a.Name, c.Nodes, runner.Runs)

			rec, err := runner.RunCase(ctx, c, a)
			if err != nil {
				log.Fatal("ошибка запуска", zap.String("algo", a.Name), zap.Int("nodes", n), zap.Error(err))
			}
			records = append(records, rec)

			fmt.Printf("  Длина тура: лучшая=%.2f средняя=%.2f стандартное отклонение=%.2f | Время: среднее=%.2fms среднее отклонение=%.2fms\n",
				rec.CostBest, rec.CostMean, rec.CostStd,
				rec.TimeMeanMs, rec.TimeStdMs,
			)
		}
	}

	if err := bench.WriteCSV(p.Bench.Out, records); err != nil {
		log.Fatal("ошибка при записи в CSV", zap.String("path", p.Bench.Out), zap.Error(err))
	}
	fmt.Println("Saved:", p.Bench.Out)
}

// bindFlags регистрирует флаги с текущими значениями профиля по умолчанию.
func bindFlags(p *config.Profile, sizes, algos *string) {
	b := &p.Bench
	flag.StringVar(&b.Out, "out", b.Out, "путь к выходному CSV-файлу")
	flag.StringVar(sizes, "sizes", joinInts(b.Sizes), "размеры задачи: количество вершин (через запятую)")
	flag.StringVar(algos, "algos", strings.Join(b.Algos, ","), "список алгоритмов: GA, SA, TS, ACO, PSO (через запятую)")
	flag.IntVar(&b.Runs, "runs", b.Runs, "количество запусков каждого алгоритма (с разными сидами)")
	flag.Int64Var(&b.Seed, "seed", b.Seed, "базовый сид для запусков алгоритмов")
	flag.Int64Var(&b.InstanceSeed, "instance_seed", b.InstanceSeed, "базовый сид для генерации экземпляров задачи (фиксирован для конфигурации)")
	flag.Float64Var(&b.Side, "side", b.Side, "сторона квадрата, в котором генерируются вершины")
	flag.DurationVar(&b.PerRunTimeout, "per_run_timeout", b.PerRunTimeout, "таймаут одного запуска; 0 — без ограничения")
	flag.StringVar(&b.MetricsAddr, "metrics_addr", b.MetricsAddr, "адрес HTTP-сервера /metrics (пусто — выключен)")

	// --- Генетический алгоритм ---
	g := &p.GA
	flag.IntVar(&g.Population, "ga_pop", g.Population, "размер популяции")
	flag.IntVar(&g.Generations, "ga_gen", g.Generations, "количество поколений")
	flag.IntVar(&g.Elite, "ga_elite", g.Elite, "размер элиты (количество лучших особей)")
	flag.IntVar(&g.TournamentSize, "ga_tour", g.TournamentSize, "размер турнирной выборки")
	flag.Float64Var(&g.CrossoverRate, "ga_cx", g.CrossoverRate, "вероятность применения кроссовера")
	flag.Float64Var(&g.MutationRate, "ga_mut", g.MutationRate, "вероятность мутации")
	textVar(&g.Mutation, "ga_mutation", "тип мутации: swap | reverse")
	textVar(&g.Selection, "ga_selection", "селекция: tournament | roulette | random | rank | rank-r | sus | boltzmann")
	flag.Float64Var(&g.RankR, "ga_rank_r", g.RankR, "вероятность победы лучшей особи (rank-r)")
	flag.Float64Var(&g.BoltzmannAlpha, "ga_boltzmann_alpha", g.BoltzmannAlpha, "скорость охлаждения (boltzmann)")
	flag.Float64Var(&g.BoltzmannTemp0, "ga_boltzmann_t0", g.BoltzmannTemp0, "начальная температура (boltzmann)")

	// --- Алгоритм имитации отжига ---
	s := &p.SA
	flag.IntVar(&s.IterationsPerNode, "sa_iter_per_node", s.IterationsPerNode, "количество итераций на одну вершину (используется, если sa_iter == 0)")
	flag.IntVar(&s.Iterations, "sa_iter", s.Iterations, "общее количество итераций (0 => sa_iter_per_node × n)")
	flag.Float64Var(&s.InitialTemp, "sa_t0", s.InitialTemp, "начальная температура")
	flag.Float64Var(&s.FinalTemp, "sa_tmin", s.FinalTemp, "конечная температура")
	flag.Float64Var(&s.Alpha, "sa_alpha", s.Alpha, "коэффициент охлаждения (alpha)")
	textVar(&s.Neighborhood, "sa_neigh", "тип окрестности: swap | insert | 2opt")

	// --- Табу-поиск ---
	t := &p.TS
	flag.IntVar(&t.IterationsPerNode, "ts_iter_per_node", t.IterationsPerNode, "количество итераций на одну вершину (используется, если ts_iter == 0)")
	flag.IntVar(&t.Iterations, "ts_iter", t.Iterations, "общее количество итераций (0 => ts_iter_per_node × n)")
	flag.IntVar(&t.TabuTenure, "ts_tenure", t.TabuTenure, "длина табу-списка (в итерациях)")
	flag.IntVar(&t.TabuTenureRand, "ts_tenure_rand", t.TabuTenureRand, "случайное добавление к сроку табу [0..rand]")
	flag.IntVar(&t.NeighborsPerIter, "ts_neighbors", t.NeighborsPerIter, "количество рассматриваемых соседей на итерацию")
	textVar(&t.Neighborhood, "ts_neigh", "тип окрестности: insert | swap | 2opt")

	// --- Муравьиный алгоритм ---
	a := &p.ACO
	flag.IntVar(&a.IterationsPerNode, "aco_iter_per_node", a.IterationsPerNode, "количество итераций на одну вершину (используется, если aco_iter == 0)")
	flag.IntVar(&a.Iterations, "aco_iter", a.Iterations, "общее количество итераций (0 => aco_iter_per_node × n)")
	flag.IntVar(&a.Ants, "aco_ants", a.Ants, "количество муравьёв")
	flag.Float64Var(&a.Alpha, "aco_alpha", a.Alpha, "коэффициент alpha (влияние феромонов)")
	flag.Float64Var(&a.Beta, "aco_beta", a.Beta, "коэффициент beta (влияние эвристики)")
	flag.Float64Var(&a.Rho, "aco_rho", a.Rho, "коэффициент rho (испарения феромонов)")
	flag.Float64Var(&a.Q, "aco_q", a.Q, "константа отложения феромонов")
	flag.Float64Var(&a.Tau0, "aco_tau0", a.Tau0, "начальный уровень феромонов")
	textVar(&a.Update, "aco_update", "правило обновления феромона: as | elitist | iteration-best")
	flag.Float64Var(&a.Elite, "aco_elite", a.Elite, "вес элитного муравья (elitist)")
	flag.IntVar(&a.Workers, "aco_workers", a.Workers, "число параллельно строящих туры муравьёв (0 — GOMAXPROCS)")

	// --- Рой частиц ---
	ps := &p.PSO
	flag.IntVar(&ps.IterationsPerNode, "pso_iter_per_node", ps.IterationsPerNode, "количество итераций на одну вершину (используется, если pso_iter == 0)")
	flag.IntVar(&ps.Iterations, "pso_iter", ps.Iterations, "общее количество итераций (0 => pso_iter_per_node × n)")
	flag.IntVar(&ps.Particles, "pso_particles", ps.Particles, "количество частиц")
	flag.Float64Var(&ps.W, "pso_w", ps.W, "коэффициент W (инерция)")
	flag.Float64Var(&ps.C1, "pso_c1", ps.C1, "коэффициент C1 (когнитивный)")
	flag.Float64Var(&ps.C2, "pso_c2", ps.C2, "коэффициент C2 (социальный)")
	flag.Float64Var(&ps.VMax, "pso_vmax", ps.VMax, "ограничение скорости частицы (<=0 — без ограничения)")
	flag.Float64Var(&ps.PosMin, "pso_pos_min", ps.PosMin, "минимальное значение позиции частицы")
	flag.Float64Var(&ps.PosMax, "pso_pos_max", ps.PosMax, "максимальное значение позиции частицы")
}

// textVar — флаг для строковых перечислений конфигурации.
func textVar[T ~string](v *T, name, usage string) {
	flag.Func(name, fmt.Sprintf("%s (по умолчанию %q)", usage, string(*v)), func(s string) error {
		*v = T(strings.TrimSpace(s))
		return nil
	})
}

func serveMetrics(addr string, registry *prometheus.Registry, log *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("сервер метрик остановлен", zap.String("addr", addr), zap.Error(err))
		}
	}()
	log.Info("метрики доступны", zap.String("addr", addr), zap.String("path", "/metrics"))
	return srv
}

// helpers

// configPath находит значение -config до разбора остальных флагов.
func configPath(args []string) string {
	for i, a := range args {
		if a == "--" {
			break
		}
		name, value, hasValue := strings.Cut(strings.TrimLeft(a, "-"), "=")
		if !strings.HasPrefix(a, "-") || name != "config" {
			continue
		}
		if hasValue {
			return value
		}
		if i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func parseSizes(s string) ([]int, error) {
	parts := splitCSV(s)
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("размер %q: ошибка парсинга количества вершин: %w", p, err)
		}
		out = append(out, n)
	}
	return out, nil
}

func joinInts(vs []int) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
