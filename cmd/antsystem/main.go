// Команда antsystem — один прогон муравьиного алгоритма на случайном
// евклидовом экземпляре с подробной трассировкой.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"tourOpt/internal/aco"
	"tourOpt/internal/config"
	"tourOpt/internal/logger"
	"tourOpt/internal/probe"
	"tourOpt/internal/tsp"
)

func main() {
	log := logger.FromEnv()
	defer func() { _ = log.Sync() }()

	var (
		profile      = flag.String("config", "", "профиль (.toml, .yaml, .yml); используется секция aco")
		nodes        = flag.Int("n", 30, "количество вершин")
		side         = flag.Float64("side", 1000, "сторона квадрата, в котором генерируются вершины")
		seed         = flag.Int64("seed", 1, "сид алгоритма")
		instanceSeed = flag.Int64("instance_seed", 777, "сид генерации экземпляра")
		iterations   = flag.Int("iterations", 0, "количество итераций (0 — из профиля)")
		ants         = flag.Int("ants", 0, "количество муравьёв (0 — из профиля)")
		update       = flag.String("update", "", "правило обновления феромона: as | elitist | iteration-best")
		workers      = flag.Int("workers", -1, "параллельность построения туров (-1 — из профиля)")
		trace        = flag.String("trace", "", "CSV-трасса прогона; \"-\" — stdout")
		metricsAddr  = flag.String("metrics_addr", "", "адрес HTTP-сервера /metrics")
		hold         = flag.Duration("hold", 0, "сколько держать сервер метрик после прогона")
	)
	flag.Parse()

	cfg := aco.DefaultSolverConfig()
	if *profile != "" {
		p, err := config.Load(*profile)
		if err != nil {
			log.Fatal("не удалось прочитать профиль", zap.Error(err))
		}
		cfg = p.ACO
	}
	if *iterations > 0 {
		cfg.Iterations = *iterations
	}
	if *ants > 0 {
		cfg.Ants = *ants
	}
	if *update != "" {
		cfg.Update = aco.UpdateRule(*update)
	}
	if *workers >= 0 {
		cfg.Workers = *workers
	}
	if *nodes < aco.MinNodes {
		log.Fatal("слишком мало вершин", zap.Int("n", *nodes), zap.Int("min", aco.MinNodes))
	}

	solver, err := aco.NewSolver(cfg, rand.New(rand.NewSource(*seed)))
	if err != nil {
		log.Fatal("конфликт в конфигурации муравьиного алгоритма", zap.Error(err))
	}
	solver.Logger = log

	probes := []aco.Probe{probe.NewLogging(log)}

	var csvProbe *probe.CSV
	if *trace != "" {
		var w io.Writer = os.Stdout
		if *trace != "-" {
			f, err := os.Create(*trace)
			if err != nil {
				log.Fatal("не удалось создать файл трассы", zap.String("path", *trace), zap.Error(err))
			}
			defer f.Close()
			w = f
		}
		csvProbe = probe.NewCSV(w)
		probes = append(probes, csvProbe)
	}

	var srv *http.Server
	if *metricsAddr != "" {
		registry := prometheus.NewRegistry()
		metrics, err := probe.NewMetrics(registry)
		if err != nil {
			log.Fatal("не удалось зарегистрировать метрики", zap.Error(err))
		}
		probes = append(probes, metrics.Probe(probe.RunLabel("ACO", *seed)))

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		srv = &http.Server{Addr: *metricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("сервер метрик остановлен", zap.Error(err))
			}
		}()
	}
	solver.Probe = probe.Join(probes...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	inst := tsp.RandomEuclidean(*nodes, *side, rand.New(rand.NewSource(*instanceSeed)))
	res, err := solver.Solve(ctx, inst)
	if err != nil && res.Tour == nil {
		log.Fatal("прогон не дал решения", zap.Error(err))
	}
	if err != nil {
		log.Warn("прогон прерван", zap.Error(err))
	}
	if csvProbe != nil && csvProbe.Err() != nil {
		log.Error("ошибка записи трассы", zap.Error(csvProbe.Err()))
	}

	fmt.Printf("Длина тура: %.4f (итераций=%d, туров=%d, время=%s)\n", res.Cost, res.Iterations, res.Evaluations, res.Duration)
	fmt.Println("Тур:", joinTour(res.Tour))

	if srv != nil {
		if *hold > 0 {
			select {
			case <-time.After(*hold):
			case <-ctx.Done():
			}
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}
}

func joinTour(tour []int) string {
	parts := make([]string, len(tour))
	for i, v := range tour {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, " ")
}
