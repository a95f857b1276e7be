package probe

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"gonum.org/v1/gonum/mat"

	"tourOpt/internal/aco"
)

// MetricsSet — коллекторы метрик муравьиного алгоритма. Регистрируются один
// раз; каждый прогон получает свою пробу через Probe с меткой run.
type MetricsSet struct {
	iterations    *prometheus.CounterVec
	newBest       *prometheus.CounterVec
	failures      *prometheus.CounterVec
	bestCost      *prometheus.GaugeVec
	iterBestCost  *prometheus.GaugeVec
	pheromoneSum  *prometheus.GaugeVec
	iterationTime *prometheus.HistogramVec
}

// NewMetrics создаёт коллекторы и регистрирует их в registry.
func NewMetrics(registry prometheus.Registerer) (*MetricsSet, error) {
	labels := []string{"run"}
	m := &MetricsSet{
		iterations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aco_iterations_total",
				Help: "Total number of completed Ant System iterations",
			},
			labels,
		),
		newBest: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aco_new_best_total",
				Help: "Total number of global best improvements",
			},
			labels,
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aco_construction_failures_total",
				Help: "Total number of ants that could not close a tour",
			},
			labels,
		),
		bestCost: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "aco_best_cost",
				Help: "Cost of the global best tour",
			},
			labels,
		),
		iterBestCost: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "aco_iteration_best_cost",
				Help: "Cost of the best tour of the last iteration",
			},
			labels,
		),
		pheromoneSum: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "aco_pheromone_sum",
				Help: "Sum of all pheromone matrix entries after the last update",
			},
			labels,
		),
		iterationTime: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "aco_iteration_duration_seconds",
				Help:    "Wall time of one Ant System iteration",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			labels,
		),
	}

	for _, c := range []prometheus.Collector{
		m.iterations, m.newBest, m.failures,
		m.bestCost, m.iterBestCost, m.pheromoneSum, m.iterationTime,
	} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Probe возвращает пробу, пишущую метрики с меткой run.
func (m *MetricsSet) Probe(run string) *Metrics {
	l := prometheus.Labels{"run": run}
	return &Metrics{
		now:           time.Now,
		iterations:    m.iterations.With(l),
		newBest:       m.newBest.With(l),
		failures:      m.failures.With(l),
		bestCost:      m.bestCost.With(l),
		iterBestCost:  m.iterBestCost.With(l),
		pheromoneSum:  m.pheromoneSum.With(l),
		iterationTime: m.iterationTime.With(l),
	}
}

// RunLabel — метка прогона для бенчмарка: алгоритм и сид.
func RunLabel(algo string, seed int64) string {
	return algo + "/" + strconv.FormatInt(seed, 10)
}

// Metrics — aco.Probe поверх коллекторов MetricsSet.
type Metrics struct {
	now       func() time.Time
	iterStart time.Time

	iterations    prometheus.Counter
	newBest       prometheus.Counter
	failures      prometheus.Counter
	bestCost      prometheus.Gauge
	iterBestCost  prometheus.Gauge
	pheromoneSum  prometheus.Gauge
	iterationTime prometheus.Observer
}

func (m *Metrics) OnStart() {}

func (m *Metrics) OnIterationStart(int) {
	m.iterStart = m.now()
}

func (m *Metrics) OnIterationEnd(int) {
	m.iterations.Inc()
	m.iterationTime.Observe(m.now().Sub(m.iterStart).Seconds())
}

func (m *Metrics) OnCurrentBest(best *aco.Solution) {
	m.iterBestCost.Set(best.Cost)
}

func (m *Metrics) OnNewBest(best *aco.Solution) {
	m.newBest.Inc()
	m.bestCost.Set(best.Cost)
}

func (m *Metrics) OnPheromoneUpdate(_, next mat.Matrix) {
	m.pheromoneSum.Set(mat.Sum(next))
}

func (m *Metrics) OnConstructionFailure(_, _ int) {
	m.failures.Inc()
}

func (m *Metrics) OnEnd() {}
