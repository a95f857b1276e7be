// Package probe — реализации aco.Probe: лог, метрики Prometheus, CSV и
// рассылка нескольким получателям.
package probe

import (
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"tourOpt/internal/aco"
)

// Logging пишет ход прогона в zap-логгер: начало, конец и новые лучшие
// решения на уровне Info, остальное на Debug.
type Logging struct {
	log   *zap.Logger
	now   func() time.Time
	start time.Time
	iter  int
	done  int
}

func NewLogging(log *zap.Logger) *Logging {
	if log == nil {
		log = zap.NewNop()
	}
	return &Logging{log: log, now: time.Now}
}

func (l *Logging) elapsed() zap.Field {
	return zap.Duration("elapsed", l.now().Sub(l.start))
}

func (l *Logging) OnStart() {
	l.start = l.now()
	l.log.Info("прогон начат")
}

func (l *Logging) OnIterationStart(iteration int) {
	l.iter = iteration
}

func (l *Logging) OnIterationEnd(iteration int) {
	l.done++
	l.log.Debug("итерация завершена", zap.Int("iteration", iteration), l.elapsed())
}

func (l *Logging) OnCurrentBest(best *aco.Solution) {
	l.log.Debug("лучшее решение итерации", zap.Int("iteration", l.iter), zap.Float64("cost", best.Cost))
}

func (l *Logging) OnNewBest(best *aco.Solution) {
	l.log.Info("новое лучшее решение",
		zap.Int("iteration", l.iter),
		zap.Float64("cost", best.Cost),
		l.elapsed(),
	)
}

func (l *Logging) OnPheromoneUpdate(_, next mat.Matrix) {
	if ce := l.log.Check(zap.DebugLevel, "феромон обновлён"); ce != nil {
		ce.Write(zap.Int("iteration", l.iter), zap.Float64("pheromone_sum", mat.Sum(next)))
	}
}

func (l *Logging) OnConstructionFailure(iteration, ant int) {
	l.log.Debug("муравей не построил тур", zap.Int("iteration", iteration), zap.Int("ant", ant))
}

func (l *Logging) OnEnd() {
	l.log.Info("прогон завершён", zap.Int("iterations", l.done), l.elapsed())
}
