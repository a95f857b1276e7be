package aco

import "gonum.org/v1/gonum/mat"

// Probe получает уведомления о ходе прогона. Вызовы синхронные и идут из
// горутины движка. Переданные решения и матрицы только для чтения.
type Probe interface {
	OnStart()
	OnIterationStart(iteration int)
	OnIterationEnd(iteration int)
	// OnCurrentBest вызывается каждую итерацию с лучшим решением итерации.
	OnCurrentBest(best *Solution)
	// OnNewBest вызывается только при улучшении глобально лучшего решения.
	OnNewBest(best *Solution)
	OnPheromoneUpdate(old, new mat.Matrix)
	// OnConstructionFailure — муравей не смог замкнуть тур. Прогон продолжается.
	OnConstructionFailure(iteration, ant int)
	OnEnd()
}

// NopProbe игнорирует все уведомления.
type NopProbe struct{}

func (NopProbe) OnStart()                          {}
func (NopProbe) OnIterationStart(int)              {}
func (NopProbe) OnIterationEnd(int)                {}
func (NopProbe) OnCurrentBest(*Solution)           {}
func (NopProbe) OnNewBest(*Solution)               {}
func (NopProbe) OnPheromoneUpdate(_, _ mat.Matrix) {}
func (NopProbe) OnConstructionFailure(_, _ int)    {}
func (NopProbe) OnEnd()                            {}
