package probe

import (
	"gonum.org/v1/gonum/mat"

	"tourOpt/internal/aco"
)

// Multi рассылает каждое уведомление всем пробам по порядку.
type Multi []aco.Probe

// Join собирает пробы в Multi, пропуская nil.
func Join(probes ...aco.Probe) Multi {
	out := make(Multi, 0, len(probes))
	for _, p := range probes {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

func (m Multi) OnStart() {
	for _, p := range m {
		p.OnStart()
	}
}

func (m Multi) OnIterationStart(iteration int) {
	for _, p := range m {
		p.OnIterationStart(iteration)
	}
}

func (m Multi) OnIterationEnd(iteration int) {
	for _, p := range m {
		p.OnIterationEnd(iteration)
	}
}

func (m Multi) OnCurrentBest(best *aco.Solution) {
	for _, p := range m {
		p.OnCurrentBest(best)
	}
}

func (m Multi) OnNewBest(best *aco.Solution) {
	for _, p := range m {
		p.OnNewBest(best)
	}
}

func (m Multi) OnPheromoneUpdate(old, next mat.Matrix) {
	for _, p := range m {
		p.OnPheromoneUpdate(old, next)
	}
}

func (m Multi) OnConstructionFailure(iteration, ant int) {
	for _, p := range m {
		p.OnConstructionFailure(iteration, ant)
	}
}

func (m Multi) OnEnd() {
	for _, p := range m {
		p.OnEnd()
	}
}
