package metrics

import "github.com/san-kum/collide/internal/sim"

// Standard returns a fresh instance of every metric reported for a run.
func Standard() []sim.Metric {
	return []sim.Metric{
		NewEnergy(),
		NewEnergyDrift(),
		NewMomentumDrift(),
		NewPeakSpeed(),
		NewCollisions(),
		NewEdgeHits(),
	}
}
