package metrics

import (
	"math"

	"github.com/san-kum/collide/internal/arena"
)

// MomentumDrift is the largest change in total momentum magnitude from the
// first observed frame.
type MomentumDrift struct {
	name     string
	px0, py0 float64
	maxDrift float64
	samples  int
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{name: "momentum_drift"}
}

func (m *MomentumDrift) Name() string { return m.name }

func (m *MomentumDrift) Observe(w *arena.World, st arena.Stats, t float64) {
	px, py := w.Momentum()
	if m.samples == 0 {
		m.px0, m.py0 = px, py
	}
	m.samples++
	m.maxDrift = math.Max(m.maxDrift, math.Hypot(px-m.px0, py-m.py0))
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() {
	m.px0, m.py0 = 0, 0
	m.maxDrift = 0
	m.samples = 0
}

// PeakSpeed is the fastest body speed seen.
type PeakSpeed struct {
	name string
	peak float64
}

func NewPeakSpeed() *PeakSpeed {
	return &PeakSpeed{name: "peak_speed"}
}

func (p *PeakSpeed) Name() string { return p.name }

func (p *PeakSpeed) Observe(w *arena.World, st arena.Stats, t float64) {
	for _, b := range w.Bodies {
		p.peak = math.Max(p.peak, math.Hypot(b.Vel.X, b.Vel.Y))
	}
}

func (p *PeakSpeed) Value() float64 { return p.peak }
func (p *PeakSpeed) Reset()         { p.peak = 0 }
