package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/collide/internal/arena"
)

// Simulator steps a world headlessly for a fixed number of frames.
type Simulator struct {
	world     *arena.World
	metrics   []Metric
	observers []Observer
}

func New(w *arena.World) *Simulator {
	return &Simulator{
		world:     w,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) World() *arena.World { return s.world }

func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	every := cfg.SampleEvery
	if every < 1 {
		every = 1
	}
	result := &Result{
		Frames:  make([]FrameRecord, 0, cfg.Frames/every+1),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	w := s.world
	dt := cfg.Arena.Dt
	t := float64(w.Frame) * dt
	result.Frames = append(result.Frames, record(w, arena.Stats{Frame: w.Frame}, t))

	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			result.Final = snapshot(w)
			return result, ctx.Err()
		default:
		}

		st := w.Step(cfg.Arena)
		t += dt
		result.StepsTaken++

		if cfg.ValidateState && !w.IsValid() {
			err := SimError{Time: t, Step: i, Message: "invalid state (NaN/Inf)"}
			result.Errors = append(result.Errors, err)
			break
		}

		for _, m := range s.metrics {
			m.Observe(w, st, t)
		}
		for _, obs := range s.observers {
			obs.OnFrame(w, st, t)
		}

		if (i+1)%every == 0 {
			result.Frames = append(result.Frames, record(w, st, t))
		}
	}

	result.Final = snapshot(w)
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if err := cfg.Arena.Validate(); err != nil {
		return err
	}
	if cfg.Frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", cfg.Frames)
	}
	if s.world == nil {
		return fmt.Errorf("simulator has no world")
	}
	return nil
}

func record(w *arena.World, st arena.Stats, t float64) FrameRecord {
	px, py := w.Momentum()
	return FrameRecord{
		Frame:      w.Frame,
		Time:       t,
		Kinetic:    w.Kinetic(),
		Px:         px,
		Py:         py,
		Collisions: st.Resolved,
		EdgeHits:   st.EdgeHits,
		Bodies:     len(w.Bodies),
	}
}

func snapshot(w *arena.World) []arena.Body {
	out := make([]arena.Body, len(w.Bodies))
	for i, b := range w.Bodies {
		out[i] = *b
	}
	return out
}
