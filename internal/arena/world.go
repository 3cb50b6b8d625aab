package arena

import (
	"fmt"
	"math"
)

const (
	DefaultDt       = 0.1
	DefaultMaxSpeed = 150.0
	DefaultG        = 1000.0
	DefaultWidth    = 800.0
	DefaultHeight   = 600.0
)

// Config carries everything a frame needs besides the bodies themselves.
type Config struct {
	Width, Height float64
	Dt            float64
	MaxSpeed      float64
	G             float64
	Gravity       bool
	Strategy      Strategy
	Edge          EdgeMode
	SingleWall    bool    // correct only the first crossed wall per body per frame
	Redetect      bool    // recheck each pair's geometry right before resolving it
	Theta         float64 // > 0 selects the Barnes-Hut gravity approximation
}

func DefaultConfig() Config {
	return Config{
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		Dt:       DefaultDt,
		MaxSpeed: DefaultMaxSpeed,
		G:        DefaultG,
		Strategy: Push,
		Edge:     EdgeClamp,
	}
}

func (c Config) Validate() error {
	if !(c.Width > 0) || !(c.Height > 0) {
		return fmt.Errorf("%w: arena %vx%v", ErrInvalidConfig, c.Width, c.Height)
	}
	if !(c.Dt > 0) {
		return fmt.Errorf("%w: dt must be positive, got %v", ErrInvalidConfig, c.Dt)
	}
	if !(c.MaxSpeed > 0) {
		return fmt.Errorf("%w: max speed must be positive, got %v", ErrInvalidConfig, c.MaxSpeed)
	}
	if c.G < 0 || math.IsNaN(c.G) {
		return fmt.Errorf("%w: g must be non-negative, got %v", ErrInvalidConfig, c.G)
	}
	if c.Theta < 0 {
		return fmt.Errorf("%w: theta must be non-negative, got %v", ErrInvalidConfig, c.Theta)
	}
	if c.Strategy != Push && c.Strategy != Bounce {
		return fmt.Errorf("%w: %d", ErrUnknownStrategy, int(c.Strategy))
	}
	return nil
}

// Stats summarises one frame.
type Stats struct {
	Frame      int
	Collisions int // pairs detected
	Resolved   int
	Skipped    int // coincident pairs, or pairs no longer overlapping under Redetect
	EdgeHits   int
}

// World owns the ordered body collection.
type World struct {
	Bodies []*Body
	Frame  int
}

func NewWorld(bodies ...*Body) *World {
	return &World{Bodies: bodies}
}

// Add validates b and appends it.
func (w *World) Add(b *Body) error {
	if err := b.Validate(); err != nil {
		return err
	}
	w.Bodies = append(w.Bodies, b)
	return nil
}

// Reset replaces the whole collection.
func (w *World) Reset(bodies []*Body) {
	w.Bodies = bodies
	w.Frame = 0
}

// Clone deep-copies the world.
func (w *World) Clone() *World {
	c := &World{Bodies: make([]*Body, len(w.Bodies)), Frame: w.Frame}
	for i, b := range w.Bodies {
		cp := *b
		c.Bodies[i] = &cp
	}
	return c
}

// Step runs one frame: integrate, resolve edges, detect, resolve.
func (w *World) Step(cfg Config) Stats {
	switch {
	case cfg.Gravity && cfg.Theta > 0:
		ApplyGravityApprox(w.Bodies, cfg.Dt, cfg.G, cfg.Theta)
	case cfg.Gravity:
		ApplyGravity(w.Bodies, cfg.Dt, cfg.G)
	default:
		for _, b := range w.Bodies {
			Integrate(b, cfg.Dt, cfg.MaxSpeed)
		}
	}

	w.Frame++
	st := Stats{Frame: w.Frame}
	for _, b := range w.Bodies {
		st.EdgeHits += ResolveEdges(b, cfg.Width, cfg.Height, cfg.Edge, cfg.SingleWall)
	}

	collisions := Detect(w.Bodies)
	st.Collisions = len(collisions)
	for _, c := range collisions {
		if cfg.Redetect {
			var ok bool
			if c, ok = Check(c.A, c.B); !ok {
				st.Skipped++
				continue
			}
		}
		if err := Resolve(c, cfg.Strategy); err != nil {
			st.Skipped++
			continue
		}
		st.Resolved++
	}
	return st
}

// Kinetic returns the total kinetic energy.
func (w *World) Kinetic() float64 {
	e := 0.0
	for _, b := range w.Bodies {
		e += b.Kinetic()
	}
	return e
}

// Momentum returns the total linear momentum.
func (w *World) Momentum() (px, py float64) {
	for _, b := range w.Bodies {
		p := b.Momentum()
		px += p.X
		py += p.Y
	}
	return
}

// IsValid reports whether every body is finite.
func (w *World) IsValid() bool {
	for _, b := range w.Bodies {
		if !b.IsFinite() {
			return false
		}
	}
	return true
}
