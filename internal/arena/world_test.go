package arena

import (
	"errors"
	"math"
	"testing"
)

func lineConfig() Config {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 1000, 1000
	return cfg
}

func TestConfig_Validate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -1 }},
		{"zero dt", func(c *Config) { c.Dt = 0 }},
		{"zero max speed", func(c *Config) { c.MaxSpeed = 0 }},
		{"negative g", func(c *Config) { c.G = -1 }},
		{"negative theta", func(c *Config) { c.Theta = -0.5 }},
		{"bad strategy", func(c *Config) { c.Strategy = Strategy(9) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestWorld_Add(t *testing.T) {
	w := NewWorld()
	if err := w.Add(NewBody(1, 1, 1, 0, 0, 1)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := w.Add(NewBody(1, 1, -1, 0, 0, 1)); !errors.Is(err, ErrInvalidBody) {
		t.Errorf("expected ErrInvalidBody, got %v", err)
	}
	if len(w.Bodies) != 1 {
		t.Errorf("expected 1 body, got %d", len(w.Bodies))
	}
}

func TestWorld_StepCountsFrames(t *testing.T) {
	w := NewWorld(NewBody(100, 100, 5, 1, 0, 1))
	cfg := lineConfig()
	for i := 1; i <= 5; i++ {
		st := w.Step(cfg)
		if st.Frame != i || w.Frame != i {
			t.Fatalf("expected frame %d, got stats %d world %d", i, st.Frame, w.Frame)
		}
	}
	w.Reset(nil)
	if w.Frame != 0 || len(w.Bodies) != 0 {
		t.Error("reset should clear bodies and frame counter")
	}
}

func TestWorld_StepResolvesEdgesAfterIntegration(t *testing.T) {
	w := NewWorld(NewBody(985, 500, 10, 0, 0, 1).WithVelocity(100, 0))
	st := w.Step(lineConfig())

	// x = 995 after integration, then clamped to 990 with vx flipped
	b := w.Bodies[0]
	if st.EdgeHits != 1 || b.Pos.X != 990 || b.Vel.X != -100 {
		t.Errorf("expected edge bounce, got hits=%d pos=%v v=%v", st.EdgeHits, b.Pos, b.Vel)
	}
}

func TestWorld_StaleVersusRedetect(t *testing.T) {
	mk := func() *World {
		return NewWorld(
			NewBody(100, 500, 10, 0, 0, 1),
			NewBody(115, 500, 10, 0, 0, 1),
			NewBody(134, 500, 10, 0, 0, 1),
		)
	}

	stale := mk()
	st := stale.Step(lineConfig())
	if st.Collisions != 2 || st.Resolved != 2 {
		t.Fatalf("expected 2 detected and resolved pairs, got %+v", st)
	}
	// second pair resolved with the pre-resolution distance 19
	if d := stale.Bodies[2].Pos.X - stale.Bodies[1].Pos.X; math.Abs(d-17.5) > tol {
		t.Errorf("stale: expected B-C distance 17.5, got %v", d)
	}

	fresh := mk()
	cfg := lineConfig()
	cfg.Redetect = true
	fresh.Step(cfg)
	if d := fresh.Bodies[2].Pos.X - fresh.Bodies[1].Pos.X; math.Abs(d-20) > tol {
		t.Errorf("redetect: expected B-C distance 20, got %v", d)
	}
}

func TestWorld_CoincidentPairSkipped(t *testing.T) {
	w := NewWorld(NewBody(50, 50, 5, 0, 0, 1), NewBody(50, 50, 5, 0, 0, 1))
	st := w.Step(lineConfig())
	if st.Collisions != 1 || st.Skipped != 1 || st.Resolved != 0 {
		t.Errorf("expected one skipped pair, got %+v", st)
	}
	if !w.IsValid() {
		t.Error("world should stay finite")
	}
}

func TestWorld_GravityModeIgnoresClamp(t *testing.T) {
	w := NewWorld(NewBody(400, 500, 1, 0, 0, 1e6), NewBody(410, 500, 1, 0, 0, 1e6))
	cfg := lineConfig()
	cfg.Gravity = true
	w.Step(cfg)
	if math.Abs(w.Bodies[0].Vel.X) <= cfg.MaxSpeed {
		t.Errorf("expected unclamped velocity, got %v", w.Bodies[0].Vel)
	}
}

func TestWorld_Clone(t *testing.T) {
	w := NewWorld(NewBody(1, 2, 3, 0, 0, 4))
	c := w.Clone()
	c.Bodies[0].Pos.X = 99
	if w.Bodies[0].Pos.X != 1 {
		t.Error("clone shares bodies with original")
	}
}

func TestWorld_Totals(t *testing.T) {
	w := NewWorld(
		NewBody(0, 0, 1, 0, 0, 2).WithVelocity(3, 0),
		NewBody(0, 0, 1, 0, 0, 1).WithVelocity(0, -4),
	)
	if ke := w.Kinetic(); ke != 17 {
		t.Errorf("expected kinetic energy 17, got %v", ke)
	}
	px, py := w.Momentum()
	if px != 6 || py != -4 {
		t.Errorf("expected momentum (6, -4), got (%v, %v)", px, py)
	}
}
