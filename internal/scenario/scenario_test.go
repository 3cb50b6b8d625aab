package scenario

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/san-kum/collide/internal/arena"
)

func TestPushPreset(t *testing.T) {
	tests := []struct {
		height float64
		cols   int
	}{
		{600, 15},
		{800, 20},
		{900, 23},
	}

	for _, tt := range tests {
		w := arena.NewWorld()
		cfg := arena.DefaultConfig()
		cfg.Height = tt.height
		cfg.Gravity = true
		cfg.Strategy = arena.Bounce

		cfg, err := Load(w, "push", cfg, rand.New(rand.NewSource(1)))
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if got := PushColumns(tt.height); got != tt.cols {
			t.Errorf("height %v: expected %d columns, got %d", tt.height, tt.cols, got)
		}
		if want := pushRows*tt.cols + 1; len(w.Bodies) != want {
			t.Errorf("height %v: expected %d bodies, got %d", tt.height, want, len(w.Bodies))
		}
		if cfg.Gravity || cfg.Strategy != arena.Push {
			t.Errorf("expected push with gravity off, got %v gravity=%v", cfg.Strategy, cfg.Gravity)
		}

		mover := w.Bodies[len(w.Bodies)-1]
		if mover.R != 20 || mover.Acc.X != 1 {
			t.Errorf("expected fast mover last, got %+v", mover)
		}
	}
}

func TestGravityPreset(t *testing.T) {
	w := arena.NewWorld()
	cfg, err := Load(w, "gravity", arena.DefaultConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(w.Bodies) != 11 {
		t.Errorf("expected 11 bodies, got %d", len(w.Bodies))
	}
	if !cfg.Gravity || cfg.Strategy != arena.Push {
		t.Error("expected gravity on with push strategy")
	}
	if w.Bodies[0].M != 500 || w.Bodies[0].R != 45 {
		t.Errorf("expected heavy central body first, got %+v", w.Bodies[0])
	}
}

func TestBouncePreset(t *testing.T) {
	w := arena.NewWorld()
	cfg := arena.DefaultConfig()
	cfg, err := Load(w, "bounce", cfg, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatal(err)
	}
	if len(w.Bodies) != 16 {
		t.Fatalf("expected 16 bodies, got %d", len(w.Bodies))
	}
	if cfg.Gravity || cfg.Strategy != arena.Bounce {
		t.Error("expected bounce with gravity off")
	}
	for i, b := range w.Bodies {
		if b.R < 5 || b.R > 30 {
			t.Errorf("body %d: radius %v out of range", i, b.R)
		}
		if b.M != b.R*10 {
			t.Errorf("body %d: expected mass %v, got %v", i, b.R*10, b.M)
		}
		if b.Pos.X < b.R || b.Pos.X > cfg.Width-b.R || b.Pos.Y < b.R || b.Pos.Y > cfg.Height-b.R {
			t.Errorf("body %d: position %v outside arena", i, b.Pos)
		}
		if b.Acc.X < -1 || b.Acc.X > 1 || b.Acc.Y < -1 || b.Acc.Y > 1 {
			t.Errorf("body %d: acceleration %v out of range", i, b.Acc)
		}
	}
}

func TestBouncePreset_Deterministic(t *testing.T) {
	a, b := arena.NewWorld(), arena.NewWorld()
	cfg := arena.DefaultConfig()
	Load(a, "bounce", cfg, rand.New(rand.NewSource(7)))
	Load(b, "bounce", cfg, rand.New(rand.NewSource(7)))
	for i := range a.Bodies {
		if *a.Bodies[i] != *b.Bodies[i] {
			t.Fatalf("body %d differs for the same seed", i)
		}
	}
}

func TestPresetsValid(t *testing.T) {
	for _, name := range Names() {
		w := arena.NewWorld()
		if _, err := Load(w, name, arena.DefaultConfig(), rand.New(rand.NewSource(3))); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if len(w.Bodies) == 0 {
			t.Errorf("%s: no bodies", name)
		}
		for i, b := range w.Bodies {
			if err := b.Validate(); err != nil {
				t.Errorf("%s body %d: %v", name, i, err)
			}
		}
	}
}

func TestLoad_ReplacesCollection(t *testing.T) {
	w := arena.NewWorld(arena.NewBody(1, 1, 1, 0, 0, 1))
	w.Frame = 12
	if _, err := Load(w, "collide", arena.DefaultConfig(), nil); err != nil {
		t.Fatal(err)
	}
	if len(w.Bodies) != 2 || w.Frame != 0 {
		t.Errorf("expected fresh 2-body world, got %d bodies at frame %d", len(w.Bodies), w.Frame)
	}
}

func TestGet_Unknown(t *testing.T) {
	if _, err := Get("nonexistent"); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestCharge(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	if _, err := Charge(10, 10, 50*time.Millisecond, rng); !errors.Is(err, ErrTooShort) {
		t.Errorf("expected ErrTooShort, got %v", err)
	}

	tests := []struct {
		held time.Duration
		r, m float64
	}{
		{100 * time.Millisecond, 1, 10},
		{1500 * time.Millisecond, 15, 150},
		{2250 * time.Millisecond, 23, 225},
		{1001 * time.Millisecond, 10, 101},
	}

	for _, tt := range tests {
		b, err := Charge(40, 60, tt.held, rng)
		if err != nil {
			t.Fatalf("held %v: %v", tt.held, err)
		}
		if b.R != tt.r || b.M != tt.m {
			t.Errorf("held %v: expected r=%v m=%v, got r=%v m=%v", tt.held, tt.r, tt.m, b.R, b.M)
		}
		if b.Pos.X != 40 || b.Pos.Y != 60 {
			t.Errorf("held %v: expected body at release point, got %v", tt.held, b.Pos)
		}
	}
}
