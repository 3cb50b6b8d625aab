package scenario

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/san-kum/collide/internal/arena"
)

// MinHold is how long the pointer must be held before a release creates a body.
const MinHold = 100 * time.Millisecond

var (
	ErrUnknownPreset = errors.New("scenario: unknown preset")
	ErrTooShort      = errors.New("scenario: hold shorter than minimum")
)

// Setup is the result of building a preset: a fresh collection plus the
// mode flags it expects.
type Setup struct {
	Bodies   []*arena.Body
	Gravity  bool
	Strategy arena.Strategy
}

// Preset builds a Setup for an arena of the given size.
type Preset struct {
	Name        string
	Description string
	Build       func(width, height float64, rng *rand.Rand) Setup
}

var presets = map[string]Preset{
	"push": {
		Name:        "push",
		Description: "grid of small resting bodies hit by one fast mover",
		Build:       buildPush,
	},
	"gravity": {
		Name:        "gravity",
		Description: "hand-placed system orbiting a heavy central body",
		Build:       buildGravity,
	},
	"bounce": {
		Name:        "bounce",
		Description: "16 randomly sized bodies bouncing elastically",
		Build:       buildBounce,
	},
	"collide": {
		Name:        "collide",
		Description: "two equal bodies meeting head-on",
		Build:       buildCollide,
	},
	"cluster": {
		Name:        "cluster",
		Description: "a cloud of small bodies collapsing under gravity",
		Build:       buildCluster,
	},
}

// Get returns the named preset.
func Get(name string) (Preset, error) {
	p, ok := presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, name, Names())
	}
	return p, nil
}

// Names lists preset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply replaces the world's bodies with the setup's and returns cfg with
// the setup's mode flags.
func Apply(w *arena.World, s Setup, cfg arena.Config) arena.Config {
	w.Reset(s.Bodies)
	cfg.Gravity = s.Gravity
	cfg.Strategy = s.Strategy
	return cfg
}

// Load builds the named preset into w.
func Load(w *arena.World, name string, cfg arena.Config, rng *rand.Rand) (arena.Config, error) {
	p, err := Get(name)
	if err != nil {
		return cfg, err
	}
	return Apply(w, p.Build(cfg.Width, cfg.Height, rng), cfg), nil
}

const (
	pushRows   = 6
	pushRadius = 10.0
)

// PushColumns is the column count of the push grid: a quarter of the arena
// height filled with bodies.
func PushColumns(height float64) int {
	return int(math.Ceil(math.Round(height*0.25) / pushRadius))
}

func buildPush(width, height float64, _ *rand.Rand) Setup {
	startX := math.Round(width / 3)
	startY := math.Round(height / 3)
	cols := PushColumns(height)

	bodies := make([]*arena.Body, 0, pushRows*cols+1)
	for i := 0; i < pushRows; i++ {
		for j := 0; j < cols; j++ {
			bodies = append(bodies, arena.NewBody(startX+float64(j)*pushRadius, startY+float64(i)*pushRadius, pushRadius, 0, 0, 100))
		}
	}
	bodies = append(bodies, arena.NewBody(20, startY+pushRadius*pushRows/2, 20, 1, 0, 100))

	return Setup{Bodies: bodies, Strategy: arena.Push}
}

func buildGravity(_, _ float64, _ *rand.Rand) Setup {
	return Setup{
		Bodies: []*arena.Body{
			arena.NewBody(640, 632, 45, 0, 0, 500),

			arena.NewBody(330, 700, 10, 0, -1, 200).WithVelocity(0, -40),
			arena.NewBody(270, 780, 7, 0, -1, 70).WithVelocity(0, 20),

			arena.NewBody(300, 400, 10, 1, 0, 80).WithVelocity(25, -20),

			arena.NewBody(610, 250, 3, 1, 0, 1).WithVelocity(25, 20),
			arena.NewBody(650, 270, 5, 1, 0, 3).WithVelocity(45, 10),
			arena.NewBody(680, 290, 3, 1, 0, 1).WithVelocity(35, 20),

			arena.NewBody(830, 450, 10, 1, 1, 60).WithVelocity(20, 50),
			arena.NewBody(830, 300, 10, 1, 1, 100).WithVelocity(20, 50),

			arena.NewBody(830, 600, 15, 0, 1, 115).WithVelocity(0, 75),
			arena.NewBody(740, 820, 15, -1, 0, 100).WithVelocity(-25, 50),
		},
		Gravity:  true,
		Strategy: arena.Push,
	}
}

func buildBounce(width, height float64, rng *rand.Rand) Setup {
	bodies := make([]*arena.Body, 0, 16)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			r := float64(randInt(rng, 5, 30))
			x := float64(randInt(rng, int(r), int(width-r)))
			y := float64(randInt(rng, int(r), int(height-r)))
			ax := float64(randInt(rng, -1, 1))
			ay := float64(randInt(rng, -1, 1))
			bodies = append(bodies, arena.NewBody(x, y, r, ax, ay, r*10))
		}
	}
	return Setup{Bodies: bodies, Strategy: arena.Bounce}
}

func buildCollide(width, _ float64, _ *rand.Rand) Setup {
	x := math.Min(100, width/2)
	return Setup{
		Bodies: []*arena.Body{
			arena.NewBody(x, 50, 10, 0, 0, 100).WithVelocity(0, 20),
			arena.NewBody(x, 80, 10, 0, 0, 100).WithVelocity(0, -20),
		},
		Strategy: arena.Bounce,
	}
}

func buildCluster(width, height float64, rng *rand.Rand) Setup {
	cx, cy := width/2, height/2
	spread := math.Min(width, height) / 3
	bodies := make([]*arena.Body, 0, 120)
	for i := 0; i < 120; i++ {
		angle := rng.Float64() * 2 * math.Pi
		dist := spread * math.Sqrt(rng.Float64())
		r := 2 + rng.Float64()*2
		bodies = append(bodies, arena.NewBody(cx+dist*math.Cos(angle), cy+dist*math.Sin(angle), r, 0, 0, r*r).
			WithVelocity(-math.Sin(angle)*dist/20, math.Cos(angle)*dist/20))
	}
	return Setup{Bodies: bodies, Gravity: true, Strategy: arena.Bounce}
}

// Charge creates the body for a press-and-hold gesture released at (x, y).
// Radius grows by 10 and mass by 100 per second held.
func Charge(x, y float64, held time.Duration, rng *rand.Rand) (*arena.Body, error) {
	if held < MinHold {
		return nil, ErrTooShort
	}
	s := held.Seconds()
	r := math.Round(10 * s)
	m := math.Ceil(100 * s)
	b := arena.NewBody(x, y, r, float64(randInt(rng, -1, 1)), float64(randInt(rng, -1, 1)), m)
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// randInt returns a uniform integer in [min, max].
func randInt(rng *rand.Rand, min, max int) int {
	if max < min {
		return min
	}
	return min + rng.Intn(max-min+1)
}
