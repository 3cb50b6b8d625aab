package sim

import (
	"fmt"

	"github.com/san-kum/collide/internal/arena"
)

type Metric interface {
	Name() string
	Observe(w *arena.World, st arena.Stats, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(w *arena.World, st arena.Stats, t float64)
}

type Config struct {
	Arena         arena.Config
	Frames        int
	SampleEvery   int // record every n-th frame; 0 or 1 records all
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Arena:         arena.DefaultConfig(),
		Frames:        600,
		SampleEvery:   1,
		ValidateState: true,
	}
}

// FrameRecord is the per-frame summary kept in a Result.
type FrameRecord struct {
	Frame      int     `json:"frame"`
	Time       float64 `json:"time"`
	Kinetic    float64 `json:"kinetic"`
	Px         float64 `json:"px"`
	Py         float64 `json:"py"`
	Collisions int     `json:"collisions"`
	EdgeHits   int     `json:"edge_hits"`
	Bodies     int     `json:"bodies"`
}

type Result struct {
	Frames     []FrameRecord
	Final      []arena.Body
	Metrics    map[string]float64
	StepsTaken int
	Errors     []error
}

type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
