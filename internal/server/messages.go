package server

import (
	"errors"

	"github.com/san-kum/collide/internal/arena"
)

var ErrUnknownCommand = errors.New("server: unknown command")

// Command is a request sent by a browser over the websocket.
type Command struct {
	Type   string  `json:"type"` // preset, switch_collision, toggle_gravity, create, pause, reset
	Preset string  `json:"preset,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	HeldMs int64   `json:"held_ms,omitempty"`
}

type BodyState struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	R float64 `json:"r"`
}

// Frame is broadcast to every client after each step.
type Frame struct {
	Frame    int         `json:"frame"`
	Preset   string      `json:"preset"`
	Gravity  bool        `json:"gravity"`
	Strategy string      `json:"strategy"`
	Paused   bool        `json:"paused"`
	Width    float64     `json:"width"`
	Height   float64     `json:"height"`
	Bodies   []BodyState `json:"bodies"`
}

func newFrame(w *arena.World, cfg arena.Config, preset string, paused bool) Frame {
	f := Frame{
		Frame:    w.Frame,
		Preset:   preset,
		Gravity:  cfg.Gravity,
		Strategy: cfg.Strategy.Label(),
		Paused:   paused,
		Width:    cfg.Width,
		Height:   cfg.Height,
		Bodies:   make([]BodyState, len(w.Bodies)),
	}
	for i, b := range w.Bodies {
		f.Bodies[i] = BodyState{X: b.Pos.X, Y: b.Pos.Y, R: b.R}
	}
	return f
}
