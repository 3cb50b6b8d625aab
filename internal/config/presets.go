package config

import "sort"

func boolPtr(b bool) *bool { return &b }

// Presets are named configurations; each names a scenario preset and the
// arena settings it looks best in.
var Presets = map[string]*Config{
	"push": {
		Preset: "push", Width: 800, Height: 600, Dt: 0.1, MaxSpeed: 150, G: 1000, Edge: "clamp", Frames: 900,
	},
	"gravity": {
		Preset: "gravity", Width: 1280, Height: 900, Dt: 0.1, MaxSpeed: 150, G: 1000, Edge: "clamp", Frames: 1200,
	},
	"bounce": {
		Preset: "bounce", Width: 800, Height: 600, Dt: 0.1, MaxSpeed: 150, G: 1000, Edge: "clamp", Frames: 600,
	},
	"collide": {
		Preset: "collide", Width: 200, Height: 200, Dt: 0.1, MaxSpeed: 150, G: 1000, Edge: "clamp", Frames: 60,
	},
	"cluster": {
		Preset: "cluster", Width: 800, Height: 800, Dt: 0.05, MaxSpeed: 150, G: 50, Edge: "clamp", Theta: 0.5, Frames: 1200,
	},
	"billiards": {
		Preset: "bounce", Width: 800, Height: 600, Dt: 0.1, MaxSpeed: 150, G: 1000, Edge: "clamp",
		Redetect: true, Strategy: "bounce", Gravity: boolPtr(false), Frames: 600,
	},
	"classic": {
		Preset: "bounce", Width: 800, Height: 600, Dt: 0.1, MaxSpeed: 150, G: 1000, Edge: "reflect",
		SingleWall: true, Frames: 600,
	},
}

// GetPreset returns a copy of the named configuration, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
