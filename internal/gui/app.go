package gui

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/collide/internal/arena"
	"github.com/san-kum/collide/internal/scenario"
)

// Theme Colors (Monochrome Hyper-Minimalist)
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)    // Deep Black
	ColAccent  = rl.NewColor(180, 180, 180, 255) // Soft White
	ColSelect  = rl.NewColor(255, 255, 255, 255) // Bright White
	ColText    = rl.NewColor(140, 140, 140, 255) // Neutral Gray
	ColTextDim = rl.NewColor(60, 60, 60, 255)    // Dark Gray (Subtle)
	ColGrid    = rl.NewColor(30, 30, 30, 255)    // Barely visible grid
)

const (
	toolbarHeight = 40
	fontPath      = "/usr/share/fonts/liberation/LiberationMono-Regular.ttf"
)

type button struct {
	Label  string
	Rect   rl.Rectangle
	Action func(a *App)
}

type App struct {
	World     *arena.World
	Base      arena.Config
	Cfg       arena.Config
	Preset    string
	Rng       *rand.Rand
	Running   bool
	Charging  bool
	PressAt   float64 // rl.GetTime() at mouse press
	Telemetry []float64
	MaxTelem  int
	Message   string
	Font      rl.Font
	buttons   []button
}

// initWindow opens a window sized to the arena plus the toolbar.
func initWindow(cfg arena.Config) {
	rl.InitWindow(int32(cfg.Width), int32(cfg.Height)+toolbarHeight, "collide")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

// loadFont loads Liberation Mono when installed and falls back to the
// built-in raylib font.
func loadFont() rl.Font {
	if _, err := os.Stat(fontPath); err != nil {
		return rl.GetFontDefault()
	}
	font := rl.LoadFontEx(fontPath, 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// NewApp loads preset into a fresh world. Must be called after initWindow.
func NewApp(cfg arena.Config, preset string, seed int64) (*App, error) {
	a := &App{
		World:     arena.NewWorld(),
		Base:      cfg,
		Rng:       rand.New(rand.NewSource(seed)),
		Running:   true,
		MaxTelem:  200,
		Telemetry: make([]float64, 0, 200),
		Font:      loadFont(),
	}
	if err := a.loadPreset(preset); err != nil {
		return nil, err
	}
	a.buttons = a.layoutButtons()
	return a, nil
}

func (a *App) layoutButtons() []button {
	labels := []struct {
		label  string
		action func(a *App)
	}{
		{"Push", func(a *App) { a.setPreset("push") }},
		{"Gravity", func(a *App) { a.setPreset("gravity") }},
		{"Bounce", func(a *App) { a.setPreset("bounce") }},
		{"Collision", func(a *App) { a.Cfg.Strategy = a.Cfg.Strategy.Toggle() }},
		{"Gravity on/off", func(a *App) { a.Cfg.Gravity = !a.Cfg.Gravity }},
	}
	out := make([]button, 0, len(labels))
	x := float32(8)
	for _, l := range labels {
		w := float32(12*len(l.label) + 16)
		out = append(out, button{Label: l.label, Rect: rl.NewRectangle(x, 6, w, toolbarHeight-12), Action: l.action})
		x += w + 8
	}
	return out
}

func (a *App) loadPreset(name string) error {
	cfg, err := scenario.Load(a.World, name, a.Base, a.Rng)
	if err != nil {
		return err
	}
	a.Cfg, a.Preset = cfg, name
	a.Telemetry = a.Telemetry[:0]
	a.Charging = false
	a.Message = ""
	return nil
}

func (a *App) setPreset(name string) {
	if err := a.loadPreset(name); err != nil {
		a.Message = err.Error()
	}
}

// Run opens the window and blocks until it is closed.
func Run(cfg arena.Config, preset string, seed int64) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	initWindow(cfg)
	defer rl.CloseWindow()

	app, err := NewApp(cfg, preset, seed)
	if err != nil {
		return err
	}
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update() {
			return
		}
		a.Draw()
	}
}

// Update handles input and steps the arena. It returns false on quit.
func (a *App) Update() bool {
	switch {
	case rl.IsKeyPressed(rl.KeyQ):
		return false
	case rl.IsKeyPressed(rl.KeyOne):
		a.setPreset("push")
	case rl.IsKeyPressed(rl.KeyTwo):
		a.setPreset("gravity")
	case rl.IsKeyPressed(rl.KeyThree):
		a.setPreset("bounce")
	case rl.IsKeyPressed(rl.KeyC):
		a.Cfg.Strategy = a.Cfg.Strategy.Toggle()
	case rl.IsKeyPressed(rl.KeyG):
		a.Cfg.Gravity = !a.Cfg.Gravity
	case rl.IsKeyPressed(rl.KeySpace):
		a.Running = !a.Running
	case rl.IsKeyPressed(rl.KeyR):
		a.setPreset(a.Preset)
	}

	a.handleMouse()

	if a.Running {
		a.World.Step(a.Cfg)
		a.Telemetry = append(a.Telemetry, a.World.Kinetic())
		if len(a.Telemetry) > a.MaxTelem {
			a.Telemetry = a.Telemetry[1:]
		}
	}
	return true
}

func (a *App) handleMouse() {
	mouse := rl.GetMousePosition()

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		for _, b := range a.buttons {
			if rl.CheckCollisionPointRec(mouse, b.Rect) {
				b.Action(a)
				return
			}
		}
		if mouse.Y >= toolbarHeight {
			a.Charging = true
			a.PressAt = rl.GetTime()
		}
	}

	if a.Charging && rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		a.Charging = false
		held := time.Duration((rl.GetTime() - a.PressAt) * float64(time.Second))
		b, err := scenario.Charge(float64(mouse.X), float64(mouse.Y)-toolbarHeight, held, a.Rng)
		if errors.Is(err, scenario.ErrTooShort) {
			return
		}
		if err == nil {
			err = a.World.Add(b)
		}
		if err != nil {
			a.Message = err.Error()
		}
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.drawToolbar()
	a.drawArena()
	a.DrawHUD()
	a.DrawTelemetry()

	rl.EndDrawing()
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

func (a *App) drawToolbar() {
	rl.DrawRectangle(0, 0, int32(a.Cfg.Width), toolbarHeight, ColGrid)
	mouse := rl.GetMousePosition()
	for _, b := range a.buttons {
		col := ColAccent
		if rl.CheckCollisionPointRec(mouse, b.Rect) {
			col = ColSelect
		}
		rl.DrawRectangleLinesEx(b.Rect, 1, col)
		a.drawText(b.Label, int(b.Rect.X)+8, int(b.Rect.Y)+6, 18, col)
	}
}

func (a *App) drawArena() {
	for _, b := range a.World.Bodies {
		speed := math.Hypot(b.Vel.X, b.Vel.Y)
		val := uint8(math.Min(100+speed, 255))
		rl.DrawCircleLines(int32(b.Pos.X), int32(b.Pos.Y)+toolbarHeight, float32(b.R), rl.NewColor(val, val, val, 255))
	}

	if a.Charging {
		mouse := rl.GetMousePosition()
		r := math.Round(10 * (rl.GetTime() - a.PressAt))
		rl.DrawCircleLines(int32(mouse.X), int32(mouse.Y), float32(r), ColTextDim)
	}
}

// DrawHUD shows the mode labels next to the controls.
func (a *App) DrawHUD() {
	y := toolbarHeight + 10
	a.drawText(fmt.Sprintf("COLLIDE · %s", a.Preset), 10, y, 20, ColSelect)
	a.drawText(fmt.Sprintf("Collision: %s", a.Cfg.Strategy.Label()), 10, y+26, 18, ColAccent)
	gravity := "Off"
	if a.Cfg.Gravity {
		gravity = "On"
	}
	a.drawText(fmt.Sprintf("Gravity: %s", gravity), 10, y+48, 18, ColAccent)
	a.drawText(fmt.Sprintf("Bodies: %d  Frame: %d", len(a.World.Bodies), a.World.Frame), 10, y+70, 16, ColText)
	if !a.Running {
		a.drawText("PAUSED", 10, y+92, 18, ColSelect)
	}
	if a.Message != "" {
		a.drawText(a.Message, 10, y+114, 16, rl.Red)
	}
	a.drawText("1/2/3 preset  C collision  G gravity  SPACE pause  R reset  Q quit", 10, int(a.Cfg.Height)+toolbarHeight-24, 16, ColTextDim)
}

// DrawTelemetry plots recent kinetic energy in the bottom-right corner.
func (a *App) DrawTelemetry() {
	if len(a.Telemetry) < 2 {
		return
	}
	w, h := float32(200), float32(60)
	x0 := float32(a.Cfg.Width) - w - 10
	y0 := float32(a.Cfg.Height) + toolbarHeight - h - 10

	maxE := a.Telemetry[0]
	for _, e := range a.Telemetry {
		maxE = math.Max(maxE, e)
	}
	if maxE == 0 {
		maxE = 1
	}

	rl.DrawRectangleLinesEx(rl.NewRectangle(x0, y0, w, h), 1, ColTextDim)
	step := w / float32(a.MaxTelem)
	for i := 1; i < len(a.Telemetry); i++ {
		p0 := rl.NewVector2(x0+float32(i-1)*step, y0+h-float32(a.Telemetry[i-1]/maxE)*h)
		p1 := rl.NewVector2(x0+float32(i)*step, y0+h-float32(a.Telemetry[i]/maxE)*h)
		rl.DrawLineV(p0, p1, ColAccent)
	}
	a.drawText("energy", int(x0), int(y0)-18, 14, ColText)
}
