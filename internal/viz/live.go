package viz

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/collide/internal/arena"
	"github.com/san-kum/collide/internal/scenario"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 200
	// fullCharge is the hold time at which the charge meter is full.
	fullCharge = 3 * time.Second
)

// The canvas sits inside a one-cell border at the top-left of the screen.
const canvasOffsetX, canvasOffsetY = 1, 1

var presetKeys = map[string]string{
	"1": "push",
	"2": "gravity",
	"3": "bounce",
}

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model owns one arena and steps it once per tick.
type Model struct {
	world         *arena.World
	base          arena.Config
	cfg           arena.Config
	preset        string
	rng           *rand.Rand
	canvas        *Canvas
	width, height int
	running       bool
	charging      bool
	pressAt       time.Time
	now           func() time.Time
	energyHistory []float64
	collisions    int
	message       string
}

// NewModel loads preset into a fresh world. The preset decides the gravity
// flag and collision strategy; everything else comes from cfg.
func NewModel(cfg arena.Config, preset string, seed int64) (Model, error) {
	if err := cfg.Validate(); err != nil {
		return Model{}, err
	}
	m := Model{
		world:         arena.NewWorld(),
		base:          cfg,
		rng:           rand.New(rand.NewSource(seed)),
		canvas:        NewCanvas(width, height),
		width:         width,
		height:        height,
		running:       true,
		now:           time.Now,
		energyHistory: make([]float64, 0, historyCapacity),
	}
	if err := m.load(preset); err != nil {
		return Model{}, err
	}
	m.draw()
	return m, nil
}

func (m *Model) load(name string) error {
	cfg, err := scenario.Load(m.world, name, m.base, m.rng)
	if err != nil {
		return err
	}
	m.cfg, m.preset = cfg, name
	m.energyHistory = m.energyHistory[:0]
	m.collisions = 0
	m.charging = false
	m.message = ""
	return nil
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and steps the arena.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "1", "2", "3":
			if err := m.load(presetKeys[key]); err != nil {
				m.message = err.Error()
			}
		case "c":
			m.cfg.Strategy = m.cfg.Strategy.Toggle()
		case "g":
			m.cfg.Gravity = !m.cfg.Gravity
		case " ":
			m.running = !m.running
		case "r":
			if err := m.load(m.preset); err != nil {
				m.message = err.Error()
			}
		case "t":
			NextTheme()
		}
		m.draw()
	case tea.MouseMsg:
		m.mouse(msg)
	case TickMsg:
		if m.running {
			m.step()
		}
		m.draw()
		return m, tick()
	}
	return m, nil
}

func (m *Model) mouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		if _, _, ok := m.toWorld(msg.X, msg.Y); !ok {
			return
		}
		m.charging = true
		m.pressAt = m.now()
	case tea.MouseActionRelease:
		if !m.charging {
			return
		}
		m.charging = false
		x, y, ok := m.toWorld(msg.X, msg.Y)
		if !ok {
			return
		}
		b, err := scenario.Charge(x, y, m.now().Sub(m.pressAt), m.rng)
		if errors.Is(err, scenario.ErrTooShort) {
			return
		}
		if err == nil {
			err = m.world.Add(b)
		}
		if err != nil {
			m.message = err.Error()
			return
		}
		m.draw()
	}
}

// toWorld maps a terminal cell to the arena point at the centre of that cell.
func (m *Model) toWorld(cellX, cellY int) (float64, float64, bool) {
	col, row := cellX-canvasOffsetX, cellY-canvasOffsetY
	if col < 0 || row < 0 || col >= m.width || row >= m.height {
		return 0, 0, false
	}
	x := (float64(col) + 0.5) * m.cfg.Width / float64(m.width)
	y := (float64(row) + 0.5) * m.cfg.Height / float64(m.height)
	return x, y, true
}

func (m *Model) step() {
	st := m.world.Step(m.cfg)
	m.collisions += st.Resolved

	m.energyHistory = append(m.energyHistory, m.world.Kinetic())
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

func (m *Model) draw() {
	m.canvas.Clear()
	sx := float64(m.width*2) / m.cfg.Width
	sy := float64(m.height*4) / m.cfg.Height
	for _, b := range m.world.Bodies {
		m.canvas.DrawEllipse(b.Pos.X*sx, b.Pos.Y*sy, b.R*sx, b.R*sy)
	}
}

func onOff(v bool) string {
	if v {
		return "On"
	}
	return "Off"
}

// View renders the arena with its stats panel.
func (m Model) View() string {
	canvasView := canvasStyle().Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle().Render("COLLIDE · "+strings.ToUpper(m.preset)) + "\n\n")
	if m.running {
		s.WriteString(StatusRunning.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}

	s.WriteString(labelStyle.Render("Collision") + modeStyle().Render(m.cfg.Strategy.Label()) + "\n")
	s.WriteString(labelStyle.Render("Gravity") + modeStyle().Render(onOff(m.cfg.Gravity)) + "\n\n")

	s.WriteString(labelStyle.Render("Frame") + valueStyle.Render(fmt.Sprintf("%d", m.world.Frame)) + "\n")
	s.WriteString(labelStyle.Render("Bodies") + valueStyle.Render(fmt.Sprintf("%d", len(m.world.Bodies))) + "\n")
	s.WriteString(labelStyle.Render("Collisions") + valueStyle.Render(fmt.Sprintf("%d", m.collisions)) + "\n")
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.1f", m.world.Kinetic())) + "\n")

	if m.charging {
		held := m.now().Sub(m.pressAt)
		r := math.Round(10 * held.Seconds())
		s.WriteString(labelStyle.Render("Charge") + ProgressBar(held.Seconds()/fullCharge.Seconds(), 12) + fmt.Sprintf(" r=%.0f", r) + "\n")
	}

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	if m.message != "" {
		s.WriteString(errorStyle.Render(m.message) + "\n")
	}

	s.WriteString(helpStyle.Render("─────────────────────\n1/2/3:Preset C:Collision G:Gravity\nSP:Pause R:Reset T:Theme Q:Quit\nMouse: hold + release adds a body"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}

// Run starts m full-screen with mouse reporting.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
